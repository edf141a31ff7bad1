package querydsl

import (
	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

// HasParentName is the canonical name of the parent-join clause.
const HasParentName = "has_parent"

// HasParentBuilder describes a query matching child documents whose
// parent of the given type matches the inner query.
type HasParentBuilder struct {
	parentType string
	query      Builder
	score      bool
	boost      float64
	queryName  string
	innerHits  map[string]any
}

var hasParentPrototype = HasParentBuilder{query: emptyPrototype, boost: DefaultBoost}

func (b HasParentBuilder) WriterName() string {
	return HasParentName
}

func (b HasParentBuilder) ParentType() string {
	return b.parentType
}

func (b HasParentBuilder) Query() Builder {
	return b.query
}

func (b HasParentBuilder) Score() bool {
	return b.score
}

func (b HasParentBuilder) Boost() float64 {
	return b.boost
}

func (b HasParentBuilder) QueryName() string {
	return b.queryName
}

func (b HasParentBuilder) InnerHits() map[string]any {
	return b.innerHits
}

func (b HasParentBuilder) Source() map[string]any {
	body := map[string]any{
		"parent_type": b.parentType,
		"query":       b.query.Source(),
		"score":       b.score,
		"boost":       b.boost,
	}
	if b.queryName != "" {
		body["_name"] = b.queryName
	}
	if b.innerHits != nil {
		body["inner_hits"] = b.innerHits
	}
	return map[string]any{HasParentName: body}
}

var (
	hasParentQueryField = NewParseField("query", "filter")
	hasParentScoreField = NewParseField("score_type", "score_mode").AllDeprecated()
	hasParentTypeField  = NewParseField("parent_type", "type")
)

type HasParentParser struct{}

func (HasParentParser) Names() []string {
	return []string{HasParentName, toCamelCase(HasParentName)}
}

func (HasParentParser) Prototype() Builder {
	return hasParentPrototype
}

func (p HasParentParser) Parse(ctx *ParseContext) (Builder, error) {
	c := ctx.Cursor()
	m := ctx.Matcher()

	boost := DefaultBoost
	var parentType string
	var parentTypeSet bool
	score := false
	var queryName string
	var innerHits map[string]any
	var query Builder

	var currentFieldName string
	for tok := c.Next(); tok.Type != token.ENDOBJECT; tok = c.Next() {
		switch {
		case tok.Type == token.FIELDNAME:
			currentFieldName = tok.Literal

		case tok.Type == token.STARTOBJECT:
			// The inner clause's type is unknown until its own name
			// token has been read, so dispatch is deferred to the
			// context.
			if ok, err := m.Match(currentFieldName, hasParentQueryField); err != nil {
				return nil, err
			} else if ok {
				inner, err := ctx.ParseInnerQuery()
				if err != nil {
					return nil, nestedFault(HasParentName, currentFieldName, err)
				}
				query = inner
			} else if currentFieldName == "inner_hits" {
				raw, err := c.ReadValue()
				if err != nil {
					return nil, err
				}
				innerHits = raw.(map[string]any)
			} else {
				return nil, unrecognizedFieldFault(HasParentName, currentFieldName)
			}

		case tok.Type == token.NULL:
			// A null-valued field reads as if it were never written.

		case tok.IsValue():
			if ok, err := m.Match(currentFieldName, hasParentTypeField); err != nil {
				return nil, err
			} else if ok {
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				parentType = text
				parentTypeSet = true
				continue
			}

			if ok, err := m.Match(currentFieldName, hasParentScoreField); err != nil {
				return nil, err
			} else if ok {
				// Legacy textual toggle. Unrecognized values are
				// silently ignored, which older documents rely on.
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				if text == "score" {
					score = true
				} else if text == "none" {
					score = false
				}
				continue
			}

			switch currentFieldName {
			case "score":
				b, err := c.Bool()
				if err != nil {
					return nil, err
				}
				score = b
			case "boost":
				f, err := c.Float()
				if err != nil {
					return nil, err
				}
				boost = f
			case "_name":
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				queryName = text
			default:
				return nil, unrecognizedFieldFault(HasParentName, currentFieldName)
			}

		default:
			return nil, fault.New(fault.MalformedValueCode, "["+HasParentName+"] query malformed at ["+tok.Literal+"]")
		}
	}

	if query == nil {
		return nil, missingFieldFault(HasParentName, "query")
	}
	if !parentTypeSet {
		return nil, missingFieldFault(HasParentName, "parent_type")
	}

	return HasParentBuilder{
		parentType: parentType,
		query:      query,
		score:      score,
		boost:      boost,
		queryName:  queryName,
		innerHits:  innerHits,
	}, nil
}
