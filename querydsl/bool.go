package querydsl

import (
	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

const BoolName = "bool"

// BoolBuilder combines other clauses. Each list accepts a single clause
// object or an array of them in the document; the builder always holds
// lists.
type BoolBuilder struct {
	must               []Builder
	mustNot            []Builder
	should             []Builder
	filter             []Builder
	minimumShouldMatch Value
	boost              float64
	queryName          string
}

var boolPrototype = BoolBuilder{boost: DefaultBoost}

func (BoolBuilder) WriterName() string {
	return BoolName
}

func (b BoolBuilder) Must() []Builder {
	return b.must
}

func (b BoolBuilder) MustNot() []Builder {
	return b.mustNot
}

func (b BoolBuilder) Should() []Builder {
	return b.should
}

func (b BoolBuilder) Filter() []Builder {
	return b.filter
}

func (b BoolBuilder) MinimumShouldMatch() Value {
	return b.minimumShouldMatch
}

func (b BoolBuilder) Boost() float64 {
	return b.boost
}

func (b BoolBuilder) QueryName() string {
	return b.queryName
}

func (b BoolBuilder) Source() map[string]any {
	body := map[string]any{"boost": b.boost}
	for name, clauses := range map[string][]Builder{
		"must":     b.must,
		"must_not": b.mustNot,
		"should":   b.should,
		"filter":   b.filter,
	} {
		if len(clauses) == 0 {
			continue
		}
		list := make([]any, len(clauses))
		for i, cl := range clauses {
			list[i] = cl.Source()
		}
		body[name] = list
	}
	if b.minimumShouldMatch.IsSet() {
		body["minimum_should_match"] = b.minimumShouldMatch.Interface()
	}
	if b.queryName != "" {
		body["_name"] = b.queryName
	}
	return map[string]any{BoolName: body}
}

var boolMinimumShouldMatchField = NewParseField("minimum_should_match", "minimum_number_should_match")

type BoolParser struct{}

func (BoolParser) Names() []string {
	return []string{BoolName}
}

func (BoolParser) Prototype() Builder {
	return boolPrototype
}

func (p BoolParser) Parse(ctx *ParseContext) (Builder, error) {
	c := ctx.Cursor()
	m := ctx.Matcher()

	boost := DefaultBoost
	var queryName string
	var minimumShouldMatch Value
	lists := map[string]*[]Builder{}
	var must, mustNot, should, filter []Builder
	lists["must"] = &must
	lists["must_not"] = &mustNot
	lists["mustNot"] = &mustNot
	lists["should"] = &should
	lists["filter"] = &filter

	var currentFieldName string
	for tok := c.Next(); tok.Type != token.ENDOBJECT; tok = c.Next() {
		switch {
		case tok.Type == token.FIELDNAME:
			currentFieldName = tok.Literal

		case tok.Type == token.STARTOBJECT:
			list, ok := lists[currentFieldName]
			if !ok {
				return nil, unrecognizedFieldFault(BoolName, currentFieldName)
			}
			inner, err := ctx.ParseInnerQuery()
			if err != nil {
				return nil, nestedFault(BoolName, currentFieldName, err)
			}
			*list = append(*list, inner)

		case tok.Type == token.STARTARRAY:
			list, ok := lists[currentFieldName]
			if !ok {
				return nil, unrecognizedFieldFault(BoolName, currentFieldName)
			}
			for t := c.Next(); t.Type != token.ENDARRAY; t = c.Next() {
				if t.Type != token.STARTOBJECT {
					return nil, fault.New(fault.MalformedValueCode, "["+BoolName+"] expected a clause object in ["+currentFieldName+"]")
				}
				inner, err := ctx.ParseInnerQuery()
				if err != nil {
					return nil, nestedFault(BoolName, currentFieldName, err)
				}
				*list = append(*list, inner)
			}

		case tok.Type == token.NULL:
			// A null-valued field reads as if it were never written.

		case tok.IsValue():
			if ok, err := m.Match(currentFieldName, boolMinimumShouldMatchField); err != nil {
				return nil, err
			} else if ok {
				v, err := CoerceScalar(tok)
				if err != nil {
					return nil, err
				}
				minimumShouldMatch = v
				continue
			}

			switch currentFieldName {
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
				return nil, unrecognizedFieldFault(BoolName, currentFieldName)
			}

		default:
			return nil, fault.New(fault.MalformedValueCode, "["+BoolName+"] query malformed at ["+tok.Literal+"]")
		}
	}

	return BoolBuilder{
		must:               must,
		mustNot:            mustNot,
		should:             should,
		filter:             filter,
		minimumShouldMatch: minimumShouldMatch,
		boost:              boost,
		queryName:          queryName,
	}, nil
}
