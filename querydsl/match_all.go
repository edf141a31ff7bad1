package querydsl

import (
	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

const MatchAllName = "match_all"

// MatchAllBuilder describes the query matching every document.
type MatchAllBuilder struct {
	boost     float64
	queryName string
}

var matchAllPrototype = MatchAllBuilder{boost: DefaultBoost}

func (MatchAllBuilder) WriterName() string {
	return MatchAllName
}

func (b MatchAllBuilder) Boost() float64 {
	return b.boost
}

func (b MatchAllBuilder) QueryName() string {
	return b.queryName
}

func (b MatchAllBuilder) Source() map[string]any {
	body := map[string]any{"boost": b.boost}
	if b.queryName != "" {
		body["_name"] = b.queryName
	}
	return map[string]any{MatchAllName: body}
}

type MatchAllParser struct{}

func (MatchAllParser) Names() []string {
	return []string{MatchAllName, toCamelCase(MatchAllName)}
}

func (MatchAllParser) Prototype() Builder {
	return matchAllPrototype
}

func (MatchAllParser) Parse(ctx *ParseContext) (Builder, error) {
	c := ctx.Cursor()

	boost := DefaultBoost
	var queryName string

	var currentFieldName string
	for tok := c.Next(); tok.Type != token.ENDOBJECT; tok = c.Next() {
		switch {
		case tok.Type == token.FIELDNAME:
			currentFieldName = tok.Literal
		case tok.Type == token.NULL:
			// A null-valued field reads as if it were never written.
		case tok.IsValue():
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
				return nil, unrecognizedFieldFault(MatchAllName, currentFieldName)
			}
		default:
			return nil, fault.New(fault.MalformedValueCode, "["+MatchAllName+"] query malformed at ["+tok.Literal+"]")
		}
	}

	return MatchAllBuilder{boost: boost, queryName: queryName}, nil
}
