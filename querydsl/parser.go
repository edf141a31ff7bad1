package querydsl

import (
	"strings"
	"unicode"

	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/lexer"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

// Parser is the contract every clause parser satisfies. Parse is handed a
// context whose cursor sits on the clause body's opening brace and must
// consume through the matching closing brace. Prototype returns the
// process-wide immutable default instance of the clause's builder.
type Parser interface {
	Names() []string
	Parse(ctx *ParseContext) (Builder, error)
	Prototype() Builder
}

// Registry maps clause names, including camel-case aliases, to their
// parsers.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: map[string]Parser{}}
}

func (r *Registry) Register(p Parser) {
	for _, name := range p.Names() {
		r.parsers[name] = p
	}
}

func (r *Registry) Parser(name string) (Parser, bool) {
	p, ok := r.parsers[name]
	return p, ok
}

// ParseQuery parses a whole query document of the form
// {"<clause>": { ... }} and returns the clause's builder.
func (r *Registry) ParseQuery(source string, m Matcher) (Builder, error) {
	c := NewCursor(lexer.New(source))
	ctx := NewParseContext(c, r, m)
	b, err := ctx.ParseInnerQuery()
	if err != nil {
		return nil, err
	}
	if tok := c.Next(); tok.Type != token.EOF {
		return nil, fault.New(fault.MalformedValueCode, "unexpected trailing content: "+tok.Literal)
	}
	return b, nil
}

// DefaultRegistry returns a registry with every built-in clause
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(MatchAllParser{})
	r.Register(BoolParser{})
	r.Register(HasParentParser{})
	r.Register(GeoDistanceRangeParser{})
	return r
}

// ParseContext carries the cursor, the field matching policy and the
// registry through one parse call, including recursive inner-query
// parsing. It is never shared between parses.
type ParseContext struct {
	cursor   *Cursor
	registry *Registry
	matcher  Matcher
}

func NewParseContext(cursor *Cursor, registry *Registry, matcher Matcher) *ParseContext {
	return &ParseContext{
		cursor:   cursor,
		registry: registry,
		matcher:  matcher,
	}
}

func (ctx *ParseContext) Cursor() *Cursor {
	return ctx.cursor
}

func (ctx *ParseContext) Matcher() Matcher {
	return ctx.matcher
}

// ParseInnerQuery parses one nested clause object. The clause's identity
// is unknown until the field name past the opening brace has been read;
// only then is its parser looked up and dispatched. The cursor must sit on
// the opening brace and is left on the matching closing brace.
func (ctx *ParseContext) ParseInnerQuery() (Builder, error) {
	c := ctx.cursor

	if c.Current().Type != token.STARTOBJECT {
		return nil, fault.New(fault.MalformedValueCode, "expected a query object, found "+c.Current().Literal)
	}

	tok := c.Next()
	if tok.Type == token.ENDOBJECT {
		return emptyPrototype, nil
	}
	if tok.Type != token.FIELDNAME {
		return nil, fault.New(fault.MalformedValueCode, "expected a clause name, found "+tok.Literal)
	}
	clauseName := tok.Literal

	parser, ok := ctx.registry.Parser(clauseName)
	if !ok {
		return nil, fault.New(fault.UnrecognizedFieldCode, "no query registered for ["+clauseName+"]").
			WithMetadata(fault.ClauseMetadata{Clause: clauseName})
	}

	if c.Next().Type != token.STARTOBJECT {
		return nil, fault.New(fault.MalformedValueCode, "["+clauseName+"] query malformed, no start object after query name")
	}

	builder, err := parser.Parse(ctx)
	if err != nil {
		return nil, err
	}

	if c.Next().Type != token.ENDOBJECT {
		return nil, fault.New(fault.MalformedValueCode, "["+clauseName+"] query malformed, expected a single clause")
	}

	return builder, nil
}

// IsDeprecatedSetting reports whether name is one of the retired cache
// settings older documents still carry. The caller skips the field's
// value; a warning is logged, never an error.
func (ctx *ParseContext) IsDeprecatedSetting(name string) bool {
	switch name {
	case "_cache", "_cache_key", "_cacheKey":
		if ctx.matcher.Logger != nil {
			ctx.matcher.Logger.Warn("ignoring deprecated setting", "field", name)
		}
		return true
	}
	return false
}

func unrecognizedFieldFault(clause, field string) error {
	return fault.New(fault.UnrecognizedFieldCode, "["+clause+"] query does not support ["+field+"]").
		WithMetadata(fault.ClauseMetadata{Clause: clause, Field: field})
}

func deprecatedFieldFault(raw, preferred string) error {
	return fault.New(fault.DeprecatedFieldCode, "deprecated field ["+raw+"] used, expected ["+preferred+"] instead").
		WithMetadata(fault.ClauseMetadata{Field: raw})
}

func missingFieldFault(clause, field string) error {
	return fault.New(fault.MissingRequiredFieldCode, "["+clause+"] requires ["+field+"]").
		WithMetadata(fault.ClauseMetadata{Clause: clause, Field: field})
}

func nestedFault(clause, field string, err error) error {
	return fault.New(fault.NestedQueryCode, "["+clause+"] failed to parse inner query").
		WithMetadata(fault.ClauseMetadata{Clause: clause, Field: field}).
		WithOriginal(err)
}

// toCamelCase converts an underscored clause name to its camel-case
// alias, e.g. has_parent to hasParent.
func toCamelCase(name string) string {
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
