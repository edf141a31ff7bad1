package querydsl

import (
	"strconv"

	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

// ValueKind discriminates the coerced form of a scalar token.
type ValueKind uint8

const (
	// ValueAbsent marks a field that was never set, or was set to an
	// explicit null. Null never reaches a builder as a value.
	ValueAbsent ValueKind = iota
	ValueString
	ValueNumber
	ValueBoolean
)

// Value is the tagged scalar union used for type-ambiguous fields such as
// range bounds. A textual "2d" and a numeric 2 stay distinguishable so
// downstream unit parsing can interpret the original form.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

func (v Value) IsSet() bool {
	return v.Kind != ValueAbsent
}

// Interface returns the native Go value, or nil for an absent one.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return v.Num
	case ValueBoolean:
		return v.Bool
	}
	return nil
}

func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

func NumberValue(f float64) Value {
	return Value{Kind: ValueNumber, Num: f}
}

func BooleanValue(b bool) Value {
	return Value{Kind: ValueBoolean, Bool: b}
}

// CoerceScalar converts a scalar token into a Value. Strings pass through
// verbatim; numeric-looking strings are not converted. Null coerces to the
// absent value.
func CoerceScalar(tok token.Token) (Value, error) {
	switch tok.Type {
	case token.STRING:
		return StringValue(tok.Literal), nil
	case token.NUMBER:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return Value{}, fault.New(fault.MalformedValueCode, "cannot read "+tok.Literal+" as a number").WithOriginal(err)
		}
		return NumberValue(f), nil
	case token.TRUE:
		return BooleanValue(true), nil
	case token.FALSE:
		return BooleanValue(false), nil
	case token.NULL:
		return Value{}, nil
	}
	return Value{}, fault.New(fault.MalformedValueCode, "expected a scalar value, found "+tok.Literal)
}
