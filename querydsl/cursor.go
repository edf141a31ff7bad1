package querydsl

import (
	"strconv"

	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

// TokenSource is a pull-based producer of document tokens. The lexer
// package provides the JSON implementation; tests may supply their own.
type TokenSource interface {
	NextToken() token.Token
}

// Cursor advances over a token source one token at a time with a single
// token of lookahead. Clause parsers only ever move it forward and never
// retain it past the clause body they were handed.
type Cursor struct {
	src  TokenSource
	cur  token.Token
	peek token.Token
}

func NewCursor(src TokenSource) *Cursor {
	c := &Cursor{src: src}
	c.Next()
	c.Next()
	return c
}

func (c *Cursor) Next() token.Token {
	c.cur = c.peek
	c.peek = c.src.NextToken()
	return c.cur
}

func (c *Cursor) Current() token.Token {
	return c.cur
}

// Text returns the current token's literal. Numbers and booleans read as
// their textual form, matching the tolerant reads of the original parsers.
func (c *Cursor) Text() (string, error) {
	if !c.cur.IsValue() {
		return "", fault.New(fault.MalformedValueCode, "expected a value token, found "+c.cur.Literal)
	}
	return c.cur.Literal, nil
}

func (c *Cursor) Float() (float64, error) {
	switch c.cur.Type {
	case token.NUMBER, token.STRING:
		f, err := strconv.ParseFloat(c.cur.Literal, 64)
		if err != nil {
			return 0, fault.New(fault.MalformedValueCode, "cannot read "+c.cur.Literal+" as a number").WithOriginal(err)
		}
		return f, nil
	}
	return 0, fault.New(fault.MalformedValueCode, "expected a numeric token, found "+c.cur.Literal)
}

func (c *Cursor) Bool() (bool, error) {
	switch c.cur.Type {
	case token.TRUE:
		return true, nil
	case token.FALSE:
		return false, nil
	case token.STRING:
		switch c.cur.Literal {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fault.New(fault.MalformedValueCode, "cannot read "+c.cur.Literal+" as a boolean")
}

// ReadValue consumes the current token and, for containers, every token up
// to the matching end marker, returning the subtree as plain Go values.
// The cursor is left on the subtree's final token.
func (c *Cursor) ReadValue() (any, error) {
	switch c.cur.Type {
	case token.STARTOBJECT:
		m := map[string]any{}
		for t := c.Next(); t.Type != token.ENDOBJECT; t = c.Next() {
			if t.Type != token.FIELDNAME {
				return nil, fault.New(fault.MalformedValueCode, "expected a field name, found "+t.Literal)
			}
			key := t.Literal
			c.Next()
			v, err := c.ReadValue()
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	case token.STARTARRAY:
		arr := []any{}
		for t := c.Next(); t.Type != token.ENDARRAY; t = c.Next() {
			v, err := c.ReadValue()
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case token.STRING:
		return c.cur.Literal, nil
	case token.NUMBER:
		f, err := strconv.ParseFloat(c.cur.Literal, 64)
		if err != nil {
			return nil, fault.New(fault.MalformedValueCode, "cannot read "+c.cur.Literal+" as a number").WithOriginal(err)
		}
		return f, nil
	case token.TRUE:
		return true, nil
	case token.FALSE:
		return false, nil
	case token.NULL:
		return nil, nil
	}
	return nil, fault.New(fault.MalformedValueCode, "unexpected token "+c.cur.Literal)
}

// SkipChildren discards the current value, including every token of a
// nested object or array.
func (c *Cursor) SkipChildren() error {
	_, err := c.ReadValue()
	return err
}
