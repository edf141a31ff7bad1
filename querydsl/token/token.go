package token

const (
	ILLEGAL TokenType = iota
	EOF

	// Structure markers
	STARTOBJECT
	ENDOBJECT
	STARTARRAY
	ENDARRAY

	// Field names + scalar values
	FIELDNAME
	STRING
	NUMBER
	TRUE
	FALSE
	NULL
)

type TokenType int

type Token struct {
	Type    TokenType
	Literal string
}

// IsValue reports whether the token carries a usable scalar value. Null
// is not a value: a null-valued field reads as if it were absent, so
// parsers never dispatch on it.
func (t Token) IsValue() bool {
	switch t.Type {
	case STRING, NUMBER, TRUE, FALSE:
		return true
	}
	return false
}
