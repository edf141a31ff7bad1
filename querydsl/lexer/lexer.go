// Package lexer tokenizes a JSON query document into the typed token
// stream consumed by the querydsl cursor. Commas and colons are structural
// noise and are never emitted; strings in key position come out as
// FIELDNAME tokens instead of STRING.
package lexer

import (
	"strings"

	"github.com/vhyza/elasticsearch/querydsl/token"
)

type Lexer struct {
	input   []rune
	pos     int  // position of the current character in the input string
	readPos int  // position of the next character to be read
	char    rune // current character being processed

	nesting     []rune // stack of '{' and '[' marking the open containers
	expectField bool   // next string inside an object is a key, not a value
}

var keywords = map[string]token.TokenType{
	"null":  token.NULL,
	"true":  token.TRUE,
	"false": token.FALSE,
}

func New(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.char = 0
	} else {
		l.char = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.char {
	case '{':
		l.nesting = append(l.nesting, '{')
		l.expectField = true
		tok = token.Token{Type: token.STARTOBJECT, Literal: "{"}
	case '}':
		l.popNesting()
		tok = token.Token{Type: token.ENDOBJECT, Literal: "}"}
	case '[':
		l.nesting = append(l.nesting, '[')
		l.expectField = false
		tok = token.Token{Type: token.STARTARRAY, Literal: "["}
	case ']':
		l.popNesting()
		tok = token.Token{Type: token.ENDARRAY, Literal: "]"}
	case ',':
		if l.insideObject() {
			l.expectField = true
		}
		l.readChar()
		return l.NextToken()
	case ':':
		l.expectField = false
		l.readChar()
		return l.NextToken()
	case 0:
		tok = token.Token{Type: token.EOF, Literal: ""}
	case '"':
		literal := l.readQuotedString()
		if l.expectField && l.insideObject() {
			l.expectField = false
			tok = token.Token{Type: token.FIELDNAME, Literal: literal}
		} else {
			tok = token.Token{Type: token.STRING, Literal: literal}
		}
	default:
		if isDigit(l.char) || l.char == '-' {
			return l.readNumber()
		} else if isLetter(l.char) {
			return l.readKeyword()
		}
		tok = token.Token{Type: token.ILLEGAL, Literal: string(l.char)}
	}

	l.readChar()
	return tok
}

func (l *Lexer) popNesting() {
	if len(l.nesting) > 0 {
		l.nesting = l.nesting[:len(l.nesting)-1]
	}
	l.expectField = false
}

func (l *Lexer) insideObject() bool {
	return len(l.nesting) > 0 && l.nesting[len(l.nesting)-1] == '{'
}

func (l *Lexer) readKeyword() token.Token {
	pos := l.pos
	for isLetter(l.char) {
		l.readChar()
	}

	literal := string(l.input[pos:l.pos])
	if tok, ok := keywords[literal]; ok {
		return token.Token{Type: tok, Literal: literal}
	}
	return token.Token{Type: token.ILLEGAL, Literal: literal}
}

func (l *Lexer) readNumber() token.Token {
	pos := l.pos

	if l.char == '-' {
		l.readChar()
	}

	valid := isDigit(l.char)
	for isDigit(l.char) || l.char == '.' || l.char == 'e' || l.char == 'E' || l.char == '+' || l.char == '-' {
		l.readChar()
	}

	literal := string(l.input[pos:l.pos])
	if !valid {
		return token.Token{Type: token.ILLEGAL, Literal: literal}
	}
	return token.Token{Type: token.NUMBER, Literal: literal}
}

func (l *Lexer) readQuotedString() string {
	var sb strings.Builder

	for {
		l.readChar()
		if l.char == '"' || l.char == 0 {
			break
		}

		if l.char == '\\' {
			l.readChar()
			switch l.char {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case 'b':
				sb.WriteRune('\b')
			case 'f':
				sb.WriteRune('\f')
			case 0:
				return sb.String()
			default:
				// covers \" \\ \/ and leaves \uXXXX sequences alone
				sb.WriteRune(l.char)
			}
			continue
		}

		sb.WriteRune(l.char)
	}

	return sb.String()
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.char) {
		l.readChar()
	}
}
