package assembler

import (
	"fmt"
	"strconv"

	"github.com/adierking/unplug/script"
)

// LexErrorKind classifies lexical failures.
type LexErrorKind int

const (
	// UnterminatedString means a string literal ran to end of file.
	UnterminatedString LexErrorKind = iota
	// UnterminatedBlockComment means a block comment ran to end of file.
	UnterminatedBlockComment
	// InvalidCharacter means a character could not start or continue any
	// token.
	InvalidCharacter
)

// LexError reports a malformed token at a byte offset.
type LexError struct {
	Kind   LexErrorKind
	Offset int
}

func (e *LexError) Error() string {
	switch e.Kind {
	case UnterminatedString:
		return fmt.Sprintf("offset %d: unterminated string", e.Offset)
	case UnterminatedBlockComment:
		return fmt.Sprintf("offset %d: unterminated block comment", e.Offset)
	}
	return fmt.Sprintf("offset %d: invalid character", e.Offset)
}

// Lexer produces tokens from source text on demand.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Next returns the next token, or a LexError. After the end of the source it
// keeps returning TokenEOF.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipSpace(); err != nil {
		return Token{}, err
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Offset: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '\n':
		l.pos++
		return Token{Kind: TokenNewline, Offset: start}, nil
	case c == ',':
		l.pos++
		return Token{Kind: TokenComma, Offset: start}, nil
	case c == ':':
		l.pos++
		return Token{Kind: TokenColon, Offset: start}, nil
	case c == '(':
		l.pos++
		return Token{Kind: TokenLParen, Offset: start}, nil
	case c == ')':
		l.pos++
		return Token{Kind: TokenRParen, Offset: start}, nil
	case c == '"':
		return l.lexString()
	case c == '*':
		return l.lexReference()
	case c == '@':
		l.pos++
		name := l.lexIdentText()
		if name == "" {
			return Token{}, &LexError{Kind: InvalidCharacter, Offset: l.pos}
		}
		return Token{Kind: TokenType, Offset: start, Text: name}, nil
	case c == '.':
		l.pos++
		name := l.lexIdentText()
		if name == "" {
			return Token{}, &LexError{Kind: InvalidCharacter, Offset: l.pos}
		}
		return Token{Kind: TokenDirective, Offset: start, Text: name}, nil
	case isDigit(c) || c == '-':
		return l.lexInt()
	case isIdentStart(c):
		return Token{Kind: TokenIdent, Offset: start, Text: l.lexIdentText()}, nil
	}
	return Token{}, &LexError{Kind: InvalidCharacter, Offset: start}
}

// skipSpace consumes whitespace (except newlines) and comments.
func (l *Lexer) skipSpace() error {
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			start := l.pos
			l.pos += 2
			for {
				if l.pos+1 >= len(l.src) {
					return &LexError{Kind: UnterminatedBlockComment, Offset: start}
				}
				if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) lexIdentText() string {
	start := l.pos
	for l.pos < len(l.src) && isIdent(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// lexWidthSuffix consumes a trailing .b/.w/.d if present.
func (l *Lexer) lexWidthSuffix() script.Width {
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' {
		switch l.src[l.pos+1] {
		case 'b':
			l.pos += 2
			return script.Width8
		case 'w':
			l.pos += 2
			return script.Width16
		case 'd':
			l.pos += 2
			return script.Width32
		}
	}
	return script.WidthAuto
}

func (l *Lexer) lexInt() (Token, error) {
	start := l.pos
	neg := false
	if l.src[l.pos] == '-' {
		neg = true
		l.pos++
		if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
			return Token{}, &LexError{Kind: InvalidCharacter, Offset: start}
		}
	}

	var value int64
	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) &&
		(l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X') {
		l.pos += 2
		digits := l.pos
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == digits {
			return Token{}, &LexError{Kind: InvalidCharacter, Offset: l.pos}
		}
		v, err := strconv.ParseUint(l.src[digits:l.pos], 16, 32)
		if err != nil {
			return Token{}, &LexError{Kind: InvalidCharacter, Offset: digits}
		}
		value = int64(v)
	} else {
		digits := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		v, err := strconv.ParseUint(l.src[digits:l.pos], 10, 32)
		if err != nil {
			return Token{}, &LexError{Kind: InvalidCharacter, Offset: digits}
		}
		value = int64(v)
	}
	if neg {
		value = -value
	}

	width := l.lexWidthSuffix()
	return Token{Kind: TokenInt, Offset: start, Value: value, Width: width}, nil
}

// lexReference handles *name and *<integer> with optional width suffixes.
func (l *Lexer) lexReference() (Token, error) {
	start := l.pos
	l.pos++
	if l.pos >= len(l.src) {
		return Token{}, &LexError{Kind: InvalidCharacter, Offset: start}
	}
	if isIdentStart(l.src[l.pos]) {
		name := l.lexIdentText()
		width := l.lexWidthSuffix()
		return Token{Kind: TokenLabelRef, Offset: start, Text: name, Width: width}, nil
	}
	if isDigit(l.src[l.pos]) {
		tok, err := l.lexInt()
		if err != nil {
			return Token{}, err
		}
		tok.Kind = TokenOffsetRef
		tok.Offset = start
		return tok, nil
	}
	return Token{}, &LexError{Kind: InvalidCharacter, Offset: start}
}

// lexString decodes a quoted literal. Escapes: \n \v \t \r \0 \" \\. Percent
// placeholders pass through untouched; they belong to the format operator.
func (l *Lexer) lexString() (Token, error) {
	start := l.pos
	l.pos++
	var out []byte
	for {
		if l.pos >= len(l.src) {
			return Token{}, &LexError{Kind: UnterminatedString, Offset: start}
		}
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return Token{Kind: TokenString, Offset: start, Text: string(out)}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return Token{}, &LexError{Kind: UnterminatedString, Offset: start}
			}
			l.pos++
			switch l.src[l.pos] {
			case 'n':
				out = append(out, '\n')
			case 'v':
				out = append(out, '\v')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '0':
				out = append(out, 0)
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				return Token{}, &LexError{Kind: InvalidCharacter, Offset: l.pos}
			}
			l.pos++
		case '\n':
			return Token{}, &LexError{Kind: UnterminatedString, Offset: start}
		default:
			out = append(out, c)
			l.pos++
		}
	}
}
