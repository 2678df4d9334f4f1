package assembler

import (
	"fmt"

	"github.com/adierking/unplug/script"
)

// TokenKind identifies a lexical token class.
type TokenKind int

const (
	// TokenEOF marks the end of the source.
	TokenEOF TokenKind = iota
	// TokenNewline separates items.
	TokenNewline
	// TokenIdent is an identifier: an opcode, expression operator, or the
	// name part of a label declaration.
	TokenIdent
	// TokenInt is an integer literal with an optional forced width.
	TokenInt
	// TokenString is a string literal with escapes resolved.
	TokenString
	// TokenLabelRef is *name with an optional forced width.
	TokenLabelRef
	// TokenOffsetRef is *<integer>, a raw file offset reference.
	TokenOffsetRef
	// TokenType is @name, an atom.
	TokenType
	// TokenDirective is .name.
	TokenDirective
	TokenComma
	TokenColon
	TokenLParen
	TokenRParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenNewline:
		return "end of line"
	case TokenIdent:
		return "identifier"
	case TokenInt:
		return "integer"
	case TokenString:
		return "string"
	case TokenLabelRef:
		return "label reference"
	case TokenOffsetRef:
		return "offset reference"
	case TokenType:
		return "atom"
	case TokenDirective:
		return "directive"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	}
	return "token"
}

// Token is one lexical token. Offset is the byte offset of the token's first
// character in the source.
type Token struct {
	Kind   TokenKind
	Offset int
	// Text is the identifier, atom, or directive name, or the decoded string
	// contents, or the referenced label name.
	Text string
	// Value is the integer value for TokenInt and TokenOffsetRef.
	Value int64
	// Width is the forced width suffix on integers and references, or
	// WidthAuto.
	Width script.Width
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdent, TokenType, TokenDirective:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case TokenInt:
		return fmt.Sprintf("integer %d%s", t.Value, t.Width.Suffix())
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	case TokenLabelRef:
		return fmt.Sprintf("label reference *%s%s", t.Text, t.Width.Suffix())
	case TokenOffsetRef:
		return fmt.Sprintf("offset reference *0x%x%s", t.Value, t.Width.Suffix())
	}
	return t.Kind.String()
}
