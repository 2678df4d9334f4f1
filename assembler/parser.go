package assembler

import "fmt"

// Parser turns a token stream into top-level items. Operand legality per
// opcode is checked by the compiler, not here; the parser only knows the
// shapes operands can take.
type Parser struct {
	lex    *Lexer
	tok    Token
	peeked bool
}

// NewParser creates a parser over src.
func NewParser(src string) *Parser {
	return &Parser{lex: NewLexer(src)}
}

func (p *Parser) next() (Token, error) {
	if p.peeked {
		p.peeked = false
		return p.tok, nil
	}
	return p.lex.Next()
}

func (p *Parser) peek() (Token, error) {
	if !p.peeked {
		tok, err := p.lex.Next()
		if err != nil {
			return Token{}, err
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok, nil
}

// Parse consumes the whole source and returns its items.
func (p *Parser) Parse() ([]Item, error) {
	var items []Item
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenEOF:
			return items, nil
		case TokenNewline:
			continue
		case TokenIdent:
			nxt, err := p.peek()
			if err != nil {
				return nil, err
			}
			if nxt.Kind == TokenColon {
				p.peeked = false
				items = append(items, &LabelItem{Offset: tok.Offset, Name: tok.Text})
				continue
			}
			ops, err := p.parseOperandList()
			if err != nil {
				return nil, err
			}
			items = append(items, &CommandItem{Offset: tok.Offset, Name: tok.Text, Operands: ops})
		case TokenDirective:
			ops, err := p.parseOperandList()
			if err != nil {
				return nil, err
			}
			items = append(items, &DirectiveItem{Offset: tok.Offset, Name: tok.Text, Operands: ops})
		default:
			return nil, &ParseError{
				Offset: tok.Offset,
				Reason: fmt.Sprintf("unexpected %s", tok),
			}
		}
	}
}

// parseOperandList reads comma-separated operands up to the end of the line.
func (p *Parser) parseOperandList() ([]Node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenNewline || tok.Kind == TokenEOF {
		return nil, nil
	}

	var ops []Node
	for {
		op, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenNewline, TokenEOF:
			return ops, nil
		default:
			return nil, &ParseError{
				Offset: tok.Offset,
				Reason: fmt.Sprintf("expected ',' or end of line, found %s", tok),
			}
		}
	}
}

func (p *Parser) parseOperand() (Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenInt:
		return &IntNode{Offset: tok.Offset, Value: tok.Value, Width: tok.Width}, nil
	case TokenString:
		return &StringNode{Offset: tok.Offset, Text: tok.Text}, nil
	case TokenLabelRef:
		return &LabelRefNode{Offset: tok.Offset, Name: tok.Text, Width: tok.Width}, nil
	case TokenOffsetRef:
		return &OffsetRefNode{Offset: tok.Offset, Value: uint32(tok.Value), Width: tok.Width}, nil
	case TokenType:
		return &TypeNode{Offset: tok.Offset, Name: tok.Text}, nil
	case TokenIdent:
		if tok.Text == "else" {
			ref, err := p.next()
			if err != nil {
				return nil, err
			}
			if ref.Kind != TokenLabelRef && ref.Kind != TokenOffsetRef {
				return nil, &ParseError{
					Offset: ref.Offset,
					Reason: fmt.Sprintf("expected label reference after else, found %s", ref),
				}
			}
			if ref.Kind == TokenOffsetRef {
				return &OffsetRefNode{Offset: tok.Offset, Value: uint32(ref.Value), Width: ref.Width}, nil
			}
			return &LabelRefNode{Offset: tok.Offset, Name: ref.Text, Width: ref.Width, Else: true}, nil
		}
		return p.parseCall(tok)
	}
	return nil, &ParseError{
		Offset: tok.Offset,
		Reason: fmt.Sprintf("expected operand, found %s", tok),
	}
}

// parseCall reads an operator application: a bare name or name(args...).
func (p *Parser) parseCall(name Token) (Node, error) {
	call := &CallNode{Offset: name.Offset, Name: name.Text}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenLParen {
		return call, nil
	}
	p.peeked = false

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenRParen {
		p.peeked = false
		return call, nil
	}
	for {
		arg, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenRParen:
			return call, nil
		default:
			return nil, &ParseError{
				Offset: tok.Offset,
				Reason: fmt.Sprintf("expected ',' or ')', found %s", tok),
			}
		}
	}
}
