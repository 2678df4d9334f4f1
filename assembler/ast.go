package assembler

import "github.com/adierking/unplug/script"

// Node is a parsed operand. Nodes carry their source offset so later stages
// can report errors against the original text.
type Node interface {
	Pos() int
}

// IntNode is an integer literal with an optional forced width.
type IntNode struct {
	Offset int
	Value  int64
	Width  script.Width
}

// StringNode is a string literal.
type StringNode struct {
	Offset int
	Text   string
}

// LabelRefNode is *name, optionally preceded by the else keyword and
// optionally carrying a forced width.
type LabelRefNode struct {
	Offset int
	Name   string
	Width  script.Width
	Else   bool
}

// OffsetRefNode is *<integer>, a raw file offset.
type OffsetRefNode struct {
	Offset int
	Value  uint32
	Width  script.Width
}

// TypeNode is @name.
type TypeNode struct {
	Offset int
	Name   string
}

// CallNode is name(args...) or a bare name. Expression operators and message
// commands both parse to this shape; which table the name resolves against
// depends on the operand's context.
type CallNode struct {
	Offset int
	Name   string
	Args   []Node
}

func (n *IntNode) Pos() int       { return n.Offset }
func (n *StringNode) Pos() int    { return n.Offset }
func (n *LabelRefNode) Pos() int  { return n.Offset }
func (n *OffsetRefNode) Pos() int { return n.Offset }
func (n *TypeNode) Pos() int      { return n.Offset }
func (n *CallNode) Pos() int      { return n.Offset }

// Item is a top-level source item.
type Item interface {
	ItemPos() int
}

// LabelItem is a label declaration (name:).
type LabelItem struct {
	Offset int
	Name   string
}

// DirectiveItem is .name followed by operands.
type DirectiveItem struct {
	Offset   int
	Name     string
	Operands []Node
}

// CommandItem is an instruction with its operand list.
type CommandItem struct {
	Offset   int
	Name     string
	Operands []Node
}

func (i *LabelItem) ItemPos() int     { return i.Offset }
func (i *DirectiveItem) ItemPos() int { return i.Offset }
func (i *CommandItem) ItemPos() int   { return i.Offset }
