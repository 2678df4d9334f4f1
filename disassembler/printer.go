package disassembler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adierking/unplug/script"
)

// Print renders a script model as canonical source text. The output parses
// and assembles back to the bytes the model was decoded from.
func Print(s *script.Script) (string, error) {
	p := &printer{s: s}
	if err := p.print(); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

type printer struct {
	s *script.Script
	b strings.Builder
}

func (p *printer) print() error {
	switch p.s.Target {
	case script.TargetGlobals:
		p.b.WriteString(".globals\n")
	case script.TargetStage:
		fmt.Fprintf(&p.b, ".stage %s\n", quote(p.s.Stage))
	default:
		return &script.ResolutionError{Kind: script.MissingTarget}
	}
	if err := p.entryPoints(); err != nil {
		return err
	}
	p.b.WriteString("\n")

	for i, blk := range p.s.Blocks {
		for _, id := range p.s.Labels.FindBlock(i) {
			l, _ := p.s.Labels.Get(id)
			p.b.WriteString(l.Name)
			p.b.WriteString(":\n")
		}
		var err error
		if blk.IsCode() {
			err = p.code(blk)
		} else {
			err = p.data(blk)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) entryPoints() error {
	eps := make([]script.EntryPoint, 0, len(p.s.EntryPoints))
	for ep := range p.s.EntryPoints {
		eps = append(eps, ep)
	}
	sort.Slice(eps, func(i, j int) bool {
		if eps[i].Kind != eps[j].Kind {
			return eps[i].Kind < eps[j].Kind
		}
		return eps[i].Index < eps[j].Index
	})
	for _, ep := range eps {
		name, err := p.labelName(p.s.EntryPoints[ep])
		if err != nil {
			return err
		}
		switch ep.Kind {
		case script.EntryInteract, script.EntryLib:
			fmt.Fprintf(&p.b, ".%s %d, *%s\n", ep.Kind.Directive().Name(), ep.Index, name)
		default:
			fmt.Fprintf(&p.b, ".%s *%s\n", ep.Kind.Directive().Name(), name)
		}
	}
	return nil
}

func (p *printer) labelName(id script.LabelID) (string, error) {
	l, ok := p.s.Labels.Get(id)
	if !ok {
		return "", fmt.Errorf("print: label %d does not exist", id)
	}
	return l.Name, nil
}

func (p *printer) code(blk *script.Block) error {
	for i := range blk.Commands {
		if err := p.command(&blk.Commands[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) command(c *script.Command) error {
	p.b.WriteString("\t")
	p.b.WriteString(c.Op.Name())
	for i, a := range c.Args {
		if i == 0 {
			p.b.WriteString(" ")
		} else {
			p.b.WriteString(", ")
		}
		// Branch targets of conditionals read as else-branches.
		if c.Op.IsIf() {
			switch a.(type) {
			case *script.LabelOperand, *script.OffsetOperand:
				p.b.WriteString("else ")
			}
		}
		if err := p.operand(a); err != nil {
			return err
		}
	}
	p.b.WriteString("\n")
	return nil
}

func (p *printer) operand(a script.Operand) error {
	switch a := a.(type) {
	case *script.IntOperand:
		fmt.Fprintf(&p.b, "%d%s", a.Value, a.Width.Suffix())
	case *script.TextOperand:
		return p.text(a.Bytes)
	case *script.LabelOperand:
		name, err := p.labelName(a.Label)
		if err != nil {
			return err
		}
		fmt.Fprintf(&p.b, "*%s%s", name, a.Width.Suffix())
	case *script.OffsetOperand:
		fmt.Fprintf(&p.b, "*0x%x%s", a.Offset, a.Width.Suffix())
	case *script.TypeOperand:
		p.b.WriteString("@")
		p.b.WriteString(a.Type.Name())
	case *script.ExprOperand:
		return p.expr(a)
	case *script.MsgOperand:
		return p.msg(a)
	default:
		return fmt.Errorf("print: unhandled operand %T", a)
	}
	return nil
}

func (p *printer) expr(x *script.ExprOperand) error {
	if x.Op.IsImmediate() {
		if len(x.Args) != 1 {
			return fmt.Errorf("print: malformed immediate")
		}
		return p.operand(x.Args[0])
	}
	p.b.WriteString(x.Op.Name())
	if len(x.Args) == 0 {
		return nil
	}
	p.b.WriteString("(")
	for i, a := range x.Args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		if err := p.operand(a); err != nil {
			return err
		}
	}
	p.b.WriteString(")")
	return nil
}

func (p *printer) msg(m *script.MsgOperand) error {
	// The command printer already wrote the space before the first operand.
	first := true
	sep := func() {
		if first {
			first = false
			return
		}
		p.b.WriteString(", ")
	}

	// Text runs and newline controls fold into one string literal.
	var run []byte
	flush := func() error {
		if run == nil {
			return nil
		}
		sep()
		err := p.text(run)
		run = nil
		return err
	}

	for i := range m.Commands {
		c := &m.Commands[i]
		switch {
		case c.IsText():
			run = append(run, c.Text...)
		case c.Op == script.MsgNewline:
			run = append(run, '\n')
		case c.Op == script.MsgNewlineVt:
			run = append(run, '\v')
		default:
			if err := flush(); err != nil {
				return err
			}
			sep()
			if err := p.msgCommand(c); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (p *printer) msgCommand(c *script.MsgCommand) error {
	sig, ok := script.MatchMsgCommand(c)
	if !ok {
		return fmt.Errorf("print: %s: arguments match no signature", c.Op.Name())
	}
	p.b.WriteString(c.Op.Name())
	if len(c.Args) == 0 {
		return nil
	}
	p.b.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		if sig.Args[i].Kind == script.MsgArgRgba {
			v, ok := a.(*script.IntOperand)
			if !ok {
				return fmt.Errorf("print: %s: malformed color argument", c.Op.Name())
			}
			fmt.Fprintf(&p.b, "0x%08x", uint32(v.Value))
			continue
		}
		if err := p.operand(a); err != nil {
			return err
		}
	}
	p.b.WriteString(")")
	return nil
}

// text prints encoded game text as a quoted string literal.
func (p *printer) text(b []byte) error {
	s, err := script.DecodeText(b)
	if err != nil {
		return err
	}
	p.b.WriteString(quote(s))
	return nil
}

func quote(s string) string {
	var b strings.Builder
	b.WriteString("\"")
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\v':
			b.WriteString(`\v`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString("\"")
	return b.String()
}

// Values per line for each data directive.
const (
	dbPerLine = 16
	dwPerLine = 8
	ddPerLine = 4
)

func (p *printer) data(blk *script.Block) error {
	// Group consecutive values that share a directive.
	i := 0
	for i < len(blk.Data) {
		dir, perLine := dataDirective(blk.Data[i])
		j := i + 1
		for j < len(blk.Data) {
			d, _ := dataDirective(blk.Data[j])
			if d != dir {
				break
			}
			j++
		}
		for start := i; start < j; start += perLine {
			end := start + perLine
			if end > j {
				end = j
			}
			p.b.WriteString("\t")
			p.b.WriteString(dir)
			for k := start; k < end; k++ {
				if k == start {
					p.b.WriteString(" ")
				} else {
					p.b.WriteString(", ")
				}
				if err := p.datum(blk.Data[k]); err != nil {
					return err
				}
			}
			p.b.WriteString("\n")
		}
		i = j
	}
	return nil
}

func dataDirective(a script.Operand) (string, int) {
	if v, ok := a.(*script.IntOperand); ok {
		switch v.Width {
		case script.Width8:
			return ".db", dbPerLine
		case script.Width16:
			return ".dw", dwPerLine
		}
	}
	return ".dd", ddPerLine
}

func (p *printer) datum(a script.Operand) error {
	switch a := a.(type) {
	case *script.IntOperand:
		v := uint32(a.Value)
		switch a.Width {
		case script.Width8:
			v &= 0xff
		case script.Width16:
			v &= 0xffff
		}
		fmt.Fprintf(&p.b, "0x%x", v)
	case *script.LabelOperand:
		name, err := p.labelName(a.Label)
		if err != nil {
			return err
		}
		fmt.Fprintf(&p.b, "*%s", name)
	default:
		return fmt.Errorf("print: unhandled data operand %T", a)
	}
	return nil
}
