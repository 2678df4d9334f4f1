package assembler

import (
	"bytes"
	"fmt"

	"github.com/adierking/unplug/script"
)

// Output is the result of assembling one translation unit.
type Output struct {
	Code []byte
	// EntryPoints maps each declared entry point to its offset within Code.
	// The container that stores the script owns these; they never appear in
	// the code buffer itself.
	EntryPoints map[script.EntryPoint]uint32
}

// encoder lays out a script's blocks and emits bytecode. Address layout is a
// fixed-point relaxation: pointers start at the narrowest width and widen
// until every target offset fits.
type encoder struct {
	s      *script.Script
	max    int
	addrs  []uint32
	widths map[*script.LabelOperand]script.Width
	refs   []*script.LabelOperand
	buf    bytes.Buffer
}

func newEncoder(s *script.Script, maxPasses int) *encoder {
	return &encoder{
		s:      s,
		max:    maxPasses,
		addrs:  make([]uint32, len(s.Blocks)),
		widths: make(map[*script.LabelOperand]script.Width),
	}
}

func (e *encoder) encode() (*Output, error) {
	e.collectRefs()
	for _, r := range e.refs {
		if _, ok := e.s.Resolve(r.Label); !ok {
			return nil, &EncodeError{Kind: UnresolvedLabel, Label: e.labelName(r.Label)}
		}
	}
	for _, id := range e.s.EntryPoints {
		if _, ok := e.s.Resolve(id); !ok {
			return nil, &EncodeError{Kind: UnresolvedLabel, Label: e.labelName(id)}
		}
	}

	// Widening is monotonic, so the default bound always suffices; it exists
	// so a bug cannot loop forever.
	max := e.max
	if max <= 0 {
		max = 2*len(e.refs) + 4
	}
	last := ""
	for pass := 0; pass < max; pass++ {
		if err := e.emitAll(); err != nil {
			return nil, err
		}
		widened, name, err := e.relax()
		if err != nil {
			return nil, err
		}
		if !widened {
			// Addresses are stable. Emit once more so forward references
			// pick up their final values.
			if err := e.emitAll(); err != nil {
				return nil, err
			}
			return e.output(), nil
		}
		last = name
	}
	return nil, &EncodeError{Kind: UnstableLayout, Label: last}
}

func (e *encoder) labelName(id script.LabelID) string {
	if l, ok := e.s.Labels.Get(id); ok {
		return l.Name
	}
	return fmt.Sprintf("#%d", id)
}

// collectRefs gathers every label operand, including those nested inside
// expressions, so relaxation can visit them all.
func (e *encoder) collectRefs() {
	var walk func(op script.Operand)
	walk = func(op script.Operand) {
		switch op := op.(type) {
		case *script.LabelOperand:
			e.refs = append(e.refs, op)
		case *script.ExprOperand:
			for _, a := range op.Args {
				walk(a)
			}
		case *script.MsgOperand:
			for _, c := range op.Commands {
				for _, a := range c.Args {
					walk(a)
				}
			}
		}
	}
	for _, b := range e.s.Blocks {
		for i := range b.Commands {
			for _, a := range b.Commands[i].Args {
				walk(a)
			}
		}
		for _, d := range b.Data {
			walk(d)
		}
	}
}

// width returns the current encoding width of a label operand.
func (e *encoder) width(r *script.LabelOperand) script.Width {
	if r.Width != script.WidthAuto {
		return r.Width
	}
	if w, ok := e.widths[r]; ok {
		return w
	}
	return script.Width8
}

// relax widens any pointer whose target no longer fits. Forced widths are
// never widened; an overflowing forced width is an error.
func (e *encoder) relax() (bool, string, error) {
	widened := false
	last := ""
	for _, r := range e.refs {
		block, _ := e.s.Resolve(r.Label)
		target := e.addrs[block]
		w := e.width(r)
		if w.FitsUnsigned(target) {
			continue
		}
		if r.Width != script.WidthAuto {
			return false, "", &EncodeError{
				Kind:  ValueOutOfRange,
				Label: e.labelName(r.Label),
				Value: int64(target),
				Width: r.Width,
			}
		}
		e.widths[r] = w.Widen()
		widened = true
		last = e.labelName(r.Label)
	}
	return widened, last, nil
}

func (e *encoder) emitAll() error {
	e.buf.Reset()
	for i, b := range e.s.Blocks {
		e.addrs[i] = uint32(e.buf.Len())
		if err := e.emitBlock(&e.buf, b); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) output() *Output {
	out := &Output{
		Code:        append([]byte(nil), e.buf.Bytes()...),
		EntryPoints: make(map[script.EntryPoint]uint32, len(e.s.EntryPoints)),
	}
	for ep, id := range e.s.EntryPoints {
		block, _ := e.s.Resolve(id)
		out.EntryPoints[ep] = e.addrs[block]
	}
	return out
}

func (e *encoder) emitBlock(dst *bytes.Buffer, b *script.Block) error {
	if b.IsCode() {
		for i := range b.Commands {
			if err := e.emitCommand(dst, &b.Commands[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, d := range b.Data {
		if err := e.emitDatum(dst, d); err != nil {
			return err
		}
	}
	return nil
}

// emitDatum writes a raw data value with no width tag.
func (e *encoder) emitDatum(dst *bytes.Buffer, op script.Operand) error {
	switch op := op.(type) {
	case *script.IntOperand:
		writeInt(dst, op.Width, int64(op.Value))
		return nil
	case *script.LabelOperand:
		block, _ := e.s.Resolve(op.Label)
		writeInt(dst, script.Width32, int64(e.addrs[block]))
		return nil
	}
	return &EncodeError{Kind: UnsupportedOperand, Detail: "data value"}
}

func (e *encoder) emitCommand(dst *bytes.Buffer, cmd *script.Command) error {
	dst.WriteByte(byte(cmd.Op))
	switch cmd.Op {
	case script.CmdAnim, script.CmdAnim1, script.CmdAnim2:
		// Variable-length argument list terminated by an 8-bit -1. A genuine
		// -1 argument widens to 16 bits so the decoder cannot mistake it for
		// the terminator.
		for i, a := range cmd.Args {
			if i > 0 && animArgClash(a) {
				if err := e.emitImm(dst, -1, script.Width16); err != nil {
					return err
				}
				continue
			}
			if err := e.emitOperand(dst, a); err != nil {
				return err
			}
		}
		dst.WriteByte(byte(script.ExprImm8))
		writeInt(dst, script.Width8, -1)
		return nil
	case script.CmdCall:
		if len(cmd.Args) == 0 {
			return &EncodeError{Kind: UnsupportedOperand, Detail: "call without target"}
		}
		if err := e.emitOperand(dst, cmd.Args[0]); err != nil {
			return err
		}
		// The engine skips calls it cannot dispatch using a byte size.
		var body bytes.Buffer
		for _, a := range cmd.Args[1:] {
			if err := e.emitOperand(&body, a); err != nil {
				return err
			}
		}
		if body.Len() > 0xffff {
			return &EncodeError{Kind: ValueOutOfRange,
				Value: int64(body.Len()), Width: script.Width16}
		}
		writeInt(dst, script.Width16, int64(body.Len()))
		dst.Write(body.Bytes())
		return nil
	case script.CmdPtcl:
		if len(cmd.Args) >= 3 {
			if t, ok := cmd.Args[1].(*script.TypeOperand); ok && t.Type == script.TypeLead {
				return e.emitPtclLead(dst, cmd.Args)
			}
		}
	}
	for _, a := range cmd.Args {
		if err := e.emitOperand(dst, a); err != nil {
			return err
		}
	}
	return nil
}

// emitPtclLead writes the @lead form of ptcl, which carries an explicit
// argument count.
func (e *encoder) emitPtclLead(dst *bytes.Buffer, args []script.Operand) error {
	for _, a := range args[:3] {
		if err := e.emitOperand(dst, a); err != nil {
			return err
		}
	}
	if err := e.emitImm(dst, int32(len(args)-3), script.WidthAuto); err != nil {
		return err
	}
	for _, a := range args[3:] {
		if err := e.emitOperand(dst, a); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) emitOperand(dst *bytes.Buffer, op script.Operand) error {
	switch op := op.(type) {
	case *script.IntOperand:
		w := op.Width
		if w == script.WidthAuto {
			w = script.MinSigned(int64(op.Value))
		} else if !w.FitsSigned(int64(op.Value)) {
			return &EncodeError{Kind: ValueOutOfRange, Value: int64(op.Value), Width: w}
		}
		dst.WriteByte(byte(w))
		writeInt(dst, w, int64(op.Value))
		return nil
	case *script.TextOperand:
		dst.Write(op.Bytes)
		dst.WriteByte(0)
		return nil
	case *script.LabelOperand:
		block, _ := e.s.Resolve(op.Label)
		w := e.width(op)
		dst.WriteByte(byte(w))
		writeInt(dst, w, int64(e.addrs[block]))
		return nil
	case *script.OffsetOperand:
		w := op.Width
		if w == script.WidthAuto {
			w = script.MinUnsigned(op.Offset)
		} else if !w.FitsUnsigned(op.Offset) {
			return &EncodeError{Kind: ValueOutOfRange, Value: int64(op.Offset), Width: w}
		}
		dst.WriteByte(byte(w))
		writeInt(dst, w, int64(op.Offset))
		return nil
	case *script.TypeOperand:
		return e.emitImm(dst, int32(op.Type), script.WidthAuto)
	case *script.ExprOperand:
		return e.emitExpr(dst, op)
	case *script.MsgOperand:
		return e.emitMsg(dst, op)
	}
	return &EncodeError{Kind: UnsupportedOperand, Detail: "operand variant"}
}

// emitImm writes an immediate expression for a value.
func (e *encoder) emitImm(dst *bytes.Buffer, v int32, w script.Width) error {
	if w == script.WidthAuto {
		w = script.MinSigned(int64(v))
	} else if !w.FitsSigned(int64(v)) {
		return &EncodeError{Kind: ValueOutOfRange, Value: int64(v), Width: w}
	}
	dst.WriteByte(byte(script.ImmOp(w, v)))
	writeInt(dst, w, int64(v))
	return nil
}

func (e *encoder) emitExpr(dst *bytes.Buffer, x *script.ExprOperand) error {
	if x.Op.IsImmediate() {
		in, ok := firstInt(x.Args)
		if !ok {
			return &EncodeError{Kind: UnsupportedOperand, Detail: "immediate without value"}
		}
		return e.emitImm(dst, in.Value, script.ImmWidth(x.Op))
	}
	dst.WriteByte(byte(x.Op))
	switch x.Op {
	case script.ExprAddressOf:
		if len(x.Args) != 1 {
			return &EncodeError{Kind: UnsupportedOperand, Detail: "addr arity"}
		}
		return e.emitOperand(dst, x.Args[0])
	case script.ExprStack, script.ExprParentStack:
		in, ok := firstInt(x.Args)
		if !ok || in.Value < 0 || in.Value > 0xff {
			v := int64(0)
			if ok {
				v = int64(in.Value)
			}
			return &EncodeError{Kind: ValueOutOfRange, Value: v, Width: script.Width8}
		}
		dst.WriteByte(byte(in.Value))
		return nil
	}
	for _, a := range x.Args {
		var err error
		switch a := a.(type) {
		case *script.ExprOperand:
			err = e.emitExpr(dst, a)
		case *script.TypeOperand:
			err = e.emitImm(dst, int32(a.Type), script.WidthAuto)
		case *script.IntOperand:
			err = e.emitImm(dst, a.Value, a.Width)
		default:
			err = &EncodeError{Kind: UnsupportedOperand, Detail: "expression argument"}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) emitMsg(dst *bytes.Buffer, m *script.MsgOperand) error {
	var body bytes.Buffer
	for i := range m.Commands {
		if err := e.emitMsgCommand(&body, &m.Commands[i]); err != nil {
			return err
		}
	}
	body.WriteByte(byte(script.MsgEnd))
	if body.Len() > 0xffff {
		return &EncodeError{Kind: ValueOutOfRange,
			Value: int64(body.Len()), Width: script.Width16}
	}
	writeInt(dst, script.Width16, int64(body.Len()))
	dst.Write(body.Bytes())
	return nil
}

func (e *encoder) emitMsgCommand(dst *bytes.Buffer, c *script.MsgCommand) error {
	if c.IsText() {
		dst.Write(c.Text)
		return nil
	}
	dst.WriteByte(byte(c.Op))
	sig, ok := script.MatchMsgCommand(c)
	if !ok {
		return &EncodeError{
			Kind:   UnsupportedOperand,
			Detail: fmt.Sprintf("message command %d arguments", c.Op),
		}
	}
	for i, a := range sig.Args {
		if a.Kind == script.MsgArgString {
			t, ok := c.Args[i].(*script.TextOperand)
			if !ok {
				return &EncodeError{Kind: UnsupportedOperand, Detail: "message string"}
			}
			dst.Write(t.Bytes)
			dst.WriteByte(0)
			continue
		}
		in, ok := c.Args[i].(*script.IntOperand)
		if !ok {
			return &EncodeError{Kind: UnsupportedOperand, Detail: "message argument"}
		}
		switch a.Kind {
		case script.MsgArgU8, script.MsgArgLit:
			dst.WriteByte(byte(in.Value))
		case script.MsgArgI16:
			writeInt(dst, script.Width16, int64(in.Value))
		case script.MsgArgU16:
			writeInt(dst, script.Width16, int64(in.Value))
		case script.MsgArgI32, script.MsgArgSound:
			writeInt(dst, script.Width32, int64(in.Value))
		case script.MsgArgRgba:
			// Colors are the one big-endian value in the format.
			v := uint32(in.Value)
			dst.WriteByte(byte(v >> 24))
			dst.WriteByte(byte(v >> 16))
			dst.WriteByte(byte(v >> 8))
			dst.WriteByte(byte(v))
		}
	}
	return nil
}

// animArgClash reports whether an argument would emit the same bytes as the
// anim list terminator: an auto-width immediate -1.
func animArgClash(op script.Operand) bool {
	x, ok := op.(*script.ExprOperand)
	if !ok || x.Op != script.ExprImm8 {
		return false
	}
	in, ok := firstInt(x.Args)
	return ok && in.Value == -1 && in.Width == script.WidthAuto
}

// firstInt returns the single integer argument of an immediate-style node.
func firstInt(args []script.Operand) (*script.IntOperand, bool) {
	if len(args) != 1 {
		return nil, false
	}
	in, ok := args[0].(*script.IntOperand)
	return in, ok
}

// writeInt writes v little-endian in w bytes, truncating high bits.
func writeInt(dst *bytes.Buffer, w script.Width, v int64) {
	for i := 0; i < int(w); i++ {
		dst.WriteByte(byte(v))
		v >>= 8
	}
}
