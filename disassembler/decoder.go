package disassembler

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/adierking/unplug/assembler"
	"github.com/adierking/unplug/script"
)

// Input is one bytecode buffer handed in by the container that stores it.
// The container owns the entry-point table; the code buffer itself has no
// header.
type Input struct {
	Data   []byte
	Target script.Target
	// Stage is the stage name for TargetStage buffers.
	Stage       string
	EntryPoints map[script.EntryPoint]uint32
}

// labelKind ranks what a recovered label points at. Higher kinds win when an
// offset is referenced multiple ways.
type labelKind int

const (
	// kindData is the target of an address expression.
	kindData labelKind = iota
	// kindJump is a branch target.
	kindJump
	// kindSub is the head of a subroutine or spawned event.
	kindSub
	// kindEvent is a declared entry point.
	kindEvent
)

func (k labelKind) prefix() string {
	switch k {
	case kindJump:
		return "loc"
	case kindSub:
		return "sub"
	case kindEvent:
		return "evt"
	}
	return "dat"
}

// dcmd is a decoded command with its offset, kept so blocks can be split at
// any offset that later turns out to be a jump target.
type dcmd struct {
	off uint32
	cmd script.Command
}

// run is a maximal sequence of commands decoded from one seed address.
type run struct {
	start, end uint32
	cmds       []dcmd
}

// ptrRef pairs a bound pointer with the width it was decoded at.
type ptrRef struct {
	op    *script.LabelOperand
	width script.Width
}

type decoder struct {
	data      []byte
	runs      []*run
	cmdStarts map[uint32]bool
	labels    map[uint32]labelKind
	queue     []uint32
	// minimal marks pointers whose decoded width is the narrowest for their
	// target; relaxable holds the ones wider than a byte after label binding.
	minimal   map[*script.OffsetOperand]bool
	relaxable []ptrRef
}

// Decode recovers a script model from bytecode. Block boundaries come from a
// worklist reachability walk seeded with the entry offsets; bytes no walk
// reaches are preserved as data.
func Decode(in Input) (*script.Script, error) {
	if in.Target == script.TargetNone {
		return nil, &script.ResolutionError{Kind: script.MissingTarget}
	}
	d := &decoder{
		data:      in.Data,
		cmdStarts: make(map[uint32]bool),
		labels:    make(map[uint32]labelKind),
		minimal:   make(map[*script.OffsetOperand]bool),
	}
	for ep, off := range in.EntryPoints {
		if ep.Kind == script.EntryLib {
			if in.Target != script.TargetGlobals {
				return nil, &script.ResolutionError{Kind: script.LibInStage}
			}
		} else if in.Target != script.TargetStage {
			return nil, &script.ResolutionError{Kind: script.EventInGlobals}
		}
		d.want(off, kindEvent)
	}
	sort.Slice(d.queue, func(i, j int) bool { return d.queue[i] < d.queue[j] })

	for i := 0; i < len(d.queue); i++ {
		if err := d.decodeRun(d.queue[i]); err != nil {
			return nil, err
		}
	}
	s, err := d.build(in)
	if err != nil {
		return nil, err
	}
	d.pinWidths(s)
	return s, nil
}

// pinWidths lays out the recovered model and keeps the decoded width on any
// pointer a fresh layout would shrink. A 2-byte pointer to offset 256 is
// minimal for that address, but relaxation started from scratch settles at
// one byte and moves the target to 255; the explicit suffix keeps the
// reassembled bytes identical to the input.
func (d *decoder) pinWidths(s *script.Script) {
	if len(d.relaxable) == 0 {
		return
	}
	out, err := assembler.New().AssembleScript(s)
	if err == nil && bytes.Equal(out.Code, d.data) {
		return
	}
	for _, r := range d.relaxable {
		r.op.Width = r.width
	}
}

// want requests a label at an offset. Code targets also join the worklist.
func (d *decoder) want(off uint32, k labelKind) {
	if cur, ok := d.labels[off]; !ok || k > cur {
		d.labels[off] = k
	}
	if k > kindData {
		d.queue = append(d.queue, off)
	}
}

func (d *decoder) runAt(off uint32) *run {
	for _, r := range d.runs {
		if off > r.start && off < r.end {
			return r
		}
	}
	return nil
}

// decodeRun decodes commands sequentially from off until an unconditional
// control transfer or a previously decoded command.
func (d *decoder) decodeRun(off uint32) error {
	if off >= uint32(len(d.data)) {
		return &DecodeError{Kind: OffsetOutOfRange, Offset: int(off)}
	}
	if d.cmdStarts[off] {
		return nil
	}
	if d.runAt(off) != nil {
		// Jump into the middle of a decoded command.
		return &DecodeError{Kind: OffsetOutOfRange, Offset: int(off)}
	}

	r := &reader{data: d.data, pos: int(off)}
	ru := &run{start: off}
	for r.pos < len(d.data) {
		pos := uint32(r.pos)
		if d.cmdStarts[pos] {
			break
		}
		cmd, err := d.decodeCommand(r)
		if err != nil {
			return err
		}
		d.cmdStarts[pos] = true
		ru.cmds = append(ru.cmds, dcmd{off: pos, cmd: cmd})
		if cmd.Op == script.CmdAbort || cmd.Op == script.CmdReturn || cmd.Op.IsGoto() {
			break
		}
	}
	ru.end = uint32(r.pos)
	d.runs = append(d.runs, ru)
	return nil
}

func (d *decoder) decodeCommand(r *reader) (script.Command, error) {
	opOff := r.pos
	b, err := r.u8()
	if err != nil {
		return script.Command{}, err
	}
	if !script.ValidCmdOp(b) {
		return script.Command{}, &DecodeError{Kind: UnknownOpcode, Offset: opOff, Opcode: b}
	}
	op := script.CmdOp(b)

	var args []script.Operand
	switch op {
	case script.CmdMsg, script.CmdSelect:
		var m *script.MsgOperand
		m, err = d.decodeMsg(r)
		args = []script.Operand{m}
	case script.CmdAnim, script.CmdAnim1, script.CmdAnim2:
		args, err = d.decodeAnimArgs(r)
	case script.CmdCall:
		args, err = d.decodeCallArgs(r)
	default:
		ptrKind := kindJump
		if op == script.CmdRun {
			ptrKind = kindSub
		}
		args, err = d.decodeSig(r, op.Name(), script.CmdSignatures(op), ptrKind)
	}
	if err != nil {
		return script.Command{}, err
	}
	return script.Command{Op: op, Args: args}, nil
}

// decodeAnimArgs reads expressions until the 8-bit -1 terminator. A wider
// -1 is a genuine argument; the encoder never emits a genuine -1 at 8 bits.
func (d *decoder) decodeAnimArgs(r *reader) ([]script.Operand, error) {
	obj, err := d.decodeExprSlot(r, script.ArgObjectExpr)
	if err != nil {
		return nil, err
	}
	args := []script.Operand{obj}
	for {
		x, err := d.decodeExpr(r)
		if err != nil {
			return nil, err
		}
		if isAnimEnd(x) {
			return args, nil
		}
		if err := d.noteExprTargets(x, kindData); err != nil {
			return nil, err
		}
		args = append(args, x)
	}
}

// isAnimEnd matches the canonical 8-bit -1 that terminates an anim argument
// list.
func isAnimEnd(op script.Operand) bool {
	x, ok := op.(*script.ExprOperand)
	if !ok || x.Op != script.ExprImm8 {
		return false
	}
	v, ok := immValue(x)
	return ok && v == -1
}

// decodeCallArgs reads the byte-counted argument list of call.
func (d *decoder) decodeCallArgs(r *reader) ([]script.Operand, error) {
	obj, err := d.decodeExprSlot(r, script.ArgObjectExpr)
	if err != nil {
		return nil, err
	}
	szOff := r.pos
	size, err := r.uint(script.Width16)
	if err != nil {
		return nil, err
	}
	end := r.pos + int(size)
	if end > len(d.data) {
		return nil, &DecodeError{Kind: TruncatedOperand, Offset: szOff}
	}
	args := []script.Operand{obj}
	for r.pos < end {
		x, err := d.decodeExprSlot(r, script.ArgExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, x)
	}
	if r.pos != end {
		return nil, &DecodeError{Kind: TruncatedOperand, Offset: szOff}
	}
	return args, nil
}

// decodeSig decodes operands against a signature table, narrowing candidates
// with each atom or literal discriminator the way the parser does in the
// other direction.
func (d *decoder) decodeSig(r *reader, name string, sigs []script.Signature, ptrKind labelKind) ([]script.Operand, error) {
	cands := sigs
	var out []script.Operand
	for i := 0; ; i++ {
		done := false
		var longer []script.Signature
		for _, sg := range cands {
			switch n := len(sg.Args); {
			case n == i:
				done = true
			case n > i:
				longer = append(longer, sg)
			}
		}
		if len(longer) == 0 {
			if done {
				return out, nil
			}
			return nil, &DecodeError{Kind: UnknownOpcode, Offset: r.pos,
				Detail: fmt.Sprintf("%s: operands match no signature", name)}
		}
		if done {
			return nil, &DecodeError{Kind: UnknownOpcode, Offset: r.pos,
				Detail: fmt.Sprintf("%s: ambiguous signature", name)}
		}
		cands = longer

		switch a := cands[0].Args[i]; a.Kind {
		case script.ArgPointer, script.ArgElsePointer:
			p, err := d.decodePointer(r)
			if err != nil {
				return nil, err
			}
			if err := d.wantTarget(p, ptrKind); err != nil {
				return nil, err
			}
			out = append(out, p)
		case script.ArgInteger:
			op, err := d.decodeTaggedInt(r)
			if err != nil {
				return nil, err
			}
			out = append(out, op)
		case script.ArgString:
			b, err := r.cstring()
			if err != nil {
				return nil, err
			}
			out = append(out, &script.TextOperand{Bytes: b})
		case script.ArgVariadic:
			rest, err := d.decodeCountedArgs(r)
			if err != nil {
				return nil, err
			}
			return append(out, rest...), nil
		default:
			op, kept, err := d.decodeExprDiscriminated(r, name, cands, i)
			if err != nil {
				return nil, err
			}
			cands = kept
			out = append(out, op)
		}
	}
}

// decodeExprDiscriminated reads one expression slot and filters the candidate
// signatures by its value where they expect a specific atom or literal.
func (d *decoder) decodeExprDiscriminated(r *reader, name string, cands []script.Signature, i int) (script.Operand, []script.Signature, error) {
	off := r.pos
	x, err := d.decodeExpr(r)
	if err != nil {
		return nil, nil, err
	}
	v, isImm := immValue(x)

	xop, isOp := x.(*script.ExprOperand)
	var kept []script.Signature
	for _, sg := range cands {
		switch sa := sg.Args[i]; sa.Kind {
		case script.ArgAtom:
			if isImm && v == int32(sa.Atom) {
				kept = append(kept, sg)
			}
		case script.ArgLiteral:
			if isImm && v == sa.Lit {
				kept = append(kept, sg)
			}
		case script.ArgUpdateExpr:
			// Compound assignments only appear in the one-operand form of
			// set; the operator class picks between its signatures.
			if isOp && xop.Op.IsAssign() {
				kept = append(kept, sg)
			}
		case script.ArgSetExpr:
			if isOp && !xop.Op.IsAssign() && !xop.Op.IsImmediate() {
				kept = append(kept, sg)
			}
		default:
			kept = append(kept, sg)
		}
	}
	if len(kept) == 0 {
		return nil, nil, &DecodeError{Kind: UnknownOpcode, Offset: off,
			Detail: fmt.Sprintf("%s: operand matches no signature", name)}
	}

	slot := kept[0].Args[i]
	if slot.Kind == script.ArgAtom {
		return &script.TypeOperand{Type: script.TypeOp(v)}, kept, nil
	}
	if err := d.noteExprTargets(x, slotTargetKind(slot.Kind)); err != nil {
		return nil, nil, err
	}
	return x, kept, nil
}

// decodeCountedArgs reads an immediate count followed by that many
// expressions (the @lead form of ptcl).
func (d *decoder) decodeCountedArgs(r *reader) ([]script.Operand, error) {
	off := r.pos
	cx, err := d.decodeExpr(r)
	if err != nil {
		return nil, err
	}
	count, ok := immValue(cx)
	if !ok || count < 0 {
		return nil, &DecodeError{Kind: UnknownOpcode, Offset: off,
			Detail: "expected an argument count"}
	}
	var out []script.Operand
	for n := int32(0); n < count; n++ {
		x, err := d.decodeExprSlot(r, script.ArgExpr)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func slotTargetKind(k script.ArgKind) labelKind {
	if k == script.ArgEventExpr {
		return kindSub
	}
	return kindData
}

func (d *decoder) decodeExprSlot(r *reader, kind script.ArgKind) (script.Operand, error) {
	x, err := d.decodeExpr(r)
	if err != nil {
		return nil, err
	}
	if err := d.noteExprTargets(x, slotTargetKind(kind)); err != nil {
		return nil, err
	}
	return x, nil
}

func (d *decoder) decodeExpr(r *reader) (script.Operand, error) {
	opOff := r.pos
	b, err := r.u8()
	if err != nil {
		return nil, err
	}
	if !script.ValidExprOp(b) {
		return nil, &DecodeError{Kind: UnknownOpcode, Offset: opOff, Opcode: b,
			Detail: "unknown operator"}
	}
	op := script.ExprOp(b)

	if op.IsImmediate() {
		w := script.ImmWidth(op)
		v, err := r.int(w)
		if err != nil {
			return nil, err
		}
		width := w
		if script.MinSigned(int64(v)) == w {
			width = script.WidthAuto
		}
		return &script.ExprOperand{
			Op:   op,
			Args: []script.Operand{&script.IntOperand{Value: v, Width: width}},
		}, nil
	}
	switch op {
	case script.ExprAddressOf:
		p, err := d.decodePointer(r)
		if err != nil {
			return nil, err
		}
		return &script.ExprOperand{Op: op, Args: []script.Operand{p}}, nil
	case script.ExprStack, script.ExprParentStack:
		slot, err := r.u8()
		if err != nil {
			return nil, err
		}
		return &script.ExprOperand{
			Op:   op,
			Args: []script.Operand{&script.IntOperand{Value: int32(slot)}},
		}, nil
	}

	args, err := d.decodeSig(r, op.Name(), script.ExprSignatures(op), kindData)
	if err != nil {
		return nil, err
	}
	return &script.ExprOperand{Op: op, Args: args}, nil
}

// decodePointer reads a width-tagged offset. The decoded width is kept on
// the operand until label binding decides whether it needs an explicit
// suffix to reassemble byte-for-byte.
func (d *decoder) decodePointer(r *reader) (*script.OffsetOperand, error) {
	w, err := r.width()
	if err != nil {
		return nil, err
	}
	v, err := r.uint(w)
	if err != nil {
		return nil, err
	}
	op := &script.OffsetOperand{Offset: v, Width: w}
	if script.MinUnsigned(v) == w {
		d.minimal[op] = true
	}
	return op, nil
}

func (d *decoder) decodeTaggedInt(r *reader) (*script.IntOperand, error) {
	w, err := r.width()
	if err != nil {
		return nil, err
	}
	v, err := r.int(w)
	if err != nil {
		return nil, err
	}
	width := w
	if script.MinSigned(int64(v)) == w {
		width = script.WidthAuto
	}
	return &script.IntOperand{Value: v, Width: width}, nil
}

// wantTarget validates a decoded offset and requests a label for it.
func (d *decoder) wantTarget(p *script.OffsetOperand, k labelKind) error {
	if p.Offset > uint32(len(d.data)) {
		return &DecodeError{Kind: OffsetOutOfRange, Offset: int(p.Offset)}
	}
	d.want(p.Offset, k)
	return nil
}

// noteExprTargets requests labels for any addresses embedded in an
// expression.
func (d *decoder) noteExprTargets(op script.Operand, k labelKind) error {
	switch op := op.(type) {
	case *script.OffsetOperand:
		return d.wantTarget(op, k)
	case *script.ExprOperand:
		for _, a := range op.Args {
			if err := d.noteExprTargets(a, k); err != nil {
				return err
			}
		}
	}
	return nil
}

// immValue unwraps an immediate expression.
func immValue(op script.Operand) (int32, bool) {
	x, ok := op.(*script.ExprOperand)
	if !ok || !x.Op.IsImmediate() || len(x.Args) != 1 {
		return 0, false
	}
	in, ok := x.Args[0].(*script.IntOperand)
	if !ok {
		return 0, false
	}
	return in.Value, true
}

func (d *decoder) decodeMsg(r *reader) (*script.MsgOperand, error) {
	szOff := r.pos
	size, err := r.uint(script.Width16)
	if err != nil {
		return nil, err
	}
	end := r.pos + int(size)
	if end > len(d.data) {
		return nil, &DecodeError{Kind: TruncatedOperand, Offset: szOff}
	}

	var cmds []script.MsgCommand
	var text []byte
	flush := func() {
		if len(text) > 0 {
			cmds = append(cmds, script.MsgCommand{Op: script.MsgEnd, Text: text})
			text = nil
		}
	}
	for {
		if r.pos >= end {
			return nil, &DecodeError{Kind: TruncatedOperand, Offset: szOff}
		}
		bOff := r.pos
		b, err := r.u8()
		if err != nil {
			return nil, err
		}
		if b == byte(script.MsgEnd) {
			flush()
			break
		}
		if script.IsMsgChar(b) {
			text = append(text, b)
			continue
		}
		flush()
		cmd, err := d.decodeMsgCommand(r, script.MsgOp(b), bOff)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if r.pos != end {
		return nil, &DecodeError{Kind: TruncatedOperand, Offset: szOff}
	}
	return &script.MsgOperand{Commands: cmds}, nil
}

func (d *decoder) decodeMsgCommand(r *reader, op script.MsgOp, opOff int) (script.MsgCommand, error) {
	sigs := script.MsgSignatures(op)
	if len(sigs) == 0 {
		// newline controls
		return script.MsgCommand{Op: op}, nil
	}

	cands := sigs
	var args []script.Operand
	for i := 0; ; i++ {
		done := false
		var longer []script.MsgSignature
		for _, sg := range cands {
			switch n := len(sg.Args); {
			case n == i:
				done = true
			case n > i:
				longer = append(longer, sg)
			}
		}
		if len(longer) == 0 {
			if done {
				return script.MsgCommand{Op: op, Args: args}, nil
			}
			return script.MsgCommand{}, &DecodeError{Kind: UnknownOpcode, Offset: r.pos,
				Detail: fmt.Sprintf("%s: arguments match no signature", op.Name())}
		}
		if done {
			return script.MsgCommand{}, &DecodeError{Kind: UnknownOpcode, Offset: r.pos,
				Detail: fmt.Sprintf("%s: ambiguous signature", op.Name())}
		}
		cands = longer

		switch a := cands[0].Args[i]; a.Kind {
		case script.MsgArgU8:
			b, err := r.u8()
			if err != nil {
				return script.MsgCommand{}, err
			}
			args = append(args, &script.IntOperand{Value: int32(b)})
		case script.MsgArgLit:
			b, err := r.u8()
			if err != nil {
				return script.MsgCommand{}, err
			}
			var kept []script.MsgSignature
			for _, sg := range cands {
				if byte(sg.Args[i].Lit) == b {
					kept = append(kept, sg)
				}
			}
			if len(kept) == 0 {
				return script.MsgCommand{}, &DecodeError{Kind: UnknownOpcode,
					Offset: opOff, Opcode: b,
					Detail: fmt.Sprintf("%s: unknown subcommand", op.Name())}
			}
			cands = kept
			args = append(args, &script.IntOperand{Value: kept[0].Args[i].Lit})
		case script.MsgArgI16:
			v, err := r.int(script.Width16)
			if err != nil {
				return script.MsgCommand{}, err
			}
			args = append(args, &script.IntOperand{Value: v})
		case script.MsgArgU16:
			v, err := r.uint(script.Width16)
			if err != nil {
				return script.MsgCommand{}, err
			}
			args = append(args, &script.IntOperand{Value: int32(v)})
		case script.MsgArgI32, script.MsgArgSound:
			v, err := r.int(script.Width32)
			if err != nil {
				return script.MsgCommand{}, err
			}
			args = append(args, &script.IntOperand{Value: v})
		case script.MsgArgRgba:
			if r.remaining() < 4 {
				return script.MsgCommand{}, &DecodeError{Kind: TruncatedOperand, Offset: r.pos}
			}
			v := uint32(r.data[r.pos])<<24 | uint32(r.data[r.pos+1])<<16 |
				uint32(r.data[r.pos+2])<<8 | uint32(r.data[r.pos+3])
			r.pos += 4
			args = append(args, &script.IntOperand{Value: int32(v)})
		case script.MsgArgString:
			b, err := r.cstring()
			if err != nil {
				return script.MsgCommand{}, err
			}
			args = append(args, &script.TextOperand{Bytes: b})
		}
	}
}

// build assembles the decoded runs and leftover gaps into a script model.
func (d *decoder) build(in Input) (*script.Script, error) {
	s := script.NewScript()
	s.Target = in.Target
	s.Stage = in.Stage
	sort.Slice(d.runs, func(i, j int) bool { return d.runs[i].start < d.runs[j].start })

	offs := make([]uint32, 0, len(d.labels))
	for off := range d.labels {
		offs = append(offs, off)
	}
	sort.Slice(offs, func(i, j int) bool { return offs[i] < offs[j] })

	// A data label pointing into the middle of a command has nowhere to bind.
	for _, off := range offs {
		if d.runAt(off) != nil && !d.cmdStarts[off] {
			return nil, &DecodeError{Kind: OffsetOutOfRange, Offset: int(off)}
		}
	}

	blockAt := make(map[uint32]int)
	addBlock := func(start uint32, b *script.Block) {
		blockAt[start] = s.AddBlock(b)
	}
	isLabel := func(off uint32) bool {
		_, ok := d.labels[off]
		return ok
	}

	pos := uint32(0)
	ri := 0
	for pos < uint32(len(d.data)) {
		if ri < len(d.runs) && d.runs[ri].start == pos {
			r := d.runs[ri]
			ri++
			var cur *script.Block
			for _, dc := range r.cmds {
				if cur == nil || isLabel(dc.off) && dc.off != r.start {
					cur = &script.Block{}
					addBlock(dc.off, cur)
				}
				cur.Commands = append(cur.Commands, dc.cmd)
			}
			pos = r.end
			continue
		}
		// Gap before the next run (or the end): unreachable bytes kept as
		// data, split wherever something points into them.
		gapEnd := uint32(len(d.data))
		if ri < len(d.runs) {
			gapEnd = d.runs[ri].start
		}
		for segStart := pos; segStart < gapEnd; {
			segEnd := gapEnd
			for _, off := range offs {
				if off > segStart && off < gapEnd {
					segEnd = off
					break
				}
			}
			addBlock(segStart, &script.Block{Data: byteData(d.data[segStart:segEnd])})
			segStart = segEnd
		}
		pos = gapEnd
	}
	if _, ok := d.labels[uint32(len(d.data))]; ok {
		addBlock(uint32(len(d.data)), &script.Block{})
	}

	counters := make(map[labelKind]int)
	labelAt := make(map[uint32]script.LabelID, len(offs))
	for _, off := range offs {
		k := d.labels[off]
		idx, ok := blockAt[off]
		if !ok {
			return nil, &DecodeError{Kind: OffsetOutOfRange, Offset: int(off)}
		}
		name := fmt.Sprintf("%s_%d", k.prefix(), counters[k])
		counters[k]++
		id, err := s.Labels.Insert(name, idx)
		if err != nil {
			return nil, err
		}
		labelAt[off] = id
	}

	for ep, off := range in.EntryPoints {
		s.EntryPoints[ep] = labelAt[off]
	}

	for _, b := range s.Blocks {
		for i := range b.Commands {
			d.bindRefs(b.Commands[i].Args, labelAt)
		}
	}
	return s, nil
}

// bindRefs replaces raw offsets with references to the labels created for
// them. Minimal-width pointers lose their suffix but stay pinnable in case
// layout drifts; non-minimal ones keep the decoded width forced.
func (d *decoder) bindRefs(args []script.Operand, labelAt map[uint32]script.LabelID) {
	for i, a := range args {
		switch a := a.(type) {
		case *script.OffsetOperand:
			if id, ok := labelAt[a.Offset]; ok {
				l := &script.LabelOperand{Label: id, Width: a.Width}
				if d.minimal[a] {
					l.Width = script.WidthAuto
					if a.Width > script.Width8 {
						d.relaxable = append(d.relaxable, ptrRef{op: l, width: a.Width})
					}
				}
				args[i] = l
			}
		case *script.ExprOperand:
			d.bindRefs(a.Args, labelAt)
		}
	}
}

// byteData wraps raw bytes as byte-width data values.
func byteData(b []byte) []script.Operand {
	ops := make([]script.Operand, len(b))
	for i, v := range b {
		ops[i] = &script.IntOperand{Value: int32(v), Width: script.Width8}
	}
	return ops
}
