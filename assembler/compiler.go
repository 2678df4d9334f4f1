package assembler

import (
	"fmt"

	"github.com/adierking/unplug/script"
)

// compiler lowers parsed items into a script model, enforcing operand
// legality against the shared signature tables.
type compiler struct {
	s         *script.Script
	cur       *script.Block
	curIdx    int
	sawTarget bool
}

// compile builds a script from parsed items.
func compile(items []Item) (*script.Script, error) {
	c := &compiler{s: script.NewScript(), curIdx: -1}
	for _, it := range items {
		if err := c.item(it); err != nil {
			return nil, err
		}
	}
	if !c.sawTarget {
		return nil, &script.ResolutionError{Kind: script.MissingTarget}
	}
	if name := c.s.Labels.Unresolved(); name != "" {
		return nil, &script.ResolutionError{Kind: script.UndefinedLabel, Name: name}
	}
	return c.s, nil
}

func (c *compiler) item(it Item) error {
	if !c.sawTarget {
		d, ok := it.(*DirectiveItem)
		if !ok || (d.Name != "globals" && d.Name != "stage") {
			return &script.ResolutionError{Kind: script.MissingTarget}
		}
	}
	switch it := it.(type) {
	case *LabelItem:
		return c.label(it)
	case *DirectiveItem:
		return c.directive(it)
	case *CommandItem:
		return c.command(it)
	}
	return nil
}

// newBlock starts a fresh block. Its kind (code or data) is fixed by the
// first item appended to it.
func (c *compiler) newBlock() {
	b := &script.Block{}
	c.curIdx = c.s.AddBlock(b)
	c.cur = b
}

func (c *compiler) label(it *LabelItem) error {
	c.newBlock()
	if id, ok := c.s.Labels.FindName(it.Name); ok {
		if err := c.s.Labels.Bind(id, c.curIdx); err != nil {
			return err
		}
		return nil
	}
	_, err := c.s.Labels.Insert(it.Name, c.curIdx)
	return err
}

// refLabel returns the ID for a referenced label, creating an unbound entry
// for forward references.
func (c *compiler) refLabel(name string) script.LabelID {
	if id, ok := c.s.Labels.FindName(name); ok {
		return id
	}
	id, _ := c.s.Labels.Insert(name, -1)
	return id
}

func (c *compiler) appendCommand(cmd script.Command) {
	if c.cur == nil || c.cur.Data != nil {
		c.newBlock()
	}
	c.cur.Commands = append(c.cur.Commands, cmd)
}

func (c *compiler) appendData(ops []script.Operand) {
	if c.cur == nil || c.cur.Commands != nil {
		c.newBlock()
	}
	c.cur.Data = append(c.cur.Data, ops...)
}

func (c *compiler) directive(it *DirectiveItem) error {
	op, ok := script.DirOpByName(it.Name)
	if !ok {
		return &ParseError{
			Offset: it.Offset,
			Reason: fmt.Sprintf("unknown directive .%s", it.Name),
		}
	}
	switch op {
	case script.DirGlobals, script.DirStage:
		return c.target(it, op)
	case script.DirByte:
		return c.data(it, script.Width8)
	case script.DirWord:
		return c.data(it, script.Width16)
	case script.DirDword:
		return c.data(it, script.Width32)
	default:
		return c.entryPoint(it, op)
	}
}

func (c *compiler) target(it *DirectiveItem, op script.DirOp) error {
	if c.sawTarget {
		return &script.ResolutionError{Kind: script.DuplicateTarget}
	}
	c.sawTarget = true
	name := "." + it.Name
	if op == script.DirGlobals {
		if len(it.Operands) != 0 {
			return &ParseError{Offset: it.Offset, Opcode: name, Operand: 1,
				Reason: ".globals takes no operands"}
		}
		c.s.Target = script.TargetGlobals
		return nil
	}
	if len(it.Operands) != 1 {
		return &ParseError{Offset: it.Offset, Opcode: name, Operand: 1,
			Reason: ".stage requires a stage name"}
	}
	str, ok := it.Operands[0].(*StringNode)
	if !ok {
		return &ParseError{Offset: it.Operands[0].Pos(), Opcode: name, Operand: 1,
			Reason: "stage name must be a string"}
	}
	c.s.Target = script.TargetStage
	c.s.Stage = str.Text
	return nil
}

func (c *compiler) data(it *DirectiveItem, w script.Width) error {
	name := "." + it.Name
	if len(it.Operands) == 0 {
		return &ParseError{Offset: it.Offset, Opcode: name, Operand: 1,
			Reason: "expected at least one value"}
	}
	ops := make([]script.Operand, 0, len(it.Operands))
	for i, n := range it.Operands {
		switch n := n.(type) {
		case *IntNode:
			if !w.FitsSigned(n.Value) && !w.FitsUnsigned(uint32(n.Value)) {
				return &ParseError{Offset: n.Pos(), Opcode: name, Operand: i + 1,
					Reason: fmt.Sprintf("%d does not fit in %d bytes", n.Value, w)}
			}
			ops = append(ops, &script.IntOperand{Value: toInt32(n.Value), Width: w})
		case *LabelRefNode:
			if w != script.Width32 {
				return &ParseError{Offset: n.Pos(), Opcode: name, Operand: i + 1,
					Reason: "label references are only allowed in .dd"}
			}
			ops = append(ops, &script.LabelOperand{
				Label: c.refLabel(n.Name), Width: script.Width32,
			})
		default:
			return &ParseError{Offset: n.Pos(), Opcode: name, Operand: i + 1,
				Reason: "expected an integer"}
		}
	}
	c.appendData(ops)
	return nil
}

var entryKinds = map[script.DirOp]script.EntryKind{
	script.DirPrologue:  script.EntryPrologue,
	script.DirStartup:   script.EntryStartup,
	script.DirDead:      script.EntryDead,
	script.DirPose:      script.EntryPose,
	script.DirTimeCycle: script.EntryTimeCycle,
	script.DirTimeUp:    script.EntryTimeUp,
	script.DirInteract:  script.EntryInteract,
	script.DirLib:       script.EntryLib,
}

func (c *compiler) entryPoint(it *DirectiveItem, op script.DirOp) error {
	kind := entryKinds[op]
	name := "." + it.Name

	if op == script.DirLib {
		if c.s.Target != script.TargetGlobals {
			return &script.ResolutionError{Kind: script.LibInStage}
		}
	} else if c.s.Target != script.TargetStage {
		return &script.ResolutionError{Kind: script.EventInGlobals}
	}

	var index int32
	refIdx := 0
	if kind == script.EntryInteract || kind == script.EntryLib {
		if len(it.Operands) != 2 {
			return &ParseError{Offset: it.Offset, Opcode: name, Operand: 1,
				Reason: "expected an index and a label reference"}
		}
		n, ok := it.Operands[0].(*IntNode)
		if !ok {
			return &ParseError{Offset: it.Operands[0].Pos(), Opcode: name, Operand: 1,
				Reason: "expected an integer index"}
		}
		index = toInt32(n.Value)
		refIdx = 1
	} else if len(it.Operands) != 1 {
		return &ParseError{Offset: it.Offset, Opcode: name, Operand: 1,
			Reason: "expected a label reference"}
	}

	ref, ok := it.Operands[refIdx].(*LabelRefNode)
	if !ok {
		return &ParseError{Offset: it.Operands[refIdx].Pos(), Opcode: name,
			Operand: refIdx + 1, Reason: "expected a label reference"}
	}

	ep := script.EntryPoint{Kind: kind, Index: index}
	if _, ok := c.s.EntryPoints[ep]; ok {
		return &ParseError{Offset: it.Offset, Opcode: name, Operand: 1,
			Reason: "entry point already declared"}
	}
	c.s.EntryPoints[ep] = c.refLabel(ref.Name)
	return nil
}

func (c *compiler) command(it *CommandItem) error {
	op, ok := script.CmdOpByName(it.Name)
	if !ok {
		return &ParseError{
			Offset: it.Offset,
			Reason: fmt.Sprintf("unknown instruction %q", it.Name),
		}
	}

	var args []script.Operand
	var perr *ParseError
	if op == script.CmdMsg || op == script.CmdSelect {
		args, perr = c.message(it)
	} else {
		args, perr = c.matchSigs(it.Name, it.Offset, it.Operands, script.CmdSignatures(op))
	}
	if perr != nil {
		return perr
	}
	c.appendCommand(script.Command{Op: op, Args: args})
	return nil
}

// matchSigs tries each signature in order and returns the operands of the
// first that matches. On failure it reports the error from the candidate that
// matched the most slots, so diagnostics point at the first truly bad
// operand.
func (c *compiler) matchSigs(name string, offset int, nodes []Node, sigs []script.Signature) ([]script.Operand, *ParseError) {
	if len(sigs) == 0 {
		return nil, &ParseError{Offset: offset, Opcode: name,
			Reason: "no known operand shapes"}
	}
	var best *ParseError
	bestDepth := -2
	for _, sig := range sigs {
		args, depth, perr := c.trySig(name, offset, nodes, sig)
		if perr == nil {
			return args, nil
		}
		if depth > bestDepth {
			best, bestDepth = perr, depth
		}
	}
	return nil, best
}

func (c *compiler) trySig(name string, offset int, nodes []Node, sig script.Signature) ([]script.Operand, int, *ParseError) {
	fixed := len(sig.Args)
	variadic := fixed > 0 && sig.Args[fixed-1].Kind == script.ArgVariadic
	if variadic {
		fixed--
	}
	if len(nodes) < fixed || (!variadic && len(nodes) > fixed) {
		return nil, -1, &ParseError{Offset: offset, Opcode: name,
			Reason: fmt.Sprintf("wrong number of operands (found %d)", len(nodes))}
	}

	out := make([]script.Operand, 0, len(nodes))
	for i, n := range nodes {
		a := script.Arg{Kind: script.ArgExpr}
		if i < fixed {
			a = sig.Args[i]
		}
		op, perr := c.operand(name, i, n, a)
		if perr != nil {
			return nil, i, perr
		}
		out = append(out, op)
	}
	return out, len(nodes), nil
}

// operand converts one node against one signature slot.
func (c *compiler) operand(name string, idx int, n Node, a script.Arg) (script.Operand, *ParseError) {
	fail := func(reason string) *ParseError {
		return &ParseError{Offset: n.Pos(), Opcode: name, Operand: idx + 1, Reason: reason}
	}
	switch a.Kind {
	case script.ArgInteger:
		in, ok := n.(*IntNode)
		if !ok {
			return nil, fail("expected an integer")
		}
		return &script.IntOperand{Value: toInt32(in.Value), Width: in.Width}, nil
	case script.ArgString:
		sn, ok := n.(*StringNode)
		if !ok {
			return nil, fail("expected a string")
		}
		b, err := script.EncodeText(sn.Text)
		if err != nil {
			return nil, fail("text is not representable in the game encoding")
		}
		return &script.TextOperand{Bytes: b}, nil
	case script.ArgPointer:
		switch n := n.(type) {
		case *LabelRefNode:
			if n.Else {
				return nil, fail("else is not allowed here")
			}
			return &script.LabelOperand{Label: c.refLabel(n.Name), Width: n.Width}, nil
		case *OffsetRefNode:
			return &script.OffsetOperand{Offset: n.Value, Width: n.Width}, nil
		}
		return nil, fail("expected a label reference")
	case script.ArgElsePointer:
		switch n := n.(type) {
		case *LabelRefNode:
			return &script.LabelOperand{Label: c.refLabel(n.Name), Else: true, Width: n.Width}, nil
		case *OffsetRefNode:
			return &script.OffsetOperand{Offset: n.Value, Width: n.Width}, nil
		}
		return nil, fail("expected a label reference")
	case script.ArgAtom:
		tn, ok := n.(*TypeNode)
		if !ok {
			return nil, fail(fmt.Sprintf("expected @%s", a.Atom.Name()))
		}
		t, ok := script.TypeOpByName(tn.Name)
		if !ok {
			return nil, fail(fmt.Sprintf("unknown atom @%s", tn.Name))
		}
		if t != a.Atom {
			return nil, fail(fmt.Sprintf("expected @%s", a.Atom.Name()))
		}
		return &script.TypeOperand{Type: t}, nil
	case script.ArgLiteral:
		in, ok := n.(*IntNode)
		if !ok || in.Value != int64(a.Lit) {
			return nil, fail(fmt.Sprintf("expected %d", a.Lit))
		}
		v := toInt32(in.Value)
		return &script.ExprOperand{
			Op:   script.ImmOp(in.Width, v),
			Args: []script.Operand{&script.IntOperand{Value: v, Width: in.Width}},
		}, nil
	case script.ArgMessage:
		return nil, fail("expected a message body")
	}
	return c.expr(name, idx, n, a.Kind)
}

// expr converts an expression node. kind narrows which operators are legal at
// the root: only the set command accepts assignment operators.
func (c *compiler) expr(name string, idx int, n Node, kind script.ArgKind) (script.Operand, *ParseError) {
	fail := func(reason string) *ParseError {
		return &ParseError{Offset: n.Pos(), Opcode: name, Operand: idx + 1, Reason: reason}
	}
	switch n := n.(type) {
	case *IntNode:
		switch kind {
		case script.ArgUpdateExpr:
			return nil, fail("expected a compound assignment")
		case script.ArgSetExpr:
			return nil, fail("not an assignable expression")
		}
		v := toInt32(n.Value)
		return &script.ExprOperand{
			Op:   script.ImmOp(n.Width, v),
			Args: []script.Operand{&script.IntOperand{Value: v, Width: n.Width}},
		}, nil
	case *CallNode:
		op, ok := script.ExprOpByName(n.Name)
		if !ok {
			return nil, fail(fmt.Sprintf("unknown operator %q", n.Name))
		}
		switch kind {
		case script.ArgUpdateExpr:
			if !op.IsAssign() {
				return nil, fail("expected a compound assignment")
			}
		case script.ArgSetExpr:
			if op.IsAssign() || op.IsImmediate() {
				return nil, fail("not an assignable expression")
			}
		default:
			if op.IsAssign() {
				return nil, fail("assignment operators are only allowed in set")
			}
		}
		args, perr := c.matchSigs(n.Name, n.Offset, n.Args, script.ExprSignatures(op))
		if perr != nil {
			return nil, perr
		}
		return &script.ExprOperand{Op: op, Args: args}, nil
	}
	return nil, fail("expected an expression")
}

// message compiles the operand list of msg or select into a message body.
// General expressions are illegal here; only text and message commands.
func (c *compiler) message(it *CommandItem) ([]script.Operand, *ParseError) {
	var cmds []script.MsgCommand
	for i, n := range it.Operands {
		switch n := n.(type) {
		case *StringNode:
			runs, perr := c.textRuns(it.Name, i, n)
			if perr != nil {
				return nil, perr
			}
			cmds = append(cmds, runs...)
		case *CallNode:
			mop, ok := script.MsgOpByName(n.Name)
			if !ok {
				return nil, &ParseError{Offset: n.Pos(), Opcode: it.Name, Operand: i + 1,
					Reason: fmt.Sprintf("%q is not a message command", n.Name)}
			}
			args, perr := c.matchMsgSigs(it.Name, i, n, script.MsgSignatures(mop))
			if perr != nil {
				return nil, perr
			}
			cmds = append(cmds, script.MsgCommand{Op: mop, Args: args})
		default:
			return nil, &ParseError{Offset: n.Pos(), Opcode: it.Name, Operand: i + 1,
				Reason: "expected text or a message command"}
		}
	}
	return []script.Operand{&script.MsgOperand{Commands: cmds}}, nil
}

// textRuns encodes literal text and splits out the newline control codes,
// which are message opcodes on the wire.
func (c *compiler) textRuns(name string, idx int, n *StringNode) ([]script.MsgCommand, *ParseError) {
	enc, err := script.EncodeText(n.Text)
	if err != nil {
		return nil, &ParseError{Offset: n.Pos(), Opcode: name, Operand: idx + 1,
			Reason: "text is not representable in the game encoding"}
	}
	var cmds []script.MsgCommand
	var run []byte
	flush := func() {
		if len(run) > 0 {
			cmds = append(cmds, script.MsgCommand{Op: script.MsgEnd, Text: run})
			run = nil
		}
	}
	for _, b := range enc {
		switch b {
		case '\n':
			flush()
			cmds = append(cmds, script.MsgCommand{Op: script.MsgNewline})
		case '\v':
			flush()
			cmds = append(cmds, script.MsgCommand{Op: script.MsgNewlineVt})
		default:
			run = append(run, b)
		}
	}
	flush()
	return cmds, nil
}

func (c *compiler) matchMsgSigs(name string, idx int, call *CallNode, sigs []script.MsgSignature) ([]script.Operand, *ParseError) {
	fail := func(pos int, reason string) *ParseError {
		return &ParseError{Offset: pos, Opcode: name, Operand: idx + 1, Reason: reason}
	}
	if len(sigs) == 0 {
		return nil, fail(call.Offset, fmt.Sprintf("%s cannot be written directly", call.Name))
	}
	var best *ParseError
	bestDepth := -2
	for _, sig := range sigs {
		args, depth, perr := c.tryMsgSig(name, idx, call, sig)
		if perr == nil {
			return args, nil
		}
		if depth > bestDepth {
			best, bestDepth = perr, depth
		}
	}
	return nil, best
}

func (c *compiler) tryMsgSig(name string, idx int, call *CallNode, sig script.MsgSignature) ([]script.Operand, int, *ParseError) {
	fail := func(pos int, reason string) *ParseError {
		return &ParseError{Offset: pos, Opcode: name, Operand: idx + 1, Reason: reason}
	}
	if len(call.Args) != len(sig.Args) {
		return nil, -1, fail(call.Offset,
			fmt.Sprintf("%s: wrong number of arguments (found %d)", call.Name, len(call.Args)))
	}
	out := make([]script.Operand, 0, len(call.Args))
	for i, n := range call.Args {
		a := sig.Args[i]
		if a.Kind == script.MsgArgString {
			sn, ok := n.(*StringNode)
			if !ok {
				return nil, i, fail(n.Pos(), fmt.Sprintf("%s: expected a string", call.Name))
			}
			b, err := script.EncodeText(sn.Text)
			if err != nil {
				return nil, i, fail(n.Pos(), "text is not representable in the game encoding")
			}
			out = append(out, &script.TextOperand{Bytes: b})
			continue
		}
		in, ok := n.(*IntNode)
		if !ok {
			return nil, i, fail(n.Pos(), fmt.Sprintf("%s: expected an integer", call.Name))
		}
		if perr := checkMsgRange(a, in); perr != nil {
			perr.Opcode = name
			perr.Operand = idx + 1
			return nil, i, perr
		}
		out = append(out, &script.IntOperand{Value: toInt32(in.Value)})
	}
	return out, len(call.Args), nil
}

func checkMsgRange(a script.MsgArg, n *IntNode) *ParseError {
	ok := true
	switch a.Kind {
	case script.MsgArgU8:
		ok = n.Value >= 0 && n.Value <= 0xff
	case script.MsgArgI16:
		ok = n.Value >= -0x8000 && n.Value <= 0x7fff
	case script.MsgArgU16:
		ok = n.Value >= 0 && n.Value <= 0xffff
	case script.MsgArgI32, script.MsgArgSound, script.MsgArgRgba:
		ok = n.Value >= -0x80000000 && n.Value <= 0xffffffff
	case script.MsgArgLit:
		ok = n.Value == int64(a.Lit)
	}
	if !ok {
		return &ParseError{Offset: n.Offset,
			Reason: fmt.Sprintf("value %d out of range", n.Value)}
	}
	return nil
}

// toInt32 truncates a lexed integer to the interpreter's 32-bit domain. Hex
// literals above 0x7fffffff wrap to their two's-complement value.
func toInt32(v int64) int32 {
	return int32(uint32(v))
}
