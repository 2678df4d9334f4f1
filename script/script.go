package script

// Width is the encoded size of an integer or pointer operand in bytes.
// WidthAuto means the narrowest width that fits is chosen at layout time.
type Width uint8

const (
	WidthAuto Width = 0
	Width8    Width = 1
	Width16   Width = 2
	Width32   Width = 4
)

// Suffix returns the source suffix for the width (".b", ".w", ".d"), or "".
func (w Width) Suffix() string {
	switch w {
	case Width8:
		return ".b"
	case Width16:
		return ".w"
	case Width32:
		return ".d"
	}
	return ""
}

// FitsSigned reports whether v fits the signed range of the width. Integer
// operands always encode signed; decoding sign-extends.
func (w Width) FitsSigned(v int64) bool {
	switch w {
	case Width8:
		return v >= -0x80 && v <= 0x7f
	case Width16:
		return v >= -0x8000 && v <= 0x7fff
	case Width32:
		return v >= -0x80000000 && v <= 0x7fffffff
	}
	return false
}

// FitsUnsigned reports whether offset v fits the unsigned range of the width.
// Pointer operands encode unsigned file offsets.
func (w Width) FitsUnsigned(v uint32) bool {
	switch w {
	case Width8:
		return v <= 0xff
	case Width16:
		return v <= 0xffff
	case Width32:
		return true
	}
	return false
}

// MinSigned returns the narrowest width whose signed range holds v.
func MinSigned(v int64) Width {
	switch {
	case Width8.FitsSigned(v):
		return Width8
	case Width16.FitsSigned(v):
		return Width16
	default:
		return Width32
	}
}

// MinUnsigned returns the narrowest width whose unsigned range holds v.
func MinUnsigned(v uint32) Width {
	switch {
	case v <= 0xff:
		return Width8
	case v <= 0xffff:
		return Width16
	default:
		return Width32
	}
}

// Widen returns the next width up. Widening past 32 bits is not possible and
// returns Width32.
func (w Width) Widen() Width {
	switch w {
	case Width8:
		return Width16
	case Width16:
		return Width32
	}
	return Width32
}

// Operand is one argument to a command, expression, or message command.
// Exactly one variant is used per instance.
type Operand interface {
	operand()
}

// IntOperand is an integer constant. Width is the forced encoding width, or
// WidthAuto to pick the narrowest signed width that fits.
type IntOperand struct {
	Value int32
	Width Width
}

// TextOperand is a printable string, stored as encoded game bytes.
type TextOperand struct {
	Bytes []byte
}

// LabelOperand references a label. Else marks the reference as an else-branch
// target, which resolves identically and exists for readability. Width is the
// forced pointer width, or WidthAuto to let layout choose.
type LabelOperand struct {
	Label LabelID
	Else  bool
	Width Width
}

// OffsetOperand references a raw file offset that does not correspond to any
// decoded block.
type OffsetOperand struct {
	Offset uint32
	Width  Width
}

// TypeOperand is an atom.
type TypeOperand struct {
	Type TypeOp
}

// ExprOperand is an expression tree node. Immediate opcodes carry a single
// IntOperand argument; addr carries a label or offset operand; everything
// else carries sub-expressions.
type ExprOperand struct {
	Op   ExprOp
	Args []Operand
}

// MsgOperand is a message body: literal text runs interleaved with inline
// message commands.
type MsgOperand struct {
	Commands []MsgCommand
}

func (*IntOperand) operand()    {}
func (*TextOperand) operand()   {}
func (*LabelOperand) operand()  {}
func (*OffsetOperand) operand() {}
func (*TypeOperand) operand()   {}
func (*ExprOperand) operand()   {}
func (*MsgOperand) operand()    {}

// MsgCommand is one element of a message body. Op is the message opcode; a
// text run uses Op == MsgEnd with Text set instead.
type MsgCommand struct {
	Op   MsgOp
	Args []Operand
	Text []byte
}

// IsText reports whether the element is a literal text run.
func (c *MsgCommand) IsText() bool { return c.Op == MsgEnd }

// Imm wraps a value in an immediate expression with automatic width.
func Imm(v int32) *ExprOperand {
	return &ExprOperand{Op: immOpFor(WidthAuto, v), Args: []Operand{&IntOperand{Value: v}}}
}

func immOpFor(w Width, v int32) ExprOp {
	if w == WidthAuto {
		w = MinSigned(int64(v))
	}
	switch w {
	case Width8:
		return ExprImm8
	case Width16:
		return ExprImm16
	}
	return ExprImm32
}

// ImmOp returns the immediate opcode for a width.
func ImmOp(w Width, v int32) ExprOp { return immOpFor(w, v) }

// ImmWidth returns the operand width an immediate opcode implies, or
// WidthAuto if op is not an immediate.
func ImmWidth(op ExprOp) Width {
	switch op {
	case ExprImm8:
		return Width8
	case ExprImm16:
		return Width16
	case ExprImm32:
		return Width32
	}
	return WidthAuto
}

// Command is one instruction: an opcode and its operands in signature order.
type Command struct {
	Op   CmdOp
	Args []Operand
}

// Block is an ordered run of commands or a run of raw data. Blocks are the
// unit of address layout; a block's label always binds to its first byte.
type Block struct {
	// Commands is non-nil for code blocks.
	Commands []Command
	// Data is non-nil for data blocks. Each operand is an IntOperand with an
	// explicit width or a LabelOperand written at dword width.
	Data []Operand
}

// IsCode reports whether the block holds code.
func (b *Block) IsCode() bool { return b.Commands != nil }

// Target declares what a translation unit compiles into.
type Target int

const (
	// TargetNone means no target specifier has been seen yet. Scripts with
	// TargetNone fail resolution.
	TargetNone Target = iota
	// TargetStage scopes the script to a single stage.
	TargetStage
	// TargetGlobals scopes the script to the global library.
	TargetGlobals
)

// EntryKind is the role of an entry point.
type EntryKind int

const (
	EntryPrologue EntryKind = iota
	EntryStartup
	EntryDead
	EntryPose
	EntryTimeCycle
	EntryTimeUp
	EntryInteract
	EntryLib
)

// Directive returns the directive which declares the entry point kind.
func (k EntryKind) Directive() DirOp {
	switch k {
	case EntryPrologue:
		return DirPrologue
	case EntryStartup:
		return DirStartup
	case EntryDead:
		return DirDead
	case EntryPose:
		return DirPose
	case EntryTimeCycle:
		return DirTimeCycle
	case EntryTimeUp:
		return DirTimeUp
	case EntryInteract:
		return DirInteract
	case EntryLib:
		return DirLib
	}
	return DirInvalid
}

// EntryPoint names a role the host runtime starts script execution from.
// Index is the object ID for EntryInteract and the function index for
// EntryLib; it is zero otherwise.
type EntryPoint struct {
	Kind  EntryKind
	Index int32
}

// Script is the model shared by the assembler and disassembler: the full set
// of blocks for one translation unit plus its entry-point table.
type Script struct {
	Target Target
	// Stage is the stage name for TargetStage scripts.
	Stage  string
	Blocks []*Block
	Labels LabelMap
	// EntryPoints maps roles to the labels of their first blocks.
	EntryPoints map[EntryPoint]LabelID
}

// NewScript creates an empty script.
func NewScript() *Script {
	return &Script{Labels: NewLabelMap(), EntryPoints: make(map[EntryPoint]LabelID)}
}

// Resolve returns the block index a label is bound to.
func (s *Script) Resolve(id LabelID) (int, bool) {
	l, ok := s.Labels.Get(id)
	if !ok || l.Block < 0 {
		return 0, false
	}
	return l.Block, true
}

// AddBlock appends a block and returns its index.
func (s *Script) AddBlock(b *Block) int {
	s.Blocks = append(s.Blocks, b)
	return len(s.Blocks) - 1
}
