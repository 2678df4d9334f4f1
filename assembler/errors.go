package assembler

import (
	"fmt"

	"github.com/adierking/unplug/script"
)

// ParseError reports malformed grammar or an operand that fits no legal shape
// for its opcode and position.
type ParseError struct {
	// Offset is the byte offset of the offending token.
	Offset int
	// Opcode is the instruction or directive name for operand-shape errors,
	// or "".
	Opcode string
	// Operand is the 1-based operand index for operand-shape errors, or 0.
	Operand int
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Opcode != "" {
		return fmt.Sprintf("offset %d: %s: operand %d: %s",
			e.Offset, e.Opcode, e.Operand, e.Reason)
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Reason)
}

// EncodeErrorKind classifies encoding failures.
type EncodeErrorKind int

const (
	// ValueOutOfRange means a value does not fit its forced width.
	ValueOutOfRange EncodeErrorKind = iota
	// UnresolvedLabel means the script model references a label it cannot
	// resolve. The parser prevents this for text input; seeing it from a
	// hand-built script model means the model is malformed.
	UnresolvedLabel
	// UnstableLayout means address layout did not reach a fixed point within
	// the pass bound.
	UnstableLayout
	// UnsupportedOperand means an operand shape has no encoding. This is an
	// internal invariant violation, not a user error.
	UnsupportedOperand
)

// EncodeError reports a failure to produce bytecode from a script model.
type EncodeError struct {
	Kind EncodeErrorKind
	// Label is the relevant label name, if any.
	Label string
	// Value and Width describe the out-of-range value.
	Value int64
	Width script.Width
	// Detail describes internal invariant violations.
	Detail string
}

func (e *EncodeError) Error() string {
	switch e.Kind {
	case ValueOutOfRange:
		if e.Label != "" {
			return fmt.Sprintf("label %q: offset %d does not fit forced width%s",
				e.Label, e.Value, e.Width.Suffix())
		}
		return fmt.Sprintf("value %d does not fit forced width%s",
			e.Value, e.Width.Suffix())
	case UnresolvedLabel:
		return fmt.Sprintf("cannot resolve label %q", e.Label)
	case UnstableLayout:
		return fmt.Sprintf("address layout did not stabilize (last widened: %q)",
			e.Label)
	}
	return fmt.Sprintf("internal error: unencodable operand: %s", e.Detail)
}
