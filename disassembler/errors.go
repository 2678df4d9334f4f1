package disassembler

import "fmt"

// DecodeErrorKind classifies decoding failures.
type DecodeErrorKind int

const (
	// UnknownOpcode means a byte is not a valid opcode or encoding tag, or a
	// decoded operand sequence matches no known signature.
	UnknownOpcode DecodeErrorKind = iota
	// TruncatedOperand means the buffer ended inside an instruction.
	TruncatedOperand
	// OffsetOutOfRange means a referenced offset lies outside the buffer or
	// inside the bytes of another instruction.
	OffsetOutOfRange
)

// DecodeError reports malformed bytecode at a byte offset.
type DecodeError struct {
	Kind   DecodeErrorKind
	Offset int
	// Opcode is the offending byte for UnknownOpcode.
	Opcode byte
	Detail string
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case UnknownOpcode:
		if e.Detail != "" {
			return fmt.Sprintf("offset %d: %s (byte 0x%02x)", e.Offset, e.Detail, e.Opcode)
		}
		return fmt.Sprintf("offset %d: unknown opcode 0x%02x", e.Offset, e.Opcode)
	case TruncatedOperand:
		return fmt.Sprintf("offset %d: truncated instruction", e.Offset)
	}
	return fmt.Sprintf("offset %d: offset reference out of range", e.Offset)
}
