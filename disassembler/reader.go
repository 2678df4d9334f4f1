package disassembler

import "github.com/adierking/unplug/script"

// reader cursors over the code buffer. Multi-byte reads are little-endian.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) u8() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, &DecodeError{Kind: TruncatedOperand, Offset: r.pos}
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// uint reads an unsigned value of the given width.
func (r *reader) uint(w script.Width) (uint32, error) {
	n := int(w)
	if r.remaining() < n {
		return 0, &DecodeError{Kind: TruncatedOperand, Offset: r.pos}
	}
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(r.data[r.pos+i]) << (8 * i)
	}
	r.pos += n
	return v, nil
}

// int reads a signed value of the given width, sign-extending it.
func (r *reader) int(w script.Width) (int32, error) {
	v, err := r.uint(w)
	if err != nil {
		return 0, err
	}
	switch w {
	case script.Width8:
		return int32(int8(v)), nil
	case script.Width16:
		return int32(int16(v)), nil
	}
	return int32(v), nil
}

// cstring reads bytes up to a null terminator.
func (r *reader) cstring() ([]byte, error) {
	start := r.pos
	for r.pos < len(r.data) {
		if r.data[r.pos] == 0 {
			b := r.data[start:r.pos]
			r.pos++
			return b, nil
		}
		r.pos++
	}
	return nil, &DecodeError{Kind: TruncatedOperand, Offset: start}
}

// width reads a pointer or integer width tag.
func (r *reader) width() (script.Width, error) {
	off := r.pos
	b, err := r.u8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 1, 2, 4:
		return script.Width(b), nil
	}
	return 0, &DecodeError{Kind: UnknownOpcode, Offset: off, Opcode: b,
		Detail: "invalid width tag"}
}
