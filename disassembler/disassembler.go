// Package disassembler decodes event bytecode back into source text. Decoding
// walks the code reachable from the entry points, recovers block structure and
// labels, and preserves unreachable bytes as data so the output assembles back
// to the original buffer.
package disassembler

// Disassemble decodes a bytecode buffer and renders it as canonical source
// text.
func Disassemble(in Input) (string, error) {
	s, err := Decode(in)
	if err != nil {
		return "", err
	}
	return Print(s)
}
