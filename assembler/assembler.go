// Package assembler converts event-script source text into the bytecode the
// game's script interpreter executes.
package assembler

import "github.com/adierking/unplug/script"

// Assembler holds the configuration for the assembly process.
type Assembler struct {
	maxPasses int
}

// Option configures an Assembler.
type Option func(*Assembler)

// MaxLayoutPasses bounds the address-layout relaxation. Zero or negative
// selects a bound derived from the number of references, which always
// suffices since widening is monotonic.
func MaxLayoutPasses(n int) Option {
	return func(a *Assembler) { a.maxPasses = n }
}

// New creates a new Assembler instance.
func New(opts ...Option) *Assembler {
	a := &Assembler{}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Assemble compiles source text into bytecode and entry-point offsets.
func (a *Assembler) Assemble(src string) (*Output, error) {
	s, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return a.AssembleScript(s)
}

// AssembleScript encodes an already-built script model. The disassembler's
// output feeds back through here for round-trip checks.
func (a *Assembler) AssembleScript(s *script.Script) (*Output, error) {
	if s.Target == script.TargetNone {
		return nil, &script.ResolutionError{Kind: script.MissingTarget}
	}
	if name := s.Labels.Unresolved(); name != "" {
		return nil, &script.ResolutionError{Kind: script.UndefinedLabel, Name: name}
	}
	return newEncoder(s, a.maxPasses).encode()
}

// Parse compiles source text into a script model without encoding it.
func Parse(src string) (*script.Script, error) {
	items, err := NewParser(src).Parse()
	if err != nil {
		return nil, err
	}
	return compile(items)
}
