package disassembler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/adierking/unplug/assembler"
	"github.com/adierking/unplug/disassembler"
	"github.com/adierking/unplug/script"
)

func stageInput(data []byte, entries map[script.EntryPoint]uint32) disassembler.Input {
	return disassembler.Input{
		Data:        data,
		Target:      script.TargetStage,
		Stage:       "s01",
		EntryPoints: entries,
	}
}

func startupAt(off uint32) map[script.EntryPoint]uint32 {
	return map[script.EntryPoint]uint32{{Kind: script.EntryStartup}: off}
}

func disassemble(t *testing.T, in disassembler.Input) string {
	t.Helper()
	text, err := disassembler.Disassemble(in)
	if err != nil {
		t.Fatalf("disassemble % x: %v", in.Data, err)
	}
	return text
}

// reassemble parses disassembly output and encodes it again.
func reassemble(t *testing.T, text string) *assembler.Output {
	t.Helper()
	out, err := assembler.New().Assemble(text)
	if err != nil {
		t.Fatalf("reassembling disassembly failed:\n%s\nerror: %v", text, err)
	}
	return out
}

func TestSelfLoop(t *testing.T) {
	data := []byte{3, 1, 0}
	text := disassemble(t, stageInput(data, startupAt(0)))
	for _, want := range []string{".stage \"s01\"", ".startup *evt_0", "evt_0:", "\tgoto *evt_0"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	out := reassemble(t, text)
	if !bytes.Equal(out.Code, data) {
		t.Errorf("round trip = % x, want % x", out.Code, data)
	}
	if out.EntryPoints[script.EntryPoint{Kind: script.EntryStartup}] != 0 {
		t.Errorf("entry offsets = %v", out.EntryPoints)
	}
}

func TestForcedWidthRetained(t *testing.T) {
	src := ".stage \"s01\"\nmain:\n\tlib 1000.d\n"
	out, err := assembler.New().Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	text := disassemble(t, stageInput(out.Code, startupAt(0)))
	// 4 bytes is not minimal for 1000, so the suffix must come back.
	if !strings.Contains(text, "lib 1000.d") {
		t.Errorf("suffix lost:\n%s", text)
	}
}

func TestPointerWidthBoundary(t *testing.T) {
	// A 2-byte pointer to offset 256 is minimal for that address, but a
	// from-scratch layout would shrink it to one byte and move the target to
	// 255. The reprinted pointer must carry the suffix so the bytes survive.
	var b strings.Builder
	b.WriteString(".stage \"s01\"\nmain:\n\tgoto *far.w\n")
	for i := 0; i < 252; i++ {
		b.WriteString("\t.db 0\n")
	}
	b.WriteString("far:\n\treturn\n")
	out, err := assembler.New().Assemble(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Code) != 257 {
		t.Fatalf("buffer size = %d, want 257", len(out.Code))
	}
	text := disassemble(t, stageInput(out.Code, startupAt(0)))
	if !strings.Contains(text, "goto *loc_0.w") {
		t.Errorf("boundary pointer lost its suffix:\n%s", text)
	}
	re := reassemble(t, text)
	if !bytes.Equal(re.Code, out.Code) {
		t.Errorf("round trip = %d bytes, want %d", len(re.Code), len(out.Code))
	}
}

func TestAnimNegativeArgumentRoundTrip(t *testing.T) {
	// A 16-bit -1 is a genuine argument; only the 8-bit form terminates the
	// list.
	data := []byte{17, 33, 0, 23, 0xff, 0xff, 33, 0xff}
	text := disassemble(t, stageInput(data, startupAt(0)))
	if !strings.Contains(text, "anim 0, -1.w") {
		t.Errorf("argument consumed as terminator:\n%s", text)
	}
	out := reassemble(t, text)
	if !bytes.Equal(out.Code, data) {
		t.Errorf("round trip = % x, want % x", out.Code, data)
	}
}

func TestUnreachableBytesKeptAsData(t *testing.T) {
	data := []byte{2, 0xaa, 0xbb}
	text := disassemble(t, stageInput(data, startupAt(0)))
	if !strings.Contains(text, ".db 0xaa, 0xbb") {
		t.Errorf("gap not preserved:\n%s", text)
	}
	out := reassemble(t, text)
	if !bytes.Equal(out.Code, data) {
		t.Errorf("round trip = % x, want % x", out.Code, data)
	}
}

func TestSubroutineLabels(t *testing.T) {
	// run points at a second event; its label gets the sub prefix.
	data := []byte{12, 1, 4, 2, 2}
	text := disassemble(t, stageInput(data, startupAt(0)))
	if !strings.Contains(text, "\trun *sub_0") || !strings.Contains(text, "sub_0:") {
		t.Errorf("subroutine label missing:\n%s", text)
	}
	out := reassemble(t, text)
	if !bytes.Equal(out.Code, data) {
		t.Errorf("round trip = % x, want % x", out.Code, data)
	}
}

func TestElseBranchPrinted(t *testing.T) {
	data := []byte{5, 33, 1, 1, 6, 2, 1}
	text := disassemble(t, stageInput(data, startupAt(0)))
	if !strings.Contains(text, "\tif 1, else *loc_0") {
		t.Errorf("else branch not printed:\n%s", text)
	}
	if !strings.Contains(text, "loc_0:\n\tabort") {
		t.Errorf("branch target label missing:\n%s", text)
	}
	out := reassemble(t, text)
	if !bytes.Equal(out.Code, data) {
		t.Errorf("round trip = % x, want % x", out.Code, data)
	}
}

func TestMessageDecoding(t *testing.T) {
	src := ".stage \"s01\"\nmain:\n\tmsg \"Hi\\nthere\", wait(5), rgba(0x11223344)\n"
	out, err := assembler.New().Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	text := disassemble(t, stageInput(out.Code, startupAt(0)))
	// Newline controls fold back into the string; colors print as hex.
	if !strings.Contains(text, "msg \"Hi\\nthere\", wait(5), rgba(0x11223344)") {
		t.Errorf("message not reprinted canonically:\n%s", text)
	}
	re := reassemble(t, text)
	if !bytes.Equal(re.Code, out.Code) {
		t.Errorf("round trip = % x, want % x", re.Code, out.Code)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind disassembler.DecodeErrorKind
	}{
		{"UnknownOpcode", []byte{99}, disassembler.UnknownOpcode},
		{"TruncatedPointer", []byte{3, 1}, disassembler.TruncatedOperand},
		{"BadWidthTag", []byte{3, 3, 0}, disassembler.UnknownOpcode},
		{"JumpIntoOperand", []byte{3, 1, 2}, disassembler.OffsetOutOfRange},
		{"TargetPastEnd", []byte{3, 1, 9}, disassembler.OffsetOutOfRange},
	}
	for _, tc := range tests {
		_, err := disassembler.Decode(stageInput(tc.data, startupAt(0)))
		var derr *disassembler.DecodeError
		if !errors.As(err, &derr) || derr.Kind != tc.kind {
			t.Errorf("[%s] want kind %v, got %v", tc.name, tc.kind, err)
		}
	}
}

func TestEntryValidation(t *testing.T) {
	_, err := disassembler.Decode(disassembler.Input{
		Data:        []byte{2},
		Target:      script.TargetStage,
		Stage:       "s01",
		EntryPoints: map[script.EntryPoint]uint32{{Kind: script.EntryLib}: 0},
	})
	var rerr *script.ResolutionError
	if !errors.As(err, &rerr) || rerr.Kind != script.LibInStage {
		t.Errorf("want LibInStage, got %v", err)
	}

	_, err = disassembler.Decode(disassembler.Input{
		Data:        []byte{2},
		Target:      script.TargetGlobals,
		EntryPoints: startupAt(0),
	})
	if !errors.As(err, &rerr) || rerr.Kind != script.EventInGlobals {
		t.Errorf("want EventInGlobals, got %v", err)
	}

	_, err = disassembler.Decode(disassembler.Input{Data: []byte{2}})
	if !errors.As(err, &rerr) || rerr.Kind != script.MissingTarget {
		t.Errorf("want MissingTarget, got %v", err)
	}
}

func TestBlockSplitAtJumpTarget(t *testing.T) {
	// The second command of the first run is also a jump target, so it
	// must start its own block with its own label.
	src := ".stage \"s01\"\n" +
		"main:\n" +
		"\tkill 0\n" +
		"mid:\n" +
		"\tkill 1\n" +
		"\tgoto *mid\n"
	out, err := assembler.New().Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	s, err := disassembler.Decode(stageInput(out.Code, startupAt(0)))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(s.Blocks))
	}
	if n := len(s.Blocks[0].Commands); n != 1 {
		t.Errorf("first block has %d commands, want 1", n)
	}
	if n := len(s.Blocks[1].Commands); n != 2 {
		t.Errorf("second block has %d commands, want 2", n)
	}
	text := disassemble(t, stageInput(out.Code, startupAt(0)))
	re := reassemble(t, text)
	if !bytes.Equal(re.Code, out.Code) {
		t.Errorf("round trip = % x, want % x", re.Code, out.Code)
	}
}

// Structural equivalence: a parsed source and the decoding of its assembly
// must lay out to the same bytes even though label names differ.
func TestSourceModelEquivalence(t *testing.T) {
	src := ".stage \"s01\"\n" +
		".startup *main\n" +
		"main:\n" +
		"\tset var(0), 10\n" +
		"\tif gt(var(0), 5), else *done\n" +
		"\tkill 1000\n" +
		"done:\n" +
		"\treturn\n"
	parsed, err := assembler.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	fromSrc, err := assembler.New().AssembleScript(parsed)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := disassembler.Decode(stageInput(fromSrc.Code,
		map[script.EntryPoint]uint32{{Kind: script.EntryStartup}: fromSrc.EntryPoints[script.EntryPoint{Kind: script.EntryStartup}]}))
	if err != nil {
		t.Fatal(err)
	}
	fromDec, err := assembler.New().AssembleScript(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fromDec.Code, fromSrc.Code) {
		t.Errorf("models diverge:\nsrc: % x\ndec: % x", fromSrc.Code, fromDec.Code)
	}
}
