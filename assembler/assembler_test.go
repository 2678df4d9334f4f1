package assembler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/adierking/unplug/assembler"
	"github.com/adierking/unplug/script"
)

func assemble(t *testing.T, src string) *assembler.Output {
	t.Helper()
	out, err := assembler.New().Assemble(src)
	if err != nil {
		t.Fatalf("failed to assemble:\n%s\nerror: %v", src, err)
	}
	return out
}

func assembleAndMatch(t *testing.T, name, src string, want []byte) {
	t.Helper()
	out := assemble(t, src)
	if !bytes.Equal(out.Code, want) {
		t.Errorf("[%s] encoding mismatch\nwant: % x\ngot:  % x", name, want, out.Code)
	}
}

func stage(body string) string {
	return ".stage \"s01\"\nmain:\n" + body
}

func TestSelfLoop(t *testing.T) {
	// The jump target is the address of its own instruction.
	assembleAndMatch(t, "SelfLoop", ".stage \"s01\"\nmain:\n\tgoto *main\n",
		[]byte{3, 1, 0})
}

func TestBasicEncodings(t *testing.T) {
	tests := []struct {
		name, body string
		want       []byte
	}{
		{"Abort", "\tabort\n", []byte{1}},
		{"Return", "\treturn\n", []byte{2}},
		{"Lib", "\tlib 1000\n", []byte{13, 2, 0xe8, 0x03}},
		{"SetVar", "\tset var(0), 10\n", []byte{4, 29, 33, 0, 33, 10}},
		{"SetCompound", "\tset adda(var(0), 5)\n", []byte{4, 15, 29, 33, 0, 33, 5}},
		{"StackSlot", "\tset var(0), sp(3)\n", []byte{4, 29, 33, 0, 26, 3}},
		{"AnimTerminator", "\tanim 0, 1, 2\n",
			[]byte{17, 33, 0, 33, 1, 33, 2, 33, 0xff}},
		{"CallSizePrefix", "\tcall 0, 5\n", []byte{22, 33, 0, 2, 0, 33, 5}},
		{"CameraAtom", "\tcamera @anim, 1, 2, 3\n",
			[]byte{23, 23, 0xcc, 0x00, 33, 1, 33, 2, 33, 3}},
		{"MenuLiteral", "\tmenu 1000\n", []byte{32, 23, 0xe8, 0x03}},
		{"PtclLeadCount", "\tptcl 1, @lead, 2, 3, 4\n",
			[]byte{38, 33, 1, 23, 0xdc, 0x00, 33, 2, 33, 2, 33, 3, 33, 4}},
		{"Negative", "\tkill -1\n", []byte{30, 33, 0xff}},
	}
	for _, tc := range tests {
		assembleAndMatch(t, tc.name, stage(tc.body), tc.want)
	}
}

func TestWidthMinimality(t *testing.T) {
	// 1000 needs 16 bits; without a suffix that is what it gets.
	assembleAndMatch(t, "Minimal", stage("\tlib 1000\n"), []byte{13, 2, 0xe8, 0x03})
	// A forced suffix is honored even though 4 bytes is not minimal.
	assembleAndMatch(t, "Forced", stage("\tlib 1000.d\n"),
		[]byte{13, 4, 0xe8, 0x03, 0, 0})
}

func TestIfElseEncoding(t *testing.T) {
	src := ".stage \"s01\"\n" +
		"main:\n" +
		"\tif 1, else *done\n" +
		"\treturn\n" +
		"done:\n" +
		"\tabort\n"
	assembleAndMatch(t, "IfElse", src, []byte{5, 33, 1, 1, 6, 2, 1})
}

func TestMessageEncoding(t *testing.T) {
	tests := []struct {
		name, body string
		want       []byte
	}{
		{"TextAndWait", "\tmsg \"Hi\", wait(5)\n",
			[]byte{35, 5, 0, 'H', 'i', 2, 5, 0}},
		{"NewlineSplit", "\tmsg \"a\\nb\"\n",
			[]byte{35, 4, 0, 'a', 10, 'b', 0}},
		{"Rgba", "\tmsg rgba(0x11223344)\n",
			[]byte{35, 6, 0, 15, 0x11, 0x22, 0x33, 0x44, 0}},
		{"Select", "\tselect \"A\", stay\n",
			[]byte{43, 3, 0, 'A', 24, 0}},
	}
	for _, tc := range tests {
		assembleAndMatch(t, tc.name, stage(tc.body), tc.want)
	}
}

func TestDataDirectives(t *testing.T) {
	assembleAndMatch(t, "Bytes", ".stage \"s01\"\nd:\n\t.db 1, 2, 0xff\n",
		[]byte{1, 2, 0xff})
	assembleAndMatch(t, "Words", ".stage \"s01\"\nd:\n\t.dw 0x1234, -1\n",
		[]byte{0x34, 0x12, 0xff, 0xff})
	assembleAndMatch(t, "LabelValue",
		".stage \"s01\"\n\t.dd *main\nmain:\n\treturn\n",
		[]byte{4, 0, 0, 0, 2})
}

func TestForwardReference(t *testing.T) {
	src := ".stage \"s01\"\n" +
		"main:\n" +
		"\tgoto *end\n" +
		"\tabort\n" +
		"end:\n" +
		"\treturn\n"
	// end sits after the 3-byte goto and the 1-byte abort.
	assembleAndMatch(t, "Forward", src, []byte{3, 1, 4, 1, 2})
}

func TestPointerWidening(t *testing.T) {
	var b strings.Builder
	b.WriteString(".stage \"s01\"\nmain:\n\tgoto *far\n")
	for i := 0; i < 300; i++ {
		b.WriteString("\t.db 0\n")
	}
	b.WriteString("far:\n\treturn\n")

	out := assemble(t, b.String())
	// The pointer had to widen to 16 bits, which moves far to 304.
	want := []byte{3, 2, 0x30, 0x01}
	if !bytes.Equal(out.Code[:4], want) {
		t.Errorf("widened jump = % x, want % x", out.Code[:4], want)
	}
	if len(out.Code) != 305 {
		t.Errorf("total size = %d, want 305", len(out.Code))
	}
}

func TestForcedPointerOverflow(t *testing.T) {
	var b strings.Builder
	b.WriteString(".stage \"s01\"\nmain:\n\tgoto *far.b\n")
	for i := 0; i < 300; i++ {
		b.WriteString("\t.db 0\n")
	}
	b.WriteString("far:\n\treturn\n")

	_, err := assembler.New().Assemble(b.String())
	var eerr *assembler.EncodeError
	if !errors.As(err, &eerr) || eerr.Kind != assembler.ValueOutOfRange {
		t.Fatalf("want ValueOutOfRange, got %v", err)
	}
	if eerr.Label != "far" {
		t.Errorf("error names label %q", eerr.Label)
	}
}

func TestLayoutPassBound(t *testing.T) {
	var b strings.Builder
	b.WriteString(".stage \"s01\"\nmain:\n\tgoto *far\n")
	for i := 0; i < 300; i++ {
		b.WriteString("\t.db 0\n")
	}
	b.WriteString("far:\n\treturn\n")

	_, err := assembler.New(assembler.MaxLayoutPasses(1)).Assemble(b.String())
	var eerr *assembler.EncodeError
	if !errors.As(err, &eerr) || eerr.Kind != assembler.UnstableLayout {
		t.Fatalf("want UnstableLayout, got %v", err)
	}
}

func TestEntryPoints(t *testing.T) {
	src := ".stage \"s01\"\n" +
		".startup *main\n" +
		".interact 21, *boot\n" +
		"main:\n" +
		"\treturn\n" +
		"boot:\n" +
		"\tabort\n"
	out := assemble(t, src)
	if len(out.EntryPoints) != 2 {
		t.Fatalf("entry points = %v", out.EntryPoints)
	}
	if off := out.EntryPoints[script.EntryPoint{Kind: script.EntryStartup}]; off != 0 {
		t.Errorf("startup offset = %d", off)
	}
	ep := script.EntryPoint{Kind: script.EntryInteract, Index: 21}
	if off := out.EntryPoints[ep]; off != 1 {
		t.Errorf("interact offset = %d", off)
	}
}

func TestLibEntryPoints(t *testing.T) {
	src := ".globals\n" +
		".lib 0, *f0\n" +
		".lib 1, *f1\n" +
		"f0:\n" +
		"\treturn\n" +
		"f1:\n" +
		"\treturn\n"
	out := assemble(t, src)
	if off := out.EntryPoints[script.EntryPoint{Kind: script.EntryLib, Index: 1}]; off != 1 {
		t.Errorf("lib 1 offset = %d", off)
	}
}

func resolutionKind(t *testing.T, src string, kind script.ResolutionKind, name string) {
	t.Helper()
	_, err := assembler.New().Assemble(src)
	var rerr *script.ResolutionError
	if !errors.As(err, &rerr) || rerr.Kind != kind || rerr.Name != name {
		t.Errorf("want %v(%q), got %v", kind, name, err)
	}
}

func TestResolutionErrors(t *testing.T) {
	resolutionKind(t, ".stage \"s\"\nloop:\n\treturn\nloop:\n\treturn\n",
		script.DuplicateLabel, "loop")
	resolutionKind(t, ".stage \"s\"\nmain:\n\tgoto *missing\n",
		script.UndefinedLabel, "missing")
	resolutionKind(t, "main:\n\treturn\n", script.MissingTarget, "")
	resolutionKind(t, ".stage \"a\"\n.globals\nmain:\n\treturn\n",
		script.DuplicateTarget, "")
	resolutionKind(t, ".stage \"a\"\n.lib 0, *m\nm:\n\treturn\n",
		script.LibInStage, "")
	resolutionKind(t, ".globals\n.startup *m\nm:\n\treturn\n",
		script.EventInGlobals, "")
}

func TestSetRejectsImmediateTargets(t *testing.T) {
	// set writes to a location; a bare integer is not one in either form.
	for _, src := range []string{"\tset 5\n", "\tset 1, 2\n"} {
		_, err := assembler.New().Assemble(stage(src))
		var perr *assembler.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%q: want ParseError, got %v", src, err)
		}
		if perr.Opcode != "set" {
			t.Errorf("%q: diagnostic = %v", src, perr)
		}
	}
}

func TestAnimNegativeArgument(t *testing.T) {
	// A genuine -1 argument widens to 16 bits; the 8-bit form is reserved
	// for the list terminator.
	assembleAndMatch(t, "AnimNegOne", stage("\tanim 0, -1\n"),
		[]byte{17, 33, 0, 23, 0xff, 0xff, 33, 0xff})
}

func TestMessageRejectsExpressions(t *testing.T) {
	_, err := assembler.New().Assemble(stage("\tmsg add(1, 2)\n"))
	var perr *assembler.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if perr.Opcode != "msg" || !strings.Contains(perr.Reason, "not a message command") {
		t.Errorf("diagnostic = %v", perr)
	}
}

func TestUnknownNames(t *testing.T) {
	if _, err := assembler.New().Assemble(stage("\tfrobnicate 1\n")); err == nil {
		t.Error("unknown instruction accepted")
	}
	if _, err := assembler.New().Assemble(stage("\tkill frob(1)\n")); err == nil {
		t.Error("unknown operator accepted")
	}
	if _, err := assembler.New().Assemble(stage("\tcamera @bogus, 1, 2, 3\n")); err == nil {
		t.Error("unknown atom accepted")
	}
	if _, err := assembler.New().Assemble(".bogus\n"); err == nil {
		t.Error("unknown directive accepted")
	}
}

func TestWrongOperandCounts(t *testing.T) {
	if _, err := assembler.New().Assemble(stage("\tgoto\n")); err == nil {
		t.Error("missing operand accepted")
	}
	if _, err := assembler.New().Assemble(stage("\tgoto *main, *main\n")); err == nil {
		t.Error("extra operand accepted")
	}
}
