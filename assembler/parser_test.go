package assembler_test

import (
	"testing"

	"github.com/adierking/unplug/assembler"
	"github.com/adierking/unplug/script"
)

func parseItems(t *testing.T, src string) []assembler.Item {
	t.Helper()
	items, err := assembler.NewParser(src).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return items
}

func TestParseLabelAndCommand(t *testing.T) {
	items := parseItems(t, "main:\n\tgoto *main\n")
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	l, ok := items[0].(*assembler.LabelItem)
	if !ok || l.Name != "main" {
		t.Fatalf("item 0 = %#v", items[0])
	}
	c, ok := items[1].(*assembler.CommandItem)
	if !ok || c.Name != "goto" || len(c.Operands) != 1 {
		t.Fatalf("item 1 = %#v", items[1])
	}
	ref, ok := c.Operands[0].(*assembler.LabelRefNode)
	if !ok || ref.Name != "main" || ref.Else {
		t.Fatalf("operand = %#v", c.Operands[0])
	}
}

func TestParseNestedCalls(t *testing.T) {
	items := parseItems(t, "\tset var(0), add(money, 5)\n")
	c := items[0].(*assembler.CommandItem)
	if len(c.Operands) != 2 {
		t.Fatalf("got %d operands", len(c.Operands))
	}
	dst := c.Operands[0].(*assembler.CallNode)
	if dst.Name != "var" || len(dst.Args) != 1 {
		t.Fatalf("dst = %#v", dst)
	}
	src := c.Operands[1].(*assembler.CallNode)
	if src.Name != "add" || len(src.Args) != 2 {
		t.Fatalf("src = %#v", src)
	}
	if bare, ok := src.Args[0].(*assembler.CallNode); !ok || bare.Name != "money" || len(bare.Args) != 0 {
		t.Fatalf("bare operator = %#v", src.Args[0])
	}
}

func TestParseElseReference(t *testing.T) {
	items := parseItems(t, "\tif 1, else *done.w\n")
	c := items[0].(*assembler.CommandItem)
	ref, ok := c.Operands[1].(*assembler.LabelRefNode)
	if !ok || !ref.Else || ref.Name != "done" || ref.Width != script.Width16 {
		t.Fatalf("else operand = %#v", c.Operands[1])
	}
}

func TestParseDirectives(t *testing.T) {
	items := parseItems(t, ".stage \"s01\"\n.interact 21, *handler\n.db 1, 2, 3\n")
	d0 := items[0].(*assembler.DirectiveItem)
	if d0.Name != "stage" || len(d0.Operands) != 1 {
		t.Fatalf("item 0 = %#v", d0)
	}
	d1 := items[1].(*assembler.DirectiveItem)
	if d1.Name != "interact" || len(d1.Operands) != 2 {
		t.Fatalf("item 1 = %#v", d1)
	}
	d2 := items[2].(*assembler.DirectiveItem)
	if d2.Name != "db" || len(d2.Operands) != 3 {
		t.Fatalf("item 2 = %#v", d2)
	}
}

func TestParseMessageOperands(t *testing.T) {
	items := parseItems(t, "\tmsg \"Hello\", wait(5), stay\n")
	c := items[0].(*assembler.CommandItem)
	if len(c.Operands) != 3 {
		t.Fatalf("got %d operands", len(c.Operands))
	}
	if _, ok := c.Operands[0].(*assembler.StringNode); !ok {
		t.Errorf("operand 0 = %#v", c.Operands[0])
	}
	if call, ok := c.Operands[1].(*assembler.CallNode); !ok || call.Name != "wait" {
		t.Errorf("operand 1 = %#v", c.Operands[1])
	}
	if call, ok := c.Operands[2].(*assembler.CallNode); !ok || call.Name != "stay" || len(call.Args) != 0 {
		t.Errorf("operand 2 = %#v", c.Operands[2])
	}
}

func TestParseRejectsStray(t *testing.T) {
	if _, err := assembler.NewParser("\tgoto *a *b\n").Parse(); err == nil {
		t.Error("missing comma accepted")
	}
	if _, err := assembler.NewParser(", abort\n").Parse(); err == nil {
		t.Error("leading comma accepted")
	}
}
