package script

import "testing"

func TestEveryCommandHasSignatures(t *testing.T) {
	for b := 1; b <= 49; b++ {
		op := CmdOp(b)
		if len(CmdSignatures(op)) == 0 {
			t.Errorf("%s has no signatures", op.Name())
		}
	}
}

func TestEveryOperatorHasSignatures(t *testing.T) {
	for op := range exprNames {
		if len(ExprSignatures(op)) == 0 {
			t.Errorf("%s has no signatures", op.Name())
		}
	}
}

func TestEveryMessageCommandHasSignatures(t *testing.T) {
	for op := range msgNames {
		if len(MsgSignatures(op)) == 0 {
			t.Errorf("%s has no signatures", op.Name())
		}
	}
}

// Signatures of the same opcode must stay distinguishable by their atom and
// literal slots; both directions of the toolchain resolve overloads that way.
func TestSignatureDiscriminators(t *testing.T) {
	for op, sigs := range cmdSignatures {
		for i := 0; i < len(sigs); i++ {
			for j := i + 1; j < len(sigs); j++ {
				if !distinguishable(sigs[i], sigs[j]) {
					t.Errorf("%s signatures %d and %d are ambiguous", op.Name(), i, j)
				}
			}
		}
	}
}

func distinguishable(a, b Signature) bool {
	n := len(a.Args)
	if len(b.Args) < n {
		n = len(b.Args)
	}
	for i := 0; i < n; i++ {
		sa, sb := a.Args[i], b.Args[i]
		va, aok := discriminator(sa)
		vb, bok := discriminator(sb)
		if aok && bok && va != vb {
			return true
		}
		if (sa.Kind == ArgUpdateExpr) != (sb.Kind == ArgUpdateExpr) {
			return true
		}
		if sa.Kind == ArgVariadic || sb.Kind == ArgVariadic {
			return true
		}
	}
	return false
}

// discriminator returns the fixed immediate value an atom or literal slot
// encodes to.
func discriminator(a Arg) (int32, bool) {
	switch a.Kind {
	case ArgAtom:
		return int32(a.Atom), true
	case ArgLiteral:
		return a.Lit, true
	}
	return 0, false
}

func TestMatchMsgCommand(t *testing.T) {
	sfx := &MsgCommand{Op: MsgSfx, Args: []Operand{
		&IntOperand{Value: 7}, &IntOperand{Value: 2}, &IntOperand{Value: 30},
	}}
	sig, ok := MatchMsgCommand(sfx)
	if !ok || len(sig.Args) != 3 || sig.Args[2].Kind != MsgArgU16 {
		t.Fatalf("sfx fade-out form did not match: %v %v", sig, ok)
	}

	stop := &MsgCommand{Op: MsgSfx, Args: []Operand{
		&IntOperand{Value: 7}, &IntOperand{Value: -1},
	}}
	if _, ok := MatchMsgCommand(stop); !ok {
		t.Fatal("sfx stop form did not match")
	}

	bad := &MsgCommand{Op: MsgSfx, Args: []Operand{&IntOperand{Value: 7}}}
	if _, ok := MatchMsgCommand(bad); ok {
		t.Fatal("one-argument sfx should not match")
	}

	nl := &MsgCommand{Op: MsgNewline}
	if sig, ok := MatchMsgCommand(nl); !ok || len(sig.Args) != 0 {
		t.Fatal("newline control should match with no arguments")
	}
}

func TestArgKindIsExpr(t *testing.T) {
	if !ArgExpr.IsExpr() || !ArgEventExpr.IsExpr() || !ArgSetExpr.IsExpr() {
		t.Error("expression kinds misclassified")
	}
	if ArgInteger.IsExpr() || ArgPointer.IsExpr() || ArgAtom.IsExpr() {
		t.Error("non-expression kinds misclassified")
	}
}
