package script

// ArgKind describes the type and purpose of one argument slot in a signature.
// The *Expr kinds all parse and encode as expressions; they are kept distinct
// because they document what the engine reads from the value.
type ArgKind uint8

const (
	// ArgInteger is a width-tagged integer constant.
	ArgInteger ArgKind = iota
	// ArgString is a null-terminated text constant.
	ArgString
	// ArgMessage is a message body.
	ArgMessage
	// ArgPointer is a width-tagged script offset.
	ArgPointer
	// ArgElsePointer is a pointer written with the else keyword.
	ArgElsePointer
	// ArgExpr is a general expression.
	ArgExpr
	// ArgSetExpr is an expression naming the target of an assignment.
	ArgSetExpr
	// ArgUpdateExpr is a compound-assignment expression.
	ArgUpdateExpr
	// ArgObjectExpr is an object ID expression.
	ArgObjectExpr
	// ArgItemExpr is an item ID expression.
	ArgItemExpr
	// ArgAtcExpr is an attachment ID expression.
	ArgAtcExpr
	// ArgSoundExpr is a sound ID expression.
	ArgSoundExpr
	// ArgEventExpr is a subroutine pointer expression.
	ArgEventExpr
	// ArgStringExpr is a string pointer expression.
	ArgStringExpr
	// ArgArrayExpr is an array pointer expression.
	ArgArrayExpr
	// ArgVariadic is zero or more expressions; always the last slot.
	ArgVariadic
	// ArgAtom is a specific atom, encoded as its immediate value.
	ArgAtom
	// ArgLiteral is a specific integer value, encoded as an immediate.
	ArgLiteral
)

// IsExpr reports whether the slot is filled by an expression.
func (k ArgKind) IsExpr() bool {
	switch k {
	case ArgExpr, ArgSetExpr, ArgUpdateExpr, ArgObjectExpr, ArgItemExpr,
		ArgAtcExpr, ArgSoundExpr, ArgEventExpr, ArgStringExpr, ArgArrayExpr:
		return true
	}
	return false
}

// Arg is one slot of a signature.
type Arg struct {
	Kind ArgKind
	// Atom is set for ArgAtom slots.
	Atom TypeOp
	// Lit is set for ArgLiteral slots.
	Lit int32
}

// Signature is one valid argument permutation for an opcode.
type Signature struct {
	Args []Arg
}

// table construction helpers
func sig(args ...Arg) Signature { return Signature{Args: args} }
func ex() Arg                   { return Arg{Kind: ArgExpr} }
func setx() Arg                 { return Arg{Kind: ArgSetExpr} }
func updx() Arg                 { return Arg{Kind: ArgUpdateExpr} }
func obj() Arg                  { return Arg{Kind: ArgObjectExpr} }
func item() Arg                 { return Arg{Kind: ArgItemExpr} }
func atc() Arg                  { return Arg{Kind: ArgAtcExpr} }
func snd() Arg                  { return Arg{Kind: ArgSoundExpr} }
func event() Arg                { return Arg{Kind: ArgEventExpr} }
func strp() Arg                 { return Arg{Kind: ArgStringExpr} }
func arr() Arg                  { return Arg{Kind: ArgArrayExpr} }
func in() Arg                   { return Arg{Kind: ArgInteger} }
func str() Arg                  { return Arg{Kind: ArgString} }
func msg() Arg                  { return Arg{Kind: ArgMessage} }
func ptr() Arg                  { return Arg{Kind: ArgPointer} }
func eptr() Arg                 { return Arg{Kind: ArgElsePointer} }
func va() Arg                   { return Arg{Kind: ArgVariadic} }
func at(t TypeOp) Arg           { return Arg{Kind: ArgAtom, Atom: t} }
func lit(v int32) Arg           { return Arg{Kind: ArgLiteral, Lit: v} }

// cmdSignatures lists every valid argument permutation per command. Atom and
// literal slots discriminate between permutations of the same opcode; the
// parser and the decoder both rely on that.
var cmdSignatures = map[CmdOp][]Signature{
	CmdAbort:  {sig()},
	CmdReturn: {sig()},
	CmdGoto:   {sig(ptr())},
	CmdSet:    {sig(updx()), sig(setx(), ex())},
	CmdIf:     {sig(ex(), eptr())},
	CmdElif:   {sig(ex(), eptr())},
	CmdEndIf:  {sig(ptr())},
	CmdCase:   {sig(ex(), eptr())},
	CmdExpr:   {sig(ex(), eptr())},
	CmdWhile:  {sig(ex(), eptr())},
	CmdBreak:  {sig(ptr())},
	CmdRun:    {sig(ptr())},
	CmdLib:    {sig(in())},
	CmdPushBp: {sig()},
	CmdPopBp:  {sig()},
	CmdSetSp:  {sig(ex())},
	CmdAnim:   {sig(obj(), va())},
	CmdAnim1:  {sig(obj(), va())},
	CmdAnim2:  {sig(obj(), va())},
	CmdAttach: {sig(obj(), event())},
	CmdBorn: {sig(ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(),
		event())},
	CmdCall: {sig(obj(), va())},
	CmdCamera: {
		sig(at(TypeAnim), ex(), ex(), ex()),
		sig(at(TypePos), ex(), ex(), ex(), ex(), ex()),
		sig(at(TypeObj), ex(), ex(), ex()),
		sig(at(TypeReset), ex(), ex()),
		sig(at(TypeUnk211), ex(), ex(), ex(), ex()),
		sig(at(TypeLead), ex()),
		sig(at(TypeUnk227), ex(), ex(), ex(), ex(), ex()),
		sig(at(TypeDistance), ex(), ex(), ex()),
		sig(at(TypeUnk229), ex(), ex(), ex()),
		sig(at(TypeUnk230)),
		sig(at(TypeUnk232), lit(-2)),
		sig(at(TypeUnk232), lit(-1)),
		sig(at(TypeUnk232), lit(0)),
		sig(at(TypeUnk232), lit(1)),
		sig(at(TypeUnk232), lit(2), ex()),
		sig(at(TypeUnk232), lit(3), ex()),
		sig(at(TypeUnk232), lit(4), ex()),
		sig(at(TypeUnk236), ex()),
		sig(at(TypeUnk237), ex()),
		sig(at(TypeUnk238), ex()),
		sig(at(TypeUnk240), ex(), ex(), ex(), ex()),
		sig(at(TypeUnk243), ex(), ex(), ex(), ex()),
		sig(at(TypeUnk251), ex(), ex(), ex(), ex()),
		sig(at(TypeUnk252), ex(), ex(), ex(), ex()),
	},
	CmdCheck: {
		sig(at(TypeTime), ex()),
		sig(at(TypeUnk201)),
		sig(at(TypeWipe)),
		sig(at(TypeUnk203)),
		sig(at(TypeAnim), obj(), ex()),
		sig(at(TypeDir), obj()),
		sig(at(TypeMove), obj()),
		sig(at(TypeColor), obj()),
		sig(at(TypeSfx), snd()),
		sig(at(TypeReal), ex()),
		sig(at(TypeCam)),
		sig(at(TypeRead), obj()),
		sig(at(TypeZBlur)),
		sig(at(TypeLetterbox)),
		sig(at(TypeShake)),
		sig(at(TypeMono)),
		sig(at(TypeScale), obj()),
		sig(at(TypeCue)),
		sig(at(TypeUnk246), ex()),
	},
	CmdColor: {
		sig(obj(), at(TypeModulate), ex(), ex(), ex(), ex()),
		sig(obj(), at(TypeBlend), ex(), ex(), ex(), ex()),
	},
	CmdDetach: {sig(obj())},
	CmdDir:    {sig(obj(), ex())},
	CmdMDir: {
		sig(obj(), at(TypeDir), ex(), ex(), ex()),
		sig(obj(), at(TypePos), ex(), ex(), ex(), ex()),
		sig(obj(), at(TypeObj), ex(), ex(), ex()),
		sig(obj(), at(TypeCam), ex(), ex()),
	},
	CmdDisp: {sig(obj(), ex())},
	CmdKill: {sig(ex())},
	CmdLight: {
		sig(ex(), at(TypePos), ex(), ex(), ex()),
		sig(ex(), at(TypeColor), ex(), ex(), ex()),
		sig(ex(), at(TypeUnk227), ex(), ex(), ex()),
	},
	CmdMenu: {
		sig(lit(0)), sig(lit(1)), sig(lit(2)), sig(lit(3)), sig(lit(4)),
		sig(lit(5)), sig(lit(6)), sig(lit(7)),
		sig(lit(1000), ex()),
		sig(lit(1001), ex(), ex()),
	},
	CmdMove:   {sig(obj(), ex(), ex(), ex(), ex())},
	CmdMoveTo: {sig(obj(), ex(), ex(), ex(), ex(), ex(), ex())},
	CmdMsg:    {sig(msg())},
	CmdPos:    {sig(obj(), ex(), ex(), ex())},
	CmdPrintF: {sig(str())},
	CmdPtcl: {
		sig(ex(), at(TypePos), ex(), ex(), ex(), ex(), ex(), ex(), ex()),
		sig(ex(), at(TypeObj), obj(), ex(), ex(), ex(), ex(), ex(), ex(), ex()),
		sig(ex(), at(TypeUnk210)),
		sig(ex(), at(TypeLead), obj(), va()),
	},
	CmdRead: {
		sig(at(TypeAnim), obj(), strp()),
		sig(at(TypeSfx), obj(), strp()),
	},
	CmdScale:  {sig(obj(), ex(), ex(), ex())},
	CmdMScale: {sig(obj(), ex(), ex(), ex(), ex())},
	CmdScrn: {
		sig(at(TypeUnk201), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex()),
		sig(at(TypeWipe), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(),
			ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex()),
		sig(at(TypeHud), lit(0), ex()),
		sig(at(TypeHud), lit(1), ex()),
		sig(at(TypeHud), lit(2), ex()),
		sig(at(TypeHud), lit(3), ex(), ex(), ex(), ex()),
		sig(at(TypeHud), lit(4), lit(-4)),
		sig(at(TypeHud), lit(4), lit(-3), ex()),
		sig(at(TypeHud), lit(4), lit(-2)),
		sig(at(TypeHud), lit(4), lit(-1)),
		sig(at(TypeHud), lit(4), lit(0)),
		sig(at(TypeHud), lit(4), lit(1)),
		sig(at(TypeHud), lit(4), lit(2)),
		sig(at(TypeHud), lit(4), lit(3)),
		sig(at(TypeZBlur), ex(), ex(), ex(), ex(), ex()),
		sig(at(TypeLetterbox), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(),
			ex(), ex()),
		sig(at(TypeShake), ex(), ex(), ex(), ex(), ex(), ex(), ex()),
		sig(at(TypeMono), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex(), ex()),
	},
	CmdSelect: {sig(msg())},
	CmdSfx: {
		sig(snd(), lit(0)),
		sig(snd(), lit(1)),
		sig(snd(), lit(2), ex()),
		sig(snd(), lit(3), ex()),
		sig(snd(), lit(4), ex(), ex()),
		sig(snd(), lit(5)),
		sig(snd(), lit(6)),
		sig(snd(), at(TypeCue)),
	},
	CmdTimer: {sig(ex(), event())},
	CmdWait: {
		sig(at(TypeTime), ex()),
		sig(at(TypeUnk201)),
		sig(at(TypeWipe)),
		sig(at(TypeUnk203)),
		sig(at(TypeAnim), obj(), ex()),
		sig(at(TypeDir), obj()),
		sig(at(TypeMove), obj()),
		sig(at(TypeColor), obj()),
		sig(at(TypeSfx), snd()),
		sig(at(TypeReal), ex()),
		sig(at(TypeCam)),
		sig(at(TypeRead), obj()),
		sig(at(TypeZBlur)),
		sig(at(TypeLetterbox)),
		sig(at(TypeShake)),
		sig(at(TypeMono)),
		sig(at(TypeScale), obj()),
		sig(at(TypeCue)),
		sig(at(TypeUnk246), ex()),
	},
	CmdWarp: {sig(ex(), ex())},
	CmdWin: {
		sig(at(TypePos), ex(), ex()),
		sig(at(TypeObj), obj(), ex(), ex(), ex()),
		sig(at(TypeReset)),
		sig(at(TypeColor), ex(), ex(), ex(), ex()),
		sig(at(TypeLetterbox)),
	},
	CmdMovie: {sig(strp(), ex(), ex(), ex(), ex(), ex())},
}

// exprSignatures lists argument permutations per expression operator. Only
// obj is atom-discriminated; every other operator has exactly one shape.
var exprSignatures = map[ExprOp][]Signature{
	ExprEqual:          {sig(ex(), ex())},
	ExprNotEqual:       {sig(ex(), ex())},
	ExprLess:           {sig(ex(), ex())},
	ExprLessEqual:      {sig(ex(), ex())},
	ExprGreater:        {sig(ex(), ex())},
	ExprGreaterEqual:   {sig(ex(), ex())},
	ExprNot:            {sig(ex())},
	ExprAdd:            {sig(ex(), ex())},
	ExprSubtract:       {sig(ex(), ex())},
	ExprMultiply:       {sig(ex(), ex())},
	ExprDivide:         {sig(ex(), ex())},
	ExprModulo:         {sig(ex(), ex())},
	ExprBitAnd:         {sig(ex(), ex())},
	ExprBitOr:          {sig(ex(), ex())},
	ExprBitXor:         {sig(ex(), ex())},
	ExprAddAssign:      {sig(ex(), ex())},
	ExprSubtractAssign: {sig(ex(), ex())},
	ExprMultiplyAssign: {sig(ex(), ex())},
	ExprDivideAssign:   {sig(ex(), ex())},
	ExprModuloAssign:   {sig(ex(), ex())},
	ExprBitAndAssign:   {sig(ex(), ex())},
	ExprBitOrAssign:    {sig(ex(), ex())},
	ExprBitXorAssign:   {sig(ex(), ex())},
	ExprImm8:           {sig(in())},
	ExprImm16:          {sig(in())},
	ExprImm32:          {sig(in())},
	ExprAddressOf:      {sig(ptr())},
	ExprStack:          {sig(in())},
	ExprParentStack:    {sig(in())},
	ExprFlag:           {sig(ex())},
	ExprVariable:       {sig(ex())},
	ExprResult1:        {sig()},
	ExprResult2:        {sig()},
	ExprPad:            {sig(ex())},
	ExprBattery:        {sig(ex())},
	ExprMoney:          {sig()},
	ExprItem:           {sig(item())},
	ExprAtc:            {sig(ex())},
	ExprRank:           {sig()},
	ExprExp:            {sig()},
	ExprLevel:          {sig()},
	ExprHold:           {sig()},
	ExprMap:            {sig(ex())},
	ExprActorName:      {sig(obj())},
	ExprItemName:       {sig(item())},
	ExprTime:           {sig(ex())},
	ExprCurrentSuit:    {sig()},
	ExprScrap:          {sig()},
	ExprCurrentAtc:     {sig()},
	ExprUse:            {sig()},
	ExprHit:            {sig()},
	ExprStickerName:    {sig(ex())},
	ExprObj: {
		sig(at(TypeAnim), obj()),
		sig(at(TypeDir), obj()),
		sig(at(TypePosX), obj()),
		sig(at(TypePosY), obj()),
		sig(at(TypePosZ), obj()),
		sig(at(TypeBoneX), arr()),
		sig(at(TypeBoneY), arr()),
		sig(at(TypeBoneZ), arr()),
		sig(at(TypeDirTo), arr()),
		sig(at(TypeDistance), arr()),
		sig(at(TypeUnk235), obj()),
		sig(at(TypeUnk247), obj()),
		sig(at(TypeUnk248), obj()),
		sig(at(TypeUnk249), arr()),
		sig(at(TypeUnk250), arr()),
	},
	ExprRandom:    {sig(ex())},
	ExprSin:       {sig(ex())},
	ExprCos:       {sig(ex())},
	ExprArrayElem: {sig(ex(), ex(), arr())},
}

// MsgArgKind describes one inline message command argument slot and fixes its
// encoded width.
type MsgArgKind uint8

const (
	// MsgArgU8 is an unsigned byte.
	MsgArgU8 MsgArgKind = iota
	// MsgArgI16 is a signed 16-bit value.
	MsgArgI16
	// MsgArgU16 is an unsigned 16-bit value.
	MsgArgU16
	// MsgArgI32 is a signed 32-bit value.
	MsgArgI32
	// MsgArgSound is an unsigned 32-bit sound ID.
	MsgArgSound
	// MsgArgRgba is a 32-bit color stored big-endian.
	MsgArgRgba
	// MsgArgString is null-terminated text.
	MsgArgString
	// MsgArgLit is a specific value stored as one byte.
	MsgArgLit
)

// MsgArg is one slot of a message command signature.
type MsgArg struct {
	Kind MsgArgKind
	Lit  int32
}

// MsgSignature is one valid argument permutation for a message command.
type MsgSignature struct {
	Args []MsgArg
}

func msig(args ...MsgArg) MsgSignature { return MsgSignature{Args: args} }
func mu8() MsgArg                      { return MsgArg{Kind: MsgArgU8} }
func mi16() MsgArg                     { return MsgArg{Kind: MsgArgI16} }
func mu16() MsgArg                     { return MsgArg{Kind: MsgArgU16} }
func mi32() MsgArg                     { return MsgArg{Kind: MsgArgI32} }
func msnd() MsgArg                     { return MsgArg{Kind: MsgArgSound} }
func mrgba() MsgArg                    { return MsgArg{Kind: MsgArgRgba} }
func mstr() MsgArg                     { return MsgArg{Kind: MsgArgString} }
func mlit(v int32) MsgArg              { return MsgArg{Kind: MsgArgLit, Lit: v} }

// msgSignatures fixes the argument widths of every inline message command.
var msgSignatures = map[MsgOp][]MsgSignature{
	MsgSpeed: {msig(mu8())},
	MsgWait:  {msig(mu8())},
	MsgAnim:  {msig(mu8(), mi16(), mi32())},
	MsgSfx: {
		msig(msnd(), mlit(-1)),
		msig(msnd(), mlit(0)),
		msig(msnd(), mlit(1)),
		msig(msnd(), mlit(2), mu16()),
		msig(msnd(), mlit(3), mu16()),
		msig(msnd(), mlit(4), mu16(), mu16()),
		msig(msnd(), mlit(5)),
		msig(msnd(), mlit(6)),
	},
	MsgVoice:    {msig(mu8())},
	MsgDefault:  {msig(mu8(), mi32())},
	MsgFormat:   {msig(mstr())},
	MsgSize:     {msig(mu8())},
	MsgColor:    {msig(mu8())},
	MsgRgba:     {msig(mrgba())},
	MsgProp:     {msig(mu8())},
	MsgIcon:     {msig(mu8())},
	MsgShake:    {msig(mu8(), mu8(), mu8())},
	MsgCenter:   {msig(mu8())},
	MsgRotate:   {msig(mi16())},
	MsgScale:    {msig(mi16(), mi16())},
	MsgNumInput: {msig(mu8(), mu8(), mu8())},
	MsgQuestion: {msig(mu8(), mu8())},
	MsgStay:     {msig()},
}

// CmdSignatures returns the argument permutations for a command opcode, or
// nil if the opcode is unknown.
func CmdSignatures(op CmdOp) []Signature { return cmdSignatures[op] }

// ExprSignatures returns the argument permutations for an expression
// operator, or nil if the operator is unknown.
func ExprSignatures(op ExprOp) []Signature { return exprSignatures[op] }

// MsgSignatures returns the argument permutations for a message command, or
// nil if the command is unknown.
func MsgSignatures(op MsgOp) []MsgSignature { return msgSignatures[op] }

// MatchMsgCommand picks the signature whose arity and literal discriminators
// match a message command's stored arguments. Argument widths are fixed per
// signature, so both re-encoding and printing need this to be unambiguous.
func MatchMsgCommand(c *MsgCommand) (MsgSignature, bool) {
	for _, sig := range msgSignatures[c.Op] {
		if len(sig.Args) != len(c.Args) {
			continue
		}
		ok := true
		for i, a := range sig.Args {
			if a.Kind != MsgArgLit {
				continue
			}
			in, isInt := c.Args[i].(*IntOperand)
			if !isInt || in.Value != a.Lit {
				ok = false
				break
			}
		}
		if ok {
			return sig, true
		}
	}
	// The newline controls take no arguments and have no callable signature.
	if c.Op == MsgNewline || c.Op == MsgNewlineVt {
		return MsgSignature{}, len(c.Args) == 0
	}
	return MsgSignature{}, false
}
