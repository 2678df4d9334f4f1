package script

// Opcode values for the GGTE01 (USA) event interpreter. The game developers
// appear to have assigned these in decimal; several groups start at multiples
// of 100.

// CmdOp is a command opcode.
type CmdOp uint8

const (
	CmdInvalid CmdOp = 0
	CmdAbort   CmdOp = 1
	CmdReturn  CmdOp = 2
	CmdGoto    CmdOp = 3
	CmdSet     CmdOp = 4
	CmdIf      CmdOp = 5
	CmdElif    CmdOp = 6
	CmdEndIf   CmdOp = 7
	CmdCase    CmdOp = 8
	CmdExpr    CmdOp = 9
	CmdWhile   CmdOp = 10
	CmdBreak   CmdOp = 11
	CmdRun     CmdOp = 12
	CmdLib     CmdOp = 13
	CmdPushBp  CmdOp = 14
	CmdPopBp   CmdOp = 15
	CmdSetSp   CmdOp = 16
	CmdAnim    CmdOp = 17
	CmdAnim1   CmdOp = 18
	CmdAnim2   CmdOp = 19
	CmdAttach  CmdOp = 20
	CmdBorn    CmdOp = 21
	CmdCall    CmdOp = 22
	CmdCamera  CmdOp = 23
	CmdCheck   CmdOp = 24
	CmdColor   CmdOp = 25
	CmdDetach  CmdOp = 26
	CmdDir     CmdOp = 27
	CmdMDir    CmdOp = 28
	CmdDisp    CmdOp = 29
	CmdKill    CmdOp = 30
	CmdLight   CmdOp = 31
	CmdMenu    CmdOp = 32
	CmdMove    CmdOp = 33
	CmdMoveTo  CmdOp = 34
	CmdMsg     CmdOp = 35
	CmdPos     CmdOp = 36
	CmdPrintF  CmdOp = 37
	CmdPtcl    CmdOp = 38
	CmdRead    CmdOp = 39
	CmdScale   CmdOp = 40
	CmdMScale  CmdOp = 41
	CmdScrn    CmdOp = 42
	CmdSelect  CmdOp = 43
	CmdSfx     CmdOp = 44
	CmdTimer   CmdOp = 45
	CmdWait    CmdOp = 46
	CmdWarp    CmdOp = 47
	CmdWin     CmdOp = 48
	CmdMovie   CmdOp = 49
)

// IsIf reports whether the command is an if-style conditional with an else
// target.
func (op CmdOp) IsIf() bool {
	switch op {
	case CmdIf, CmdElif, CmdCase, CmdExpr, CmdWhile:
		return true
	}
	return false
}

// IsGoto reports whether the command always jumps to another offset.
func (op CmdOp) IsGoto() bool {
	switch op {
	case CmdBreak, CmdEndIf, CmdGoto:
		return true
	}
	return false
}

// IsControlFlow reports whether the command may jump to another offset or end
// the event. Subroutine calls are not included.
func (op CmdOp) IsControlFlow() bool {
	switch op {
	case CmdAbort, CmdReturn, CmdGoto, CmdIf, CmdElif, CmdEndIf, CmdCase,
		CmdExpr, CmdWhile, CmdBreak:
		return true
	}
	return false
}

// ExprOp is an expression opcode.
type ExprOp uint8

const (
	ExprEqual          ExprOp = 0
	ExprNotEqual       ExprOp = 1
	ExprLess           ExprOp = 2
	ExprLessEqual      ExprOp = 3
	ExprGreater        ExprOp = 4
	ExprGreaterEqual   ExprOp = 5
	ExprNot            ExprOp = 6
	ExprAdd            ExprOp = 7
	ExprSubtract       ExprOp = 8
	ExprMultiply       ExprOp = 9
	ExprDivide         ExprOp = 10
	ExprModulo         ExprOp = 11
	ExprBitAnd         ExprOp = 12
	ExprBitOr          ExprOp = 13
	ExprBitXor         ExprOp = 14
	ExprAddAssign      ExprOp = 15
	ExprSubtractAssign ExprOp = 16
	ExprMultiplyAssign ExprOp = 17
	ExprDivideAssign   ExprOp = 18
	ExprModuloAssign   ExprOp = 19
	ExprBitAndAssign   ExprOp = 20
	ExprBitOrAssign    ExprOp = 21
	ExprBitXorAssign   ExprOp = 22
	ExprImm16          ExprOp = 23
	ExprImm32          ExprOp = 24
	ExprAddressOf      ExprOp = 25
	ExprStack          ExprOp = 26
	ExprParentStack    ExprOp = 27
	ExprFlag           ExprOp = 28
	ExprVariable       ExprOp = 29
	ExprResult1        ExprOp = 30
	ExprResult2        ExprOp = 31
	ExprPad            ExprOp = 32
	// Imm8 does not exist in the original opcode set; it completes the
	// immediate family so byte-width operands can round-trip.
	ExprImm8        ExprOp = 33
	ExprBattery     ExprOp = 100
	ExprMoney       ExprOp = 101
	ExprItem        ExprOp = 102
	ExprAtc         ExprOp = 103
	ExprRank        ExprOp = 104
	ExprExp         ExprOp = 105
	ExprLevel       ExprOp = 106
	ExprHold        ExprOp = 107
	ExprMap         ExprOp = 108
	ExprActorName   ExprOp = 109
	ExprItemName    ExprOp = 110
	ExprTime        ExprOp = 111
	ExprCurrentSuit ExprOp = 112
	ExprScrap       ExprOp = 113
	ExprCurrentAtc  ExprOp = 114
	ExprUse         ExprOp = 115
	ExprHit         ExprOp = 116
	ExprStickerName ExprOp = 117
	ExprObj         ExprOp = 200
	ExprRandom      ExprOp = 201
	ExprSin         ExprOp = 202
	ExprCos         ExprOp = 203
	ExprArrayElem   ExprOp = 204
)

// IsAssign reports whether the opcode is a compound-assignment operator. These
// are only usable as the sole operand of the set command.
func (op ExprOp) IsAssign() bool {
	return op >= ExprAddAssign && op <= ExprBitXorAssign
}

// IsImmediate reports whether the opcode introduces an immediate value.
func (op ExprOp) IsImmediate() bool {
	return op == ExprImm8 || op == ExprImm16 || op == ExprImm32
}

// TypeOp is an atom value: a fixed integer the engine compares for equality to
// select a subcommand. Written as @name in source.
type TypeOp int32

const (
	TypeTime      TypeOp = 200
	TypeUnk201    TypeOp = 201
	TypeWipe      TypeOp = 202
	TypeUnk203    TypeOp = 203
	TypeAnim      TypeOp = 204
	TypeDir       TypeOp = 205
	TypeMove      TypeOp = 206
	TypePos       TypeOp = 207
	TypeObj       TypeOp = 208
	TypeReset     TypeOp = 209
	TypeUnk210    TypeOp = 210
	TypeUnk211    TypeOp = 211
	TypePosX      TypeOp = 212
	TypePosY      TypeOp = 213
	TypePosZ      TypeOp = 214
	TypeBoneX     TypeOp = 215
	TypeBoneY     TypeOp = 216
	TypeBoneZ     TypeOp = 217
	TypeDirTo     TypeOp = 218
	TypeColor     TypeOp = 219
	TypeLead      TypeOp = 220
	TypeSfx       TypeOp = 221
	TypeModulate  TypeOp = 222
	TypeBlend     TypeOp = 223
	TypeReal      TypeOp = 224
	TypeCam       TypeOp = 225
	TypeHud       TypeOp = 226
	TypeUnk227    TypeOp = 227
	TypeDistance  TypeOp = 228
	TypeUnk229    TypeOp = 229
	TypeUnk230    TypeOp = 230
	TypeUnk231    TypeOp = 231
	TypeUnk232    TypeOp = 232
	TypeRead      TypeOp = 233
	TypeZBlur     TypeOp = 234
	TypeUnk235    TypeOp = 235
	TypeUnk236    TypeOp = 236
	TypeUnk237    TypeOp = 237
	TypeUnk238    TypeOp = 238
	TypeLetterbox TypeOp = 239
	TypeUnk240    TypeOp = 240
	TypeShake     TypeOp = 241
	TypeMono      TypeOp = 242
	TypeUnk243    TypeOp = 243
	TypeScale     TypeOp = 244
	TypeCue       TypeOp = 245
	TypeUnk246    TypeOp = 246
	TypeUnk247    TypeOp = 247
	TypeUnk248    TypeOp = 248
	TypeUnk249    TypeOp = 249
	TypeUnk250    TypeOp = 250
	TypeUnk251    TypeOp = 251
	TypeUnk252    TypeOp = 252
)

// MsgOp is a message stream opcode. Byte values above MsgOpcodeMax, plus bell,
// backspace, and tab, are literal characters.
type MsgOp uint8

const (
	MsgEnd       MsgOp = 0
	MsgSpeed     MsgOp = 1
	MsgWait      MsgOp = 2
	MsgAnim      MsgOp = 3
	MsgSfx       MsgOp = 4
	MsgVoice     MsgOp = 5
	MsgDefault   MsgOp = 6
	MsgNewline   MsgOp = 10
	MsgNewlineVt MsgOp = 11
	MsgFormat    MsgOp = 12
	MsgSize      MsgOp = 13
	MsgColor     MsgOp = 14
	MsgRgba      MsgOp = 15
	MsgProp      MsgOp = 16
	MsgIcon      MsgOp = 17
	MsgShake     MsgOp = 18
	MsgCenter    MsgOp = 19
	MsgRotate    MsgOp = 20
	MsgScale     MsgOp = 21
	MsgNumInput  MsgOp = 22
	MsgQuestion  MsgOp = 23
	MsgStay      MsgOp = 24
)

// MsgOpcodeMax is the highest byte value interpreted as a message opcode.
const MsgOpcodeMax = 24

// IsMsgChar reports whether byte b is a literal character rather than a
// message opcode.
func IsMsgChar(b byte) bool {
	return b > MsgOpcodeMax || b == 0x07 || b == 0x08 || b == '\t'
}

// DirOp is an assembler directive. Directives have no opcode values; they
// exist only in source text.
type DirOp uint8

const (
	DirInvalid DirOp = iota
	DirGlobals
	DirStage
	DirByte
	DirWord
	DirDword
	DirLib
	DirPrologue
	DirStartup
	DirDead
	DirPose
	DirTimeCycle
	DirTimeUp
	DirInteract
)

var cmdNames = map[CmdOp]string{
	CmdAbort: "abort", CmdReturn: "return", CmdGoto: "goto", CmdSet: "set",
	CmdIf: "if", CmdElif: "elif", CmdEndIf: "endif", CmdCase: "case",
	CmdExpr: "expr", CmdWhile: "while", CmdBreak: "break", CmdRun: "run",
	CmdLib: "lib", CmdPushBp: "pushbp", CmdPopBp: "popbp", CmdSetSp: "setsp",
	CmdAnim: "anim", CmdAnim1: "anim1", CmdAnim2: "anim2", CmdAttach: "attach",
	CmdBorn: "born", CmdCall: "call", CmdCamera: "camera", CmdCheck: "check",
	CmdColor: "color", CmdDetach: "detach", CmdDir: "dir", CmdMDir: "mdir",
	CmdDisp: "disp", CmdKill: "kill", CmdLight: "light", CmdMenu: "menu",
	CmdMove: "move", CmdMoveTo: "moveto", CmdMsg: "msg", CmdPos: "pos",
	CmdPrintF: "printf", CmdPtcl: "ptcl", CmdRead: "read", CmdScale: "scale",
	CmdMScale: "mscale", CmdScrn: "scrn", CmdSelect: "select", CmdSfx: "sfx",
	CmdTimer: "timer", CmdWait: "wait", CmdWarp: "warp", CmdWin: "win",
	CmdMovie: "movie",
}

var exprNames = map[ExprOp]string{
	ExprEqual: "eq", ExprNotEqual: "ne", ExprLess: "lt", ExprLessEqual: "le",
	ExprGreater: "gt", ExprGreaterEqual: "ge", ExprNot: "not", ExprAdd: "add",
	ExprSubtract: "sub", ExprMultiply: "mul", ExprDivide: "div",
	ExprModulo: "mod", ExprBitAnd: "and", ExprBitOr: "or", ExprBitXor: "xor",
	ExprAddAssign: "adda", ExprSubtractAssign: "suba",
	ExprMultiplyAssign: "mula", ExprDivideAssign: "diva",
	ExprModuloAssign: "moda", ExprBitAndAssign: "anda",
	ExprBitOrAssign: "ora", ExprBitXorAssign: "xora",
	ExprImm8: "i8", ExprImm16: "i16", ExprImm32: "i32",
	ExprAddressOf: "addr", ExprStack: "sp", ExprParentStack: "bp",
	ExprFlag: "flag", ExprVariable: "var", ExprResult1: "result",
	ExprResult2: "result2", ExprPad: "pad", ExprBattery: "battery",
	ExprMoney: "money", ExprItem: "item", ExprAtc: "atc", ExprRank: "rank",
	ExprExp: "exp", ExprLevel: "level", ExprHold: "hold", ExprMap: "map",
	ExprActorName: "actor_name", ExprItemName: "item_name", ExprTime: "time",
	ExprCurrentSuit: "cur_suit", ExprScrap: "scrap", ExprCurrentAtc: "cur_atc",
	ExprUse: "use", ExprHit: "hit", ExprStickerName: "sticker_name",
	ExprObj: "obj", ExprRandom: "rand", ExprSin: "sin", ExprCos: "cos",
	ExprArrayElem: "array",
}

var typeNames = map[TypeOp]string{
	TypeTime: "time", TypeUnk201: "unk201", TypeWipe: "wipe",
	TypeUnk203: "unk203", TypeAnim: "anim", TypeDir: "dir", TypeMove: "move",
	TypePos: "pos", TypeObj: "obj", TypeReset: "reset", TypeUnk210: "unk210",
	TypeUnk211: "unk211", TypePosX: "pos_x", TypePosY: "pos_y",
	TypePosZ: "pos_z", TypeBoneX: "bone_x", TypeBoneY: "bone_y",
	TypeBoneZ: "bone_z", TypeDirTo: "dir_to", TypeColor: "color",
	TypeLead: "lead", TypeSfx: "sfx", TypeModulate: "modulate",
	TypeBlend: "blend", TypeReal: "real", TypeCam: "cam", TypeHud: "hud",
	TypeUnk227: "unk227", TypeDistance: "distance", TypeUnk229: "unk229",
	TypeUnk230: "unk230", TypeUnk231: "unk231", TypeUnk232: "unk232",
	TypeRead: "read", TypeZBlur: "zblur", TypeUnk235: "unk235",
	TypeUnk236: "unk236", TypeUnk237: "unk237", TypeUnk238: "unk238",
	TypeLetterbox: "letterbox", TypeUnk240: "unk240", TypeShake: "shake",
	TypeMono: "mono", TypeUnk243: "unk243", TypeScale: "scale",
	TypeCue: "cue", TypeUnk246: "unk246", TypeUnk247: "unk247",
	TypeUnk248: "unk248", TypeUnk249: "unk249", TypeUnk250: "unk250",
	TypeUnk251: "unk251", TypeUnk252: "unk252",
}

var msgNames = map[MsgOp]string{
	MsgSpeed: "speed", MsgWait: "wait", MsgAnim: "anim", MsgSfx: "sfx",
	MsgVoice: "voice", MsgDefault: "def", MsgFormat: "format",
	MsgSize: "size", MsgColor: "color", MsgRgba: "rgba", MsgProp: "prop",
	MsgIcon: "icon", MsgShake: "shake", MsgCenter: "center",
	MsgRotate: "rotate", MsgScale: "scale", MsgNumInput: "input",
	MsgQuestion: "ask", MsgStay: "stay",
}

var dirNames = map[DirOp]string{
	DirGlobals: "globals", DirStage: "stage", DirByte: "db", DirWord: "dw",
	DirDword: "dd", DirLib: "lib", DirPrologue: "prologue",
	DirStartup: "startup", DirDead: "dead", DirPose: "pose",
	DirTimeCycle: "time_cycle", DirTimeUp: "time_up", DirInteract: "interact",
}

var (
	cmdsByName  = make(map[string]CmdOp, len(cmdNames))
	exprsByName = make(map[string]ExprOp, len(exprNames))
	typesByName = make(map[string]TypeOp, len(typeNames))
	msgsByName  = make(map[string]MsgOp, len(msgNames))
	dirsByName  = make(map[string]DirOp, len(dirNames))
)

func init() {
	for op, name := range cmdNames {
		cmdsByName[name] = op
	}
	for op, name := range exprNames {
		exprsByName[name] = op
	}
	for op, name := range typeNames {
		typesByName[name] = op
	}
	for op, name := range msgNames {
		msgsByName[name] = op
	}
	for op, name := range dirNames {
		dirsByName[name] = op
	}
}

// Name returns the command's source name, or "" if it has none.
func (op CmdOp) Name() string { return cmdNames[op] }

// Name returns the operator's source name, or "" if it has none.
func (op ExprOp) Name() string { return exprNames[op] }

// Name returns the atom's source name (without the @ prefix), or "".
func (op TypeOp) Name() string { return typeNames[op] }

// Name returns the message command's source name, or "".
func (op MsgOp) Name() string { return msgNames[op] }

// Name returns the directive's source name (without the leading dot), or "".
func (op DirOp) Name() string { return dirNames[op] }

// CmdOpByName looks up a command opcode by its source name.
func CmdOpByName(name string) (CmdOp, bool) {
	op, ok := cmdsByName[name]
	return op, ok
}

// ExprOpByName looks up an expression opcode by its source name.
func ExprOpByName(name string) (ExprOp, bool) {
	op, ok := exprsByName[name]
	return op, ok
}

// TypeOpByName looks up an atom by its source name (without the @ prefix).
func TypeOpByName(name string) (TypeOp, bool) {
	op, ok := typesByName[name]
	return op, ok
}

// MsgOpByName looks up a message command by its source name.
func MsgOpByName(name string) (MsgOp, bool) {
	op, ok := msgsByName[name]
	return op, ok
}

// DirOpByName looks up a directive by its source name (without the dot).
func DirOpByName(name string) (DirOp, bool) {
	op, ok := dirsByName[name]
	return op, ok
}

// ValidCmdOp reports whether byte b is a recognized command opcode.
func ValidCmdOp(b byte) bool {
	_, ok := cmdNames[CmdOp(b)]
	return ok
}

// ValidExprOp reports whether byte b is a recognized expression opcode.
func ValidExprOp(b byte) bool {
	_, ok := exprNames[ExprOp(b)]
	return ok
}

// ValidTypeOp reports whether v is a recognized atom value.
func ValidTypeOp(v int32) bool {
	_, ok := typeNames[TypeOp(v)]
	return ok
}
