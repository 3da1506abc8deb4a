package isa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Op is a SimplyMiply opcode, the top six bits of an instruction word.
type Op uint8

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_CLR  = Op(0)  // clr
	OP_CMB  = Op(1)  // cmb
	OP_MNS  = Op(2)  // mns
	OP_MLT  = Op(3)  // mlt
	OP_DVD  = Op(4)  // dvd
	OP_CMBI = Op(5)  // cmbi
	OP_LDWD = Op(6)  // ldwd
	OP_SRWD = Op(7)  // srwd
	OP_JMP  = Op(8)  // jmp
	OP_PINT = Op(9)  // pint
	OP_PSTR = Op(10) // pstr
	OP_MNSI = Op(11) // mnsi
	OP_MLTI = Op(12) // mlti
	OP_DVDI = Op(13) // dvdi
	OP_FOR  = Op(14) // for
	OP_SQRT = Op(15) // sqrt
	OP_MDLO = Op(16) // mdlo
	OP_SQR  = Op(17) // sqr
	OP_IFE  = Op(18) // ife
	OP_IFNE = Op(19) // ifne
	OP_LDAD = Op(20) // ldad
	OP_LDIM = Op(21) // ldim
	OP_END  = Op(63) // end
)

// Format describes the operand layout of an instruction word.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_NONE       = Format(0)  // none
	FORMAT_REG3       = Format(1)  // reg3
	FORMAT_REGIMMREG  = Format(2)  // regimmreg
	FORMAT_LOAD       = Format(3)  // load
	FORMAT_STORE      = Format(4)  // store
	FORMAT_TARGET     = Format(5)  // target
	FORMAT_REG        = Format(6)  // reg
	FORMAT_MEM        = Format(7)  // mem
	FORMAT_REGTARGET  = Format(8)  // regtarget
	FORMAT_REG2       = Format(9)  // reg2
	FORMAT_REG2TARGET = Format(10) // reg2target
	FORMAT_TARGETREG  = Format(11) // targetreg
	FORMAT_IMMREG     = Format(12) // immreg
)

// opFormat maps each opcode to its word layout.
//
//	none       clr                   op(6) zero(26); end is all ones
//	reg3       cmb mns mlt dvd mdlo  op rs(5) rt(5) rd(5) zero(11)
//	regimmreg  cmbi mnsi mlti dvdi   op rs(5) imm(15) rd(5) zero(1)
//	load       ldwd                  op rs(5) rt(5) off(16)
//	store      srwd                  op rs(5) rt(5) off(16)
//	target     jmp                   op addr(26)
//	reg        pint                  op rs(5) zero(21)
//	mem        pstr                  op off(21) rs(5)
//	regtarget  for                   op rs(5) addr(21)
//	reg2       sqrt sqr              op rs(5) rd(5) zero(16)
//	reg2target ife ifne              op rs(5) rt(5) addr(16)
//	targetreg  ldad                  op addr(21) rd(5)
//	immreg     ldim                  op imm(21) rd(5)
var opFormat = map[Op]Format{
	OP_CLR:  FORMAT_NONE,
	OP_CMB:  FORMAT_REG3,
	OP_MNS:  FORMAT_REG3,
	OP_MLT:  FORMAT_REG3,
	OP_DVD:  FORMAT_REG3,
	OP_CMBI: FORMAT_REGIMMREG,
	OP_LDWD: FORMAT_LOAD,
	OP_SRWD: FORMAT_STORE,
	OP_JMP:  FORMAT_TARGET,
	OP_PINT: FORMAT_REG,
	OP_PSTR: FORMAT_MEM,
	OP_MNSI: FORMAT_REGIMMREG,
	OP_MLTI: FORMAT_REGIMMREG,
	OP_DVDI: FORMAT_REGIMMREG,
	OP_FOR:  FORMAT_REGTARGET,
	OP_SQRT: FORMAT_REG2,
	OP_MDLO: FORMAT_REG3,
	OP_SQR:  FORMAT_REG2,
	OP_IFE:  FORMAT_REG2TARGET,
	OP_IFNE: FORMAT_REG2TARGET,
	OP_LDAD: FORMAT_TARGETREG,
	OP_LDIM: FORMAT_IMMREG,
	OP_END:  FORMAT_NONE,
}

// mnemonicMap maps listing mnemonics to opcodes.
var mnemonicMap = map[string]Op{
	"clr":  OP_CLR,
	"cmb":  OP_CMB,
	"mns":  OP_MNS,
	"mlt":  OP_MLT,
	"dvd":  OP_DVD,
	"cmbi": OP_CMBI,
	"ldwd": OP_LDWD,
	"srwd": OP_SRWD,
	"jmp":  OP_JMP,
	"pint": OP_PINT,
	"pstr": OP_PSTR,
	"mnsi": OP_MNSI,
	"mlti": OP_MLTI,
	"dvdi": OP_DVDI,
	"for":  OP_FOR,
	"sqrt": OP_SQRT,
	"mdlo": OP_MDLO,
	"sqr":  OP_SQR,
	"ife":  OP_IFE,
	"ifne": OP_IFNE,
	"ldad": OP_LDAD,
	"ldim": OP_LDIM,
	"end":  OP_END,
}

// OpByName looks up an opcode by mnemonic. Mnemonics are case-insensitive.
func OpByName(name string) (op Op, ok bool) {
	op, ok = mnemonicMap[strings.ToLower(name)]
	return
}

// Format returns the operand layout of the opcode.
func (op Op) Format() Format {
	format, ok := opFormat[op]
	if !ok {
		return FORMAT_NONE
	}
	return format
}

// Valid reports whether the opcode is part of the instruction set.
func (op Op) Valid() bool {
	_, ok := opFormat[op]
	return ok
}

// Targets reports whether the opcode takes a code address operand.
func (op Op) Targets() bool {
	switch op.Format() {
	case FORMAT_TARGET, FORMAT_REGTARGET, FORMAT_REG2TARGET, FORMAT_TARGETREG:
		return true
	}
	return false
}

// REG_COUNT is the number of general-purpose registers.
const REG_COUNT = 32

// Data addresses assigned to compiled variables. The compiler places
// variables at DATA_BASE, DATA_BASE+DATA_STEP, and so on.
const (
	DATA_BASE = 5000
	DATA_STEP = 4
)

// Reg is a register index, written %r0 through %r31 in listings.
type Reg uint8

// String returns the listing form of the register.
func (r Reg) String() string {
	return fmt.Sprintf("%%r%d", r)
}

// ParseReg parses a register token such as "%r5". Register names are
// case-sensitive and take no leading zeros.
func ParseReg(s string) (r Reg, err error) {
	if !strings.HasPrefix(s, "%r") {
		err = ErrRegisterInvalid(s)
		return
	}
	digits := s[2:]
	value, perr := strconv.Atoi(digits)
	if perr != nil || digits != strconv.Itoa(value) || value < 0 || value >= REG_COUNT {
		err = ErrRegisterInvalid(s)
		return
	}
	r = Reg(value)
	return
}

// LabelRE matches a label definition: a name alone on its line,
// terminated by a colon.
var LabelRE = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*):$`)

// nameRE matches a symbolic target operand.
var nameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
