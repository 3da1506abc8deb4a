package isa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Instruction is a single parsed or decoded instruction. Which fields
// are meaningful depends on the opcode format; see opFormat in isa.go.
//
// Addr holds a resolved code target. Parsing a symbolic target leaves
// Addr at -1 and records the name in Sym; the assembler resolves it
// before encoding. Decoding fills Addr and leaves Sym empty.
type Instruction struct {
	Op   Op
	RS   Reg
	RT   Reg
	RD   Reg
	Imm  int64  // immediate or memory offset
	Addr int    // code target, -1 while unresolved
	Sym  string // symbolic target from the listing
}

var (
	memRE     = regexp.MustCompile(`^(-?\d+)\((%r\d+)\)$`)
	memZeroRE = regexp.MustCompile(`^\((%r\d+)\)$`)
)

// Parse parses one cleaned instruction line: a mnemonic followed by
// comma-separated operands. Comment stripping and label handling are
// the caller's concern.
func Parse(text string) (inst Instruction, err error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		err = ErrEmptyInstruction
		return
	}

	op, ok := OpByName(fields[0])
	if !ok {
		err = ErrUnknownOp(fields[0])
		return
	}
	inst.Op = op

	operands := splitOperands(strings.Join(fields[1:], " "))

	count := operandCount(op.Format())
	if len(operands) != count {
		err = ErrOperandCount{Op: op, Want: count, Got: len(operands)}
		return
	}

	switch op.Format() {
	case FORMAT_NONE:

	case FORMAT_REG3:
		if inst.RS, err = ParseReg(operands[0]); err != nil {
			return
		}
		if inst.RT, err = ParseReg(operands[1]); err != nil {
			return
		}
		inst.RD, err = ParseReg(operands[2])

	case FORMAT_REGIMMREG:
		if inst.RS, err = ParseReg(operands[0]); err != nil {
			return
		}
		if inst.Imm, err = parseImm(operands[1]); err != nil {
			return
		}
		inst.RD, err = ParseReg(operands[2])

	case FORMAT_LOAD:
		if inst.Imm, inst.RS, err = parseMem(operands[0]); err != nil {
			return
		}
		inst.RT, err = ParseReg(operands[1])

	case FORMAT_STORE:
		if inst.RT, err = ParseReg(operands[0]); err != nil {
			return
		}
		inst.Imm, inst.RS, err = parseMem(operands[1])

	case FORMAT_TARGET:
		inst.Addr, inst.Sym, err = parseTarget(operands[0])

	case FORMAT_REG:
		inst.RS, err = ParseReg(operands[0])

	case FORMAT_MEM:
		inst.Imm, inst.RS, err = parseMem(operands[0])

	case FORMAT_REGTARGET:
		if inst.RS, err = ParseReg(operands[0]); err != nil {
			return
		}
		inst.Addr, inst.Sym, err = parseTarget(operands[1])

	case FORMAT_REG2:
		if inst.RS, err = ParseReg(operands[0]); err != nil {
			return
		}
		inst.RD, err = ParseReg(operands[1])

	case FORMAT_REG2TARGET:
		if inst.RS, err = ParseReg(operands[0]); err != nil {
			return
		}
		if inst.RT, err = ParseReg(operands[1]); err != nil {
			return
		}
		inst.Addr, inst.Sym, err = parseTarget(operands[2])

	case FORMAT_TARGETREG:
		if inst.Addr, inst.Sym, err = parseTarget(operands[0]); err != nil {
			return
		}
		inst.RD, err = ParseReg(operands[1])

	case FORMAT_IMMREG:
		if inst.Imm, err = parseImm(operands[0]); err != nil {
			return
		}
		inst.RD, err = ParseReg(operands[1])
	}

	return
}

// operandCount returns the operand count of a format.
func operandCount(format Format) int {
	switch format {
	case FORMAT_NONE:
		return 0
	case FORMAT_TARGET, FORMAT_REG, FORMAT_MEM:
		return 1
	case FORMAT_REG3, FORMAT_REGIMMREG, FORMAT_REG2TARGET:
		return 3
	}
	return 2
}

// splitOperands splits a comma-separated operand list into trimmed
// tokens.
func splitOperands(rest string) (operands []string) {
	if strings.TrimSpace(rest) == "" {
		return
	}
	operands = strings.Split(rest, ",")
	for n := range operands {
		operands[n] = strings.TrimSpace(operands[n])
	}
	return
}

// parseImm parses a decimal immediate operand.
func parseImm(s string) (value int64, err error) {
	value, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		err = ErrImmediateInvalid(s)
	}
	return
}

// parseMem parses a memory operand, offset(%rN) or (%rN).
func parseMem(s string) (off int64, base Reg, err error) {
	if m := memRE.FindStringSubmatch(s); m != nil {
		off, err = strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			err = ErrMemOperand(s)
			return
		}
		base, err = ParseReg(m[2])
		return
	}
	if m := memZeroRE.FindStringSubmatch(s); m != nil {
		base, err = ParseReg(m[1])
		return
	}
	err = ErrMemOperand(s)
	return
}

// parseTarget parses a code target operand: a label name, or an
// absolute decimal address as the disassembler emits for targets
// outside the program.
func parseTarget(s string) (addr int, sym string, err error) {
	if value, perr := strconv.Atoi(s); perr == nil {
		if value < 0 {
			err = ErrTargetInvalid(s)
			return
		}
		addr = value
		return
	}
	if !nameRE.MatchString(s) {
		err = ErrTargetInvalid(s)
		return
	}
	addr = -1
	sym = s
	return
}

// target returns the listing form of the instruction's code target.
func (inst Instruction) target() string {
	if inst.Sym != "" {
		return inst.Sym
	}
	return strconv.Itoa(inst.Addr)
}

// Render produces the canonical listing text of the instruction.
func (inst Instruction) Render() string {
	switch inst.Op.Format() {
	case FORMAT_REG3:
		return fmt.Sprintf("%v %v, %v, %v", inst.Op, inst.RS, inst.RT, inst.RD)
	case FORMAT_REGIMMREG:
		return fmt.Sprintf("%v %v, %d, %v", inst.Op, inst.RS, inst.Imm, inst.RD)
	case FORMAT_LOAD:
		return fmt.Sprintf("%v %d(%v), %v", inst.Op, inst.Imm, inst.RS, inst.RT)
	case FORMAT_STORE:
		return fmt.Sprintf("%v %v, %d(%v)", inst.Op, inst.RT, inst.Imm, inst.RS)
	case FORMAT_TARGET:
		return fmt.Sprintf("%v %v", inst.Op, inst.target())
	case FORMAT_REG:
		return fmt.Sprintf("%v %v", inst.Op, inst.RS)
	case FORMAT_MEM:
		return fmt.Sprintf("%v %d(%v)", inst.Op, inst.Imm, inst.RS)
	case FORMAT_REGTARGET:
		return fmt.Sprintf("%v %v, %v", inst.Op, inst.RS, inst.target())
	case FORMAT_REG2:
		return fmt.Sprintf("%v %v, %v", inst.Op, inst.RS, inst.RD)
	case FORMAT_REG2TARGET:
		return fmt.Sprintf("%v %v, %v, %v", inst.Op, inst.RS, inst.RT, inst.target())
	case FORMAT_TARGETREG:
		return fmt.Sprintf("%v %v, %v", inst.Op, inst.target(), inst.RD)
	case FORMAT_IMMREG:
		return fmt.Sprintf("%v %d, %v", inst.Op, inst.Imm, inst.RD)
	}
	return inst.Op.String()
}

// opBits places the opcode in the top six bits.
func opBits(op Op) Word {
	return Word(op) << 26
}

// immBits range-checks and encodes an immediate. Values from
// -2^(bits-1) through 2^bits-1 are accepted; negative values encode as
// two's complement.
func immBits(value int64, bits uint) (enc Word, err error) {
	min := -(int64(1) << (bits - 1))
	max := (int64(1) << bits) - 1
	if value < min || value > max {
		err = ErrImmediateRange{Value: value, Bits: int(bits)}
		return
	}
	enc = Word(uint64(value) & ((1 << bits) - 1))
	return
}

// addrBits range-checks and encodes an absolute code address.
func addrBits(addr int, bits uint) (enc Word, err error) {
	if addr > (1<<bits)-1 {
		err = ErrAddressRange{Addr: addr, Bits: int(bits)}
		return
	}
	enc = Word(addr)
	return
}

// Encode packs the instruction into a word, checking every field
// range. A symbolic target must be resolved first.
func (inst Instruction) Encode() (w Word, err error) {
	if !inst.Op.Valid() {
		err = ErrOpcodeUnknown(inst.Op)
		return
	}
	if inst.Op.Targets() && inst.Addr < 0 {
		err = ErrTargetUnresolved(inst.Sym)
		return
	}
	for _, r := range [...]Reg{inst.RS, inst.RT, inst.RD} {
		if r >= REG_COUNT {
			err = ErrRegisterInvalid(r.String())
			return
		}
	}

	var imm, addr Word

	switch inst.Op.Format() {
	case FORMAT_NONE:
		if inst.Op == OP_END {
			w = ^Word(0)
			return
		}
		w = opBits(inst.Op)
		return

	case FORMAT_REG3:
		w = opBits(inst.Op) | Word(inst.RS)<<21 | Word(inst.RT)<<16 | Word(inst.RD)<<11

	case FORMAT_REGIMMREG:
		if imm, err = immBits(inst.Imm, 15); err != nil {
			return
		}
		w = opBits(inst.Op) | Word(inst.RS)<<21 | imm<<6 | Word(inst.RD)<<1

	case FORMAT_LOAD, FORMAT_STORE:
		if imm, err = immBits(inst.Imm, 16); err != nil {
			return
		}
		w = opBits(inst.Op) | Word(inst.RS)<<21 | Word(inst.RT)<<16 | imm

	case FORMAT_TARGET:
		if addr, err = addrBits(inst.Addr, 26); err != nil {
			return
		}
		w = opBits(inst.Op) | addr

	case FORMAT_REG:
		w = opBits(inst.Op) | Word(inst.RS)<<21

	case FORMAT_MEM:
		if imm, err = immBits(inst.Imm, 21); err != nil {
			return
		}
		w = opBits(inst.Op) | imm<<5 | Word(inst.RS)

	case FORMAT_REGTARGET:
		if addr, err = addrBits(inst.Addr, 21); err != nil {
			return
		}
		w = opBits(inst.Op) | Word(inst.RS)<<21 | addr

	case FORMAT_REG2:
		w = opBits(inst.Op) | Word(inst.RS)<<21 | Word(inst.RD)<<16

	case FORMAT_REG2TARGET:
		if addr, err = addrBits(inst.Addr, 16); err != nil {
			return
		}
		w = opBits(inst.Op) | Word(inst.RS)<<21 | Word(inst.RT)<<16 | addr

	case FORMAT_TARGETREG:
		if addr, err = addrBits(inst.Addr, 21); err != nil {
			return
		}
		w = opBits(inst.Op) | addr<<5 | Word(inst.RD)

	case FORMAT_IMMREG:
		if imm, err = immBits(inst.Imm, 21); err != nil {
			return
		}
		w = opBits(inst.Op) | imm<<5 | Word(inst.RD)
	}

	return
}

// Decode unpacks an instruction word. The all-ones and all-zeros words
// are end and clr; any other word carrying a none-format opcode has
// stray payload bits and is rejected.
func Decode(w Word) (inst Instruction, err error) {
	if w == ^Word(0) {
		inst.Op = OP_END
		return
	}
	if w == 0 {
		inst.Op = OP_CLR
		return
	}

	op := Op(w >> 26)
	if !op.Valid() {
		err = ErrOpcodeUnknown(op)
		return
	}
	inst.Op = op

	switch op.Format() {
	case FORMAT_NONE:
		err = ErrWordPadding(w)

	case FORMAT_REG3:
		inst.RS = Reg(w.field(21, 5))
		inst.RT = Reg(w.field(16, 5))
		inst.RD = Reg(w.field(11, 5))

	case FORMAT_REGIMMREG:
		inst.RS = Reg(w.field(21, 5))
		inst.Imm = int64(w.field(6, 15))
		inst.RD = Reg(w.field(1, 5))

	case FORMAT_LOAD, FORMAT_STORE:
		inst.RS = Reg(w.field(21, 5))
		inst.RT = Reg(w.field(16, 5))
		inst.Imm = w.signedField(0, 16)

	case FORMAT_TARGET:
		inst.Addr = int(w.field(0, 26))

	case FORMAT_REG:
		inst.RS = Reg(w.field(21, 5))

	case FORMAT_MEM:
		inst.Imm = w.signedField(5, 21)
		inst.RS = Reg(w.field(0, 5))

	case FORMAT_REGTARGET:
		inst.RS = Reg(w.field(21, 5))
		inst.Addr = int(w.field(0, 21))

	case FORMAT_REG2:
		inst.RS = Reg(w.field(21, 5))
		inst.RD = Reg(w.field(16, 5))

	case FORMAT_REG2TARGET:
		inst.RS = Reg(w.field(21, 5))
		inst.RT = Reg(w.field(16, 5))
		inst.Addr = int(w.field(0, 16))

	case FORMAT_TARGETREG:
		inst.Addr = int(w.field(5, 21))
		inst.RD = Reg(w.field(0, 5))

	case FORMAT_IMMREG:
		inst.Imm = w.signedField(5, 21)
		inst.RD = Reg(w.field(0, 5))
	}

	return
}
