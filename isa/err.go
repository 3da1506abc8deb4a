package isa

import (
	"errors"

	"github.com/simplymiply/miply/translate"
)

var f = translate.From

var (
	ErrEmptyInstruction = errors.New(f("empty instruction"))
)

type ErrUnknownOp string

func (err ErrUnknownOp) Error() string {
	return f("'%v' is not an instruction", string(err))
}

type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrOperandCount struct {
	Op   Op
	Want int
	Got  int
}

func (err ErrOperandCount) Error() string {
	return f("%v takes %d operands, got %d", err.Op, err.Want, err.Got)
}

type ErrImmediateInvalid string

func (err ErrImmediateInvalid) Error() string {
	return f("'%v' is not an immediate", string(err))
}

type ErrImmediateRange struct {
	Value int64
	Bits  int
}

func (err ErrImmediateRange) Error() string {
	return f("immediate %d does not fit in %d bits", err.Value, err.Bits)
}

type ErrAddressRange struct {
	Addr int
	Bits int
}

func (err ErrAddressRange) Error() string {
	return f("address %d does not fit in %d bits", err.Addr, err.Bits)
}

type ErrMemOperand string

func (err ErrMemOperand) Error() string {
	return f("'%v' is not a memory operand", string(err))
}

type ErrTargetInvalid string

func (err ErrTargetInvalid) Error() string {
	return f("'%v' is not a target", string(err))
}

type ErrTargetUnresolved string

func (err ErrTargetUnresolved) Error() string {
	return f("target %v unresolved", string(err))
}

type ErrWordLength int

func (err ErrWordLength) Error() string {
	return f("word is %d characters, need %d", int(err), WORD_BITS)
}

type ErrWordText string

func (err ErrWordText) Error() string {
	return f("'%v' is not a binary word", string(err))
}

type ErrOpcodeUnknown Op

func (err ErrOpcodeUnknown) Error() string {
	return f("bad opcode %d", uint8(err))
}

func (err ErrOpcodeUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrOpcodeUnknown)
	return
}

type ErrWordPadding Word

func (err ErrWordPadding) Error() string {
	return f("%v carries stray payload bits", Word(err))
}
