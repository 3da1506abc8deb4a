package compiler

import (
	"errors"

	"github.com/simplymiply/miply/translate"
)

var f = translate.From

var (
	ErrRegisterSpill        = errors.New(f("out of registers"))
	ErrLoopMultiple         = errors.New(f("only one for loop is supported"))
	ErrConditionOutsideLoop = errors.New(f("condition outside a loop"))
)

type ErrUndefinedVar string

func (err ErrUndefinedVar) Error() string {
	return f("variable %v undefined", string(err))
}

type ErrVariableDuplicate string

func (err ErrVariableDuplicate) Error() string {
	return f("variable %v redeclared", string(err))
}

type ErrLoopBounds string

func (err ErrLoopBounds) Error() string {
	return f("'%v' has no loop bounds", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
