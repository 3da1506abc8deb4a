package object

import (
	"github.com/simplymiply/miply/translate"
)

var f = translate.From

type ErrBadWord struct {
	Addr int    // Word address within the stream.
	Line int    // Line number within the stream.
	Text string // Offending text.
	Err  error
}

func (err ErrBadWord) Error() string {
	return f("word %d line %d '%v' %v", err.Addr, err.Line, err.Text, err.Err)
}

func (err ErrBadWord) Unwrap() error {
	return err.Err
}
