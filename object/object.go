// Package object reads and writes SimplyMiply object streams. An
// object stream holds one instruction word per line, each word
// written as 32 '0' and '1' characters, most significant bit first.
package object

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/simplymiply/miply/isa"
)

// Writer emits an object stream.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (ow *Writer) WriteWord(word isa.Word) (err error) {
	_, err = ow.w.WriteString(word.String())
	if err != nil {
		return
	}
	err = ow.w.WriteByte('\n')
	return
}

func (ow *Writer) Flush() error {
	return ow.w.Flush()
}

// Write writes a whole word sequence as an object stream.
func Write(w io.Writer, words iter.Seq2[int, isa.Word]) (err error) {
	ow := NewWriter(w)
	for _, word := range words {
		err = ow.WriteWord(word)
		if err != nil {
			return
		}
	}

	return ow.Flush()
}

// Reader reads an object stream word by word. Blank lines carry no
// address; any other line is one word. A malformed line is reported
// as an *ErrBadWord, and reading may continue past it.
type Reader struct {
	scanner *bufio.Scanner
	addr    int
	lineno  int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next word and its address. The error is io.EOF at
// the end of the stream.
func (or *Reader) Next() (addr int, word isa.Word, err error) {
	for or.scanner.Scan() {
		or.lineno++

		text := strings.TrimSpace(or.scanner.Text())
		if text == "" {
			continue
		}

		addr = or.addr
		or.addr++

		word, err = isa.ParseWord(text)
		if err != nil {
			err = &ErrBadWord{Addr: addr, Line: or.lineno, Text: text, Err: err}
		}
		return
	}

	err = or.scanner.Err()
	if err == nil {
		err = io.EOF
	}

	return
}
