package internal

import (
	"bufio"
	"io"
	"strings"
)

// Scanner walks an assembly listing line by line, dropping comments
// and blank lines while tracking the original line number.
type Scanner struct {
	scanner *bufio.Scanner
	no      int
	text    string
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// Scan advances to the next line with content on it. Comments run
// from '#' to the end of the line.
func (sc *Scanner) Scan() bool {
	for sc.scanner.Scan() {
		sc.no++

		text, _, _ := strings.Cut(sc.scanner.Text(), "#")
		sc.text = strings.TrimSpace(text)
		if sc.text != "" {
			return true
		}
	}

	return false
}

// LineNo returns the 1-based listing line number of the current line.
func (sc *Scanner) LineNo() int {
	return sc.no
}

// Text returns the current line, trimmed, with any comment removed.
func (sc *Scanner) Text() string {
	return sc.text
}

func (sc *Scanner) Err() error {
	return sc.scanner.Err()
}
