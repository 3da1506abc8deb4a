package asm

import (
	"iter"
	"slices"

	"github.com/simplymiply/miply/isa"
)

// Line is one assembled instruction and its listing provenance.
type Line struct {
	No   int             // Listing line number.
	Addr int             // Instruction address.
	Text string          // Expanded instruction text.
	Inst isa.Instruction // Parsed instruction.
	Word isa.Word        // Encoded instruction word.
}

type Program struct {
	Lines  []Line
	Labels map[string]int
}

// At returns the line at an instruction address.
func (prog *Program) At(addr int) (line *Line) {
	if addr >= 0 && addr < len(prog.Lines) {
		line = &prog.Lines[addr]
	}

	return
}

// Words iterates the encoded words in address order.
func (prog *Program) Words() iter.Seq2[int, isa.Word] {
	return func(yield func(addr int, w isa.Word) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Addr, line.Word) {
				return
			}
		}
	}
}

// LabelsAt returns the label names bound to an address, sorted.
func (prog *Program) LabelsAt(addr int) (names []string) {
	for name, at := range prog.Labels {
		if at == addr {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return
}
