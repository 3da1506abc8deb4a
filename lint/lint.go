// Package lint checks SimplyMiply listings without stopping at the
// first fault. Errors mark lines the assembler would reject; warnings
// mark constructions the assembler accepts but that usually indicate
// a mistake.
package lint

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/simplymiply/miply/asm"
	"github.com/simplymiply/miply/cfg"
	"github.com/simplymiply/miply/internal"
	"github.com/simplymiply/miply/isa"
)

//go:generate go tool stringer -linecomment -type=Severity

// Severity classifies a diagnostic.
type Severity int

const (
	SEVERITY_WARNING Severity = iota // warning
	SEVERITY_ERROR                   // error
)

// Diagnostic is one finding, tied to a 1-based input line.
type Diagnostic struct {
	LineNo   int
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v: %v", d.LineNo, d.Severity, d.Message)
}

// Result holds every diagnostic found in one listing, ordered by line
// number.
type Result struct {
	Diagnostics []Diagnostic
}

func (res *Result) report(no int, severity Severity, message string) {
	res.Diagnostics = append(res.Diagnostics, Diagnostic{
		LineNo:   no,
		Severity: severity,
		Message:  message,
	})
}

// HasErrors reports whether any diagnostic is an error.
func (res *Result) HasErrors() bool {
	for _, d := range res.Diagnostics {
		if d.Severity == SEVERITY_ERROR {
			return true
		}
	}
	return false
}

type checkLine struct {
	no   int
	addr int
	text string
	inst isa.Instruction
}

type checkLabel struct {
	no   int
	addr int
	used bool
}

// Check reads one listing and reports everything it can find. Flow
// checks need a sound program, so they run only when no error was
// found first.
func Check(input io.Reader) (res *Result, err error) {
	res = &Result{}

	a := new(asm.Assembler)
	a.Reset()

	var lines []checkLine
	labels := map[string]*checkLabel{}

	scanner := internal.NewScanner(input)
	for scanner.Scan() {
		no := scanner.LineNo()

		text, eerr := a.Expand(scanner.Text(), no)
		if eerr != nil {
			res.report(no, SEVERITY_ERROR, eerr.Error())
			continue
		}
		if text == "" {
			continue
		}

		if m := isa.LabelRE.FindStringSubmatch(text); m != nil {
			if _, ok := labels[m[1]]; ok {
				res.report(no, SEVERITY_ERROR, fmt.Sprintf("label %v duplicated", m[1]))
				continue
			}
			labels[m[1]] = &checkLabel{no: no, addr: len(lines)}
			continue
		}

		lines = append(lines, checkLine{no: no, addr: len(lines), text: text})
	}
	if err = scanner.Err(); err != nil {
		res = nil
		return
	}

	for n := range lines {
		entry := &lines[n]

		inst, perr := isa.Parse(entry.text)
		if perr != nil {
			res.report(entry.no, SEVERITY_ERROR, perr.Error())
			continue
		}

		if inst.Sym != "" {
			bound, ok := labels[inst.Sym]
			if !ok {
				res.report(entry.no, SEVERITY_ERROR, fmt.Sprintf("label %v missing", inst.Sym))
				continue
			}
			bound.used = true
			inst.Addr = bound.addr
		}

		if _, eerr := inst.Encode(); eerr != nil {
			res.report(entry.no, SEVERITY_ERROR, eerr.Error())
			continue
		}

		entry.inst = inst

		if inst.Op.Targets() && inst.Op != isa.OP_LDAD && inst.Addr >= len(lines) {
			res.report(entry.no, SEVERITY_WARNING,
				fmt.Sprintf("target %d is outside the program", inst.Addr))
		}
	}

	for name, bound := range labels {
		// A label on the entry address names the program, not a
		// branch target.
		if bound.used || bound.addr == 0 {
			continue
		}
		res.report(bound.no, SEVERITY_WARNING, fmt.Sprintf("label %v unused", name))
	}

	if len(lines) > 0 && !res.HasErrors() {
		if err = flow(res, lines); err != nil {
			res = nil
			return
		}
	}

	slices.SortFunc(res.Diagnostics, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.LineNo, b.LineNo); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})

	return
}

// flow runs the reachability checks over an error-free program.
func flow(res *Result, lines []checkLine) (err error) {
	nodes := make([]cfg.Node, len(lines))
	for n, entry := range lines {
		nodes[n] = cfg.Node{Addr: entry.addr, Inst: entry.inst, Text: entry.text}
	}

	g, err := cfg.Build(nodes)
	if err != nil {
		return
	}
	seen, err := cfg.Reachable(g, 0)
	if err != nil {
		return
	}

	for _, entry := range lines {
		if !seen[entry.addr] {
			res.report(entry.no, SEVERITY_WARNING, "unreachable instruction")
		}
	}

	last := lines[len(lines)-1]
	if seen[last.addr] && last.inst.Op != isa.OP_END && last.inst.Op != isa.OP_JMP {
		res.report(last.no, SEVERITY_WARNING, "control can run off the end of the program")
	}

	return
}
