// Copyright 2025, The SimplyMiply Project

// Package asm assembles SimplyMiply listings into instruction words.
package asm

import (
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/simplymiply/miply/internal"
	"github.com/simplymiply/miply/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"DATA_BASE": fmt.Sprintf("%v", isa.DATA_BASE),
	"DATA_STEP": fmt.Sprintf("%v", isa.DATA_STEP),
}

var parenRE = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a two pass assembler for the SimplyMiply instruction
// set. The first pass expands equates and collects labels, the second
// resolves targets and encodes words.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, verr := strconv.ParseInt(str, 10, 64)
		if verr != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// Reset clears collected labels and reloads the system equates and
// any predefines. Parse calls it before each run; callers using
// Expand directly call it themselves.
func (asm *Assembler) Reset() {
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Equate = maps.Clone(sysEquate)
	for equ, value := range asm.predefine {
		asm.Equate[equ] = value
	}
}

// Expand applies $() evaluations and equate substitutions to one
// line, and consumes .equ directives. Equates replace whole operand
// tokens only. An empty result means the line was consumed.
func (asm *Assembler) Expand(line string, lineno int) (text string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRE.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	// .equ CONST VALUE
	if fields[0] == ".equ" {
		if len(fields) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[fields[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[fields[1]] = fields[2]
		return
	}

	if equ, ok := asm.Equate[fields[0]]; ok {
		fields[0] = equ
	}

	text = fields[0]
	rest := strings.Join(fields[1:], " ")
	if rest == "" {
		return
	}

	operands := strings.Split(rest, ",")
	for n := range operands {
		operands[n] = strings.TrimSpace(operands[n])
		if equ, ok := asm.Equate[operands[n]]; ok {
			operands[n] = equ
		}
	}
	text += " " + strings.Join(operands, ", ")
	return
}

// Parse assembles an input listing into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Reset()

	var lines []Line

	scanner := internal.NewScanner(input)
	for scanner.Scan() {
		lineno = scanner.LineNo()
		line = scanner.Text()

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var text string
		text, err = asm.Expand(line, lineno)
		if err != nil {
			return
		}
		if text == "" {
			continue
		}

		if m := isa.LabelRE.FindStringSubmatch(text); m != nil {
			_, ok := asm.Label[m[1]]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[m[1]] = len(lines)
			continue
		}

		lines = append(lines, Line{No: lineno, Addr: len(lines), Text: text})
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// Second pass: parse, link labels, encode.
	for n := range lines {
		entry := &lines[n]
		lineno = entry.No
		line = entry.Text

		var inst isa.Instruction
		inst, err = isa.Parse(entry.Text)
		if err != nil {
			return
		}

		if inst.Sym != "" {
			addr, ok := asm.Label[inst.Sym]
			if !ok {
				err = ErrLabelMissing(inst.Sym)
				return
			}
			inst.Addr = addr
		}

		entry.Inst = inst
		entry.Word, err = inst.Encode()
		if err != nil {
			return
		}
	}

	prog = &Program{
		Lines:  slices.Clone(lines),
		Labels: maps.Clone(asm.Label),
	}

	return
}
