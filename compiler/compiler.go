// Copyright 2025, The SimplyMiply Project

// Package compiler translates a small C subset into SimplyMiply
// assembly. The subset covers int declarations, constant and variable
// assignments, one counted for loop, if blocks testing a remainder of
// the loop counter, and printf calls: string literals become labeled
// print handlers, "%d" prints the counter.
package compiler

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/simplymiply/miply/isa"
)

var (
	printfRE = regexp.MustCompile(`printf\s*\(\s*"([^"]*)"`)
	declRE   = regexp.MustCompile(`^\s*int\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*;`)
	assignRE = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*([a-zA-Z0-9_-]+)\s*;`)
	numberRE = regexp.MustCompile(`^-?\d+$`)
	forRE    = regexp.MustCompile(`\bfor\s*\(`)
	ifRE     = regexp.MustCompile(`\bif\s*\(`)
	elseRE   = regexp.MustCompile(`\belse\s*\{`)
	condRE   = regexp.MustCompile(`%\s*(-?\d+)\s*==\s*(-?\d+)`)
	intRE    = regexp.MustCompile(`-?\d+`)
)

type str struct {
	name string
	text string
}

// Compiler holds the compile state: the register allocator, the
// variable table, and the collected string literals.
type Compiler struct {
	Verbose bool // If set, verbosely logs the source lines.

	next    isa.Reg            // next free register
	addr    int                // next free data address
	vars    map[string]isa.Reg // variable name to address register
	strs    []str              // string literals, in source order
	names   map[string]string  // literal text to label
	iter    isa.Reg            // loop counter register
	end     isa.Reg            // loop bound register
	hasLoop bool

	out *bufio.Writer
}

// alloc hands out registers in order. Every temporary gets a fresh
// one; reuse happens only through the variable table.
func (cc *Compiler) alloc() (r isa.Reg, err error) {
	if cc.next >= isa.REG_COUNT {
		err = ErrRegisterSpill
		return
	}
	r = cc.next
	cc.next++
	return
}

// Compile reads C source and writes the assembly listing.
func (cc *Compiler) Compile(input io.Reader, output io.Writer) (err error) {
	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	cc.next = 0
	cc.addr = isa.DATA_BASE
	cc.vars = make(map[string]isa.Reg)
	cc.names = make(map[string]string)
	cc.strs = cc.strs[:0]
	cc.hasLoop = false

	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if cc.Verbose {
			log.Printf("%v: %v\n", len(lines)+1, scanner.Text())
		}
		lines = append(lines, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return
	}

	cc.out = bufio.NewWriter(output)

	// String literals first; their labels are branch targets.
	for n, text := range lines {
		lineno, line = n+1, text
		cc.collect(text)
	}
	cc.data()

	// Declarations and assignments, in source order.
	for n, text := range lines {
		lineno, line = n+1, text
		if err = cc.statement(text); err != nil {
			return
		}
	}

	// Print handlers for the collected strings.
	if err = cc.handlers(); err != nil {
		return
	}

	// Control flow.
	for n, text := range lines {
		lineno, line = n+1, text
		if err = cc.control(text, lines[n+1:]); err != nil {
			return
		}
	}

	fmt.Fprintf(cc.out, "End:\n")
	fmt.Fprintf(cc.out, "    end\n")

	return cc.out.Flush()
}

// collect records a string literal and invents its label.
func (cc *Compiler) collect(text string) {
	m := printfRE.FindStringSubmatch(text)
	if m == nil || strings.Contains(m[1], "%d") {
		return
	}

	if _, ok := cc.names[m[1]]; ok {
		return
	}

	name := cc.labelName(m[1])
	cc.names[m[1]] = name
	cc.strs = append(cc.strs, str{name: name, text: m[1]})
}

// labelName derives a unique label from a string literal.
func (cc *Compiler) labelName(text string) string {
	name := strings.TrimSuffix(text, `\n`)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return '_'
		}
		return r
	}, name)

	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "s_" + name
	}

	base := name
	for n := 2; cc.taken(name); n++ {
		name = fmt.Sprintf("%v_%v", base, n)
	}

	return name
}

// taken reports whether a label is already spoken for.
func (cc *Compiler) taken(name string) bool {
	if name == "Loop" || name == "End" {
		return true
	}
	for _, s := range cc.strs {
		if s.name == name {
			return true
		}
	}

	return false
}

// data writes the string table as comments. The strings live in the
// listing only through their print handlers.
func (cc *Compiler) data() {
	fmt.Fprintf(cc.out, "# data:\n")
	for _, s := range cc.strs {
		fmt.Fprintf(cc.out, "#   %v: \"%v\"\n", s.name, s.text)
	}
	fmt.Fprintf(cc.out, "# instructions:\n")
}

// statement compiles a declaration or an assignment.
func (cc *Compiler) statement(text string) (err error) {
	if m := declRE.FindStringSubmatch(text); m != nil {
		return cc.declare(m[1])
	}

	m := assignRE.FindStringSubmatch(text)
	if m == nil {
		return
	}
	if numberRE.MatchString(m[2]) {
		return cc.assignValue(m[1], m[2])
	}

	return cc.assignVariable(m[1], m[2])
}

// declare reserves a data cell for a variable and keeps its address
// in a register.
func (cc *Compiler) declare(name string) (err error) {
	if _, ok := cc.vars[name]; ok {
		err = ErrVariableDuplicate(name)
		return
	}

	r, err := cc.alloc()
	if err != nil {
		return
	}

	fmt.Fprintf(cc.out, "    ldim 0, %v\n", r)
	fmt.Fprintf(cc.out, "    cmbi %v, %v, %v\n", r, cc.addr, r)

	cc.vars[name] = r
	cc.addr += isa.DATA_STEP

	return
}

// assignValue stores a constant into a variable's data cell.
func (cc *Compiler) assignValue(name, value string) (err error) {
	dest, ok := cc.vars[name]
	if !ok {
		err = ErrUndefinedVar(name)
		return
	}

	t, err := cc.alloc()
	if err != nil {
		return
	}

	fmt.Fprintf(cc.out, "    ldim %v, %v\n", value, t)
	fmt.Fprintf(cc.out, "    srwd %v, 0(%v)\n", t, dest)

	return
}

// assignVariable copies one variable's cell into another's.
func (cc *Compiler) assignVariable(name, source string) (err error) {
	src, ok := cc.vars[source]
	if !ok {
		err = ErrUndefinedVar(source)
		return
	}
	dest, ok := cc.vars[name]
	if !ok {
		err = ErrUndefinedVar(name)
		return
	}

	t, err := cc.alloc()
	if err != nil {
		return
	}

	fmt.Fprintf(cc.out, "    ldwd 0(%v), %v\n", src, t)
	fmt.Fprintf(cc.out, "    srwd %v, 0(%v)\n", t, dest)

	return
}

// handlers writes one print handler per string literal. Each prints
// its string and rejoins the loop.
func (cc *Compiler) handlers() (err error) {
	for _, s := range cc.strs {
		var r isa.Reg
		r, err = cc.alloc()
		if err != nil {
			return
		}

		fmt.Fprintf(cc.out, "%v:\n", s.name)
		fmt.Fprintf(cc.out, "    ldad %v, %v\n", s.name, r)
		fmt.Fprintf(cc.out, "    pstr 0(%v)\n", r)
		fmt.Fprintf(cc.out, "    jmp Loop\n")
	}

	return
}

// control compiles loop, condition, and else lines.
func (cc *Compiler) control(text string, rest []string) (err error) {
	switch {
	case forRE.MatchString(text):
		err = cc.emitLoop(text)

	case ifRE.MatchString(text) && condRE.MatchString(text):
		err = cc.emitCondition(text, rest)

	case elseRE.MatchString(text):
		err = cc.emitElse(rest)
	}

	return
}

// emitLoop writes the counter setup and the loop head. The counter
// starts at one and the loop exits when it reaches the bound.
func (cc *Compiler) emitLoop(text string) (err error) {
	if cc.hasLoop {
		err = ErrLoopMultiple
		return
	}

	bounds := intRE.FindAllString(text, 2)
	if len(bounds) != 2 {
		err = ErrLoopBounds(text)
		return
	}
	lo, _ := strconv.Atoi(bounds[0])
	hi, _ := strconv.Atoi(bounds[1])
	count := hi - lo
	if count < 0 {
		count = -count
	}

	iter, err := cc.alloc()
	if err != nil {
		return
	}
	end, err := cc.alloc()
	if err != nil {
		return
	}
	ctr, err := cc.alloc()
	if err != nil {
		return
	}

	fmt.Fprintf(cc.out, "    cmbi %v, 1, %v\n", iter, iter)
	fmt.Fprintf(cc.out, "    cmbi %v, %v, %v\n", end, count, end)
	fmt.Fprintf(cc.out, "    cmbi %v, 1, %v\n", ctr, ctr)
	fmt.Fprintf(cc.out, "    for %v, Loop\n", ctr)
	fmt.Fprintf(cc.out, "Loop:\n")
	fmt.Fprintf(cc.out, "    cmbi %v, 1, %v\n", iter, iter)
	fmt.Fprintf(cc.out, "    ife %v, %v, End\n", iter, end)

	cc.iter = iter
	cc.end = end
	cc.hasLoop = true

	return
}

// emitCondition tests a remainder of the loop counter and branches
// to the print handlers named in the block.
func (cc *Compiler) emitCondition(text string, rest []string) (err error) {
	if !cc.hasLoop {
		err = ErrConditionOutsideLoop
		return
	}

	m := condRE.FindStringSubmatch(text)
	div, want := m[1], m[2]

	targets := cc.blockTargets(rest)

	base, err := cc.alloc()
	if err != nil {
		return
	}
	mod, err := cc.alloc()
	if err != nil {
		return
	}
	rem, err := cc.alloc()
	if err != nil {
		return
	}

	fmt.Fprintf(cc.out, "    cmbi %v, %v, %v\n", base, div, base)
	fmt.Fprintf(cc.out, "    mdlo %v, %v, %v\n", cc.iter, base, mod)
	fmt.Fprintf(cc.out, "    ldim %v, %v\n", want, rem)
	for _, target := range targets {
		fmt.Fprintf(cc.out, "    ife %v, %v, %v\n", mod, rem, target)
	}

	return
}

// blockTargets names the print handlers referenced by a block. The
// block runs to the first line holding a closing brace.
func (cc *Compiler) blockTargets(rest []string) (targets []string) {
	for _, text := range rest {
		if m := printfRE.FindStringSubmatch(text); m != nil {
			if name, ok := cc.names[m[1]]; ok {
				targets = append(targets, name)
			}
		}
		if strings.Contains(text, "}") {
			return
		}
	}

	return
}

// emitElse prints the loop counter for a "%d" printf in the block.
func (cc *Compiler) emitElse(rest []string) (err error) {
	if !cc.hasLoop {
		err = ErrConditionOutsideLoop
		return
	}

	for _, text := range rest {
		m := printfRE.FindStringSubmatch(text)
		if m != nil && strings.Contains(m[1], "%d") {
			fmt.Fprintf(cc.out, "    pint %v\n", cc.iter)
		}
		if strings.Contains(text, "}") {
			return
		}
	}

	return
}
