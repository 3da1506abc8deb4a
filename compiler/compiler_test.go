package compiler

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplymiply/miply/asm"
)

var fizzbuzz = strings.Join([]string{
	"int main() {",
	"    for(int i = 1; i < 16; i++) {",
	"        if (i % 3 == 0) {",
	"            printf(\"Fizz\\n\");",
	"        }",
	"        if (i % 5 == 0) {",
	"            printf(\"Buzz\\n\");",
	"        }",
	"        else {",
	"            printf(\"%d\\n\", i);",
	"        }",
	"    }",
	"}",
}, "\n")

func TestCompilerFizzbuzz(t *testing.T) {
	assert := assert.New(t)

	cc := &Compiler{}

	var out strings.Builder
	err := cc.Compile(strings.NewReader(fizzbuzz), &out)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := strings.Join([]string{
		"# data:",
		"#   Fizz: \"Fizz\\n\"",
		"#   Buzz: \"Buzz\\n\"",
		"# instructions:",
		"Fizz:",
		"    ldad Fizz, %r0",
		"    pstr 0(%r0)",
		"    jmp Loop",
		"Buzz:",
		"    ldad Buzz, %r1",
		"    pstr 0(%r1)",
		"    jmp Loop",
		"    cmbi %r2, 1, %r2",
		"    cmbi %r3, 15, %r3",
		"    cmbi %r4, 1, %r4",
		"    for %r4, Loop",
		"Loop:",
		"    cmbi %r2, 1, %r2",
		"    ife %r2, %r3, End",
		"    cmbi %r5, 3, %r5",
		"    mdlo %r2, %r5, %r6",
		"    ldim 0, %r7",
		"    ife %r6, %r7, Fizz",
		"    cmbi %r8, 5, %r8",
		"    mdlo %r2, %r8, %r9",
		"    ldim 0, %r10",
		"    ife %r9, %r10, Buzz",
		"    pint %r2",
		"End:",
		"    end",
		"",
	}, "\n")
	assert.Equal(expected, out.String())
}

func TestCompilerOutputAssembles(t *testing.T) {
	assert := assert.New(t)

	cc := &Compiler{}

	var listing strings.Builder
	err := cc.Compile(strings.NewReader(fizzbuzz), &listing)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assembler := &asm.Assembler{}
	prog, err := assembler.Parse(strings.NewReader(listing.String()))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(22, len(prog.Lines))
	assert.Equal(map[string]int{
		"Fizz": 0,
		"Buzz": 3,
		"Loop": 10,
		"End":  21,
	}, prog.Labels)
}

func TestCompilerVariables(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		"int main() {",
		"    int x;",
		"    int y;",
		"    x = 5;",
		"    y = x;",
		"    for(int i = 0; i < 3; i++) {",
		"        if (i % 2 == 1) {",
		"            printf(\"Odd\\n\");",
		"        }",
		"        else {",
		"            printf(\"%d\\n\", i);",
		"        }",
		"    }",
		"}",
	}, "\n")

	cc := &Compiler{}

	var out strings.Builder
	err := cc.Compile(strings.NewReader(program), &out)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := strings.Join([]string{
		"# data:",
		"#   Odd: \"Odd\\n\"",
		"# instructions:",
		"    ldim 0, %r0",
		"    cmbi %r0, 5000, %r0",
		"    ldim 0, %r1",
		"    cmbi %r1, 5004, %r1",
		"    ldim 5, %r2",
		"    srwd %r2, 0(%r0)",
		"    ldwd 0(%r0), %r3",
		"    srwd %r3, 0(%r1)",
		"Odd:",
		"    ldad Odd, %r4",
		"    pstr 0(%r4)",
		"    jmp Loop",
		"    cmbi %r5, 1, %r5",
		"    cmbi %r6, 3, %r6",
		"    cmbi %r7, 1, %r7",
		"    for %r7, Loop",
		"Loop:",
		"    cmbi %r5, 1, %r5",
		"    ife %r5, %r6, End",
		"    cmbi %r8, 2, %r8",
		"    mdlo %r5, %r8, %r9",
		"    ldim 1, %r10",
		"    ife %r9, %r10, Odd",
		"    pint %r5",
		"End:",
		"    end",
		"",
	}, "\n")
	assert.Equal(expected, out.String())
}

func TestCompilerRepeatedString(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		"int main() {",
		"    for(int i = 0; i < 4; i++) {",
		"        if (i % 2 == 0) {",
		"            printf(\"Tick\\n\");",
		"        }",
		"        if (i % 2 == 1) {",
		"            printf(\"Tick\\n\");",
		"        }",
		"    }",
		"}",
	}, "\n")

	cc := &Compiler{}

	var out strings.Builder
	err := cc.Compile(strings.NewReader(program), &out)
	assert.NoError(err)

	// One handler serves both branches.
	assert.Equal(1, strings.Count(out.String(), "\nTick:\n"))
	assert.Equal(2, strings.Count(out.String(), ", Tick\n"))
}

func TestCompilerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		prog string
		line int
		want error
	}){
		{"int x;\nint x;\n", 2, ErrVariableDuplicate("x")},
		{"x = 5;\n", 1, ErrUndefinedVar("x")},
		{"int x;\nx = y;\n", 2, ErrUndefinedVar("y")},
		{"for(int i = 0; i < 3; i++) {\nfor(int j = 0; j < 3; j++) {\n", 2, ErrLoopMultiple},
		{"for(;;) {\n", 1, ErrLoopBounds("for(;;) {")},
		{"if (i % 3 == 0) {\n}\n", 1, ErrConditionOutsideLoop},
		{"else {\nprintf(\"%d\\n\", i);\n}\n", 1, ErrConditionOutsideLoop},
	}

	for _, entry := range table {
		cc := &Compiler{}

		var out strings.Builder
		err := cc.Compile(strings.NewReader(entry.prog), &out)
		var se *ErrSyntax
		assert.NotNil(err, entry.prog)
		if err == nil {
			continue
		}
		assert.True(errors.As(err, &se), entry.prog)
		assert.Equal(entry.line, se.LineNo, entry.prog)
		assert.Equal(entry.want, se.Err, entry.prog)
	}
}

func TestCompilerRegisterSpill(t *testing.T) {
	assert := assert.New(t)

	var program strings.Builder
	for n := 0; n < 33; n++ {
		fmt.Fprintf(&program, "int v%d;\n", n)
	}

	cc := &Compiler{}

	var out strings.Builder
	err := cc.Compile(strings.NewReader(program.String()), &out)
	assert.True(errors.Is(err, ErrRegisterSpill))

	var se *ErrSyntax
	assert.True(errors.As(err, &se))
	assert.Equal(33, se.LineNo)
}

func TestCompilerStateReset(t *testing.T) {
	assert := assert.New(t)

	cc := &Compiler{}

	var first strings.Builder
	assert.NoError(cc.Compile(strings.NewReader(fizzbuzz), &first))

	var second strings.Builder
	assert.NoError(cc.Compile(strings.NewReader(fizzbuzz), &second))

	assert.Equal(first.String(), second.String())
}
