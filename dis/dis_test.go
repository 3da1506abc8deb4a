package dis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplymiply/miply/asm"
	"github.com/simplymiply/miply/isa"
	"github.com/simplymiply/miply/object"
)

func stream(t *testing.T, words []isa.Word) string {
	seq := func(yield func(int, isa.Word) bool) {
		for n, w := range words {
			if !yield(n, w) {
				return
			}
		}
	}

	var out strings.Builder
	if err := object.Write(&out, seq); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestDisassembler(t *testing.T) {
	assert := assert.New(t)

	words := []isa.Word{
		0x54000141, // ldim 10, %r1
		0x540000A2, // ldim 5, %r2
		0x04221800, // cmb %r1, %r2, %r3
		0x24600000, // pint %r3
		0x48220007, // ife %r1, %r2, 7
		0x08222000, // mns %r1, %r2, %r4
		0x24800000, // pint %r4
		0x1460190A, // cmbi %r3, 100, %r5
		0x24A00000, // pint %r5
		0x2000000B, // jmp 11
		0x18260000, // ldwd 0(%r1), %r6
		0x00000000, // clr
		0xFFFFFFFF, // end
	}

	dis := &Disassembler{}
	listing, err := dis.Read(strings.NewReader(stream(t, words)))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(len(words), len(listing.Entries))
	assert.Equal(map[int]string{7: "L7", 11: "L11"}, listing.Labels)

	var out strings.Builder
	assert.NoError(listing.Render(&out))

	expected := strings.Join([]string{
		"    ldim 10, %r1",
		"    ldim 5, %r2",
		"    cmb %r1, %r2, %r3",
		"    pint %r3",
		"    ife %r1, %r2, L7",
		"    mns %r1, %r2, %r4",
		"    pint %r4",
		"L7:",
		"    cmbi %r3, 100, %r5",
		"    pint %r5",
		"    jmp L11",
		"    ldwd 0(%r1), %r6",
		"L11:",
		"    clr",
		"    end",
		"",
	}, "\n")
	assert.Equal(expected, out.String())
}

func TestDisassemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start:",
		"    ldim 3, %r1",
		"    ldim 0, %r2",
		"loop:",
		"    cmbi %r2, 1, %r2",
		"    pint %r2",
		"    ifne %r2, %r1, loop",
		"    srwd %r2, -4(%r3)",
		"    ldad start, %r4",
		"    end",
	}

	assembler := &asm.Assembler{}
	prog, err := assembler.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	var objText strings.Builder
	assert.NoError(object.Write(&objText, prog.Words()))

	dis := &Disassembler{}
	listing, err := dis.Read(strings.NewReader(objText.String()))
	assert.NoError(err)

	var rendered strings.Builder
	assert.NoError(listing.Render(&rendered))

	again, err := assembler.Parse(strings.NewReader(rendered.String()))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(len(prog.Lines), len(again.Lines))
	for n := range prog.Lines {
		assert.Equal(prog.Lines[n].Word, again.Lines[n].Word, prog.Lines[n].Text)
	}
}

func TestDisassemblerBadWords(t *testing.T) {
	assert := assert.New(t)

	text := "00000000000000000000000000000000\n" +
		"0110\n" +
		"10111000000000000000000000000000\n" + // opcode 46
		"11111111111111111111111111111111\n"

	dis := &Disassembler{}
	listing, err := dis.Read(strings.NewReader(text))
	assert.NoError(err)

	assert.Equal(4, len(listing.Entries))
	assert.NoError(listing.Entries[0].Err)
	assert.Error(listing.Entries[1].Err)
	assert.Error(listing.Entries[2].Err)
	assert.NoError(listing.Entries[3].Err)

	var out strings.Builder
	assert.NoError(listing.Render(&out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(4, len(lines))
	assert.Equal("    clr", lines[0])
	assert.Contains(lines[1], "# error:")
	assert.Contains(lines[1], "'0110'")
	assert.Contains(lines[2], "# error:")
	assert.Contains(lines[2], "bad opcode 46")
	assert.Equal("    end", lines[3])
}

func TestDisassemblerOutsideTarget(t *testing.T) {
	assert := assert.New(t)

	words := []isa.Word{
		0x20000005, // jmp 5, past the end
		0x50027107, // ldad 5000, %r7
		0xFFFFFFFF, // end
	}

	dis := &Disassembler{}
	listing, err := dis.Read(strings.NewReader(stream(t, words)))
	assert.NoError(err)

	assert.Empty(listing.Labels)

	var out strings.Builder
	assert.NoError(listing.Render(&out))

	expected := strings.Join([]string{
		"    jmp 5 # target outside program",
		"    ldad 5000, %r7 # target outside program",
		"    end",
		"",
	}, "\n")
	assert.Equal(expected, out.String())
}
