package isa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(strings.Repeat("0", 32), Word(0).String())
	assert.Equal(strings.Repeat("1", 32), (^Word(0)).String())
	assert.Equal("01010100000000000000000101000001", Word(0x54000141).String())
	assert.Equal("00000000000000000000000000000001", Word(1).String())
	assert.Equal("10000000000000000000000000000000", Word(1<<31).String())
}

func TestParseWord(t *testing.T) {
	assert := assert.New(t)

	table := []Word{
		0,
		^Word(0),
		0x54000141,
		0x48220007,
		1,
		1 << 31,
	}

	for _, w := range table {
		parsed, err := ParseWord(w.String())
		assert.NoError(err)
		assert.Equal(w, parsed)
	}

	_, err := ParseWord(strings.Repeat("0", 31))
	assert.True(errors.As(err, new(ErrWordLength)))

	_, err = ParseWord(strings.Repeat("0", 33))
	assert.True(errors.As(err, new(ErrWordLength)))

	_, err = ParseWord("0101010000000000000000010100000x")
	assert.True(errors.As(err, new(ErrWordText)))

	_, err = ParseWord("0101010000000000000000010100 001")
	assert.True(errors.As(err, new(ErrWordText)))
}

func TestWordFields(t *testing.T) {
	assert := assert.New(t)

	w := Word(0x48220007)
	assert.Equal(uint32(18), w.field(26, 6))
	assert.Equal(uint32(1), w.field(21, 5))
	assert.Equal(uint32(2), w.field(16, 5))
	assert.Equal(uint32(7), w.field(0, 16))

	// -4 as a 16 bit two's complement field
	w = Word(0x1C47FFFC)
	assert.Equal(int64(-4), w.signedField(0, 16))
	assert.Equal(int64(7), int64(w.field(16, 5)))

	// -1 as a 21 bit field shifted up 5
	w = Word(0x2BFFFFE3)
	assert.Equal(int64(-1), w.signedField(5, 21))
	assert.Equal(uint32(3), w.field(0, 5))
}

func FuzzWordDecode(f *testing.F) {
	seeds := []uint32{
		0x00000000,
		0xFFFFFFFF,
		0x54000141,
		0x04221800,
		0x48220007,
		0x1460190A,
		0x2000000B,
		0x18260000,
		0x1C47FFFC,
		0x2BFFFFE3,
		0x50027107,
		0x3880000A,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, u uint32) {
		inst, err := Decode(Word(u))
		if err != nil {
			return
		}

		w, err := inst.Encode()
		if err != nil {
			t.Fatalf("decoded %v does not re-encode: %v", Word(u), err)
		}

		again, err := Decode(w)
		if err != nil {
			t.Fatalf("canonical %v does not decode: %v", w, err)
		}
		if again != inst {
			t.Fatalf("decode %v gave %+v, want %+v", w, again, inst)
		}

		parsed, err := Parse(inst.Render())
		if err != nil {
			t.Fatalf("'%v' does not parse: %v", inst.Render(), err)
		}
		if parsed != inst {
			t.Fatalf("parse '%v' gave %+v, want %+v", inst.Render(), parsed, inst)
		}
	})
}

func TestWordDecodePadding(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode(Word(1))
	assert.True(errors.As(err, new(ErrWordPadding)))

	// end with a hole is not the end word
	_, err = Decode(Word(0xFC000000))
	assert.True(errors.As(err, new(ErrWordPadding)))

	_, err = Decode(Word(22) << 26)
	assert.True(errors.Is(err, ErrOpcodeUnknown(0)))
}
