package isa

// Word is a single 32-bit instruction word.
type Word uint32

// WORD_BITS is the width of an instruction word.
const WORD_BITS = 32

// String renders the word as 32 '0' and '1' characters, most
// significant bit first. This is the object file form of a word.
func (w Word) String() string {
	var text [WORD_BITS]byte
	for n := range text {
		text[n] = '0' + byte((w>>(WORD_BITS-1-n))&1)
	}
	return string(text[:])
}

// ParseWord parses the binary text form of an instruction word.
func ParseWord(text string) (w Word, err error) {
	if len(text) != WORD_BITS {
		err = ErrWordLength(len(text))
		return
	}
	for n := 0; n < len(text); n++ {
		c := text[n]
		if c != '0' && c != '1' {
			err = ErrWordText(text)
			return
		}
		w = w<<1 | Word(c-'0')
	}
	return
}

// field extracts the count-bit unsigned field whose least significant
// bit is at position lo.
func (w Word) field(lo, count uint) uint32 {
	return (uint32(w) >> lo) & ((1 << count) - 1)
}

// signedField extracts a count-bit two's complement field.
func (w Word) signedField(lo, count uint) int64 {
	value := int64(w.field(lo, count))
	if value&(1<<(count-1)) != 0 {
		value -= 1 << count
	}
	return value
}
