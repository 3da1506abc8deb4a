// Package isa describes the SimplyMiply instruction set and its 32-bit
// word encoding.
//
// SimplyMiply has 32 general-purpose registers (%r0 through %r31) and a
// fixed 32-bit instruction word with a 6-bit opcode. Instruction words
// travel between tools as binary text: 32 '0' and '1' characters per
// line, most significant bit first.
//
// Listing syntax is line oriented. A '#' starts a comment that runs to
// the end of the line. A label is a line of its own, a name followed by
// a colon, and names the address of the next instruction. Operands are
// separated by commas; memory operands take the form offset(%rN), with
// a signed decimal offset that may be omitted when zero.
//
// The package provides the opcode and format tables, parsing and
// rendering of single instructions, and encoding and decoding of
// instruction words. Label resolution and program structure belong to
// the asm package.
package isa
