// Package opcode decodes 16-bit CHIP-8 instruction words.
//
// Every CHIP-8 instruction is 2 bytes, stored big endian. The word is split
// into four nibbles that are used positionally as instruction class, register
// index X, register index Y or a literal value depending on the instruction:
//
//	n1 n2 n3 n4
//	 |  X  Y  N
//	 |  +-NN--+ (8-bit immediate, n3 n4)
//	 +-NNN----+ (12-bit address, n2 n3 n4)
package opcode

import (
	"errors"
	"fmt"
)

// Size is the size of an encoded instruction in bytes.
const Size = 2

// ErrUnknown is returned for instruction words that match no known instruction.
var ErrUnknown = errors.New("unknown opcode")

// Opcode is a raw 16-bit CHIP-8 instruction word.
type Opcode uint16

// FromBytes forms an opcode from its big endian encoding.
func FromBytes(hi, lo byte) Opcode {
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// Nibbles returns the four 4-bit fields of the opcode, most significant first.
func (o Opcode) Nibbles() (n1, n2, n3, n4 byte) {
	return o.N1(), o.X(), o.Y(), o.N()
}

// N1 returns the instruction class nibble.
func (o Opcode) N1() byte {
	return byte(o>>12) & 0xF
}

// X returns the second nibble, used as register index X.
func (o Opcode) X() byte {
	return byte(o>>8) & 0xF
}

// Y returns the third nibble, used as register index Y.
func (o Opcode) Y() byte {
	return byte(o>>4) & 0xF
}

// N returns the lowest nibble.
func (o Opcode) N() byte {
	return byte(o) & 0xF
}

// NN returns the low byte.
func (o Opcode) NN() byte {
	return byte(o)
}

// NNN returns the low 12 bits.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

// Parse classifies the opcode like Decode but returns ErrUnknown for words
// that match no instruction form.
func Parse(o Opcode) (Kind, error) {
	kind := Decode(o)
	if kind == Unknown {
		return Unknown, fmt.Errorf("%w: $%04X", ErrUnknown, uint16(o))
	}
	return kind, nil
}
