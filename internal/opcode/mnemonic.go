package opcode

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// fallbackNames is used for forms that the instruction table does not list.
var fallbackNames = map[Kind]string{
	Sys: "sys",
}

// Instruction looks up the instruction definition matching the opcode in the
// CHIP-8 opcode table. It returns nil for unknown words.
func Instruction(o Opcode) *chip8.Instruction {
	w := uint16(o)
	for _, op := range chip8.Opcodes[int(o.N1())] {
		if op.Info.Mask&w == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Mnemonic renders the opcode as assembly text, for example "ld V1, $05".
// Unknown words are rendered as a data word.
func Mnemonic(o Opcode) string {
	kind := Decode(o)
	if kind == Unknown {
		return fmt.Sprintf(".word $%04X", uint16(o))
	}

	name := fallbackNames[kind]
	if ins := Instruction(o); ins != nil {
		name = ins.Name
	}
	if name == "" {
		name = strings.ToLower(kind.String())
	}

	if params := formatParams(kind, o); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of the instruction.
func formatParams(kind Kind, o Opcode) string {
	x, y := o.X(), o.Y()

	switch kind {
	case Cls, Ret:
		return ""
	case Sys, Jp, Call:
		return fmt.Sprintf("$%03X", o.NNN())
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", x, o.NN())
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", x)
	case LdI:
		return fmt.Sprintf("I, $%03X", o.NNN())
	case JpV0:
		return fmt.Sprintf("V0, $%03X", o.NNN())
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, o.N())
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case LdVxK:
		return fmt.Sprintf("V%X, K", x)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case AddI:
		return fmt.Sprintf("I, V%X", x)
	case LdF:
		return fmt.Sprintf("F, V%X", x)
	case LdB:
		return fmt.Sprintf("B, V%X", x)
	case LdIVx:
		return fmt.Sprintf("[I], V%X", x)
	case LdVxI:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
