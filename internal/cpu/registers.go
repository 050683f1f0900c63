package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/memory"
)

// StackSize is the maximum subroutine nesting depth.
const StackSize = 16

// FlagRegister is the index of VF, used as carry, borrow and collision flag.
const FlagRegister = 0xF

// addressMask limits the index register to the 12-bit address space.
const addressMask = memory.MaxAddress

// Registers is the CHIP-8 register file.
type Registers struct {
	V  [16]byte // general purpose registers V0-VF
	I  uint16   // index register, masked to 12 bits by all instructions
	PC uint16   // program counter
	SP uint8    // stack pointer, number of used stack entries

	Stack [StackSize]uint16 // return addresses

	DelayTimer byte
	SoundTimer byte
}

func (r *Registers) reset() {
	*r = Registers{
		PC: memory.ProgramStart,
	}
}

// setI sets the index register, masked to 12 bits.
func (r *Registers) setI(value uint32) {
	r.I = uint16(value & addressMask)
}

func (r *Registers) setFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}

func (r *Registers) push(address uint16) error {
	if int(r.SP) >= StackSize {
		return fmt.Errorf("%w: call depth exceeds %d", ErrStackOverflow, StackSize)
	}
	r.Stack[r.SP] = address
	r.SP++
	return nil
}

func (r *Registers) pop() (uint16, error) {
	if r.SP == 0 {
		return 0, fmt.Errorf("%w: return without call", ErrStackUnderflow)
	}
	r.SP--
	return r.Stack[r.SP], nil
}
