package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = chip8.ErrStackOverflow
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = chip8.ErrStackUnderflow
	// ErrOutOfBounds is returned for memory accesses outside of the address space.
	ErrOutOfBounds = memory.ErrOutOfBounds
	// ErrProgramTooLarge is returned when loading a program that does not fit into memory.
	ErrProgramTooLarge = memory.ErrProgramTooLarge
)

// CycleError describes a failed Step.
type CycleError struct {
	PC     uint16        // address of the failing instruction
	Opcode opcode.Opcode // instruction word, zero if the fetch failed
	Fetch  bool          // the instruction word could not be read
	Err    error
}

func (e *CycleError) Error() string {
	if e.Fetch {
		return fmt.Sprintf("fetching instruction at $%04X: %v", e.PC, e.Err)
	}
	return fmt.Sprintf("executing '%s' at $%04X: %v", opcode.Mnemonic(e.Opcode), e.PC, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
