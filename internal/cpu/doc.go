// Package cpu implements the CHIP-8 interpreter core.
//
// # Execution Model
//
// The CPU owns the complete interpreter state: registers, memory, display and
// a read-only view of the keypad. Step performs exactly one fetch, decode and
// execute cycle:
//  1. Read the 2 byte instruction word at PC
//  2. Advance PC by 2, jumps and skips modify PC afterwards
//  3. Decode the word into an instruction form
//  4. Dispatch to the instruction handler
//
// The CPU makes no assumption about wall-clock time. Timer decrement cadence,
// instruction rate, rendering and input polling belong to the host run loop,
// which calls Step and TickTimers at whatever frequency it chooses.
//
// # Waiting For A Key
//
// The FX0A instruction never blocks. If no key is pressed, PC is rewound to
// the instruction and Waiting reports true. The next Step polls the keypad
// again, so the host only needs to keep calling Step while updating the keypad.
//
// # Errors
//
// Step returns a *CycleError wrapping one of ErrOutOfBounds, ErrStackOverflow
// or ErrStackUnderflow. PC is left at the failing instruction. Unknown
// instruction words are not errors: they are logged once per word and skipped.
//
// # Quirks
//
// Historic interpreters disagree on a few instruction details. Quirks selects
// the behavior, DefaultQuirks matches the original COSMAC VIP interpreter.
package cpu
