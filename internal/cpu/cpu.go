package cpu

import (
	"math/rand/v2"
	"slices"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Options configures a new CPU.
type Options struct {
	Keypad keypad.Reader // keypad to poll, a keypad without pressed keys if nil
	Quirks Quirks
	Seed   uint64 // seed of the CXNN random source
	Trace  bool   // log every executed instruction at debug level
}

// CPU is the CHIP-8 interpreter state, exclusively owned by the goroutine
// that calls Step.
type CPU struct {
	Registers

	logger  *log.Logger
	memory  *memory.Memory
	display *display.Display
	keys    keypad.Reader
	quirks  Quirks
	random  *rand.Rand
	trace   bool

	program []byte // loaded program, reloaded on Reset
	waiting bool   // FX0A is waiting for a key press
	cycles  uint64

	unknownOpcodes set.Set[uint16] // unknown words that were already reported
}

// New returns a CPU with the font loaded and no program.
func New(logger *log.Logger, opts Options) *CPU {
	keys := opts.Keypad
	if keys == nil {
		keys = keypad.New()
	}

	c := &CPU{
		logger:         logger,
		memory:         memory.New(),
		display:        display.New(opts.Quirks.WrapSprites),
		keys:           keys,
		quirks:         opts.Quirks,
		random:         rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9E3779B97F4A7C15)),
		trace:          opts.Trace,
		unknownOpcodes: set.New[uint16](),
	}
	c.Registers.reset()
	return c
}

// LoadProgram loads the program at the program start address and resets the
// interpreter state.
func (c *CPU) LoadProgram(program []byte) error {
	if err := c.memory.LoadProgram(program); err != nil {
		return err
	}
	c.program = slices.Clone(program)
	c.Reset()
	return nil
}

// Reset restores the power-on state and reloads the last loaded program.
func (c *CPU) Reset() {
	c.Registers.reset()
	c.memory.Reset()
	// the program already fitted when it was loaded
	_ = c.memory.LoadProgram(c.program)
	c.display.Clear()
	c.waiting = false
	c.cycles = 0
}

// Step executes a single instruction.
func (c *CPU) Step() error {
	pc := c.PC
	word, err := c.memory.ReadWord(pc)
	if err != nil {
		return &CycleError{PC: pc, Fetch: true, Err: err}
	}

	op := opcode.Opcode(word)
	kind := opcode.Decode(op)
	if c.trace {
		c.logger.Debug("Executing instruction",
			log.Hex("address", pc),
			log.Hex("opcode", word),
			log.String("instruction", opcode.Mnemonic(op)))
	}

	c.PC += opcode.Size
	if err := handlers[kind](c, op); err != nil {
		c.PC = pc
		return &CycleError{PC: pc, Opcode: op, Err: err}
	}

	if !c.waiting {
		c.cycles++
	}
	return nil
}

// TickTimers decrements the delay and sound timers if they are not zero.
// The host calls it at its timer cadence, classically 60 Hz.
func (c *CPU) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// Waiting returns whether the last executed instruction is waiting for a key press.
func (c *CPU) Waiting() bool {
	return c.waiting
}

// Cycles returns the number of successfully executed instructions since the
// last reset. Polls of a key wait that found no pressed key are not counted.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Memory returns the address space.
func (c *CPU) Memory() *memory.Memory {
	return c.memory
}

// Display returns the frame buffer.
func (c *CPU) Display() *display.Display {
	return c.display
}

// SoundActive returns whether the sound timer is running. The host decides
// how to present it.
func (c *CPU) SoundActive() bool {
	return c.SoundTimer > 0
}
