// Package memory implements the 4KB CHIP-8 address space.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Built-in hex digit font (16 glyphs, 5 bytes each)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: Program and work RAM (3584 bytes)
package memory

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// CHIP-8 memory layout constants.
const (
	// Size is the total size of the address space in bytes.
	Size = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = Size - 1

	// ProgramStart is the memory address where CHIP-8 programs are loaded and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits between ProgramStart and MaxAddress.
	MaxProgramSize = Size - ProgramStart

	// FontStart is the address of the first font glyph.
	FontStart = 0x000
)

var (
	// ErrOutOfBounds is returned for any access outside of 0x000-0xFFF.
	ErrOutOfBounds = chip8.ErrMemoryOutOfBounds
	// ErrProgramTooLarge is returned when a program does not fit into program space.
	ErrProgramTooLarge = errors.New("program too large")
)

// Memory is the CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New returns a memory with the font table loaded.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset clears the whole address space and reloads the font table.
func (m *Memory) Reset() {
	clear(m.data[:])
	copy(m.data[FontStart:], Font[:])
}

// LoadProgram copies the program verbatim to ProgramStart. The area after the
// program is cleared so that a previously loaded longer program does not leak.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	n := copy(m.data[ProgramStart:], program)
	clear(m.data[ProgramStart+n:])
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: read at $%04X", ErrOutOfBounds, address)
	}
	return m.data[address], nil
}

// ReadWord returns the big endian 16-bit value at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	b, err := m.Slice(address, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("%w: write at $%04X", ErrOutOfBounds, address)
	}
	m.data[address] = value
	return nil
}

// Slice returns a view of length bytes starting at address. The returned slice
// aliases the memory, writes to it are visible to the interpreter.
func (m *Memory) Slice(address uint16, length int) ([]byte, error) {
	end := int(address) + length
	if length < 0 || end > Size {
		return nil, fmt.Errorf("%w: range $%04X-$%04X", ErrOutOfBounds, address, end-1)
	}
	return m.data[address:end], nil
}

// Dump writes a hex dump of the address range [from, to] with 16 bytes per row.
func (m *Memory) Dump(w io.Writer, from, to uint16) error {
	if to > MaxAddress || from > to {
		return fmt.Errorf("%w: dump range $%04X-$%04X", ErrOutOfBounds, from, to)
	}

	start := from &^ 0xF
	for row := int(start); row <= int(to); row += 16 {
		if _, err := fmt.Fprintf(w, "%04X:", row); err != nil {
			return fmt.Errorf("writing dump row: %w", err)
		}
		for address := row; address < row+16; address++ {
			if address < int(from) || address > int(to) {
				if _, err := io.WriteString(w, "   "); err != nil {
					return fmt.Errorf("writing dump padding: %w", err)
				}
				continue
			}
			if _, err := fmt.Fprintf(w, " %02X", m.data[address]); err != nil {
				return fmt.Errorf("writing dump byte: %w", err)
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing dump row end: %w", err)
		}
	}
	return nil
}
