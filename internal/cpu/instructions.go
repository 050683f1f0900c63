package cpu

import (
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// handler executes a decoded instruction. PC already points to the next instruction.
type handler func(c *CPU, op opcode.Opcode) error

// handlers is the dispatch table indexed by instruction form.
var handlers = [opcode.Count]handler{
	opcode.Unknown: (*CPU).unknown,
	opcode.Sys:     (*CPU).sys,
	opcode.Cls:     (*CPU).cls,
	opcode.Ret:     (*CPU).ret,
	opcode.Jp:      (*CPU).jp,
	opcode.Call:    (*CPU).call,
	opcode.SeByte:  (*CPU).seByte,
	opcode.SneByte: (*CPU).sneByte,
	opcode.SeReg:   (*CPU).seReg,
	opcode.LdByte:  (*CPU).ldByte,
	opcode.AddByte: (*CPU).addByte,
	opcode.LdReg:   (*CPU).ldReg,
	opcode.Or:      (*CPU).or,
	opcode.And:     (*CPU).and,
	opcode.Xor:     (*CPU).xor,
	opcode.AddReg:  (*CPU).addReg,
	opcode.Sub:     (*CPU).sub,
	opcode.Shr:     (*CPU).shr,
	opcode.Subn:    (*CPU).subn,
	opcode.Shl:     (*CPU).shl,
	opcode.SneReg:  (*CPU).sneReg,
	opcode.LdI:     (*CPU).ldI,
	opcode.JpV0:    (*CPU).jpV0,
	opcode.Rnd:     (*CPU).rnd,
	opcode.Drw:     (*CPU).drw,
	opcode.Skp:     (*CPU).skp,
	opcode.Sknp:    (*CPU).sknp,
	opcode.LdVxDT:  (*CPU).ldVxDT,
	opcode.LdVxK:   (*CPU).ldVxK,
	opcode.LdDTVx:  (*CPU).ldDTVx,
	opcode.LdSTVx:  (*CPU).ldSTVx,
	opcode.AddI:    (*CPU).addI,
	opcode.LdF:     (*CPU).ldF,
	opcode.LdB:     (*CPU).ldB,
	opcode.LdIVx:   (*CPU).ldIVx,
	opcode.LdVxI:   (*CPU).ldVxI,
}

// unknown skips a word that decodes to no instruction. Each distinct word is
// reported once to keep data executed as code from flooding the log.
func (c *CPU) unknown(op opcode.Opcode) error {
	word := uint16(op)
	if c.unknownOpcodes.Contains(word) {
		return nil
	}
	c.unknownOpcodes.Add(word)
	c.logger.Warn("Unknown opcode, skipping",
		log.Hex("address", c.PC-opcode.Size),
		log.Hex("opcode", word))
	return nil
}

// sys would call a machine code routine of the host computer, modern
// interpreters ignore it.
func (c *CPU) sys(op opcode.Opcode) error {
	c.logger.Debug("Ignoring machine code routine call", log.Hex("target", op.NNN()))
	return nil
}

func (c *CPU) cls(opcode.Opcode) error {
	c.display.Clear()
	return nil
}

func (c *CPU) ret(opcode.Opcode) error {
	address, err := c.pop()
	if err != nil {
		return err
	}
	c.PC = address
	return nil
}

func (c *CPU) jp(op opcode.Opcode) error {
	c.PC = op.NNN()
	return nil
}

func (c *CPU) call(op opcode.Opcode) error {
	if err := c.push(c.PC); err != nil {
		return err
	}
	c.PC = op.NNN()
	return nil
}

// skipIf skips the next instruction if the condition is true.
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.PC += opcode.Size
	}
}

func (c *CPU) seByte(op opcode.Opcode) error {
	c.skipIf(c.V[op.X()] == op.NN())
	return nil
}

func (c *CPU) sneByte(op opcode.Opcode) error {
	c.skipIf(c.V[op.X()] != op.NN())
	return nil
}

func (c *CPU) seReg(op opcode.Opcode) error {
	c.skipIf(c.V[op.X()] == c.V[op.Y()])
	return nil
}

func (c *CPU) sneReg(op opcode.Opcode) error {
	c.skipIf(c.V[op.X()] != c.V[op.Y()])
	return nil
}

func (c *CPU) ldByte(op opcode.Opcode) error {
	c.V[op.X()] = op.NN()
	return nil
}

// addByte adds without touching the carry flag.
func (c *CPU) addByte(op opcode.Opcode) error {
	c.V[op.X()] += op.NN()
	return nil
}

func (c *CPU) ldReg(op opcode.Opcode) error {
	c.V[op.X()] = c.V[op.Y()]
	return nil
}

func (c *CPU) or(op opcode.Opcode) error {
	c.V[op.X()] |= c.V[op.Y()]
	c.resetFlagQuirk()
	return nil
}

func (c *CPU) and(op opcode.Opcode) error {
	c.V[op.X()] &= c.V[op.Y()]
	c.resetFlagQuirk()
	return nil
}

func (c *CPU) xor(op opcode.Opcode) error {
	c.V[op.X()] ^= c.V[op.Y()]
	c.resetFlagQuirk()
	return nil
}

func (c *CPU) resetFlagQuirk() {
	if c.quirks.ResetVF {
		c.V[FlagRegister] = 0
	}
}

// The arithmetic instructions write the flag after the result, so VF holds
// the flag if it is used as the destination register.

func (c *CPU) addReg(op opcode.Opcode) error {
	sum := uint16(c.V[op.X()]) + uint16(c.V[op.Y()])
	c.V[op.X()] = byte(sum)
	c.setFlag(sum > 0xFF)
	return nil
}

// sub sets VF to 1 if no borrow occurs.
func (c *CPU) sub(op opcode.Opcode) error {
	vx, vy := c.V[op.X()], c.V[op.Y()]
	c.V[op.X()] = vx - vy
	c.setFlag(vx >= vy)
	return nil
}

// subn sets VF to 1 if no borrow occurs.
func (c *CPU) subn(op opcode.Opcode) error {
	vx, vy := c.V[op.X()], c.V[op.Y()]
	c.V[op.X()] = vy - vx
	c.setFlag(vy >= vx)
	return nil
}

func (c *CPU) shiftSource(op opcode.Opcode) byte {
	if c.quirks.ShiftVY {
		return c.V[op.Y()]
	}
	return c.V[op.X()]
}

// shr stores the bit shifted out in VF.
func (c *CPU) shr(op opcode.Opcode) error {
	value := c.shiftSource(op)
	c.V[op.X()] = value >> 1
	c.setFlag(value&0x01 != 0)
	return nil
}

// shl stores the bit shifted out in VF.
func (c *CPU) shl(op opcode.Opcode) error {
	value := c.shiftSource(op)
	c.V[op.X()] = value << 1
	c.setFlag(value&0x80 != 0)
	return nil
}

func (c *CPU) ldI(op opcode.Opcode) error {
	c.I = op.NNN()
	return nil
}

// jpV0 jumps relative to V0. The target is not masked, a target beyond the
// address space fails on the next fetch.
func (c *CPU) jpV0(op opcode.Opcode) error {
	offset := c.V[0]
	if c.quirks.JumpVX {
		offset = c.V[op.X()]
	}
	c.PC = op.NNN() + uint16(offset)
	return nil
}

func (c *CPU) rnd(op opcode.Opcode) error {
	c.V[op.X()] = byte(c.random.Uint32()) & op.NN()
	return nil
}

// drw XORs N sprite rows read from I onto the display and sets VF on collision.
func (c *CPU) drw(op opcode.Opcode) error {
	sprite, err := c.memory.Slice(c.I, int(op.N()))
	if err != nil {
		return err
	}
	collision := c.display.Draw(c.V[op.X()], c.V[op.Y()], sprite)
	c.setFlag(collision)
	return nil
}

func (c *CPU) skp(op opcode.Opcode) error {
	c.skipIf(c.keys.IsPressed(c.V[op.X()] & 0xF))
	return nil
}

func (c *CPU) sknp(op opcode.Opcode) error {
	c.skipIf(!c.keys.IsPressed(c.V[op.X()] & 0xF))
	return nil
}

func (c *CPU) ldVxDT(op opcode.Opcode) error {
	c.V[op.X()] = c.DelayTimer
	return nil
}

// ldVxK stores the lowest pressed key. Without a pressed key the instruction
// is repeated by the next Step.
func (c *CPU) ldVxK(op opcode.Opcode) error {
	key, ok := c.keys.AnyPressed()
	if !ok {
		c.waiting = true
		c.PC -= opcode.Size
		return nil
	}
	c.waiting = false
	c.V[op.X()] = key
	return nil
}

func (c *CPU) ldDTVx(op opcode.Opcode) error {
	c.DelayTimer = c.V[op.X()]
	return nil
}

func (c *CPU) ldSTVx(op opcode.Opcode) error {
	c.SoundTimer = c.V[op.X()]
	return nil
}

func (c *CPU) addI(op opcode.Opcode) error {
	sum := uint32(c.I) + uint32(c.V[op.X()])
	if c.quirks.IndexOverflowVF {
		c.setFlag(sum > memory.MaxAddress)
	}
	c.setI(sum)
	return nil
}

func (c *CPU) ldF(op opcode.Opcode) error {
	c.I = memory.GlyphAddress(c.V[op.X()])
	return nil
}

// ldB stores the decimal digits of VX at I, I+1 and I+2.
func (c *CPU) ldB(op opcode.Opcode) error {
	digits, err := c.memory.Slice(c.I, 3)
	if err != nil {
		return err
	}
	value := c.V[op.X()]
	digits[0] = value / 100
	digits[1] = value / 10 % 10
	digits[2] = value % 10
	return nil
}

// ldIVx stores V0 to VX inclusive starting at I.
func (c *CPU) ldIVx(op opcode.Opcode) error {
	count := int(op.X()) + 1
	block, err := c.memory.Slice(c.I, count)
	if err != nil {
		return err
	}
	copy(block, c.V[:count])
	c.advanceIndex(count)
	return nil
}

// ldVxI loads V0 to VX inclusive from memory starting at I.
func (c *CPU) ldVxI(op opcode.Opcode) error {
	count := int(op.X()) + 1
	block, err := c.memory.Slice(c.I, count)
	if err != nil {
		return err
	}
	copy(c.V[:count], block)
	c.advanceIndex(count)
	return nil
}

func (c *CPU) advanceIndex(count int) {
	if !c.quirks.LoadStoreKeepI {
		c.setI(uint32(c.I) + uint32(count))
	}
}
