package opcode

// Kind identifies one of the instruction forms of the CHIP-8 instruction set.
type Kind uint8

// Instruction forms, named after their encoding.
const (
	Unknown Kind = iota
	Sys          // 0NNN
	Cls          // 00E0
	Ret          // 00EE
	Jp           // 1NNN
	Call         // 2NNN
	SeByte       // 3XNN
	SneByte      // 4XNN
	SeReg        // 5XY0
	LdByte       // 6XNN
	AddByte      // 7XNN
	LdReg        // 8XY0
	Or           // 8XY1
	And          // 8XY2
	Xor          // 8XY3
	AddReg       // 8XY4
	Sub          // 8XY5
	Shr          // 8XY6
	Subn         // 8XY7
	Shl          // 8XYE
	SneReg       // 9XY0
	LdI          // ANNN
	JpV0         // BNNN
	Rnd          // CXNN
	Drw          // DXYN
	Skp          // EX9E
	Sknp         // EXA1
	LdVxDT       // FX07
	LdVxK        // FX0A
	LdDTVx       // FX15
	LdSTVx       // FX18
	AddI         // FX1E
	LdF          // FX29
	LdB          // FX33
	LdIVx        // FX55
	LdVxI        // FX65

	kindCount
)

// Count is the number of kinds including Unknown, usable as the size of a
// dispatch table indexed by Kind.
const Count = int(kindCount)

var kindPatterns = [kindCount]string{
	Unknown: "????",
	Sys:     "0NNN",
	Cls:     "00E0",
	Ret:     "00EE",
	Jp:      "1NNN",
	Call:    "2NNN",
	SeByte:  "3XNN",
	SneByte: "4XNN",
	SeReg:   "5XY0",
	LdByte:  "6XNN",
	AddByte: "7XNN",
	LdReg:   "8XY0",
	Or:      "8XY1",
	And:     "8XY2",
	Xor:     "8XY3",
	AddReg:  "8XY4",
	Sub:     "8XY5",
	Shr:     "8XY6",
	Subn:    "8XY7",
	Shl:     "8XYE",
	SneReg:  "9XY0",
	LdI:     "ANNN",
	JpV0:    "BNNN",
	Rnd:     "CXNN",
	Drw:     "DXYN",
	Skp:     "EX9E",
	Sknp:    "EXA1",
	LdVxDT:  "FX07",
	LdVxK:   "FX0A",
	LdDTVx:  "FX15",
	LdSTVx:  "FX18",
	AddI:    "FX1E",
	LdF:     "FX29",
	LdB:     "FX33",
	LdIVx:   "FX55",
	LdVxI:   "FX65",
}

// String returns the encoding pattern of the instruction form, for example 8XY4.
func (k Kind) String() string {
	if k >= kindCount {
		return kindPatterns[Unknown]
	}
	return kindPatterns[k]
}

var aluKinds = [16]Kind{
	0x0: LdReg,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddReg,
	0x5: Sub,
	0x6: Shr,
	0x7: Subn,
	0xE: Shl,
}

var miscKinds = map[byte]Kind{
	0x07: LdVxDT,
	0x0A: LdVxK,
	0x15: LdDTVx,
	0x18: LdSTVx,
	0x1E: AddI,
	0x29: LdF,
	0x33: LdB,
	0x55: LdIVx,
	0x65: LdVxI,
}

// Decode classifies the opcode. Words matching no instruction form decode
// to Unknown.
func Decode(o Opcode) Kind {
	switch o.N1() {
	case 0x0:
		switch o {
		case 0x00E0:
			return Cls
		case 0x00EE:
			return Ret
		}
		return Sys
	case 0x1:
		return Jp
	case 0x2:
		return Call
	case 0x3:
		return SeByte
	case 0x4:
		return SneByte
	case 0x5:
		if o.N() == 0 {
			return SeReg
		}
	case 0x6:
		return LdByte
	case 0x7:
		return AddByte
	case 0x8:
		return aluKinds[o.N()]
	case 0x9:
		if o.N() == 0 {
			return SneReg
		}
	case 0xA:
		return LdI
	case 0xB:
		return JpV0
	case 0xC:
		return Rnd
	case 0xD:
		return Drw
	case 0xE:
		switch o.NN() {
		case 0x9E:
			return Skp
		case 0xA1:
			return Sknp
		}
	case 0xF:
		return miscKinds[o.NN()]
	}
	return Unknown
}
