package cpu

import "github.com/hejops/i8080/mask"

// Reg identifies an 8-bit operand by its 3-bit opcode field value, in the
// 8080's own encoding order: B,C,D,E,H,L,M,A. M is not a real register; it
// denotes the memory byte at the address held in HL.
type Reg uint8

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegM
	RegA
)

// RegPair identifies a 16-bit register pair by its 2-bit opcode field value.
type RegPair uint8

const (
	PairBC RegPair = iota
	PairDE
	PairHL
	PairSP
)

// regField extracts a Reg out of a 3-bit field starting at the given
// 1-indexed bit position (see mask.Range).
func regField(op uint8, start, end mask.ByteIndex) Reg {
	return Reg(mask.Range(op, start, end))
}

// destField and srcField pull the dst/src operand selectors out of the
// MOV/ALU-register opcode layouts (01dddsss, 10ooosss): dst occupies bits
// 5-3, src occupies bits 2-0.
func destField(op uint8) Reg { return regField(op, mask.I3, mask.I5) }
func srcField(op uint8) Reg  { return regField(op, mask.I6, mask.I8) }

// pairField pulls the 2-bit rp selector out of bits 5-4 of a 00rr_xxxx /
// 11rr_xxxx opcode.
func pairField(op uint8) RegPair {
	return RegPair(mask.Range(op, mask.I3, mask.I4))
}

// Get reads an 8-bit operand, resolving RegM through mem at HL.
func (c *Cpu) Get(r Reg, mem Memory) uint8 {
	switch r {
	case RegA:
		return c.A
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	case RegM:
		return mem.Read(c.HL())
	}
	return 0
}

// Set writes an 8-bit operand, resolving RegM through mem at HL.
func (c *Cpu) Set(r Reg, val uint8, mem Memory) {
	switch r {
	case RegA:
		c.A = val
	case RegB:
		c.B = val
	case RegC:
		c.C = val
	case RegD:
		c.D = val
	case RegE:
		c.E = val
	case RegH:
		c.H = val
	case RegL:
		c.L = val
	case RegM:
		mem.Write(c.HL(), val)
	}
}

// BC, DE, HL return the value of the named register pair.
func (c *Cpu) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *Cpu) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *Cpu) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }

// SetBC, SetDE, SetHL overwrite the named register pair.
func (c *Cpu) SetBC(v uint16) { c.B, c.C = uint8(v>>8), uint8(v) }
func (c *Cpu) SetDE(v uint16) { c.D, c.E = uint8(v>>8), uint8(v) }
func (c *Cpu) SetHL(v uint16) { c.H, c.L = uint8(v>>8), uint8(v) }

// PSW returns the (A,F) pair as a 16-bit quantity, as used by PUSH PSW.
func (c *Cpu) PSW() uint16 { return uint16(c.A)<<8 | uint16(c.Flags.ToByte()) }

// SetPSW loads A and F from a 16-bit quantity, as used by POP PSW. F's
// constant/unused bits are normalized by FlagsFromByte.
func (c *Cpu) SetPSW(v uint16) {
	c.A = uint8(v >> 8)
	c.Flags = FlagsFromByte(uint8(v))
}

// GetPair reads a 16-bit register pair (BC, DE, HL, or SP).
func (c *Cpu) GetPair(rp RegPair) uint16 {
	switch rp {
	case PairBC:
		return c.BC()
	case PairDE:
		return c.DE()
	case PairHL:
		return c.HL()
	case PairSP:
		return c.SP
	}
	return 0
}

// SetPair writes a 16-bit register pair (BC, DE, HL, or SP).
func (c *Cpu) SetPair(rp RegPair, v uint16) {
	switch rp {
	case PairBC:
		c.SetBC(v)
	case PairDE:
		c.SetDE(v)
	case PairHL:
		c.SetHL(v)
	case PairSP:
		c.SP = v
	}
}

// IncReg implements INR: increments an 8-bit operand and sets S, Z, P, and
// AuxCarry from the result. Carry is left untouched.
func (c *Cpu) IncReg(r Reg, mem Memory) {
	old := c.Get(r, mem)
	result := old + 1
	c.Flags.AuxCarry = old&0x0F == 0x0F
	c.setLogicFlags(result)
	c.Set(r, result, mem)
}

// DecReg implements DCR: decrements an 8-bit operand and sets S, Z, P, and
// AuxCarry from the result. Carry is left untouched.
//
// AuxCarry after DCR follows the same "no borrow" convention as SUB: it is
// set unless decrementing borrowed out of bit 4 (old low nibble was 0).
func (c *Cpu) DecReg(r Reg, mem Memory) {
	old := c.Get(r, mem)
	result := old - 1
	c.Flags.AuxCarry = old&0x0F != 0x00
	c.setLogicFlags(result)
	c.Set(r, result, mem)
}

// IncPair implements INX: increments a register pair with no flag effects,
// wrapping modulo 65536.
func (c *Cpu) IncPair(rp RegPair) {
	c.SetPair(rp, c.GetPair(rp)+1)
}

// DecPair implements DCX: decrements a register pair with no flag effects,
// wrapping modulo 65536.
func (c *Cpu) DecPair(rp RegPair) {
	c.SetPair(rp, c.GetPair(rp)-1)
}
