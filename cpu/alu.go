package cpu

// This file implements the 8080 accumulator ALU: ADD/ADC/SUB/SBB/CMP,
// ANA/ORA/XRA, the rotates, CMA/CMC/STC, DAA, and DAD. Each operation
// updates c.Flags per the table in the flags unit design.

// addToA implements ADD/ADC: A <- A + op (+ C if withCarry).
func (c *Cpu) addToA(op uint8, withCarry bool) {
	var cin uint16
	if withCarry && c.Flags.Carry {
		cin = 1
	}
	result, half, carry := addCarries(uint16(c.A), uint16(op), cin)
	c.Flags.AuxCarry = half
	c.Flags.Carry = carry
	c.setLogicFlags(uint8(result))
	c.A = uint8(result)
}

// subFromA implements SUB/SBB/CMP's shared arithmetic: A + ~op + 1 (or
// + ~op + (1-C) for SBB). Carry is the flag's usual borrow convention
// (set when A < op), the logical complement of the addition form's raw
// carry-out; AuxCarry keeps the addition form's raw half-carry-out
// unchanged (no borrow from bit 3 sets it, matching ADD's polarity even
// though Carry does not). The result is returned rather than stored, so
// CMP can discard it while still updating flags.
func (c *Cpu) subFromA(op uint8, withBorrow bool) uint8 {
	cin := uint16(1)
	if withBorrow && c.Flags.Carry {
		cin = 0
	}
	notOp := uint16(uint8(^op))
	result, half, rawCarry := addCarries(uint16(c.A), notOp, cin)
	c.Flags.AuxCarry = half
	c.Flags.Carry = !rawCarry
	c.setLogicFlags(uint8(result))
	return uint8(result)
}

// ADD: A <- A + op.
func (c *Cpu) ADD(op uint8) { c.addToA(op, false) }

// ADC: A <- A + op + C.
func (c *Cpu) ADC(op uint8) { c.addToA(op, true) }

// SUB: A <- A - op.
func (c *Cpu) SUB(op uint8) { c.A = c.subFromA(op, false) }

// SBB: A <- A - op - C.
func (c *Cpu) SBB(op uint8) { c.A = c.subFromA(op, true) }

// CMP compares op against A, setting flags as SUB would, without storing
// the result.
func (c *Cpu) CMP(op uint8) { c.subFromA(op, false) }

// ANA: A <- A AND op. AuxCarry is set if bit 3 of either operand was set
// (an 8080 quirk distinct from the additive half-carry), Carry is cleared.
func (c *Cpu) ANA(op uint8) {
	c.Flags.AuxCarry = c.A&0x08 != 0 || op&0x08 != 0
	c.Flags.Carry = false
	result := c.A & op
	c.setLogicFlags(result)
	c.A = result
}

// ORA: A <- A OR op. AuxCarry and Carry are cleared.
func (c *Cpu) ORA(op uint8) {
	c.Flags.AuxCarry = false
	c.Flags.Carry = false
	result := c.A | op
	c.setLogicFlags(result)
	c.A = result
}

// XRA: A <- A XOR op. AuxCarry and Carry are cleared.
func (c *Cpu) XRA(op uint8) {
	c.Flags.AuxCarry = false
	c.Flags.Carry = false
	result := c.A ^ op
	c.setLogicFlags(result)
	c.A = result
}

// RLC: rotate A left; C <- old bit 7.
func (c *Cpu) RLC() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | c.A>>7
	c.Flags.Carry = carry
}

// RRC: rotate A right; C <- old bit 0.
func (c *Cpu) RRC() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | c.A<<7
	c.Flags.Carry = carry
}

// RAL: A <- (A<<1) | C; C <- old bit 7.
func (c *Cpu) RAL() {
	var oldCarry uint8
	if c.Flags.Carry {
		oldCarry = 1
	}
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | oldCarry
	c.Flags.Carry = carry
}

// RAR: A <- (C<<7) | (A>>1); C <- old bit 0.
func (c *Cpu) RAR() {
	var oldCarry uint8
	if c.Flags.Carry {
		oldCarry = 0x80
	}
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | oldCarry
	c.Flags.Carry = carry
}

// CMA: A <- ~A. No flags affected.
func (c *Cpu) CMA() { c.A = ^c.A }

// CMC: C <- ~C.
func (c *Cpu) CMC() { c.Flags.Carry = !c.Flags.Carry }

// STC: C <- 1.
func (c *Cpu) STC() { c.Flags.Carry = true }

// DAA adjusts A to packed BCD following an addition, per the 8080's decimal
// adjust algorithm:
//  1. if the low nibble exceeds 9 or AuxCarry is set, add 0x06 and
//     recompute AuxCarry from that addition;
//  2. if the (possibly updated) high nibble exceeds 9 or Carry is set,
//     add 0x60 and set Carry;
//  3. set S, Z, P from the final value.
func (c *Cpu) DAA() {
	a := c.A

	if lo := a & 0x0F; lo > 9 || c.Flags.AuxCarry {
		sum, half, _ := addCarries(uint16(a), 0x06, 0)
		c.Flags.AuxCarry = half
		a = uint8(sum)
	}

	if hi := (a >> 4) & 0x0F; hi > 9 || c.Flags.Carry {
		a = uint8(uint16(a) + 0x60)
		c.Flags.Carry = true
	}

	c.setLogicFlags(a)
	c.A = a
}

// DAD: HL <- HL + rp (16-bit). Only Carry is affected (set from bit 15
// carry-out); S, Z, A, P are untouched.
func (c *Cpu) DAD(rp RegPair) {
	sum, carry := addCarry16(uint32(c.HL()), uint32(c.GetPair(rp)))
	c.Flags.Carry = carry
	c.SetHL(uint16(sum))
}
