package cpu

import (
	"math/bits"

	"github.com/hejops/i8080/mask"
)

// Flags holds the five 8080 status flags as booleans. The F register byte
// (bit 7 S, bit 6 Z, bit 5 unused=0, bit 4 A, bit 3 unused=0, bit 2 P, bit 1
// constant=1, bit 0 C) is only materialized by ToByte/FlagsFromByte, for
// PUSH PSW / POP PSW and for hosts that want the raw register.
type Flags struct {
	Sign     bool
	Zero     bool
	AuxCarry bool
	Parity   bool
	Carry    bool
}

// ToByte packs the flags into the F register layout. Bit 1 is always set;
// bits 3 and 5 are always clear.
func (f Flags) ToByte() uint8 {
	var b uint8
	if f.Sign {
		b = mask.Set(b, mask.I1, 1)
	}
	if f.Zero {
		b = mask.Set(b, mask.I2, 1)
	}
	if f.AuxCarry {
		b = mask.Set(b, mask.I4, 1)
	}
	if f.Parity {
		b = mask.Set(b, mask.I6, 1)
	}
	b = mask.Set(b, mask.I7, 1) // constant bit
	if f.Carry {
		b = mask.Set(b, mask.I8, 1)
	}
	return b
}

// FlagsFromByte unpacks an F register byte into Flags, as used by POP PSW.
// The constant/unused bits of the source byte are ignored.
func FlagsFromByte(b uint8) Flags {
	return Flags{
		Sign:     mask.IsSet(b, mask.I1),
		Zero:     mask.IsSet(b, mask.I2),
		AuxCarry: mask.IsSet(b, mask.I4),
		Parity:   mask.IsSet(b, mask.I6),
		Carry:    mask.IsSet(b, mask.I8),
	}
}

func signOf(result uint8) bool   { return result&0x80 != 0 }
func zeroOf(result uint8) bool   { return result == 0 }
func parityOf(result uint8) bool { return bits.OnesCount8(result)%2 == 0 }

// setLogicFlags sets S, Z, and P from result, as done by every ALU/logic/
// increment/decrement operation that touches the accumulator or a register.
func (c *Cpu) setLogicFlags(result uint8) {
	c.Flags.Sign = signOf(result)
	c.Flags.Zero = zeroOf(result)
	c.Flags.Parity = parityOf(result)
}

// addCarries computes the carry-out of bit 3 (half-carry) and bit 7 (carry)
// of a+b+cin, per the general carry formula in the flags unit: carry out of
// bit n is ((a^b^cin^result)>>(n+1))&1.
func addCarries(a, b, cin uint16) (result uint16, halfCarry, carry bool) {
	result = a + b + cin
	x := a ^ b ^ cin ^ result
	halfCarry = (x>>4)&1 == 1
	carry = (x>>8)&1 == 1
	return
}

// addCarry16 computes the carry-out of bit 15 of a+b, for DAD.
func addCarry16(a, b uint32) (result uint32, carry bool) {
	result = a + b
	carry = ((a^b^result)>>16)&1 == 1
	return
}
