// Package cpu implements the Intel 8080 microprocessor, as used by the
// Space Invaders arcade hardware.
package cpu

// Memory is the byte-addressable bus the Cpu reads instructions and data
// from. The Cpu does no range checking; a host maps ROM/RAM/VRAM behind
// this interface and decides what happens to an out-of-range access.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// IO is the 8-bit port space the Cpu talks to via IN/OUT.
type IO interface {
	In(port uint8) uint8
	Out(port uint8, val uint8)
}

// idleHaltCycles is burned by Step while Halted and no interrupt is
// accepted. The datasheet gives HLT itself 7 cycles; idling afterwards is
// documented here as 4, matching a single NOP, so host frame-budget math
// doesn't need a special case for "the CPU is asleep".
const idleHaltCycles = 4

// Cpu is a self-contained Intel 8080: eight 8-bit registers, PC, SP, the
// flags byte (as Flags), and the interrupt/halt latches. It is created once
// by New, mutated only by Step and Interrupt, and holds no reference to the
// Memory/IO it was last given — both are borrowed for the duration of a
// single Step call.
type Cpu struct {
	A, B, C, D, E, H, L uint8
	Flags               Flags

	PC uint16
	SP uint16

	IntEnable bool
	Halted    bool

	pendingInterrupt *uint8
}

// New returns a Cpu in its reset state: all registers zero, PC and SP zero,
// flags with only the constant bit 1 set, interrupts disabled, not halted.
func New() *Cpu {
	return &Cpu{
		Flags: Flags{},
	}
}

// Interrupt latches opcode to be executed in place of the next ordinary
// fetch, provided interrupts are enabled at the next Step. The latch is
// idempotent: a second call before acceptance simply overwrites it.
func (c *Cpu) Interrupt(opcode uint8) {
	op := opcode
	c.pendingInterrupt = &op
}

// PendingInterrupt reports the currently latched interrupt opcode, if any.
func (c *Cpu) PendingInterrupt() (opcode uint8, pending bool) {
	if c.pendingInterrupt == nil {
		return 0, false
	}
	return *c.pendingInterrupt, true
}

// RST encodes the one-byte CALL-to-fixed-address instruction for restart
// vector n (0-7), for hosts that want to drive Interrupt with RST n rather
// than a raw opcode.
func RST(n uint8) uint8 {
	return 0xC7 | (n&0x07)<<3
}

// Step runs exactly one instruction to completion and returns the number of
// clock cycles it consumed. If an interrupt is latched and enabled, that
// opcode is executed instead of the next fetch and PC is not advanced to
// obtain it. Otherwise, if Halted, Step burns idleHaltCycles without
// touching PC. Otherwise the opcode at PC is fetched (advancing PC) and
// dispatched.
func (c *Cpu) Step(mem Memory, io IO) uint8 {
	if c.pendingInterrupt != nil && c.IntEnable {
		op := *c.pendingInterrupt
		c.pendingInterrupt = nil
		c.IntEnable = false
		c.Halted = false
		return c.execute(op, mem, io)
	}

	if c.Halted {
		return idleHaltCycles
	}

	op := c.fetchByte(mem)
	return c.execute(op, mem, io)
}

// fetchByte reads the byte at PC and advances PC.
func (c *Cpu) fetchByte(mem Memory) uint8 {
	b := mem.Read(c.PC)
	c.PC++
	return b
}

// fetchWord reads the little-endian word at PC and advances PC by two.
func (c *Cpu) fetchWord(mem Memory) uint16 {
	lo := c.fetchByte(mem)
	hi := c.fetchByte(mem)
	return uint16(hi)<<8 | uint16(lo)
}

func readWord(mem Memory, addr uint16) uint16 {
	lo := mem.Read(addr)
	hi := mem.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func writeWord(mem Memory, addr uint16, val uint16) {
	mem.Write(addr, uint8(val))
	mem.Write(addr+1, uint8(val>>8))
}

// push writes val to the stack: high byte at SP-1, low byte at SP-2, then
// SP -= 2.
func (c *Cpu) push(mem Memory, val uint16) {
	mem.Write(c.SP-1, uint8(val>>8))
	mem.Write(c.SP-2, uint8(val))
	c.SP -= 2
}

// pop reads a word off the stack and advances SP by two.
func (c *Cpu) pop(mem Memory) uint16 {
	lo := mem.Read(c.SP)
	hi := mem.Read(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}
