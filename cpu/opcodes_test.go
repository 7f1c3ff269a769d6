package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovRegisterToRegister(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x41 // MOV B,C

	c := New()
	c.C = 0x77
	c.Step(mem, noIO{})

	assert.Equal(t, uint8(0x77), c.B)
	assert.Equal(t, uint16(0x0001), c.PC)
}

func TestMovThroughMemory(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x46 // MOV B,M

	c := New()
	c.SetHL(0x3000)
	mem[0x3000] = 0xAB
	c.Step(mem, noIO{})

	assert.Equal(t, uint8(0xAB), c.B)
}

func TestMviAndLxi(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x06 // MVI B,d8
	mem[0x0001] = 0x42
	mem[0x0002] = 0x21 // LXI H,d16
	mem[0x0003] = 0x00
	mem[0x0004] = 0x30

	c := New()
	c.Step(mem, noIO{})
	assert.Equal(t, uint8(0x42), c.B)

	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x3000), c.HL())
}

func TestConditionalJumpTaken(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xCA // JZ a16
	mem[0x0001] = 0x00
	mem[0x0002] = 0x20

	c := New()
	c.Flags.Zero = true
	cycles := c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x2000), c.PC)
	assert.Equal(t, uint8(10), cycles)
}

func TestConditionalJumpNotTaken(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xCA // JZ a16
	mem[0x0001] = 0x00
	mem[0x0002] = 0x20

	c := New()
	c.Flags.Zero = false
	c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x0003), c.PC)
}

func TestPushPopPSW(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xF5 // PUSH PSW
	mem[0x0001] = 0xF1 // POP PSW

	c := New()
	c.SP = 0x2400
	c.A = 0x42
	c.Flags = Flags{Sign: true, Carry: true}

	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x23FE), c.SP)

	c.A = 0
	c.Flags = Flags{}
	c.Step(mem, noIO{})

	assert.Equal(t, uint8(0x42), c.A)
	assert.True(t, c.Flags.Sign)
	assert.True(t, c.Flags.Carry)
	assert.Equal(t, uint16(0x2400), c.SP)
}

func TestXchg(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xEB // XCHG

	c := New()
	c.SetHL(0x1234)
	c.SetDE(0x5678)
	c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x5678), c.HL())
	assert.Equal(t, uint16(0x1234), c.DE())
}

// TestXthlIsIdentityOnTwoApplications covers spec.md's round-trip property:
// XTHL; XTHL is identity on HL and the top stack word.
func TestXthlIsIdentityOnTwoApplications(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xE3 // XTHL
	mem[0x0001] = 0xE3 // XTHL

	c := New()
	c.SP = 0x2400
	c.SetHL(0x1234)
	mem[0x2400] = 0x78
	mem[0x2401] = 0x56

	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x5678), c.HL())
	assert.Equal(t, uint8(0x34), mem.Read(0x2400))
	assert.Equal(t, uint8(0x12), mem.Read(0x2401))

	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x1234), c.HL())
	assert.Equal(t, uint8(0x78), mem.Read(0x2400))
	assert.Equal(t, uint8(0x56), mem.Read(0x2401))
	assert.Equal(t, uint16(0x2400), c.SP) // XTHL never moves SP
}

func TestInOut(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xDB // IN d8
	mem[0x0001] = 0x03
	mem[0x0002] = 0xD3 // OUT d8
	mem[0x0003] = 0x04

	io := &recordingIO{inValue: 0x55}
	c := New()
	c.Step(mem, io)
	assert.Equal(t, uint8(0x55), c.A)
	assert.Equal(t, uint8(3), io.lastInPort)

	c.A = 0x99
	c.Step(mem, io)
	assert.Equal(t, uint8(4), io.lastOutPort)
	assert.Equal(t, uint8(0x99), io.lastOutValue)
}

type recordingIO struct {
	inValue                  uint8
	lastInPort               uint8
	lastOutPort, lastOutValue uint8
}

func (r *recordingIO) In(port uint8) uint8 {
	r.lastInPort = port
	return r.inValue
}

func (r *recordingIO) Out(port uint8, val uint8) {
	r.lastOutPort = port
	r.lastOutValue = val
}

func TestUndocumentedOpcodeAliases(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x08 // NOP alias
	mem[0x0001] = 0xCB // JMP alias
	mem[0x0002] = 0x00
	mem[0x0003] = 0x30

	c := New()
	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x0001), c.PC)

	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x3000), c.PC)
}

// TestShldLhldRoundTrip covers spec.md's round-trip property: for any v,
// LXI H,v then SHLD addr; LHLD addr yields HL == v.
func TestShldLhldRoundTrip(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x21 // LXI H,d16
	mem[0x0001] = 0xCD
	mem[0x0002] = 0xAB
	mem[0x0003] = 0x22 // SHLD a16
	mem[0x0004] = 0x00
	mem[0x0005] = 0x30
	mem[0x0006] = 0x2A // LHLD a16
	mem[0x0007] = 0x00
	mem[0x0008] = 0x30

	c := New()
	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0xABCD), c.HL())

	c.Step(mem, noIO{})
	assert.Equal(t, uint8(0xCD), mem.Read(0x3000))
	assert.Equal(t, uint8(0xAB), mem.Read(0x3001))

	c.SetHL(0)
	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0xABCD), c.HL())
}

func TestStaxLdax(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x02 // STAX B
	mem[0x0001] = 0x1A // LDAX D

	c := New()
	c.A = 0x42
	c.SetBC(0x3000)
	c.Step(mem, noIO{})
	assert.Equal(t, uint8(0x42), mem.Read(0x3000))

	c.A = 0
	c.SetDE(0x3000)
	c.Step(mem, noIO{})
	assert.Equal(t, uint8(0x42), c.A)
}

// TestConditionalCallTakenAndNotTaken covers CZ's differing cycle cost
// between a taken and an untaken conditional CALL.
func TestConditionalCallTakenAndNotTaken(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xCC // CZ a16
	mem[0x0001] = 0x00
	mem[0x0002] = 0x20

	c := New()
	c.SP = 0x2400
	c.Flags.Zero = false
	cycles := c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x0003), c.PC)
	assert.Equal(t, uint16(0x2400), c.SP) // nothing pushed
	assert.Equal(t, Opcodes[0xCC].Cycles, cycles)

	c.PC = 0x0000
	c.Flags.Zero = true
	cycles = c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x2000), c.PC)
	assert.Equal(t, uint16(0x23FE), c.SP)
	assert.Equal(t, uint16(0x0003), c.pop(mem)) // return address pushed
	assert.Equal(t, Opcodes[0xCC].Taken, cycles)
}

// TestConditionalRetTakenAndNotTaken covers RZ's differing cycle cost
// between a taken and an untaken conditional RET.
func TestConditionalRetTakenAndNotTaken(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xC8 // RZ

	c := New()
	c.SP = 0x2400
	mem[0x2400] = 0x00
	mem[0x2401] = 0x30
	c.Flags.Zero = false
	cycles := c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x0001), c.PC) // fell through
	assert.Equal(t, uint16(0x2400), c.SP) // nothing popped
	assert.Equal(t, Opcodes[0xC8].Cycles, cycles)

	c.PC = 0x0000
	c.Flags.Zero = true
	cycles = c.Step(mem, noIO{})

	assert.Equal(t, uint16(0x3000), c.PC)
	assert.Equal(t, uint16(0x2402), c.SP)
	assert.Equal(t, Opcodes[0xC8].Taken, cycles)
}

func TestPchlAndSphl(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0xE9 // PCHL
	mem[0x3000] = 0xF9 // SPHL

	c := New()
	c.SetHL(0x3000)
	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x3000), c.PC)

	c.SetHL(0x4000)
	c.Step(mem, noIO{})
	assert.Equal(t, uint16(0x4000), c.SP)
}

func TestStaLda(t *testing.T) {
	mem := &flatMem{}
	mem[0x0000] = 0x32 // STA a16
	mem[0x0001] = 0x00
	mem[0x0002] = 0x40
	mem[0x0003] = 0x3A // LDA a16
	mem[0x0004] = 0x00
	mem[0x0005] = 0x40

	c := New()
	c.A = 0x7E
	c.Step(mem, noIO{})
	assert.Equal(t, uint8(0x7E), mem.Read(0x4000))

	c.A = 0
	c.Step(mem, noIO{})
	assert.Equal(t, uint8(0x7E), c.A)
}
