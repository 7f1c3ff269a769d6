package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpaceInvadersBusRomReadOnly(t *testing.T) {
	b := NewSpaceInvaders()
	b.Rom[0x0010] = 0xAB

	assert.Equal(t, uint8(0xAB), b.Read(0x0010))

	b.Write(0x0010, 0xFF) // silently absorbed
	assert.Equal(t, uint8(0xAB), b.Read(0x0010))
}

func TestSpaceInvadersBusRamAndVram(t *testing.T) {
	b := NewSpaceInvaders()

	b.Write(0x2010, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0x2010))

	b.Write(0x2400, 0x99)
	assert.Equal(t, uint8(0x99), b.Read(0x2400))
}

func TestSpaceInvadersBusMirror(t *testing.T) {
	b := NewSpaceInvaders()

	b.Write(0x2010, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0x4010))

	b.Write(0x4410, 0x77)
	assert.Equal(t, uint8(0x77), b.Read(0x2410))
}

func TestSpaceInvadersBusOutOfRange(t *testing.T) {
	b := NewSpaceInvaders()
	assert.Equal(t, uint8(0), b.Read(0x6000))
	b.Write(0x6000, 0xFF) // no panic, discarded
}

func TestFlatMemory(t *testing.T) {
	m := NewFlat()
	m.Write(0x8000, 0x55)
	assert.Equal(t, uint8(0x55), m.Read(0x8000))
}

func TestVideoRAMAliasesRam(t *testing.T) {
	b := NewSpaceInvaders()
	b.Write(0x2400, 0x01)
	vram := b.VideoRAM()
	assert.Equal(t, uint8(0x01), vram[0])

	vram[1] = 0x02
	assert.Equal(t, uint8(0x02), b.Read(0x2401))
}
