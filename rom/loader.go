// Package rom loads Space Invaders ROM images and CP/M-style .COM test
// ROMs into any memory with a byte Write method (bus.SpaceInvadersBus,
// bus.FlatMemory).
package rom

import (
	"fmt"
	"io"
	"os"
)

// writer is the subset of bus.SpaceInvadersBus/bus.FlatMemory this package
// needs; both satisfy it without an import cycle back to bus.
type writer interface {
	Write(addr uint16, val uint8)
}

// segment is one of the four Space Invaders ROM files and the address it
// is mapped to, per original_source/src/space_invaders.c's program_rom.
type segment struct {
	file string
	addr uint16
}

var spaceInvadersSegments = []segment{
	{"invaders.h", 0x0000},
	{"invaders.g", 0x0800},
	{"invaders.f", 0x1000},
	{"invaders.e", 0x1800},
}

// LoadSpaceInvaders loads the four Space Invaders ROM segments from dir
// into mem at their fixed addresses.
func LoadSpaceInvaders(dir string, mem writer) error {
	for _, seg := range spaceInvadersSegments {
		if err := loadFile(dir+"/"+seg.file, seg.addr, mem); err != nil {
			return fmt.Errorf("rom: loading %s: %w", seg.file, err)
		}
	}
	return nil
}

// LoadComFile loads a single CP/M-style .COM image (CPUDIAG.COM,
// 8080EXER.COM) at 0x0100, the conventional CP/M program load address.
func LoadComFile(path string, mem writer) error {
	if err := loadFile(path, 0x0100, mem); err != nil {
		return fmt.Errorf("rom: loading %s: %w", path, err)
	}
	return nil
}

func loadFile(path string, addr uint16, mem writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	for i, b := range buf {
		mem.Write(addr+uint16(i), b)
	}
	return nil
}
