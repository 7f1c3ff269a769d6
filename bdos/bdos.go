// Package bdos implements just enough of CP/M's BDOS to run CPUDIAG.COM
// and 8080EXER.COM to completion: a trap on CALL 5 (the BDOS entry point)
// and functions 9 (print $-terminated string) and 2 (print character).
package bdos

import (
	"io"

	"github.com/hejops/i8080/cpu"
)

// entryAddr is the conventional CP/M BDOS entry point. Test ROMs call it
// directly; Trap only needs to recognize when Cpu.PC lands there.
const entryAddr = 0x0005

// Memory is the subset of cpu.Memory this package needs to read the
// string argument to function 9 and to pop the caller's return address.
type Memory interface {
	Read(addr uint16) uint8
}

// Trap checks whether c.PC is the BDOS entry point and, if so, services
// the call named by register C and advances c past it by popping the
// return address pushed by the test ROM's CALL 5. It reports whether a
// call was serviced, so a host's run loop can call it once per Step
// before dispatching.
func Trap(c *cpu.Cpu, mem Memory, out io.Writer) bool {
	if c.PC != entryAddr {
		return false
	}

	switch c.C {
	case 9:
		printString(c, mem, out)
	case 2:
		out.Write([]byte{c.E})
	}

	ret := popReturnAddr(c, mem)
	c.PC = ret
	return true
}

// printString writes the $-terminated string at DE, per CP/M function 9.
func printString(c *cpu.Cpu, mem Memory, out io.Writer) {
	addr := c.DE()
	for {
		b := mem.Read(addr)
		if b == '$' {
			return
		}
		out.Write([]byte{b})
		addr++
	}
}

// popReturnAddr reads the little-endian word at SP and advances SP by
// two, mirroring the Cpu's own RET semantics without reaching into its
// unexported stack helpers.
func popReturnAddr(c *cpu.Cpu, mem Memory) uint16 {
	lo := mem.Read(c.SP)
	hi := mem.Read(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}
