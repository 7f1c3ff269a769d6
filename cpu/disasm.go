package cpu

import "fmt"

// Disassemble renders the instruction at addr as text and returns it along
// with its size in bytes, using the same Opcodes metadata the executor
// dispatches against. Immediate operands are substituted into the "d8",
// "d16", and "a16" placeholders baked into OpInfo.Name.
func Disassemble(mem Memory, addr uint16) (text string, size uint16) {
	op := mem.Read(addr)
	info := Opcodes[op]

	switch info.Size {
	case 1:
		return info.Name, 1
	case 2:
		d8 := mem.Read(addr + 1)
		return replacePlaceholder(info.Name, "d8", fmt.Sprintf("0x%02X", d8)), 2
	case 3:
		lo := mem.Read(addr + 1)
		hi := mem.Read(addr + 2)
		v := fmt.Sprintf("0x%04X", uint16(hi)<<8|uint16(lo))
		text := replacePlaceholder(info.Name, "d16", v)
		text = replacePlaceholder(text, "a16", v)
		return text, 3
	}
	return info.Name, 1
}

// replacePlaceholder substitutes the last occurrence of old with new in s,
// since every OpInfo.Name puts its immediate placeholder at the end
// ("MVI B,d8", "JNZ a16", ...).
func replacePlaceholder(s, old, new string) string {
	n := len(s) - len(old)
	if n < 0 || s[n:] != old {
		return s
	}
	return s[:n] + new
}
