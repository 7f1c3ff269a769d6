package cpu

import "github.com/hejops/i8080/mask"

// OpInfo describes one opcode's static shape: its mnemonic, its size in
// bytes (including the opcode byte itself), and the clock cycles it costs.
// Taken is the cycle count when a conditional branch/call/return is taken;
// it equals Cycles for every unconditional opcode.
type OpInfo struct {
	Name   string
	Size   uint8
	Cycles uint8
	Taken  uint8
}

// Opcodes maps every one of the 256 opcode byte values to its OpInfo. It is
// built once in init from the regular families (MOV, MVI, register ALU,
// INR/DCR, INX/DCX/DAD, PUSH/POP, RST, conditional branches) plus the
// irregular singletons, mirroring how the instruction set's own encoding is
// regular almost everywhere except a handful of named opcodes.
var Opcodes [256]OpInfo

var regName = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}
var pairName = [4]string{"B", "D", "H", "SP"}
var condName = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func init() {
	for i := range Opcodes {
		Opcodes[i] = OpInfo{Name: "???", Size: 1, Cycles: 4, Taken: 4}
	}

	Opcodes[0x00] = OpInfo{"NOP", 1, 4, 4}
	Opcodes[0x76] = OpInfo{"HLT", 1, 7, 7}

	// MOV r,r' (01dddsss); 0x76 (MOV M,M) is HLT, handled above.
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dst := destField(uint8(op))
		src := srcField(uint8(op))
		cycles := uint8(5)
		if dst == RegM || src == RegM {
			cycles = 7
		}
		Opcodes[op] = OpInfo{"MOV " + regName[dst] + "," + regName[src], 1, cycles, cycles}
	}

	// MVI r,d8 (00ddd110).
	for _, r := range []Reg{RegB, RegC, RegD, RegE, RegH, RegL, RegM, RegA} {
		op := uint8(r)<<3 | 0x06
		cycles := uint8(7)
		if r == RegM {
			cycles = 10
		}
		Opcodes[op] = OpInfo{"MVI " + regName[r] + ",d8", 2, cycles, cycles}
	}

	// register ALU ops (10ooosss): ADD,ADC,SUB,SBB,ANA,XRA,ORA,CMP.
	aluNames := [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
	for fn := 0; fn < 8; fn++ {
		for _, r := range []Reg{RegB, RegC, RegD, RegE, RegH, RegL, RegM, RegA} {
			op := uint8(0x80|fn<<3) | uint8(r)
			cycles := uint8(4)
			if r == RegM {
				cycles = 7
			}
			Opcodes[op] = OpInfo{aluNames[fn] + " " + regName[r], 1, cycles, cycles}
		}
	}

	// ALU immediate (11ooo110).
	aluImmOps := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for fn, op := range aluImmOps {
		Opcodes[op] = OpInfo{aluNames[fn] + " d8", 2, 7, 7}
	}

	// INR/DCR r (00ddd100 / 00ddd101).
	for _, r := range []Reg{RegB, RegC, RegD, RegE, RegH, RegL, RegM, RegA} {
		cycles := uint8(5)
		if r == RegM {
			cycles = 10
		}
		Opcodes[uint8(r)<<3|0x04] = OpInfo{"INR " + regName[r], 1, cycles, cycles}
		Opcodes[uint8(r)<<3|0x05] = OpInfo{"DCR " + regName[r], 1, cycles, cycles}
	}

	// INX/DCX/DAD rp (00rr0011 / 00rr1011 / 00rr1001); LXI rp,d16
	// (00rr0001); PUSH/POP rp (11rr0101 / 11rr0001, rp=3 selects PSW
	// rather than SP for these two).
	for rp := 0; rp < 4; rp++ {
		Opcodes[rp<<4|0x03] = OpInfo{"INX " + pairName[rp], 1, 5, 5}
		Opcodes[rp<<4|0x0B] = OpInfo{"DCX " + pairName[rp], 1, 5, 5}
		Opcodes[rp<<4|0x09] = OpInfo{"DAD " + pairName[rp], 1, 10, 10}
		Opcodes[rp<<4|0x01] = OpInfo{"LXI " + pairName[rp] + ",d16", 3, 10, 10}

		pushPopName := pairName[rp]
		if rp == 3 {
			pushPopName = "PSW"
		}
		Opcodes[0xC0|rp<<4|0x05] = OpInfo{"PUSH " + pushPopName, 1, 11, 11}
		Opcodes[0xC0|rp<<4|0x01] = OpInfo{"POP " + pushPopName, 1, 10, 10}
	}

	// RST n (11nnn111).
	for n := 0; n < 8; n++ {
		Opcodes[0xC7|n<<3] = OpInfo{"RST", 1, 11, 11}
	}

	// conditional JMP/CALL/RET (11ccc010 / 11ccc100 / 11ccc000).
	for cc := 0; cc < 8; cc++ {
		Opcodes[0xC2|cc<<3] = OpInfo{"J" + condName[cc] + " a16", 3, 10, 10}
		Opcodes[0xC4|cc<<3] = OpInfo{"C" + condName[cc] + " a16", 3, 11, 17}
		Opcodes[0xC0|cc<<3] = OpInfo{"R" + condName[cc], 1, 5, 11}
	}

	// everything else: named singletons, including the undocumented
	// opcode aliases (the 8080's decode logic does not check every bit
	// of the top two fields, so several otherwise-unassigned bytes
	// silently collapse onto NOP/JMP/RET/CALL).
	singles := []struct {
		op            uint8
		name          string
		size, cyc, tk uint8
	}{
		{0x02, "STAX B", 1, 7, 7},
		{0x0A, "LDAX B", 1, 7, 7},
		{0x12, "STAX D", 1, 7, 7},
		{0x1A, "LDAX D", 1, 7, 7},
		{0x22, "SHLD a16", 3, 16, 16},
		{0x2A, "LHLD a16", 3, 16, 16},
		{0x32, "STA a16", 3, 13, 13},
		{0x3A, "LDA a16", 3, 13, 13},
		{0x07, "RLC", 1, 4, 4},
		{0x0F, "RRC", 1, 4, 4},
		{0x17, "RAL", 1, 4, 4},
		{0x1F, "RAR", 1, 4, 4},
		{0x27, "DAA", 1, 4, 4},
		{0x2F, "CMA", 1, 4, 4},
		{0x37, "STC", 1, 4, 4},
		{0x3F, "CMC", 1, 4, 4},
		{0xC3, "JMP a16", 3, 10, 10},
		{0xCD, "CALL a16", 3, 17, 17},
		{0xC9, "RET", 1, 10, 10},
		{0xE9, "PCHL", 1, 5, 5},
		{0xF9, "SPHL", 1, 5, 5},
		{0xE3, "XTHL", 1, 18, 18},
		{0xEB, "XCHG", 1, 4, 4},
		{0xD3, "OUT d8", 2, 10, 10},
		{0xDB, "IN d8", 2, 10, 10},
		{0xF3, "DI", 1, 4, 4},
		{0xFB, "EI", 1, 4, 4},

		{0x08, "NOP*", 1, 4, 4},
		{0x10, "NOP*", 1, 4, 4},
		{0x18, "NOP*", 1, 4, 4},
		{0x20, "NOP*", 1, 4, 4},
		{0x28, "NOP*", 1, 4, 4},
		{0x30, "NOP*", 1, 4, 4},
		{0x38, "NOP*", 1, 4, 4},
		{0xCB, "JMP*", 3, 10, 10},
		{0xD9, "RET*", 1, 10, 10},
		{0xDD, "CALL*", 3, 17, 17},
		{0xED, "CALL*", 3, 17, 17},
		{0xFD, "CALL*", 3, 17, 17},
	}
	for _, s := range singles {
		Opcodes[s.op] = OpInfo{s.name, s.size, s.cyc, s.tk}
	}
}

// condTaken evaluates one of the eight 3-bit condition codes against the
// current flags.
func (c *Cpu) condTaken(cc uint8) bool {
	switch cc {
	case 0:
		return !c.Flags.Zero
	case 1:
		return c.Flags.Zero
	case 2:
		return !c.Flags.Carry
	case 3:
		return c.Flags.Carry
	case 4:
		return !c.Flags.Parity
	case 5:
		return c.Flags.Parity
	case 6:
		return !c.Flags.Sign
	case 7:
		return c.Flags.Sign
	}
	return false
}

func condCycles(info OpInfo, taken bool) uint8 {
	if taken {
		return info.Taken
	}
	return info.Cycles
}

// execute dispatches and runs the single instruction at opcode op, which
// has already been fetched (for an accepted interrupt, PC was not advanced
// to obtain it). It returns the cycle count actually consumed, which for
// conditional opcodes differs between taken and not-taken.
func (c *Cpu) execute(op uint8, mem Memory, io IO) uint8 {
	info := Opcodes[op]

	switch {
	case op == 0x00, op == 0x08, op == 0x10, op == 0x18, op == 0x20, op == 0x28, op == 0x30, op == 0x38:
		// NOP and its undocumented aliases.

	case op == 0x76:
		c.Halted = true

	case op >= 0x40 && op <= 0x7F:
		c.Set(destField(op), c.Get(srcField(op), mem), mem)

	case op&0xC0 == 0x00 && op&0x07 == 0x06:
		r := Reg(mask.Range(op, mask.I3, mask.I5))
		c.Set(r, c.fetchByte(mem), mem)

	case op&0xC0 == 0x80:
		r := Reg(op & 0x07)
		v := c.Get(r, mem)
		switch (op >> 3) & 0x07 {
		case 0:
			c.ADD(v)
		case 1:
			c.ADC(v)
		case 2:
			c.SUB(v)
		case 3:
			c.SBB(v)
		case 4:
			c.ANA(v)
		case 5:
			c.XRA(v)
		case 6:
			c.ORA(v)
		case 7:
			c.CMP(v)
		}

	case op == 0xC6:
		c.ADD(c.fetchByte(mem))
	case op == 0xCE:
		c.ADC(c.fetchByte(mem))
	case op == 0xD6:
		c.SUB(c.fetchByte(mem))
	case op == 0xDE:
		c.SBB(c.fetchByte(mem))
	case op == 0xE6:
		c.ANA(c.fetchByte(mem))
	case op == 0xEE:
		c.XRA(c.fetchByte(mem))
	case op == 0xF6:
		c.ORA(c.fetchByte(mem))
	case op == 0xFE:
		c.CMP(c.fetchByte(mem))

	case op&0xC7 == 0x04:
		c.IncReg(Reg(mask.Range(op, mask.I3, mask.I5)), mem)
	case op&0xC7 == 0x05:
		c.DecReg(Reg(mask.Range(op, mask.I3, mask.I5)), mem)

	case op&0xCF == 0x03:
		c.IncPair(pairField(op))
	case op&0xCF == 0x0B:
		c.DecPair(pairField(op))
	case op&0xCF == 0x09:
		c.DAD(pairField(op))
	case op&0xCF == 0x01:
		c.SetPair(pairField(op), c.fetchWord(mem))

	case op == 0x02:
		mem.Write(c.BC(), c.A)
	case op == 0x12:
		mem.Write(c.DE(), c.A)
	case op == 0x0A:
		c.A = mem.Read(c.BC())
	case op == 0x1A:
		c.A = mem.Read(c.DE())

	case op == 0x22:
		writeWord(mem, c.fetchWord(mem), c.HL())
	case op == 0x2A:
		c.SetHL(readWord(mem, c.fetchWord(mem)))
	case op == 0x32:
		mem.Write(c.fetchWord(mem), c.A)
	case op == 0x3A:
		c.A = mem.Read(c.fetchWord(mem))

	case op == 0x07:
		c.RLC()
	case op == 0x0F:
		c.RRC()
	case op == 0x17:
		c.RAL()
	case op == 0x1F:
		c.RAR()
	case op == 0x27:
		c.DAA()
	case op == 0x2F:
		c.CMA()
	case op == 0x37:
		c.STC()
	case op == 0x3F:
		c.CMC()

	case op == 0xEB:
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L

	case op == 0xE3:
		lo := mem.Read(c.SP)
		hi := mem.Read(c.SP + 1)
		writeWord(mem, c.SP, c.HL())
		c.SetHL(uint16(hi)<<8 | uint16(lo))

	case op == 0xC3, op == 0xCB:
		c.PC = c.fetchWord(mem)

	case op == 0xCD, op == 0xDD, op == 0xED, op == 0xFD:
		target := c.fetchWord(mem)
		c.push(mem, c.PC)
		c.PC = target

	case op == 0xC9, op == 0xD9:
		c.PC = c.pop(mem)

	case op&0xC0 == 0xC0 && op&0x07 == 0x02: // conditional JMP
		target := c.fetchWord(mem)
		cc := (op >> 3) & 0x07
		taken := c.condTaken(cc)
		if taken {
			c.PC = target
		}
		return condCycles(info, taken)

	case op&0xC0 == 0xC0 && op&0x07 == 0x04: // conditional CALL
		target := c.fetchWord(mem)
		cc := (op >> 3) & 0x07
		taken := c.condTaken(cc)
		if taken {
			c.push(mem, c.PC)
			c.PC = target
		}
		return condCycles(info, taken)

	case op&0xC0 == 0xC0 && op&0x07 == 0x00: // conditional RET
		cc := (op >> 3) & 0x07
		taken := c.condTaken(cc)
		if taken {
			c.PC = c.pop(mem)
		}
		return condCycles(info, taken)

	case op&0xC7 == 0xC7:
		n := (op >> 3) & 0x07
		c.push(mem, c.PC)
		c.PC = uint16(n) * 8

	case op&0xCF == 0xC5:
		if rp := pairField(op); rp == PairSP {
			c.push(mem, c.PSW())
		} else {
			c.push(mem, c.GetPair(rp))
		}
	case op&0xCF == 0xC1:
		if rp := pairField(op); rp == PairSP {
			c.SetPSW(c.pop(mem))
		} else {
			c.SetPair(rp, c.pop(mem))
		}

	case op == 0xE9:
		c.PC = c.HL()
	case op == 0xF9:
		c.SP = c.HL()

	case op == 0xD3:
		io.Out(c.fetchByte(mem), c.A)
	case op == 0xDB:
		c.A = io.In(c.fetchByte(mem))

	case op == 0xF3:
		c.IntEnable = false
	case op == 0xFB:
		c.IntEnable = true
	}

	return info.Cycles
}
