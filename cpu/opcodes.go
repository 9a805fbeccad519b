package cpu

// opcodeTable is the compiled dispatch table: each of the 256 possible
// opcode bytes maps to either nil (no such instruction on any supported
// variant: the invalid-opcode path) or a single composed opFunc. It is
// built once at package init from the declarative list below rather than
// hand-written as a 256-arm switch, so the addressing mode and operation for
// each opcode are named once, in one place, and recombined instead of
// duplicated per opcode.
var opcodeTable [256]opFunc

// opEntry names one opcode's composition: an addressing mode paired with an
// operation (for load/RMW/store instructions), or a ready-made opFunc for
// everything else (implied/accumulator ops, branches, stack, jumps).
type opEntry struct {
	code uint8
	fn   opFunc
}

func init() {
	entries := []opEntry{
		{0x00, brk},
		{0x01, loadInstruction(addrIndirectX, ora)},
		{0x03, rmwInstruction(addrIndirectX, slo)},
		{0x04, loadInstruction(addrZP, nopRead)},
		{0x05, loadInstruction(addrZP, ora)},
		{0x06, rmwInstruction(addrZP, asl)},
		{0x07, rmwInstruction(addrZP, slo)},
		{0x08, php},
		{0x09, loadInstruction(addrImmediate, ora)},
		{0x0A, aslAcc},
		{0x0B, loadInstruction(addrImmediate, anc)},
		{0x0C, loadInstruction(addrAbsolute, nopRead)},
		{0x0D, loadInstruction(addrAbsolute, ora)},
		{0x0E, rmwInstruction(addrAbsolute, asl)},
		{0x0F, rmwInstruction(addrAbsolute, slo)},

		{0x10, branch(FlagN, false)},
		{0x11, loadInstruction(addrIndirectY, ora)},
		{0x13, rmwInstruction(addrIndirectY, slo)},
		{0x14, loadInstruction(addrZPX, nopRead)},
		{0x15, loadInstruction(addrZPX, ora)},
		{0x16, rmwInstruction(addrZPX, asl)},
		{0x17, rmwInstruction(addrZPX, slo)},
		{0x18, flagOp(FlagC, false)},
		{0x19, loadInstruction(addrAbsoluteY, ora)},
		{0x1A, nopImplied},
		{0x1B, rmwInstruction(addrAbsoluteY, slo)},
		{0x1C, loadInstruction(addrAbsoluteX, nopRead)},
		{0x1D, loadInstruction(addrAbsoluteX, ora)},
		{0x1E, rmwInstruction(addrAbsoluteX, asl)},
		{0x1F, rmwInstruction(addrAbsoluteX, slo)},

		{0x20, jsr},
		{0x21, loadInstruction(addrIndirectX, and)},
		{0x23, rmwInstruction(addrIndirectX, rla)},
		{0x24, loadInstruction(addrZP, bit)},
		{0x25, loadInstruction(addrZP, and)},
		{0x26, rmwInstruction(addrZP, rol)},
		{0x27, rmwInstruction(addrZP, rla)},
		{0x28, plp},
		{0x29, loadInstruction(addrImmediate, and)},
		{0x2A, rolAcc},
		{0x2B, loadInstruction(addrImmediate, anc)},
		{0x2C, loadInstruction(addrAbsolute, bit)},
		{0x2D, loadInstruction(addrAbsolute, and)},
		{0x2E, rmwInstruction(addrAbsolute, rol)},
		{0x2F, rmwInstruction(addrAbsolute, rla)},

		{0x30, branch(FlagN, true)},
		{0x31, loadInstruction(addrIndirectY, and)},
		{0x33, rmwInstruction(addrIndirectY, rla)},
		{0x34, loadInstruction(addrZPX, nopRead)},
		{0x35, loadInstruction(addrZPX, and)},
		{0x36, rmwInstruction(addrZPX, rol)},
		{0x37, rmwInstruction(addrZPX, rla)},
		{0x38, flagOp(FlagC, true)},
		{0x39, loadInstruction(addrAbsoluteY, and)},
		{0x3A, nopImplied},
		{0x3B, rmwInstruction(addrAbsoluteY, rla)},
		{0x3C, loadInstruction(addrAbsoluteX, nopRead)},
		{0x3D, loadInstruction(addrAbsoluteX, and)},
		{0x3E, rmwInstruction(addrAbsoluteX, rol)},
		{0x3F, rmwInstruction(addrAbsoluteX, rla)},

		{0x40, rti},
		{0x41, loadInstruction(addrIndirectX, eor)},
		{0x43, rmwInstruction(addrIndirectX, sre)},
		{0x44, loadInstruction(addrZP, nopRead)},
		{0x45, loadInstruction(addrZP, eor)},
		{0x46, rmwInstruction(addrZP, lsr)},
		{0x47, rmwInstruction(addrZP, sre)},
		{0x48, pha},
		{0x49, loadInstruction(addrImmediate, eor)},
		{0x4A, lsrAcc},
		{0x4B, loadInstruction(addrImmediate, alr)},
		{0x4C, jmpAbsolute},
		{0x4D, loadInstruction(addrAbsolute, eor)},
		{0x4E, rmwInstruction(addrAbsolute, lsr)},
		{0x4F, rmwInstruction(addrAbsolute, sre)},

		{0x50, branch(FlagV, false)},
		{0x51, loadInstruction(addrIndirectY, eor)},
		{0x53, rmwInstruction(addrIndirectY, sre)},
		{0x54, loadInstruction(addrZPX, nopRead)},
		{0x55, loadInstruction(addrZPX, eor)},
		{0x56, rmwInstruction(addrZPX, lsr)},
		{0x57, rmwInstruction(addrZPX, sre)},
		{0x58, flagOp(FlagI, false)},
		{0x59, loadInstruction(addrAbsoluteY, eor)},
		{0x5A, nopImplied},
		{0x5B, rmwInstruction(addrAbsoluteY, sre)},
		{0x5C, loadInstruction(addrAbsoluteX, nopRead)},
		{0x5D, loadInstruction(addrAbsoluteX, eor)},
		{0x5E, rmwInstruction(addrAbsoluteX, lsr)},
		{0x5F, rmwInstruction(addrAbsoluteX, sre)},

		{0x60, rts},
		{0x61, loadInstruction(addrIndirectX, adc)},
		{0x63, rmwInstruction(addrIndirectX, rra)},
		{0x64, loadInstruction(addrZP, nopRead)},
		{0x65, loadInstruction(addrZP, adc)},
		{0x66, rmwInstruction(addrZP, ror)},
		{0x67, rmwInstruction(addrZP, rra)},
		{0x68, pla},
		{0x69, loadInstruction(addrImmediate, adc)},
		{0x6A, rorAcc},
		{0x6B, loadInstruction(addrImmediate, arr)},
		{0x6C, jmpIndirect},
		{0x6D, loadInstruction(addrAbsolute, adc)},
		{0x6E, rmwInstruction(addrAbsolute, ror)},
		{0x6F, rmwInstruction(addrAbsolute, rra)},

		{0x70, branch(FlagV, true)},
		{0x71, loadInstruction(addrIndirectY, adc)},
		{0x73, rmwInstruction(addrIndirectY, rra)},
		{0x74, loadInstruction(addrZPX, nopRead)},
		{0x75, loadInstruction(addrZPX, adc)},
		{0x76, rmwInstruction(addrZPX, ror)},
		{0x77, rmwInstruction(addrZPX, rra)},
		{0x78, flagOp(FlagI, true)},
		{0x79, loadInstruction(addrAbsoluteY, adc)},
		{0x7A, nopImplied},
		{0x7B, rmwInstruction(addrAbsoluteY, rra)},
		{0x7C, loadInstruction(addrAbsoluteX, nopRead)},
		{0x7D, loadInstruction(addrAbsoluteX, adc)},
		{0x7E, rmwInstruction(addrAbsoluteX, ror)},
		{0x7F, rmwInstruction(addrAbsoluteX, rra)},

		{0x80, loadInstruction(addrImmediate, nopRead)},
		{0x81, storeInstruction(addrIndirectX, store(regA))},
		{0x82, loadInstruction(addrImmediate, nopRead)},
		{0x83, storeInstruction(addrIndirectX, sax)},
		{0x84, storeInstruction(addrZP, store(regY))},
		{0x85, storeInstruction(addrZP, store(regA))},
		{0x86, storeInstruction(addrZP, store(regX))},
		{0x87, storeInstruction(addrZP, sax)},
		{0x88, decReg(regY)},
		{0x89, loadInstruction(addrImmediate, nopRead)},
		{0x8A, transfer(regX, regA, true)},
		{0x8C, storeInstruction(addrAbsolute, store(regY))},
		{0x8D, storeInstruction(addrAbsolute, store(regA))},
		{0x8E, storeInstruction(addrAbsolute, store(regX))},
		{0x8F, storeInstruction(addrAbsolute, sax)},

		{0x90, branch(FlagC, false)},
		{0x91, storeInstruction(addrIndirectY, store(regA))},
		{0x94, storeInstruction(addrZPX, store(regY))},
		{0x95, storeInstruction(addrZPX, store(regA))},
		{0x96, storeInstruction(addrZPY, store(regX))},
		{0x97, storeInstruction(addrZPY, sax)},
		{0x98, transfer(regY, regA, true)},
		{0x99, storeInstruction(addrAbsoluteY, store(regA))},
		{0x9A, transfer(regX, regS, false)},
		{0x9D, storeInstruction(addrAbsoluteX, store(regA))},

		{0xA0, loadInstruction(addrImmediate, loadY)},
		{0xA1, loadInstruction(addrIndirectX, loadA)},
		{0xA2, loadInstruction(addrImmediate, loadX)},
		{0xA3, loadInstruction(addrIndirectX, lax)},
		{0xA4, loadInstruction(addrZP, loadY)},
		{0xA5, loadInstruction(addrZP, loadA)},
		{0xA6, loadInstruction(addrZP, loadX)},
		{0xA7, loadInstruction(addrZP, lax)},
		{0xA8, transfer(regA, regY, true)},
		{0xA9, loadInstruction(addrImmediate, loadA)},
		{0xAA, transfer(regA, regX, true)},
		{0xAC, loadInstruction(addrAbsolute, loadY)},
		{0xAD, loadInstruction(addrAbsolute, loadA)},
		{0xAE, loadInstruction(addrAbsolute, loadX)},
		{0xAF, loadInstruction(addrAbsolute, lax)},

		{0xB0, branch(FlagC, true)},
		{0xB1, loadInstruction(addrIndirectY, loadA)},
		{0xB3, loadInstruction(addrIndirectY, lax)},
		{0xB4, loadInstruction(addrZPX, loadY)},
		{0xB5, loadInstruction(addrZPX, loadA)},
		{0xB6, loadInstruction(addrZPY, loadX)},
		{0xB7, loadInstruction(addrZPY, lax)},
		{0xB8, flagOp(FlagV, false)},
		{0xB9, loadInstruction(addrAbsoluteY, loadA)},
		{0xBA, transfer(regS, regX, true)},
		{0xBC, loadInstruction(addrAbsoluteX, loadY)},
		{0xBD, loadInstruction(addrAbsoluteX, loadA)},
		{0xBE, loadInstruction(addrAbsoluteY, loadX)},
		{0xBF, loadInstruction(addrAbsoluteY, lax)},

		{0xC0, loadInstruction(addrImmediate, compareY)},
		{0xC1, loadInstruction(addrIndirectX, compareA)},
		{0xC2, loadInstruction(addrImmediate, nopRead)},
		{0xC3, rmwInstruction(addrIndirectX, dcp)},
		{0xC4, loadInstruction(addrZP, compareY)},
		{0xC5, loadInstruction(addrZP, compareA)},
		{0xC6, rmwInstruction(addrZP, decMem)},
		{0xC7, rmwInstruction(addrZP, dcp)},
		{0xC8, incReg(regY)},
		{0xC9, loadInstruction(addrImmediate, compareA)},
		{0xCA, decReg(regX)},
		{0xCB, loadInstruction(addrImmediate, axs)},
		{0xCC, loadInstruction(addrAbsolute, compareY)},
		{0xCD, loadInstruction(addrAbsolute, compareA)},
		{0xCE, rmwInstruction(addrAbsolute, decMem)},
		{0xCF, rmwInstruction(addrAbsolute, dcp)},

		{0xD0, branch(FlagZ, false)},
		{0xD1, loadInstruction(addrIndirectY, compareA)},
		{0xD3, rmwInstruction(addrIndirectY, dcp)},
		{0xD4, loadInstruction(addrZPX, nopRead)},
		{0xD5, loadInstruction(addrZPX, compareA)},
		{0xD6, rmwInstruction(addrZPX, decMem)},
		{0xD7, rmwInstruction(addrZPX, dcp)},
		{0xD8, flagOp(FlagD, false)},
		{0xD9, loadInstruction(addrAbsoluteY, compareA)},
		{0xDA, nopImplied},
		{0xDB, rmwInstruction(addrAbsoluteY, dcp)},
		{0xDC, loadInstruction(addrAbsoluteX, nopRead)},
		{0xDD, loadInstruction(addrAbsoluteX, compareA)},
		{0xDE, rmwInstruction(addrAbsoluteX, decMem)},
		{0xDF, rmwInstruction(addrAbsoluteX, dcp)},

		{0xE0, loadInstruction(addrImmediate, compareX)},
		{0xE1, loadInstruction(addrIndirectX, sbc)},
		{0xE2, loadInstruction(addrImmediate, nopRead)},
		{0xE3, rmwInstruction(addrIndirectX, isc)},
		{0xE4, loadInstruction(addrZP, compareX)},
		{0xE5, loadInstruction(addrZP, sbc)},
		{0xE6, rmwInstruction(addrZP, incMem)},
		{0xE7, rmwInstruction(addrZP, isc)},
		{0xE8, incReg(regX)},
		{0xE9, loadInstruction(addrImmediate, sbc)},
		{0xEA, nopImplied},
		{0xEB, loadInstruction(addrImmediate, sbc)},
		{0xEC, loadInstruction(addrAbsolute, compareX)},
		{0xED, loadInstruction(addrAbsolute, sbc)},
		{0xEE, rmwInstruction(addrAbsolute, incMem)},
		{0xEF, rmwInstruction(addrAbsolute, isc)},

		{0xF0, branch(FlagZ, true)},
		{0xF1, loadInstruction(addrIndirectY, sbc)},
		{0xF3, rmwInstruction(addrIndirectY, isc)},
		{0xF4, loadInstruction(addrZPX, nopRead)},
		{0xF5, loadInstruction(addrZPX, sbc)},
		{0xF6, rmwInstruction(addrZPX, incMem)},
		{0xF7, rmwInstruction(addrZPX, isc)},
		{0xF8, flagOp(FlagD, true)},
		{0xF9, loadInstruction(addrAbsoluteY, sbc)},
		{0xFA, nopImplied},
		{0xFB, rmwInstruction(addrAbsoluteY, isc)},
		{0xFC, loadInstruction(addrAbsoluteX, nopRead)},
		{0xFD, loadInstruction(addrAbsoluteX, sbc)},
		{0xFE, rmwInstruction(addrAbsoluteX, incMem)},
		{0xFF, rmwInstruction(addrAbsoluteX, isc)},
	}

	for _, e := range entries {
		opcodeTable[e.code] = e.fn
	}
	for _, k := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		opcodeTable[k] = kil
	}
	// XAA, AHX, TAS, SHX, SHY, LAS and the immediate LAX (OAL) combine a bus
	// conflict with internal register state in a way that differs even
	// between individual chips of the same model; no entry is installed for
	// them, so they fall through the normal invalid-opcode path.
}
