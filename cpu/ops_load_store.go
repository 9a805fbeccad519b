package cpu

// regPtr names which register field a load/transfer/increment targets.
type regPtr int

const (
	regA regPtr = iota
	regX
	regY
	regS
)

func (c *Core) reg(r regPtr) *uint8 {
	switch r {
	case regA:
		return &c.A
	case regX:
		return &c.X
	case regY:
		return &c.Y
	default:
		return &c.S
	}
}

// loadRegister writes val into *reg and sets N/Z from it. Used directly by
// loads, transfers, and INX/DEX/INY/DEY (all single-tick once their operand
// is ready).
func (c *Core) loadRegister(r regPtr, val uint8) (bool, error) {
	*c.reg(r) = c.setNZ(val)
	return true, nil
}

func loadA(c *Core) (bool, error) { return c.loadRegister(regA, c.opVal) }
func loadX(c *Core) (bool, error) { return c.loadRegister(regX, c.opVal) }
func loadY(c *Core) (bool, error) { return c.loadRegister(regY, c.opVal) }

// store implements STA/STX/STY: a single write of a register to opAddr.
func store(reg regPtr) opFunc {
	return func(c *Core) (bool, error) {
		c.bus.Write(c.opAddr, *c.reg(reg))
		return true, nil
	}
}

// storeVal builds a store of a fixed byte rather than a register: it issues
// exactly one write to the addressing mode's computed address. No opcode
// table entry uses it; SAX has its own sax op.
func storeVal(val uint8) opFunc {
	return func(c *Core) (bool, error) {
		c.bus.Write(c.opAddr, val)
		return true, nil
	}
}

// inc/dec register helpers for INX/DEX/INY/DEY (NZ set, no carry/overflow).
func incReg(r regPtr) opFunc {
	return func(c *Core) (bool, error) { return c.loadRegister(r, *c.reg(r)+1) }
}
func decReg(r regPtr) opFunc {
	return func(c *Core) (bool, error) { return c.loadRegister(r, *c.reg(r)-1) }
}

// transfer implements TAX/TXA/TAY/TYA/TSX (NZ set) and TXS (NZ untouched).
func transfer(from, to regPtr, setFlags bool) opFunc {
	return func(c *Core) (bool, error) {
		if setFlags {
			return c.loadRegister(to, *c.reg(from))
		}
		*c.reg(to) = *c.reg(from)
		return true, nil
	}
}

// flagOp sets or clears a single status bit for CLC/SEC/CLD/SED/CLI/SEI/CLV.
func flagOp(bit uint8, set bool) opFunc {
	return func(c *Core) (bool, error) {
		if set {
			c.P |= bit
		} else {
			c.P &^= bit
		}
		return true, nil
	}
}

// storeWithFlags is the shared body of INC/DEC: set N/Z from the new value,
// then write it.
func storeWithFlags(c *Core, val uint8) (bool, error) {
	c.setNZ(val)
	c.bus.Write(c.opAddr, val)
	return true, nil
}

func incMem(c *Core) (bool, error) { return storeWithFlags(c, c.opVal+1) }
func decMem(c *Core) (bool, error) { return storeWithFlags(c, c.opVal-1) }
