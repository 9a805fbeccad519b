package cpu

import "fmt"

// instructionKind tells an addressing-mode micro-machine what the operation
// following it needs: a load leaves opVal holding the operand, an RMW leaves
// the original value in opVal and writes it back unmodified before the
// operation supplies the new value, and a store only needs opAddr.
type instructionKind int

const (
	kindLoad instructionKind = iota
	kindRMW
	kindStore
)

// addrFunc is a single-tick step of an addressing-mode micro-machine. It is
// invoked once per Cycle() while addrDone is false, dispatching on opTick
// internally rather than chaining per-step closures. Returns true once the
// addressing phase is complete (for a store, once the address is ready; the
// write itself happens on the following tick).
type addrFunc func(c *Core, kind instructionKind) (bool, error)

// addrImmediate: #i. One read at PC (already done generically on tick 2),
// post-incrementing PC; opVal is the fetched operand.
func addrImmediate(c *Core, kind instructionKind) (bool, error) {
	if c.opTick != 2 {
		return true, InvalidState{Reason: fmt.Sprintf("addrImmediate: bad opTick %d", c.opTick)}
	}
	c.PC++
	return true, nil
}

// addrZP: d. Zero page: opVal already holds the address byte (tick 2);
// tick 3 fetches the operand from it.
func addrZP(c *Core, kind instructionKind) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidState{Reason: fmt.Sprintf("addrZP: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return kind == kindStore, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.opAddr)
		return kind != kindRMW, nil
	}
	// tick 4: RMW dummy write-back of the unmodified value.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrZPX: d,x.
func addrZPX(c *Core, kind instructionKind) (bool, error) {
	return addrZPXY(c, kind, c.X)
}

// addrZPY: d,y.
func addrZPY(c *Core, kind instructionKind) (bool, error) {
	return addrZPXY(c, kind, c.Y)
}

// addrZPXY implements zero page,X and zero page,Y: a dummy read of the
// unindexed address precedes the wrapped-within-page indexed read.
func addrZPXY(c *Core, kind instructionKind, reg uint8) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 5:
		return true, InvalidState{Reason: fmt.Sprintf("addrZPXY: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		_ = c.bus.Read(c.opAddr) // dummy read at the unindexed address
		c.opAddr = uint16(c.opVal + reg)
		return kind == kindStore, nil
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		return kind != kindRMW, nil
	}
	// tick 5: RMW dummy write-back.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrIndirectX: (d,x).
func addrIndirectX(c *Core, kind instructionKind) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 7:
		return true, InvalidState{Reason: fmt.Sprintf("addrIndirectX: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		_ = c.bus.Read(c.opAddr) // dummy read at the pointer
		c.opAddr = uint16(c.opVal + c.X)
		return false, nil
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		c.opAddr = uint16(uint8(c.opAddr) + 1)
		return false, nil
	case c.opTick == 5:
		c.opAddr = uint16(c.bus.Read(c.opAddr))<<8 | uint16(c.opVal)
		return kind == kindStore, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(c.opAddr)
		return kind != kindRMW, nil
	}
	// tick 7: RMW dummy write-back.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrIndirectY: (d),y.
func addrIndirectY(c *Core, kind instructionKind) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 7:
		return true, InvalidState{Reason: fmt.Sprintf("addrIndirectY: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.opAddr)
		c.opAddr = uint16(uint8(c.opAddr) + 1)
		return false, nil
	case c.opTick == 4:
		base := uint16(c.bus.Read(c.opAddr))<<8 | uint16(c.opVal)
		eff := (base & 0xFF00) + uint16(uint8(base)+c.Y)
		c.opVal = 0
		if eff != base+uint16(c.Y) {
			c.opVal = 1 // crossed a page; remember to fix up hi byte next tick
		}
		c.opAddr = eff
		return false, nil
	case c.opTick == 5:
		crossed := c.opVal != 0
		c.opVal = c.bus.Read(c.opAddr) // dummy read at the wrong-page address if crossed
		if crossed {
			c.opAddr += 0x0100
			return kind == kindStore, nil
		}
		return kind != kindRMW, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(c.opAddr)
		return kind != kindRMW, nil
	}
	// tick 7: RMW dummy write-back.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrAbsolute: a.
func addrAbsolute(c *Core, kind instructionKind) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 5:
		return true, InvalidState{Reason: fmt.Sprintf("addrAbsolute: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.PC)
		c.PC++
		c.opAddr |= uint16(c.opVal) << 8
		return kind == kindStore, nil
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		return kind != kindRMW, nil
	}
	// tick 5: RMW dummy write-back.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrAbsoluteX: a,x.
func addrAbsoluteX(c *Core, kind instructionKind) (bool, error) {
	return addrAbsoluteXY(c, kind, c.X)
}

// addrAbsoluteY: a,y.
func addrAbsoluteY(c *Core, kind instructionKind) (bool, error) {
	return addrAbsoluteXY(c, kind, c.Y)
}

// addrAbsoluteXY implements absolute,X and absolute,Y. Stores always pay the
// dummy-read-on-possible-crossing cycle; loads only pay it when the index
// actually crosses a page.
func addrAbsoluteXY(c *Core, kind instructionKind, reg uint8) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidState{Reason: fmt.Sprintf("addrAbsoluteXY: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.PC)
		c.PC++
		base := c.opAddr | uint16(c.opVal)<<8
		eff := (base & 0xFF00) + uint16(uint8(base)+reg)
		c.opVal = 0
		if eff != base+uint16(reg) {
			c.opVal = 1
		}
		c.opAddr = eff
		return false, nil
	case c.opTick == 4:
		crossed := c.opVal != 0
		c.opVal = c.bus.Read(c.opAddr) // possibly at the wrong (pre-fixup) address
		done := true
		if crossed {
			c.opAddr += 0x0100
			if kind == kindLoad {
				done = false // re-read at the fixed-up address next tick
			}
		}
		if kind == kindRMW {
			done = false // RMW always takes the extra tick regardless of crossing
		}
		return done, nil
	case c.opTick == 5:
		c.opVal = c.bus.Read(c.opAddr)
		return kind != kindRMW, nil
	}
	// tick 6: RMW dummy write-back.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}
