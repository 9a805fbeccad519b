package cpu

import "fmt"

// pushStack writes val to the stack page and decrements S.
func (c *Core) pushStack(val uint8) {
	c.bus.Write(c.pushAddr(), val)
	c.S--
}

// popStack increments S and reads the newly exposed stack byte.
func (c *Core) popStack() uint8 {
	c.S++
	return c.bus.Read(c.pushAddr())
}

// bootTick runs one tick of the 7-cycle power-on/reset sequence: two
// dummy reads at the current PC, three dummy "pushes" (S decrements with no
// bus write: real hardware reads, since R/W is asserted read during
// reset), then the reset vector is read and loaded into PC.
func (c *Core) bootTick() (bool, error) {
	c.opTick++
	switch {
	case c.opTick < 1 || c.opTick > 7:
		return true, InvalidState{Reason: fmt.Sprintf("boot: bad tick %d", c.opTick)}
	case c.opTick == 1, c.opTick == 2:
		_ = c.bus.Read(c.PC)
		if c.opTick == 1 {
			c.P |= FlagI
			c.halted = false
			c.haltOpcode = 0
			c.irqClass = irqNone
		}
		return false, nil
	case c.opTick >= 3 && c.opTick <= 5:
		c.S--
		return false, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(ResetVector)
		return false, nil
	}
	// tick 7
	c.PC = uint16(c.bus.Read(ResetVector+1))<<8 | uint16(c.opVal)
	c.opTick = 0
	return true, nil
}

// runInterrupt implements the shared tail of BRK, IRQ entry, and NMI entry:
// push PCH, PCL, flags (with B set only for a software interrupt),
// then load PC from addr/addr+1.
func (c *Core) runInterrupt(addr uint16, hardware bool) (bool, error) {
	switch {
	case c.opTick < 1 || c.opTick > 7:
		return true, InvalidState{Reason: fmt.Sprintf("runInterrupt: bad tick %d", c.opTick)}
	case c.opTick == 2:
		if !hardware {
			c.PC++
		}
		return false, nil
	case c.opTick == 3:
		c.pushStack(uint8(c.PC >> 8))
		return false, nil
	case c.opTick == 4:
		c.pushStack(uint8(c.PC))
		return false, nil
	case c.opTick == 5:
		push := c.P | FlagE | FlagB
		if hardware {
			push &^= FlagB
		}
		if c.variant == CMOS {
			c.P &^= FlagD
		}
		c.P |= FlagI
		c.pushStack(push)
		return false, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(addr)
		return false, nil
	}
	// tick 7
	c.PC = uint16(c.bus.Read(addr+1))<<8 | uint16(c.opVal)
	if hardware && !c.prevSkipInterrupt {
		// Execute one more instruction before the next interrupt poll can
		// fire again, matching the real pipelining delay.
		c.skipInterrupt = true
	}
	return true, nil
}
