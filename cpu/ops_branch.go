package cpu

import "fmt"

// branchNOP is the not-taken path: read the offset, bump PC, done. 2 cycles
// total.
func branchNOP(c *Core) (bool, error) {
	if c.opTick <= 1 || c.opTick > 3 {
		return true, InvalidState{Reason: fmt.Sprintf("branch: bad opTick %d", c.opTick)}
	}
	c.PC++
	return true, nil
}

// performBranch is the taken path. Same-page: 3 cycles. Page-crossed: 4
// cycles, with a dummy read at the wrong-high intermediate PC.
func performBranch(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidState{Reason: fmt.Sprintf("branch: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.PC++
		return false, nil
	case c.opTick == 3:
		if !c.prevSkipInterrupt {
			c.skipInterrupt = true
		}
		c.opAddr = c.PC // stash the pre-add PC for the tick-4 fixup
		c.PC = (c.PC & 0xFF00) + uint16(uint8(c.PC)+c.opVal)
		_ = c.bus.Read(c.PC) // always reads at the (possibly wrong-page) new PC
		return c.PC == c.opAddr+uint16(int16(int8(c.opVal))), nil
	}
	// tick 4: only reached on a page crossing.
	c.PC = c.opAddr + uint16(int16(int8(c.opVal)))
	_ = c.bus.Read(c.PC)
	return true, nil
}

// branch builds the condition-tested branch operation for one of the eight
// conditional branch opcodes (BCC, BCS, BEQ, BNE, BMI, BPL, BVC, BVS).
func branch(flag uint8, set bool) opFunc {
	return func(c *Core) (bool, error) {
		taken := c.P&flag != 0
		if !set {
			taken = !taken
		}
		if taken {
			return performBranch(c)
		}
		return branchNOP(c)
	}
}
