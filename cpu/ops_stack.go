package cpu

import "fmt"

// pha: push A. 3 cycles: fetch already done on tick 1/2, push on tick 3.
func pha(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 3:
		return true, InvalidState{Reason: fmt.Sprintf("PHA: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	}
	c.pushStack(c.A)
	return true, nil
}

// pla: pull A, set NZ. 4 cycles: dummy stack read on tick 3, real pull
// (and NZ) on tick 4.
func pla(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidState{Reason: fmt.Sprintf("PLA: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		_ = c.popStack() // dummy stack read; value ignored and S restored
		c.S--
		return false, nil
	}
	c.A = c.setNZ(c.popStack())
	return true, nil
}

// php: push P with both B and E forced set.
func php(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 3:
		return true, InvalidState{Reason: fmt.Sprintf("PHP: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	}
	c.pushStack(c.P | FlagE | FlagB)
	return true, nil
}

// plp: pull P, forcing E set and B clear (B isn't a real CPU bit; it only
// ever exists in the pushed byte).
func plp(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidState{Reason: fmt.Sprintf("PLP: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		_ = c.popStack()
		c.S--
		return false, nil
	}
	c.P = (c.popStack() | FlagE) &^ FlagB
	return true, nil
}

// jmpAbsolute: JMP a. PC := operand.
func jmpAbsolute(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 3:
		return true, InvalidState{Reason: fmt.Sprintf("JMP: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.PC++
		return false, nil
	}
	hi := c.bus.Read(c.PC)
	c.PC = uint16(hi)<<8 | uint16(c.opVal)
	return true, nil
}

// jmpIndirect: JMP (a), reproducing the page-wrap bug where the pointer's
// high byte read wraps within the same page on NMOS parts. CMOS fixes it.
func jmpIndirect(c *Core) (bool, error) {
	if c.opTick < 4 {
		return addrAbsolute(c, kindLoad)
	}
	switch {
	case (c.variant != CMOS && c.opTick > 5) || c.opTick > 6:
		return true, InvalidState{Reason: fmt.Sprintf("JMP indirect: bad opTick %d", c.opTick)}
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		return false, nil
	case c.opTick == 5:
		wrapped := (c.opAddr & 0xFF00) + uint16(uint8(c.opAddr)+1)
		hi := c.bus.Read(wrapped)
		if c.variant == CMOS {
			c.opAddr++ // CMOS takes a genuine +1 here, so tick 6 reads correctly
			return false, nil
		}
		c.PC = uint16(hi)<<8 | uint16(c.opVal)
		return true, nil
	}
	hi := c.bus.Read(c.opAddr)
	c.PC = uint16(hi)<<8 | uint16(c.opVal)
	return true, nil
}

// jsr: JSR a. Pushes the address of the last byte of the JSR instruction
// (current PC points at it), high byte first.
func jsr(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidState{Reason: fmt.Sprintf("JSR: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		c.PC++
		return false, nil
	case c.opTick == 3:
		_ = c.popStack() // internal stack-correction cycle; value unused
		c.S--
		return false, nil
	case c.opTick == 4:
		c.pushStack(uint8(c.PC >> 8))
		return false, nil
	case c.opTick == 5:
		c.pushStack(uint8(c.PC))
		return false, nil
	}
	hi := c.bus.Read(c.PC)
	c.PC = uint16(hi)<<8 | uint16(c.opVal)
	return true, nil
}

// rts: RTS. Pulls PCL then PCH, then a dummy read at the resulting PC
// before incrementing past the JSR's last byte.
func rts(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidState{Reason: fmt.Sprintf("RTS: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		_ = c.popStack()
		c.S--
		return false, nil
	case c.opTick == 4:
		c.opVal = c.popStack()
		return false, nil
	case c.opTick == 5:
		c.PC = uint16(c.popStack())<<8 | uint16(c.opVal)
		return false, nil
	}
	_ = c.bus.Read(c.PC)
	c.PC++
	return true, nil
}

// brk: BRK. 2-byte instruction: the byte after the opcode is read and
// discarded, then the shared interrupt-entry tail runs pushing B=1.
func brk(c *Core) (bool, error) {
	vec := IRQVector
	if c.irqClass == irqNMI {
		vec = NMIVector
	}
	hardware := c.irqClass != irqNone
	done, err := c.runInterrupt(vec, hardware)
	if done {
		c.irqClass = irqNone // BRK always eats any pending interrupt it raced with
	}
	return done, err
}

// rti: RTI. Pulls P (forcing E=1,B=0), then PCL, then PCH.
func rti(c *Core) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidState{Reason: fmt.Sprintf("RTI: bad opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		_ = c.popStack()
		c.S--
		return false, nil
	case c.opTick == 4:
		c.P = (c.popStack() | FlagE) &^ FlagB
		return false, nil
	case c.opTick == 5:
		c.opVal = c.popStack()
		return false, nil
	}
	c.PC = uint16(c.popStack())<<8 | uint16(c.opVal)
	return true, nil
}
