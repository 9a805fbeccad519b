package cpu

// The RMW operations below run on the tick after the addressing-mode
// micro-machine has already written the unmodified opVal back to opAddr
// (the documented "write original, then write modified" bus quirk); they
// issue the final write themselves.

func asl(c *Core) (bool, error) {
	res := c.opVal << 1
	c.bus.Write(c.opAddr, res)
	c.setCarry(uint16(c.opVal) << 1)
	c.setNZ(res)
	return true, nil
}

func lsr(c *Core) (bool, error) {
	res := c.opVal >> 1
	c.bus.Write(c.opAddr, res)
	c.setCarry(uint16(c.opVal&0x01) << 8)
	c.setNZ(res)
	return true, nil
}

func rol(c *Core) (bool, error) {
	carry := c.P & FlagC
	res := c.opVal<<1 | carry
	c.bus.Write(c.opAddr, res)
	c.setCarry(uint16(c.opVal) << 1)
	c.setNZ(res)
	return true, nil
}

func ror(c *Core) (bool, error) {
	carry := (c.P & FlagC) << 7
	res := c.opVal>>1 | carry
	c.bus.Write(c.opAddr, res)
	c.setCarry((uint16(c.opVal) << 8) & 0x0100)
	c.setNZ(res)
	return true, nil
}

// Accumulator-form shift/rotate ops skip the bus entirely and mutate A.

func aslAcc(c *Core) (bool, error) {
	c.setCarry(uint16(c.A) << 1)
	c.A = c.setNZ(c.A << 1)
	return true, nil
}

func lsrAcc(c *Core) (bool, error) {
	c.setCarry(uint16(c.A&0x01) << 8)
	c.A = c.setNZ(c.A >> 1)
	return true, nil
}

func rolAcc(c *Core) (bool, error) {
	carry := c.P & FlagC
	c.setCarry(uint16(c.A) << 1)
	c.A = c.setNZ(c.A<<1 | carry)
	return true, nil
}

func rorAcc(c *Core) (bool, error) {
	carry := (c.P & FlagC) << 7
	c.setCarry((uint16(c.A) << 8) & 0x0100)
	c.A = c.setNZ(c.A>>1 | carry)
	return true, nil
}
