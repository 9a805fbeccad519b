package cpu

// loadInstruction composes an addressing-mode micro-machine with a load-type
// operation: once addrDone is reached it invokes op in the same tick (no
// addressing mode costs an extra cycle beyond fetching its operand).
func loadInstruction(addr addrFunc, op opFunc) opFunc {
	return func(c *Core) (bool, error) {
		var err error
		if !c.addrDone {
			c.addrDone, err = addr(c, kindLoad)
		}
		if err != nil {
			return true, err
		}
		if c.addrDone {
			return op(c)
		}
		return false, nil
	}
}

// rmwInstruction composes an addressing-mode micro-machine with a
// read-modify-write operation. The addressing mode performs the dummy
// write-back of the unmodified value; op runs on the following tick to issue
// the real write.
func rmwInstruction(addr addrFunc, op opFunc) opFunc {
	return func(c *Core) (bool, error) {
		if !c.addrDone {
			done, err := addr(c, kindRMW)
			c.addrDone = done
			return false, err
		}
		return op(c)
	}
}

// storeInstruction composes an addressing-mode micro-machine with a store of
// a fixed value (a register for STA/STX/STY, or a computed byte for the
// undocumented store combos) to the computed address, on the tick after the
// addressing mode signals it has the address ready.
func storeInstruction(addr addrFunc, op opFunc) opFunc {
	return func(c *Core) (bool, error) {
		if !c.addrDone {
			done, err := addr(c, kindStore)
			c.addrDone = done
			return false, err
		}
		return op(c)
	}
}
