// Package cpu implements the cycle-accurate execution core of a 6502-family
// CPU: a Cycle() primitive that performs exactly one bus access per call and
// advances an internal microcode state machine one step at a time, so that
// other pixel- or sample-clocked hardware sharing the bus can observe CPU
// state between instructions, not just at instruction boundaries.
package cpu

import (
	"fmt"

	"github.com/tjader/sixfiveohtwo/irq"
)

// CoreDef configures a new Core.
type CoreDef struct {
	// Variant selects the 65xx family member being emulated.
	Variant Variant
	// Bus is the memory collaborator driven by Cycle(). Required.
	Bus Bus
	// RNG optionally scrambles register contents at power-on/reset. If nil,
	// registers are zeroed instead (deterministic "uninitialized memory").
	RNG RNG
	// Irq, Nmi, Rdy are optional external level/edge sources, e.g. a PIA or
	// cartridge mapper already shaped as an irq.Sender. They're ORed with
	// the core's own SetInterrupt/NMI/Halt API at poll time.
	Irq, Nmi, Rdy irq.Sender
}

// Core is a 65xx CPU execution core driven one bus cycle at a time.
type Core struct {
	state

	variant Variant
	bus     Bus
	rng     RNG
	irqSrc  irq.Sender
	nmiSrc  irq.Sender
	rdySrc  irq.Sender

	irqLevel   bool // direct SetInterrupt(bool) level, ORed with irqSrc.Raised()
	nmiPending bool // direct NMI() edge latch, one-shot until promoted at a poll

	op     uint8  // opcode of the instruction currently executing
	opVal  uint8  // byte immediately following the opcode, or the fetched operand
	opAddr uint16 // effective address computed by the current addressing mode

	opTick   int  // 1-based tick counter within the current instruction
	opDone   bool // current instruction has completed all its ticks
	addrDone bool // current instruction's addressing-mode phase has completed

	booting bool // the 7-cycle boot micro-machine is in flight, driven by Cycle()

	runningInterrupt bool
	irqClass         irqClass // which vector the current instruction boundary is servicing

	skipInterrupt     bool // skip interrupt processing on the next instruction (branch pipeline quirk)
	prevSkipInterrupt bool

	halted     bool
	haltOpcode uint8

	lastFetchPC uint16 // PC at the start of the most recently fetched instruction

	invalidOpcode func(opcode uint8)
}

// irqClass enumerates which interrupt vector (if any) the core is currently
// servicing at an instruction boundary.
type irqClass int

const (
	irqNone irqClass = iota
	irqIRQ
	irqNMI
)

// New constructs a Core in powered-on state. The bus is required; RNG and
// the three level/edge collaborators are optional.
func New(def *CoreDef) (*Core, error) {
	if def.Variant <= variantUnimplemented || def.Variant >= variantMax {
		return nil, InvalidState{Reason: fmt.Sprintf("variant %d is invalid", def.Variant)}
	}
	if def.Bus == nil {
		return nil, InvalidState{Reason: "Bus must be non-nil"}
	}
	c := &Core{
		variant: def.Variant,
		bus:     def.Bus,
		rng:     def.RNG,
		irqSrc:  def.Irq,
		nmiSrc:  def.Nmi,
		rdySrc:  def.Rdy,
	}
	if err := c.PowerOn(); err != nil {
		return nil, err
	}
	return c, nil
}

// randByte returns a random byte from the RNG collaborator, or 0 if absent.
func (c *Core) randByte() uint8 {
	if c.rng == nil {
		return 0
	}
	return uint8(c.rng.Int(255))
}

// PowerOn scrambles A, X, Y, P and the pre-vector PC (via the RNG
// collaborator, or zeroes them if absent) and then runs the boot
// micro-machine to completion through Cycle() itself. S and PC are set by
// the boot sequence (S=0xFD, PC from the reset vector). Called once from
// New(), so it must return a fully booted Core: there is no caller yet able
// to pump Cycle() from outside the constructor.
func (c *Core) PowerOn() error {
	c.A = c.randByte()
	c.X = c.randByte()
	c.Y = c.randByte()
	c.PC = uint16(c.randByte())<<8 | uint16(c.randByte())
	c.P = FlagE
	if c.rng != nil && c.rng.Int(1) == 1 {
		c.P |= FlagD
	}
	c.booting = true
	for c.booting {
		if err := c.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// Reset arms the boot micro-machine (the 7-cycle reset sequence) but, unlike
// PowerOn, does not run it to completion: the host must pump Cycle() for the
// next 7 cycles to actually complete it, one bus access at a time, the same
// as any other instruction boundary. This lets other bus-sharing hardware
// observe every reset cycle instead of only the state after all 7 have
// already happened. PC is scrambled (via the RNG collaborator, or zeroed if
// absent) until the boot sequence loads it from the reset vector; S is
// decremented three times and the I flag set by the boot sequence; A, X, Y
// and the other flags are left untouched, matching real hardware.
func (c *Core) Reset() error {
	c.PC = uint16(c.randByte())<<8 | uint16(c.randByte())
	c.opTick = 0
	c.opDone = false
	c.addrDone = false
	c.halted = false
	c.haltOpcode = 0
	c.irqClass = irqNone
	c.runningInterrupt = false
	c.booting = true
	return nil
}

// SetInterrupt raises or lowers the level-sensitive IRQ line. Asserting it
// has no effect while the I flag is set; lowering it before the next poll
// cancels a not-yet-serviced request (level-triggered, re-evaluated on
// every poll).
func (c *Core) SetInterrupt(b bool) {
	c.irqLevel = b
}

// IsInterrupt reports the current level of the IRQ line this core was told
// about via SetInterrupt (does not reflect an injected Irq collaborator).
func (c *Core) IsInterrupt() bool {
	return c.irqLevel
}

// NMI raises the edge-triggered NMI latch. It is sampled (and cleared) at
// the next interrupt poll, which always promotes it over a pending IRQ.
func (c *Core) NMI() {
	c.nmiPending = true
}

// Halt freezes execution: subsequent Cycle() calls stop advancing. Mirrors
// the real CPU's RDY-held-high behavior: the freeze takes effect at the next
// tick boundary rather than distinguishing the pending tick's read/write
// kind, which only matters when SYNC is also held.
func (c *Core) Halt() {
	c.halted = true
}

// Resume unfreezes execution previously stopped by Halt(). Does not clear a
// halt caused by executing a KIL/HLT opcode: such a halt requires a Reset.
func (c *Core) Resume() {
	if c.haltOpcode == 0 {
		c.halted = false
	}
}

// IsHalt reports whether the core is currently frozen (by Halt(), RDY, or a
// KIL opcode).
func (c *Core) IsHalt() bool {
	return c.halted || (c.rdySrc != nil && c.rdySrc.Raised())
}

// SetInvalidInstructionCallback installs a hook invoked when the fetch
// stage decodes an opcode with no table entry. The callback must not panic
// back into the core; to stop emulation it should have the host call
// Halt() afterward.
func (c *Core) SetInvalidInstructionCallback(fn func(opcode uint8)) {
	c.invalidOpcode = fn
}

// GetInvalidInstructionCallback returns the currently installed invalid
// instruction callback, or nil.
func (c *Core) GetInvalidInstructionCallback() func(opcode uint8) {
	return c.invalidOpcode
}

// GetLastInstructionPointer returns PC as of the start of the most recently
// fetched instruction, for host disassembly/debugging use.
func (c *Core) GetLastInstructionPointer() uint16 {
	return c.lastFetchPC
}

// Cycle advances the core by exactly one bus cycle: it performs at most one
// read or write and advances the internal state machine. An error other
// than Halted indicates a malformed internal state (a programming error in
// this package, not something a host can cause through the public API).
func (c *Core) Cycle() error {
	if c.booting {
		// The reset sequence ignores RDY and any prior halt, same as real
		// hardware: it always runs to completion once armed.
		done, err := c.bootTick()
		if err != nil {
			return err
		}
		if done {
			c.booting = false
		}
		return nil
	}

	if c.halted && c.haltOpcode != 0 {
		return Halted{Opcode: c.haltOpcode}
	}
	rdyHeld := c.halted || (c.rdySrc != nil && c.rdySrc.Raised())
	if rdyHeld {
		return nil
	}

	c.opTick++

	irqLine := c.irqLevel || (c.irqSrc != nil && c.irqSrc.Raised())
	nmiLine := c.nmiPending || (c.nmiSrc != nil && c.nmiSrc.Raised())

	// Re-derived fresh on every poll, not accumulated: a level-triggered IRQ
	// that's lowered (or an I flag that gets set) before the next instruction
	// boundary cancels cleanly. NMI is the exception: it's an edge latch, so
	// once promoted it stays pending regardless of the line's later state,
	// and is only cleared here at the moment it's promoted (not at service).
	// Both kinds are frozen once a boundary actually commits to servicing one.
	if !c.runningInterrupt {
		switch {
		case c.irqClass == irqNMI:
		case nmiLine:
			c.irqClass = irqNMI
			c.nmiPending = false
		case irqLine && c.P&FlagI == 0:
			c.irqClass = irqIRQ
		default:
			c.irqClass = irqNone
		}
	}

	switch {
	case c.opTick == 1:
		c.op = c.bus.Read(c.PC)
		c.lastFetchPC = c.PC
		c.opDone = false
		c.addrDone = false

		runInterrupt := c.irqClass != irqNone && !c.skipInterrupt
		if !runInterrupt && opcodeTable[c.op] == nil {
			// Invalid opcode: park here. PC is deliberately not advanced so
			// a host that isn't polling the callback keeps re-reading the
			// same byte.
			if c.invalidOpcode != nil {
				c.invalidOpcode(c.op)
			}
			c.opTick = 0
			return nil
		}

		if !runInterrupt {
			c.PC++
			c.runningInterrupt = false
		} else {
			c.runningInterrupt = true
		}
		return nil
	case c.opTick == 2:
		c.opVal = c.bus.Read(c.PC)
		c.prevSkipInterrupt = false
		if c.skipInterrupt {
			c.skipInterrupt = false
			c.prevSkipInterrupt = true
		}
	case c.opTick > 8:
		c.opDone = true
		return InvalidState{Reason: fmt.Sprintf("opTick %d exceeds the 8 cycle maximum for any 65xx instruction", c.opTick)}
	}

	var err error
	if c.runningInterrupt {
		vec := IRQVector
		if c.irqClass == irqNMI {
			vec = NMIVector
		}
		c.opDone, err = c.runInterrupt(vec, true)
	} else {
		c.opDone, err = c.dispatch()
	}

	if c.halted {
		c.haltOpcode = c.op
		c.opDone = true
		return Halted{Opcode: c.op}
	}
	if err != nil {
		c.haltOpcode = c.op
		c.halted = true
		c.opDone = true
		return err
	}
	if c.opDone {
		c.opTick = 0
		if c.runningInterrupt {
			c.irqClass = irqNone
		}
		c.runningInterrupt = false
	}
	return nil
}

// dispatch looks up the compiled table entry for the current opcode and
// runs it for this tick. An opcode with no table entry invokes the invalid
// instruction callback and leaves the core parked re-reading the same
// opcode on every subsequent Cycle() call.
func (c *Core) dispatch() (bool, error) {
	fn := opcodeTable[c.op]
	if fn == nil {
		if c.invalidOpcode != nil {
			c.invalidOpcode(c.op)
		}
		return true, nil
	}
	return fn(c)
}
