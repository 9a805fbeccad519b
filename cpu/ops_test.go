package cpu

import "testing"

func TestPhaPlaRoundTrip(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x0000, nil)
	prog := []uint8{0xA9, 0x77, 0x48, 0xA9, 0x00, 0x68} // LDA #$77; PHA; LDA #$00; PLA
	copy(b.mem[:], prog)

	step(t, c) // LDA #$77
	if cycles := step(t, c); cycles != 3 {
		t.Errorf("PHA took %d cycles, want 3", cycles)
	}
	if c.S != 0xFC {
		t.Errorf("S = %#x after PHA, want 0xFC", c.S)
	}
	step(t, c) // LDA #$00
	if c.A != 0 {
		t.Fatalf("A = %#x after LDA #$00, want 0", c.A)
	}
	if cycles := step(t, c); cycles != 4 {
		t.Errorf("PLA took %d cycles, want 4", cycles)
	}
	if c.A != 0x77 {
		t.Errorf("A = %#x after PLA, want 0x77", c.A)
	}
	if c.S != 0xFD {
		t.Errorf("S = %#x after PLA, want 0xFD", c.S)
	}
}

func TestPhpPlpForcesEAndB(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x0000, nil)
	b.mem[0] = 0x08 // PHP
	b.mem[1] = 0x28 // PLP

	step(t, c)
	pushed := b.mem[0x0100+int(c.S)+1]
	if pushed&FlagB == 0 || pushed&FlagE == 0 {
		t.Errorf("pushed P = %#x, want both B and E set", pushed)
	}

	step(t, c)
	if c.P&FlagB != 0 {
		t.Error("B set after PLP, want it forced clear (not a real status bit)")
	}
	if c.P&FlagE == 0 {
		t.Error("E clear after PLP, want it forced set")
	}
}

func TestJsrRtsRoundTrip(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x0000, nil)
	b.mem[0x0000] = 0x20 // JSR $1000
	b.mem[0x0001] = 0x00
	b.mem[0x0002] = 0x10
	b.mem[0x1000] = 0x60 // RTS

	if cycles := step(t, c); cycles != 6 {
		t.Errorf("JSR took %d cycles, want 6", cycles)
	}
	if c.PC != 0x1000 {
		t.Fatalf("PC = %#x after JSR, want 0x1000", c.PC)
	}
	if cycles := step(t, c); cycles != 6 {
		t.Errorf("RTS took %d cycles, want 6", cycles)
	}
	if c.PC != 0x0003 {
		t.Errorf("PC = %#x after RTS, want 0x0003 (just past JSR)", c.PC)
	}
}

func TestRmwWritesOriginalThenModified(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x0000, nil)
	b.mem[0x0000] = 0x06 // ASL $10
	b.mem[0x0001] = 0x10
	b.mem[0x0010] = 0x81 // 1000_0001

	var writes []uint8
	tb := &trackingBus{fakeBus: b, onWrite: func(addr uint16, val uint8) {
		if addr == 0x0010 {
			writes = append(writes, val)
		}
	}}
	c.bus = tb

	step(t, c)

	if len(writes) != 2 {
		t.Fatalf("ASL zp wrote %d times to the operand, want 2 (original, then modified)", len(writes))
	}
	if writes[0] != 0x81 {
		t.Errorf("first write = %#x, want the unmodified original 0x81", writes[0])
	}
	if writes[1] != 0x02 {
		t.Errorf("second write = %#x, want the shifted result 0x02", writes[1])
	}
	if c.P&FlagC == 0 {
		t.Error("C not set after shifting out bit 7")
	}
}

// trackingBus wraps a fakeBus to observe writes without changing behavior.
type trackingBus struct {
	*fakeBus
	onWrite func(addr uint16, val uint8)
}

func (t *trackingBus) Write(addr uint16, val uint8) {
	t.fakeBus.Write(addr, val)
	if t.onWrite != nil {
		t.onWrite(addr, val)
	}
}

func TestCompareSetsCarryOnGreaterOrEqual(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x0000, nil)
	prog := []uint8{0xA9, 0x10, 0xC9, 0x05} // LDA #$10; CMP #$05
	copy(b.mem[:], prog)

	step(t, c)
	step(t, c)

	if c.P&FlagC == 0 {
		t.Error("C clear after CMP with A >= operand, want set")
	}
	if c.P&FlagZ != 0 {
		t.Error("Z set after CMP with unequal operands, want clear")
	}
}

func TestBranchPageCrossingExtraCycle(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x00F0, nil)
	b.mem[0x00F0] = 0x90 // BCC +$20, crosses from page 0 to page 1
	b.mem[0x00F1] = 0x20

	if cycles := step(t, c); cycles != 4 {
		t.Errorf("taken cross-page branch took %d cycles, want 4", cycles)
	}
	if c.PC != 0x0112 {
		t.Errorf("PC = %#x after branch, want 0x0112", c.PC)
	}
}

func TestUndocumentedLax(t *testing.T) {
	c, b := newTestCore(t, 0xEA, 0x0000, nil)
	b.mem[0x0000] = 0xA7 // LAX $10
	b.mem[0x0001] = 0x10
	b.mem[0x0010] = 0x99

	step(t, c)

	if c.A != 0x99 || c.X != 0x99 {
		t.Errorf("A/X = %#x/%#x after LAX, want both 0x99", c.A, c.X)
	}
}
