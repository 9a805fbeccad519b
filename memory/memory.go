// Package memory provides a simple flat-RAM implementation of the CPU
// core's Bus collaborator, useful for hosts that don't need a multi-chip
// memory map (bank switching, mirrored I/O registers, etc).
package memory

import "fmt"

// FlatRAM implements cpu.Bus over a single contiguous byte array. Addresses
// outside [0, len) are masked to fit, so a bank smaller than 64K aliases.
type FlatRAM struct {
	ram []uint8
}

// NewFlatRAM creates a R/W RAM bank of the given size. Size must be a power
// of 2 no larger than 64K (the 6502 address space).
func NewFlatRAM(size int) (*FlatRAM, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	return &FlatRAM{ram: make([]uint8, size)}, nil
}

// Read implements cpu.Bus.
func (r *FlatRAM) Read(addr uint16) uint8 {
	return r.ram[addr&uint16(len(r.ram)-1)]
}

// Write implements cpu.Bus.
func (r *FlatRAM) Write(addr uint16, val uint8) {
	r.ram[addr&uint16(len(r.ram)-1)] = val
}

// Fill sets every byte to val, e.g. to seed RAM with a known opcode pattern
// (NOP, HLT) before driving the core in a test.
func (r *FlatRAM) Fill(val uint8) {
	for i := range r.ram {
		r.ram[i] = val
	}
}
