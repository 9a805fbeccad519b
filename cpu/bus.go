package cpu

// Bus is the synchronous 8-bit memory interface the core drives one access
// at a time from Cycle(). Read and Write are total from the core's point of
// view: they never fail, and any side effects (mapped I/O, mirroring) are
// opaque to the CPU. The core calls at most one of these per Cycle().
type Bus interface {
	// Read returns the byte currently stored at addr.
	Read(addr uint16) uint8
	// Write stores val at addr.
	Write(addr uint16, val uint8)
}

// RNG is the optional randomizer collaborator used to scramble
// register contents at power-on/reset so hosts can write deterministic
// tests against "uninitialized memory" behavior. Int must return a value
// in [0, upper] inclusive.
type RNG interface {
	Int(upper uint32) uint32
}
