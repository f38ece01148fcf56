// Package emu provides a functional RV64 emulator.
package emu

// RegFile represents the RV64 integer register file: 32 general-purpose
// registers x0-x31 plus the program counter. x0 is hard-wired to zero.
type RegFile struct {
	// X holds general-purpose registers x0-x31. X[0] always reads as 0;
	// writes to it are silently discarded.
	X [32]uint64

	// PC is the program counter.
	PC uint64
}

// ReadReg reads a register value. x0 always reads as 0.
func (r *RegFile) ReadReg(reg uint8) uint64 {
	if reg == 0 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to x0 are discarded.
func (r *RegFile) WriteReg(reg uint8, value uint64) {
	if reg == 0 {
		return
	}
	r.X[reg] = value
}

// ReadReg32 reads the lower 32 bits of a register.
func (r *RegFile) ReadReg32(reg uint8) uint32 {
	return uint32(r.ReadReg(reg))
}

// WriteReg32 writes a 32-bit value sign-extended to 64 bits, per the W-suffixed
// instruction convention.
func (r *RegFile) WriteReg32(reg uint8, value uint32) {
	r.WriteReg(reg, uint64(int64(int32(value))))
}
