// Package insts provides RV64 instruction definitions and decoding.
//
// This package implements decoding of RV64 machine code into structured
// instruction representations. It supports the base integer set (I), the
// multiply/divide extension (M), the atomic extension (A), the 16-bit
// compressed encoding (C), and the CSR-access and instruction-fetch-fence
// extensions (Zicsr, Zifencei).
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00a58593) // ADDI x11, x11, 10
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Imm: %d\n", inst.Op, inst.Rd, inst.Rs1, inst.Imm)
package insts
