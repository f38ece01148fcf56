package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		alu = emu.NewALU(regFile)
	})

	Describe("base integer ops", func() {
		It("should add two registers", func() {
			regFile.WriteReg(1, 10)
			regFile.WriteReg(2, 32)
			alu.Add(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(42)))
		})

		It("should compute signed less-than", func() {
			regFile.WriteReg(1, uint64(int64(-1)))
			regFile.WriteReg(2, 1)
			alu.Slt(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(1)))
		})

		It("should compute unsigned less-than treating -1 as huge", func() {
			regFile.WriteReg(1, uint64(int64(-1)))
			regFile.WriteReg(2, 1)
			alu.Sltu(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(0)))
		})

		It("should arithmetic-shift-right preserving sign", func() {
			regFile.WriteReg(1, uint64(int64(-8)))
			regFile.WriteReg(2, 1)
			alu.Sra(3, 1, 2)
			Expect(int64(regFile.ReadReg(3))).To(Equal(int64(-4)))
		})

		It("should mask shift amounts to the low 6 bits", func() {
			regFile.WriteReg(1, 1)
			regFile.WriteReg(2, 64) // 64 & 0x3f == 0
			alu.Sll(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(1)))
		})

		It("should discard writes to x0", func() {
			regFile.WriteReg(1, 5)
			regFile.WriteReg(2, 7)
			alu.Add(0, 1, 2)
			Expect(regFile.ReadReg(0)).To(Equal(uint64(0)))
		})
	})

	Describe("W-suffixed 32-bit forms", func() {
		It("should sign-extend a 32-bit addition result", func() {
			regFile.WriteReg(1, 0x7fffffff)
			regFile.WriteReg(2, 1)
			alu.AddW(3, 1, 2)
			Expect(int64(regFile.ReadReg(3))).To(Equal(int64(-1 << 31)))
		})

		It("should shift within the 32-bit window only", func() {
			regFile.WriteReg(1, 1)
			alu.SllIW(2, 1, 31)
			Expect(int64(regFile.ReadReg(2))).To(Equal(int64(-1 << 31)))
		})
	})

	Describe("M extension: multiply", func() {
		It("should compute the low 64 bits via Mul", func() {
			regFile.WriteReg(1, 6)
			regFile.WriteReg(2, 7)
			alu.Mul(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(42)))
		})

		It("should compute the high 64 bits of a signed product via Mulh", func() {
			regFile.WriteReg(1, uint64(int64(-1)))
			regFile.WriteReg(2, uint64(int64(-1)))
			alu.Mulh(3, 1, 2)
			// (-1) * (-1) = 1, whose high 64 bits are 0.
			Expect(regFile.ReadReg(3)).To(Equal(uint64(0)))
		})

		It("should compute the high 64 bits of an unsigned product via Mulhu", func() {
			regFile.WriteReg(1, ^uint64(0))
			regFile.WriteReg(2, 2)
			alu.Mulhu(3, 1, 2)
			// 0xFFFFFFFFFFFFFFFF * 2 = 0x1FFFFFFFFFFFFFFFE, high 64 bits = 1.
			Expect(regFile.ReadReg(3)).To(Equal(uint64(1)))
		})
	})

	Describe("M extension: divide", func() {
		It("should truncate toward zero", func() {
			regFile.WriteReg(1, uint64(int64(-7)))
			regFile.WriteReg(2, 2)
			alu.Div(3, 1, 2)
			Expect(int64(regFile.ReadReg(3))).To(Equal(int64(-3)))
		})

		It("should return all-ones on division by zero", func() {
			regFile.WriteReg(1, 5)
			regFile.WriteReg(2, 0)
			alu.Div(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(^uint64(0)))
		})

		It("should return the dividend unchanged on INT64_MIN / -1 overflow", func() {
			regFile.WriteReg(1, uint64(int64(-1)<<63))
			regFile.WriteReg(2, uint64(int64(-1)))
			alu.Div(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(int64(-1) << 63)))
		})

		It("should return the dividend unchanged for Rem on division by zero", func() {
			regFile.WriteReg(1, 5)
			regFile.WriteReg(2, 0)
			alu.Rem(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(5)))
		})

		It("should return the dividend for Remu on division by zero", func() {
			regFile.WriteReg(1, 5)
			regFile.WriteReg(2, 0)
			alu.Remu(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint64(5)))
		})

		It("should divide unsigned values without sign interpretation", func() {
			regFile.WriteReg(1, ^uint64(0)) // max uint64
			regFile.WriteReg(2, 2)
			alu.Divu(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(^uint64(0) / 2))
		})
	})
})
