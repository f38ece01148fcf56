package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile *emu.RegFile
		bu      *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		bu = emu.NewBranchUnit(regFile)
	})

	Describe("JAL", func() {
		It("should write the link address and return the target", func() {
			target := bu.JAL(1, 0x1000, 0x20, 4)
			Expect(regFile.ReadReg(1)).To(Equal(uint64(0x1004)))
			Expect(target).To(Equal(uint64(0x1020)))
		})

		It("should discard the link write when rd is x0", func() {
			bu.JAL(0, 0x1000, 0x20, 4)
			Expect(regFile.ReadReg(0)).To(Equal(uint64(0)))
		})
	})

	Describe("JALR", func() {
		It("should compute the target from rs1 and clear bit 0", func() {
			regFile.WriteReg(2, 0x2001)
			target := bu.JALR(1, 2, 0x1000, 4, 4)
			Expect(target).To(Equal(uint64(0x2004)))
			Expect(regFile.ReadReg(1)).To(Equal(uint64(0x1004)))
		})

		It("should read rs1 before writing rd when they alias", func() {
			regFile.WriteReg(1, 0x3000)
			target := bu.JALR(1, 1, 0x1000, 0, 4)
			Expect(target).To(Equal(uint64(0x3000)))
			Expect(regFile.ReadReg(1)).To(Equal(uint64(0x1004)))
		})
	})
})
