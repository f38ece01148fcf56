package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("CSRFile", func() {
	var csr *emu.CSRFile

	BeforeEach(func() {
		csr = emu.NewCSRFile()
	})

	Describe("WARL masking", func() {
		It("should mask mstatus writes to the writable bit set", func() {
			ok := csr.Write(emu.CsrMstatus, emu.PrivilegeMachine, ^uint64(0))
			Expect(ok).To(BeTrue())
			Expect(csr.Read(emu.CsrMstatus)).To(Equal(uint64(0x7219AA)))
		})

		It("should reject writes to a read-only CSR", func() {
			ok := csr.Write(emu.CsrMvendorid, emu.PrivilegeMachine, 0xDEAD)
			Expect(ok).To(BeFalse())
		})

		It("should reject a machine-CSR write from supervisor mode", func() {
			ok := csr.Write(emu.CsrMstatus, emu.PrivilegeSupervisor, 1)
			Expect(ok).To(BeFalse())
		})

		It("should allow a supervisor CSR write from supervisor mode", func() {
			ok := csr.Write(emu.CsrSscratch, emu.PrivilegeSupervisor, 0x42)
			Expect(ok).To(BeTrue())
			Expect(csr.Read(emu.CsrSscratch)).To(Equal(uint64(0x42)))
		})
	})

	Describe("sstatus as a masked alias of mstatus", func() {
		It("should reflect SIE written through mstatus", func() {
			csr.Write(emu.CsrMstatus, emu.PrivilegeMachine, 1<<1) // SIE bit
			Expect(csr.Read(emu.CsrSstatus) & (1 << 1)).To(Equal(uint64(1 << 1)))
		})

		It("should not leak MIE into the sstatus view", func() {
			csr.Write(emu.CsrMstatus, emu.PrivilegeMachine, 1<<3) // MIE bit
			Expect(csr.Read(emu.CsrSstatus) & (1 << 3)).To(BeZero())
		})
	})

	Describe("tvec mode masking", func() {
		It("should clamp an unsupported mode field to Direct", func() {
			csr.Write(emu.CsrMtvec, emu.PrivilegeMachine, 0x1000|0x3)
			Expect(csr.Read(emu.CsrMtvec) & 0x3).To(Equal(uint64(0)))
		})

		It("should preserve the Vectored mode", func() {
			csr.Write(emu.CsrMtvec, emu.PrivilegeMachine, 0x1000|0x1)
			Expect(csr.Read(emu.CsrMtvec) & 0x3).To(Equal(uint64(1)))
		})
	})

	Describe("cycle/mcycle aliasing", func() {
		It("should read cycle and mcycle as the same counter", func() {
			csr.TickCycle()
			csr.TickCycle()
			Expect(csr.Read(emu.CsrCycle)).To(Equal(csr.Read(emu.CsrMcycle)))
			Expect(csr.Read(emu.CsrCycle)).To(Equal(uint64(2)))
		})
	})

	Describe("Readable", func() {
		It("should allow reading an M-mode CSR from machine mode", func() {
			Expect(csr.Readable(emu.CsrMstatus, emu.PrivilegeMachine)).To(BeTrue())
		})

		It("should forbid reading an M-mode CSR from supervisor mode", func() {
			Expect(csr.Readable(emu.CsrMstatus, emu.PrivilegeSupervisor)).To(BeFalse())
		})
	})
})
