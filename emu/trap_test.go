package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("TrapUnit", func() {
	var (
		csr  *emu.CSRFile
		priv emu.Privilege
		trap *emu.TrapUnit
	)

	BeforeEach(func() {
		csr = emu.NewCSRFile()
		priv = emu.PrivilegeMachine
		trap = emu.NewTrapUnit(csr, &priv)
	})

	Describe("undelegated exceptions", func() {
		It("should save epc/cause/tval to the machine-mode CSRs", func() {
			trap.Raise(emu.CauseIllegalInstruction, 0x1000, 0xdeadbeef)

			Expect(csr.Read(emu.CsrMepc)).To(Equal(uint64(0x1000)))
			Expect(csr.Read(emu.CsrMcause)).To(Equal(uint64(emu.CauseIllegalInstruction)))
			Expect(csr.Read(emu.CsrMtval)).To(Equal(uint64(0xdeadbeef)))
			Expect(priv).To(Equal(emu.PrivilegeMachine))
		})

		It("should redirect to the Direct mtvec base", func() {
			csr.Write(emu.CsrMtvec, emu.PrivilegeMachine, 0x8000)
			trap.Raise(emu.CauseIllegalInstruction, 0x1000, 0)
			Expect(trap.TargetPC()).To(Equal(uint64(0x8000)))
		})
	})

	Describe("delegated exceptions", func() {
		BeforeEach(func() {
			csr.Write(emu.CsrMedeleg, emu.PrivilegeMachine, 1<<emu.CauseIllegalInstruction)
			priv = emu.PrivilegeSupervisor
		})

		It("should enter supervisor mode and use stvec", func() {
			csr.Write(emu.CsrStvec, emu.PrivilegeSupervisor, 0x9000)
			trap.Raise(emu.CauseIllegalInstruction, 0x1000, 0)

			Expect(priv).To(Equal(emu.PrivilegeSupervisor))
			Expect(csr.Read(emu.CsrSepc)).To(Equal(uint64(0x1000)))
			Expect(trap.TargetPC()).To(Equal(uint64(0x9000)))
		})
	})

	Describe("MRET/SRET", func() {
		It("should restore the caller's privilege and resume at mepc", func() {
			csr.Write(emu.CsrMtvec, emu.PrivilegeMachine, 0x8000)
			trap.Raise(emu.CauseIllegalInstruction, 0x1000, 0)
			priv = emu.PrivilegeMachine

			resumePC := trap.MRET()
			Expect(resumePC).To(Equal(uint64(0x1000)))
			Expect(priv).To(Equal(emu.PrivilegeMachine))
		})

		It("should resume at sepc after a delegated trap's SRET", func() {
			csr.Write(emu.CsrMedeleg, emu.PrivilegeMachine, 1<<emu.CauseIllegalInstruction)
			priv = emu.PrivilegeUser
			csr.Write(emu.CsrStvec, emu.PrivilegeSupervisor, 0x9000)
			trap.Raise(emu.CauseIllegalInstruction, 0x2000, 0)

			resumePC := trap.SRET()
			Expect(resumePC).To(Equal(uint64(0x2000)))
			Expect(priv).To(Equal(emu.PrivilegeUser))
		})
	})

	Describe("PendingInterrupt", func() {
		It("should report no interrupt when mie is clear", func() {
			_, ok := trap.PendingInterrupt()
			Expect(ok).To(BeFalse())
		})

		It("should report the supervisor-software interrupt when enabled and pending", func() {
			csr.Write(emu.CsrMstatus, emu.PrivilegeMachine, 1<<3) // MIE
			csr.Write(emu.CsrMie, emu.PrivilegeMachine, 1<<emu.InterruptSupervisorSoftware)
			csr.Write(emu.CsrMip, emu.PrivilegeMachine, 1<<emu.InterruptSupervisorSoftware)

			cause, ok := trap.PendingInterrupt()
			Expect(ok).To(BeTrue())
			Expect(cause & (uint64(1) << 63)).NotTo(BeZero())
		})
	})
})
