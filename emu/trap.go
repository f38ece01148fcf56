package emu

// TrapUnit implements exception and interrupt delivery: delegation
// between machine and supervisor mode, the xstatus/xepc/xcause/xtval
// save sequence, trap-vector redirection, and the xRET return path.
type TrapUnit struct {
	csr  *CSRFile
	priv *Privilege
	pc   uint64
}

// NewTrapUnit binds a trap unit to the CSR file and the emulator's
// current-privilege cell it must read and mutate.
func NewTrapUnit(csr *CSRFile, priv *Privilege) *TrapUnit {
	return &TrapUnit{csr: csr, priv: priv}
}

// delegated reports whether a trap with the given cause should be
// handled in S-mode rather than M-mode.
func (t *TrapUnit) delegated(cause uint64) bool {
	if *t.priv == PrivilegeMachine {
		return false
	}
	if cause&interruptBit != 0 {
		bit := cause &^ interruptBit
		return t.csr.mideleg&(1<<bit) != 0
	}
	return t.csr.medeleg&(1<<cause) != 0
}

// Raise delivers an exception: cause is a CauseXxx constant (bit 63
// clear), epc is the faulting instruction's address, and tval is the
// value the ISA specifies for xtval (0 when none applies).
func (t *TrapUnit) Raise(cause, epc, tval uint64) {
	t.enter(cause, epc, tval)
}

// RaiseInterrupt delivers an interrupt: cause has bit 63 set by the
// caller (via InterruptSupervisorSoftware | (1<<63)), and nextPC is the
// address of the instruction that would have executed next.
func (t *TrapUnit) RaiseInterrupt(cause, nextPC uint64) {
	t.enter(cause, nextPC, 0)
}

func (t *TrapUnit) enter(cause, epc, tval uint64) {
	if t.delegated(cause) {
		t.csr.setSPIE(t.csr.sieBit())
		t.csr.setSIE(false)
		t.csr.setSPP(*t.priv)
		t.csr.sepc = epc
		t.csr.scause = cause
		t.csr.stval = tval
		*t.priv = PrivilegeSupervisor
		t.redirect(t.csr.stvec, cause)
		return
	}
	t.csr.setMPIE(t.csr.mieBit())
	t.csr.setMIE(false)
	t.csr.setMPP(*t.priv)
	t.csr.mepc = epc
	t.csr.mcause = cause
	t.csr.mtval = tval
	*t.priv = PrivilegeMachine
	t.redirect(t.csr.mtvec, cause)
}

func (t *TrapUnit) redirect(tvec, cause uint64) {
	base := tvec &^ 0x3
	vectored := tvec&0x3 == 1
	if vectored && cause&interruptBit != 0 {
		t.pc = base + 4*(cause&^interruptBit)
		return
	}
	t.pc = base
}

// TargetPC returns the PC computed by the most recent Raise/RaiseInterrupt.
func (t *TrapUnit) TargetPC() uint64 {
	return t.pc
}

// MRET restores machine-mode caller state and returns the resume address.
func (t *TrapUnit) MRET() uint64 {
	pp := t.csr.mpp()
	t.csr.setMIE(t.csr.mpieBit())
	t.csr.setMPIE(true)
	t.csr.setMPP(PrivilegeUser)
	*t.priv = pp
	return t.csr.mepc
}

// SRET restores supervisor-mode caller state and returns the resume address.
func (t *TrapUnit) SRET() uint64 {
	pp := t.csr.spp()
	t.csr.setSIE(t.csr.spieBit())
	t.csr.setSPIE(true)
	t.csr.setSPP(PrivilegeUser)
	*t.priv = pp
	return t.csr.sepc
}

// PendingInterrupt reports the single active, enabled interrupt cause
// (with bit 63 set), if any, following the polling rule in the run loop:
// only M-mode with mstatus.MIE set observes interrupts in this profile,
// since S-mode interrupt delivery would require a separate sstatus.SIE
// gate this single-hart, single-source model does not need.
func (t *TrapUnit) PendingInterrupt() (cause uint64, ok bool) {
	active := t.csr.mie & t.csr.mip & causeInterruptMask
	if active == 0 {
		return 0, false
	}
	if *t.priv != PrivilegeMachine || !t.csr.mieBit() {
		return 0, false
	}
	if active&^(active-1) != active {
		panic("emu: multiple simultaneous pending interrupts unsupported")
	}
	bit := uint64(0)
	for active>>bit != 1 {
		bit++
	}
	return bit | interruptBit, true
}
