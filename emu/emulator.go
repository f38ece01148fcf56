// Package emu provides a functional RV64 emulator.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/archlab/rv64core/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated (memory's exit address
	// was written, a proxy-mode exit syscall ran, or an EBREAK executed,
	// which reports exit code -1).
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64

	// Err is set when the configured instruction limit has been reached;
	// callers should stop calling Step.
	Err error
}

// Emulator executes RV64 instructions functionally, one at a time, with
// no pipelining and a single hart.
type Emulator struct {
	regFile      *RegFile
	memory       *Memory
	decoder      *insts.Decoder
	csr          *CSRFile
	priv         Privilege
	trap         *TrapUnit
	reservations *ReservationSet

	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit
	atomicUnit *AtomicUnit

	syscallHandler SyscallHandler
	proxySyscalls  bool

	stdout io.Writer
	stderr io.Writer

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets a custom stdout writer.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) { e.stdout = w }
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) { e.stderr = w }
}

// WithSyscallHandler sets a custom proxy syscall handler and enables
// proxy-mode ECALL handling.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
		e.proxySyscalls = true
	}
}

// WithProxySyscalls enables the default proxy syscall handler, which
// intercepts ECALL before it reaches the trap unit.
func WithProxySyscalls() EmulatorOption {
	return func(e *Emulator) { e.proxySyscalls = true }
}

// WithStackPointer sets the initial stack pointer (x2) value.
func WithStackPointer(sp uint64) EmulatorOption {
	return func(e *Emulator) { e.regFile.X[2] = sp }
}

// WithMaxInstructions sets the maximum number of instructions to
// execute. A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) { e.maxInstructions = max }
}

// WithMemorySize overrides the default 1 MiB memory allocation.
func WithMemorySize(size uint64) EmulatorOption {
	return func(e *Emulator) { e.memory = NewMemorySized(size) }
}

// WithExitAddress configures the memory address whose write terminates Run.
func WithExitAddress(addr uint64) EmulatorOption {
	return func(e *Emulator) { e.memory.SetExitAddress(addr) }
}

// NewEmulator creates a new RV64 emulator reset to its post-power-on state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}
	memory := NewMemory()
	csr := NewCSRFile()

	e := &Emulator{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
		csr:     csr,
		priv:    PrivilegeMachine,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	e.trap = NewTrapUnit(csr, &e.priv)
	e.reservations = NewReservationSet()

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, e.memory)
	e.branchUnit = NewBranchUnit(regFile)
	e.atomicUnit = NewAtomicUnit(regFile, e.memory, e.reservations)

	if e.proxySyscalls && e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(regFile, e.memory, e.stdout, e.stderr)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile { return e.regFile }

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory { return e.memory }

// CSR returns the emulator's CSR file.
func (e *Emulator) CSR() *CSRFile { return e.csr }

// Privilege returns the current privilege level.
func (e *Emulator) Privilege() Privilege { return e.priv }

// InstructionCount returns the number of instructions retired.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// LoadProgram loads a program into memory starting at address 0 and sets
// the entry point. The program can be either a []byte (copied in place)
// or a *Memory (adopted wholesale, rewiring the execution units).
func (e *Emulator) LoadProgram(entry uint64, program interface{}) {
	switch p := program.(type) {
	case []byte:
		e.memory.LoadProgram(p)
	case *Memory:
		e.memory = p
		e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
		e.atomicUnit = NewAtomicUnit(e.regFile, e.memory, e.reservations)
		if e.syscallHandler != nil {
			e.syscallHandler = NewDefaultSyscallHandler(e.regFile, e.memory, e.stdout, e.stderr)
		}
	}
	e.regFile.PC = entry
}

// Reset restores the emulator to its post-power-on state, keeping the
// configured memory size and I/O writers.
func (e *Emulator) Reset() {
	size := e.memory.Size()
	e.regFile = &RegFile{}
	e.memory = NewMemorySized(size)
	e.csr = NewCSRFile()
	e.priv = PrivilegeMachine
	e.trap = NewTrapUnit(e.csr, &e.priv)
	e.reservations = NewReservationSet()
	e.instructionCount = 0

	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)
	e.atomicUnit = NewAtomicUnit(e.regFile, e.memory, e.reservations)
	if e.proxySyscalls {
		e.syscallHandler = NewDefaultSyscallHandler(e.regFile, e.memory, e.stdout, e.stderr)
	}
}

// trapSignal is returned internally by execute to request that the run
// loop hand off to the trap unit instead of advancing PC normally.
type trapSignal struct {
	cause uint64
	tval  uint64
}

// Step fetches, decodes, and executes a single instruction, then polls
// for a pending interrupt. It returns once: on a completed instruction,
// a delivered trap, or a terminal condition (exit, unsupported behavior).
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: fmt.Errorf("emu: max instructions reached")}
	}
	if e.memory.Finished() {
		return StepResult{Exited: true}
	}

	pc := e.regFile.PC
	word := e.memory.Read32(pc)
	inst := e.decoder.Decode(word)

	result := e.execute(inst, pc)

	e.instructionCount++
	e.csr.TickCycle()

	if result.Err != nil || result.Exited {
		return result
	}

	if e.memory.Finished() {
		return StepResult{Exited: true}
	}

	if cause, ok := e.trap.PendingInterrupt(); ok {
		e.trap.RaiseInterrupt(cause, e.regFile.PC)
		e.regFile.PC = e.trap.TargetPC()
	}

	return StepResult{}
}

// Run steps the emulator until it exits or errors, returning the final
// exit code (or -1 if the program never reached an exit condition).
func (e *Emulator) Run() int64 {
	for {
		result := e.Step()
		if result.Err != nil {
			fmt.Fprintf(e.stderr, "emu: %v\n", result.Err)
			return -1
		}
		if result.Exited {
			return result.ExitCode
		}
	}
}

func instLen(inst *insts.Instruction) uint64 {
	if inst.Compressed {
		return 2
	}
	return 4
}

// execute evaluates one decoded instruction, mutating architectural
// state. The PC has not yet been advanced; execute is responsible for
// leaving e.regFile.PC pointing at the next instruction to fetch.
func (e *Emulator) execute(inst *insts.Instruction, pc uint64) StepResult {
	if inst.Class == insts.ClassInvalid {
		e.deliverTrap(trapSignal{cause: CauseIllegalInstruction, tval: uint64(inst.Raw)}, pc)
		return StepResult{}
	}

	switch inst.Class {
	case insts.ClassAlu:
		e.executeAlu(inst)
		e.regFile.PC = pc + instLen(inst)
	case insts.ClassLoad:
		e.executeLoad(inst)
		e.regFile.PC = pc + instLen(inst)
	case insts.ClassStore:
		e.reservations.Clear()
		e.executeStore(inst)
		e.regFile.PC = pc + instLen(inst)
	case insts.ClassBranch:
		e.executeBranch(inst, pc)
	case insts.ClassJump:
		e.executeJump(inst, pc)
	case insts.ClassCsr:
		return e.executeCsr(inst, pc)
	case insts.ClassAtomic:
		e.executeAtomic(inst, pc)
	case insts.ClassFence:
		e.regFile.PC = pc + instLen(inst)
	case insts.ClassSystem:
		return e.executeSystem(inst, pc)
	default:
		panic("emu: unhandled instruction class")
	}
	return StepResult{}
}

func (e *Emulator) deliverTrap(sig trapSignal, epc uint64) {
	e.trap.Raise(sig.cause, epc, sig.tval)
	e.regFile.PC = e.trap.TargetPC()
}

// checkAligned traps InstructionAddressMisaligned if target is not
// aligned to the boundary the current C-extension state requires.
func (e *Emulator) checkAligned(target, epc uint64) bool {
	boundary := uint64(4)
	if e.csr.misa&(1<<2) != 0 {
		boundary = 2
	}
	if target%boundary != 0 {
		e.deliverTrap(trapSignal{cause: CauseInstructionAddressMisaligned, tval: target}, epc)
		return false
	}
	return true
}

func (e *Emulator) executeBranch(inst *insts.Instruction, pc uint64) {
	var op branchOp
	switch inst.Op {
	case insts.OpBEQ:
		op = branchEQ
	case insts.OpBNE:
		op = branchNE
	case insts.OpBLT:
		op = branchLT
	case insts.OpBGE:
		op = branchGE
	case insts.OpBLTU:
		op = branchLTU
	case insts.OpBGEU:
		op = branchGEU
	}
	if e.branchUnit.Taken(op, inst.Rs1, inst.Rs2) {
		target := pc + uint64(inst.Imm)
		if !e.checkAligned(target, pc) {
			return
		}
		e.regFile.PC = target
		return
	}
	e.regFile.PC = pc + instLen(inst)
}

func (e *Emulator) executeJump(inst *insts.Instruction, pc uint64) {
	var target uint64
	switch inst.Op {
	case insts.OpJAL:
		target = e.branchUnit.JAL(inst.Rd, pc, inst.Imm, instLen(inst))
	case insts.OpJALR:
		target = e.branchUnit.JALR(inst.Rd, inst.Rs1, pc, inst.Imm, instLen(inst))
	}
	if !e.checkAligned(target, pc) {
		return
	}
	e.regFile.PC = target
}

func (e *Emulator) executeAlu(inst *insts.Instruction) {
	a := e.alu
	switch inst.Op {
	case insts.OpLUI:
		e.regFile.WriteReg(inst.Rd, uint64(inst.Imm))
	case insts.OpAUIPC:
		e.regFile.WriteReg(inst.Rd, e.regFile.PC+uint64(inst.Imm))
	case insts.OpADDI:
		a.AddImm(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpSLTI:
		a.SltImm(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpSLTIU:
		a.SltuImm(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpXORI:
		a.XorImm(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpORI:
		a.OrImm(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpANDI:
		a.AndImm(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpSLLI:
		a.SllImm(inst.Rd, inst.Rs1, uint64(inst.Imm))
	case insts.OpSRLI:
		a.SrlImm(inst.Rd, inst.Rs1, uint64(inst.Imm))
	case insts.OpSRAI:
		a.SraImm(inst.Rd, inst.Rs1, uint64(inst.Imm))
	case insts.OpADD:
		a.Add(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSUB:
		a.Sub(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLL:
		a.Sll(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLT:
		a.Slt(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLTU:
		a.Sltu(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpXOR:
		a.Xor(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSRL:
		a.Srl(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSRA:
		a.Sra(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpOR:
		a.Or(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAND:
		a.And(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpADDIW:
		a.AddIW(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpSLLIW:
		a.SllIW(inst.Rd, inst.Rs1, uint64(inst.Imm))
	case insts.OpSRLIW:
		a.SrlIW(inst.Rd, inst.Rs1, uint64(inst.Imm))
	case insts.OpSRAIW:
		a.SraIW(inst.Rd, inst.Rs1, uint64(inst.Imm))
	case insts.OpADDW:
		a.AddW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSUBW:
		a.SubW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLLW:
		a.SllW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSRLW:
		a.SrlW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSRAW:
		a.SraW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMUL:
		a.Mul(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMULH:
		a.Mulh(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMULHSU:
		a.Mulhsu(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMULHU:
		a.Mulhu(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpDIV:
		a.Div(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpDIVU:
		a.Divu(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpREM:
		a.Rem(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpREMU:
		a.Remu(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMULW:
		a.MulW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpDIVW:
		a.DivW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpDIVUW:
		a.DivUW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpREMW:
		a.RemW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpREMUW:
		a.RemUW(inst.Rd, inst.Rs1, inst.Rs2)
	default:
		panic("emu: unhandled alu op")
	}
}

func (e *Emulator) executeLoad(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpLB:
		e.lsu.LB(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLBU:
		e.lsu.LBU(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLH:
		e.lsu.LH(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLHU:
		e.lsu.LHU(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLW:
		e.lsu.LW(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLWU:
		e.lsu.LWU(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLD:
		e.lsu.LD(inst.Rd, inst.Rs1, inst.Imm)
	default:
		panic("emu: unhandled load op")
	}
}

func (e *Emulator) executeStore(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpSB:
		e.lsu.SB(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpSH:
		e.lsu.SH(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpSW:
		e.lsu.SW(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpSD:
		e.lsu.SD(inst.Rs1, inst.Rs2, inst.Imm)
	default:
		panic("emu: unhandled store op")
	}
}

// atomicSize reports the access width (4 or 8 bytes) an atomic Op reads
// or writes, used for the alignment check.
func atomicSize(op insts.Op) uint64 {
	switch op {
	case insts.OpLRD, insts.OpSCD, insts.OpAMOSWAPD, insts.OpAMOADDD, insts.OpAMOXORD,
		insts.OpAMOANDD, insts.OpAMOORD, insts.OpAMOMIND, insts.OpAMOMAXD, insts.OpAMOMINUD, insts.OpAMOMAXUD:
		return 8
	default:
		return 4
	}
}

func (e *Emulator) executeAtomic(inst *insts.Instruction, pc uint64) {
	addr := e.regFile.ReadReg(inst.Rs1)
	if size := atomicSize(inst.Op); addr%size != 0 {
		e.deliverTrap(trapSignal{cause: CauseInstructionAddressMisaligned, tval: addr}, pc)
		return
	}

	u := e.atomicUnit
	switch inst.Op {
	case insts.OpLRW:
		u.LRW(inst.Rd, inst.Rs1)
	case insts.OpLRD:
		u.LRD(inst.Rd, inst.Rs1)
	case insts.OpSCW:
		u.SCW(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSCD:
		u.SCD(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOSWAPW:
		e.reservations.Clear()
		u.AMOW(AmoSwap, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOADDW:
		e.reservations.Clear()
		u.AMOW(AmoAdd, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOXORW:
		e.reservations.Clear()
		u.AMOW(AmoXor, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOANDW:
		e.reservations.Clear()
		u.AMOW(AmoAnd, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOORW:
		e.reservations.Clear()
		u.AMOW(AmoOr, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMINW:
		e.reservations.Clear()
		u.AMOW(AmoMin, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMAXW:
		e.reservations.Clear()
		u.AMOW(AmoMax, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMINUW:
		e.reservations.Clear()
		u.AMOW(AmoMinu, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMAXUW:
		e.reservations.Clear()
		u.AMOW(AmoMaxu, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOSWAPD:
		e.reservations.Clear()
		u.AMOD(AmoSwap, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOADDD:
		e.reservations.Clear()
		u.AMOD(AmoAdd, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOXORD:
		e.reservations.Clear()
		u.AMOD(AmoXor, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOANDD:
		e.reservations.Clear()
		u.AMOD(AmoAnd, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOORD:
		e.reservations.Clear()
		u.AMOD(AmoOr, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMIND:
		e.reservations.Clear()
		u.AMOD(AmoMin, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMAXD:
		e.reservations.Clear()
		u.AMOD(AmoMax, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMINUD:
		e.reservations.Clear()
		u.AMOD(AmoMinu, inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAMOMAXUD:
		e.reservations.Clear()
		u.AMOD(AmoMaxu, inst.Rd, inst.Rs1, inst.Rs2)
	default:
		panic("emu: unhandled atomic op")
	}
	e.regFile.PC = pc + instLen(inst)
}

func (e *Emulator) executeCsr(inst *insts.Instruction, pc uint64) StepResult {
	if !e.csr.Readable(inst.Csr, e.priv) {
		e.deliverTrap(trapSignal{cause: CauseIllegalInstruction, tval: uint64(inst.Raw)}, pc)
		return StepResult{}
	}
	old := e.csr.Read(inst.Csr)

	var newValue uint64
	var write bool
	switch inst.Op {
	case insts.OpCSRRW:
		newValue = e.regFile.ReadReg(inst.Rs1)
		write = true
	case insts.OpCSRRS:
		newValue = old | e.regFile.ReadReg(inst.Rs1)
		write = inst.Rs1 != 0
	case insts.OpCSRRC:
		newValue = old &^ e.regFile.ReadReg(inst.Rs1)
		write = inst.Rs1 != 0
	case insts.OpCSRRWI:
		newValue = uint64(inst.Imm)
		write = true
	case insts.OpCSRRSI:
		newValue = old | uint64(inst.Imm)
		write = inst.Imm != 0
	case insts.OpCSRRCI:
		newValue = old &^ uint64(inst.Imm)
		write = inst.Imm != 0
	}

	if write && inst.Csr == CsrMisa {
		// Disabling the C bit is ignored if PC+2 would not be a valid
		// (4-byte aligned) next fetch address once compressed decoding
		// is turned off.
		const cBit = 1 << 2
		if old&cBit != 0 && newValue&cBit == 0 && (pc+2)%4 != 0 {
			newValue |= cBit
		}
	}

	if write {
		if !e.csr.Write(inst.Csr, e.priv, newValue) {
			e.deliverTrap(trapSignal{cause: CauseIllegalInstruction, tval: uint64(inst.Raw)}, pc)
			return StepResult{}
		}
	}
	if inst.Rd != 0 {
		e.regFile.WriteReg(inst.Rd, old)
	}
	e.regFile.PC = pc + instLen(inst)
	return StepResult{}
}

func (e *Emulator) executeSystem(inst *insts.Instruction, pc uint64) StepResult {
	switch inst.Op {
	case insts.OpECALL:
		if e.proxySyscalls && e.syscallHandler != nil {
			result := e.syscallHandler.Handle()
			e.regFile.PC = pc + instLen(inst)
			if result.Exited {
				return StepResult{Exited: true, ExitCode: result.ExitCode}
			}
			return StepResult{}
		}
		cause := uint64(CauseEnvironmentCallFromMMode)
		switch e.priv {
		case PrivilegeUser:
			cause = CauseEnvironmentCallFromUMode
		case PrivilegeSupervisor:
			cause = CauseEnvironmentCallFromSMode
		}
		e.deliverTrap(trapSignal{cause: cause}, pc)
		return StepResult{}
	case insts.OpEBREAK:
		return StepResult{Exited: true, ExitCode: -1}
	case insts.OpMRET:
		e.regFile.PC = e.trap.MRET()
		return StepResult{}
	case insts.OpSRET:
		e.regFile.PC = e.trap.SRET()
		return StepResult{}
	case insts.OpWFI:
		if e.priv == PrivilegeSupervisor && e.csr.mstatus&mstatusTW != 0 {
			e.deliverTrap(trapSignal{cause: CauseIllegalInstruction, tval: uint64(inst.Raw)}, pc)
			return StepResult{}
		}
		for e.csr.mie&e.csr.mip&causeInterruptMask == 0 {
			e.csr.TickCycle()
		}
		e.regFile.PC = pc + instLen(inst)
		return StepResult{}
	case insts.OpSFENCEVMA:
		e.deliverTrap(trapSignal{cause: CauseIllegalInstruction, tval: uint64(inst.Raw)}, pc)
		return StepResult{}
	default:
		panic("emu: unhandled system op")
	}
}
