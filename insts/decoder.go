package insts

// Op identifies the canonical operation a decoded instruction performs.
// Compressed instructions decode to the same Op as their base-ISA
// equivalent; the Compressed flag on Instruction records which encoding
// was actually read from memory.
type Op uint16

const (
	OpUnknown Op = iota

	// RV64I
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpLWU
	OpLD
	OpSB
	OpSH
	OpSW
	OpSD
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpADDIW
	OpSLLIW
	OpSRLIW
	OpSRAIW
	OpADDW
	OpSUBW
	OpSLLW
	OpSRLW
	OpSRAW
	OpFENCE
	OpECALL
	OpEBREAK

	// Zifencei
	OpFENCEI

	// Zicsr
	OpCSRRW
	OpCSRRS
	OpCSRRC
	OpCSRRWI
	OpCSRRSI
	OpCSRRCI

	// System / privileged
	OpMRET
	OpSRET
	OpWFI
	OpSFENCEVMA

	// M extension
	OpMUL
	OpMULH
	OpMULHSU
	OpMULHU
	OpDIV
	OpDIVU
	OpREM
	OpREMU
	OpMULW
	OpDIVW
	OpDIVUW
	OpREMW
	OpREMUW

	// A extension
	OpLRW
	OpSCW
	OpAMOSWAPW
	OpAMOADDW
	OpAMOXORW
	OpAMOANDW
	OpAMOORW
	OpAMOMINW
	OpAMOMAXW
	OpAMOMINUW
	OpAMOMAXUW
	OpLRD
	OpSCD
	OpAMOSWAPD
	OpAMOADDD
	OpAMOXORD
	OpAMOANDD
	OpAMOORD
	OpAMOMIND
	OpAMOMAXD
	OpAMOMINUD
	OpAMOMAXUD
)

// Format names the base-ISA encoding shape (or the compressed quadrant
// layout) that produced an instruction.
type Format uint8

const (
	FormatInvalid Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
	FormatSystem
	FormatAtomic
	// Compressed formats, named as the manual names them.
	FormatCR
	FormatCI
	FormatCSS
	FormatCIW
	FormatCL
	FormatCS
	FormatCA
	FormatCB
	FormatCJ
)

// Class groups an Op by the kind of side effect it has on architectural
// state, used by the executor to dispatch without a type switch per Op.
type Class uint8

const (
	ClassInvalid Class = iota
	ClassAlu
	ClassLoad
	ClassStore
	ClassBranch
	ClassJump
	ClassCsr
	ClassAtomic
	ClassSystem
	ClassFence
)

// Subset names the ISA extension an Op belongs to.
type Subset uint8

const (
	SubsetInvalid Subset = iota
	SubsetI
	SubsetM
	SubsetA
	SubsetC
	SubsetZicsr
	SubsetZifencei
)

// Instruction is the decoded, value-typed descriptor the executor consumes.
// It is produced fresh by Decode every cycle and discarded after execute.
type Instruction struct {
	Op         Op
	Format     Format
	Class      Class
	Subset     Subset
	Raw        uint32
	Compressed bool

	Rd  uint8
	Rs1 uint8
	Rs2 uint8

	// Imm carries the sign-extended immediate for I/S/B/U/J formats, the
	// shift amount for shift ops, and the zero-extended 5-bit immediate
	// for the CSRRxI forms.
	Imm int64

	Csr uint16

	Aq bool
	Rl bool
}

// Decoder decodes RV64 code words with no retained state between calls.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode classifies a 32-bit fetched word. If bits [1:0] are not 11 the
// low 16 bits are a compressed instruction; otherwise the full 32 bits
// are a base-ISA instruction.
func (d *Decoder) Decode(word uint32) *Instruction {
	if word&0x3 != 0x3 {
		return d.decodeCompressed(uint16(word))
	}
	return d.decode32(word)
}

func invalid(raw uint32, compressed bool) *Instruction {
	return &Instruction{Op: OpUnknown, Format: FormatInvalid, Class: ClassInvalid, Subset: SubsetInvalid, Raw: raw, Compressed: compressed}
}

func signExtend(value uint32, bits uint) int64 {
	shift := 32 - bits
	return int64(int32(value<<shift) >> shift)
}

// ---- 32-bit decoding ----

func (d *Decoder) decode32(word uint32) *Instruction {
	opcode := word & 0x7f
	rd := uint8((word >> 7) & 0x1f)
	funct3 := uint8((word >> 12) & 0x7)
	rs1 := uint8((word >> 15) & 0x1f)
	rs2 := uint8((word >> 20) & 0x1f)
	funct7 := uint8((word >> 25) & 0x7f)

	switch opcode {
	case 0x37: // LUI
		imm := int64(int32(word & 0xfffff000))
		return &Instruction{Op: OpLUI, Format: FormatU, Class: ClassAlu, Subset: SubsetI, Raw: word, Rd: rd, Imm: imm}
	case 0x17: // AUIPC
		imm := int64(int32(word & 0xfffff000))
		return &Instruction{Op: OpAUIPC, Format: FormatU, Class: ClassAlu, Subset: SubsetI, Raw: word, Rd: rd, Imm: imm}
	case 0x6f: // JAL
		raw := ((word>>31)&1)<<20 | ((word>>12)&0xff)<<12 | ((word>>20)&1)<<11 | ((word>>21)&0x3ff)<<1
		imm := signExtend(raw, 21)
		return &Instruction{Op: OpJAL, Format: FormatJ, Class: ClassJump, Subset: SubsetI, Raw: word, Rd: rd, Imm: imm}
	case 0x67: // JALR
		imm := signExtend(word>>20, 12)
		return &Instruction{Op: OpJALR, Format: FormatI, Class: ClassJump, Subset: SubsetI, Raw: word, Rd: rd, Rs1: rs1, Imm: imm}
	case 0x63: // branches
		raw := ((word>>31)&1)<<12 | ((word>>7)&1)<<11 | ((word>>25)&0x3f)<<5 | ((word>>8)&0xf)<<1
		imm := signExtend(raw, 13)
		inst := &Instruction{Format: FormatB, Class: ClassBranch, Subset: SubsetI, Raw: word, Rs1: rs1, Rs2: rs2, Imm: imm}
		switch funct3 {
		case 0b000:
			inst.Op = OpBEQ
		case 0b001:
			inst.Op = OpBNE
		case 0b100:
			inst.Op = OpBLT
		case 0b101:
			inst.Op = OpBGE
		case 0b110:
			inst.Op = OpBLTU
		case 0b111:
			inst.Op = OpBGEU
		default:
			return invalid(word, false)
		}
		return inst
	case 0x03: // loads
		imm := signExtend(word>>20, 12)
		inst := &Instruction{Format: FormatI, Class: ClassLoad, Subset: SubsetI, Raw: word, Rd: rd, Rs1: rs1, Imm: imm}
		switch funct3 {
		case 0b000:
			inst.Op = OpLB
		case 0b001:
			inst.Op = OpLH
		case 0b010:
			inst.Op = OpLW
		case 0b011:
			inst.Op = OpLD
		case 0b100:
			inst.Op = OpLBU
		case 0b101:
			inst.Op = OpLHU
		case 0b110:
			inst.Op = OpLWU
		default:
			return invalid(word, false)
		}
		return inst
	case 0x23: // stores
		raw := (((word >> 25) & 0x7f) << 5) | ((word >> 7) & 0x1f)
		imm := signExtend(raw, 12)
		inst := &Instruction{Format: FormatS, Class: ClassStore, Subset: SubsetI, Raw: word, Rs1: rs1, Rs2: rs2, Imm: imm}
		switch funct3 {
		case 0b000:
			inst.Op = OpSB
		case 0b001:
			inst.Op = OpSH
		case 0b010:
			inst.Op = OpSW
		case 0b011:
			inst.Op = OpSD
		default:
			return invalid(word, false)
		}
		return inst
	case 0x13: // OP-IMM
		return decodeOpImm(word, rd, rs1, funct3, false)
	case 0x1b: // OP-IMM-32
		return decodeOpImm(word, rd, rs1, funct3, true)
	case 0x33: // OP
		return decodeOp(word, rd, rs1, rs2, funct3, funct7, false)
	case 0x3b: // OP-32
		return decodeOp(word, rd, rs1, rs2, funct3, funct7, true)
	case 0x0f: // MISC-MEM
		if funct3 == 0b001 {
			return &Instruction{Op: OpFENCEI, Format: FormatSystem, Class: ClassFence, Subset: SubsetZifencei, Raw: word}
		}
		if word == 0x8330000f || word == 0x0100000f { // FENCE.TSO, PAUSE
			return invalid(word, false)
		}
		return &Instruction{Op: OpFENCE, Format: FormatSystem, Class: ClassFence, Subset: SubsetI, Raw: word}
	case 0x73: // SYSTEM
		return decodeSystem(word, rd, rs1, rs2, funct3, funct7)
	case 0x2f: // AMO
		return decodeAmo(word, rd, rs1, rs2, funct3, funct7)
	default:
		return invalid(word, false)
	}
}

func decodeOpImm(word uint32, rd, rs1, funct3 uint8, word32 bool) *Instruction {
	imm := signExtend(word>>20, 12)
	inst := &Instruction{Format: FormatI, Class: ClassAlu, Subset: SubsetI, Raw: word, Rd: rd, Rs1: rs1, Imm: imm}
	// shamt is 6 bits (bits[25:20]) for the 64-bit forms and 5 bits
	// (bits[24:20]) for the *IW forms; the remaining high bits are the
	// shift-kind selector (funct6 for 64-bit, funct7 for *IW).
	var shamtBits uint
	var shiftKind uint8
	var shiftArith uint8
	if word32 {
		shamtBits = 5
		shiftKind = uint8((word >> 25) & 0x7f)
		shiftArith = 0b0100000
	} else {
		shamtBits = 6
		shiftKind = uint8((word >> 26) & 0x3f)
		shiftArith = 0b010000
	}
	switch funct3 {
	case 0b000:
		inst.Op = pick(word32, OpADDIW, OpADDI)
	case 0b010:
		if word32 {
			return invalid(word, false)
		}
		inst.Op = OpSLTI
	case 0b011:
		if word32 {
			return invalid(word, false)
		}
		inst.Op = OpSLTIU
	case 0b100:
		if word32 {
			return invalid(word, false)
		}
		inst.Op = OpXORI
	case 0b110:
		if word32 {
			return invalid(word, false)
		}
		inst.Op = OpORI
	case 0b111:
		if word32 {
			return invalid(word, false)
		}
		inst.Op = OpANDI
	case 0b001:
		if shiftKind != 0 {
			return invalid(word, false)
		}
		inst.Op = pick(word32, OpSLLIW, OpSLLI)
		inst.Imm = int64((word >> 20) & ((1 << shamtBits) - 1))
	case 0b101:
		switch shiftKind {
		case 0:
			inst.Op = pick(word32, OpSRLIW, OpSRLI)
		case shiftArith:
			inst.Op = pick(word32, OpSRAIW, OpSRAI)
		default:
			return invalid(word, false)
		}
		inst.Imm = int64((word >> 20) & ((1 << shamtBits) - 1))
	default:
		return invalid(word, false)
	}
	return inst
}

func pick(word32 bool, ifW, ifNot Op) Op {
	if word32 {
		return ifW
	}
	return ifNot
}

func decodeOp(word uint32, rd, rs1, rs2, funct3, funct7 uint8, word32 bool) *Instruction {
	inst := &Instruction{Format: FormatR, Class: ClassAlu, Raw: word, Rd: rd, Rs1: rs1, Rs2: rs2}
	switch funct7 {
	case 0b0000000:
		inst.Subset = SubsetI
		switch funct3 {
		case 0b000:
			inst.Op = pick(word32, OpADDW, OpADD)
		case 0b001:
			if word32 {
				return invalid(word, false)
			}
			inst.Op = OpSLL
		case 0b010:
			if word32 {
				return invalid(word, false)
			}
			inst.Op = OpSLT
		case 0b011:
			if word32 {
				return invalid(word, false)
			}
			inst.Op = OpSLTU
		case 0b100:
			if word32 {
				return invalid(word, false)
			}
			inst.Op = OpXOR
		case 0b101:
			inst.Op = pick(word32, OpSRLW, OpSRL)
		case 0b110:
			if word32 {
				return invalid(word, false)
			}
			inst.Op = OpOR
		case 0b111:
			if word32 {
				return invalid(word, false)
			}
			inst.Op = OpAND
		default:
			return invalid(word, false)
		}
	case 0b0100000:
		inst.Subset = SubsetI
		switch funct3 {
		case 0b000:
			inst.Op = pick(word32, OpSUBW, OpSUB)
		case 0b101:
			inst.Op = pick(word32, OpSRAW, OpSRA)
		default:
			return invalid(word, false)
		}
	case 0b0000001:
		inst.Subset = SubsetM
		if word32 {
			switch funct3 {
			case 0b000:
				inst.Op = OpMULW
			case 0b100:
				inst.Op = OpDIVW
			case 0b101:
				inst.Op = OpDIVUW
			case 0b110:
				inst.Op = OpREMW
			case 0b111:
				inst.Op = OpREMUW
			default:
				return invalid(word, false)
			}
		} else {
			switch funct3 {
			case 0b000:
				inst.Op = OpMUL
			case 0b001:
				inst.Op = OpMULH
			case 0b010:
				inst.Op = OpMULHSU
			case 0b011:
				inst.Op = OpMULHU
			case 0b100:
				inst.Op = OpDIV
			case 0b101:
				inst.Op = OpDIVU
			case 0b110:
				inst.Op = OpREM
			case 0b111:
				inst.Op = OpREMU
			default:
				return invalid(word, false)
			}
		}
	default:
		return invalid(word, false)
	}
	return inst
}

func decodeSystem(word uint32, rd, rs1, rs2, funct3, funct7 uint8) *Instruction {
	if funct3 != 0 {
		imm := uint16(word >> 20)
		inst := &Instruction{Format: FormatI, Class: ClassCsr, Subset: SubsetZicsr, Raw: word, Rd: rd, Rs1: rs1, Csr: imm}
		switch funct3 {
		case 0b001:
			inst.Op = OpCSRRW
		case 0b010:
			inst.Op = OpCSRRS
		case 0b011:
			inst.Op = OpCSRRC
		case 0b101:
			inst.Op = OpCSRRWI
			inst.Imm = int64(rs1)
		case 0b110:
			inst.Op = OpCSRRSI
			inst.Imm = int64(rs1)
		case 0b111:
			inst.Op = OpCSRRCI
			inst.Imm = int64(rs1)
		default:
			return invalid(word, false)
		}
		return inst
	}
	funct12 := word >> 20
	switch {
	case funct12 == 0x000 && rd == 0 && rs1 == 0:
		return &Instruction{Op: OpECALL, Format: FormatSystem, Class: ClassSystem, Subset: SubsetI, Raw: word}
	case funct12 == 0x001 && rd == 0 && rs1 == 0:
		return &Instruction{Op: OpEBREAK, Format: FormatSystem, Class: ClassSystem, Subset: SubsetI, Raw: word}
	case funct12 == 0x102 && rd == 0 && rs1 == 0:
		return &Instruction{Op: OpSRET, Format: FormatSystem, Class: ClassSystem, Subset: SubsetI, Raw: word}
	case funct12 == 0x302 && rd == 0 && rs1 == 0:
		return &Instruction{Op: OpMRET, Format: FormatSystem, Class: ClassSystem, Subset: SubsetI, Raw: word}
	case funct12 == 0x105 && rd == 0 && rs1 == 0:
		return &Instruction{Op: OpWFI, Format: FormatSystem, Class: ClassSystem, Subset: SubsetI, Raw: word}
	case funct7 == 0b0001001 && rd == 0:
		return &Instruction{Op: OpSFENCEVMA, Format: FormatSystem, Class: ClassSystem, Subset: SubsetI, Raw: word, Rs1: rs1, Rs2: rs2}
	default:
		return invalid(word, false)
	}
}

func decodeAmo(word uint32, rd, rs1, rs2, funct3, funct7 uint8) *Instruction {
	if funct3 != 0b010 && funct3 != 0b011 {
		return invalid(word, false)
	}
	isDouble := funct3 == 0b011
	funct5 := funct7 >> 2
	aq := funct7&0x2 != 0
	rl := funct7&0x1 != 0
	inst := &Instruction{Format: FormatAtomic, Class: ClassAtomic, Subset: SubsetA, Raw: word, Rd: rd, Rs1: rs1, Rs2: rs2, Aq: aq, Rl: rl}
	var table map[uint8]Op
	if isDouble {
		table = map[uint8]Op{
			0b00010: OpLRD, 0b00011: OpSCD, 0b00001: OpAMOSWAPD, 0b00000: OpAMOADDD,
			0b00100: OpAMOXORD, 0b01100: OpAMOANDD, 0b01000: OpAMOORD, 0b10000: OpAMOMIND,
			0b10100: OpAMOMAXD, 0b11000: OpAMOMINUD, 0b11100: OpAMOMAXUD,
		}
	} else {
		table = map[uint8]Op{
			0b00010: OpLRW, 0b00011: OpSCW, 0b00001: OpAMOSWAPW, 0b00000: OpAMOADDW,
			0b00100: OpAMOXORW, 0b01100: OpAMOANDW, 0b01000: OpAMOORW, 0b10000: OpAMOMINW,
			0b10100: OpAMOMAXW, 0b11000: OpAMOMINUW, 0b11100: OpAMOMAXUW,
		}
	}
	op, ok := table[funct5]
	if !ok {
		return invalid(word, false)
	}
	if (op == OpLRW || op == OpLRD) && rs2 != 0 {
		return invalid(word, false)
	}
	inst.Op = op
	return inst
}

// ---- compressed (16-bit) decoding ----

func cReg(bits uint16) uint8 {
	return uint8(bits&0x7) + 8
}

func (d *Decoder) decodeCompressed(word uint16) *Instruction {
	raw := uint32(word)
	if word == 0 {
		return invalid(raw, true)
	}
	quadrant := word & 0x3
	funct3 := (word >> 13) & 0x7

	mk := func(op Op, format Format, class Class) *Instruction {
		return &Instruction{Op: op, Format: format, Class: class, Subset: SubsetC, Raw: raw, Compressed: true}
	}

	switch quadrant {
	case 0b00:
		rdp := cReg(word >> 2)
		rs1p := cReg(word >> 7)
		switch funct3 {
		case 0b000: // C.ADDI4SPN
			nzuimm := ((word>>7)&0xf)<<6 | ((word>>11)&0x3)<<4 | ((word>>5)&0x1)<<3 | ((word>>6)&0x1)<<2
			if nzuimm == 0 {
				return invalid(raw, true)
			}
			inst := mk(OpADDI, FormatCIW, ClassAlu)
			inst.Rd, inst.Rs1, inst.Imm = rdp, 2, int64(nzuimm)
			return inst
		case 0b010: // C.LW
			imm := ((word>>5)&0x1)<<6 | ((word>>10)&0x7)<<3 | ((word>>6)&0x1)<<2
			inst := mk(OpLW, FormatCL, ClassLoad)
			inst.Rd, inst.Rs1, inst.Imm = rdp, rs1p, int64(imm)
			return inst
		case 0b011: // C.LD
			imm := ((word>>5)&0x3)<<6 | ((word>>10)&0x7)<<3
			inst := mk(OpLD, FormatCL, ClassLoad)
			inst.Rd, inst.Rs1, inst.Imm = rdp, rs1p, int64(imm)
			return inst
		case 0b110: // C.SW
			imm := ((word>>5)&0x1)<<6 | ((word>>10)&0x7)<<3 | ((word>>6)&0x1)<<2
			inst := mk(OpSW, FormatCS, ClassStore)
			inst.Rs1, inst.Rs2, inst.Imm = rs1p, rdp, int64(imm)
			return inst
		case 0b111: // C.SD
			imm := ((word>>5)&0x3)<<6 | ((word>>10)&0x7)<<3
			inst := mk(OpSD, FormatCS, ClassStore)
			inst.Rs1, inst.Rs2, inst.Imm = rs1p, rdp, int64(imm)
			return inst
		default:
			return invalid(raw, true)
		}
	case 0b01:
		rd := uint8((word >> 7) & 0x1f)
		switch funct3 {
		case 0b000: // C.ADDI (incl C.NOP)
			imm := signExtend(uint32(((word>>12)&0x1)<<5|((word>>2)&0x1f)), 6)
			inst := mk(OpADDI, FormatCI, ClassAlu)
			inst.Rd, inst.Rs1, inst.Imm = rd, rd, imm
			return inst
		case 0b001: // C.ADDIW
			imm := signExtend(uint32(((word>>12)&0x1)<<5|((word>>2)&0x1f)), 6)
			if rd == 0 {
				return invalid(raw, true)
			}
			inst := mk(OpADDIW, FormatCI, ClassAlu)
			inst.Rd, inst.Rs1, inst.Imm = rd, rd, imm
			return inst
		case 0b010: // C.LI
			imm := signExtend(uint32(((word>>12)&0x1)<<5|((word>>2)&0x1f)), 6)
			inst := mk(OpADDI, FormatCI, ClassAlu)
			inst.Rd, inst.Rs1, inst.Imm = rd, 0, imm
			return inst
		case 0b011:
			if rd == 2 { // C.ADDI16SP
				raw16 := ((word>>12)&0x1)<<9 | ((word>>3)&0x3)<<7 | ((word>>5)&0x1)<<6 | ((word>>2)&0x1)<<5 | ((word>>6)&0x1)<<4
				imm := signExtend(uint32(raw16), 10)
				if imm == 0 {
					return invalid(raw, true)
				}
				inst := mk(OpADDI, FormatCI, ClassAlu)
				inst.Rd, inst.Rs1, inst.Imm = 2, 2, imm
				return inst
			}
			// C.LUI
			nzimm := ((word>>12)&0x1)<<17 | ((word>>2)&0x1f)<<12
			if nzimm == 0 || rd == 0 {
				return invalid(raw, true)
			}
			inst := mk(OpLUI, FormatCI, ClassAlu)
			inst.Rd, inst.Imm = rd, signExtend(uint32(nzimm), 18)
			return inst
		case 0b100:
			rdp := cReg(word >> 7)
			grp := (word >> 10) & 0x3
			switch grp {
			case 0b00: // C.SRLI
				shamt := ((word>>12)&0x1)<<5 | ((word>>2)&0x1f)
				inst := mk(OpSRLI, FormatCB, ClassAlu)
				inst.Rd, inst.Rs1, inst.Imm = rdp, rdp, int64(shamt)
				return inst
			case 0b01: // C.SRAI
				shamt := ((word>>12)&0x1)<<5 | ((word>>2)&0x1f)
				inst := mk(OpSRAI, FormatCB, ClassAlu)
				inst.Rd, inst.Rs1, inst.Imm = rdp, rdp, int64(shamt)
				return inst
			case 0b10: // C.ANDI
				imm := signExtend(uint32(((word>>12)&0x1)<<5|((word>>2)&0x1f)), 6)
				inst := mk(OpANDI, FormatCB, ClassAlu)
				inst.Rd, inst.Rs1, inst.Imm = rdp, rdp, imm
				return inst
			case 0b11:
				rs2p := cReg(word >> 2)
				sub := (word >> 5) & 0x3
				isW := (word>>12)&0x1 != 0
				var op Op
				switch {
				case !isW && sub == 0b00:
					op = OpSUB
				case !isW && sub == 0b01:
					op = OpXOR
				case !isW && sub == 0b10:
					op = OpOR
				case !isW && sub == 0b11:
					op = OpAND
				case isW && sub == 0b00:
					op = OpSUBW
				case isW && sub == 0b01:
					op = OpADDW
				default:
					return invalid(raw, true)
				}
				inst := mk(op, FormatCA, ClassAlu)
				inst.Rd, inst.Rs1, inst.Rs2 = rdp, rdp, rs2p
				return inst
			}
			return invalid(raw, true)
		case 0b101: // C.J
			raw11 := ((word>>12)&0x1)<<11 | ((word>>8)&0x1)<<10 | ((word>>9)&0x3)<<8 | ((word>>6)&0x1)<<7 |
				((word>>7)&0x1)<<6 | ((word>>2)&0x1)<<5 | ((word>>11)&0x1)<<4 | ((word>>3)&0x7)<<1
			imm := signExtend(uint32(raw11), 12)
			inst := mk(OpJAL, FormatCJ, ClassJump)
			inst.Rd, inst.Imm = 0, imm
			return inst
		case 0b110, 0b111: // C.BEQZ / C.BNEZ
			rs1p := cReg(word >> 7)
			raw8 := ((word>>12)&0x1)<<8 | ((word>>5)&0x3)<<6 | ((word>>2)&0x1)<<5 | ((word>>10)&0x3)<<3 | ((word>>3)&0x3)<<1
			imm := signExtend(uint32(raw8), 9)
			op := OpBEQ
			if funct3 == 0b111 {
				op = OpBNE
			}
			inst := mk(op, FormatCB, ClassBranch)
			inst.Rs1, inst.Rs2, inst.Imm = rs1p, 0, imm
			return inst
		}
		return invalid(raw, true)
	case 0b10:
		rd := uint8((word >> 7) & 0x1f)
		switch funct3 {
		case 0b000: // C.SLLI
			shamt := ((word>>12)&0x1)<<5 | ((word>>2)&0x1f)
			if rd == 0 {
				return invalid(raw, true)
			}
			inst := mk(OpSLLI, FormatCI, ClassAlu)
			inst.Rd, inst.Rs1, inst.Imm = rd, rd, int64(shamt)
			return inst
		case 0b010: // C.LWSP
			if rd == 0 {
				return invalid(raw, true)
			}
			imm := ((word>>4)&0x7)<<2 | ((word>>12)&0x1)<<5 | ((word>>2)&0x3)<<6
			inst := mk(OpLW, FormatCI, ClassLoad)
			inst.Rd, inst.Rs1, inst.Imm = rd, 2, int64(imm)
			return inst
		case 0b011: // C.LDSP
			if rd == 0 {
				return invalid(raw, true)
			}
			imm := ((word>>5)&0x3)<<3 | ((word>>12)&0x1)<<5 | ((word>>2)&0x7)<<6
			inst := mk(OpLD, FormatCI, ClassLoad)
			inst.Rd, inst.Rs1, inst.Imm = rd, 2, int64(imm)
			return inst
		case 0b100:
			rs2 := uint8((word >> 2) & 0x1f)
			bit12 := (word >> 12) & 0x1
			switch {
			case bit12 == 0 && rs2 == 0: // C.JR
				if rd == 0 {
					return invalid(raw, true)
				}
				inst := mk(OpJALR, FormatCR, ClassJump)
				inst.Rd, inst.Rs1, inst.Imm = 0, rd, 0
				return inst
			case bit12 == 0: // C.MV
				inst := mk(OpADD, FormatCR, ClassAlu)
				inst.Rd, inst.Rs1, inst.Rs2 = rd, 0, rs2
				return inst
			case bit12 == 1 && rd == 0 && rs2 == 0: // C.EBREAK
				return mk(OpEBREAK, FormatCR, ClassSystem)
			case bit12 == 1 && rs2 == 0: // C.JALR
				inst := mk(OpJALR, FormatCR, ClassJump)
				inst.Rd, inst.Rs1, inst.Imm = 1, rd, 0
				return inst
			default: // C.ADD
				inst := mk(OpADD, FormatCR, ClassAlu)
				inst.Rd, inst.Rs1, inst.Rs2 = rd, rd, rs2
				return inst
			}
		case 0b110: // C.SWSP
			rs2 := uint8((word >> 2) & 0x1f)
			imm := ((word>>9)&0xf)<<2 | ((word>>7)&0x3)<<6
			inst := mk(OpSW, FormatCSS, ClassStore)
			inst.Rs1, inst.Rs2, inst.Imm = 2, rs2, int64(imm)
			return inst
		case 0b111: // C.SDSP
			rs2 := uint8((word >> 2) & 0x1f)
			imm := ((word>>10)&0x7)<<3 | ((word>>7)&0x7)<<6
			inst := mk(OpSD, FormatCSS, ClassStore)
			inst.Rs1, inst.Rs2, inst.Imm = 2, rs2, int64(imm)
			return inst
		}
		return invalid(raw, true)
	default: // 0b11 cannot reach decodeCompressed
		return invalid(raw, true)
	}
}
