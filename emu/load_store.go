package emu

// LoadStoreUnit implements RV64 load and store operations. Effective
// addresses are always rs1 + sign_extend(imm); this implementation does
// not trap on misaligned loads/stores, matching hardware that handles
// the access directly.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, memory: memory}
}

func (l *LoadStoreUnit) addr(rs1 uint8, imm int64) uint64 {
	return l.regFile.ReadReg(rs1) + uint64(imm)
}

func (l *LoadStoreUnit) LB(rd, rs1 uint8, imm int64) {
	v := l.memory.Read8(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, uint64(int64(int8(v))))
}

func (l *LoadStoreUnit) LBU(rd, rs1 uint8, imm int64) {
	v := l.memory.Read8(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, uint64(v))
}

func (l *LoadStoreUnit) LH(rd, rs1 uint8, imm int64) {
	v := l.memory.Read16(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, uint64(int64(int16(v))))
}

func (l *LoadStoreUnit) LHU(rd, rs1 uint8, imm int64) {
	v := l.memory.Read16(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, uint64(v))
}

func (l *LoadStoreUnit) LW(rd, rs1 uint8, imm int64) {
	v := l.memory.Read32(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, uint64(int64(int32(v))))
}

func (l *LoadStoreUnit) LWU(rd, rs1 uint8, imm int64) {
	v := l.memory.Read32(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, uint64(v))
}

func (l *LoadStoreUnit) LD(rd, rs1 uint8, imm int64) {
	v := l.memory.Read64(l.addr(rs1, imm))
	l.regFile.WriteReg(rd, v)
}

func (l *LoadStoreUnit) SB(rs1, rs2 uint8, imm int64) {
	l.memory.Write8(l.addr(rs1, imm), uint8(l.regFile.ReadReg(rs2)))
}

func (l *LoadStoreUnit) SH(rs1, rs2 uint8, imm int64) {
	l.memory.Write16(l.addr(rs1, imm), uint16(l.regFile.ReadReg(rs2)))
}

func (l *LoadStoreUnit) SW(rs1, rs2 uint8, imm int64) {
	l.memory.Write32(l.addr(rs1, imm), uint32(l.regFile.ReadReg(rs2)))
}

func (l *LoadStoreUnit) SD(rs1, rs2 uint8, imm int64) {
	l.memory.Write64(l.addr(rs1, imm), l.regFile.ReadReg(rs2))
}
