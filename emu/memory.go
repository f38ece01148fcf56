package emu

// DefaultMemorySize is the size, in bytes, of the flat memory array used
// when no explicit size is requested.
const DefaultMemorySize = 1 << 20 // 1 MiB

// Memory is a flat byte-addressed array with wraparound addressing: an
// access that would run past the top of the array wraps back to address
// zero, mirroring the bounded-array model of the reference interpreter
// this emulator's test programs were written against.
type Memory struct {
	data     []byte
	size     uint64
	exitAddr uint64
	hasExit  bool
	finished bool
}

// NewMemory allocates a zeroed memory of DefaultMemorySize bytes.
func NewMemory() *Memory {
	return NewMemorySized(DefaultMemorySize)
}

// NewMemorySized allocates a zeroed memory of the given size.
func NewMemorySized(size uint64) *Memory {
	return &Memory{data: make([]byte, size), size: size}
}

// Size returns the memory's byte capacity.
func (m *Memory) Size() uint64 {
	return m.size
}

// SetExitAddress designates the address whose write terminates the run
// loop. The harness calls this before Run; a store of any byte to this
// address sets Finished.
func (m *Memory) SetExitAddress(addr uint64) {
	m.exitAddr = addr
	m.hasExit = true
}

// Finished reports whether a write to the configured exit address has
// occurred since the memory was created or reset.
func (m *Memory) Finished() bool {
	return m.finished
}

// LoadProgram copies program bytes starting at address 0, replacing
// whatever was previously there, without resizing the backing array.
func (m *Memory) LoadProgram(program []byte) {
	if len(program) > len(m.data) {
		panic("emu: program larger than memory size")
	}
	for i := range m.data {
		m.data[i] = 0
	}
	copy(m.data, program)
}

// LoadAt copies program bytes starting at the given address, honoring
// wraparound semantics identical to Write.
func (m *Memory) LoadAt(addr uint64, program []byte) {
	m.Write(addr, program)
}

func (m *Memory) readBytes(addr uint64, n int) []byte {
	out := make([]byte, n)
	a := addr % m.size
	if a+uint64(n) <= m.size {
		copy(out, m.data[a:a+uint64(n)])
		return out
	}
	first := m.size - a
	copy(out[:first], m.data[a:])
	copy(out[first:], m.data[:uint64(n)-first])
	return out
}

// Read8 reads a single byte at addr.
func (m *Memory) Read8(addr uint64) uint8 {
	return m.readBytes(addr, 1)[0]
}

// Read16 reads a little-endian 16-bit word at addr.
func (m *Memory) Read16(addr uint64) uint16 {
	b := m.readBytes(addr, 2)
	return uint16(b[0]) | uint16(b[1])<<8
}

// Read32 reads a little-endian 32-bit word at addr.
func (m *Memory) Read32(addr uint64) uint32 {
	b := m.readBytes(addr, 4)
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Read64 reads a little-endian 64-bit word at addr.
func (m *Memory) Read64(addr uint64) uint64 {
	b := m.readBytes(addr, 8)
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func (m *Memory) writeBytes(addr uint64, bytes []byte) {
	n := uint64(len(bytes))
	a := addr % m.size
	if a+n <= m.size {
		copy(m.data[a:a+n], bytes)
	} else {
		first := m.size - a
		copy(m.data[a:], bytes[:first])
		copy(m.data[:n-first], bytes[first:])
	}
	if m.hasExit {
		end := addr + n
		if addr <= m.exitAddr && m.exitAddr < end {
			m.finished = true
		}
	}
}

// Write writes raw bytes at addr.
func (m *Memory) Write(addr uint64, bytes []byte) {
	m.writeBytes(addr, bytes)
}

// Write8 writes a single byte at addr.
func (m *Memory) Write8(addr uint64, v uint8) {
	m.writeBytes(addr, []byte{v})
}

// Write16 writes a little-endian 16-bit word at addr.
func (m *Memory) Write16(addr uint64, v uint16) {
	m.writeBytes(addr, []byte{byte(v), byte(v >> 8)})
}

// Write32 writes a little-endian 32-bit word at addr.
func (m *Memory) Write32(addr uint64, v uint32) {
	m.writeBytes(addr, []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// Write64 writes a little-endian 64-bit word at addr.
func (m *Memory) Write64(addr uint64, v uint64) {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	m.writeBytes(addr, buf)
}

// CheckResult reads the four bytes at the configured exit address and
// reports whether they equal the little-endian pass code 0x00000001.
func (m *Memory) CheckResult() bool {
	if !m.hasExit {
		return false
	}
	return m.Read32(m.exitAddr) == 1
}
