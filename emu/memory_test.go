package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemorySized(64)
	})

	Describe("byte-addressed access", func() {
		It("should round-trip a byte", func() {
			memory.Write8(10, 0xAB)
			Expect(memory.Read8(10)).To(Equal(uint8(0xAB)))
		})

		It("should store multi-byte values little-endian", func() {
			memory.Write32(0, 0x01020304)
			Expect(memory.Read8(0)).To(Equal(uint8(0x04)))
			Expect(memory.Read8(1)).To(Equal(uint8(0x03)))
			Expect(memory.Read8(2)).To(Equal(uint8(0x02)))
			Expect(memory.Read8(3)).To(Equal(uint8(0x01)))
		})

		It("should round-trip a 64-bit word", func() {
			memory.Write64(8, 0x0102030405060708)
			Expect(memory.Read64(8)).To(Equal(uint64(0x0102030405060708)))
		})
	})

	Describe("address wraparound", func() {
		It("should wrap a read that starts past the top of memory", func() {
			memory.Write8(0, 0x99)
			Expect(memory.Read8(64)).To(Equal(uint8(0x99)))
		})

		It("should split a write across the wraparound boundary", func() {
			memory.Write32(62, 0x11223344)
			Expect(memory.Read8(62)).To(Equal(uint8(0x44)))
			Expect(memory.Read8(63)).To(Equal(uint8(0x33)))
			Expect(memory.Read8(0)).To(Equal(uint8(0x22)))
			Expect(memory.Read8(1)).To(Equal(uint8(0x11)))
		})
	})

	Describe("program loading", func() {
		It("should zero-fill memory before loading a new program", func() {
			memory.Write8(5, 0xFF)
			memory.LoadProgram([]byte{0x01, 0x02})
			Expect(memory.Read8(0)).To(Equal(uint8(0x01)))
			Expect(memory.Read8(5)).To(Equal(uint8(0)))
		})

		It("should panic when a program exceeds the memory size", func() {
			Expect(func() {
				memory.LoadProgram(make([]byte, 65))
			}).To(Panic())
		})
	})

	Describe("exit address", func() {
		It("should not be finished until the exit address is written", func() {
			memory.SetExitAddress(16)
			Expect(memory.Finished()).To(BeFalse())
			memory.Write32(16, 1)
			Expect(memory.Finished()).To(BeTrue())
		})

		It("should report pass when the exit word equals 1", func() {
			memory.SetExitAddress(16)
			memory.Write32(16, 1)
			Expect(memory.CheckResult()).To(BeTrue())
		})

		It("should report failure when the exit word is nonzero but not 1", func() {
			memory.SetExitAddress(16)
			memory.Write32(16, 2)
			Expect(memory.CheckResult()).To(BeFalse())
		})
	})
})
