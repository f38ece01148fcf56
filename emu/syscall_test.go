package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("DefaultSyscallHandler", func() {
	const (
		regA0 = 10
		regA1 = 11
		regA2 = 12
		regA7 = 17
	)

	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		stdout  bytes.Buffer
		stderr  bytes.Buffer
		handler *emu.DefaultSyscallHandler
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemorySized(4096)
		stdout.Reset()
		stderr.Reset()
		handler = emu.NewDefaultSyscallHandler(regFile, memory, &stdout, &stderr)
	})

	Describe("write", func() {
		It("should route fd 1 to the stdout writer", func() {
			msg := []byte("hello")
			memory.Write(0x100, msg)

			regFile.WriteReg(regA0, 1)
			regFile.WriteReg(regA1, 0x100)
			regFile.WriteReg(regA2, uint64(len(msg)))
			regFile.WriteReg(regA7, emu.SyscallWrite)

			result := handler.Handle()
			Expect(result.Exited).To(BeFalse())
			Expect(stdout.String()).To(Equal("hello"))
			Expect(regFile.ReadReg(regA0)).To(Equal(uint64(len(msg))))
		})

		It("should route fd 2 to the stderr writer", func() {
			msg := []byte("oops")
			memory.Write(0x100, msg)

			regFile.WriteReg(regA0, 2)
			regFile.WriteReg(regA1, 0x100)
			regFile.WriteReg(regA2, uint64(len(msg)))
			regFile.WriteReg(regA7, emu.SyscallWrite)

			handler.Handle()
			Expect(stderr.String()).To(Equal("oops"))
		})
	})

	Describe("read", func() {
		It("should report zero bytes when no stdin reader is configured", func() {
			regFile.WriteReg(regA0, 0)
			regFile.WriteReg(regA1, 0x200)
			regFile.WriteReg(regA2, 16)
			regFile.WriteReg(regA7, emu.SyscallRead)

			handler.Handle()
			Expect(regFile.ReadReg(regA0)).To(Equal(uint64(0)))
		})

		It("should read from a configured stdin reader into guest memory", func() {
			handler.SetStdin(bytes.NewBufferString("hi"))

			regFile.WriteReg(regA0, 0)
			regFile.WriteReg(regA1, 0x200)
			regFile.WriteReg(regA2, 2)
			regFile.WriteReg(regA7, emu.SyscallRead)

			handler.Handle()
			Expect(regFile.ReadReg(regA0)).To(Equal(uint64(2)))
			Expect(memory.Read8(0x200)).To(Equal(uint8('h')))
			Expect(memory.Read8(0x201)).To(Equal(uint8('i')))
		})
	})

	Describe("exit", func() {
		It("should report Exited with the a0 exit code", func() {
			regFile.WriteReg(regA0, 42)
			regFile.WriteReg(regA7, emu.SyscallExit)

			result := handler.Handle()
			Expect(result.Exited).To(BeTrue())
			Expect(result.ExitCode).To(Equal(int64(42)))
		})
	})

	Describe("unknown syscalls", func() {
		It("should set a0 to -ENOSYS", func() {
			regFile.WriteReg(regA7, 9999)

			handler.Handle()
			Expect(int64(regFile.ReadReg(regA0))).To(Equal(int64(-emu.ENOSYS)))
		})
	})
})
