package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/rv64core/emu"
)

var _ = Describe("ReservationSet", func() {
	var set *emu.ReservationSet

	BeforeEach(func() {
		set = emu.NewReservationSet()
	})

	It("should pop a reservation that exactly matches", func() {
		set.Push(0x1000, 4)
		Expect(set.Pop(0x1000, 4)).To(BeTrue())
	})

	It("should fail to pop a reservation that was never made", func() {
		Expect(set.Pop(0x1000, 4)).To(BeFalse())
	})

	It("should consume the reservation on a successful pop", func() {
		set.Push(0x1000, 4)
		set.Pop(0x1000, 4)
		Expect(set.Pop(0x1000, 4)).To(BeFalse())
	})

	It("should supersede an overlapping reservation with the newest one", func() {
		set.Push(0x1000, 8)
		set.Push(0x1004, 4)
		Expect(set.Pop(0x1000, 8)).To(BeFalse())
		Expect(set.Pop(0x1004, 4)).To(BeTrue())
	})

	It("should drop every reservation on Clear", func() {
		set.Push(0x1000, 4)
		set.Clear()
		Expect(set.Pop(0x1000, 4)).To(BeFalse())
	})
})
