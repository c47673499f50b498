package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Clock", func() {
	var clock *Clock

	BeforeEach(func() {
		clock = NewClock(1, 3)
	})

	It("should start at time zero", func() {
		Expect(clock.Now()).To(Equal(VTime(0)))
		Expect(clock.UserTime()).To(Equal(VTime(0)))
		Expect(clock.SystemTime()).To(Equal(VTime(0)))
	})

	It("should count user time as system time", func() {
		clock.AdvanceUser(10)

		Expect(clock.UserTime()).To(Equal(VTime(10)))
		Expect(clock.SystemTime()).To(Equal(VTime(10)))
	})

	It("should not count system time as user time", func() {
		clock.AdvanceSystem(10)

		Expect(clock.UserTime()).To(Equal(VTime(0)))
		Expect(clock.SystemTime()).To(Equal(VTime(10)))
	})

	It("should charge the syscall cost", func() {
		clock.LogSysCall()
		clock.LogSysCall()

		Expect(clock.SystemTime()).To(Equal(VTime(2)))
		Expect(clock.UserTime()).To(Equal(VTime(0)))
	})

	It("should charge the syscall cost for interrupts", func() {
		clock.LogInterrupt()

		Expect(clock.SystemTime()).To(Equal(VTime(1)))
	})

	It("should charge the context switch cost", func() {
		clock.LogContextSwitch()

		Expect(clock.SystemTime()).To(Equal(VTime(3)))
		Expect(clock.UserTime()).To(Equal(VTime(0)))
	})

	It("should rewind to zero on reset, keeping costs", func() {
		clock.AdvanceUser(5)
		clock.LogContextSwitch()

		clock.Reset()

		Expect(clock.Now()).To(Equal(VTime(0)))
		Expect(clock.UserTime()).To(Equal(VTime(0)))

		clock.LogContextSwitch()
		Expect(clock.SystemTime()).To(Equal(VTime(3)))
	})

	It("should render zero-padded times", func() {
		clock.AdvanceUser(7)
		clock.AdvanceSystem(5)

		Expect(clock.String()).To(
			Equal("system time: 0000000012, user time: 0000000007"))
	})
})
