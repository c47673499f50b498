package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("SystemTimer", func() {
	var (
		mockCtrl *gomock.Controller
		kernel   *MockKernel
		s        *Simulation
		timer    *SystemTimer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		kernel = NewMockKernel(mockCtrl)
		s = NewSimulation(1, 3)
		s.SetKernel(kernel)
		timer = s.Timer()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should schedule a timeout at now plus delay", func() {
		s.Clock().AdvanceSystem(4)

		timer.ScheduleInterrupt(2, 1)

		evt := s.Engine().queue.Pop().(*TimeOutEvent)
		Expect(evt.Time()).To(Equal(VTime(6)))
		Expect(evt.PID).To(Equal(1))
	})

	It("should deliver a live timeout as a TIME_OUT interrupt", func() {
		timer.ScheduleInterrupt(2, 1)
		evt := s.Engine().queue.Pop().(*TimeOutEvent)

		kernel.EXPECT().
			Interrupt(Interrupt{Kind: InterruptTimeOut, PID: 1}).
			Return(nil)

		Expect(timer.Handle(evt)).To(Succeed())
	})

	It("should discard a cancelled timeout without cost", func() {
		timer.ScheduleInterrupt(2, 1)
		evt := s.Engine().queue.Pop().(*TimeOutEvent)

		timer.CancelInterrupt(1)

		Expect(timer.Handle(evt)).To(Succeed())
		Expect(s.Clock().SystemTime()).To(Equal(VTime(0)))
	})

	It("should supersede an earlier timeout for the same process", func() {
		timer.ScheduleInterrupt(2, 1)
		stale := s.Engine().queue.Pop().(*TimeOutEvent)

		timer.ScheduleInterrupt(5, 1)
		live := s.Engine().queue.Pop().(*TimeOutEvent)

		kernel.EXPECT().
			Interrupt(Interrupt{Kind: InterruptTimeOut, PID: 1}).
			Return(nil)

		Expect(timer.Handle(stale)).To(Succeed())
		Expect(timer.Handle(live)).To(Succeed())
	})

	It("should keep timeouts of other processes live on cancel", func() {
		timer.ScheduleInterrupt(2, 1)
		timer.ScheduleInterrupt(2, 2)
		timer.CancelInterrupt(1)

		kernel.EXPECT().
			Interrupt(Interrupt{Kind: InterruptTimeOut, PID: 2}).
			Return(nil)

		for s.Engine().queue.Len() > 0 {
			evt := s.Engine().queue.Pop()
			Expect(timer.Handle(evt)).To(Succeed())
		}
	})
})
