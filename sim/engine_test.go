package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Engine", func() {
	var (
		mockCtrl *gomock.Controller
		kernel   *MockKernel
		s        *Simulation
		engine   *Engine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		kernel = NewMockKernel(mockCtrl)
		s = NewSimulation(1, 3)
		s.SetKernel(kernel)
		engine = s.Engine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic when scheduling earlier than now", func() {
		s.Clock().AdvanceSystem(10)

		Expect(func() {
			engine.Schedule(NewExecveEvent(5, s, "prog", 0))
		}).To(Panic())
	})

	It("should finish immediately with no events", func() {
		Expect(s.Run()).To(Succeed())
		Expect(s.Clock().SystemTime()).To(Equal(VTime(0)))
	})

	It("should advance idle time up to the next event", func() {
		s.StageProgram(5, "prog", 0)

		kernel.EXPECT().
			Syscall(Syscall{Kind: SyscallExecve, Program: "prog"}).
			Return(nil)

		Expect(s.Run()).To(Succeed())

		// 5 units idle + 1 unit EXECVE syscall cost
		Expect(s.Clock().SystemTime()).To(Equal(VTime(6)))
		Expect(s.Clock().UserTime()).To(Equal(VTime(0)))
	})

	It("should fire overdue events at the current time and drain the CPU",
		func() {
			path := writeProgram("prog", "CPU 10\n")
			s.StageProgram(0, path, 0)
			s.StageProgram(5, path, 0)

			execve := Syscall{Kind: SyscallExecve, Program: path}

			kernel.EXPECT().Syscall(execve).DoAndReturn(func(Syscall) error {
				p, err := s.LoadProgram(path)
				Expect(err).ToNot(HaveOccurred())
				s.CPU().ContextSwitch(p)
				p.SetState(StateRunning)
				return nil
			})
			kernel.EXPECT().Syscall(execve).Return(nil)
			kernel.EXPECT().
				Syscall(Syscall{Kind: SyscallTerminateProcess}).
				DoAndReturn(func(Syscall) error {
					p := s.CPU().ContextSwitch(nil)
					p.SetState(StateTerminated)
					return nil
				})

			Expect(s.Run()).To(Succeed())

			Expect(s.Clock().UserTime()).To(Equal(VTime(10)))
			Expect(s.Clock().SystemTime()).To(Equal(VTime(19)))
			Expect(s.CPU().ContextSwitches()).To(Equal(2))
			Expect(s.Process(1).State()).To(Equal(StateTerminated))
		})

	It("should propagate handler errors", func() {
		s.StageProgram(0, "prog", 0)

		kernel.EXPECT().
			Syscall(gomock.Any()).
			Return(&ConfigurationError{File: "prog", Msg: "boom"})

		err := s.Run()
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(&ConfigurationError{}))
	})
})
