package kernels

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/schedlab/schedsim/sim"
)

var _ = Describe("SJF", func() {
	var (
		s        *sim.Simulation
		kernel   *SJF
		recorder *stateRecorder
	)

	BeforeEach(func() {
		s = sim.NewSimulation(1, 3)
		kernel = NewSJF(s)
		s.SetKernel(kernel)
		recorder = &stateRecorder{}
		s.AcceptHook(recorder)
	})

	It("should preempt when a strictly shorter job arrives", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 10\n"), 0)
		s.StageProgram(6, writeProgram("p2", "CPU 3\n"), 0)

		Expect(s.Run()).To(Succeed())

		// P1 runs 2 user units, is preempted by the shorter P2, and
		// resumes after P2 terminates.
		Expect(recorder.runningPIDs()).To(Equal([]int{1, 2, 1}))
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(13)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(29)))
		Expect(s.CPU().ContextSwitches()).To(Equal(4))
	})

	It("should not preempt on an equal burst estimate", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 7\n"), 0)
		s.StageProgram(6, writeProgram("p2", "CPU 5\n"), 0)

		Expect(s.Run()).To(Succeed())

		// At P2's arrival P1's burst remaining equals P2's estimate, so
		// P1 keeps the CPU.
		Expect(recorder.runningPIDs()).To(Equal([]int{1, 1, 2}))
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(12)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(25)))
		Expect(s.CPU().ContextSwitches()).To(Equal(3))
	})

	It("should pick the shortest ready process on dispatch", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 4\n"), 0)
		s.StageProgram(0, writeProgram("p2", "CPU 9\n"), 0)
		s.StageProgram(0, writeProgram("p3", "CPU 6\n"), 0)

		Expect(s.Run()).To(Succeed())

		Expect(recorder.runningPIDs()).To(Equal([]int{1, 1, 1, 3, 2}))
	})

	It("should reject TIME_OUT interrupts", func() {
		err := kernel.Interrupt(sim.Interrupt{Kind: sim.InterruptTimeOut, PID: 1})

		Expect(err).To(BeAssignableToTypeOf(&sim.UnsupportedInterruptError{}))
	})
})
