package kernels

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/schedlab/schedsim/sim"
)

var _ = Describe("RR", func() {
	var (
		s        *sim.Simulation
		kernel   *RR
		recorder *stateRecorder
	)

	BeforeEach(func() {
		s = sim.NewSimulation(1, 3)
		kernel = NewRR(s, 2)
		s.SetKernel(kernel)
		recorder = &stateRecorder{}
		s.AcceptHook(recorder)
	})

	It("should alternate two equal processes slice by slice", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 6\n"), 0)
		s.StageProgram(0, writeProgram("p2", "CPU 6\n"), 0)

		Expect(s.Run()).To(Succeed())

		// P1 is suspended and restored once while P2's EXECVE loads.
		Expect(recorder.runningPIDs()).To(Equal(
			[]int{1, 1, 2, 1, 2, 1, 2, 1}))
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(12)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(45)))
		Expect(s.CPU().ContextSwitches()).To(Equal(8))
		Expect(s.Process(1).State()).To(Equal(sim.StateTerminated))
		Expect(s.Process(2).State()).To(Equal(sim.StateTerminated))
	})

	It("should grant a fresh slice when nobody else is ready", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 5\n"), 0)

		Expect(s.Run()).To(Succeed())

		// Timeouts fire but never preempt; only the switches to and from
		// the CPU remain.
		Expect(s.CPU().ContextSwitches()).To(Equal(2))
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(5)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(15)))
	})

	It("should ignore a timeout for a process that lost the CPU", func() {
		Expect(kernel.Interrupt(sim.Interrupt{
			Kind: sim.InterruptTimeOut,
			PID:  7,
		})).To(Succeed())

		Expect(s.CPU().ContextSwitches()).To(Equal(0))
	})

	It("should let a process block for I/O before its slice ends", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 1\nIO 2 1\nCPU 1\n"), 0)
		err := s.RaiseSyscall(sim.Syscall{
			Kind:       sim.SyscallMakeDevice,
			DeviceID:   1,
			DeviceName: "disk",
		})
		Expect(err).ToNot(HaveOccurred())

		Expect(s.Run()).To(Succeed())

		Expect(recorder.statesOf(1)).To(Equal([]sim.State{
			sim.StateRunning,
			sim.StateWaiting,
			sim.StateReady,
			sim.StateRunning,
			sim.StateTerminated,
		}))
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(2)))
	})
})
