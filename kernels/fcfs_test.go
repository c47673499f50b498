package kernels

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/schedlab/schedsim/sim"
)

var _ = Describe("FCFS", func() {
	var (
		s        *sim.Simulation
		kernel   *FCFS
		recorder *stateRecorder
	)

	BeforeEach(func() {
		s = sim.NewSimulation(1, 3)
		kernel = NewFCFS(s)
		s.SetKernel(kernel)
		recorder = &stateRecorder{}
		s.AcceptHook(recorder)
	})

	It("should run a single CPU-bound program to completion", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 10\n"), 0)

		Expect(s.Run()).To(Succeed())

		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(10)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(18)))
		Expect(s.CPU().ContextSwitches()).To(Equal(2))
		Expect(s.Process(1).State()).To(Equal(sim.StateTerminated))
	})

	It("should run processes in arrival order without preemption", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 5\n"), 0)
		s.StageProgram(1, writeProgram("p2", "CPU 5\n"), 0)

		Expect(s.Run()).To(Succeed())

		Expect(recorder.runningPIDs()).To(Equal([]int{1, 1, 2}))
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(10)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(23)))
		Expect(s.CPU().ContextSwitches()).To(Equal(3))
	})

	It("should block a process for I/O and wake it up", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 3\nIO 4 1\nCPU 2\n"), 0)
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
		Expect(s.Clock().UserTime()).To(Equal(sim.VTime(5)))
		Expect(s.Clock().SystemTime()).To(Equal(sim.VTime(22)))
		Expect(s.CPU().ContextSwitches()).To(Equal(4))

		device, err := s.Device(1)
		Expect(err).ToNot(HaveOccurred())
		Expect(device.InFlight()).To(Equal(0))
	})

	It("should fail an IO_REQUEST for an unknown device", func() {
		s.StageProgram(0, writeProgram("p1", "CPU 3\nIO 4 9\nCPU 2\n"), 0)

		err := s.Run()
		Expect(err).To(BeAssignableToTypeOf(&sim.UnknownDeviceError{}))
	})

	It("should reject TIME_OUT interrupts", func() {
		err := kernel.Interrupt(sim.Interrupt{Kind: sim.InterruptTimeOut, PID: 1})

		Expect(err).To(BeAssignableToTypeOf(&sim.UnsupportedInterruptError{}))
	})
})
