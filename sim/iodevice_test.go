package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("IODevice", func() {
	var (
		mockCtrl *gomock.Controller
		kernel   *MockKernel
		s        *Simulation
		device   *IODevice
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		kernel = NewMockKernel(mockCtrl)
		s = NewSimulation(1, 3)
		s.SetKernel(kernel)
		device = s.AddDevice(1, "disk")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should be registered under its ID", func() {
		d, err := s.Device(1)

		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(BeIdenticalTo(device))
		Expect(d.Name()).To(Equal("disk"))
	})

	It("should report unknown devices", func() {
		_, err := s.Device(9)

		Expect(err).To(BeAssignableToTypeOf(&UnknownDeviceError{}))
	})

	It("should service a request from now when free", func() {
		s.Clock().AdvanceSystem(7)

		device.RequestIO(5, 1)

		Expect(device.FreeTime()).To(Equal(VTime(12)))
		Expect(device.InFlight()).To(Equal(1))
		Expect(s.Engine().PendingEvents()).To(Equal(1))
	})

	It("should service back-to-back requests with no idle gap", func() {
		device.RequestIO(5, 1)
		device.RequestIO(5, 2)

		Expect(device.FreeTime()).To(Equal(VTime(10)))
		Expect(device.InFlight()).To(Equal(2))
		Expect(s.Engine().PendingEvents()).To(Equal(2))
	})

	It("should start a late request when the device frees up", func() {
		device.RequestIO(5, 1)
		s.Clock().AdvanceSystem(20)

		device.RequestIO(4, 2)

		Expect(device.FreeTime()).To(Equal(VTime(24)))
	})

	It("should wake the process when the request completes", func() {
		p, err := s.LoadProgram(writeProgram("prog", "CPU 3\nIO 5 1\nCPU 2\n"))
		Expect(err).ToNot(HaveOccurred())
		p.NextBurst()

		device.RequestIO(5, p.PID())
		evt := s.Engine().queue.Pop().(*WakeUpEvent)
		Expect(evt.Time()).To(Equal(VTime(5)))

		kernel.EXPECT().
			Interrupt(Interrupt{Kind: InterruptWakeUp, DeviceID: 1, PID: 1}).
			Return(nil)

		Expect(device.Handle(evt)).To(Succeed())
		Expect(device.InFlight()).To(Equal(0))
		Expect(p.Burst().Kind).To(Equal(BurstCPU))
		Expect(p.BurstRemaining()).To(Equal(2))
	})
})
