// Package kernels provides the scheduling policies that can be plugged into
// a simulation: First-Come-First-Served, Round-Robin, and preemptive
// Shortest-Job-First.
package kernels

import (
	"fmt"

	"github.com/schedlab/schedsim/sim"
)

// base carries the state and helpers shared by all kernels.
type base struct {
	sim *sim.Simulation
}

// makeDevice registers a new I/O device.
func (b *base) makeDevice(call sim.Syscall) error {
	b.sim.AddDevice(call.DeviceID, call.DeviceName)
	return nil
}

// load creates a READY process for the program named by the EXECVE call.
func (b *base) load(call sim.Syscall) (*sim.Process, error) {
	p, err := b.sim.LoadProgram(call.Program)
	if err != nil {
		return nil, err
	}
	p.SetPriority(call.Priority)
	return p, nil
}

// ioRequest moves the currently running process to WAITING, cancels its
// pending timeout if any, and enqueues the request on the device. The caller
// dispatches a successor.
func (b *base) ioRequest(call sim.Syscall) error {
	requester := b.sim.CPU().CurrentProcess()
	b.sim.Timer().CancelInterrupt(requester.PID())

	device, err := b.sim.Device(call.DeviceID)
	if err != nil {
		return err
	}
	device.RequestIO(call.Duration, requester.PID())

	requester.SetState(sim.StateWaiting)
	return nil
}

// terminate moves the currently running process to TERMINATED and cancels
// its pending timeout if any. The caller dispatches a successor.
func (b *base) terminate() {
	current := b.sim.CPU().CurrentProcess()
	current.SetState(sim.StateTerminated)
	b.sim.Timer().CancelInterrupt(current.PID())
}

// switchTo performs a context switch to the given process (nil idles the
// CPU), marks it RUNNING, and returns the previously running process.
func (b *base) switchTo(next *sim.Process) *sim.Process {
	out := b.sim.CPU().ContextSwitch(next)
	if next != nil {
		next.SetState(sim.StateRunning)
	}
	return out
}

func unknownSyscall(policy string, call sim.Syscall) error {
	return fmt.Errorf("%s kernel: unknown syscall %s", policy, call)
}

func unknownInterrupt(policy string, intr sim.Interrupt) error {
	return fmt.Errorf("%s kernel: unknown interrupt %s", policy, intr)
}
