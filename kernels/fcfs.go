package kernels

import "github.com/schedlab/schedsim/sim"

// An FCFS kernel implements First-Come-First-Served scheduling.
//
// Processes are queued according to arrival time. Time on the CPU is only
// relinquished when the current process terminates or blocks for I/O.
type FCFS struct {
	base

	readyQueue []*sim.Process
}

// NewFCFS creates an FCFS kernel for the given simulation.
func NewFCFS(s *sim.Simulation) *FCFS {
	return &FCFS{base: base{sim: s}}
}

// Syscall handles a system call.
func (k *FCFS) Syscall(call sim.Syscall) error {
	switch call.Kind {
	case sim.SyscallMakeDevice:
		return k.makeDevice(call)

	case sim.SyscallExecve:
		p, err := k.load(call)
		if err != nil {
			return err
		}
		k.readyQueue = append(k.readyQueue, p)
		if k.sim.CPU().IsIdle() {
			k.dispatch()
		}
		return nil

	case sim.SyscallIORequest:
		if err := k.ioRequest(call); err != nil {
			return err
		}
		k.dispatch()
		return nil

	case sim.SyscallTerminateProcess:
		k.terminate()
		k.dispatch()
		return nil
	}

	return unknownSyscall("FCFS", call)
}

// Interrupt handles an interrupt. FCFS only handles WAKE_UP; a TIME_OUT is
// an error because the policy never schedules slices.
func (k *FCFS) Interrupt(intr sim.Interrupt) error {
	switch intr.Kind {
	case sim.InterruptTimeOut:
		return &sim.UnsupportedInterruptError{Policy: "FCFS", Kind: intr.Kind}

	case sim.InterruptWakeUp:
		p := k.sim.Process(intr.PID)
		p.SetState(sim.StateReady)
		k.readyQueue = append(k.readyQueue, p)
		if k.sim.CPU().IsIdle() {
			k.dispatch()
		}
		return nil
	}

	return unknownInterrupt("FCFS", intr)
}

// dispatch places the head of the ready queue on the CPU, or idles the CPU
// when no process is ready.
func (k *FCFS) dispatch() *sim.Process {
	var next *sim.Process
	if len(k.readyQueue) > 0 {
		next = k.readyQueue[0]
		k.readyQueue = k.readyQueue[1:]
	}
	return k.switchTo(next)
}
