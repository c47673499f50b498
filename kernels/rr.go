package kernels

import "github.com/schedlab/schedsim/sim"

// An RR kernel implements Round-Robin scheduling.
//
// Time on the CPU is allocated to user processes in slices. During a slice
// the current process may still be interrupted by kernel activity, such as
// I/O interrupt handling and new program loading, so a process is never
// guaranteed a full slice of user time.
type RR struct {
	base

	readyQueue []*sim.Process
	slice      sim.VTime
}

// NewRR creates a Round-Robin kernel with the given slice time.
func NewRR(s *sim.Simulation, slice sim.VTime) *RR {
	return &RR{
		base:  base{sim: s},
		slice: slice,
	}
}

// Syscall handles a system call.
func (k *RR) Syscall(call sim.Syscall) error {
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

	return unknownSyscall("RR", call)
}

// Interrupt handles an interrupt.
func (k *RR) Interrupt(intr sim.Interrupt) error {
	switch intr.Kind {
	case sim.InterruptTimeOut:
		cpu := k.sim.CPU()

		// A timeout for a process that no longer holds the CPU belonged to
		// an earlier tenancy and is ignored.
		if cpu.IsIdle() || cpu.CurrentProcess().PID() != intr.PID {
			return nil
		}

		if len(k.readyQueue) == 0 {
			// Nobody is waiting; the current process continues with a
			// fresh slice.
			k.sim.Timer().ScheduleInterrupt(k.slice, intr.PID)
			return nil
		}

		cpu.CurrentProcess().SetState(sim.StateReady)
		preempted := k.dispatch()
		k.readyQueue = append(k.readyQueue, preempted)
		return nil

	case sim.InterruptWakeUp:
		p := k.sim.Process(intr.PID)
		p.SetState(sim.StateReady)
		k.readyQueue = append(k.readyQueue, p)
		if k.sim.CPU().IsIdle() {
			k.dispatch()
		}
		return nil
	}

	return unknownInterrupt("RR", intr)
}

// dispatch places the head of the ready queue on the CPU and grants it a
// fresh slice, or idles the CPU when no process is ready.
func (k *RR) dispatch() *sim.Process {
	var next *sim.Process
	if len(k.readyQueue) > 0 {
		next = k.readyQueue[0]
		k.readyQueue = k.readyQueue[1:]
	}

	out := k.switchTo(next)
	if next != nil {
		k.sim.Timer().ScheduleInterrupt(k.slice, next.PID())
	}
	return out
}
