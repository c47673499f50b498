package kernels

import (
	"container/heap"

	"github.com/schedlab/schedsim/sim"
)

// An SJF kernel implements preemptive Shortest-Job-First scheduling.
//
// The ready structure is a min-priority queue keyed by the remaining time of
// each process's current CPU burst, with ties broken by insertion order. A
// new arrival or a waking process preempts the running process only when its
// burst remaining is strictly smaller; equal estimates let the running
// process continue.
type SJF struct {
	base

	readyQueue sjfQueue
}

// NewSJF creates an SJF kernel for the given simulation.
func NewSJF(s *sim.Simulation) *SJF {
	return &SJF{base: base{sim: s}}
}

// Syscall handles a system call.
func (k *SJF) Syscall(call sim.Syscall) error {
	switch call.Kind {
	case sim.SyscallMakeDevice:
		return k.makeDevice(call)

	case sim.SyscallExecve:
		p, err := k.load(call)
		if err != nil {
			return err
		}
		k.readyQueue.push(p)
		k.dispatchOrPreempt(p)
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

	return unknownSyscall("SJF", call)
}

// Interrupt handles an interrupt. SJF only handles WAKE_UP; it never
// schedules slices, so a TIME_OUT is an error.
func (k *SJF) Interrupt(intr sim.Interrupt) error {
	switch intr.Kind {
	case sim.InterruptTimeOut:
		return &sim.UnsupportedInterruptError{Policy: "SJF", Kind: intr.Kind}

	case sim.InterruptWakeUp:
		p := k.sim.Process(intr.PID)
		p.SetState(sim.StateReady)
		k.readyQueue.push(p)
		k.dispatchOrPreempt(p)
		return nil
	}

	return unknownInterrupt("SJF", intr)
}

// dispatchOrPreempt dispatches when the CPU is idle. Otherwise the newcomer
// preempts the running process only if its current burst remaining is
// strictly smaller. The running process was already suspended to READY by
// the event handler; it only needs requeueing before the dispatch picks the
// smallest.
func (k *SJF) dispatchOrPreempt(newcomer *sim.Process) {
	cpu := k.sim.CPU()
	if cpu.IsIdle() {
		k.dispatch()
		return
	}

	current := cpu.CurrentProcess()
	if newcomer.BurstRemaining() < current.BurstRemaining() {
		k.readyQueue.push(current)
		k.dispatch()
	}
}

// dispatch places the ready process with the smallest burst remaining on the
// CPU, or idles the CPU when no process is ready.
func (k *SJF) dispatch() *sim.Process {
	var next *sim.Process
	if k.readyQueue.Len() > 0 {
		next = k.readyQueue.pop()
	}
	return k.switchTo(next)
}

// sjfQueue orders processes by (current burst remaining, insertion
// sequence). The key of a queued process is stable: only the running
// process's burst remaining decreases.
type sjfQueue struct {
	items   []sjfItem
	nextSeq uint64
}

type sjfItem struct {
	p   *sim.Process
	seq uint64
}

func (q *sjfQueue) push(p *sim.Process) {
	heap.Push(q, sjfItem{p: p, seq: q.nextSeq})
	q.nextSeq++
}

func (q *sjfQueue) pop() *sim.Process {
	return heap.Pop(q).(sjfItem).p
}

func (q *sjfQueue) Len() int {
	return len(q.items)
}

func (q *sjfQueue) Less(i, j int) bool {
	ri := q.items[i].p.BurstRemaining()
	rj := q.items[j].p.BurstRemaining()
	if ri != rj {
		return ri < rj
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *sjfQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *sjfQueue) Push(x interface{}) {
	q.items = append(q.items, x.(sjfItem))
}

func (q *sjfQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[0 : n-1]
	return item
}
