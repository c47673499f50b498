package sim

import (
	"log"
	"reflect"
	"sync"
)

// An Engine drives the discrete-event loop of one simulation. Between
// events it lets the CPU execute the current process (or advances system
// time when the CPU is idle); at each event it dispatches the payload to
// the handler that scheduled it.
type Engine struct {
	sim   *Simulation
	queue *EventQueue

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex
}

// NewEngine creates an Engine for the given simulation.
func NewEngine(s *Simulation) *Engine {
	return &Engine{
		sim:   s,
		queue: NewEventQueue(),
	}
}

// Schedule registers an event to happen in the future. Scheduling an event
// earlier than the current time is an ordering violation.
func (e *Engine) Schedule(evt Event) {
	if evt.Time() < e.sim.clock.Now() {
		log.Panicf("scheduling %s earlier than current time %d",
			reflect.TypeOf(evt), e.sim.clock.Now())
	}
	e.queue.Push(evt)
}

// PendingEvents returns the number of events not yet dispatched.
func (e *Engine) PendingEvents() int {
	return e.queue.Len()
}

// Run processes all scheduled events. Before each event fires, the CPU runs
// until the event time; kernel overhead may push the clock past a pending
// event's timestamp, in which case the event fires immediately at the
// current time. When the queue drains while the CPU still holds a process,
// the CPU executes to burst end, which raises the post-burst syscalls and
// may schedule further events. The run ends when the queue is empty and the
// CPU is idle.
func (e *Engine) Run() error {
	for {
		e.pauseLock.Lock()

		if e.queue.Len() == 0 {
			if e.sim.cpu.IsIdle() {
				e.pauseLock.Unlock()
				return nil
			}
			_, err := e.sim.cpu.ExecuteToBurstEnd()
			e.pauseLock.Unlock()
			if err != nil {
				return err
			}
			continue
		}

		evt := e.queue.Pop()
		if err := e.runUntil(evt.Time()); err != nil {
			e.pauseLock.Unlock()
			return err
		}

		hookCtx := HookCtx{
			Domain: e.sim,
			Pos:    HookPosBeforeEvent,
			Item:   evt,
		}
		e.sim.InvokeHook(hookCtx)

		err := evt.Handler().Handle(evt)

		hookCtx.Pos = HookPosAfterEvent
		e.sim.InvokeHook(hookCtx)

		e.pauseLock.Unlock()
		if err != nil {
			return err
		}
	}
}

// runUntil lets the CPU run up to the given time. A burst that completes
// mid-way raises its post-burst syscall, which may dispatch a successor
// that consumes the rest of the gap.
func (e *Engine) runUntil(t VTime) error {
	for {
		delta := t - e.sim.clock.Now()
		if delta <= 0 {
			return nil
		}

		if e.sim.cpu.IsIdle() {
			e.sim.clock.AdvanceSystem(delta)
			return nil
		}

		if _, err := e.sim.cpu.ExecuteFor(delta); err != nil {
			return err
		}
	}
}

// Pause prevents the engine from triggering more events until Continue is
// called.
func (e *Engine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows a paused engine to trigger more events.
func (e *Engine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}
