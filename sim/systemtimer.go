package sim

import "log"

// A SystemTimer schedules and cancels per-process timeout interrupts for
// preemptive policies. A process has at most one live timeout at a time.
//
// Cancellation is logical: each PID carries a generation counter, every
// scheduled TimeOutEvent records the generation it was scheduled under, and
// an event whose generation no longer matches is discarded on dispatch
// without firing.
type SystemTimer struct {
	sim *Simulation

	generations map[int]uint64
}

// NewSystemTimer creates a SystemTimer.
func NewSystemTimer(s *Simulation) *SystemTimer {
	return &SystemTimer{
		sim:         s,
		generations: make(map[int]uint64),
	}
}

// ScheduleInterrupt schedules a TIME_OUT for the given process at now+delay,
// superseding any timeout previously pending for the same process.
func (t *SystemTimer) ScheduleInterrupt(delay VTime, pid int) {
	t.generations[pid]++

	evt := &TimeOutEvent{
		EventBase:  NewEventBase(t.sim.clock.Now()+delay, t),
		PID:        pid,
		generation: t.generations[pid],
	}
	t.sim.engine.Schedule(evt)
}

// CancelInterrupt marks any pending timeout for the given process as
// cancelled.
func (t *SystemTimer) CancelInterrupt(pid int) {
	t.generations[pid]++
}

// Handle dispatches a TimeOutEvent. Cancelled timeouts are discarded without
// firing and without charging any cost.
func (t *SystemTimer) Handle(e Event) error {
	evt, ok := e.(*TimeOutEvent)
	if !ok {
		log.Panicf("system timer cannot handle %T", e)
	}

	if evt.generation != t.generations[evt.PID] {
		return nil
	}

	return t.sim.RaiseInterrupt(Interrupt{
		Kind: InterruptTimeOut,
		PID:  evt.PID,
	})
}
