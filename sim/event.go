package sim

import "fmt"

// An Event is something going to happen in the future.
type Event interface {
	// Time returns the time that the event should happen.
	Time() VTime

	// Handler returns the handler that should handle the event.
	Handler() Handler
}

// A Handler defines a domain for the events.
//
// One event is always constrained to one Handler: the component that
// scheduled the event is the component that handles it.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	time    VTime
	handler Handler
	seq     uint64
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTime, handler Handler) EventBase {
	return EventBase{time: t, handler: handler}
}

// Time returns the time that the event is going to happen.
func (e *EventBase) Time() VTime {
	return e.time
}

// Handler returns the handler to handle the event.
func (e *EventBase) Handler() Handler {
	return e.handler
}

func (e *EventBase) setSeq(s uint64) {
	e.seq = s
}

func (e *EventBase) sequence() uint64 {
	return e.seq
}

// sequenced is implemented by all events through EventBase. The event queue
// stamps each pushed event with a strictly increasing insertion counter to
// break ties between equal timestamps.
type sequenced interface {
	setSeq(uint64)
	sequence() uint64
}

// An ExecveEvent represents the creation of a program execution.
type ExecveEvent struct {
	EventBase

	Program  string
	Priority int
}

// NewExecveEvent creates an ExecveEvent for the program at the given path.
func NewExecveEvent(
	t VTime,
	handler Handler,
	program string,
	priority int,
) *ExecveEvent {
	return &ExecveEvent{
		EventBase: NewEventBase(t, handler),
		Program:   program,
		Priority:  priority,
	}
}

func (e *ExecveEvent) String() string {
	return fmt.Sprintf("ExecveEvent(%d, %s[%d])", e.time, e.Program, e.Priority)
}

// A WakeUpEvent represents the completion of an I/O request. It carries the
// device ID and the PID of the waiting process, never references.
type WakeUpEvent struct {
	EventBase

	DeviceID int
	PID      int
}

// NewWakeUpEvent creates a WakeUpEvent.
func NewWakeUpEvent(t VTime, handler Handler, deviceID, pid int) *WakeUpEvent {
	return &WakeUpEvent{
		EventBase: NewEventBase(t, handler),
		DeviceID:  deviceID,
		PID:       pid,
	}
}

func (e *WakeUpEvent) String() string {
	return fmt.Sprintf("WakeUpEvent(%d, device=%d, pid=%d)",
		e.time, e.DeviceID, e.PID)
}

// A TimeOutEvent represents the expiry of a process's time slice. The event
// carries the timer generation it was scheduled under; a stale generation
// means the timeout was cancelled and the event is discarded on dispatch.
type TimeOutEvent struct {
	EventBase

	PID        int
	generation uint64
}

func (e *TimeOutEvent) String() string {
	return fmt.Sprintf("TimeOutEvent(%d, pid=%d)", e.time, e.PID)
}
