package sim

import (
	"log"
	"reflect"
)

// Trace level bits. The trace level is a bitmask in [0, 31]; level 0
// silences all trace output.
const (
	TraceContextSwitch uint32 = 1 << iota
	TraceSyscall
	TraceInterrupt
	TraceProcessState
	TraceEvent

	// TraceAll enables every trace bit.
	TraceAll uint32 = 31
)

// A TraceLogger is a hook that prints simulation activity to a logger,
// gated by a trace-level bitmask.
type TraceLogger struct {
	*log.Logger

	tt    TimeTeller
	level uint32
}

// NewTraceLogger returns a TraceLogger writing to the given logger at the
// given trace level.
func NewTraceLogger(logger *log.Logger, tt TimeTeller, level uint32) *TraceLogger {
	return &TraceLogger{
		Logger: logger,
		tt:     tt,
		level:  level,
	}
}

// Func writes the hooked activity into the logger.
func (t *TraceLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosContextSwitch:
		if t.level&TraceContextSwitch == 0 {
			return
		}
		cs := ctx.Item.(ContextSwitchRecord)
		t.Printf("Time: %010d Kernel: context switch %s -> %s",
			cs.Time, formatProcess(cs.Out), formatProcess(cs.In))

	case HookPosSyscall:
		if t.level&TraceSyscall == 0 {
			return
		}
		t.Printf("Time: %010d Syscall: %s", t.tt.Now(), ctx.Item.(Syscall))

	case HookPosInterrupt:
		if t.level&TraceInterrupt == 0 {
			return
		}
		t.Printf("Time: %010d Interrupt: %s", t.tt.Now(), ctx.Item.(Interrupt))

	case HookPosProcessState:
		if t.level&TraceProcessState == 0 {
			return
		}
		st := ctx.Item.(StateTransition)
		t.Printf("Time: %010d Process: pid=%d -> %s", st.Time, st.PID, st.State)

	case HookPosBeforeEvent:
		if t.level&TraceEvent == 0 {
			return
		}
		t.Printf("Time: %010d Event: %s", t.tt.Now(),
			reflect.TypeOf(ctx.Item))
	}
}

func formatProcess(p *Process) string {
	if p == nil {
		return "{Idle}"
	}
	return p.String()
}
