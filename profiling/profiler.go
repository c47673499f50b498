// Package profiling maintains per-process execution profiles: the sequence
// of lifecycle states a process passes through, with start and end times,
// distinguishing user from supervisor time while RUNNING.
//
// The profiler is a hook. Register it on a simulation before programs are
// loaded and it records every state and mode transition for the lifetime of
// each process.
package profiling

import "github.com/schedlab/schedsim/sim"

// A transition is a change in process state and/or CPU mode.
type transition struct {
	time  sim.VTime
	state sim.State
	mode  sim.Mode
}

// An Interval represents a period during which a process is in a particular
// state and mode. The final interval of a TERMINATED process has an open
// end.
type Interval struct {
	State sim.State
	Mode  sim.Mode
	Start sim.VTime
	End   sim.VTime
	Open  bool
}

// Duration returns the interval length. An open interval has no duration.
func (i Interval) Duration() sim.VTime {
	if i.Open {
		return 0
	}
	return i.End - i.Start
}

// A Profile logs the intervals a single process has passed through.
type Profile struct {
	PID       int
	Program   string
	Intervals []Interval

	last transition
}

func newProfile(c sim.ProcessCreation) *Profile {
	return &Profile{
		PID:     c.PID,
		Program: c.Program,
		last:    transition{time: c.Time, state: c.State, mode: c.Mode},
	}
}

func (p *Profile) recordState(t sim.VTime, s sim.State) {
	p.record(transition{time: t, state: s, mode: p.last.mode})
}

func (p *Profile) recordMode(t sim.VTime, m sim.Mode) {
	p.record(transition{time: t, state: p.last.state, mode: m})
}

func (p *Profile) record(current transition) {
	interval := Interval{
		State: p.last.state,
		Mode:  p.last.mode,
		Start: p.last.time,
		End:   current.time,
	}

	if interval.Duration() > 0 {
		// Adjacent READY intervals coalesce into one.
		if interval.State == sim.StateReady && len(p.Intervals) > 0 {
			prev := p.Intervals[len(p.Intervals)-1]
			if prev.State == sim.StateReady {
				interval.Mode = prev.Mode
				interval.Start = prev.Start
				p.Intervals = p.Intervals[:len(p.Intervals)-1]
			}
		}
		p.Intervals = append(p.Intervals, interval)
	}

	p.last = current

	if current.state == sim.StateTerminated {
		p.Intervals = append(p.Intervals, Interval{
			State: current.state,
			Mode:  current.mode,
			Start: current.time,
			Open:  true,
		})
	}
}

// A Profiler records a Profile for every process created in a simulation.
// Profiles are held in a dense table indexed by PID.
type Profiler struct {
	profiles []*Profile
}

// NewProfiler creates a Profiler. Register it with simulation.AcceptHook.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Func records process creations and state/mode transitions.
func (pr *Profiler) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosProcessCreate:
		c := ctx.Item.(sim.ProcessCreation)
		for len(pr.profiles) < c.PID {
			pr.profiles = append(pr.profiles, nil)
		}
		pr.profiles[c.PID-1] = newProfile(c)

	case sim.HookPosProcessState:
		st := ctx.Item.(sim.StateTransition)
		if p := pr.profile(st.PID); p != nil {
			p.recordState(st.Time, st.State)
		}

	case sim.HookPosCPUMode:
		mt := ctx.Item.(sim.ModeTransition)
		if p := pr.profile(mt.PID); p != nil {
			p.recordMode(mt.Time, mt.Mode)
		}
	}
}

func (pr *Profiler) profile(pid int) *Profile {
	if pid < 1 || pid > len(pr.profiles) {
		return nil
	}
	return pr.profiles[pid-1]
}

// Profile returns the profile for the given PID, or nil.
func (pr *Profiler) Profile(pid int) *Profile {
	return pr.profile(pid)
}

// Profiles returns all profiles in PID order.
func (pr *Profiler) Profiles() []*Profile {
	return pr.profiles
}
