package sim

import (
	"fmt"
	"log"
)

// Mode is the CPU accounting mode. USER is the mode in which user programs
// execute; all kernel work runs in SUPERVISOR.
type Mode int

// The CPU modes.
const (
	ModeSupervisor Mode = iota
	ModeUser
)

func (m Mode) String() string {
	switch m {
	case ModeSupervisor:
		return "SUPERVISOR"
	case ModeUser:
		return "USER"
	}
	return fmt.Sprintf("MODE(%d)", int(m))
}

// A CPU holds at most one running process, executes its CPU bursts, and
// counts the context switches performed during a run.
type CPU struct {
	sim *Simulation

	current         *Process
	mode            Mode
	contextSwitches int
}

// IsIdle reports whether no process currently holds the CPU.
func (c *CPU) IsIdle() bool {
	return c.current == nil
}

// CurrentProcess returns the process currently holding the CPU, or nil when
// the CPU is idle.
func (c *CPU) CurrentProcess() *Process {
	return c.current
}

// Mode returns the current CPU mode.
func (c *CPU) Mode() Mode {
	return c.mode
}

// ContextSwitches returns the number of context switches performed.
func (c *CPU) ContextSwitches() int {
	return c.contextSwitches
}

// setMode switches between user and supervisor mode, notifying the profiling
// hooks. A process must be present when the mode becomes USER.
func (c *CPU) setMode(m Mode) {
	if c.current == nil {
		log.Panic("CPU mode change with no current process")
	}

	c.mode = m
	c.sim.InvokeHook(HookCtx{
		Domain: c.sim,
		Pos:    HookPosCPUMode,
		Item: ModeTransition{
			PID:  c.current.pid,
			Mode: m,
			Time: c.sim.clock.Now(),
		},
	})
}

// ExecuteToBurstEnd runs the current process's CPU burst to completion,
// advancing user time by the remaining quantity, then raises the post-burst
// system call (IO_REQUEST if another burst follows, TERMINATE_PROCESS
// otherwise). It returns the quantity of time consumed.
func (c *CPU) ExecuteToBurstEnd() (VTime, error) {
	if c.IsIdle() {
		return 0, nil
	}

	c.setMode(ModeUser)
	b := c.currentCPUBurst()
	units := VTime(b.Remaining)
	b.Remaining = 0
	c.sim.clock.AdvanceUser(units)
	c.setMode(ModeSupervisor)

	return units, c.finishBurst()
}

// ExecuteFor runs the current burst for up to t units.
//
// If the burst completes within t, the post-burst system call is raised (it
// may context-switch in a successor) and the unused remainder t-r is
// returned. Otherwise the burst remaining decreases by t and the remainder
// is zero. An idle CPU advances system time by t.
func (c *CPU) ExecuteFor(t VTime) (VTime, error) {
	if c.IsIdle() {
		c.sim.clock.AdvanceSystem(t)
		return 0, nil
	}

	c.setMode(ModeUser)
	b := c.currentCPUBurst()
	r := VTime(b.Remaining)

	if r <= t {
		b.Remaining = 0
		c.sim.clock.AdvanceUser(r)
		c.setMode(ModeSupervisor)
		if err := c.finishBurst(); err != nil {
			return 0, err
		}
		return t - r, nil
	}

	b.Remaining -= int(t)
	c.sim.clock.AdvanceUser(t)
	c.setMode(ModeSupervisor)
	return 0, nil
}

func (c *CPU) currentCPUBurst() *Burst {
	b := c.current.Burst()
	if b.Kind != BurstCPU {
		log.Panicf("%s is not at a CPU burst", c.current)
	}
	return b
}

// finishBurst raises the system call that follows a completed CPU burst.
// The cursor advances to the I/O burst before the kernel sees the request.
func (c *CPU) finishBurst() error {
	p := c.current

	if p.HasNextBurst() {
		p.NextBurst()
		b := p.Burst()
		if b.Kind != BurstIO {
			log.Panicf("%s: CPU burst not followed by an IO burst", p)
		}
		return c.sim.RaiseSyscall(Syscall{
			Kind:     SyscallIORequest,
			DeviceID: b.DeviceID,
			Duration: b.Duration,
		})
	}

	return c.sim.RaiseSyscall(Syscall{Kind: SyscallTerminateProcess})
}

// ContextSwitch switches the current process out and the given process in,
// charging the switch cost. Passing nil idles the CPU. The previously
// running process is returned; the caller is responsible for its state and
// for requeueing it if appropriate.
func (c *CPU) ContextSwitch(p *Process) *Process {
	c.contextSwitches++
	out := c.current
	c.current = p

	c.sim.clock.LogContextSwitch()
	c.sim.InvokeHook(HookCtx{
		Domain: c.sim,
		Pos:    HookPosContextSwitch,
		Item: ContextSwitchRecord{
			Out:  out,
			In:   p,
			Time: c.sim.clock.Now(),
		},
	})

	return out
}
