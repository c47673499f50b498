package sim

import "fmt"

// VTime is a point in simulated time, measured in whole time units.
type VTime int64

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() VTime
}

// A Clock holds the virtual time of a simulation and accumulates the
// user-time, system-time and kernel-overhead counters.
//
// User time only accrues while the CPU executes a process's CPU burst.
// System time accrues whenever the clock moves, including kernel overhead
// charged through LogSysCall, LogInterrupt and LogContextSwitch.
type Clock struct {
	systemTime VTime
	userTime   VTime

	sysCallCost VTime
	cSwitchCost VTime

	sysCalls        int
	interrupts      int
	contextSwitches int
}

// NewClock creates a Clock with the given per-syscall and per-context-switch
// costs.
func NewClock(sysCallCost, cSwitchCost VTime) *Clock {
	return &Clock{
		sysCallCost: sysCallCost,
		cSwitchCost: cSwitchCost,
	}
}

// Now returns the current system time.
func (c *Clock) Now() VTime {
	return c.systemTime
}

// UserTime returns the accumulated user time.
func (c *Clock) UserTime() VTime {
	return c.userTime
}

// SystemTime returns the accumulated system time.
func (c *Clock) SystemTime() VTime {
	return c.systemTime
}

// AdvanceUser advances the clock by n units of user-mode execution. User
// time is a subset of system time, so both counters move.
func (c *Clock) AdvanceUser(n VTime) {
	c.userTime += n
	c.systemTime += n
}

// AdvanceSystem advances the clock by n units of system time.
func (c *Clock) AdvanceSystem(n VTime) {
	c.systemTime += n
}

// LogSysCall charges the cost of one system call.
func (c *Clock) LogSysCall() {
	c.sysCalls++
	c.systemTime += c.sysCallCost
}

// LogInterrupt charges the cost of one interrupt. Interrupt handlers are
// kernel code, so the cost equals the syscall cost.
func (c *Clock) LogInterrupt() {
	c.interrupts++
	c.systemTime += c.sysCallCost
}

// LogContextSwitch charges the cost of one context switch.
func (c *Clock) LogContextSwitch() {
	c.contextSwitches++
	c.systemTime += c.cSwitchCost
}

// Reset rewinds the clock to time zero, keeping the configured costs. The
// simulation resets the clock when a run starts so that configuration-time
// syscalls do not perturb the run accounting.
func (c *Clock) Reset() {
	c.systemTime = 0
	c.userTime = 0
}

func (c *Clock) String() string {
	return fmt.Sprintf("system time: %010d, user time: %010d",
		c.systemTime, c.userTime)
}
