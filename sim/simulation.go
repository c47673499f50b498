package sim

import "log"

// A ProcessCreation is the hook item for HookPosProcessCreate.
type ProcessCreation struct {
	PID     int
	Program string
	State   State
	Mode    Mode
	Time    VTime
}

// A StateTransition is the hook item for HookPosProcessState.
type StateTransition struct {
	PID   int
	State State
	Time  VTime
}

// A ModeTransition is the hook item for HookPosCPUMode.
type ModeTransition struct {
	PID  int
	Mode Mode
	Time VTime
}

// A ContextSwitchRecord is the hook item for HookPosContextSwitch.
type ContextSwitchRecord struct {
	Out  *Process
	In   *Process
	Time VTime
}

// A Simulation collates the hardware components of one run: clock, CPU,
// system timer, I/O devices and the event engine, together with the plugged
// scheduling kernel and the process table. It owns all of them for the
// lifetime of the run; components receive the simulation at construction
// instead of reaching for process-wide state.
type Simulation struct {
	HookableBase

	clock  *Clock
	cpu    *CPU
	timer  *SystemTimer
	engine *Engine
	kernel Kernel

	devices map[int]*IODevice
	procs   []*Process
	nextPID int
}

// NewSimulation creates a simulation with the given syscall and
// context-switch costs. A kernel must be set before the simulation runs.
func NewSimulation(sysCallCost, cSwitchCost VTime) *Simulation {
	s := &Simulation{
		clock:   NewClock(sysCallCost, cSwitchCost),
		devices: make(map[int]*IODevice),
		nextPID: 1,
	}
	s.cpu = &CPU{sim: s}
	s.timer = NewSystemTimer(s)
	s.engine = NewEngine(s)
	return s
}

// SetKernel plugs the scheduling policy into the simulation.
func (s *Simulation) SetKernel(k Kernel) {
	s.kernel = k
}

// Clock returns the simulation clock.
func (s *Simulation) Clock() *Clock {
	return s.clock
}

// CPU returns the simulated CPU.
func (s *Simulation) CPU() *CPU {
	return s.cpu
}

// Timer returns the system timer.
func (s *Simulation) Timer() *SystemTimer {
	return s.timer
}

// Engine returns the event engine.
func (s *Simulation) Engine() *Engine {
	return s.engine
}

// AddDevice registers an I/O device under its ID.
func (s *Simulation) AddDevice(id int, name string) *IODevice {
	d := NewIODevice(s, id, name)
	s.devices[id] = d
	return d
}

// Device returns the device with the given ID.
func (s *Simulation) Device(id int) (*IODevice, error) {
	d, ok := s.devices[id]
	if !ok {
		return nil, &UnknownDeviceError{ID: id}
	}
	return d, nil
}

// Devices returns all registered devices.
func (s *Simulation) Devices() []*IODevice {
	devices := make([]*IODevice, 0, len(s.devices))
	for _, d := range s.devices {
		devices = append(devices, d)
	}
	return devices
}

// Process returns the process with the given PID.
func (s *Simulation) Process(pid int) *Process {
	if pid < 1 || pid > len(s.procs) {
		log.Panicf("no process with pid %d", pid)
	}
	return s.procs[pid-1]
}

// Processes returns the process table in PID order.
func (s *Simulation) Processes() []*Process {
	return s.procs
}

// StageProgram schedules an EXECVE event for the program at the given path.
// External inputs stage programs before the run starts.
func (s *Simulation) StageProgram(start VTime, path string, priority int) {
	s.engine.Schedule(NewExecveEvent(start, s, path, priority))
}

// RaiseSyscall charges the syscall cost, notifies the trace hooks, and
// forwards the call to the kernel.
func (s *Simulation) RaiseSyscall(call Syscall) error {
	s.clock.LogSysCall()
	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosSyscall, Item: call})
	return s.kernel.Syscall(call)
}

// RaiseInterrupt charges the interrupt cost, notifies the trace hooks, and
// forwards the interrupt to the kernel.
func (s *Simulation) RaiseInterrupt(intr Interrupt) error {
	s.clock.LogInterrupt()
	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosInterrupt, Item: intr})
	return s.kernel.Interrupt(intr)
}

// Handle dispatches an ExecveEvent. EXECVE is never invoked by a user
// process: any running process is suspended to READY while the kernel loads
// the program, then restored unless a scheduling decision replaced it.
func (s *Simulation) Handle(e Event) error {
	evt, ok := e.(*ExecveEvent)
	if !ok {
		log.Panicf("simulation cannot handle %T", e)
	}

	var suspended *Process
	if !s.cpu.IsIdle() {
		suspended = s.cpu.CurrentProcess()
		suspended.SetState(StateReady)
	}

	err := s.RaiseSyscall(Syscall{
		Kind:     SyscallExecve,
		Program:  evt.Program,
		Priority: evt.Priority,
	})
	if err != nil {
		return err
	}

	if suspended != nil && s.cpu.CurrentProcess() == suspended {
		suspended.SetState(StateRunning)
	}

	return nil
}

// Run resets the clock and processes staged events until the workload
// drains. Configuration-time accounting (MAKE_DEVICE costs) is discarded by
// the reset.
func (s *Simulation) Run() error {
	if s.kernel == nil {
		log.Panic("no kernel set")
	}

	s.clock.Reset()
	return s.engine.Run()
}
