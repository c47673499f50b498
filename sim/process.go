package sim

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// State is the lifecycle state of a process.
type State int

// The process lifecycle states.
const (
	StateReady State = iota
	StateRunning
	StateWaiting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateWaiting:
		return "WAITING"
	case StateTerminated:
		return "TERMINATED"
	}
	return fmt.Sprintf("STATE(%d)", int(s))
}

// BurstKind distinguishes CPU bursts from I/O bursts.
type BurstKind int

// The burst kinds.
const (
	BurstCPU BurstKind = iota
	BurstIO
)

// A Burst is one contiguous CPU or I/O operation within a program. For a CPU
// burst, Remaining is decremented as the CPU executes it. For an I/O burst,
// DeviceID names the device that services it.
type Burst struct {
	Kind      BurstKind
	Duration  int
	Remaining int
	DeviceID  int
}

func (b *Burst) String() string {
	if b.Kind == BurstCPU {
		return fmt.Sprintf("CPU %d (%d)", b.Duration, b.Remaining)
	}
	return fmt.Sprintf("IO %d device %d", b.Duration, b.DeviceID)
}

// A Process represents one program execution. Its program is an ordered
// sequence of bursts with a cursor at the one currently being worked on.
type Process struct {
	sim *Simulation

	pid      int
	program  string
	priority int
	state    State

	bursts []Burst
	cursor int
}

// PID returns the process ID.
func (p *Process) PID() int {
	return p.pid
}

// ProgramName returns the name of the program being executed.
func (p *Process) ProgramName() string {
	return p.program
}

// Priority returns the process priority.
func (p *Process) Priority() int {
	return p.priority
}

// SetPriority sets the process priority, returning the old value.
func (p *Process) SetPriority(v int) int {
	old := p.priority
	p.priority = v
	return old
}

// State returns the current lifecycle state.
func (p *Process) State() State {
	return p.state
}

// SetState moves the process to the given state and notifies the profiling
// hooks before returning. Transitions outside the process state machine are
// invariant violations and panic.
func (p *Process) SetState(s State) {
	if !stateTransitionAllowed(p.state, s) {
		log.Panicf("illegal state transition %s -> %s for %s",
			p.state, s, p)
	}

	p.state = s
	p.sim.InvokeHook(HookCtx{
		Domain: p.sim,
		Pos:    HookPosProcessState,
		Item: StateTransition{
			PID:   p.pid,
			State: s,
			Time:  p.sim.clock.Now(),
		},
	})
}

func stateTransitionAllowed(from, to State) bool {
	switch from {
	case StateReady:
		return to == StateRunning
	case StateRunning:
		return to == StateReady || to == StateWaiting || to == StateTerminated
	case StateWaiting:
		return to == StateReady
	}
	return false
}

// Burst returns the burst the cursor currently points at.
func (p *Process) Burst() *Burst {
	return &p.bursts[p.cursor]
}

// HasNextBurst reports whether another burst follows the current one.
func (p *Process) HasNextBurst() bool {
	return p.cursor+1 < len(p.bursts)
}

// NextBurst advances the cursor to the next burst. Advancing past the end of
// the program is an invariant violation.
func (p *Process) NextBurst() {
	if !p.HasNextBurst() {
		log.Panicf("no next burst for %s", p)
	}
	p.cursor++
}

// BurstRemaining returns the remaining units of the current burst. For an
// I/O burst this is the full duration.
func (p *Process) BurstRemaining() int {
	b := p.Burst()
	if b.Kind == BurstCPU {
		return b.Remaining
	}
	return b.Duration
}

func (p *Process) String() string {
	return fmt.Sprintf("process(pid=%d, state=%s, name=%q)",
		p.pid, p.state, p.program)
}

// LoadProgram reads the program file at the given path and creates a READY
// process executing it. PIDs are allocated monotonically across the
// simulation.
func (s *Simulation) LoadProgram(path string) (*Process, error) {
	bursts, err := parseProgram(path)
	if err != nil {
		return nil, err
	}

	p := &Process{
		sim:     s,
		pid:     s.nextPID,
		program: path,
		state:   StateReady,
		bursts:  bursts,
	}
	s.nextPID++
	s.procs = append(s.procs, p)

	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosProcessCreate,
		Item: ProcessCreation{
			PID:     p.pid,
			Program: p.program,
			State:   p.state,
			Mode:    ModeSupervisor,
			Time:    s.clock.Now(),
		},
	})

	return p, nil
}

func parseProgram(path string) ([]Burst, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{
			File: path,
			Msg:  "unable to open program file: " + err.Error(),
		}
	}
	defer file.Close()

	var bursts []Burst

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "CPU":
			if len(fields) < 2 {
				return nil, programError(path, line, "missing duration")
			}
			duration, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, programError(path, line, "bad duration")
			}
			bursts = append(bursts, Burst{
				Kind:      BurstCPU,
				Duration:  duration,
				Remaining: duration,
			})
		case "IO":
			if len(fields) < 3 {
				return nil, programError(path, line, "missing device ID")
			}
			duration, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, programError(path, line, "bad duration")
			}
			deviceID, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, programError(path, line, "bad device ID")
			}
			bursts = append(bursts, Burst{
				Kind:     BurstIO,
				Duration: duration,
				DeviceID: deviceID,
			})
		default:
			return nil, programError(path, line, "illegal token")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigurationError{File: path, Msg: err.Error()}
	}

	if len(bursts) == 0 {
		return nil, &ConfigurationError{File: path, Msg: "program is empty"}
	}
	if bursts[0].Kind != BurstCPU {
		return nil, &ConfigurationError{
			File: path,
			Msg:  "program must begin with a CPU burst",
		}
	}

	return bursts, nil
}

func programError(path, line, msg string) error {
	return &ConfigurationError{
		File: path,
		Msg:  fmt.Sprintf("%s in line %q", msg, line),
	}
}
