package sim

import "fmt"

// SyscallKind enumerates the system calls a kernel must handle.
type SyscallKind int

// The system calls.
const (
	SyscallMakeDevice SyscallKind = iota
	SyscallExecve
	SyscallIORequest
	SyscallTerminateProcess
)

func (k SyscallKind) String() string {
	switch k {
	case SyscallMakeDevice:
		return "MAKE_DEVICE"
	case SyscallExecve:
		return "EXECVE"
	case SyscallIORequest:
		return "IO_REQUEST"
	case SyscallTerminateProcess:
		return "TERMINATE_PROCESS"
	}
	return fmt.Sprintf("SYSCALL(%d)", int(k))
}

// A Syscall is a tagged request into the kernel. Only the fields relevant to
// the kind are populated.
type Syscall struct {
	Kind SyscallKind

	// MakeDevice
	DeviceID   int
	DeviceName string

	// Execve
	Program  string
	Priority int

	// IORequest (DeviceID shared with MakeDevice)
	Duration int
}

func (s Syscall) String() string {
	switch s.Kind {
	case SyscallMakeDevice:
		return fmt.Sprintf("%s(%d, %q)", s.Kind, s.DeviceID, s.DeviceName)
	case SyscallExecve:
		return fmt.Sprintf("%s(%q, %d)", s.Kind, s.Program, s.Priority)
	case SyscallIORequest:
		return fmt.Sprintf("%s(device=%d, duration=%d)",
			s.Kind, s.DeviceID, s.Duration)
	default:
		return s.Kind.String()
	}
}

// InterruptKind enumerates the interrupts a kernel may receive.
type InterruptKind int

// The interrupts.
const (
	InterruptWakeUp InterruptKind = iota
	InterruptTimeOut
)

func (k InterruptKind) String() string {
	switch k {
	case InterruptWakeUp:
		return "WAKE_UP"
	case InterruptTimeOut:
		return "TIME_OUT"
	}
	return fmt.Sprintf("INTERRUPT(%d)", int(k))
}

// An Interrupt is a tagged asynchronous signal into the kernel. Interrupts
// carry identifiers, never process or device references.
type Interrupt struct {
	Kind     InterruptKind
	DeviceID int
	PID      int
}

func (i Interrupt) String() string {
	switch i.Kind {
	case InterruptWakeUp:
		return fmt.Sprintf("%s(device=%d, pid=%d)", i.Kind, i.DeviceID, i.PID)
	default:
		return fmt.Sprintf("%s(pid=%d)", i.Kind, i.PID)
	}
}

// A Kernel is a pluggable scheduling policy. The simulation raises system
// calls and interrupts into the kernel; the kernel mutates its ready
// structure and performs context switches in response.
type Kernel interface {
	Syscall(call Syscall) error
	Interrupt(intr Interrupt) error
}
