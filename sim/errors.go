package sim

import "fmt"

// A ConfigurationError reports a malformed configuration or program file.
type ConfigurationError struct {
	File string
	Msg  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %q: %s", e.File, e.Msg)
}

// An UnknownDeviceError reports an IO_REQUEST for a device that was never
// registered with MAKE_DEVICE.
type UnknownDeviceError struct {
	ID int
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf(
		"there is no I/O device with the id %d, check the configuration file",
		e.ID)
}

// An UnsupportedInterruptError reports an interrupt delivered to a kernel
// that cannot handle it, such as a TIME_OUT sent to a non-preemptive policy.
type UnsupportedInterruptError struct {
	Policy string
	Kind   InterruptKind
}

func (e *UnsupportedInterruptError) Error() string {
	return fmt.Sprintf("%s kernel does not support %s interrupts",
		e.Policy, e.Kind)
}
