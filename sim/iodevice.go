package sim

import (
	"fmt"
	"log"
)

// An IODevice simulates an I/O device with per-device FIFO service. A device
// has an ID and a type name (e.g. "disk"). I/O requests are blocking: the
// calling process is removed from the CPU while waiting for completion.
type IODevice struct {
	sim *Simulation

	id       int
	name     string
	freeTime VTime
	inflight map[int]struct{}
}

// NewIODevice creates a device with the given id and name.
func NewIODevice(s *Simulation, id int, name string) *IODevice {
	return &IODevice{
		sim:      s,
		id:       id,
		name:     name,
		inflight: make(map[int]struct{}),
	}
}

// ID returns the device id.
func (d *IODevice) ID() int {
	return d.id
}

// Name returns the device type name.
func (d *IODevice) Name() string {
	return d.name
}

// FreeTime returns the earliest time at which a newly arrived request would
// start service.
func (d *IODevice) FreeTime() VTime {
	return d.freeTime
}

// InFlight returns the number of requests currently being serviced or queued
// on this device.
func (d *IODevice) InFlight() int {
	return len(d.inflight)
}

// RequestIO makes an I/O request of the given duration on behalf of the
// process with the given PID. Requests are serviced strictly FIFO with no
// idle gap between back-to-back requests; a WakeUpEvent is scheduled for the
// completion time.
func (d *IODevice) RequestIO(duration, pid int) {
	now := d.sim.clock.Now()
	if d.freeTime <= now {
		d.freeTime = now + VTime(duration)
	} else {
		d.freeTime += VTime(duration)
	}

	d.inflight[pid] = struct{}{}
	d.sim.engine.Schedule(NewWakeUpEvent(d.freeTime, d, d.id, pid))
}

// Handle processes a WakeUpEvent: the completed request leaves the device,
// the process's cursor advances past the I/O burst, and the kernel receives
// a WAKE_UP interrupt. A running user process is suspended to READY for the
// duration of the interrupt handling and restored afterwards unless a
// scheduling decision replaced it.
func (d *IODevice) Handle(e Event) error {
	evt, ok := e.(*WakeUpEvent)
	if !ok {
		log.Panicf("device %d cannot handle %T", d.id, e)
	}

	var suspended *Process
	if !d.sim.cpu.IsIdle() {
		suspended = d.sim.cpu.CurrentProcess()
		suspended.SetState(StateReady)
	}

	delete(d.inflight, evt.PID)

	p := d.sim.Process(evt.PID)
	p.NextBurst()

	err := d.sim.RaiseInterrupt(Interrupt{
		Kind:     InterruptWakeUp,
		DeviceID: d.id,
		PID:      evt.PID,
	})
	if err != nil {
		return err
	}

	if suspended != nil && d.sim.cpu.CurrentProcess() == suspended {
		suspended.SetState(StateRunning)
	}

	return nil
}

func (d *IODevice) String() string {
	return fmt.Sprintf("device(id=%d)", d.id)
}
