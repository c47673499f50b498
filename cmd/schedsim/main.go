// Schedsim is a discrete-event simulator of a single-CPU scheduler. It runs
// a configured workload under a chosen scheduling policy and reports the
// virtual time spent in user and supervisor mode.
package main

func main() {
	Execute()
}
