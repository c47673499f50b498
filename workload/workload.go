// Package workload loads simulation configuration files. A configuration
// file describes the I/O devices to create and the programs to run:
//
//	# comment
//	DEVICE <id> <name>
//	PROGRAM <startTime> <priority> <relative-path>
//
// DEVICE lines raise MAKE_DEVICE syscalls immediately; PROGRAM lines stage
// EXECVE events for the run. Program paths are resolved against the
// configuration file's directory.
package workload

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schedlab/schedsim/sim"
)

// Load reads the configuration file at the given path and applies it to the
// simulation.
func Load(path string, s *sim.Simulation) error {
	file, err := os.Open(path)
	if err != nil {
		return &sim.ConfigurationError{
			File: path,
			Msg:  "unable to open configuration file: " + err.Error(),
		}
	}
	defer file.Close()

	dir := filepath.Dir(path)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "PROGRAM":
			if err := loadProgramLine(s, dir, path, line, fields); err != nil {
				return err
			}
		case "DEVICE":
			if err := loadDeviceLine(s, path, line, fields); err != nil {
				return err
			}
		default:
			return configError(path, line, "unrecognised token")
		}
	}
	if err := scanner.Err(); err != nil {
		return &sim.ConfigurationError{File: path, Msg: err.Error()}
	}

	return nil
}

func loadProgramLine(
	s *sim.Simulation,
	dir, path, line string,
	fields []string,
) error {
	if len(fields) < 4 {
		return configError(path, line, "PROGRAM entry incomplete")
	}

	startTime, err := strconv.Atoi(fields[1])
	if err != nil {
		return configError(path, line, "PROGRAM entry missing start time")
	}

	priority, err := strconv.Atoi(fields[2])
	if err != nil {
		return configError(path, line, "PROGRAM entry missing priority")
	}

	program := filepath.Join(dir, fields[3])
	s.StageProgram(sim.VTime(startTime), program, priority)

	return nil
}

func loadDeviceLine(s *sim.Simulation, path, line string, fields []string) error {
	if len(fields) < 3 {
		return configError(path, line, "DEVICE entry incomplete")
	}

	deviceID, err := strconv.Atoi(fields[1])
	if err != nil {
		return configError(path, line, "DEVICE entry missing device ID")
	}

	return s.RaiseSyscall(sim.Syscall{
		Kind:       sim.SyscallMakeDevice,
		DeviceID:   deviceID,
		DeviceName: fields[2],
	})
}

func configError(path, line, msg string) error {
	return &sim.ConfigurationError{
		File: path,
		Msg:  fmt.Sprintf("%s: %q", msg, line),
	}
}
