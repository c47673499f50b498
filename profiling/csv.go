package profiling

import (
	"fmt"
	"io"
	"os"

	"github.com/schedlab/schedsim/sim"
)

// Header is the first line of a profile CSV file.
const Header = "PID, STATE, MODE, START TIME, END TIME, PROGRAM"

// WriteCSV renders all profiles as comma-separated values, one line per
// interval. The mode is rendered as N/A for states in which the process
// does not hold the CPU, and the end time of an open interval as "-".
func (pr *Profiler) WriteCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}

	for _, p := range pr.profiles {
		if p == nil {
			continue
		}
		for _, interval := range p.Intervals {
			line := formatInterval(p, interval)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteCSVFile writes the profile CSV to the named file, overwriting it if
// it exists.
func (pr *Profiler) WriteCSVFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return pr.WriteCSV(file)
}

func formatInterval(p *Profile, i Interval) string {
	mode := i.Mode.String()
	switch i.State {
	case sim.StateReady, sim.StateWaiting, sim.StateTerminated:
		mode = "N/A"
	}

	end := "-"
	if !i.Open {
		end = fmt.Sprintf("%010d", i.End)
	}

	return fmt.Sprintf("%03d, %s, %s, %010d, %s, %s",
		p.PID, i.State, mode, i.Start, end, p.Program)
}
