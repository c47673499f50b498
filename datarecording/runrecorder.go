package datarecording

import (
	"github.com/schedlab/schedsim/profiling"
	"github.com/schedlab/schedsim/sim"
)

// An IntervalEntry is one profile interval as stored in the database. The
// end time of an open interval is stored as -1.
type IntervalEntry struct {
	PID     int
	State   string
	Mode    string
	Start   int64
	End     int64
	Program string
}

// A SummaryEntry is the overall result of one run.
type SummaryEntry struct {
	Policy          string
	SystemTime      int64
	UserTime        int64
	ContextSwitches int
	Utilization     float64
}

// RecordRun stores the profiles and the summary of a completed run.
func RecordRun(
	rec DataRecorder,
	policy string,
	s *sim.Simulation,
	profiler *profiling.Profiler,
) {
	rec.CreateTable("profile_intervals", IntervalEntry{})
	rec.CreateTable("run_summary", SummaryEntry{})

	for _, p := range profiler.Profiles() {
		if p == nil {
			continue
		}
		for _, interval := range p.Intervals {
			end := int64(interval.End)
			if interval.Open {
				end = -1
			}
			rec.InsertData("profile_intervals", IntervalEntry{
				PID:     p.PID,
				State:   interval.State.String(),
				Mode:    interval.Mode.String(),
				Start:   int64(interval.Start),
				End:     end,
				Program: p.Program,
			})
		}
	}

	clock := s.Clock()
	utilization := 0.0
	if clock.SystemTime() > 0 {
		utilization = float64(clock.UserTime()) / float64(clock.SystemTime())
	}

	rec.InsertData("run_summary", SummaryEntry{
		Policy:          policy,
		SystemTime:      int64(clock.SystemTime()),
		UserTime:        int64(clock.UserTime()),
		ContextSwitches: s.CPU().ContextSwitches(),
		Utilization:     utilization,
	})

	rec.Flush()
}
