package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schedlab/schedsim/datarecording"
	"github.com/schedlab/schedsim/kernels"
	"github.com/schedlab/schedsim/monitoring"
	"github.com/schedlab/schedsim/profiling"
	"github.com/schedlab/schedsim/sim"
	"github.com/schedlab/schedsim/workload"
)

var (
	flagConfig      string
	flagPolicy      string
	flagSlice       int
	flagSysCallCost int
	flagCSwitchCost int
	flagTraceLevel  uint32
	flagProfileCSV  string
	flagRecordDB    string
	flagMonitor     bool
	flagMonitorPort int
)

// rootCmd runs one simulation described by a configuration file.
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Schedsim simulates CPU scheduling policies over virtual time.",
	Long: `Schedsim runs a workload of programs on a simulated single-CPU ` +
		`machine under a pluggable scheduling policy, and reports how virtual ` +
		`time was spent.`,
	RunE: runSimulation,

	SilenceUsage: true,
}

// Execute parses the command line and runs the simulation.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "",
		"configuration file describing devices and programs")
	rootCmd.Flags().StringVarP(&flagPolicy, "policy", "p", "FCFS",
		"scheduling policy, one of FCFS, RR, SJF")
	rootCmd.Flags().IntVar(&flagSlice, "slice", 2,
		"time slice for the RR policy")
	rootCmd.Flags().IntVar(&flagSysCallCost, "syscall-cost", 1,
		"virtual time charged per syscall or interrupt")
	rootCmd.Flags().IntVar(&flagCSwitchCost, "context-switch-cost", 3,
		"virtual time charged per context switch")
	rootCmd.Flags().Uint32Var(&flagTraceLevel, "trace-level", 0,
		"bitmask of trace categories to log, 31 for everything")
	rootCmd.Flags().StringVar(&flagProfileCSV, "profile-csv", "",
		"write per-process profiles to this CSV file")
	rootCmd.Flags().StringVar(&flagRecordDB, "record-db", "",
		"record profiles and the run summary in a SQLite database")
	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", false,
		"serve the monitoring API while the simulation runs")
	rootCmd.Flags().IntVar(&flagMonitorPort, "monitor-port", 0,
		"port for the monitoring API, 0 picks a random port")

	if err := rootCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

func runSimulation(_ *cobra.Command, _ []string) error {
	s := sim.NewSimulation(
		sim.VTime(flagSysCallCost), sim.VTime(flagCSwitchCost))

	kernel, err := buildKernel(s)
	if err != nil {
		return err
	}
	s.SetKernel(kernel)

	if flagTraceLevel != 0 {
		logger := log.New(os.Stderr, "", 0)
		s.AcceptHook(sim.NewTraceLogger(logger, s.Clock(), flagTraceLevel))
	}

	profiler := profiling.NewProfiler()
	s.AcceptHook(profiler)

	if err := workload.Load(flagConfig, s); err != nil {
		return err
	}

	if flagMonitor {
		monitor := monitoring.NewMonitor(s).WithPortNumber(flagMonitorPort)
		url, err := monitor.StartServer()
		if err != nil {
			return err
		}
		monitor.OpenDashboard(url)
	}

	if err := s.Run(); err != nil {
		return err
	}

	reportRun(s)

	if flagProfileCSV != "" {
		if err := profiler.WriteCSVFile(flagProfileCSV); err != nil {
			return err
		}
	}

	if flagRecordDB != "" {
		rec := datarecording.NewSQLiteWriter(flagRecordDB)
		datarecording.RecordRun(rec, strings.ToUpper(flagPolicy), s, profiler)
	}

	return nil
}

func buildKernel(s *sim.Simulation) (sim.Kernel, error) {
	switch strings.ToUpper(flagPolicy) {
	case "FCFS":
		return kernels.NewFCFS(s), nil
	case "RR":
		return kernels.NewRR(s, sim.VTime(flagSlice)), nil
	case "SJF":
		return kernels.NewSJF(s), nil
	}
	return nil, fmt.Errorf("unknown scheduling policy %q", flagPolicy)
}

func reportRun(s *sim.Simulation) {
	clock := s.Clock()

	fmt.Println(clock)
	fmt.Printf("Context switches: %d\n", s.CPU().ContextSwitches())

	if clock.SystemTime() > 0 {
		utilization := float64(clock.UserTime()) /
			float64(clock.SystemTime()) * 100
		fmt.Printf("CPU utilization: %.2f\n", utilization)
	}
}
