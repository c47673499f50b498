// Package monitoring turns a running simulation into a small web server, so
// that its progress can be observed and it can be paused and continued from
// outside.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/schedlab/schedsim/sim"
)

// A Monitor exposes a simulation over HTTP.
type Monitor struct {
	sim        *sim.Simulation
	portNumber int
}

// NewMonitor creates a new Monitor for the given simulation.
func NewMonitor(s *sim.Simulation) *Monitor {
	return &Monitor{sim: s}
}

// WithPortNumber sets the port the monitor listens on. Ports below 1000 are
// rejected and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server, "+
				"using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber
	return m
}

// StartServer starts the monitor as a web server and returns the URL it
// serves on.
func (m *Monitor) StartServer() (string, error) {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/pause", m.pause)
	r.HandleFunc("/api/continue", m.continueRun)
	r.HandleFunc("/api/processes", m.listProcesses)
	r.HandleFunc("/api/summary", m.summary)
	r.HandleFunc("/api/resource", m.listResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		if err := http.Serve(listener, r); err != nil {
			fmt.Fprintf(os.Stderr, "monitor server stopped: %s\n", err)
		}
	}()

	return url, nil
}

// OpenDashboard opens the monitor URL in the system browser.
func (m *Monitor) OpenDashboard(url string) {
	if err := browser.OpenURL(url); err != nil {
		fmt.Fprintf(os.Stderr, "unable to open browser: %s\n", err)
	}
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]int64{"now": int64(m.sim.Clock().Now())})
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.sim.Engine().Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueRun(w http.ResponseWriter, _ *http.Request) {
	m.sim.Engine().Continue()
	w.WriteHeader(http.StatusOK)
}

type processInfo struct {
	PID      int    `json:"pid"`
	Program  string `json:"program"`
	Priority int    `json:"priority"`
	State    string `json:"state"`
}

func (m *Monitor) listProcesses(w http.ResponseWriter, _ *http.Request) {
	m.sim.Engine().Pause()
	defer m.sim.Engine().Continue()

	procs := []processInfo{}
	for _, p := range m.sim.Processes() {
		procs = append(procs, processInfo{
			PID:      p.PID(),
			Program:  p.ProgramName(),
			Priority: p.Priority(),
			State:    p.State().String(),
		})
	}

	writeJSON(w, procs)
}

func (m *Monitor) summary(w http.ResponseWriter, _ *http.Request) {
	m.sim.Engine().Pause()
	defer m.sim.Engine().Continue()

	clock := m.sim.Clock()
	writeJSON(w, map[string]int64{
		"system_time":      int64(clock.SystemTime()),
		"user_time":        int64(clock.UserTime()),
		"context_switches": int64(m.sim.CPU().ContextSwitches()),
		"pending_events":   int64(m.sim.Engine().PendingEvents()),
	})
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := self.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := self.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"cpu_percent": cpuPercent,
		"rss":         memInfo.RSS,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
