// Package processing turns raw task iterations into the data payloads the
// renderer draws. Every chart consumes iterations one at a time and renders
// its payload once all iterations were added.
package processing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// AtomicInfo describes one atomic action of a workload.
type AtomicInfo struct {
	Name        string  `json:"name"`
	MinDuration float64 `json:"min_duration"`
	MaxDuration float64 `json:"max_duration"`
}

// Info is the summary of a workload the charts are sized by.
type Info struct {
	IterationsCount  int          `json:"iterations_count"`
	IterationsFailed int          `json:"iterations_failed"`
	MinDuration      float64      `json:"min_duration"`
	MaxDuration      float64      `json:"max_duration"`
	LoadDuration     float64      `json:"load_duration"`
	TstampStart      float64      `json:"tstamp_start"`
	Atomic           []AtomicInfo `json:"atomic"`
}

// AtomicNames returns the atomic action names in declaration order.
func (i Info) AtomicNames() []string {
	names := make([]string, len(i.Atomic))
	for idx, a := range i.Atomic {
		names[idx] = a.Name
	}
	return names
}

// Iteration is one run of the scenario.
type Iteration struct {
	Duration      float64            `json:"duration"`
	IdleDuration  float64            `json:"idle_duration"`
	Timestamp     float64            `json:"timestamp"`
	Error         []string           `json:"error"`
	AtomicActions map[string]float64 `json:"atomic_actions"`
	Output        Output             `json:"output"`
}

// Failed reports whether the iteration ended with an error.
func (it Iteration) Failed() bool { return len(it.Error) > 0 }

// atomic returns the duration of an atomic action, 0 when it did not run.
func (it Iteration) atomic(name string) float64 {
	return it.AtomicActions[name]
}

// Workload is a workload summary with its iterations.
type Workload struct {
	Info       Info        `json:"info"`
	Iterations []Iteration `json:"iterations"`
}

// sizedInfo returns the info with the iteration count raised to the number
// of iterations actually present.
func (w *Workload) sizedInfo() Info {
	info := w.Info
	if n := len(w.Iterations); n > info.IterationsCount {
		info.IterationsCount = n
	}
	return info
}

// DecodeWorkload reads a workload document.
func DecodeWorkload(r io.Reader) (*Workload, error) {
	var w Workload
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to decode workload: %w", err)
	}
	if w.Info.IterationsCount == 0 {
		w.Info.IterationsCount = len(w.Iterations)
	}
	return &w, nil
}

// LoadWorkload reads a workload document from path.
func LoadWorkload(path string) (*Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workload: %w", err)
	}
	defer f.Close()
	return DecodeWorkload(f)
}
