// Package config builds the handful of runtime settings a composition needs
// beyond its wired-up components — the logger name, the run's t_max, per-
// component start/step overrides, and the multi-process worker topology —
// from a JSONC document. Constructing the components and wiring their ports
// together remains plain Go; this package only covers the settings a
// deployment would otherwise hardcode.
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/sched"
	"github.com/tidwall/jsonc"
)

// ErrInvalidTMax is returned when a document's "t_max" field is missing or
// not strictly positive.
var ErrInvalidTMax = errors.New("config: t_max must be a positive number of seconds")

// ComponentOverride holds a per-component start time and step duration
// override, in seconds, read from a document's "components" map.
type ComponentOverride struct {
	StartSeconds float64 `json:"start"`
	StepSeconds  float64 `json:"step"`
}

// Start returns the override's start time as a clock.Timestamp.
func (o ComponentOverride) Start() clock.Timestamp {
	return clock.At(int64(o.StartSeconds * float64(clock.Second)))
}

// Step returns the override's step as a clock.Duration.
func (o ComponentOverride) Step() clock.Duration {
	return clock.Duration(o.StepSeconds * float64(clock.Second))
}

// workerCount mirrors sched.ComponentProcesses for JSON decoding; documents
// spell it out by component name rather than relying on map key ordering.
type workerCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// document is the raw shape decoded from a config file, before validation.
type document struct {
	Logger         string                       `json:"logger"`
	TMaxSeconds    float64                      `json:"t_max"`
	Components     map[string]ComponentOverride `json:"components"`
	TotalProcesses int                          `json:"total_processes"`
	Workers        []workerCount                `json:"workers"`
}

// Config is the validated, typed result of Load.
type Config struct {
	LoggerName string
	TMax       clock.Timestamp
	Overrides  map[string]ComponentOverride

	// Topology is nil unless the document named at least one worker;
	// callers that don't use sched's multi-process split can ignore it.
	Topology *sched.WorkerTopology
}

// Load parses data as JSONC into a validated Config. Comments and trailing
// commas are tolerated: data is preprocessed with tidwall/jsonc.ToJSON before
// encoding/json.Unmarshal, the same preprocessing
// the teacher's adapter/json package applies before parsing.
func Load(data []byte) (*Config, error) {
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("config: parsing document: %w", err)
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (*Config, error) {
	if doc.TMaxSeconds <= 0 {
		return nil, ErrInvalidTMax
	}

	loggerName := doc.Logger
	if loggerName == "" {
		loggerName = "composition"
	}

	cfg := &Config{
		LoggerName: loggerName,
		TMax:       clock.At(int64(doc.TMaxSeconds * float64(clock.Second))),
		Overrides:  doc.Components,
	}

	if len(doc.Workers) == 0 {
		return cfg, nil
	}

	processes := make([]sched.ComponentProcesses, len(doc.Workers))
	for i, w := range doc.Workers {
		processes[i] = sched.ComponentProcesses{Name: w.Name, Count: w.Count}
	}
	topology, err := sched.NewWorkerTopology(doc.TotalProcesses, processes)
	if err != nil {
		return nil, fmt.Errorf("config: building worker topology: %w", err)
	}
	cfg.Topology = topology

	return cfg, nil
}
