package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/kudo/config"
)

// NewRunID returns a fresh identifier for one game run.
func NewRunID() string {
	return uuid.NewString()
}

// table is one CSV file of T rows. The header goes out with the first
// batch.
type table[T any] struct {
	name   string
	f      *os.File
	header bool
}

func (t *table[T]) open(dir string) error {
	f, err := os.Create(filepath.Join(dir, t.name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", t.name, err)
	}
	t.f = f
	return nil
}

func (t *table[T]) append(rows ...T) error {
	if len(rows) == 0 {
		return nil
	}
	var err error
	if t.header {
		err = gocsv.MarshalWithoutHeaders(&rows, t.f)
	} else {
		err = gocsv.Marshal(&rows, t.f)
		t.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	return nil
}

func (t *table[T]) close() error {
	if t.f == nil {
		return nil
	}
	return t.f.Close()
}

// OutputManager writes one run's files: config.yaml, telemetry.csv,
// perf.csv and events.csv. A nil manager means output is disabled and every
// method is a no-op.
type OutputManager struct {
	dir   string
	runID string

	windows table[WindowStats]
	perf    table[PerfStatsCSV]
	events  table[EventRecord]
}

// NewOutputManager creates dir and its CSV files. An empty dir disables
// output and returns nil.
func NewOutputManager(dir, runID string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{
		dir:     dir,
		runID:   runID,
		windows: table[WindowStats]{name: "telemetry.csv"},
		perf:    table[PerfStatsCSV]{name: "perf.csv"},
		events:  table[EventRecord]{name: "events.csv"},
	}
	err := errors.Join(om.windows.open(dir), om.perf.open(dir), om.events.open(dir))
	if err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig snapshots cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window row.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.windows.append(stats)
}

// WritePerf appends a perf row for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append(stats.ToCSV(windowEnd))
}

// WriteEvents appends events tagged with the run ID.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil {
		return nil
	}
	records := make([]EventRecord, len(events))
	for i, ev := range events {
		records[i] = ev.Record(om.runID)
	}
	return om.events.append(records...)
}

// Dir returns the output directory, empty when disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.windows.close(), om.perf.close(), om.events.close())
}
