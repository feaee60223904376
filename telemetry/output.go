package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ZBemo/simple-pirate-sim/config"
)

// csvStream is one append-only CSV file. The header row is emitted with the
// first record only.
type csvStream struct {
	file      *os.File
	hasHeader bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{file: f}, nil
}

func appendRecord[T any](s *csvStream, rec T) error {
	records := []T{rec}
	if !s.hasHeader {
		s.hasHeader = true
		return gocsv.Marshal(records, s.file)
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

func (s *csvStream) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager owns a run directory holding the config snapshot and the
// CSV streams for window telemetry, perf timings, and collision events.
type OutputManager struct {
	dir        string
	telemetry  *csvStream
	perf       *csvStream
	collisions *csvStream
}

// NewOutputManager creates the output directory and its CSV streams.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		name string
		dst  **csvStream
	}{
		{"telemetry.csv", &om.telemetry},
		{"perf.csv", &om.perf},
		{"collisions.csv", &om.collisions},
	} {
		stream, err := openStream(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = stream
	}
	return om, nil
}

// WriteConfig saves the active configuration next to the CSV streams, so a
// run directory is self-describing.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats row.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := appendRecord(om.telemetry, stats); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a perf stats row.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := appendRecord(om.perf, stats.ToCSV(windowEnd)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteCollision appends one resolved collision event.
func (om *OutputManager) WriteCollision(rec CollisionRecord) error {
	if om == nil {
		return nil
	}
	if err := appendRecord(om.collisions, rec); err != nil {
		return fmt.Errorf("writing collision: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every stream, returning the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvStream{om.telemetry, om.perf, om.collisions} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
