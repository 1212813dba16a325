package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// Output writes runs.csv and samples.csv into a directory. A nil *Output
// discards everything, so callers need not check whether output is enabled.
type Output struct {
	mu sync.Mutex

	runs    io.WriteCloser
	samples io.WriteCloser

	runsHeader    bool
	samplesHeader bool
}

// NewOutput creates dir and opens both files. It returns nil, nil when dir
// is empty.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}
	runs, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating runs.csv: %w", err)
	}
	samples, err := os.Create(filepath.Join(dir, "samples.csv"))
	if err != nil {
		runs.Close()
		return nil, fmt.Errorf("telemetry: creating samples.csv: %w", err)
	}
	return &Output{runs: runs, samples: samples}, nil
}

// newOutputTo is NewOutput over arbitrary writers.
func newOutputTo(runs, samples io.WriteCloser) *Output {
	return &Output{runs: runs, samples: samples}
}

// WriteRun appends a run row, writing the header first if needed.
func (o *Output) WriteRun(r RunRecord) error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := writeRows(o.runs, []RunRecord{r}, &o.runsHeader); err != nil {
		return fmt.Errorf("telemetry: writing run: %w", err)
	}
	return nil
}

// WriteSamples appends sample rows.
func (o *Output) WriteSamples(s []Sample) error {
	if o == nil || len(s) == 0 {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := writeRows(o.samples, s, &o.samplesHeader); err != nil {
		return fmt.Errorf("telemetry: writing samples: %w", err)
	}
	return nil
}

func writeRows[T any](w io.Writer, rows []T, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, w); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, w)
}

// Close closes both files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return errors.Join(o.runs.Close(), o.samples.Close())
}

// ReadRuns parses a runs.csv produced by Output.
func ReadRuns(r io.Reader) ([]RunRecord, error) {
	var runs []RunRecord
	if err := gocsv.Unmarshal(r, &runs); err != nil {
		return nil, fmt.Errorf("telemetry: reading runs: %w", err)
	}
	return runs, nil
}
