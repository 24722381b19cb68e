package metrics

import "time"

// CellEvent is emitted for every report cell the builder sets.
type CellEvent struct {
	RunID    string
	Table    string
	Scenario string
	Horizon  string
	Category string
	Value    float64
	Time     time.Time
}

// SkipEvent is emitted when a network could not be resolved.
type SkipEvent struct {
	RunID    string
	Scenario string
	Horizon  string
	Time     time.Time
}

// ReportSink records report values for observability purposes.
type ReportSink interface {
	RecordCell(ev CellEvent) error
	RecordSkip(ev SkipEvent) error
}

// Flusher is implemented by sinks that persist buffered data at the end of a
// run.
type Flusher interface {
	Flush() error
}

// NopSink implements ReportSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCell(CellEvent) error { return nil }
func (NopSink) RecordSkip(SkipEvent) error { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []ReportSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...ReportSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCell forwards the cell to all sinks, returning the first error encountered.
func (m *MultiSink) RecordCell(ev CellEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCell(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSkip forwards skip events.
func (m *MultiSink) RecordSkip(ev SkipEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSkip(ev); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink that supports it.
func (m *MultiSink) Flush() error {
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
