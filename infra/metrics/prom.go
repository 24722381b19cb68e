package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/infrasavings/core/metrics"
)

// PromSink exposes report cells as Prometheus gauges. With a textfile path
// set, Flush writes the gathered metrics for the node exporter textfile
// collector.
type PromSink struct {
	cells    *prometheus.GaugeVec
	skipped  *prometheus.CounterVec
	gatherer prometheus.Gatherer
	textfile string
}

// NewPromSink registers report metrics on a dedicated registry.
func NewPromSink(textfile string) (*PromSink, error) {
	reg := prometheus.NewRegistry()
	return NewPromSinkWithRegistry(reg, reg, textfile)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer, textfile string) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	cells := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "infrasavings_cell_value",
		Help: "Report table values by table, scenario, horizon and category",
	}, []string{"table", "scenario", "horizon", "category"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "infrasavings_networks_skipped_total",
		Help: "Networks that could not be resolved",
	}, []string{"scenario", "horizon"})

	if err := reg.Register(cells); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cells = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(skipped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			skipped = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{cells: cells, skipped: skipped, gatherer: g, textfile: textfile}, nil
}

// RecordCell sets the gauge of the cell.
func (s *PromSink) RecordCell(ev coremetrics.CellEvent) error {
	s.cells.WithLabelValues(ev.Table, ev.Scenario, ev.Horizon, ev.Category).Set(ev.Value)
	return nil
}

// RecordSkip increments the skip counter.
func (s *PromSink) RecordSkip(ev coremetrics.SkipEvent) error {
	s.skipped.WithLabelValues(ev.Scenario, ev.Horizon).Inc()
	return nil
}

// Flush writes the textfile when configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.textfile, s.gatherer)
}
