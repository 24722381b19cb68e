package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/infrasavings/core/costs"
	"github.com/kilianp07/infrasavings/core/logger"
	"github.com/kilianp07/infrasavings/core/metrics"
	"github.com/kilianp07/infrasavings/core/model"
)

// Table names and measures.
const (
	TableCapacity = "capacity"
	TableCost     = "costs"
	TableLand     = "land"

	MeasureCapacity = "Installed capacity [GW]"
	MeasureCost     = "Capital cost [BEur]"
	MeasureLand     = "Land usage [km2]"

	// LimitedRenovation and its replacement label share one row in the
	// published tables.
	LimitedRenovation       = "Limited Renovation"
	LimitedRenovationMerged = "Limited Renovation/Limited Renovation & Electrification"
)

// Scenario maps a scenario identifier to its display name.
type Scenario struct {
	ID   string
	Name string
}

// Params configures a report build.
type Params struct {
	Horizons   []string
	LineLimits map[string]string
	CO2Limits  map[string]string
	Clusters   string
	SectorOpts string
	Scenarios  []Scenario
	// Benchmark is the business-as-usual scenario id whose costs serve as the
	// baseline reference.
	Benchmark    string
	LandForWind  float64
	LandForSolar float64
	CostSelector costs.Selector
}

// Validate checks that every horizon has its limits and scenarios are unique.
func (p Params) Validate() error {
	if len(p.Horizons) == 0 {
		return fmt.Errorf("report: no planning horizons")
	}
	if len(p.Scenarios) == 0 {
		return fmt.Errorf("report: no scenarios")
	}
	for _, h := range p.Horizons {
		if _, ok := p.LineLimits[h]; !ok {
			return fmt.Errorf("report: no line limit for horizon %s", h)
		}
		if _, ok := p.CO2Limits[h]; !ok {
			return fmt.Errorf("report: no CO2 limit for horizon %s", h)
		}
	}
	seen := map[string]bool{}
	for _, s := range p.Scenarios {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("report: scenario id and name are required")
		}
		if seen[s.Name] {
			return fmt.Errorf("report: duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
	if seen[LimitedRenovation] && seen[LimitedRenovationMerged] {
		return fmt.Errorf("report: duplicate scenario name %q after relabelling %q", LimitedRenovationMerged, LimitedRenovation)
	}
	return nil
}

// Key returns the network key of scenario at horizon h.
func (p Params) Key(h, scenario string) model.NetworkKey {
	return model.NetworkKey{
		LineLimit:  p.LineLimits[h],
		Clusters:   p.Clusters,
		SectorOpts: fmt.Sprintf("Co2L%s-%s", p.CO2Limits[h], p.SectorOpts),
		Horizon:    h,
		Scenario:   scenario,
	}
}

// Skip records a network that could not be resolved.
type Skip struct {
	Scenario string `json:"scenario"`
	Horizon  string `json:"horizon"`
}

// Result is the outcome of a build.
type Result struct {
	RunID   string
	Tables  Tables
	Skipped []Skip
}

// Builder computes the capacity, cost and land usage tables.
type Builder struct {
	params Params
	loader model.Loader
	sink   metrics.ReportSink
	log    logger.Logger
	runID  string
	now    func() time.Time
}

// NewBuilder creates a Builder. A nil sink records nothing and a nil logger
// discards output.
func NewBuilder(p Params, loader model.Loader, sink metrics.ReportSink, log logger.Logger, runID string) (*Builder, error) {
	if loader == nil {
		return nil, fmt.Errorf("report: nil loader")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.CostSelector == "" {
		p.CostSelector = costs.Capital
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Builder{params: p, loader: loader, sink: sink, log: log, runID: runID, now: time.Now}, nil
}

// Build walks horizons then scenarios and fills the three tables. Missing
// networks are skipped; any other loader error aborts the build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	names := make([]string, len(b.params.Scenarios))
	for i, s := range b.params.Scenarios {
		names[i] = s.Name
	}
	res := &Result{
		RunID: b.runID,
		Tables: Tables{
			Capacity: NewTable(TableCapacity, MeasureCapacity, names, b.params.Horizons),
			Cost:     NewTable(TableCost, MeasureCost, names, b.params.Horizons),
			Land:     NewTable(TableLand, MeasureLand, names, b.params.Horizons),
		},
	}

	for _, h := range b.params.Horizons {
		if err := b.benchmark(ctx, h); err != nil {
			return nil, err
		}
		for _, sc := range b.params.Scenarios {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n, err := b.load(ctx, b.params.Key(h, sc.ID))
			if err != nil {
				return nil, err
			}
			if n == nil {
				b.log.Infof("Network is not found for scenario '%s', planning year '%s'. Skipping...", sc.ID, h)
				res.Skipped = append(res.Skipped, Skip{Scenario: sc.ID, Horizon: h})
				if err := b.sink.RecordSkip(metrics.SkipEvent{RunID: b.runID, Scenario: sc.ID, Horizon: h, Time: b.now()}); err != nil {
					b.log.Errorf("skip metrics error: %v", err)
				}
				continue
			}
			if err := b.fill(res.Tables, sc, h, n); err != nil {
				return nil, err
			}
		}
	}

	res.Tables.Relabel(LimitedRenovation, LimitedRenovationMerged)
	return res, nil
}

// benchmark computes the baseline costs of the business-as-usual network.
// The figures are only logged.
func (b *Builder) benchmark(ctx context.Context, h string) error {
	if b.params.Benchmark == "" {
		return nil
	}
	n, err := b.load(ctx, b.params.Key(h, b.params.Benchmark))
	if err != nil {
		return err
	}
	if n == nil {
		b.log.Warnf("benchmark network %q missing for planning year %s", b.params.Benchmark, h)
		return nil
	}
	bc, err := costs.Compute(n, b.params.Benchmark, b.params.CostSelector)
	if err != nil {
		return fmt.Errorf("benchmark costs %s: %w", h, err)
	}
	b.log.Debugw("benchmark costs", map[string]any{
		"scenario": b.params.Benchmark,
		"horizon":  h,
		"total":    bc.Total(),
		"rows":     len(bc.Rows),
	})
	return nil
}

func (b *Builder) load(ctx context.Context, key model.NetworkKey) (*model.NetworkResult, error) {
	n, err := b.loader.Load(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load network %s: %w", key, err)
	}
	return n, nil
}

func (b *Builder) fill(ts Tables, sc Scenario, h string, n *model.NetworkResult) error {
	caps := InstalledCapacity(n)
	capital, err := costs.Compute(n, sc.Name, b.params.CostSelector)
	if err != nil {
		return fmt.Errorf("costs %s %s: %w", sc.ID, h, err)
	}
	land := LandUsage(caps, b.params.LandForWind, b.params.LandForSolar)

	for _, cat := range model.Categories {
		col := Column{Horizon: h, Category: cat}
		if err := b.set(ts.Capacity, sc.Name, col, caps[cat]); err != nil {
			return err
		}
		if err := b.set(ts.Cost, sc.Name, col, Round2(capital.Sum(CostRows[cat]...)/eurPerBillion)); err != nil {
			return err
		}
		if v, ok := land[cat]; ok {
			if err := b.set(ts.Land, sc.Name, col, v); err != nil {
				return err
			}
		}
	}
	b.log.Debugw("scenario processed", map[string]any{
		"scenario": sc.ID,
		"horizon":  h,
		"wind_gw":  caps[model.CategoryWind],
		"solar_gw": caps[model.CategorySolar],
		"gas_gw":   caps[model.CategoryGas],
	})
	return nil
}

func (b *Builder) set(t *Table, row string, col Column, v float64) error {
	if err := t.Set(row, col, v); err != nil {
		return err
	}
	ev := metrics.CellEvent{
		RunID:    b.runID,
		Table:    t.Name,
		Scenario: PublishedLabel(row),
		Horizon:  col.Horizon,
		Category: col.Category.String(),
		Value:    v,
		Time:     b.now(),
	}
	if err := b.sink.RecordCell(ev); err != nil {
		b.log.Errorf("cell metrics error: %v", err)
	}
	return nil
}

// PublishedLabel returns the row label used in the written tables.
func PublishedLabel(name string) string {
	if name == LimitedRenovation {
		return LimitedRenovationMerged
	}
	return name
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
