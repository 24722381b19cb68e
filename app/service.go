package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kilianp07/infrasavings/config"
	coremetrics "github.com/kilianp07/infrasavings/core/metrics"
	"github.com/kilianp07/infrasavings/core/model"
	"github.com/kilianp07/infrasavings/core/report"
	"github.com/kilianp07/infrasavings/infra/logger"
	_ "github.com/kilianp07/infrasavings/infra/metrics"
	"github.com/kilianp07/infrasavings/infra/network"
	"github.com/kilianp07/infrasavings/pkg/export"
)

// Service wires the network loader, report sinks and builder for one run.
type Service struct {
	RunID   string
	cfg     *config.Config
	loader  model.Loader
	sink    coremetrics.ReportSink
	builder *report.Builder
	log     logger.Logger
	flushed bool
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	loader, err := network.NewLoader(cfg.Networks)
	if err != nil {
		return nil, fmt.Errorf("network loader: %w", err)
	}
	return NewWithLoader(cfg, loader)
}

// NewWithLoader creates a Service reading networks from loader.
func NewWithLoader(cfg *config.Config, loader model.Loader) (*Service, error) {
	runID := uuid.NewString()
	logg := logger.NewZerologLogger("report").With("run_id", runID)
	sink, err := coremetrics.NewReportSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("report sink: %w", err)
	}
	b, err := report.NewBuilder(cfg.ReportParams(), loader, sink, logg, runID)
	if err != nil {
		return nil, err
	}
	return &Service{RunID: runID, cfg: cfg, loader: loader, sink: sink, builder: b, log: logg}, nil
}

// Run builds the tables and writes every configured output.
func (s *Service) Run(ctx context.Context) (*report.Result, error) {
	res, err := s.builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := WriteOutputs(s.cfg.Output, res); err != nil {
		return nil, err
	}
	if err := s.flush(); err != nil {
		s.log.Errorf("flush report sink: %v", err)
	}
	s.log.Infof("report written: %d cells, %d networks skipped",
		res.Tables.Capacity.SetCount()+res.Tables.Cost.SetCount()+res.Tables.Land.SetCount(), len(res.Skipped))
	return res, nil
}

// Close flushes the report sink if Run did not, then releases the loader.
func (s *Service) Close() error {
	ferr := s.flush()
	if c, ok := s.loader.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return ferr
}

// flush runs the sink flush at most once per service.
func (s *Service) flush() error {
	if s.flushed {
		return nil
	}
	s.flushed = true
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		return f.Flush()
	}
	return nil
}

// WriteOutputs writes the three CSV tables and the optional Markdown and
// JSON documents.
func WriteOutputs(out config.OutputConfig, res *report.Result) error {
	tables := []struct {
		path  string
		table *report.Table
	}{
		{out.Capacity, res.Tables.Capacity},
		{out.Costs, res.Tables.Cost},
		{out.Land, res.Tables.Land},
	}
	for _, t := range tables {
		if err := writeFile(t.path, func(w io.Writer) error { return export.WriteCSV(w, t.table) }); err != nil {
			return err
		}
	}
	if out.Markdown != "" {
		if err := writeFile(out.Markdown, func(w io.Writer) error {
			return export.WriteMarkdown(w, "Infrastructure savings", res)
		}); err != nil {
			return err
		}
	}
	if out.JSON != "" {
		if err := writeFile(out.JSON, func(w io.Writer) error { return export.WriteJSON(w, res) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
