package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/infrasavings/core/metrics"
	"github.com/kilianp07/infrasavings/infra/logger"
)

const influxMeasurement = "infra_savings"

// InfluxSink writes report cells to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.ReportSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// CellPoint builds the line protocol point of a report cell.
func CellPoint(ev coremetrics.CellEvent) *write.Point {
	p := write.NewPointWithMeasurement(influxMeasurement).
		AddTag("table", ev.Table).
		AddTag("scenario", ev.Scenario).
		AddTag("horizon", ev.Horizon).
		AddTag("category", ev.Category)
	if ev.RunID != "" {
		p = p.AddTag("run_id", ev.RunID)
	}
	return p.AddField("value", ev.Value).SetTime(ev.Time)
}

// RecordCell writes one report cell.
func (s *InfluxSink) RecordCell(ev coremetrics.CellEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, CellPoint(ev))
}

// RecordSkip writes a marker for a network that was not found.
func (s *InfluxSink) RecordSkip(ev coremetrics.SkipEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("infra_savings_skipped").
		AddTag("scenario", ev.Scenario).
		AddTag("horizon", ev.Horizon)
	if ev.RunID != "" {
		p = p.AddTag("run_id", ev.RunID)
	}
	p = p.AddField("count", 1).SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Flush closes the client.
func (s *InfluxSink) Flush() error {
	s.client.Close()
	return nil
}
