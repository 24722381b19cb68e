// Package metrics defines the sinks report values are mirrored to. Sinks
// like PromSink and InfluxSink live in infra/metrics and register
// themselves by name; NewReportSink returns a MultiSink automatically when
// several sinks are configured.
package metrics
