package metrics

import "github.com/kilianp07/infrasavings/core/factory"

var sinkRegistry = factory.NewRegistry[ReportSink]("sink")

// RegisterReportSink adds a report sink factory identified by name.
func RegisterReportSink(name string, f factory.Factory[ReportSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewReportSink creates a ReportSink from the provided configuration.
func NewReportSink(cfgs []factory.ModuleConfig) (ReportSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]ReportSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
