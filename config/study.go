package config

import (
	"fmt"

	"github.com/kilianp07/infrasavings/core/costs"
	"github.com/kilianp07/infrasavings/core/report"
)

// PlottingConfig selects which solved networks are reported.
type PlottingConfig struct {
	Clusters         string   `json:"clusters"`
	PlanningHorizons []string `json:"planning_horizons"`
	SectorOpts       string   `json:"sector_opts"`
}

// SetDefaults applies the study defaults.
func (c *PlottingConfig) SetDefaults() {
	if c.Clusters == "" {
		c.Clusters = "48"
	}
	if len(c.PlanningHorizons) == 0 {
		c.PlanningHorizons = []string{"2020", "2030", "2040", "2050"}
	}
	if c.SectorOpts == "" {
		c.SectorOpts = "1H"
	}
}

// LimitsConfig holds the transmission expansion and CO2 limit per horizon.
type LimitsConfig struct {
	LineLimits map[string]string `json:"line_limits"`
	CO2Limits  map[string]string `json:"co2_limits"`
	// BAUHorizon is the base year; it has no scenario networks.
	BAUHorizon string `json:"bau_horizon"`
}

// SetDefaults applies the study defaults.
func (c *LimitsConfig) SetDefaults() {
	if c.LineLimits == nil {
		c.LineLimits = map[string]string{"2030": "v1.15", "2040": "v1.3", "2050": "v1.5"}
	}
	if c.CO2Limits == nil {
		c.CO2Limits = map[string]string{"2030": "0.45", "2040": "0.1", "2050": "0.0"}
	}
	if c.BAUHorizon == "" {
		c.BAUHorizon = "2020"
	}
}

// Default land usage factors in km2 per GW.
const (
	DefaultWindKm2PerGW  = 300.0
	DefaultSolarKm2PerGW = 20.0
)

// LandConfig converts installed capacity into land usage. A nil factor is
// unset; an explicit zero is kept.
type LandConfig struct {
	WindKm2PerGW  *float64 `json:"wind_km2_per_gw"`
	SolarKm2PerGW *float64 `json:"solar_km2_per_gw"`
}

// SetDefaults applies the study defaults.
func (c *LandConfig) SetDefaults() {
	if c.WindKm2PerGW == nil {
		v := DefaultWindKm2PerGW
		c.WindKm2PerGW = &v
	}
	if c.SolarKm2PerGW == nil {
		v := DefaultSolarKm2PerGW
		c.SolarKm2PerGW = &v
	}
}

// Wind returns the wind factor, or the default when unset.
func (c LandConfig) Wind() float64 {
	if c.WindKm2PerGW == nil {
		return DefaultWindKm2PerGW
	}
	return *c.WindKm2PerGW
}

// Solar returns the solar factor, or the default when unset.
func (c LandConfig) Solar() float64 {
	if c.SolarKm2PerGW == nil {
		return DefaultSolarKm2PerGW
	}
	return *c.SolarKm2PerGW
}

// Validate checks the factors are not negative.
func (c LandConfig) Validate() error {
	if c.Wind() < 0 || c.Solar() < 0 {
		return fmt.Errorf("land: factors must not be negative")
	}
	return nil
}

// ScenarioConfig maps a scenario id to its display name.
type ScenarioConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultScenarios returns the policy scenarios of the study in table order.
func DefaultScenarios() []ScenarioConfig {
	return []ScenarioConfig{
		{ID: "flexible", Name: "Widespread Renovation"},
		{ID: "retro_tes", Name: "Widespread Renovation and Electrification"},
		{ID: "flexible-moderate", Name: "Limited Renovation"},
		{ID: "rigid", Name: "Business as Usual and Electrification"},
	}
}

// OutputConfig lists the files written by a build.
type OutputConfig struct {
	Capacity string `json:"capacity"`
	Costs    string `json:"costs"`
	Land     string `json:"land"`
	// Markdown and JSON are optional.
	Markdown string `json:"markdown"`
	JSON     string `json:"json"`
}

// SetDefaults applies default paths.
func (c *OutputConfig) SetDefaults() {
	if c.Capacity == "" {
		c.Capacity = "results/tables/infra_savings_capacity.csv"
	}
	if c.Costs == "" {
		c.Costs = "results/tables/infra_savings_costs.csv"
	}
	if c.Land == "" {
		c.Land = "results/tables/infra_savings_land.csv"
	}
}

// Validate checks the table paths are distinct.
func (c OutputConfig) Validate() error {
	if c.Capacity == c.Costs || c.Capacity == c.Land || c.Costs == c.Land {
		return fmt.Errorf("output: table paths must be distinct")
	}
	return nil
}

// ReportParams converts the configuration into builder parameters.
func (c Config) ReportParams() report.Params {
	scenarios := make([]report.Scenario, len(c.Scenarios))
	for i, s := range c.Scenarios {
		scenarios[i] = report.Scenario{ID: s.ID, Name: s.Name}
	}
	return report.Params{
		Horizons:     c.Horizons(),
		LineLimits:   c.Limits.LineLimits,
		CO2Limits:    c.Limits.CO2Limits,
		Clusters:     c.Plotting.Clusters,
		SectorOpts:   c.Plotting.SectorOpts,
		Scenarios:    scenarios,
		Benchmark:    c.Benchmark,
		LandForWind:  c.Land.Wind(),
		LandForSolar: c.Land.Solar(),
		CostSelector: costs.Capital,
	}
}
