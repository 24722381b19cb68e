package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/infrasavings/core/factory"
	"github.com/kilianp07/infrasavings/core/metrics"
)

// EnvPrefix marks environment variables overriding file settings, e.g.
// IS_PLOTTING__CLUSTERS=64.
const EnvPrefix = "IS_"

type Config struct {
	Plotting  PlottingConfig       `json:"plotting"`
	Limits    LimitsConfig         `json:"limits"`
	Land      LandConfig           `json:"land"`
	Scenarios []ScenarioConfig     `json:"scenarios"`
	Benchmark string               `json:"benchmark"`
	Networks  factory.ModuleConfig `json:"networks"`
	Output    OutputConfig         `json:"output"`
	Metrics   metrics.Config       `json:"metrics"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides; "__" separates nested keys.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           &cfg,
		},
	}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset sections with the study defaults.
func (c *Config) SetDefaults() {
	c.Plotting.SetDefaults()
	c.Limits.SetDefaults()
	c.Land.SetDefaults()
	c.Output.SetDefaults()
	if len(c.Scenarios) == 0 {
		c.Scenarios = DefaultScenarios()
	}
	if c.Benchmark == "" {
		c.Benchmark = "rigid"
	}
	if c.Networks.Type == "" {
		c.Networks.Type = "files"
	}
}

// Validate checks the configuration is complete.
func (c Config) Validate() error {
	horizons := c.Horizons()
	if len(horizons) == 0 {
		return fmt.Errorf("plotting.planning_horizons: no horizon besides the BAU horizon %s", c.Limits.BAUHorizon)
	}
	for _, h := range horizons {
		if _, ok := c.Limits.LineLimits[h]; !ok {
			return fmt.Errorf("limits.line_limits: missing horizon %s", h)
		}
		if _, ok := c.Limits.CO2Limits[h]; !ok {
			return fmt.Errorf("limits.co2_limits: missing horizon %s", h)
		}
	}
	if err := c.Land.Validate(); err != nil {
		return err
	}
	ids := map[string]bool{}
	for i, s := range c.Scenarios {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("scenarios[%d]: id and name are required", i)
		}
		if ids[s.ID] {
			return fmt.Errorf("scenarios[%d]: duplicate id %s", i, s.ID)
		}
		ids[s.ID] = true
	}
	return c.Output.Validate()
}

// Horizons returns the planning horizons to report, excluding the BAU horizon.
func (c Config) Horizons() []string {
	var out []string
	for _, h := range c.Plotting.PlanningHorizons {
		if h != c.Limits.BAUHorizon {
			out = append(out, h)
		}
	}
	return out
}
