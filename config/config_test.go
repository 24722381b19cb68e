package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `plotting:
  clusters: 64
  planning_horizons: [2020, 2030, 2050]
  sector_opts: "3H"
limits:
  line_limits:
    "2030": "v1.2"
    "2050": "v2.0"
  co2_limits:
    "2030": "0.5"
    "2050": "0.0"
land:
  wind_km2_per_gw: 250
scenarios:
  - id: flexible
    name: Widespread Renovation
  - id: flexible-moderate
    name: Limited Renovation
networks:
  type: sqlite
  conf:
    path: networks.db
output:
  markdown: report.md
metrics:
  sinks:
    - type: nop
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"clusters", cfg.Plotting.Clusters, "64"},
		{"sector_opts", cfg.Plotting.SectorOpts, "3H"},
		{"line_limit", cfg.Limits.LineLimits["2050"], "v2.0"},
		{"co2_limit", cfg.Limits.CO2Limits["2030"], "0.5"},
		{"bau", cfg.Limits.BAUHorizon, "2020"},
		{"wind", cfg.Land.Wind(), 250.0},
		{"solar default", cfg.Land.Solar(), 20.0},
		{"scenarios", len(cfg.Scenarios), 2},
		{"benchmark", cfg.Benchmark, "rigid"},
		{"networks", cfg.Networks.Type, "sqlite"},
		{"networks.path", cfg.Networks.Conf["path"], "networks.db"},
		{"markdown", cfg.Output.Markdown, "report.md"},
		{"capacity default", cfg.Output.Capacity, "results/tables/infra_savings_capacity.csv"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
	assert.Equal(t, []string{"2030", "2050"}, cfg.Horizons())

	p := cfg.ReportParams()
	assert.Equal(t, "Co2L0.5-3H", p.Key("2030", "flexible").SectorOpts)
	assert.Equal(t, "Limited Renovation", p.Scenarios[1].Name)
}

func TestLoad_DefaultsFromJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"2030", "2040", "2050"}, cfg.Horizons())
	assert.Equal(t, DefaultScenarios(), cfg.Scenarios)
	assert.Equal(t, "files", cfg.Networks.Type)
	require.NoError(t, cfg.ReportParams().Validate())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("IS_PLOTTING__CLUSTERS", "128")
	t.Setenv("IS_BENCHMARK", "flexible")
	cfg, err := Load(writeConfig(t, "config.yaml", "plotting:\n  clusters: 48\n"))
	require.NoError(t, err)
	assert.Equal(t, "128", cfg.Plotting.Clusters)
	assert.Equal(t, "flexible", cfg.Benchmark)
}

func TestLoad_EnvOverrideNestedFloat(t *testing.T) {
	t.Setenv("IS_LAND__WIND_KM2_PER_GW", "999")
	cfg, err := Load(writeConfig(t, "config.yaml", "land:\n  wind_km2_per_gw: 250\n"))
	require.NoError(t, err)
	assert.Equal(t, 999.0, cfg.Land.Wind())
	assert.Equal(t, DefaultSolarKm2PerGW, cfg.Land.Solar())
}

func TestLoad_ZeroLandFactorKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "land:\n  wind_km2_per_gw: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Land.Wind())
	assert.Equal(t, 20.0, cfg.Land.Solar())
	assert.Equal(t, 0.0, cfg.ReportParams().LandForWind)

	_, err = Load(writeConfig(t, "config.yaml", "land:\n  solar_km2_per_gw: -1\n"))
	assert.ErrorContains(t, err, "must not be negative")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", ""))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeConfig(t, "config.yaml", "plotting:\n  planning_horizons: [\"2030\", \"2060\"]\n"))
	assert.ErrorContains(t, err, "line_limits: missing horizon 2060")

	_, err = Load(writeConfig(t, "config.yaml", "scenarios:\n  - id: a\n    name: A\n  - id: a\n    name: B\n"))
	assert.ErrorContains(t, err, "duplicate id")

	_, err = Load(writeConfig(t, "config.yaml", "output:\n  costs: t.csv\n  land: t.csv\n"))
	assert.ErrorContains(t, err, "distinct")

	_, err = Load(writeConfig(t, "config.yaml", "plotting:\n  planning_horizons: [\"2020\"]\n"))
	assert.Error(t, err)
}
