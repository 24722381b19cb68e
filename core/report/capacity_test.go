package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/infrasavings/core/model"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{12.345, 12.35},
		{0.005, 0.01},
		{1.234, 1.23},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Round2(c.in), "round %v", c.in)
	}
}

func TestInstalledCapacity(t *testing.T) {
	n := &model.NetworkResult{
		Generators: []model.Generator{
			{Carrier: model.CarrierSolar, PNomOpt: 12000},
			{Carrier: model.CarrierSolarRooftop, PNomOpt: 345},
			{Carrier: "solar-hsat", PNomOpt: 1e6},
		},
	}
	c := InstalledCapacity(n)
	assert.Equal(t, 12.35, c[model.CategorySolar])
	assert.Equal(t, 0.0, c[model.CategoryWind])
	assert.Equal(t, 0.0, c[model.CategoryGas])
	for _, v := range c {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestLinkOutputCapacity(t *testing.T) {
	n := &model.NetworkResult{Links: []model.Link{
		{Carrier: model.CarrierCCGT, PNomOpt: 100, Efficiency: 0.5},
		{Carrier: model.CarrierOCGT, PNomOpt: 100, Efficiency: 0.4},
	}}
	assert.Equal(t, 50.0, LinkOutputCapacity(n, GasCarriers))
	assert.Equal(t, 0.0, LinkOutputCapacity(&model.NetworkResult{}, GasCarriers))
}

func TestLandUsage(t *testing.T) {
	land := LandUsage(Capacities{model.CategoryWind: 2, model.CategorySolar: 12.35, model.CategoryGas: 3}, 300, 20)
	assert.Equal(t, 600.0, land[model.CategoryWind])
	assert.Equal(t, 247.0, land[model.CategorySolar])
	_, ok := land[model.CategoryGas]
	assert.False(t, ok)
}
