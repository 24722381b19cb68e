package report

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kilianp07/infrasavings/core/model"
)

const (
	mwPerGW       = 1e3
	eurPerBillion = 1e9
)

// Carriers summed per category for installed capacity.
var (
	WindCarriers  = []string{model.CarrierOnwind, model.CarrierOffwindAC, model.CarrierOffwindDC}
	SolarCarriers = []string{model.CarrierSolar, model.CarrierSolarRooftop}
	GasCarriers   = []string{model.CarrierCCGT}
)

// CostRows lists the cost table rows summed per category.
var CostRows = map[model.Category][]string{
	model.CategoryWind:  {"Generator:Offshore Wind (AC)", "Generator:Offshore Wind (DC)", "Generator:Onshore Wind"},
	model.CategorySolar: {"Generator:Solar", "Generator:solar rooftop"},
	model.CategoryGas:   {"Store:gas", "Link:Open-Cycle Gas"},
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return scalar.Round(v, 2)
}

// GeneratorCapacity sums the optimised capacity in MW of generators whose
// carrier is listed.
func GeneratorCapacity(n *model.NetworkResult, carriers []string) float64 {
	var caps []float64
	for _, g := range n.Generators {
		if slices.Contains(carriers, g.Carrier) {
			caps = append(caps, g.PNomOpt)
		}
	}
	return floats.Sum(caps)
}

// LinkOutputCapacity sums capacity times efficiency in MW for links whose
// carrier is listed.
func LinkOutputCapacity(n *model.NetworkResult, carriers []string) float64 {
	var caps, eff []float64
	for _, l := range n.Links {
		if slices.Contains(carriers, l.Carrier) {
			caps = append(caps, l.PNomOpt)
			eff = append(eff, l.Efficiency)
		}
	}
	if len(caps) == 0 {
		return 0
	}
	return floats.Dot(caps, eff)
}

// Capacities holds installed capacity per category in GW, rounded.
type Capacities map[model.Category]float64

// InstalledCapacity computes the capacity row values of n.
func InstalledCapacity(n *model.NetworkResult) Capacities {
	return Capacities{
		model.CategoryWind:  Round2(GeneratorCapacity(n, WindCarriers) / mwPerGW),
		model.CategorySolar: Round2(GeneratorCapacity(n, SolarCarriers) / mwPerGW),
		model.CategoryGas:   Round2(LinkOutputCapacity(n, GasCarriers) / mwPerGW),
	}
}

// LandUsage converts wind and solar capacity into km2. Gas has no land
// entry.
func LandUsage(c Capacities, windKm2PerGW, solarKm2PerGW float64) map[model.Category]float64 {
	return map[model.Category]float64{
		model.CategoryWind:  Round2(c[model.CategoryWind] * windKm2PerGW),
		model.CategorySolar: Round2(c[model.CategorySolar] * solarKm2PerGW),
	}
}
