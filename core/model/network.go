package model

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by loaders that signal a missing network as an error
// instead of a nil result.
var ErrNotFound = errors.New("network not found")

// NetworkKey identifies one solved network for a scenario and planning horizon.
type NetworkKey struct {
	LineLimit  string `json:"lineex" yaml:"lineex"`
	Clusters   string `json:"clusters" yaml:"clusters"`
	SectorOpts string `json:"sector_opts" yaml:"sector_opts"`
	Horizon    string `json:"horizon" yaml:"horizon"`
	Scenario   string `json:"scenario" yaml:"scenario"`
}

func (k NetworkKey) String() string {
	return fmt.Sprintf("%s/s_%s_l%s__%s_%s", k.Scenario, k.Clusters, k.LineLimit, k.SectorOpts, k.Horizon)
}

// Generator is an optimised generator record. Capacities are in MW, costs in EUR.
type Generator struct {
	Name         string  `json:"name" yaml:"name"`
	Carrier      string  `json:"carrier" yaml:"carrier"`
	PNomOpt      float64 `json:"p_nom_opt" yaml:"p_nom_opt"`
	CapitalCost  float64 `json:"capital_cost" yaml:"capital_cost"`
	MarginalCost float64 `json:"marginal_cost" yaml:"marginal_cost"`
	// Energy is the dispatched energy over the modelled period in MWh.
	Energy float64 `json:"energy" yaml:"energy"`
}

// Link is an optimised conversion or transport link.
type Link struct {
	Name         string  `json:"name" yaml:"name"`
	Carrier      string  `json:"carrier" yaml:"carrier"`
	PNomOpt      float64 `json:"p_nom_opt" yaml:"p_nom_opt"`
	Efficiency   float64 `json:"efficiency" yaml:"efficiency"`
	CapitalCost  float64 `json:"capital_cost" yaml:"capital_cost"`
	MarginalCost float64 `json:"marginal_cost" yaml:"marginal_cost"`
	Energy       float64 `json:"energy" yaml:"energy"`
}

// Store is an energy store sized in MWh.
type Store struct {
	Name         string  `json:"name" yaml:"name"`
	Carrier      string  `json:"carrier" yaml:"carrier"`
	ENomOpt      float64 `json:"e_nom_opt" yaml:"e_nom_opt"`
	CapitalCost  float64 `json:"capital_cost" yaml:"capital_cost"`
	MarginalCost float64 `json:"marginal_cost" yaml:"marginal_cost"`
	Energy       float64 `json:"energy" yaml:"energy"`
}

// StorageUnit is a power-rated storage unit such as pumped hydro.
type StorageUnit struct {
	Name         string  `json:"name" yaml:"name"`
	Carrier      string  `json:"carrier" yaml:"carrier"`
	PNomOpt      float64 `json:"p_nom_opt" yaml:"p_nom_opt"`
	CapitalCost  float64 `json:"capital_cost" yaml:"capital_cost"`
	MarginalCost float64 `json:"marginal_cost" yaml:"marginal_cost"`
	Energy       float64 `json:"energy" yaml:"energy"`
}

// Carrier holds presentation data of a carrier.
type Carrier struct {
	NiceName string `json:"nice_name" yaml:"nice_name"`
}

// NetworkResult is a read-only view of one solved network.
type NetworkResult struct {
	Key          NetworkKey         `json:"key" yaml:"key"`
	Generators   []Generator        `json:"generators" yaml:"generators"`
	Links        []Link             `json:"links" yaml:"links"`
	Stores       []Store            `json:"stores" yaml:"stores"`
	StorageUnits []StorageUnit      `json:"storage_units" yaml:"storage_units"`
	Carriers     map[string]Carrier `json:"carriers" yaml:"carriers"`
}

// NiceName returns the display name of carrier or "" if the network does not
// define one.
func (n *NetworkResult) NiceName(carrier string) string {
	if n == nil || n.Carriers == nil {
		return ""
	}
	return n.Carriers[carrier].NiceName
}

// Loader resolves solved networks. A missing network is reported as
// (nil, nil) or as an error wrapping ErrNotFound.
type Loader interface {
	Load(ctx context.Context, key NetworkKey) (*NetworkResult, error)
}
