// Package costs attributes expenditure of a solved network to its components
// and carriers.
//
// Rows of the resulting Table are keyed "{Component}:{carrier nice name}",
// e.g. "Generator:Onshore Wind" or "Store:gas".
package costs

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/infrasavings/core/model"
)

// Selector picks the kind of expenditure.
type Selector string

const (
	Capital     Selector = "Capital"
	Operational Selector = "Operational"
)

// ParseSelector validates a selector name.
func ParseSelector(s string) (Selector, error) {
	switch Selector(s) {
	case Capital, Operational:
		return Selector(s), nil
	default:
		return "", fmt.Errorf("unknown cost selector %q", s)
	}
}

// defaultNiceNames mirrors the display names used in the study plots for
// carriers whose network does not carry a nice name.
var defaultNiceNames = map[string]string{
	model.CarrierOnwind:    "Onshore Wind",
	model.CarrierOffwindAC: "Offshore Wind (AC)",
	model.CarrierOffwindDC: "Offshore Wind (DC)",
	model.CarrierSolar:     "Solar",
	model.CarrierOCGT:      "Open-Cycle Gas",
	model.CarrierCCGT:      "Combined-Cycle Gas",
	"ror":                  "Run of River",
	"hydro":                "Reservoir & Dam",
	"PHS":                  "Pumped Hydro Storage",
	"H2":                   "Hydrogen Storage",
	"battery":              "Battery Storage",
}

// NiceName returns the display name for carrier in n.
func NiceName(n *model.NetworkResult, carrier string) string {
	if nn := n.NiceName(carrier); nn != "" {
		return nn
	}
	if nn, ok := defaultNiceNames[carrier]; ok {
		return nn
	}
	return carrier
}

// Table maps "{Component}:{carrier}" rows to a cost in EUR.
type Table struct {
	Label string
	Rows  map[string]float64
}

// Sum adds up the given rows. Rows absent from the table count as zero.
func (t Table) Sum(keys ...string) float64 {
	vals := make([]float64, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, t.Rows[k])
	}
	return floats.Sum(vals)
}

// Total returns the sum over all rows.
func (t Table) Total() float64 {
	vals := make([]float64, 0, len(t.Rows))
	for _, v := range t.Rows {
		vals = append(vals, v)
	}
	return floats.Sum(vals)
}

// Keys returns the row keys in lexical order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.Rows))
	for k := range t.Rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Compute returns the expenditure of n grouped by component and carrier.
func Compute(n *model.NetworkResult, label string, sel Selector) (Table, error) {
	if n == nil {
		return Table{}, fmt.Errorf("compute costs for %s: nil network", label)
	}
	if _, err := ParseSelector(string(sel)); err != nil {
		return Table{}, err
	}
	t := Table{Label: label, Rows: map[string]float64{}}
	add := func(component, carrier string, capital, operational float64) {
		key := component + ":" + NiceName(n, carrier)
		if sel == Capital {
			t.Rows[key] += capital
		} else {
			t.Rows[key] += operational
		}
	}
	for _, g := range n.Generators {
		add(model.ComponentGenerator, g.Carrier, g.CapitalCost*g.PNomOpt, g.MarginalCost*g.Energy)
	}
	for _, l := range n.Links {
		add(model.ComponentLink, l.Carrier, l.CapitalCost*l.PNomOpt, l.MarginalCost*l.Energy)
	}
	for _, s := range n.Stores {
		add(model.ComponentStore, s.Carrier, s.CapitalCost*s.ENomOpt, s.MarginalCost*s.Energy)
	}
	for _, su := range n.StorageUnits {
		add(model.ComponentStorageUnit, su.Carrier, su.CapitalCost*su.PNomOpt, su.MarginalCost*su.Energy)
	}
	return t, nil
}
