package report

import (
	"fmt"

	"github.com/kilianp07/infrasavings/core/model"
)

// Column is one (planning horizon, category) pair of a table.
type Column struct {
	Horizon  string
	Category model.Category
}

// Table holds one value per scenario row and (horizon, category) column.
// Cells that were never set stay unset and are not treated as zero.
type Table struct {
	// Name is a short identifier such as "capacity".
	Name string
	// Measure labels the category header level, e.g. "Installed capacity [GW]".
	Measure string
	Rows    []string
	Columns []Column
	cells   map[string]map[Column]float64
}

// NewTable creates an empty table with one row per scenario and one column
// per horizon and category.
func NewTable(name, measure string, rows, horizons []string) *Table {
	cols := make([]Column, 0, len(horizons)*len(model.Categories))
	for _, h := range horizons {
		for _, c := range model.Categories {
			cols = append(cols, Column{Horizon: h, Category: c})
		}
	}
	t := &Table{
		Name:    name,
		Measure: measure,
		Rows:    append([]string(nil), rows...),
		Columns: cols,
		cells:   make(map[string]map[Column]float64, len(rows)),
	}
	for _, r := range rows {
		t.cells[r] = map[Column]float64{}
	}
	return t
}

// Set stores a value. Unknown rows or columns are rejected so the table
// shape never changes after construction.
func (t *Table) Set(row string, col Column, v float64) error {
	cells, ok := t.cells[row]
	if !ok {
		return fmt.Errorf("table %s: unknown row %q", t.Name, row)
	}
	if !t.hasColumn(col) {
		return fmt.Errorf("table %s: unknown column (%s, %s)", t.Name, col.Horizon, col.Category)
	}
	cells[col] = v
	return nil
}

// Get returns the cell value and whether it is set.
func (t *Table) Get(row string, col Column) (float64, bool) {
	v, ok := t.cells[row][col]
	return v, ok
}

// Relabel renames a row in place. It is a no-op when from is not a row.
func (t *Table) Relabel(from, to string) {
	cells, ok := t.cells[from]
	if !ok || from == to {
		return
	}
	for i, r := range t.Rows {
		if r == from {
			t.Rows[i] = to
		}
	}
	delete(t.cells, from)
	t.cells[to] = cells
}

// SetCount returns the number of set cells.
func (t *Table) SetCount() int {
	n := 0
	for _, c := range t.cells {
		n += len(c)
	}
	return n
}

func (t *Table) hasColumn(col Column) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Tables groups the three report tables.
type Tables struct {
	Capacity *Table
	Cost     *Table
	Land     *Table
}

// All returns the tables in output order.
func (ts Tables) All() []*Table {
	return []*Table{ts.Capacity, ts.Cost, ts.Land}
}

// Relabel applies the row rename to every table.
func (ts Tables) Relabel(from, to string) {
	for _, t := range ts.All() {
		t.Relabel(from, to)
	}
}
