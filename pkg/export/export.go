// Package export serialises report tables as CSV, Markdown and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/infrasavings/core/report"
)

// HorizonHeader labels the first column header level.
const HorizonHeader = "horizon"

// FormatValue renders a cell the way the study tables print floats:
// shortest representation with at least one decimal.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func cell(t *report.Table, row string, col report.Column) string {
	v, ok := t.Get(row, col)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// WriteCSV writes t with a two-level column header: the first header row
// carries the horizons, the second the categories. Unset cells are empty.
func WriteCSV(w io.Writer, t *report.Table) error {
	cw := csv.NewWriter(w)
	horizons := []string{HorizonHeader}
	categories := []string{t.Measure}
	for _, c := range t.Columns {
		horizons = append(horizons, c.Horizon)
		categories = append(categories, c.Category.String())
	}
	if err := cw.Write(horizons); err != nil {
		return err
	}
	if err := cw.Write(categories); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, 0, len(t.Columns)+1)
		rec = append(rec, row)
		for _, c := range t.Columns {
			rec = append(rec, cell(t, row, c))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Cell is the JSON form of one set table cell.
type Cell struct {
	Table    string  `json:"table"`
	Scenario string  `json:"scenario"`
	Horizon  string  `json:"horizon"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Document is the JSON export of a report run.
type Document struct {
	RunID   string        `json:"run_id,omitempty"`
	Cells   []Cell        `json:"cells"`
	Skipped []report.Skip `json:"skipped"`
}

// WriteJSON writes every set cell of res in table, row, column order.
func WriteJSON(w io.Writer, res *report.Result) error {
	doc := Document{RunID: res.RunID, Cells: []Cell{}, Skipped: res.Skipped}
	if doc.Skipped == nil {
		doc.Skipped = []report.Skip{}
	}
	for _, t := range res.Tables.All() {
		for _, row := range t.Rows {
			for _, c := range t.Columns {
				v, ok := t.Get(row, c)
				if !ok {
					continue
				}
				doc.Cells = append(doc.Cells, Cell{
					Table:    t.Name,
					Scenario: row,
					Horizon:  c.Horizon,
					Category: c.Category.String(),
					Value:    v,
				})
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
