package export

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/kilianp07/infrasavings/core/report"
)

// WriteMarkdown renders all tables of res into one Markdown document. The
// two header levels are folded into "horizon category" column titles.
func WriteMarkdown(w io.Writer, title string, res *report.Result) error {
	md := markdown.NewMarkdown(w)
	md.H1(title)
	if res.RunID != "" {
		md.PlainTextf("Run `%s`", res.RunID)
	}
	for _, t := range res.Tables.All() {
		md.H2(t.Measure)
		header := []string{"Scenario"}
		for _, c := range t.Columns {
			header = append(header, fmt.Sprintf("%s %s", c.Horizon, c.Category))
		}
		rows := make([][]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			rec := []string{row}
			for _, c := range t.Columns {
				rec = append(rec, cell(t, row, c))
			}
			rows = append(rows, rec)
		}
		md.Table(markdown.TableSet{Header: header, Rows: rows})
	}
	if len(res.Skipped) > 0 {
		md.H2("Skipped networks")
		items := make([]string, 0, len(res.Skipped))
		for _, s := range res.Skipped {
			items = append(items, fmt.Sprintf("%s (%s)", s.Scenario, s.Horizon))
		}
		md.BulletList(items...)
	}
	return md.Build()
}
