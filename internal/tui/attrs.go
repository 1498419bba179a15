package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded features
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := min(len(c)+2, maxColW)
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	if m.selected >= 0 && m.selected < len(trows) {
		m.tbl.SetCursor(m.selected)
	}
}

// buildAttributes unions property keys across features. The id column comes
// first, joined stats columns follow the feature's own properties.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if len(m.data.Features) == 0 {
		return nil, nil
	}
	seen := map[string]bool{"id": true}
	var keys []string
	for _, f := range m.data.Features {
		for k := range f.Props {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	joined := len(m.stats) > 0
	cols := append([]string{"id"}, keys...)
	if joined {
		cols = append(cols, "stats")
	}
	rows := make([][]string, 0, len(m.data.Features))
	for _, f := range m.data.Features {
		vals := make([]string, 0, len(cols))
		vals = append(vals, f.ID)
		for _, k := range keys {
			vals = append(vals, formatValue(f.Props[k]))
		}
		if joined {
			if s, ok := m.stats[f.ID]; ok {
				vals = append(vals, s.String())
			} else {
				vals = append(vals, "")
			}
		}
		rows = append(rows, vals)
	}
	return cols, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
