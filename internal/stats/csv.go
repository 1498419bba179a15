package stats

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV reads a statistics table keyed by its id column.
// Column detection is case-insensitive: id, population, population_share, range.
// Any other column is kept in Extra as a string.
func LoadCSV(path string) (map[string]StatsData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open stats csv")
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read stats csv")
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxID := -1
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == "id" {
			idxID = i
			break
		}
	}
	if idxID == -1 {
		return nil, errors.New("csv: id column not found")
	}
	out := make(map[string]StatsData, len(recs)-1)
	for n, row := range recs[1:] {
		if idxID >= len(row) || strings.TrimSpace(row[idxID]) == "" {
			continue
		}
		s := StatsData{ID: strings.TrimSpace(row[idxID])}
		for i, h := range header {
			if i == idxID || i >= len(row) {
				continue
			}
			val := strings.TrimSpace(row[i])
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "population":
				s.Population, err = parseNum(val)
			case "population_share":
				s.PopulationShare, err = parseNum(val)
			case "range":
				if val == "" {
					continue
				}
				var f float64
				if f, err = parseNum(val); err == nil {
					s.Range = &f
				}
			default:
				if s.Extra == nil {
					s.Extra = map[string]any{}
				}
				s.Extra[h] = val
			}
			if err != nil {
				return nil, errors.Wrapf(err, "csv row %d column %q", n+2, h)
			}
		}
		out[s.ID] = s
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid rows parsed")
	}
	return out, nil
}

func parseNum(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
