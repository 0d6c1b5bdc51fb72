package domain

import (
	"sort"
	"strings"
)

// Apply returns the records that satisfy every constrained field of c, in
// input order. Criteria that are match-all everywhere return records as-is.
func Apply(records []PriceRecord, c Criteria, opts MatchOptions) []PriceRecord {
	if c.IsAll() {
		return records
	}

	out := make([]PriceRecord, 0, len(records))
	for _, r := range records {
		if matches(r, c, opts) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r PriceRecord, c Criteria, opts MatchOptions) bool {
	if v, ok := c.Commodity.Value(); ok && !equalText(r.Commodity, v, opts.CommodityFoldCase) {
		return false
	}
	if v, ok := c.Year.Value(); ok && r.Year != v {
		return false
	}
	if v, ok := c.Month.Value(); ok && !equalText(r.Month, v, opts.MonthFoldCase) {
		return false
	}
	return true
}

func equalText(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Options lists the distinct values of each filterable field, sorted
// ascending. The match-all sentinel is not included.
type Options struct {
	Commodities []string `json:"commodities"`
	Years       []int    `json:"years"`
	Months      []string `json:"months"`
}

// DistinctOptions collects the selectable values present in records.
// Empty text and zero years are treated as missing and skipped.
func DistinctOptions(records []PriceRecord) Options {
	commodities := make(map[string]struct{})
	years := make(map[int]struct{})
	months := make(map[string]struct{})

	for _, r := range records {
		if r.Commodity != "" {
			commodities[r.Commodity] = struct{}{}
		}
		if r.Year != 0 {
			years[r.Year] = struct{}{}
		}
		if r.Month != "" {
			months[r.Month] = struct{}{}
		}
	}

	opts := Options{
		Commodities: sortedKeys(commodities),
		Months:      sortedKeys(months),
		Years:       make([]int, 0, len(years)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
