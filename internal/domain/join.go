package domain

import (
	"sort"

	"github.com/couchcryptid/market-prices-dashboard/internal/geo"
)

// Locator resolves a county name to a centroid. *geo.Index implements it.
type Locator interface {
	Lookup(county string) (geo.Coordinate, bool)
}

// ResultRow is a price record with its county centroid, when known.
type ResultRow struct {
	PriceRecord
	Coord *geo.Coordinate `json:"coord,omitempty"`
}

// HasCoord reports whether the row can be placed on the map.
func (r ResultRow) HasCoord() bool { return r.Coord != nil }

// Join attaches a centroid to each record. Output length always equals
// input length; unknown counties yield rows without coordinates.
func Join(records []PriceRecord, loc Locator) []ResultRow {
	rows := make([]ResultRow, len(records))
	for i, r := range records {
		rows[i] = ResultRow{PriceRecord: r}
		if c, ok := loc.Lookup(NormalizeCounty(r.County)); ok {
			rows[i].Coord = &c
		}
	}
	return rows
}

// Mappable returns the rows that have coordinates, in order.
func Mappable(rows []ResultRow) []ResultRow {
	out := make([]ResultRow, 0, len(rows))
	for _, r := range rows {
		if r.HasCoord() {
			out = append(out, r)
		}
	}
	return out
}

// SortByPriceDesc returns a copy of records ordered by price, highest
// first. Ties keep their input order.
func SortByPriceDesc(records []PriceRecord) []PriceRecord {
	out := make([]PriceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}
