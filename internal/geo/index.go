// Package geo holds the compiled-in county centroid table used to place
// price markers on the map.
package geo

import (
	"sort"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// earthRadiusKm is the mean Earth radius used to convert s2 angles to km.
const earthRadiusKm = 6371.0088

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// County is a named centroid in the index.
type County struct {
	Name  string     `json:"name"`
	Coord Coordinate `json:"coord"`
}

// Index is a read-only lookup from normalized county name to centroid.
// The zero value is empty; use Default for the Kenyan county table.
type Index struct {
	byName   map[string]Coordinate
	counties []County
	points   []s2.Point
}

// NormalizeName lower-cases and trims a county name. It is idempotent and is
// the single normalization shared by the loader and the geo join.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds an Index from the given counties. Names are normalized; later
// duplicates overwrite earlier ones.
func New(counties []County) *Index {
	idx := &Index{byName: make(map[string]Coordinate, len(counties))}
	for _, c := range counties {
		idx.byName[NormalizeName(c.Name)] = c.Coord
	}

	idx.counties = make([]County, 0, len(idx.byName))
	for name, coord := range idx.byName {
		idx.counties = append(idx.counties, County{Name: name, Coord: coord})
	}
	sort.Slice(idx.counties, func(i, j int) bool { return idx.counties[i].Name < idx.counties[j].Name })

	idx.points = make([]s2.Point, len(idx.counties))
	for i, c := range idx.counties {
		idx.points[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(c.Coord.Lat, c.Coord.Lon))
	}
	return idx
}

var defaultIndex = New(kenyaCounties[:])

// Default returns the shared index of the 47 Kenyan counties.
func Default() *Index { return defaultIndex }

// Lookup returns the centroid for a county. A miss is an expected state
// meaning the county has no known coordinates.
func (i *Index) Lookup(name string) (Coordinate, bool) {
	c, ok := i.byName[NormalizeName(name)]
	return c, ok
}

// Len reports the number of counties in the index.
func (i *Index) Len() int { return len(i.counties) }

// Counties returns the counties sorted by name. The slice is a copy.
func (i *Index) Counties() []County {
	out := make([]County, len(i.counties))
	copy(out, i.counties)
	return out
}

// Nearest returns the county whose centroid is closest to the given point
// and the great-circle distance to it in kilometres. ok is false when the
// index is empty.
func (i *Index) Nearest(lat, lon float64) (County, float64, bool) {
	if len(i.points) == 0 {
		return County{}, 0, false
	}
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))

	best := 0
	bestAngle := s1.InfAngle()
	for n, pt := range i.points {
		if a := p.Distance(pt); a < bestAngle {
			best, bestAngle = n, a
		}
	}
	return i.counties[best], bestAngle.Radians() * earthRadiusKm, true
}
