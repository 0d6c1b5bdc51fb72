// Package dashboard turns the loaded price table and a user's selection into
// the table rows and map markers the page renders.
package dashboard

import (
	"strconv"
	"strings"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/couchcryptid/market-prices-dashboard/internal/geo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Notices shown in place of the table or map.
const (
	NoticeNoData    = "No data found for this selection."
	NoticeMapHidden = "Map is hidden when 'All' commodities are selected to avoid clutter."
	NoticeNoMarkers = "None of the matching counties have known map coordinates."
)

// MapCenter is the national centroid the map opens on.
var MapCenter = geo.Coordinate{Lat: 0.1768, Lon: 37.9083}

// MapZoom fits the whole country.
const MapZoom = 6

// TableRow is one line of the price table.
type TableRow struct {
	County    string  `json:"county"`
	Market    string  `json:"market"`
	Commodity string  `json:"commodity"`
	Unit      string  `json:"unit"`
	Kg        float64 `json:"kg"`
	Price     float64 `json:"price"`
}

// Marker is one map pin.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
	Popup string  `json:"popup"`
}

// Selection echoes the criteria as display labels.
type Selection struct {
	Commodity string `json:"commodity"`
	Year      string `json:"year"`
	Month     string `json:"month"`
}

// View is everything one render needs.
type View struct {
	Selection Selection      `json:"selection"`
	Heading   string         `json:"heading"`
	Rows      []TableRow     `json:"rows"`
	Markers   []Marker       `json:"markers"`
	ShowMap   bool           `json:"show_map"`
	Notice    string         `json:"notice,omitempty"`
	MapCenter geo.Coordinate `json:"map_center"`
	MapZoom   int            `json:"map_zoom"`
	Unmapped  int            `json:"unmapped"`
}

// Empty reports whether the selection matched nothing.
func (v View) Empty() bool { return len(v.Rows) == 0 }

// Build filters records, sorts the table by price descending, and places
// markers for rows with known counties. The map is only shown for a single
// commodity, since several commodities at one county would stack markers.
func Build(records []domain.PriceRecord, c domain.Criteria, loc domain.Locator, match domain.MatchOptions) View {
	v := View{
		Selection: Selection{
			Commodity: c.Commodity.Label(),
			Year:      c.Year.Label(),
			Month:     c.Month.Label(),
		},
		Heading:   Heading(c),
		Rows:      []TableRow{},
		Markers:   []Marker{},
		MapCenter: MapCenter,
		MapZoom:   MapZoom,
	}

	filtered := domain.Apply(records, c, match)
	if len(filtered) == 0 {
		v.Notice = NoticeNoData
		return v
	}

	for _, r := range domain.SortByPriceDesc(filtered) {
		v.Rows = append(v.Rows, TableRow{
			County:    r.County,
			Market:    r.Market,
			Commodity: r.Commodity,
			Unit:      r.Unit,
			Kg:        r.Kg,
			Price:     r.Price,
		})
	}

	rows := domain.Join(filtered, loc)
	mappable := domain.Mappable(rows)
	v.Unmapped = len(rows) - len(mappable)

	title := cases.Title(language.English)
	for _, r := range mappable {
		v.Markers = append(v.Markers, Marker{
			Lat:   r.Coord.Lat,
			Lon:   r.Coord.Lon,
			Label: title.String(r.County),
			Popup: FormatPrice(r.Price),
		})
	}

	switch {
	case c.Commodity.IsAll():
		v.Notice = NoticeMapHidden
	case len(v.Markers) == 0:
		v.Notice = NoticeNoMarkers
	default:
		v.ShowMap = true
	}
	return v
}

// Heading returns the title suffix naming the selected commodity, month
// and year, e.g. " - Maize June 2023". It is empty when nothing is selected.
func Heading(c domain.Criteria) string {
	var parts []string
	if v, ok := c.Commodity.Value(); ok {
		parts = append(parts, v)
	}
	if v, ok := c.Month.Value(); ok {
		parts = append(parts, v)
	}
	if v, ok := c.Year.Value(); ok {
		parts = append(parts, strconv.Itoa(v))
	}
	if len(parts) == 0 {
		return ""
	}
	return " - " + strings.Join(parts, " ")
}

// FormatPrice renders a shilling amount for a marker popup.
func FormatPrice(price float64) string {
	return "Ksh " + strconv.FormatFloat(price, 'f', -1, 64)
}

// OptionLists are the selectable values for each control, each led by the
// match-all entry.
type OptionLists struct {
	Commodities []string `json:"commodities"`
	Years       []string `json:"years"`
	Months      []string `json:"months"`
}

// NewOptionLists prefixes each distinct-value list with "All".
func NewOptionLists(o domain.Options) OptionLists {
	years := make([]string, 0, len(o.Years)+1)
	years = append(years, domain.MatchAllLabel)
	for _, y := range o.Years {
		years = append(years, strconv.Itoa(y))
	}
	return OptionLists{
		Commodities: append([]string{domain.MatchAllLabel}, o.Commodities...),
		Years:       years,
		Months:      append([]string{domain.MatchAllLabel}, o.Months...),
	}
}
