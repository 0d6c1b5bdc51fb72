package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRecord builds a record from a row of text fields, such as a CSV line.
// Empty numeric fields parse as zero; malformed price or year is ErrSchema.
func ParseRecord(fields []string, idx ColumnIndex) (PriceRecord, error) {
	get := func(col string) string {
		pos := idx[col]
		if pos >= len(fields) {
			return ""
		}
		return fields[pos]
	}

	price, err := ParseNumber(get(ColPrice))
	if err != nil {
		return PriceRecord{}, fmt.Errorf("%w: price: %w", ErrSchema, err)
	}
	year, err := ParseYear(get(ColYear))
	if err != nil {
		return PriceRecord{}, fmt.Errorf("%w: year: %w", ErrSchema, err)
	}
	kg, _ := ParseNumber(get(ColKg))

	return PriceRecord{
		County:    get(ColCounty),
		Market:    get(ColMarket),
		Commodity: get(ColCommodity),
		Unit:      get(ColUnit),
		Kg:        kg,
		Price:     price,
		Year:      year,
		Month:     get(ColMonth),
	}, nil
}

// ParseNumber parses a decimal, tolerating surrounding whitespace and
// thousands separators. An empty string is zero.
func ParseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseYear parses an integer year. Spreadsheet exports often write whole
// numbers as "2023.0", which is accepted.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("year %q is not a whole number", s)
	}
	return int(f), nil
}
