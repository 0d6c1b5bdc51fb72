package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MatchAllLabel is the display value of the match-all sentinel.
const MatchAllLabel = "All"

// Selection is a filter field that is either match-all or a single value.
// The zero value is match-all.
type Selection[T comparable] struct {
	value T
	set   bool
}

// All returns the match-all selection.
func All[T comparable]() Selection[T] { return Selection[T]{} }

// Only returns a selection constrained to v.
func Only[T comparable](v T) Selection[T] { return Selection[T]{value: v, set: true} }

// IsAll reports whether the selection matches every value.
func (s Selection[T]) IsAll() bool { return !s.set }

// Value returns the selected value and false for match-all.
func (s Selection[T]) Value() (T, bool) { return s.value, s.set }

// Label returns the display string: the value, or "All".
func (s Selection[T]) Label() string {
	if !s.set {
		return MatchAllLabel
	}
	return fmt.Sprint(s.value)
}

// Criteria is a conjunction of optional equality constraints.
type Criteria struct {
	Commodity Selection[string]
	Year      Selection[int]
	Month     Selection[string]
}

// IsAll reports whether no field constrains the result.
func (c Criteria) IsAll() bool {
	return c.Commodity.IsAll() && c.Year.IsAll() && c.Month.IsAll()
}

// MatchOptions controls case folding per text field. Year is always an
// integer comparison.
type MatchOptions struct {
	CommodityFoldCase bool
	MonthFoldCase     bool
}

// DefaultMatchOptions compares commodity exactly and folds month case.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{MonthFoldCase: true}
}

// ParseCriteria builds criteria from raw request values. An empty value or
// "All" (any case) is match-all.
func ParseCriteria(commodity, year, month string) (Criteria, error) {
	c := Criteria{
		Commodity: parseText(commodity),
		Month:     parseText(month),
	}

	year = strings.TrimSpace(year)
	if isMatchAll(year) {
		return c, nil
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Criteria{}, fmt.Errorf("%w: year %q is not an integer", ErrInvalidCriteria, year)
	}
	c.Year = Only(y)
	return c, nil
}

func parseText(v string) Selection[string] {
	v = strings.TrimSpace(v)
	if isMatchAll(v) {
		return All[string]()
	}
	return Only(v)
}

func isMatchAll(v string) bool {
	return v == "" || strings.EqualFold(v, MatchAllLabel)
}
