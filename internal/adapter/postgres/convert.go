package postgres

import (
	"fmt"
	"math"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

// recordFromValues converts one row of decoded column values. The table is
// loosely typed, so numeric columns may arrive as text, integers, floats or
// numerics.
func recordFromValues(values []any, idx domain.ColumnIndex) (domain.PriceRecord, error) {
	kg, err := toFloat(values[idx[domain.ColKg]])
	if err != nil {
		return domain.PriceRecord{}, fmt.Errorf("%w: column kg: %w", domain.ErrSchema, err)
	}
	price, err := toFloat(values[idx[domain.ColPrice]])
	if err != nil {
		return domain.PriceRecord{}, fmt.Errorf("%w: column price: %w", domain.ErrSchema, err)
	}
	year, err := toInt(values[idx[domain.ColYear]])
	if err != nil {
		return domain.PriceRecord{}, fmt.Errorf("%w: column year: %w", domain.ErrSchema, err)
	}

	return domain.PriceRecord{
		County:    toText(values[idx[domain.ColCounty]]),
		Market:    toText(values[idx[domain.ColMarket]]),
		Commodity: toText(values[idx[domain.ColCommodity]]),
		Unit:      toText(values[idx[domain.ColUnit]]),
		Kg:        kg,
		Price:     price,
		Year:      year,
		Month:     toText(values[idx[domain.ColMonth]]),
	}, nil
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int:
		return float64(t), nil
	case pgtype.Numeric:
		if !t.Valid {
			return 0, nil
		}
		f, err := t.Float64Value()
		if err != nil {
			return 0, err
		}
		return f.Float64, nil
	case string:
		return domain.ParseNumber(t)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int64:
		return int(t), nil
	case int32:
		return int(t), nil
	case int16:
		return int(t), nil
	case int:
		return t, nil
	case string:
		return domain.ParseYear(t)
	}

	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	return int(f), nil
}
