// Package domain models Kenyan agricultural market price records and the
// filter and geo-join steps that turn the raw price table into a result set
// the dashboard can display and map.
//
// # Data Source
//
// Rows come from a single relational table (by default public.data) with one
// row per market observation. The table was populated from a spreadsheet
// export, so column casing is inconsistent ("Commodity" next to "county");
// columns are matched case-insensitively by [MapColumns].
//
// # Data Conventions
//
// County:
//
//	Free text naming one of Kenya's 47 counties, e.g. " Nairobi City ".
//	Normalized once at load time to lower case with surrounding whitespace
//	removed ("nairobi city"). The normalized name is the join key for the
//	county centroid table.
//
// Month:
//
//	A month name as entered ("June", "june"). Stored as-is; matching folds
//	case by default.
//
// Kg and Price:
//
//	Kg is the weight descriptor of the unit (e.g. 90 for a 90 kg bag).
//	Price is in Kenyan shillings and is shown as "Ksh <price>".
//
// # Filtering
//
// A [Criteria] is a conjunction of optional equality constraints. Each field
// is either match-all (displayed as "All") or a single value. Match-all
// never excludes a record, so criteria that are match-all everywhere return
// the input unchanged.
//
// # Geo Join
//
// [Join] attaches a centroid to each row. Rows whose county is not in the
// table stay in the result (they still appear in the price table) but are
// excluded by [Mappable].
package domain
