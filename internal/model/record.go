// Package model holds the emission record, table, and aggregate types shared by the pipeline.
package model

// Column names of the cleaned emissions table.
const (
	ColCountry          = "country"
	ColYear             = "year"
	ColCO2              = "co2"
	ColCoalCO2          = "coal_co2"
	ColOilCO2           = "oil_co2"
	ColGasCO2           = "gas_co2"
	ColCementCO2        = "cement_co2"
	ColFlaringCO2       = "flaring_co2"
	ColOtherIndustryCO2 = "other_industry_co2"
	ColConsumptionCO2   = "consumption_co2"
)

// DefaultCountry replaces a missing country name during cleaning.
const DefaultCountry = "Unknown"

// NumericColumns lists the emission columns in the order they are stored in Row.Values.
var NumericColumns = [NumValues]string{
	ColCO2,
	ColCoalCO2,
	ColOilCO2,
	ColGasCO2,
	ColCementCO2,
	ColFlaringCO2,
	ColOtherIndustryCO2,
	ColConsumptionCO2,
}

// NumValues is the number of numeric emission columns.
const NumValues = 8

// RequiredColumns returns the ten cleaned-table columns in canonical order.
func RequiredColumns() []string {
	cols := make([]string, 0, NumValues+2)
	cols = append(cols, ColCountry, ColYear)
	cols = append(cols, NumericColumns[:]...)
	return cols
}

// NumericIndex returns the Row.Values index of a numeric column, or -1.
func NumericIndex(col string) int {
	for i, c := range NumericColumns {
		if c == col {
			return i
		}
	}
	return -1
}

// NullString is a string cell that may be missing.
type NullString struct {
	String string
	Valid  bool
}

// NullInt is an integer cell that may be missing.
type NullInt struct {
	Int   int
	Valid bool
}

// NullFloat is a real-valued cell that may be missing.
type NullFloat struct {
	Float float64
	Valid bool
}

// Str returns a valid NullString.
func Str(s string) NullString { return NullString{String: s, Valid: true} }

// Int returns a valid NullInt.
func Int(v int) NullInt { return NullInt{Int: v, Valid: true} }

// Float returns a valid NullFloat.
func Float(v float64) NullFloat { return NullFloat{Float: v, Valid: true} }

// Row is one emission record. Row is comparable: two rows are duplicates iff ==.
type Row struct {
	Country NullString
	Year    NullInt
	Values  [NumValues]NullFloat
}

// CO2 returns the total co2 value, treating a missing cell as zero.
func (r Row) CO2() float64 {
	return r.Values[0].Float
}

// Value returns the numeric cell for col, treating a missing cell or unknown column as zero.
func (r Row) Value(col string) float64 {
	i := NumericIndex(col)
	if i < 0 {
		return 0
	}
	return r.Values[i].Float
}
