package model

// YearValue is one point of the global-by-year series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ContinentYearValue is one point of the continent-by-year series.
type ContinentYearValue struct {
	Year      int       `json:"year"`
	Continent Continent `json:"continent"`
	Value     float64   `json:"value"`
}

// CountryValue is a country total for a single year.
type CountryValue struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// SectorValue is a sector total for a single year.
type SectorValue struct {
	Sector string  `json:"sector"`
	Value  float64 `json:"value"`
}
