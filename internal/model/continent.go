package model

// Continent is the label a country or region name classifies to.
type Continent string

const (
	Africa       Continent = "Africa"
	Asia         Continent = "Asia"
	Europe       Continent = "Europe"
	NorthAmerica Continent = "North America"
	SouthAmerica Continent = "South America"
	Oceania      Continent = "Oceania"
	Other        Continent = "Other"
)

// Continents returns the six real continents in chart order.
func Continents() []Continent {
	return []Continent{Africa, Asia, Europe, NorthAmerica, SouthAmerica, Oceania}
}

// AllContinents returns every label, Other last.
func AllContinents() []Continent {
	return append(Continents(), Other)
}

// ParseContinent converts a label into a Continent.
func ParseContinent(s string) (Continent, bool) {
	for _, c := range AllContinents() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Sector is a non-aggregate emission source.
type Sector struct {
	Name   string
	Column string
}

// Sectors returns the six sectors in report order.
func Sectors() []Sector {
	return []Sector{
		{Name: "Coal", Column: ColCoalCO2},
		{Name: "Oil", Column: ColOilCO2},
		{Name: "Gas", Column: ColGasCO2},
		{Name: "Cement", Column: ColCementCO2},
		{Name: "Flaring", Column: ColFlaringCO2},
		{Name: "Other Industry", Column: ColOtherIndustryCO2},
	}
}
