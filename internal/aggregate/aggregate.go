// Package aggregate derives the four report views from the cleaned emissions table.
package aggregate

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/emissions-cli/internal/model"
)

// DefaultTopN is the number of countries in the top-emitters view.
const DefaultTopN = 10

// Classifier maps a country or region name to a continent.
type Classifier interface {
	Classify(name string) model.Continent
}

// Names normalizes country names and decides which of them are sovereign states.
type Names interface {
	Normalize(name string) string
	IsSovereign(name string) bool
}

// Options configures Aggregate.
type Options struct {
	Classifier Classifier
	Names      Names
	TopN       int
}

// Result holds the four aggregate views of a cleaned table.
type Result struct {
	Global     []model.YearValue          `json:"global"`
	Continents []model.ContinentYearValue `json:"continents"`
	TopN       int                        `json:"top_n"`
	TopYear    int                        `json:"top_year"`
	Top        []model.CountryValue       `json:"top"`
	SectorYear int                        `json:"sector_year"`
	Sectors    []model.SectorValue        `json:"sectors"`
}

// Aggregate computes every view of t. It returns model.ErrEmptyDataset when t
// has no rows or no sovereign country rows.
func Aggregate(t *model.Table, opts Options) (*Result, error) {
	if opts.Classifier == nil || opts.Names == nil {
		return nil, eris.New("aggregate: classifier and names are required")
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if len(t.Rows) == 0 {
		return nil, eris.Wrap(model.ErrEmptyDataset, "aggregate: cleaned table has no rows")
	}

	topYear, top, err := TopCountries(t, opts.Names, opts.TopN)
	if err != nil {
		return nil, err
	}
	sectorYear, sectors, err := SectorTotals(t)
	if err != nil {
		return nil, err
	}
	return &Result{
		Global:     GlobalByYear(t),
		Continents: ContinentByYear(t, opts.Classifier),
		TopN:       opts.TopN,
		TopYear:    topYear,
		Top:        top,
		SectorYear: sectorYear,
		Sectors:    sectors,
	}, nil
}

// GlobalByYear sums co2 over every row of each year, ordered by year.
func GlobalByYear(t *model.Table) []model.YearValue {
	sums := make(map[int]float64)
	for _, r := range t.Rows {
		sums[r.Year.Int] += r.CO2()
	}
	out := make([]model.YearValue, 0, len(sums))
	for y, v := range sums {
		out = append(out, model.YearValue{Year: y, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

type yearCountry struct {
	year    int
	country string
}

type yearContinent struct {
	year      int
	continent model.Continent
}

// ContinentByYear sums co2 per (year, country), classifies each country, then
// sums per (year, continent). Other is kept. Ordered by year, then continent
// in model.AllContinents order.
func ContinentByYear(t *model.Table, c Classifier) []model.ContinentYearValue {
	// Keys are summed in first-seen row order so float totals do not depend on map order.
	var keys []yearCountry
	byCountry := make(map[yearCountry]float64)
	for _, r := range t.Rows {
		k := yearCountry{r.Year.Int, r.Country.String}
		if _, ok := byCountry[k]; !ok {
			keys = append(keys, k)
		}
		byCountry[k] += r.CO2()
	}

	labels := make(map[string]model.Continent)
	sums := make(map[yearContinent]float64)
	for _, k := range keys {
		cont, ok := labels[k.country]
		if !ok {
			cont = c.Classify(k.country)
			labels[k.country] = cont
		}
		sums[yearContinent{k.year, cont}] += byCountry[k]
	}

	rank := make(map[model.Continent]int)
	for i, cont := range model.AllContinents() {
		rank[cont] = i
	}
	out := make([]model.ContinentYearValue, 0, len(sums))
	for k, v := range sums {
		out = append(out, model.ContinentYearValue{Year: k.year, Continent: k.continent, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return rank[out[i].Continent] < rank[out[j].Continent]
	})
	return out
}

// TopCountries returns the latest year among sovereign rows and the n largest
// sovereign emitters of that year, by co2 descending then name ascending.
// Names are normalized before the sovereign check and the grouping.
func TopCountries(t *model.Table, names Names, n int) (int, []model.CountryValue, error) {
	type entry struct {
		name string
		row  model.Row
	}
	var subset []entry
	for _, r := range t.Rows {
		name := names.Normalize(r.Country.String)
		if names.IsSovereign(name) {
			subset = append(subset, entry{name, r})
		}
	}
	if len(subset) == 0 {
		return 0, nil, eris.Wrap(model.ErrEmptyDataset, "aggregate: no sovereign country rows")
	}

	latest := subset[0].row.Year.Int
	for _, e := range subset[1:] {
		if e.row.Year.Int > latest {
			latest = e.row.Year.Int
		}
	}

	sums := make(map[string]float64)
	for _, e := range subset {
		if e.row.Year.Int == latest {
			sums[e.name] += e.row.CO2()
		}
	}
	out := make([]model.CountryValue, 0, len(sums))
	for name, v := range sums {
		out = append(out, model.CountryValue{Country: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Country < out[j].Country
	})
	if len(out) > n {
		out = out[:n]
	}
	return latest, out, nil
}

// SectorTotals sums each sector column over the rows of the table's latest year.
// Sectors come back in model.Sectors order.
func SectorTotals(t *model.Table) (int, []model.SectorValue, error) {
	latest, ok := t.LatestYear()
	if !ok {
		return 0, nil, eris.Wrap(model.ErrEmptyDataset, "aggregate: no rows for sector totals")
	}

	sectors := model.Sectors()
	out := make([]model.SectorValue, len(sectors))
	for i, s := range sectors {
		out[i].Sector = s.Name
	}
	for _, r := range t.Rows {
		if r.Year.Int != latest {
			continue
		}
		for i, s := range sectors {
			out[i].Value += r.Value(s.Column)
		}
	}
	return latest, out, nil
}

// ContinentChart returns the continent series without Other, for plotting.
func (r *Result) ContinentChart() []model.ContinentYearValue {
	out := make([]model.ContinentYearValue, 0, len(r.Continents))
	for _, v := range r.Continents {
		if v.Continent != model.Other {
			out = append(out, v)
		}
	}
	return out
}

// Years returns the distinct years of the global series, ascending.
func (r *Result) Years() []int {
	years := make([]int, len(r.Global))
	for i, v := range r.Global {
		years[i] = v.Year
	}
	return years
}

// ContinentSeries returns the per-year values of one continent, aligned to Years.
// Years with no value for the continent are zero.
func (r *Result) ContinentSeries(c model.Continent) []float64 {
	idx := make(map[int]int, len(r.Global))
	for i, v := range r.Global {
		idx[v.Year] = i
	}
	out := make([]float64, len(r.Global))
	for _, v := range r.Continents {
		if v.Continent != c {
			continue
		}
		if i, ok := idx[v.Year]; ok {
			out[i] = v.Value
		}
	}
	return out
}
