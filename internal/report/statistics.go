// Package report writes the statistics report, charts, and workbook for an aggregate result.
package report

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/emissions-cli/internal/aggregate"
	"github.com/sells-group/emissions-cli/internal/model"
)

// Section headers of Statistics.txt.
const (
	HeaderGlobal     = "Global CO₂ Emissions Over Time Statistics:"
	HeaderContinents = "CO₂ Emissions by Continent Statistics:"
	HeaderTop        = "Top %d CO₂ Emitting Countries (%s):"
	HeaderSectors    = "CO₂ Emissions by Sector (%s):"
)

// Summary is a describe-style numeric summary of a series.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarizes values. Std is the sample standard deviation.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	return Summary{
		Count: len(sorted),
		Mean:  mean,
		Std:   std,
		Min:   sorted[0],
		Q25:   stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Q50:   stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		Q75:   stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:   sorted[len(sorted)-1],
	}
}

// WriteStatistics writes the text report for res to path.
// Failures are returned as *model.OutputError.
func WriteStatistics(path string, res *aggregate.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "report: create statistics"))
	}

	w := bufio.NewWriter(f)
	if err := EncodeStatistics(w, res); err != nil {
		_ = f.Close()
		return model.NewOutputError(path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return model.NewOutputError(path, eris.Wrap(err, "report: flush statistics"))
	}
	if err := f.Close(); err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "report: close statistics"))
	}
	return nil
}

// EncodeStatistics writes the four report sections to w.
func EncodeStatistics(w io.Writer, res *aggregate.Result) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	global := make([]float64, len(res.Global))
	for i, v := range res.Global {
		global[i] = v.Value
	}
	p.Fprintln(ew, HeaderGlobal)
	writeSummary(p, ew, "", Describe(global))
	p.Fprintln(ew)

	p.Fprintln(ew, HeaderContinents)
	byContinent := make(map[model.Continent][]float64)
	for _, v := range res.Continents {
		byContinent[v.Continent] = append(byContinent[v.Continent], v.Value)
	}
	for _, c := range model.AllContinents() {
		values, ok := byContinent[c]
		if !ok {
			continue
		}
		p.Fprintf(ew, "%s\n", c)
		writeSummary(p, ew, "  ", Describe(values))
	}
	p.Fprintln(ew)

	topN := res.TopN
	if topN == 0 {
		topN = len(res.Top)
	}
	// Years are passed as strings so the printer does not group their digits.
	p.Fprintf(ew, HeaderTop+"\n", topN, strconv.Itoa(res.TopYear))
	for i, c := range res.Top {
		p.Fprintf(ew, "%2d. %-28s %14.2f\n", i+1, c.Country, c.Value)
	}
	p.Fprintln(ew)

	p.Fprintf(ew, HeaderSectors+"\n", strconv.Itoa(res.SectorYear))
	var total float64
	for _, s := range res.Sectors {
		total += s.Value
	}
	for _, s := range res.Sectors {
		share := 0.0
		if total > 0 {
			share = s.Value / total * 100
		}
		p.Fprintf(ew, "%-16s %14.2f  (%5.1f%%)\n", s.Sector, s.Value, share)
	}
	p.Fprintf(ew, "%-16s %14.2f\n", "Total", total)

	if ew.err != nil {
		return eris.Wrap(ew.err, "report: write statistics")
	}
	return nil
}

func writeSummary(p *message.Printer, w io.Writer, indent string, s Summary) {
	p.Fprintf(w, "%s%-6s %14d\n", indent, "count", s.Count)
	for _, row := range []struct {
		label string
		value float64
	}{
		{"mean", s.Mean},
		{"std", s.Std},
		{"min", s.Min},
		{"25%", s.Q25},
		{"50%", s.Q50},
		{"75%", s.Q75},
		{"max", s.Max},
	} {
		p.Fprintf(w, "%s%-6s %14.2f\n", indent, row.label, row.value)
	}
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
