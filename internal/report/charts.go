package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sells-group/emissions-cli/internal/aggregate"
	"github.com/sells-group/emissions-cli/internal/model"
)

// Chart file names written by RenderCharts.
const (
	ChartGlobal     = "global_co2_trend.png"
	ChartContinents = "continent_co2_trend.png"
	ChartTop        = "top_10_countries_co2_bar.png"
	ChartSectors    = "sector_co2_bar_chart.png"
)

// ChartFiles returns the chart file names in render order.
func ChartFiles() []string {
	return []string{ChartGlobal, ChartContinents, ChartTop, ChartSectors}
}

// ChartOptions sets the rendered image size in inches.
type ChartOptions struct {
	WidthIn  float64
	HeightIn float64
}

func (o ChartOptions) size() (vg.Length, vg.Length) {
	w, h := o.WidthIn, o.HeightIn
	if w <= 0 {
		w = 12
	}
	if h <= 0 {
		h = 7
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// RenderCharts writes the four PNG charts for res into dir and returns their paths.
// dir must exist. Write failures are returned as *model.OutputError.
func RenderCharts(dir string, res *aggregate.Result, opts ChartOptions) ([]string, error) {
	builders := []struct {
		name  string
		build func(*aggregate.Result) (*plot.Plot, error)
	}{
		{ChartGlobal, globalChart},
		{ChartContinents, continentChart},
		{ChartTop, topChart},
		{ChartSectors, sectorChart},
	}

	paths := make([]string, 0, len(builders))
	for _, b := range builders {
		p, err := b.build(res)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, b.name)
		if err := savePNG(p, path, opts); err != nil {
			return nil, err
		}
		zap.L().Debug("report: chart written", zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

func savePNG(p *plot.Plot, path string, opts ChartOptions) error {
	w, h := opts.size()
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return eris.Wrapf(err, "report: render %s", filepath.Base(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "report: create chart"))
	}
	if _, err := wt.WriteTo(f); err != nil {
		_ = f.Close()
		return model.NewOutputError(path, eris.Wrap(err, "report: write chart"))
	}
	if err := f.Close(); err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "report: close chart"))
	}
	return nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func globalChart(res *aggregate.Result) (*plot.Plot, error) {
	p := newPlot("Global CO₂ Emissions Over Time", "Year", "CO₂ Emissions (million tonnes)")

	points := make(plotter.XYs, len(res.Global))
	for i, v := range res.Global {
		points[i] = plotter.XY{X: float64(v.Year), Y: v.Value}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, eris.Wrap(err, "report: global line")
	}
	line.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	line.Width = vg.Points(2)
	p.Add(line)
	return p, nil
}

// continentChart stacks the continents as filled bands, Other excluded.
func continentChart(res *aggregate.Result) (*plot.Plot, error) {
	p := newPlot("CO₂ Emissions by Continent Over Time", "Year", "CO₂ Emissions (million tonnes)")
	p.Legend.Top = true
	p.Legend.Left = true

	years := res.Years()
	base := make([]float64, len(years))
	for i, c := range model.Continents() {
		series := res.ContinentSeries(c)
		top := make([]float64, len(years))
		for j := range years {
			top[j] = base[j] + series[j]
		}

		band := make(plotter.XYs, 0, 2*len(years))
		for j, y := range years {
			band = append(band, plotter.XY{X: float64(y), Y: top[j]})
		}
		for j := len(years) - 1; j >= 0; j-- {
			band = append(band, plotter.XY{X: float64(years[j]), Y: base[j]})
		}
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return nil, eris.Wrapf(err, "report: continent band %s", c)
		}
		poly.Color = plotutil.Color(i)
		poly.LineStyle.Width = 0
		p.Add(poly)
		p.Legend.Add(string(c), poly)

		base = top
	}
	return p, nil
}

func topChart(res *aggregate.Result) (*plot.Plot, error) {
	title := fmt.Sprintf("Top %d CO₂ Emitting Countries (%d)", len(res.Top), res.TopYear)
	p := newPlot(title, "CO₂ Emissions (million tonnes)", "")

	// Largest emitter at the top of the chart.
	values := make(plotter.Values, len(res.Top))
	labels := make([]string, len(res.Top))
	for i, c := range res.Top {
		j := len(res.Top) - 1 - i
		values[j] = c.Value
		labels[j] = c.Country
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, eris.Wrap(err, "report: top bars")
	}
	bars.Horizontal = true
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)
	return p, nil
}

func sectorChart(res *aggregate.Result) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("CO₂ Emissions by Sector (%d)", res.SectorYear), "Sector", "CO₂ Emissions (million tonnes)")

	values := make(plotter.Values, len(res.Sectors))
	names := make([]string, len(res.Sectors))
	var peak float64
	for i, s := range res.Sectors {
		values[i] = s.Value
		names[i] = s.Sector
		if s.Value > peak {
			peak = s.Value
		}
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, eris.Wrap(err, "report: sector bars")
	}
	bars.Color = color.RGBA{R: 205, G: 92, B: 92, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	xys := make([]plotter.XY, len(values))
	text := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v + peak*0.02}
		text[i] = fmt.Sprintf("%.0f", v)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, eris.Wrap(err, "report: sector labels")
	}
	p.Add(labels)
	if peak > 0 {
		p.Y.Max = peak * 1.1
	}
	return p, nil
}
