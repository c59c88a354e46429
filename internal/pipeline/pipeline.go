// Package pipeline runs the emissions report: load, clean, aggregate, emit, snapshot.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/emissions-cli/internal/aggregate"
	"github.com/sells-group/emissions-cli/internal/cleaner"
	"github.com/sells-group/emissions-cli/internal/config"
	"github.com/sells-group/emissions-cli/internal/dataset"
	"github.com/sells-group/emissions-cli/internal/geo"
	"github.com/sells-group/emissions-cli/internal/model"
	"github.com/sells-group/emissions-cli/internal/report"
	"github.com/sells-group/emissions-cli/internal/store"
	"github.com/sells-group/emissions-cli/internal/transform"
)

// Config is everything one run needs. Store may be nil.
type Config struct {
	InputPath      string
	CleanedCSV     string
	StatisticsPath string
	ChartDir       string
	WorkbookPath   string
	CreateDirs     bool
	Charts         report.ChartOptions
	TopN           int
	Classifier     aggregate.Classifier
	Names          aggregate.Names
	Store          store.Store
}

// FromConfig builds a run Config from application configuration.
// The classifier gets the extra overrides from classify.overrides_file, if set.
func FromConfig(cfg *config.Config, st store.Store) (Config, error) {
	classifier, err := NewClassifier(cfg.Classify.OverridesFile)
	if err != nil {
		return Config{}, err
	}
	return Config{
		InputPath:      cfg.Input.Path,
		CleanedCSV:     cfg.Output.CleanedCSV,
		StatisticsPath: cfg.Output.Statistics,
		ChartDir:       cfg.Output.ChartDir,
		WorkbookPath:   cfg.Output.Workbook,
		CreateDirs:     cfg.Output.CreateDirs,
		Charts:         report.ChartOptions{WidthIn: cfg.Charts.WidthIn, HeightIn: cfg.Charts.HeightIn},
		TopN:           cfg.Aggregate.TopN,
		Classifier:     classifier,
		Names:          transform.NewCountryNames(),
		Store:          st,
	}, nil
}

// NewClassifier returns the default classifier, merged with the overrides in
// overridesFile when it is non-empty.
func NewClassifier(overridesFile string) (*geo.Classifier, error) {
	if overridesFile == "" {
		return geo.New(), nil
	}
	extra, err := geo.LoadOverrides(overridesFile)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load classifier overrides")
	}
	return geo.New(geo.WithOverrides(extra)), nil
}

// PhaseResult records one step of a run.
type PhaseResult struct {
	Name     string `json:"name"`
	Duration int64  `json:"duration_ms"`
	Error    string `json:"error,omitempty"`
}

// Result is the outcome of a successful run.
type Result struct {
	RunID       string              `json:"run_id,omitempty"`
	Diagnostics cleaner.Diagnostics `json:"diagnostics"`
	Aggregates  *aggregate.Result   `json:"aggregates,omitempty"`
	Artifacts   []string            `json:"artifacts"`
	Phases      []PhaseResult       `json:"phases"`
}

// runner carries the state shared by the phases of one run.
type runner struct {
	cfg    Config
	log    *zap.Logger
	result *Result
}

// track runs fn as a named phase and records its duration.
func (r *runner) track(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	phase := PhaseResult{Name: name, Duration: time.Since(start).Milliseconds()}
	if err != nil {
		phase.Error = err.Error()
		r.log.Error("pipeline: phase failed",
			zap.String("phase", name),
			zap.Int64("duration_ms", phase.Duration),
			zap.Error(err),
		)
	} else {
		r.log.Info("pipeline: phase complete",
			zap.String("phase", name),
			zap.Int64("duration_ms", phase.Duration),
		)
	}
	r.result.Phases = append(r.result.Phases, phase)
	return err
}

func (r *runner) artifact(path string) {
	r.result.Artifacts = append(r.result.Artifacts, path)
	r.log.Info("pipeline: artifact written", zap.String("path", path))
}

// Run executes the full pipeline. Load failures come back as *model.LoadError
// and write failures as *model.OutputError; no partial Result is returned with an error.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	r := &runner{
		cfg:    cfg,
		log:    zap.L().With(zap.String("input", cfg.InputPath)),
		result: &Result{},
	}
	r.log.Info("pipeline: starting run")

	if cfg.Classifier == nil || cfg.Names == nil {
		return nil, eris.New("pipeline: classifier and names are required")
	}

	cleaned, err := r.clean()
	if err != nil {
		return nil, err
	}

	var agg *aggregate.Result
	if err := r.track("aggregate", func() error {
		var aggErr error
		agg, aggErr = aggregate.Aggregate(cleaned, aggregate.Options{
			Classifier: cfg.Classifier,
			Names:      cfg.Names,
			TopN:       cfg.TopN,
		})
		return aggErr
	}); err != nil {
		return nil, err
	}
	r.result.Aggregates = agg

	if err := r.emit(agg); err != nil {
		return nil, err
	}

	if cfg.Store != nil {
		snap := store.NewSnapshot(cfg.InputPath, cleaned, r.result.Diagnostics, agg)
		if err := r.track("snapshot", func() error {
			return cfg.Store.SaveSnapshot(ctx, snap)
		}); err != nil {
			return nil, eris.Wrap(err, "pipeline: save snapshot")
		}
		r.result.RunID = snap.RunID
	}

	r.log.Info("pipeline: run complete",
		zap.String("run_id", r.result.RunID),
		zap.Int("artifacts", len(r.result.Artifacts)),
	)
	return r.result, nil
}

// Clean loads and cleans the input, then writes the cleaned CSV. It is the
// first half of Run.
func Clean(ctx context.Context, cfg Config) (*Result, error) {
	r := &runner{
		cfg:    cfg,
		log:    zap.L().With(zap.String("input", cfg.InputPath)),
		result: &Result{},
	}
	if _, err := r.clean(); err != nil {
		return nil, err
	}
	return r.result, nil
}

func (r *runner) clean() (*model.Table, error) {
	var raw *model.Table
	if err := r.track("load", func() error {
		var loadErr error
		raw, loadErr = dataset.Load(r.cfg.InputPath)
		return loadErr
	}); err != nil {
		return nil, err
	}

	var cleaned *model.Table
	_ = r.track("clean", func() error {
		cleaned, r.result.Diagnostics = cleaner.Clean(raw)
		return nil
	})
	r.result.Diagnostics.Log(r.log)

	if err := r.track("write_cleaned", func() error {
		if err := r.ensureDir(filepath.Dir(r.cfg.CleanedCSV)); err != nil {
			return err
		}
		return dataset.Write(r.cfg.CleanedCSV, cleaned)
	}); err != nil {
		return nil, err
	}
	r.artifact(r.cfg.CleanedCSV)
	return cleaned, nil
}

func (r *runner) emit(agg *aggregate.Result) error {
	if err := r.track("statistics", func() error {
		if err := r.ensureDir(filepath.Dir(r.cfg.StatisticsPath)); err != nil {
			return err
		}
		return report.WriteStatistics(r.cfg.StatisticsPath, agg)
	}); err != nil {
		return err
	}
	r.artifact(r.cfg.StatisticsPath)

	var charts []string
	if err := r.track("charts", func() error {
		if err := r.ensureDir(r.cfg.ChartDir); err != nil {
			return err
		}
		var chartErr error
		charts, chartErr = report.RenderCharts(r.cfg.ChartDir, agg, r.cfg.Charts)
		return chartErr
	}); err != nil {
		return err
	}
	for _, c := range charts {
		r.artifact(c)
	}

	if r.cfg.WorkbookPath == "" {
		return nil
	}
	if err := r.track("workbook", func() error {
		if err := r.ensureDir(filepath.Dir(r.cfg.WorkbookPath)); err != nil {
			return err
		}
		return report.WriteWorkbook(r.cfg.WorkbookPath, agg)
	}); err != nil {
		return err
	}
	r.artifact(r.cfg.WorkbookPath)
	return nil
}

// ensureDir creates dir when CreateDirs is set. Writers never create directories.
func (r *runner) ensureDir(dir string) error {
	if !r.cfg.CreateDirs || dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.NewOutputError(dir, eris.Wrap(err, "pipeline: create output dir"))
	}
	return nil
}
