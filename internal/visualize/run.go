package visualize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"softmax-geometry/internal/dataset"
	"softmax-geometry/internal/grid"
	"softmax-geometry/internal/metrics"
	"softmax-geometry/internal/model"
	"softmax-geometry/internal/render"
)

// Annotation anchor, in data coordinates.
const (
	noteX = -2
	noteY = -2
)

// RunConfig captures the knobs required by a rendering run.
type RunConfig struct {
	Output          string
	Seed            int64
	SamplesPerClass int
	Step            float64
	// Margin pads the data range on every side of the grid.
	Margin   float64
	WidthIn  float64
	HeightIn float64
	DPI      float64
	Locale   string
	FontPath string
	// MakeDirs creates the output directory instead of failing when it is
	// missing.
	MakeDirs bool
}

// Report summarises a finished run.
type Report struct {
	Output     string
	Points     int
	GridRows   int
	GridCols   int
	Width      int
	Height     int
	Confusion  *metrics.Confusion
	Timings    metrics.Snapshot
	Unrendered []rune
}

// Run generates the clusters, evaluates the classifier over the grid and
// writes the figure to cfg.Output.
func Run(ctx context.Context, cfg RunConfig, clf model.Model, logger *zap.Logger) (Report, error) {
	if cfg.Output == "" {
		return Report{}, errors.New("visualize: output path must be set")
	}
	if clf == nil {
		clf = model.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := render.DefaultOptions()
	if cfg.WidthIn <= 0 || cfg.HeightIn <= 0 {
		cfg.WidthIn, cfg.HeightIn = defaults.WidthIn, defaults.HeightIn
	}
	if cfg.DPI <= 0 {
		cfg.DPI = defaults.DPI
	}

	var window metrics.Window
	report := Report{Output: cfg.Output}

	start := time.Now()
	opts := dataset.DefaultClusterOptions()
	opts.Seed = cfg.Seed
	if cfg.SamplesPerClass > 0 {
		opts.SamplesPerClass = cfg.SamplesPerClass
	}
	data, err := dataset.Generate(opts)
	if err != nil {
		return report, err
	}
	report.Points = data.Len()
	window.Record("generate", data.Len(), time.Since(start))
	logger.Debug("generated clusters", zap.Int("points", data.Len()), zap.Int64("seed", opts.Seed))
	if err := ctx.Err(); err != nil {
		return report, err
	}

	start = time.Now()
	g, err := grid.Make(data.Column(0), data.Column(1), cfg.Step, grid.WithMargin(cfg.Margin))
	if err != nil {
		return report, err
	}
	report.GridRows, report.GridCols = g.Dims()
	window.Record("grid", 0, time.Since(start))
	if err := ctx.Err(); err != nil {
		return report, err
	}

	start = time.Now()
	flat, err := clf.Classify(g.Points())
	if err != nil {
		return report, fmt.Errorf("classify grid: %w", err)
	}
	regions, err := g.Reshape(flat)
	if err != nil {
		return report, err
	}
	window.Record("classify", len(flat), time.Since(start))
	logger.Debug("classified grid", zap.Int("rows", report.GridRows), zap.Int("cols", report.GridCols))
	if err := ctx.Err(); err != nil {
		return report, err
	}

	predicted, err := clf.Classify(data.Points)
	if err != nil {
		return report, fmt.Errorf("classify data: %w", err)
	}
	labels, err := render.NewLabels(cfg.Locale, clf.NumClasses())
	if err != nil {
		return report, err
	}
	report.Confusion, err = metrics.NewConfusion(labels.Classes, data.Labels, predicted)
	if err != nil {
		return report, err
	}

	start = time.Now()
	if err := draw(cfg, labels, g, regions, data, &report); err != nil {
		return report, err
	}
	window.Record("render", 0, time.Since(start))

	report.Timings = window.Snapshot()
	for _, stage := range report.Timings.Stages {
		logger.Debug("stage finished", zap.String("stage", stage.Name), zap.Duration("took", stage.Duration))
	}
	return report, nil
}

func draw(cfg RunConfig, labels render.Labels, g *grid.Grid, regions [][]int, data model.Batch, report *Report) error {
	minX, maxX, minY, maxY := g.Extent()
	fig, err := render.New(render.Options{
		WidthIn:  cfg.WidthIn,
		HeightIn: cfg.HeightIn,
		DPI:      cfg.DPI,
		FontPath: cfg.FontPath,
		Labels:   labels,
	}, render.Limits{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY})
	if err != nil {
		return err
	}
	defer fig.Close()

	report.Width, report.Height = fig.Size()
	report.Unrendered = fig.MissingGlyphs()

	err = fig.Draw(render.Scene{
		Grid:    g,
		Regions: regions,
		Data:    data,
		NoteX:   noteX,
		NoteY:   noteY,
	})
	if err != nil {
		return err
	}

	if cfg.MakeDirs {
		if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return fig.Save(cfg.Output)
}
