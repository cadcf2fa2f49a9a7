package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"softmax-geometry/internal/config"
	"softmax-geometry/internal/logging"
	"softmax-geometry/internal/model"
	"softmax-geometry/internal/visualize"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	output := flag.String("output", "", "Override output PNG path")
	seed := flag.Int64("seed", 0, "PRNG seed")
	samples := flag.Int("samples", 0, "Points per class")
	step := flag.Float64("step", 0, "Grid step size")
	dpi := flag.Float64("dpi", 0, "Output resolution")
	locale := flag.String("locale", "", "Label language (en, zh)")
	fontPath := flag.String("font", "", "TTF/OTF font file for labels")
	logLevel := flag.String("log-level", "", "Log level")
	mkdir := flag.Bool("mkdir", false, "Create the output directory if missing")
	report := flag.Bool("report", false, "Print classifier metrics to stdout")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		Output:          *output,
		Seed:            *seed,
		SamplesPerClass: *samples,
		Step:            *step,
		DPI:             *dpi,
		Locale:          *locale,
		FontPath:        *fontPath,
		LogLevel:        *logLevel,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}, os.Stderr)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	runCfg := visualize.RunConfig{
		Output:          cfg.Output,
		Seed:            cfg.Seed,
		SamplesPerClass: cfg.SamplesPerClass,
		Step:            cfg.Step,
		Margin:          cfg.Margin,
		WidthIn:         cfg.WidthIn,
		HeightIn:        cfg.HeightIn,
		DPI:             cfg.DPI,
		Locale:          cfg.Locale,
		FontPath:        cfg.FontPath,
		MakeDirs:        *mkdir,
	}

	res, err := visualize.Run(ctx, runCfg, model.Default(), logger)
	stop()
	if err != nil {
		logger.Error("rendering failed", zap.Error(err))
		_ = closeLog()
		os.Exit(1)
	}

	if len(res.Unrendered) > 0 {
		logger.Warn("font lacks glyphs for some labels; set font_path",
			zap.String("locale", cfg.Locale),
			zap.String("runes", string(res.Unrendered)),
		)
	}
	logger.Info("figure written",
		zap.String("output", res.Output),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int("points", res.Points),
		zap.Int("grid_rows", res.GridRows),
		zap.Int("grid_cols", res.GridCols),
		zap.Float64("accuracy", res.Confusion.Accuracy()),
		zap.Duration("took", res.Timings.Total),
		zap.Float64("points_per_sec", res.Timings.PointsPerSec),
	)
	if *report {
		if err := res.Confusion.Write(os.Stdout); err != nil {
			logger.Error("write report", zap.Error(err))
		}
	}
	_ = closeLog()
}
