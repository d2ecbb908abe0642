package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/polarreport/internal/polargen"
	"github.com/okian/polarreport/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount = 12
	defaultDir   = "polars"
)

func main() {
	var (
		dir          = flag.String("dir", defaultDir, "Directory to write polar files into")
		count        = flag.Int("count", defaultCount, "Number of polar files to generate")
		omitReynolds = flag.Int("omit-reynolds", 0, "Drop the Reynolds marker from every n-th file (0 = never)")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithLevel(level)); err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	specs := polargen.Series(*count)
	if *omitReynolds > 0 {
		for i := range specs {
			if (i+1)%*omitReynolds == 0 {
				specs[i].OmitReynolds = true
			}
		}
	}

	paths, err := polargen.WriteDir(ctx, *dir, specs)
	if err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
	for _, p := range paths {
		logger.Get().Debug(ctx, "polar written", logger.String("path", p))
	}
}
