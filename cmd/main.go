package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/polarreport/internal/app"
	"github.com/okian/polarreport/internal/config"
	"github.com/okian/polarreport/pkg/logger"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses flags, loads configuration and executes one report run.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	overrides, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitFailure
	}

	// Initialize logging with defaults so config errors are reported uniformly.
	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.Load(ctx, overrides...)
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		return exitFailure
	}

	if err := logger.Init(
		logger.WithOutput(stderr),
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
	); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitFailure
	}

	svc := app.New(
		app.WithConfig(cfg),
		app.WithLogger(logger.Named("app")),
	)
	sum, err := svc.Run(ctx)
	if err != nil {
		return exitFailure
	}

	fmt.Fprintf(stdout, "%s: %d airfoils, %d skipped, %d pages\n",
		sum.OutputPath, len(sum.Entries), len(sum.Skipped), sum.Pages)
	return exitOK
}

// parseFlags returns config overrides for the flags present in args only, so
// unset flags never mask file or environment values.
func parseFlags(args []string, stderr io.Writer) ([]config.Option, error) {
	fs := flag.NewFlagSet("polarreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: polarreport [flags]")
		fmt.Fprintln(fs.Output(), "")
		fmt.Fprintln(fs.Output(), "Builds a PDF report from a directory of XFOIL polar files.")
		fmt.Fprintln(fs.Output(), "Settings may also come from a YAML file named by "+config.EnvConfigFile+
			" or from "+config.EnvPrefix+"* environment variables; flags win.")
		fmt.Fprintln(fs.Output(), "The run fails without writing a report when no input file can be parsed.")
		fmt.Fprintln(fs.Output(), "")
		fs.PrintDefaults()
	}

	var (
		input     = fs.String("input", "", "Directory containing polar files")
		output    = fs.String("output", "", "Path of the PDF report")
		toc       = fs.Bool("toc", false, "Include a table of contents and page footers")
		title     = fs.String("title", config.DefaultTitle, "Title page text")
		ext       = fs.String("ext", config.DefaultFileExtension, "Polar file extension")
		workers   = fs.Int("workers", 0, "Parse workers (0 = one per CPU, 1 = sequential)")
		minDrag   = fs.Float64("min-drag", config.DefaultMinDrag, "Drag floor for the efficiency point")
		failFast  = fs.Bool("fail-fast", false, "Abort on the first malformed file")
		summary   = fs.String("summary", "", "Optional xlsx ranking summary path")
		metrics   = fs.String("metrics", "", "Optional Prometheus textfile path")
		logLevel  = fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
		logFormat = fs.String("log-format", config.DefaultLogFormat, "Log format: text or json")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, errors.New("unexpected arguments")
	}

	var opts []config.Option
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			opts = append(opts, config.WithInputDirectory(*input))
		case "output":
			opts = append(opts, config.WithOutputPath(*output))
		case "toc":
			opts = append(opts, config.WithContents(*toc))
		case "title":
			opts = append(opts, config.WithTitle(*title))
		case "ext":
			opts = append(opts, config.WithFileExtension(*ext))
		case "workers":
			opts = append(opts, config.WithWorkers(*workers))
		case "min-drag":
			opts = append(opts, config.WithMinDrag(*minDrag))
		case "fail-fast":
			opts = append(opts, config.WithFailFast(*failFast))
		case "summary":
			opts = append(opts, config.WithSummaryPath(*summary))
		case "metrics":
			opts = append(opts, config.WithMetricsPath(*metrics))
		case "log-level":
			opts = append(opts, config.WithLogLevel(*logLevel))
		case "log-format":
			opts = append(opts, config.WithLogFormat(*logFormat))
		}
	})
	return opts, nil
}
