// Package main provides the ytplaylisttime CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/briandowns/spinner"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/ytplaylisttime/internal/app/report"
	"github.com/osa030/ytplaylisttime/internal/app/summary"
	"github.com/osa030/ytplaylisttime/internal/infra/config"
	"github.com/osa030/ytplaylisttime/internal/infra/logger"
	"github.com/osa030/ytplaylisttime/internal/infra/youtube"
)

var (
	app        = kingpin.New("ytplaylisttime", "Print title, channel, description, video count and total length of a YouTube playlist")
	configPath = app.Flag("config", "Path to config file (optional)").Short('c').String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()
	format     = app.Flag("format", "Output format").Short('f').Enum(report.FormatText, report.FormatJSON, report.FormatYAML)
	noSpinner  = app.Flag("no-spinner", "Disable the progress spinner").Bool()
	strict     = app.Flag("strict", "Exit with status 1 when the summary is incomplete").Bool()

	playlistURL = app.Arg("url", "YouTube playlist URL, e.g. https://youtube.com/playlist?list=...").Required().String()
)

var errDegraded = errors.New("summary is incomplete")

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		app.Usage(os.Args[1:])
		return
	}

	runID := uuid.NewString()
	if err := logger.Init(loggerConfig(nil, runID)); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	// Re-initialize with the config file's log settings
	if err := logger.Init(loggerConfig(cfg, runID)); err != nil {
		zlog.Fatal().Msgf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()

	if err != nil {
		zlog.Error().Msgf("%v", err)
		os.Exit(1)
	}
}

// run fetches the summary and prints it. Using a separate function ensures
// the spinner is stopped on every return path.
func run(ctx context.Context, cfg *config.Config) error {
	client, err := youtube.New(ctx, youtube.Config{
		APIKey:   cfg.YouTube.APIKey,
		Endpoint: cfg.YouTube.Endpoint,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create YouTube client")
	}

	svc := summary.NewService(client, summary.Config{
		PageSize: cfg.YouTube.PageSize,
	})

	outputFormat := cfg.Output.Format
	if *format != "" {
		outputFormat = *format
	}

	zlog.Debug().Msgf("Fetching playlist summary: url=%s", *playlistURL)
	stopSpinner := startSpinner(!*noSpinner && !*verbose)
	sum, err := svc.Summarize(ctx, *playlistURL)
	stopSpinner()
	if err != nil {
		return err
	}

	if err := report.Render(os.Stdout, outputFormat, sum); err != nil {
		return err
	}

	if sum.Status == summary.StatusDegraded {
		for _, cause := range sum.Errors {
			zlog.Debug().Msgf("degraded: %v", cause)
		}
		if *strict {
			return errDegraded
		}
	}

	return nil
}

// loggerConfig merges config file settings with command-line flags.
// Flags win; cfg may be nil before the config file is loaded.
func loggerConfig(cfg *config.Config, runID string) logger.Config {
	lc := logger.Config{
		Output: "stderr",
		Level:  "info",
		RunID:  runID,
	}
	if cfg != nil {
		lc.Output = cfg.Log.Output
		lc.Level = cfg.Log.Level
	}
	if *verbose {
		lc.Level = "debug"
	}
	if *logfile != "" {
		lc.Output = *logfile
	}
	return lc
}

// startSpinner shows a progress spinner on stderr and returns its stop func.
func startSpinner(enabled bool) func() {
	if !enabled {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Fetching..."
	s.Start()
	return s.Stop
}
