package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/podium/internal/profilecheck"
	"github.com/okian/podium/pkg/logger"
)

// Default configuration constants.
const (
	defaultRows         = 20000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultCheckTimeout = 10 * time.Minute
	datasetPermission   = 0o644
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		countries = flag.Int("countries", 0, "Check only the first N countries (0 checks all)")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Log file for check output (default: profile_check_TIMESTAMP.log)")
		generate  = flag.String("generate", "", "Write a synthetic athlete_events.csv to this path and exit")
		rows      = flag.Int("rows", defaultRows, "Rows to generate with -generate")
		seed      = flag.Uint64("seed", 1, "Generator seed")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		profilecheck.ShowHelp()
		return
	}

	closeLog, err := profilecheck.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultCheckTimeout)
	defer cancel()

	if *generate != "" {
		if err := writeDataset(ctx, *generate, *rows, *seed); err != nil {
			os.Stderr.WriteString("Generate failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		return
	}

	config := &profilecheck.Config{
		BaseURL:   *baseURL,
		Workers:   *workers,
		Timeout:   *timeout,
		Countries: *countries,
		Verbose:   *verbose,
	}

	if _, err := profilecheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func writeDataset(ctx context.Context, path string, rows int, seed uint64) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, datasetPermission)
	if err != nil {
		return err
	}
	n, err := profilecheck.GenerateDataset(ctx, f, profilecheck.GenerateOptions{
		Rows:      rows,
		Medalless: []string{"ISL", "MON"},
		Seed:      seed,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	logger.Get().Info(ctx, "dataset generated", logger.String("path", path), logger.Int("rows", n))
	return nil
}
