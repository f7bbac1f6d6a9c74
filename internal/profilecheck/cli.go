package profilecheck

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// SetupLogging logs to stdout and to logFile. An empty logFile gets a
// timestamped name. The returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	if logFile == "" {
		logFile = "profile_check_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file.Close, nil
}

// ShowHelp prints usage information for the profile check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Podium Profile Check
====================

Renders every country of a running podium service concurrently and checks
the properties each profile must hold: medal breakdown sums to the total,
index and profile agree, top-N bounds and ordering, top-5 is a prefix of
top-10, efficiency is never negative, unknown codes render no data, and
invalid clicked-country signals leave the selection alone.

Usage:
  go run ./cmd/profile-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -countries int
        Check only the first N countries (default all)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for check output (default: profile_check_TIMESTAMP.log)
  -generate string
        Write a synthetic athlete_events.csv to this path and exit
  -rows int
        Rows to generate with -generate (default 20000)
  -seed uint
        Generator seed (default 1)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check a local service
  go run ./cmd/profile-check

  # Generate a dataset, then serve it
  go run ./cmd/profile-check -generate data/athlete_events.csv -rows 50000
  PODIUM_ATHLETES_PATH=data/athlete_events.csv PODIUM_REGIONS_PATH= go run ./cmd
`)
}
