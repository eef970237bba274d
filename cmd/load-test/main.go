package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/raceboard/internal/loadtest"
	"github.com/okian/raceboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultTeams       = 20
	defaultPerTeam     = 5
	defaultRound       = 1
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		teams   = flag.Int("teams", defaultTeams, "Number of distinct teams to simulate")
		perTeam = flag.Int("per-team", defaultPerTeam, "Submissions each team fires")
		round   = flag.Int("round", defaultRound, "Round all submissions target")
		workers = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &loadtest.Config{
		BaseURL:            *baseURL,
		NumTeams:           *teams,
		SubmissionsPerTeam: *perTeam,
		Round:              *round,
		Workers:            *workers,
		Timeout:            *timeout,
		Verbose:            *verbose,
	}

	if err := loadtest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load test failed", logger.Error(err))
		os.Exit(1)
	}
}
