package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/careerhq/attribute-engine/internal/profilesim"
	"github.com/careerhq/attribute-engine/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumJobs        = 10000
	defaultNumUsers       = 1000
	defaultNumOccupations = 50
	defaultWorkers        = 2 // multiplier for runtime.NumCPU()
	defaultRunTimeout     = 10 * time.Minute
)

func main() {
	var (
		numJobs        = flag.Int("jobs", defaultNumJobs, "Number of job experiences to generate and submit")
		numUsers       = flag.Int("users", defaultNumUsers, "Number of distinct users")
		numOccupations = flag.Int("occupations", defaultNumOccupations, "Number of synthetic occupations")
		workers        = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of service workers")
		timeout        = flag.Duration("timeout", defaultRunTimeout, "Overall run timeout")
		outputFile     = flag.String("output", "", "Output file for generated jobs (JSON)")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	config := &profilesim.Config{
		NumJobs:        *numJobs,
		NumUsers:       *numUsers,
		NumOccupations: *numOccupations,
		Workers:        *workers,
		Timeout:        *timeout,
		OutputFile:     *outputFile,
		Verbose:        *verbose,
	}

	if err := profilesim.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "simulation failed", logger.Error(err))
		os.Exit(1)
	}
}
