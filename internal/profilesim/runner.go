// Package profilesim drives the attribute update pipeline end to end with
// synthetic occupations and job experiences, then checks the accumulated
// profiles against the engine's bounds.
package profilesim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	service "github.com/careerhq/attribute-engine/internal/app"
	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/pkg/logger"
)

// Attribute bound constants.
const (
	maxAttributeValue = 100.0
	outputPermission  = 0o600
	settleDelay       = 200 * time.Millisecond
)

// simCatalog serves generated occupation tables to the service.
type simCatalog struct {
	tables map[string][]model.OccupationElement
}

func (c *simCatalog) Elements(occupationCode string) ([]model.OccupationElement, error) {
	elements, ok := c.tables[occupationCode]
	if !ok {
		return nil, fmt.Errorf("occupation not found: %s", occupationCode)
	}
	return elements, nil
}

func (c *simCatalog) Occupations() int {
	return len(c.tables)
}

// Run executes the complete simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("profilesim")

	log.Info(ctx, "starting profile simulation",
		logger.Int("jobs", config.NumJobs),
		logger.Int("users", config.NumUsers),
		logger.Int("occupations", config.NumOccupations),
		logger.Int("workers", config.Workers))

	// Step 1: Generate reference data and jobs
	tables := generateOccupations(ctx, config.NumOccupations)
	codes := make([]string, 0, len(tables))
	for code := range tables {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	jobs := generateJobs(ctx, config, codes)

	if config.OutputFile != "" {
		if err := dumpJobs(config.OutputFile, jobs); err != nil {
			return fmt.Errorf("failed to write job dump: %w", err)
		}
	}

	// Step 2: Start the service
	svc := service.New(
		service.WithCatalog(&simCatalog{tables: tables}),
		service.WithWorkerCount(config.Workers),
		service.WithQueueSize(config.NumJobs+1),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	// Step 3: Submit jobs, resubmitting a slice to exercise idempotency
	for _, job := range jobs {
		if _, err := svc.Submit(ctx, job); err != nil {
			return fmt.Errorf("submit failed for job %s: %w", job.JobID, err)
		}
		stats.Submitted++
	}
	for i, job := range jobs {
		if i%10 != 0 {
			continue
		}
		if _, err := svc.Submit(ctx, job); err != nil {
			return fmt.Errorf("duplicate submit failed for job %s: %w", job.JobID, err)
		}
		stats.Duplicates++
	}

	// Step 4: Wait for processing
	if err := svc.Drain(ctx); err != nil {
		return fmt.Errorf("queue did not drain: %w", err)
	}
	time.Sleep(settleDelay)

	// Step 5: Verify accumulated profiles
	if err := verifyProfiles(ctx, svc, jobs, stats); err != nil {
		return err
	}

	report(ctx, log, stats)
	return nil
}

// verifyProfiles checks every user's accumulated attributes against the
// engine's bounds.
func verifyProfiles(ctx context.Context, svc *service.Service, jobs []model.JobExperience, stats *Stats) error {
	seen := make(map[string]struct{})
	for _, job := range jobs {
		if _, ok := seen[job.UserID]; ok {
			continue
		}
		seen[job.UserID] = struct{}{}

		profile, err := svc.Profile(ctx, job.UserID)
		if err != nil {
			return fmt.Errorf("no profile for user %s: %w", job.UserID, err)
		}
		stats.UsersProfiled++
		stats.Attributes += len(profile.Attributes)

		for _, attr := range profile.Attributes {
			if attr.Capability < 0 || attr.Capability > maxAttributeValue {
				stats.Violations++
				logger.Get().Error(ctx, "capability out of bounds",
					logger.String("userID", job.UserID),
					logger.String("elementID", attr.ElementID),
					logger.Float64("capability", attr.Capability))
			}
			if attr.Preference < 0 || attr.Preference > maxAttributeValue {
				stats.Violations++
				logger.Get().Error(ctx, "preference out of bounds",
					logger.String("userID", job.UserID),
					logger.String("elementID", attr.ElementID),
					logger.Float64("preference", attr.Preference))
			}
		}
	}

	if stats.Violations > 0 {
		return fmt.Errorf("found %d attribute bound violations", stats.Violations)
	}
	return nil
}

func dumpJobs(path string, jobs []model.JobExperience) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, outputPermission)
}

func report(ctx context.Context, log logger.Logger, stats *Stats) {
	elapsed := time.Since(stats.StartTime)
	log.Info(ctx, "simulation complete",
		logger.Int("submitted", stats.Submitted),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("usersProfiled", stats.UsersProfiled),
		logger.Int("attributes", stats.Attributes),
		logger.Int("violations", stats.Violations),
		logger.String("elapsed", elapsed.String()))
}
