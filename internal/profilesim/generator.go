package profilesim

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/pkg/logger"
)

// Scale range constants for synthetic element tables.
const (
	randomFloatDivisor = 1000000

	levelMax      = 7.0
	importanceMin = 1.0
	importanceLow = 4.0
	interestMin   = 1.0
	interestSpan  = 6.0
	workStyleMin  = -3.0
	workStyleSpan = 6.0
	categoryMax   = 100.0

	maxTenureYears = 10.0
)

// Element id prefixes a synthetic occupation draws from. One element per
// prefix keeps every scoring path exercised.
var elementPrefixes = []struct {
	prefix string
	name   string
}{
	{"1.A.1.", "Cognitive Ability"},
	{"1.B.1.", "Occupational Interest"},
	{"1.B.2.", "Work Value"},
	{"1.D.", "Work Style"},
	{"2.A.", "Basic Skill"},
	{"2.B.", "Cross-Functional Skill"},
	{"2.C.", "Knowledge Area"},
	{"3.A.", "Education Category"},
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateOccupations builds synthetic occupation element tables with
// every scale kept inside its documented range.
func generateOccupations(ctx context.Context, count int) map[string][]model.OccupationElement {
	logger.Get().Info(ctx, "generating synthetic occupations", logger.Int("count", count))

	tables := make(map[string][]model.OccupationElement, count)
	for i := 0; i < count; i++ {
		code := fmt.Sprintf("%02d-%04d.00", 10+i%90, 1000+i)
		tables[code] = generateElements(i)
	}
	return tables
}

func generateElements(seed int) []model.OccupationElement {
	elements := make([]model.OccupationElement, 0, len(elementPrefixes))
	for j, p := range elementPrefixes {
		e := model.OccupationElement{
			ElementID:   fmt.Sprintf("%s%c", p.prefix, 'a'+(seed+j)%26),
			ElementName: p.name,
			Scales:      generateScales(p.prefix),
		}
		elements = append(elements, e)
	}
	return elements
}

func generateScales(prefix string) []model.ScaleValue {
	switch prefix {
	case "1.B.1.":
		return []model.ScaleValue{
			{ScaleID: "OI", Value: interestMin + randomFloat()*interestSpan},
		}
	case "1.B.2.":
		return []model.ScaleValue{
			{ScaleID: "EX", Value: interestMin + randomFloat()*interestSpan},
		}
	case "1.D.":
		return []model.ScaleValue{
			{ScaleID: "WI", Value: workStyleMin + randomFloat()*workStyleSpan},
		}
	case "3.A.":
		return []model.ScaleValue{
			{ScaleID: "RL-1", Value: randomFloat() * categoryMax},
			{ScaleID: "RL-2", Value: randomFloat() * categoryMax},
			{ScaleID: "RL-3", Value: randomFloat() * categoryMax},
		}
	default:
		return []model.ScaleValue{
			{ScaleID: "LV", Value: randomFloat() * levelMax},
			{ScaleID: "IM", Value: importanceMin + randomFloat()*importanceLow},
		}
	}
}

// generateJobs creates job experiences spread across users and occupations.
func generateJobs(ctx context.Context, config *Config, codes []string) []model.JobExperience {
	logger.Get().Info(ctx, "generating job experiences",
		logger.Int("jobs", config.NumJobs),
		logger.Int("users", config.NumUsers))

	userIDs := make([]string, config.NumUsers)
	for i := range userIDs {
		userIDs[i] = uuid.New().String()
	}

	jobs := make([]model.JobExperience, config.NumJobs)
	for i := range jobs {
		jobs[i] = model.JobExperience{
			JobID:          uuid.New().String(),
			UserID:         userIDs[i%len(userIDs)],
			OccupationCode: codes[i%len(codes)],
			JobTitle:       fmt.Sprintf("Role %d", i),
			DurationYears:  0.5 + randomFloat()*maxTenureYears,
		}
	}
	return jobs
}
