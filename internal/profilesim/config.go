package profilesim

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	NumJobs        int           // Number of job experiences to generate
	NumUsers       int           // Number of distinct users
	NumOccupations int           // Number of synthetic occupations
	Workers        int           // Number of service workers
	Timeout        time.Duration // Overall run timeout
	OutputFile     string        // Optional JSON dump of generated jobs
	Verbose        bool          // Enable verbose logging
}

// Stats tracks what happened during a run.
type Stats struct {
	StartTime     time.Time
	Submitted     int
	Duplicates    int
	UsersProfiled int
	Attributes    int
	Violations    int
}
