package profilecheck

import (
	"time"

	"github.com/okian/podium/internal/domain/types"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Countries int           // Maximum countries to check, 0 checks all
	Verbose   bool          // Log every violation as it is found
}

// Stats holds run statistics.
type Stats struct {
	Countries  int
	Profiles   int
	Populated  int
	NoMedals   int
	Failed     int
	Violations []Violation
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Violation is a property that did not hold for a country.
type Violation struct {
	Country string
	Rule    string
	Detail  string
}

func (v Violation) String() string {
	return v.Country + ": " + v.Rule + ": " + v.Detail
}

// index is the subset of the service state a run needs.
type index struct {
	countries []types.CountrySummary
	options   types.Options
}
