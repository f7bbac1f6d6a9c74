package profilecheck

// Default top-N values compared by the prefix rule.
const (
	shortTopN = 5
	longTopN  = 10
)

// unknownCountry is a code no dataset uses.
const unknownCountry = "ZZZ"

const (
	percentageMultiplier = 100
	maxTopAthletes       = 5
)

const maxReportedViolations = 50
