// Package model contains domain models passed between layers.
package model

import "strings"

// Medal is the podium outcome recorded on an event row.
type Medal string

// Medal values. None marks a row without a podium finish.
const (
	Gold   Medal = "Gold"
	Silver Medal = "Silver"
	Bronze Medal = "Bronze"
	None   Medal = "None"
)

// MedalOrder is the display order used by breakdowns and chart series.
var MedalOrder = []Medal{Gold, Silver, Bronze}

// ParseMedal normalises dataset spellings ("NA", "", "gold") to a Medal.
func ParseMedal(s string) Medal {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold":
		return Gold
	case "silver":
		return Silver
	case "bronze":
		return Bronze
	default:
		return None
	}
}

// Won reports whether m is a podium medal.
func (m Medal) Won() bool {
	return m == Gold || m == Silver || m == Bronze
}

// Record is one athlete's entry in one event at one Games.
type Record struct {
	ID     string // athlete id from the source file, may be empty
	Name   string // athlete name
	Gender string // "M" / "F" as found in the data
	Team   string
	NOC    string // National Olympic Committee code
	Games  string // e.g. "2016 Summer"
	Year   int
	Season string // "Summer" or "Winter"
	City   string
	Sport  string
	Event  string
	Medal  Medal
}

// HasMedal reports whether the row is a medal row.
func (r Record) HasMedal() bool {
	return r.Medal.Won()
}

// MedalKey identifies a single awarded medal. Team events produce one row
// per athlete but share the key, so a team medal is counted once.
type MedalKey struct {
	Year   int
	Season string
	Event  string
	Medal  Medal
}

// Key returns the medal identity of the row.
func (r Record) Key() MedalKey {
	return MedalKey{Year: r.Year, Season: r.Season, Event: r.Event, Medal: r.Medal}
}

// AthleteYear identifies an athlete's participation in a given year.
type AthleteYear struct {
	Year int
	Name string
}

// Region is a row of the NOC regions table.
type Region struct {
	NOC    string
	Region string
	Notes  string
}
