package profilecheck

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
)

// GenerateOptions shapes a synthetic athlete_events file.
type GenerateOptions struct {
	Rows      int
	Countries []string
	// Medalless countries appear in the data but never win.
	Medalless []string
	Seed      uint64
}

var header = []string{"ID", "Name", "Sex", "Age", "Height", "Weight", "Team", "NOC", "Games", "Year", "Season", "City", "Sport", "Event", "Medal"}

type sportEvent struct {
	sport, event string
	team         int // athletes per entry
	season       string
}

var events = []sportEvent{
	{"Athletics", "Athletics Men's 100 metres", 1, "Summer"},
	{"Athletics", "Athletics Women's 4 x 100 metres Relay", 4, "Summer"},
	{"Swimming", "Swimming Women's 100 metres Freestyle", 1, "Summer"},
	{"Swimming", "Swimming Men's 4 x 200 metres Freestyle Relay", 4, "Summer"},
	{"Rowing", "Rowing Men's Coxless Pairs", 2, "Summer"},
	{"Gymnastics", "Gymnastics Women's Team All-Around", 5, "Summer"},
	{"Judo", "Judo Men's Lightweight", 1, "Summer"},
	{"Fencing", "Fencing Men's Foil, Individual", 1, "Summer"},
	{"Cross Country Skiing", "Cross Country Skiing Men's 4 x 10 kilometres Relay", 4, "Winter"},
	{"Biathlon", "Biathlon Women's 7.5 kilometres Sprint", 1, "Winter"},
	{"Ice Hockey", "Ice Hockey Men's Ice Hockey", 6, "Winter"},
	{"Alpine Skiing", "Alpine Skiing Women's Downhill", 1, "Winter"},
}

var medals = []string{"Gold", "Silver", "Bronze"}

const (
	firstSummer  = 1896
	firstWinter  = 1924
	lastGames    = 2016
	gamesEvery   = 4
	medalOneInN  = 6
	athletePool  = 40
	minAge       = 16
	ageSpread    = 20
	defaultRows  = 20_000
	checkCtxRows = 4096
)

// DefaultCountries is used when GenerateOptions.Countries is empty.
var DefaultCountries = []string{"USA", "GBR", "FRA", "GER", "ITA", "NOR", "SWE", "JPN", "CHN", "AUS", "KEN", "BRA"}

// GenerateDataset writes a synthetic athlete_events CSV to w.
func GenerateDataset(ctx context.Context, w io.Writer, opts GenerateOptions) (int, error) {
	if opts.Rows <= 0 {
		opts.Rows = defaultRows
	}
	if len(opts.Countries) == 0 {
		opts.Countries = DefaultCountries
	}
	noMedal := make(map[string]bool, len(opts.Medalless))
	for _, c := range opts.Medalless {
		noMedal[c] = true
	}
	nocs := append(append([]string{}, opts.Countries...), opts.Medalless...)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for rows < opts.Rows {
		if rows%checkCtxRows == 0 {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
		}
		ni := rng.IntN(len(nocs))
		noc := nocs[ni]
		ev := events[rng.IntN(len(events))]
		year := gamesYear(rng, ev.season)
		medal := "NA"
		if !noMedal[noc] && rng.IntN(medalOneInN) == 0 {
			medal = medals[rng.IntN(len(medals))]
		}
		sex := "M"
		if rng.IntN(2) == 0 {
			sex = "F"
		}

		// A team entry writes one row per member, all sharing the medal.
		start := rng.IntN(athletePool)
		for m := 0; m < ev.team && rows < opts.Rows; m++ {
			id := (start + m) % athletePool
			rec := []string{
				strconv.Itoa(ni*athletePool + id + 1),
				fmt.Sprintf("Athlete %s-%02d", noc, id),
				sex,
				strconv.Itoa(minAge + rng.IntN(ageSpread)),
				"NA", "NA",
				noc, noc,
				fmt.Sprintf("%d %s", year, ev.season),
				strconv.Itoa(year),
				ev.season,
				"Host City",
				ev.sport, ev.event,
				medal,
			}
			if err := cw.Write(rec); err != nil {
				return rows, fmt.Errorf("write row %d: %w", rows, err)
			}
			rows++
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("flush: %w", err)
	}
	return rows, nil
}

func gamesYear(rng *rand.Rand, season string) int {
	first := firstSummer
	if season == "Winter" {
		first = firstWinter
	}
	n := (lastGames-first)/gamesEvery + 1
	return first + rng.IntN(n)*gamesEvery
}
