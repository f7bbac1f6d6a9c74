package profile

import (
	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
	"github.com/okian/podium/internal/domain/types"
)

// CompareTopSports is how many sports a comparison column lists.
const CompareTopSports = 10

// SeasonColors maps Games seasons to their line colours.
var SeasonColors = map[string]string{ //nolint:gochecknoglobals // read-only palette
	"Summer": "#FF6384",
	"Winter": "#36A2EB",
}

var seasons = []string{"Summer", "Winter"} //nolint:gochecknoglobals // fixed series order

type seasonAthlete struct {
	year   int
	season string
	name   string
}

type sportAthlete struct {
	sport string
	name  string
}

// ParticipationBySeason counts distinct athletes per year, one series per
// season. Seasons the country never attended get no series.
func ParticipationBySeason(rows []model.Record) types.Chart {
	distinct := dedupe.Filter(rows, func(r model.Record) seasonAthlete {
		return seasonAthlete{year: r.Year, season: r.Season, name: r.Name}
	})
	counts := make(map[string]map[int]int, len(seasons))
	for _, r := range distinct {
		if _, known := SeasonColors[r.Season]; !known {
			continue
		}
		byYear, ok := counts[r.Season]
		if !ok {
			byYear = make(map[int]int)
			counts[r.Season] = byYear
		}
		byYear[r.Year]++
	}

	chart := types.Chart{
		Kind:        types.ChartLine,
		Title:       "Olympic Athletes by Season",
		XTitle:      "Year",
		YTitle:      "Number of Athletes",
		LegendTitle: "Season",
		Series:      []types.Series{},
	}
	for _, s := range seasons {
		byYear, ok := counts[s]
		if !ok {
			continue
		}
		chart.Series = append(chart.Series, types.Series{Name: s, Color: SeasonColors[s], Points: points(byYear)})
	}
	return chart
}

// SportsByAthletes ranks sports by distinct athletes and reports how many
// sports the country entered at all.
func SportsByAthletes(rows []model.Record, n int) (top []types.SportAthletes, sports int) {
	named := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if r.Sport != "" {
			named = append(named, r)
		}
	}
	distinct := dedupe.Filter(named, func(r model.Record) sportAthlete {
		return sportAthlete{sport: r.Sport, name: r.Name}
	})
	counter := ranking.Count(distinct, func(r model.Record) string { return r.Sport })

	items := counter.Top(n)
	top = make([]types.SportAthletes, len(items))
	for i, it := range items {
		top[i] = types.SportAthletes{Rank: i + 1, Sport: it.Key, Athletes: it.Count}
	}
	return top, counter.Len()
}

// Compare builds one comparison column from a country's rows.
func Compare(noc, label string, rows []model.Record) types.CountryComparison {
	top, sports := SportsByAthletes(rows, CompareTopSports)
	return types.CountryComparison{
		NOC:           noc,
		Label:         label,
		Medals:        Summarize(UniqueMedals(MedalRows(rows))),
		Participation: ParticipationBySeason(rows),
		Sports:        sports,
		TopSports:     top,
	}
}

// TopSportByRows returns the sport with the most rows, medals or not.
// Ties keep the sport seen first.
func TopSportByRows(rows []model.Record) string {
	c := ranking.NewCounter[string]()
	for _, r := range rows {
		if r.Sport != "" {
			c.Add(r.Sport)
		}
	}
	top := c.Top(1)
	if len(top) == 0 {
		return ""
	}
	return top[0].Key
}
