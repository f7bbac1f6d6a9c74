package profile

import (
	"sort"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
	"github.com/okian/podium/internal/domain/types"
)

// MedalColors maps medal series to their fixed chart colours.
var MedalColors = map[model.Medal]string{ //nolint:gochecknoglobals // read-only palette
	model.Gold:   "#FFD700",
	model.Silver: "#C0C0C0",
	model.Bronze: "#CD7F32",
}

// MedalRows returns rows that carry a medal, in input order.
func MedalRows(rows []model.Record) []model.Record {
	out := make([]model.Record, 0, len(rows)/4)
	for _, r := range rows {
		if r.HasMedal() {
			out = append(out, r)
		}
	}
	return out
}

// UniqueMedals keeps the first row of every (Year, Season, Event, Medal).
// Team events produce one row per athlete; they count once.
func UniqueMedals(medals []model.Record) []model.Record {
	return dedupe.Filter(medals, model.Record.Key)
}

// AthleteYears keeps the first row of every (Year, Name).
func AthleteYears(rows []model.Record) []model.Record {
	return dedupe.Filter(rows, func(r model.Record) model.AthleteYear {
		return model.AthleteYear{Year: r.Year, Name: r.Name}
	})
}

// Summarize breaks unique medals down by type.
func Summarize(unique []model.Record) types.MedalSummary {
	var s types.MedalSummary
	for _, r := range unique {
		switch r.Medal {
		case model.Gold:
			s.Gold++
		case model.Silver:
			s.Silver++
		case model.Bronze:
			s.Bronze++
		default:
			continue
		}
		s.Total++
	}
	return s
}

// YearSpan returns the first and last year in rows.
func YearSpan(rows []model.Record) (first, last int) {
	for i, r := range rows {
		if i == 0 || r.Year < first {
			first = r.Year
		}
		if i == 0 || r.Year > last {
			last = r.Year
		}
	}
	return first, last
}

// GamesCount counts distinct non-empty Games labels.
func GamesCount(rows []model.Record) int {
	seen := dedupe.New[string]()
	for _, r := range rows {
		if r.Games != "" {
			seen.SeenAndRecord(r.Games)
		}
	}
	return seen.Size()
}

// TopAthletes ranks athletes by raw medal rows.
func TopAthletes(medals []model.Record, n int) []types.AthleteCount {
	top := ranking.Count(medals, func(r model.Record) string { return r.Name }).Top(n)
	out := make([]types.AthleteCount, len(top))
	for i, it := range top {
		out[i] = types.AthleteCount{Name: it.Key, Medals: it.Count}
	}
	return out
}

// TopSports ranks sports by unique medals.
func TopSports(unique []model.Record, n int) []types.SportCount {
	top := ranking.Count(unique, func(r model.Record) string { return r.Sport }).Top(n)
	out := make([]types.SportCount, len(top))
	for i, it := range top {
		out[i] = types.SportCount{Rank: i + 1, Sport: it.Key, Medals: it.Count}
	}
	return out
}

// CloudWords weights the top sports for the word cloud.
func CloudWords(unique []model.Record, n int) []types.Word {
	top := ranking.Count(unique, func(r model.Record) string { return r.Sport }).Top(n)
	out := make([]types.Word, len(top))
	for i, it := range top {
		out[i] = types.Word{Text: it.Key, Weight: it.Count}
	}
	return out
}

// MedalsByYear builds the grouped bar chart of unique medals per year and type.
// Only medal types present get a series; years without that medal are omitted.
func MedalsByYear(unique []model.Record) types.Chart {
	counts := make(map[model.Medal]map[int]int, len(model.MedalOrder))
	for _, r := range unique {
		byYear, ok := counts[r.Medal]
		if !ok {
			byYear = make(map[int]int)
			counts[r.Medal] = byYear
		}
		byYear[r.Year]++
	}

	chart := types.Chart{
		Kind:        types.ChartBar,
		Title:       "Medal Types Won Over Time",
		XTitle:      "Year",
		YTitle:      "Medals Won",
		LegendTitle: "Medal Type",
		Series:      []types.Series{},
	}
	for _, m := range model.MedalOrder {
		byYear, ok := counts[m]
		if !ok {
			continue
		}
		chart.Series = append(chart.Series, types.Series{
			Name:   string(m),
			Color:  MedalColors[m],
			Points: points(byYear),
		})
	}
	return chart
}

// ParticipationByGender counts distinct athletes per year, one series per gender.
func ParticipationByGender(athleteYears []model.Record) types.Chart {
	counts := make(map[string]map[int]int)
	for _, r := range athleteYears {
		if r.Gender == "" {
			continue
		}
		byYear, ok := counts[r.Gender]
		if !ok {
			byYear = make(map[int]int)
			counts[r.Gender] = byYear
		}
		byYear[r.Year]++
	}

	genders := make([]string, 0, len(counts))
	for g := range counts {
		genders = append(genders, g)
	}
	sort.Strings(genders)

	chart := types.Chart{
		Kind:        types.ChartLine,
		Title:       "Athlete Participation by Gender",
		XTitle:      "Year",
		YTitle:      "Number of Athletes",
		LegendTitle: "Gender",
		Series:      make([]types.Series, 0, len(genders)),
	}
	for _, g := range genders {
		chart.Series = append(chart.Series, types.Series{Name: g, Points: points(counts[g])})
	}
	return chart
}

// Efficiency divides unique medals by distinct athletes for every year the
// country competed. Years without medals are 0.
func Efficiency(athleteYears, unique []model.Record) types.Chart {
	athletes := make(map[int]int)
	for _, r := range athleteYears {
		athletes[r.Year]++
	}
	medals := make(map[int]int)
	for _, r := range unique {
		medals[r.Year]++
	}

	years := sortedYears(athletes)
	pts := make([]types.Point, 0, len(years))
	for _, y := range years {
		pts = append(pts, types.Point{X: y, Y: float64(medals[y]) / float64(athletes[y])})
	}

	return types.Chart{
		Kind:   types.ChartLine,
		Title:  "Medal Efficiency Over Time",
		XTitle: "Year",
		YTitle: "Medals per Athlete",
		Series: []types.Series{{Name: "Efficiency", Points: pts}},
	}
}

func points(byYear map[int]int) []types.Point {
	years := sortedYears(byYear)
	pts := make([]types.Point, len(years))
	for i, y := range years {
		pts[i] = types.Point{X: y, Y: float64(byYear[y])}
	}
	return pts
}

func sortedYears(m map[int]int) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
