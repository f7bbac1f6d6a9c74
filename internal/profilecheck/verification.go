package profilecheck

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/profile"
	"github.com/okian/podium/internal/domain/types"
)

// CheckView verifies the properties every rendered profile must hold.
// summary is the country's row of the index and may be nil.
func CheckView(noc string, v types.View, wantTopN int, summary *types.CountrySummary) []Violation {
	var out []Violation
	add := func(rule, format string, args ...any) {
		out = append(out, Violation{Country: noc, Rule: rule, Detail: fmt.Sprintf(format, args...)})
	}

	if v.Country != noc {
		add("country", "rendered %q", v.Country)
	}
	if v.TopN != wantTopN {
		add("top_n", "got %d want %d", v.TopN, wantTopN)
	}

	switch v.State {
	case types.StatePopulated:
		out = append(out, checkPopulated(noc, v, summary)...)
	case types.StateNoMedals:
		if v.Profile != nil || v.NoMedals == nil {
			add("no_medals_body", "profile set or no_medals missing")
			break
		}
		if v.NoMedals.FirstYear > v.NoMedals.LastYear {
			add("years", "first %d after last %d", v.NoMedals.FirstYear, v.NoMedals.LastYear)
		}
		if summary != nil && summary.Total != 0 {
			add("index_total", "index has %d medals", summary.Total)
		}
	case types.StateError:
		add("error_state", "%s", v.Message)
	default:
		add("state", "unexpected %q for a listed country", v.State)
	}
	return out
}

func checkPopulated(noc string, v types.View, summary *types.CountrySummary) []Violation {
	var out []Violation
	add := func(rule, format string, args ...any) {
		out = append(out, Violation{Country: noc, Rule: rule, Detail: fmt.Sprintf(format, args...)})
	}

	p := v.Profile
	if p == nil || v.NoMedals != nil {
		add("populated_body", "profile missing or no_medals set")
		return out
	}
	if want := "Country Profile: " + noc; v.Header == nil || v.Header.Title != want {
		add("header", "title is not %q", want)
	}

	m := p.Medals
	if m.Gold+m.Silver+m.Bronze != m.Total {
		add("medal_breakdown", "%d+%d+%d != %d", m.Gold, m.Silver, m.Bronze, m.Total)
	}
	if m.Total == 0 {
		add("medal_breakdown", "populated with zero medals")
	}
	if summary != nil && summary.Total != m.Total {
		add("index_total", "index %d profile %d", summary.Total, m.Total)
	}
	if p.Participation.FirstMedalYear < p.Participation.FirstYear {
		add("years", "first medal %d before first appearance %d", p.Participation.FirstMedalYear, p.Participation.FirstYear)
	}

	if len(p.TopAthletes) > maxTopAthletes {
		add("top_athletes", "%d entries", len(p.TopAthletes))
	}
	for i := 1; i < len(p.TopAthletes); i++ {
		if p.TopAthletes[i].Medals > p.TopAthletes[i-1].Medals {
			add("top_athletes", "not ordered at %d", i)
		}
	}

	if len(p.TopSports) > v.TopN {
		add("top_sports", "%d rows for top %d", len(p.TopSports), v.TopN)
	}
	sum := 0
	for i, s := range p.TopSports {
		sum += s.Medals
		if s.Rank != i+1 {
			add("top_sports", "rank %d at row %d", s.Rank, i)
		}
		if i > 0 && s.Medals > p.TopSports[i-1].Medals {
			add("top_sports", "not ordered at %d", i)
		}
	}
	if sum > m.Total {
		add("top_sports", "sports sum %d exceeds total %d", sum, m.Total)
	}

	for _, s := range p.Efficiency.Series {
		for _, pt := range s.Points {
			if pt.Y < 0 {
				add("efficiency", "%d is negative", pt.X)
			}
		}
	}
	for _, s := range p.MedalsByYear.Series {
		if want := profile.MedalColors[model.Medal(s.Name)]; s.Color != want {
			add("medal_colors", "%s is %s", s.Name, s.Color)
		}
	}
	return out
}

// CheckPrefix verifies that a shorter top-N sports table is a prefix of a longer one.
func CheckPrefix(noc string, short, long types.View) []Violation {
	if short.Profile == nil || long.Profile == nil {
		return nil
	}
	a, b := short.Profile.TopSports, long.Profile.TopSports
	if len(a) > len(b) {
		return []Violation{{Country: noc, Rule: "top_prefix", Detail: fmt.Sprintf("top %d has %d rows, top %d has %d", short.TopN, len(a), long.TopN, len(b))}}
	}
	for i := range a {
		if a[i] != b[i] {
			return []Violation{{Country: noc, Rule: "top_prefix", Detail: fmt.Sprintf("row %d differs: %v vs %v", i, a[i], b[i])}}
		}
	}
	return nil
}
