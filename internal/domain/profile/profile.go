// Package profile renders the country profile page from the shared dataset.
//
// Render is a pure function of (dataset, country, topN): every aggregate is
// recomputed on each call and nothing is cached between renders.
package profile

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
)

// Messages shown for the non-populated states.
const (
	MsgSelectCountry = "Please select a country."
	msgNoData        = "No data found for %s."
	MsgNoMedals      = "This country has participated in the Olympics but has not won any medals yet."
	msgError         = "An error occurred while processing the data: %s"
)

// Dataset is the read-only event table.
type Dataset interface {
	// Rows returns the rows of one country in source order. Callers must not modify them.
	Rows(noc string) []model.Record
}

// Catalog answers whether a country code is part of the known domain.
type Catalog interface {
	Has(noc string) bool
}

// Render computes the view for noc with the top-N sports parameter.
// Failures never escape: they become a StateError view carrying the failure text.
func Render(ds Dataset, noc string, topN int, opts ...Option) (view types.View) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	topN = o.bounds.Clamp(topN)

	if noc == "" {
		return types.View{State: types.StateEmpty, TopN: topN, Message: MsgSelectCountry}
	}

	defer func() {
		if r := recover(); r != nil {
			view = errorView(noc, topN, fmt.Errorf("%v", r))
		}
	}()

	v, err := render(ds, noc, topN, &o)
	if err != nil {
		return errorView(noc, topN, err)
	}
	return v
}

func render(ds Dataset, noc string, topN int, o *options) (types.View, error) {
	if ds == nil {
		return types.View{}, ErrNoDataset
	}

	rows := ds.Rows(noc)
	if len(rows) == 0 {
		return types.View{
			State:   types.StateNoData,
			Country: noc,
			TopN:    topN,
			Message: fmt.Sprintf(msgNoData, noc),
		}, nil
	}
	for _, r := range rows {
		if r.Year <= 0 {
			return types.View{}, fmt.Errorf("%w %d for %s", ErrInvalidYear, r.Year, r.Name)
		}
	}

	first, last := YearSpan(rows)
	v := types.View{
		Country: noc,
		Label:   o.label(noc),
		TopN:    topN,
		Header: &types.Header{
			Title:     fmt.Sprintf("Country Profile: %s", noc),
			Subtitle:  fmt.Sprintf("Analyzing Olympic performance from %d to %d", first, last),
			FirstYear: first,
			LastYear:  last,
		},
	}

	medals := MedalRows(rows)
	if len(medals) == 0 {
		v.State = types.StateNoMedals
		v.Message = MsgNoMedals
		v.NoMedals = &types.NoMedals{Games: GamesCount(rows), FirstYear: first, LastYear: last}
		return v, nil
	}

	unique := UniqueMedals(medals)
	athleteYears := AthleteYears(rows)
	firstMedal, _ := YearSpan(unique)

	v.State = types.StatePopulated
	v.Profile = &types.Profile{
		Medals: Summarize(unique),
		Participation: types.Participation{
			Games:          GamesCount(rows),
			FirstYear:      first,
			FirstMedalYear: firstMedal,
		},
		TopAthletes:           TopAthletes(medals, o.topAthletes),
		MedalsByYear:          MedalsByYear(unique),
		ParticipationByGender: ParticipationByGender(athleteYears),
		Efficiency:            Efficiency(athleteYears, unique),
		TopSports:             TopSports(unique, topN),
		WordCloud:             CloudWords(unique, o.cloudWords),
	}
	return v, nil
}

func errorView(noc string, topN int, err error) types.View {
	return types.View{
		State:   types.StateError,
		Country: noc,
		TopN:    topN,
		Message: fmt.Sprintf(msgError, err),
	}
}

// ResolveSignal applies a cross-page "clicked country" value.
// Unknown or empty values are ignored: current is returned with ok == false.
func ResolveSignal(known Catalog, current, clicked string) (string, bool) {
	if clicked == "" || known == nil || !known.Has(clicked) {
		return current, false
	}
	return clicked, true
}

// DefaultCountry picks the initial selection: preferred when known, else the
// first code, else "".
func DefaultCountry(codes []string, preferred string) string {
	for _, c := range codes {
		if c == preferred {
			return c
		}
	}
	if len(codes) > 0 {
		return codes[0]
	}
	return ""
}
