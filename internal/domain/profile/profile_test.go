package profile_test

import (
	"fmt"
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/profile"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type mapDataset map[string][]model.Record

func (d mapDataset) Rows(noc string) []model.Record { return d[noc] }
func (d mapDataset) Has(noc string) bool            { return len(d[noc]) > 0 }

type panicDataset struct{}

func (panicDataset) Rows(string) []model.Record { panic("column Year missing") }

func row(name, gender string, year int, season, sport, event string, medal model.Medal) model.Record {
	return model.Record{
		Name:   name,
		Gender: gender,
		NOC:    "USA",
		Games:  fmt.Sprintf("%d %s", year, season),
		Year:   year,
		Season: season,
		Sport:  sport,
		Event:  event,
		Medal:  medal,
	}
}

func fixture() mapDataset {
	usa := []model.Record{
		row("Ann", "F", 2000, "Summer", "Swimming", "Swimming Women's 4x100 Relay", model.Gold),
		row("Beth", "F", 2000, "Summer", "Swimming", "Swimming Women's 4x100 Relay", model.Gold),
		row("Ann", "F", 2000, "Summer", "Swimming", "Swimming Women's 100m Freestyle", model.Silver),
		row("Carl", "M", 2000, "Summer", "Athletics", "Athletics Men's 100m", model.None),
		row("Ann", "F", 2004, "Summer", "Swimming", "Swimming Women's 100m Freestyle", model.Gold),
		row("Dan", "M", 2004, "Summer", "Rowing", "Rowing Men's Eights", model.Bronze),
		row("Carl", "M", 2004, "Summer", "Athletics", "Athletics Men's 100m", model.None),
		row("Carl", "M", 2004, "Summer", "Athletics", "Athletics Men's 200m", model.None),
		row("Eve", "F", 2006, "Winter", "Alpine Skiing", "Alpine Skiing Women's Slalom", model.None),
	}
	isl := []model.Record{
		row("Gunnar", "M", 1996, "Summer", "Judo", "Judo Men's Lightweight", model.None),
		row("Helga", "F", 1992, "Summer", "Swimming", "Swimming Women's 200m", model.None),
		row("Gunnar", "M", 1992, "Summer", "Judo", "Judo Men's Lightweight", model.None),
	}
	for i := range isl {
		isl[i].NOC = "ISL"
	}

	var wide []model.Record
	for i := 0; i < 12; i++ {
		sport := fmt.Sprintf("Sport%02d", i)
		r := row(fmt.Sprintf("Athlete%02d", i), "M", 2012, "Summer", sport, sport+" Final", model.Gold)
		r.NOC = "WID"
		wide = append(wide, r)
		if i%3 == 0 {
			r.Event += " Team"
			wide = append(wide, r)
		}
	}
	return mapDataset{"USA": usa, "ISL": isl, "WID": wide}
}

func sportsOf(rows []types.SportCount) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Sport
	}
	return out
}

func TestRenderStates(t *testing.T) {
	Convey("Given the fixture dataset", t, func() {
		ds := fixture()

		Convey("When no country is selected", func() {
			v := profile.Render(ds, "", 10)

			Convey("Then the view is the empty placeholder", func() {
				So(v.State, ShouldEqual, types.StateEmpty)
				So(v.Message, ShouldEqual, "Please select a country.")
				So(v.Header, ShouldBeNil)
				So(v.Profile, ShouldBeNil)
			})
		})

		Convey("When the country is absent from the dataset", func() {
			v := profile.Render(ds, "XYZ", 10)

			Convey("Then the view is NoData", func() {
				So(v.State, ShouldEqual, types.StateNoData)
				So(v.Message, ShouldEqual, "No data found for XYZ.")
				So(v.Header, ShouldBeNil)
			})
		})

		Convey("When the country participated without medals", func() {
			v := profile.Render(ds, "ISL", 10)

			Convey("Then the view is NoMedals with the participation span", func() {
				So(v.State, ShouldEqual, types.StateNoMedals)
				So(v.Profile, ShouldBeNil)
				So(v.NoMedals, ShouldResemble, &types.NoMedals{Games: 2, FirstYear: 1992, LastYear: 1996})
				So(v.Header.Subtitle, ShouldEqual, "Analyzing Olympic performance from 1992 to 1996")
			})
		})

		Convey("When the country has medals", func() {
			v := profile.Render(ds, "USA", 10, profile.WithLabel(func(noc string) string {
				return "United States - " + noc
			}))

			Convey("Then the view is populated", func() {
				So(v.State, ShouldEqual, types.StatePopulated)
				So(v.Label, ShouldEqual, "United States - USA")
				So(v.Header.Title, ShouldEqual, "Country Profile: USA")
				So(v.Header.FirstYear, ShouldEqual, 2000)
				So(v.Header.LastYear, ShouldEqual, 2006)
				So(v.NoMedals, ShouldBeNil)
			})

			Convey("Then team medals are counted once", func() {
				So(v.Profile.Medals, ShouldResemble, types.MedalSummary{Total: 4, Gold: 2, Silver: 1, Bronze: 1})
				m := v.Profile.Medals
				So(m.Gold+m.Silver+m.Bronze, ShouldEqual, m.Total)
			})

			Convey("Then the participation card is filled", func() {
				So(v.Profile.Participation, ShouldResemble, types.Participation{
					Games: 3, FirstYear: 2000, FirstMedalYear: 2000,
				})
			})

			Convey("Then top athletes count raw medal rows", func() {
				So(v.Profile.TopAthletes, ShouldResemble, []types.AthleteCount{
					{Name: "Ann", Medals: 3},
					{Name: "Beth", Medals: 1},
					{Name: "Dan", Medals: 1},
				})
			})

			Convey("Then medals per year are grouped by type with fixed colours", func() {
				series := v.Profile.MedalsByYear.Series
				So(v.Profile.MedalsByYear.Kind, ShouldEqual, types.ChartBar)
				So(len(series), ShouldEqual, 3)
				So(series[0].Name, ShouldEqual, "Gold")
				So(series[0].Color, ShouldEqual, "#FFD700")
				So(series[0].Points, ShouldResemble, []types.Point{{X: 2000, Y: 1}, {X: 2004, Y: 1}})
				So(series[1].Color, ShouldEqual, "#C0C0C0")
				So(series[2].Color, ShouldEqual, "#CD7F32")
				So(series[2].Points, ShouldResemble, []types.Point{{X: 2004, Y: 1}})
			})

			Convey("Then participation counts distinct athletes per gender", func() {
				series := v.Profile.ParticipationByGender.Series
				So(len(series), ShouldEqual, 2)
				So(series[0].Name, ShouldEqual, "F")
				So(series[0].Points, ShouldResemble, []types.Point{{X: 2000, Y: 2}, {X: 2004, Y: 1}, {X: 2006, Y: 1}})
				So(series[1].Name, ShouldEqual, "M")
				So(series[1].Points, ShouldResemble, []types.Point{{X: 2000, Y: 1}, {X: 2004, Y: 2}})
			})

			Convey("Then efficiency is zero for years without medals", func() {
				pts := v.Profile.Efficiency.Series[0].Points
				So(len(pts), ShouldEqual, 3)
				So(pts[0].Y, ShouldAlmostEqual, 2.0/3.0)
				So(pts[1].Y, ShouldAlmostEqual, 2.0/3.0)
				So(pts[2], ShouldResemble, types.Point{X: 2006, Y: 0})
				for _, p := range pts {
					So(p.Y, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})

			Convey("Then sports are ranked by unique medals", func() {
				So(v.Profile.TopSports, ShouldResemble, []types.SportCount{
					{Rank: 1, Sport: "Swimming", Medals: 3},
					{Rank: 2, Sport: "Rowing", Medals: 1},
				})
				So(v.Profile.WordCloud, ShouldResemble, []types.Word{
					{Text: "Swimming", Weight: 3},
					{Text: "Rowing", Weight: 1},
				})
			})
		})

		Convey("When rendering the same selection twice", func() {
			So(profile.Render(ds, "USA", 7), ShouldResemble, profile.Render(ds, "USA", 7))
		})
	})
}

func TestRenderTopN(t *testing.T) {
	Convey("Given a country with twelve medal sports", t, func() {
		ds := fixture()

		Convey("When N is 10 and then 5", func() {
			ten := profile.Render(ds, "WID", 10).Profile.TopSports
			five := profile.Render(ds, "WID", 5).Profile.TopSports

			Convey("Then the top 5 is a prefix of the top 10", func() {
				So(len(ten), ShouldEqual, 10)
				So(len(five), ShouldEqual, 5)
				So(sportsOf(ten)[:5], ShouldResemble, sportsOf(five))
				So(sportsOf(five)[:4], ShouldResemble, []string{"Sport00", "Sport03", "Sport06", "Sport09"})
			})
		})

		Convey("When N is out of range", func() {
			low := profile.Render(ds, "WID", 1)
			high := profile.Render(ds, "WID", 99)

			Convey("Then it is clamped to [3,30]", func() {
				So(low.TopN, ShouldEqual, 3)
				So(len(low.Profile.TopSports), ShouldEqual, 3)
				So(high.TopN, ShouldEqual, 30)
				So(len(high.Profile.TopSports), ShouldEqual, 12)
			})
		})

		Convey("When custom bounds and word limits are given", func() {
			v := profile.Render(ds, "WID", 50,
				profile.WithBounds(profile.Bounds{Min: 1, Max: 4, Default: 2}),
				profile.WithCloudWords(6),
				profile.WithTopAthletes(2),
			)

			So(v.TopN, ShouldEqual, 4)
			So(len(v.Profile.TopSports), ShouldEqual, 4)
			So(len(v.Profile.WordCloud), ShouldEqual, 6)
			So(len(v.Profile.TopAthletes), ShouldEqual, 2)
		})
	})
}

func TestRenderErrors(t *testing.T) {
	Convey("Given failing inputs", t, func() {
		Convey("When the dataset panics", func() {
			v := profile.Render(panicDataset{}, "USA", 10)

			Convey("Then the failure becomes an error view", func() {
				So(v.State, ShouldEqual, types.StateError)
				So(v.Message, ShouldEqual, "An error occurred while processing the data: column Year missing")
			})
		})

		Convey("When no dataset is loaded", func() {
			v := profile.Render(nil, "USA", 10)
			So(v.State, ShouldEqual, types.StateError)
			So(v.Message, ShouldContainSubstring, profile.ErrNoDataset.Error())
		})

		Convey("When a row carries an invalid year", func() {
			ds := mapDataset{"BAD": {{Name: "X", NOC: "BAD", Year: 0}}}
			v := profile.Render(ds, "BAD", 10)
			So(v.State, ShouldEqual, types.StateError)
			So(v.Message, ShouldContainSubstring, "invalid year")
		})
	})
}

func TestResolveSignal(t *testing.T) {
	Convey("Given the known country set", t, func() {
		ds := fixture()

		Convey("When a valid country is clicked", func() {
			sel, ok := profile.ResolveSignal(ds, "USA", "ISL")
			So(ok, ShouldBeTrue)
			So(sel, ShouldEqual, "ISL")
		})

		Convey("When an invalid value arrives", func() {
			for _, clicked := range []string{"", "ZZZ", "usa"} {
				sel, ok := profile.ResolveSignal(ds, "USA", clicked)
				So(ok, ShouldBeFalse)
				So(sel, ShouldEqual, "USA")
			}

			Convey("Then the rendered view is unchanged", func() {
				sel, _ := profile.ResolveSignal(ds, "USA", "ZZZ")
				So(profile.Render(ds, sel, 10), ShouldResemble, profile.Render(ds, "USA", 10))
			})
		})

		Convey("When no catalog is available", func() {
			sel, ok := profile.ResolveSignal(nil, "USA", "ISL")
			So(ok, ShouldBeFalse)
			So(sel, ShouldEqual, "USA")
		})
	})
}

func TestDefaultsAndClamp(t *testing.T) {
	Convey("Given country codes", t, func() {
		codes := []string{"AFG", "ISL", "USA"}
		So(profile.DefaultCountry(codes, "USA"), ShouldEqual, "USA")
		So(profile.DefaultCountry(codes, "FRA"), ShouldEqual, "AFG")
		So(profile.DefaultCountry(nil, "USA"), ShouldEqual, "")
	})

	Convey("Given top-N values", t, func() {
		So(profile.DefaultBounds.Clamp(0), ShouldEqual, 3)
		So(profile.DefaultBounds.Clamp(10), ShouldEqual, 10)
		So(profile.DefaultBounds.Clamp(31), ShouldEqual, 30)
	})
}

func TestParticipationSkipsMissingGender(t *testing.T) {
	Convey("Given athletes with and without a recorded gender", t, func() {
		rows := []model.Record{
			row("Ann", "F", 2000, "Summer", "Swimming", "Swimming Women's 100m", model.None),
			row("Pat", "", 2000, "Summer", "Rowing", "Rowing Mixed Pairs", model.None),
			row("Carl", "M", 2004, "Summer", "Athletics", "Athletics Men's 100m", model.None),
			row("Sam", "", 2004, "Summer", "Rowing", "Rowing Mixed Pairs", model.None),
		}

		Convey("Then only named genders become series", func() {
			series := profile.ParticipationByGender(profile.AthleteYears(rows)).Series
			So(len(series), ShouldEqual, 2)
			So(series[0].Name, ShouldEqual, "F")
			So(series[1].Name, ShouldEqual, "M")
			for _, s := range series {
				So(s.Name, ShouldNotBeBlank)
			}
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given the fixture country with both seasons", t, func() {
		c := profile.Compare("USA", "United States", fixture()["USA"])

		Convey("Then medals are the unique breakdown", func() {
			So(c.NOC, ShouldEqual, "USA")
			So(c.Label, ShouldEqual, "United States")
			So(c.Medals, ShouldResemble, types.MedalSummary{Total: 4, Gold: 2, Silver: 1, Bronze: 1})
		})

		Convey("Then participation is split by season", func() {
			series := c.Participation.Series
			So(len(series), ShouldEqual, 2)
			So(series[0].Name, ShouldEqual, "Summer")
			So(series[0].Color, ShouldEqual, "#FF6384")
			So(series[0].Points, ShouldResemble, []types.Point{{X: 2000, Y: 3}, {X: 2004, Y: 3}})
			So(series[1].Name, ShouldEqual, "Winter")
			So(series[1].Color, ShouldEqual, "#36A2EB")
			So(series[1].Points, ShouldResemble, []types.Point{{X: 2006, Y: 1}})
		})

		Convey("Then sports are ranked by distinct athletes", func() {
			So(c.Sports, ShouldEqual, 4)
			So(c.TopSports, ShouldResemble, []types.SportAthletes{
				{Rank: 1, Sport: "Swimming", Athletes: 2},
				{Rank: 2, Sport: "Athletics", Athletes: 1},
				{Rank: 3, Sport: "Rowing", Athletes: 1},
				{Rank: 4, Sport: "Alpine Skiing", Athletes: 1},
			})
		})
	})

	Convey("Given a country with twelve sports", t, func() {
		c := profile.Compare("WID", "Wide", fixture()["WID"])

		Convey("Then only the top ten are listed but every sport is counted", func() {
			So(len(c.TopSports), ShouldEqual, profile.CompareTopSports)
			So(c.Sports, ShouldEqual, 12)
		})
	})

	Convey("Given a summer-only country", t, func() {
		c := profile.Compare("ISL", "Iceland", fixture()["ISL"])
		So(len(c.Participation.Series), ShouldEqual, 1)
		So(c.Participation.Series[0].Name, ShouldEqual, "Summer")
		So(c.Medals, ShouldResemble, types.MedalSummary{})
	})
}

func TestTopSportByRows(t *testing.T) {
	Convey("Given rows with and without medals", t, func() {
		So(profile.TopSportByRows(fixture()["USA"]), ShouldEqual, "Swimming")
		So(profile.TopSportByRows(fixture()["ISL"]), ShouldEqual, "Judo")
	})

	Convey("Given a tie", t, func() {
		rows := []model.Record{
			row("Carl", "M", 2000, "Summer", "Athletics", "Athletics Men's 100m", model.None),
			row("Dan", "M", 2000, "Summer", "Rowing", "Rowing Men's Eights", model.Gold),
		}
		So(profile.TopSportByRows(rows), ShouldEqual, "Athletics")
	})

	Convey("Given rows without a sport", t, func() {
		So(profile.TopSportByRows([]model.Record{{Name: "Ann"}}), ShouldEqual, "")
	})
}
