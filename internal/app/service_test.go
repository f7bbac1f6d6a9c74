package service_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/okian/podium/internal/adapters/session"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func startedService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithRecords(fixtureRecords(), fixtureRegions()),
		service.WithIndexWorkers(2),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Bounds().Min, ShouldEqual, 3)
			So(svc.Bounds().Max, ShouldEqual, 30)
			So(svc.Bounds().Default, ShouldEqual, 10)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTopNBounds(2, 8, 20),
			service.WithTopAthletes(3),
			service.WithWordCloud(10, 400, 200),
			service.WithIndexWorkers(4),
			service.WithSessionLimits(time.Hour, 10),
		)

		Convey("Then the default top-N is clamped into the bounds", func() {
			So(svc.Bounds().Default, ShouldEqual, 8)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a service with an injected dataset", t, func() {
		svc := service.New(service.WithRecords(fixtureRecords(), fixtureRegions()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["rows"], ShouldEqual, 7)
				So(stats["countries"], ShouldEqual, 3)
				So(stats["defaultCountry"], ShouldEqual, "USA")
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})

		Convey("When stopping the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				So(svc.Known("USA"), ShouldBeFalse)
			})

			Convey("And starting again serves the same data and sessions", func() {
				So(svc.Start(ctx), ShouldBeNil)
				defer svc.Stop()

				So(svc.GetStats()["rows"], ShouldEqual, 7)
				So(svc.Profile(ctx, "USA", 10).State, ShouldEqual, types.StatePopulated)
				So(svc.Remember(ctx, "s1", "NOR"), ShouldBeNil)
				So(svc.Selected(ctx, "s1"), ShouldEqual, "NOR")
			})
		})
	})

	Convey("Given a preferred country missing from the data", t, func() {
		svc := startedService(service.WithDefaultCountry("FRA"))
		defer svc.Stop()

		Convey("Then the first sorted code is the default", func() {
			So(svc.DefaultCountry(), ShouldEqual, "ISL")
		})
	})
}

func TestService_NotStarted(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then data operations report ErrNotStarted", func() {
			_, err := svc.Options(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Countries(ctx, "")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.WordCloud(ctx, "USA")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("Then a profile render becomes an error view", func() {
			v := svc.Profile(ctx, "USA", 10)
			So(v.State, ShouldEqual, types.StateError)
		})

		Convey("Then stats report the service as stopped", func() {
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Profile(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When rendering a medal-winning country", func() {
			v := svc.Profile(ctx, "USA", 10)

			Convey("Then the view is populated and labelled", func() {
				So(v.State, ShouldEqual, types.StatePopulated)
				So(v.Label, ShouldEqual, "United States - USA 🇺🇸")
				So(v.Profile.Medals.Total, ShouldEqual, 2)
			})
		})

		Convey("When rendering each state", func() {
			So(svc.Profile(ctx, "", 10).State, ShouldEqual, types.StateEmpty)
			So(svc.Profile(ctx, "XYZ", 10).State, ShouldEqual, types.StateNoData)
			So(svc.Profile(ctx, "ISL", 10).State, ShouldEqual, types.StateNoMedals)
		})

		Convey("When the options are requested", func() {
			opts, err := svc.Options(ctx)
			So(err, ShouldBeNil)
			So(opts.Default, ShouldEqual, "USA")
			So(len(opts.Countries), ShouldEqual, 3)
			So(opts.Countries[0], ShouldResemble, types.CountryOption{Value: "ISL", Label: "Iceland - ISL 🇮🇸"})
			So(opts.TopN, ShouldResemble, types.TopNBounds{Default: 10, Min: 3, Max: 30})
		})
	})
}

func TestService_WordCloud(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(service.WithWordCloud(20, 320, 160))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When rendering a country with medals", func() {
			data, err := svc.WordCloud(ctx, "USA")

			Convey("Then a PNG of the configured size is returned", func() {
				So(err, ShouldBeNil)
				img, err := png.Decode(bytes.NewReader(data))
				So(err, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldEqual, 320)
				So(img.Bounds().Dy(), ShouldEqual, 160)
			})
		})

		Convey("When the country has no medals", func() {
			_, err := svc.WordCloud(ctx, "ISL")
			So(errors.Is(err, service.ErrNoMedals), ShouldBeTrue)
		})

		Convey("When the country is unknown", func() {
			_, err := svc.WordCloud(ctx, "XYZ")
			So(errors.Is(err, service.ErrUnknownCountry), ShouldBeTrue)
		})
	})
}

func TestService_Countries(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When listing every country", func() {
			all, err := svc.Countries(ctx, "")

			Convey("Then the index is sorted by code with medal totals", func() {
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 3)
				So(all[2], ShouldResemble, types.CountrySummary{
					NOC: "USA", Name: "United States", Region: "USA", Flag: "🇺🇸",
					Gold: 1, Bronze: 1, Total: 2, Athletes: 4, TopSport: "Swimming",
				})
				So(all[0].Athletes, ShouldEqual, 1)
				So(all[0].TopSport, ShouldEqual, "Judo")
			})
		})

		Convey("When searching", func() {
			byName, _ := svc.Countries(ctx, "norw")
			byCode, _ := svc.Countries(ctx, " isl ")
			none, _ := svc.Countries(ctx, "atlantis")

			So(len(byName), ShouldEqual, 1)
			So(byName[0].NOC, ShouldEqual, "NOR")
			So(len(byCode), ShouldEqual, 1)
			So(byCode[0].NOC, ShouldEqual, "ISL")
			So(none, ShouldBeEmpty)
		})
	})
}

func TestService_Sessions(t *testing.T) {
	Convey("Given a started service with a memory session store", t, func() {
		store := session.NewMemoryStore()
		svc := startedService(service.WithSessionStore(store))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When nothing was selected", func() {
			So(svc.Selected(ctx, "s1"), ShouldEqual, "USA")
			So(svc.Selected(ctx, ""), ShouldEqual, "USA")
		})

		Convey("When a selection is remembered", func() {
			So(svc.Remember(ctx, "s1", "NOR"), ShouldBeNil)

			Convey("Then the session returns it", func() {
				So(svc.Selected(ctx, "s1"), ShouldEqual, "NOR")
				So(svc.Selected(ctx, "s2"), ShouldEqual, "USA")
			})
		})

		Convey("When an unknown country is remembered", func() {
			So(svc.Remember(ctx, "s1", "XYZ"), ShouldBeNil)
			So(svc.Selected(ctx, "s1"), ShouldEqual, "USA")
		})

		Convey("When a valid country is clicked", func() {
			sel, accepted, err := svc.Signal(ctx, "s1", "ISL")

			Convey("Then the selection moves", func() {
				So(err, ShouldBeNil)
				So(accepted, ShouldBeTrue)
				So(sel, ShouldResemble, types.Selection{Country: "ISL", Changed: true})
				So(svc.Selected(ctx, "s1"), ShouldEqual, "ISL")
			})

			Convey("And clicking it again does not change it", func() {
				sel, accepted, _ := svc.Signal(ctx, "s1", "ISL")
				So(accepted, ShouldBeTrue)
				So(sel.Changed, ShouldBeFalse)
			})
		})

		Convey("When an invalid value is clicked", func() {
			So(svc.Remember(ctx, "s1", "NOR"), ShouldBeNil)
			sel, accepted, err := svc.Signal(ctx, "s1", "ATLANTIS")

			Convey("Then the selection is left alone", func() {
				So(err, ShouldBeNil)
				So(accepted, ShouldBeFalse)
				So(sel, ShouldResemble, types.Selection{Country: "NOR"})
				So(svc.Selected(ctx, "s1"), ShouldEqual, "NOR")
			})
		})
	})
}

func TestService_CallerOwnedSessions(t *testing.T) {
	Convey("Given a service using a session store it did not create", t, func() {
		ctx := context.Background()
		store := session.NewMemoryStore()
		svc := startedService(service.WithSessionStore(store))
		So(svc.Remember(ctx, "s1", "NOR"), ShouldBeNil)

		Convey("When the service stops and starts again", func() {
			svc.Stop()
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the store is still open and keeps the selection", func() {
				So(svc.Selected(ctx, "s1"), ShouldEqual, "NOR")
				So(store.Set(ctx, "s2", "ISL"), ShouldBeNil)
				So(store.Len(), ShouldEqual, 2)
			})
		})
	})
}

func TestService_Compare(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When two known countries are compared", func() {
			c, err := svc.Compare(ctx, "USA", "NOR")

			Convey("Then both columns come back in request order", func() {
				So(err, ShouldBeNil)
				So(len(c.Countries), ShouldEqual, 2)
				usa, nor := c.Countries[0], c.Countries[1]
				So(usa.NOC, ShouldEqual, "USA")
				So(usa.Label, ShouldEqual, "United States - USA 🇺🇸")
				So(usa.Medals, ShouldResemble, types.MedalSummary{Total: 2, Gold: 1, Bronze: 1})
				So(usa.Sports, ShouldEqual, 3)
				So(usa.TopSports[0], ShouldResemble, types.SportAthletes{Rank: 1, Sport: "Swimming", Athletes: 2})
				So(usa.Participation.Series[0].Points, ShouldResemble, []types.Point{{X: 2000, Y: 3}, {X: 2004, Y: 1}})
				So(nor.Medals, ShouldResemble, types.MedalSummary{Total: 1, Silver: 1})
			})
		})

		Convey("When a country is compared with itself", func() {
			c, err := svc.Compare(ctx, "ISL", "ISL")
			So(err, ShouldBeNil)
			So(c.Countries[0], ShouldResemble, c.Countries[1])
			So(c.Countries[0].Medals.Total, ShouldEqual, 0)
		})

		Convey("When the first code is unknown", func() {
			_, err := svc.Compare(ctx, "XYZ", "USA")
			So(errors.Is(err, service.ErrUnknownCountry), ShouldBeTrue)
		})

		Convey("When the second code is unknown", func() {
			_, err := svc.Compare(ctx, "USA", "XYZ")
			So(errors.Is(err, service.ErrUnknownCountry), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "XYZ")
		})
	})

	Convey("Given a service that was never started", t, func() {
		_, err := service.New().Compare(context.Background(), "USA", "NOR")
		So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(service.WithWordCloud(20, 320, 160))
		defer svc.Stop()

		Convey("Then stats describe the loaded components", func() {
			stats := svc.GetStats()
			So(stats["wordCloudSize"], ShouldEqual, "320x160")
			So(stats["countryTable"], ShouldBeGreaterThan, 100)
			So(stats["sessions"], ShouldEqual, 0)
		})
	})
}
