package service_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const integrationAthletes = `ID,Name,Sex,Age,Height,Weight,Team,NOC,Games,Year,Season,City,Sport,Event,Medal
1,Ann,F,22,NA,NA,United States,USA,2000 Summer,2000,Summer,Sydney,Swimming,Swimming Women's 4 x 100 metres Freestyle Relay,Gold
2,Beth,F,23,NA,NA,United States,USA,2000 Summer,2000,Summer,Sydney,Swimming,Swimming Women's 4 x 100 metres Freestyle Relay,Gold
1,Ann,F,26,NA,NA,United States,USA,2004 Summer,2004,Summer,Athina,Swimming,Swimming Women's 100 metres Freestyle,Silver
3,Carl,M,30,NA,NA,United States,USA,2004 Summer,2004,Summer,Athina,Athletics,Athletics Men's Marathon,NA
4,Lars,M,25,NA,NA,Norway,NOR,1994 Winter,1994,Winter,Lillehammer,Biathlon,Biathlon Men's 10 kilometres Sprint,Bronze
5,Gunnar,M,25,NA,NA,Iceland,ISL,1992 Summer,1992,Summer,Barcelona,Judo,Judo Men's Lightweight,NA
6,Bad,M,25,NA,NA,Iceland,ISL,1992 Summer,NA,Summer,Barcelona,Judo,Judo Men's Lightweight,NA
`

const integrationRegions = `NOC,region,notes
USA,USA,
NOR,Norway,
ISL,Iceland,
`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service reading CSV files", t, func() {
		dir := t.TempDir()
		athletes := filepath.Join(dir, "athlete_events.csv")
		regions := filepath.Join(dir, "noc_regions.csv")
		So(os.WriteFile(athletes, []byte(integrationAthletes), 0o600), ShouldBeNil)
		So(os.WriteFile(regions, []byte(integrationRegions), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithDataPaths(athletes, regions),
			service.WithDefaultCountry("NOR"),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then the files are loaded", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["rows"], ShouldEqual, 6)
				So(stats["skippedRows"], ShouldEqual, 1)
				So(svc.DefaultCountry(), ShouldEqual, "NOR")
			})

			Convey("And the USA profile counts the relay once", func() {
				v := svc.Profile(ctx, "USA", 10)
				So(v.State, ShouldEqual, types.StatePopulated)
				So(v.Header.Subtitle, ShouldEqual, "Analyzing Olympic performance from 2000 to 2004")
				So(v.Profile.Medals, ShouldResemble, types.MedalSummary{Total: 2, Gold: 1, Silver: 1})
				So(v.Profile.TopAthletes[0], ShouldResemble, types.AthleteCount{Name: "Ann", Medals: 2})
				So(v.Profile.Participation.Games, ShouldEqual, 2)
			})

			Convey("And concurrent sessions render independently", func() {
				var wg sync.WaitGroup
				views := make([]types.View, 32)
				codes := []string{"USA", "NOR", "ISL", "XYZ"}
				for i := range views {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						views[i] = svc.Profile(ctx, codes[i%len(codes)], 5+i%10)
					}(i)
				}
				wg.Wait()

				for i, v := range views {
					want := svc.Profile(ctx, codes[i%len(codes)], 5+i%10)
					So(v, ShouldResemble, want)
				}
			})
		})

		Convey("When the athletes file is missing", func() {
			broken := service.New(service.WithDataPaths(filepath.Join(dir, "missing.csv"), ""))
			err := broken.Start(ctx)

			Convey("Then Start fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "load dataset")
			})
		})
	})
}
