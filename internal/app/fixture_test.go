package service_test

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func rec(noc, name, gender string, year int, sport, event string, medal model.Medal) model.Record {
	return model.Record{
		ID:     noc + "-" + name,
		Name:   name,
		Gender: gender,
		NOC:    noc,
		Games:  fmt.Sprintf("%d Summer", year),
		Year:   year,
		Season: "Summer",
		Sport:  sport,
		Event:  event,
		Medal:  medal,
	}
}

func fixtureRecords() []model.Record {
	return []model.Record{
		rec("USA", "Ann", "F", 2000, "Swimming", "Relay", model.Gold),
		rec("USA", "Beth", "F", 2000, "Swimming", "Relay", model.Gold),
		rec("USA", "Carl", "M", 2000, "Athletics", "100m", model.None),
		rec("USA", "Dan", "M", 2004, "Rowing", "Eights", model.Bronze),
		rec("NOR", "Lars", "M", 1994, "Biathlon", "Sprint", model.Silver),
		rec("ISL", "Gunnar", "M", 1992, "Judo", "Lightweight", model.None),
		rec("ISL", "Gunnar", "M", 1996, "Judo", "Lightweight", model.None),
	}
}

func fixtureRegions() []model.Region {
	return []model.Region{
		{NOC: "USA", Region: "USA"},
		{NOC: "NOR", Region: "Norway"},
		{NOC: "ISL", Region: "Iceland"},
	}
}
