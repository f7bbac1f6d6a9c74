package countrymeta

import (
	"errors"
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFlag(t *testing.T) {
	Convey("Given ISO codes", t, func() {
		So(Flag("US"), ShouldEqual, "🇺🇸")
		So(Flag("no"), ShouldEqual, "🇳🇴")
		So(Flag(""), ShouldEqual, "")
		So(Flag("USA"), ShouldEqual, "")
		So(Flag("1A"), ShouldEqual, "")
	})
}

func TestEmbeddedTable(t *testing.T) {
	Convey("Given the embedded table", t, func() {
		table, err := New(WithRegions([]model.Region{
			{NOC: "AHO", Region: "Curacao"},
			{NOC: "USA", Region: "USA"},
		}))
		So(err, ShouldBeNil)
		So(table.Len(), ShouldBeGreaterThan, 100)

		Convey("When looking up a known code", func() {
			c, ok := table.Lookup("USA")

			Convey("Then name and flag are resolved", func() {
				So(ok, ShouldBeTrue)
				So(c.Name, ShouldEqual, "United States")
				So(c.Flag, ShouldEqual, "🇺🇸")
				So(table.Label("USA"), ShouldEqual, "United States - USA 🇺🇸")
			})
		})

		Convey("When a historic code has no flag", func() {
			So(table.Label("GDR"), ShouldEqual, "East Germany - GDR")
		})

		Convey("When a code has an explicit flag", func() {
			So(table.Label("URS"), ShouldEqual, "Soviet Union - URS ☭")
		})

		Convey("When a code is absent from the table", func() {
			Convey("Then the label falls back to the raw code", func() {
				So(table.Label("AHO"), ShouldEqual, "AHO")
				So(table.Label("ZZZ"), ShouldEqual, "ZZZ")
			})

			Convey("Then the name falls back to the region, then the code", func() {
				So(table.Name("AHO"), ShouldEqual, "Curacao")
				So(table.Name("ZZZ"), ShouldEqual, "ZZZ")
				So(table.Region("AHO"), ShouldEqual, "Curacao")
			})
		})

		Convey("When building options", func() {
			opts := table.Options([]string{"NOR", "ZZZ"})
			So(opts, ShouldResemble, []types.CountryOption{
				{Value: "NOR", Label: "Norway - NOR 🇳🇴"},
				{Value: "ZZZ", Label: "ZZZ"},
			})
		})
	})
}

func TestCustomTable(t *testing.T) {
	Convey("Given custom YAML", t, func() {
		Convey("When it is valid", func() {
			table, err := New(WithData([]byte("countries:\n  abc: {name: Alphabet, iso2: ab}\n")))
			So(err, ShouldBeNil)
			c, ok := table.Lookup("ABC")
			So(ok, ShouldBeTrue)
			So(c.ISO2, ShouldEqual, "AB")
		})

		Convey("When it is malformed", func() {
			_, err := New(WithData([]byte("countries: [")))
			So(errors.Is(err, ErrInvalidTable), ShouldBeTrue)
		})

		Convey("When an entry has no name", func() {
			_, err := New(WithData([]byte("countries:\n  ABC: {iso2: AB}\n")))
			So(errors.Is(err, ErrInvalidTable), ShouldBeTrue)
		})
	})
}
