// Package types contains common types used across the application
package types

// State is the outcome of one profile render.
type State string

// Render states.
const (
	StateEmpty     State = "empty"
	StateNoData    State = "no_data"
	StateNoMedals  State = "no_medals"
	StatePopulated State = "populated"
	StateError     State = "error"
)

// Chart kinds.
const (
	ChartBar  = "bar"
	ChartLine = "line"
)

// View is everything the country profile page displays for one selection.
// Exactly one of NoMedals or Profile is set, and only in the matching state.
type View struct {
	State    State     `json:"state"`
	Country  string    `json:"country,omitempty"`
	Label    string    `json:"label,omitempty"`
	TopN     int       `json:"top_n"`
	Header   *Header   `json:"header,omitempty"`
	Message  string    `json:"message,omitempty"`
	NoMedals *NoMedals `json:"no_medals,omitempty"`
	Profile  *Profile  `json:"profile,omitempty"`
}

// Header summarises the selected country.
type Header struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
}

// NoMedals holds participation facts for countries without medals.
type NoMedals struct {
	Games     int `json:"games"`
	FirstYear int `json:"first_year"`
	LastYear  int `json:"last_year"`
}

// Profile is the populated body.
type Profile struct {
	Medals                MedalSummary   `json:"medals"`
	Participation         Participation  `json:"participation"`
	TopAthletes           []AthleteCount `json:"top_athletes"`
	MedalsByYear          Chart          `json:"medals_by_year"`
	ParticipationByGender Chart          `json:"participation_by_gender"`
	Efficiency            Chart          `json:"efficiency"`
	TopSports             []SportCount   `json:"top_sports"`
	WordCloud             []Word         `json:"word_cloud"`
}

// MedalSummary counts unique medals. Gold+Silver+Bronze == Total.
type MedalSummary struct {
	Total  int `json:"total"`
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// Participation summarises Olympic attendance.
type Participation struct {
	Games          int `json:"games"`
	FirstYear      int `json:"first_year"`
	FirstMedalYear int `json:"first_medal_year"`
}

// AthleteCount is one row of the top athletes card.
type AthleteCount struct {
	Name   string `json:"name"`
	Medals int    `json:"medals"`
}

// SportCount is one row of the top sports table.
type SportCount struct {
	Rank   int    `json:"rank"`
	Sport  string `json:"sport"`
	Medals int    `json:"medals"`
}

// Word is a weighted word-cloud entry.
type Word struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// Chart is a renderer-agnostic chart description.
type Chart struct {
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	XTitle      string   `json:"x_title"`
	YTitle      string   `json:"y_title"`
	LegendTitle string   `json:"legend_title,omitempty"`
	Series      []Series `json:"series"`
}

// Series is one named line or bar group.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

// Point is a (year, value) pair.
type Point struct {
	X int     `json:"x"`
	Y float64 `json:"y"`
}

// CountryOption is one entry of the country selection control.
type CountryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TopNBounds describes the top-N sports control.
type TopNBounds struct {
	Default int `json:"default"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

// Options is the payload used to build the page controls.
type Options struct {
	Countries []CountryOption `json:"countries"`
	Default   string          `json:"default"`
	TopN      TopNBounds      `json:"top_n"`
}

// CountrySummary is one row of the country index.
type CountrySummary struct {
	NOC      string `json:"noc"`
	Name     string `json:"name"`
	Region   string `json:"region,omitempty"`
	Flag     string `json:"flag,omitempty"`
	Gold     int    `json:"gold"`
	Silver   int    `json:"silver"`
	Bronze   int    `json:"bronze"`
	Total    int    `json:"total"`
	Athletes int    `json:"athletes"`
	TopSport string `json:"top_sport,omitempty"`
}

// Selection is the session-scoped selected country.
type Selection struct {
	Country string `json:"country"`
	Changed bool   `json:"changed"`
}

// Comparison places two countries side by side, in request order.
type Comparison struct {
	Countries []CountryComparison `json:"countries"`
}

// CountryComparison is one column of the comparison page.
type CountryComparison struct {
	NOC           string          `json:"noc"`
	Label         string          `json:"label"`
	Medals        MedalSummary    `json:"medals"`
	Participation Chart           `json:"participation"`
	Sports        int             `json:"sports"`
	TopSports     []SportAthletes `json:"top_sports"`
}

// SportAthletes is one bar of the sports-by-athletes chart.
type SportAthletes struct {
	Rank     int    `json:"rank"`
	Sport    string `json:"sport"`
	Athletes int    `json:"athletes"`
}
