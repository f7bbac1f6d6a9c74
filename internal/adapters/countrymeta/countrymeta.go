// Package countrymeta maps NOC codes to display names and flag glyphs.
package countrymeta

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
)

//go:embed countries.yaml
var embeddedTable []byte

// Country is one entry of the table.
type Country struct {
	NOC  string
	Name string
	ISO2 string
	Flag string
}

type entry struct {
	Name string `yaml:"name"`
	ISO2 string `yaml:"iso2"`
	Flag string `yaml:"flag"`
}

type document struct {
	Countries map[string]entry `yaml:"countries"`
}

// Table resolves display metadata for country codes. It is read-only after New.
type Table struct {
	countries map[string]Country
	regions   map[string]string
}

// Option applies a configuration option to a Table.
type Option func(*tableOptions)

type tableOptions struct {
	data    []byte
	regions []model.Region
}

// WithData replaces the embedded table with YAML data.
func WithData(data []byte) Option {
	return func(o *tableOptions) {
		o.data = data
	}
}

// WithRegions adds region names used when a code is missing from the table.
func WithRegions(regions []model.Region) Option {
	return func(o *tableOptions) {
		o.regions = regions
	}
}

// New decodes the country table.
func New(opts ...Option) (*Table, error) {
	o := tableOptions{data: embeddedTable}
	for _, opt := range opts {
		opt(&o)
	}

	var doc document
	if err := yaml.Unmarshal(o.data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	t := &Table{
		countries: make(map[string]Country, len(doc.Countries)),
		regions:   make(map[string]string, len(o.regions)),
	}
	for code, e := range doc.Countries {
		noc := strings.ToUpper(strings.TrimSpace(code))
		if noc == "" || e.Name == "" {
			return nil, fmt.Errorf("%w: entry %q has no name", ErrInvalidTable, code)
		}
		iso := strings.ToUpper(e.ISO2)
		flag := e.Flag
		if flag == "" {
			flag = Flag(iso)
		}
		t.countries[noc] = Country{NOC: noc, Name: e.Name, ISO2: iso, Flag: flag}
	}
	for _, r := range o.regions {
		if r.Region != "" {
			if _, ok := t.regions[r.NOC]; !ok {
				t.regions[r.NOC] = r.Region
			}
		}
	}
	return t, nil
}

// Flag builds the regional-indicator flag for an ISO 3166-1 alpha-2 code.
// Anything else yields "".
func Flag(iso2 string) string {
	if len(iso2) != 2 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 2; i++ {
		c := iso2[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(rune(0x1F1E6 + int(c-'A')))
	}
	return b.String()
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.countries)
}

// Lookup returns the table entry for noc.
func (t *Table) Lookup(noc string) (Country, bool) {
	c, ok := t.countries[noc]
	return c, ok
}

// Name returns the display name: the table name, else the region name, else the code.
func (t *Table) Name(noc string) string {
	if c, ok := t.countries[noc]; ok {
		return c.Name
	}
	if r, ok := t.regions[noc]; ok {
		return r
	}
	return noc
}

// Region returns the region name from noc_regions, if any.
func (t *Table) Region(noc string) string {
	return t.regions[noc]
}

// Label formats noc for the selection control: "{name} - {noc} {flag}".
// Codes missing from the table are shown raw.
func (t *Table) Label(noc string) string {
	c, ok := t.countries[noc]
	if !ok {
		return noc
	}
	return strings.TrimSpace(fmt.Sprintf("%s - %s %s", c.Name, noc, c.Flag))
}

// Options builds the selection control entries for codes, in the given order.
func (t *Table) Options(codes []string) []types.CountryOption {
	out := make([]types.CountryOption, len(codes))
	for i, c := range codes {
		out[i] = types.CountryOption{Value: c, Label: t.Label(c)}
	}
	return out
}
