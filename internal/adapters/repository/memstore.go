package repository

import (
	"sort"

	"github.com/okian/podium/internal/domain/model"
)

// MemoryStore is an in-memory Store indexed by NOC.
//
// It is built once and never written afterwards, so readers need no locking.
type MemoryStore struct {
	byNOC   map[string][]model.Record
	codes   []string
	regions map[string]model.Region
	count   int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore indexes records by NOC, keeping input order within a country.
func NewMemoryStore(records []model.Record, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byNOC:   make(map[string][]model.Record),
		regions: make(map[string]model.Region),
		count:   len(records),
	}
	for _, r := range records {
		s.byNOC[r.NOC] = append(s.byNOC[r.NOC], r)
	}
	s.codes = make([]string, 0, len(s.byNOC))
	for noc := range s.byNOC {
		s.codes = append(s.codes, noc)
	}
	sort.Strings(s.codes)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Countries returns a copy of the sorted code list.
func (s *MemoryStore) Countries() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Rows returns the country's rows. The slice is capped so appends cannot
// write into the shared table.
func (s *MemoryStore) Rows(noc string) []model.Record {
	rows := s.byNOC[noc]
	return rows[:len(rows):len(rows)]
}

// Has reports whether noc has rows.
func (s *MemoryStore) Has(noc string) bool {
	return len(s.byNOC[noc]) > 0
}

// Count returns the number of rows.
func (s *MemoryStore) Count() int {
	return s.count
}

// Region looks up the region table.
func (s *MemoryStore) Region(noc string) (model.Region, error) {
	r, ok := s.regions[noc]
	if !ok {
		return model.Region{}, ErrNotFound
	}
	return r, nil
}

// Regions returns the region table sorted by code.
func (s *MemoryStore) Regions() []model.Region {
	out := make([]model.Region, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NOC < out[j].NOC })
	return out
}
