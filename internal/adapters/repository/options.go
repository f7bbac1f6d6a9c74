package repository

import "github.com/okian/podium/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithRegions attaches the NOC region table. Later duplicates are ignored.
func WithRegions(regions []model.Region) Option {
	return func(s *MemoryStore) {
		for _, r := range regions {
			if _, ok := s.regions[r.NOC]; !ok {
				s.regions[r.NOC] = r
			}
		}
	}
}
