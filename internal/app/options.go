package service

import (
	"time"

	"github.com/okian/podium/internal/adapters/session"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/profile"
	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPaths sets the CSV files loaded by Start.
func WithDataPaths(athletes, regions string) Option {
	return func(s *Service) {
		s.athletesPath = athletes
		s.regionsPath = regions
	}
}

// WithRecords injects an already loaded dataset; Start skips file loading.
func WithRecords(records []model.Record, regions []model.Region) Option {
	return func(s *Service) {
		s.records = records
		s.regions = regions
		s.injected = true
	}
}

// WithDefaultCountry sets the preferred initial selection.
func WithDefaultCountry(noc string) Option {
	return func(s *Service) {
		s.preferredNOC = noc
	}
}

// WithTopNBounds sets the top-N sports bounds and default.
func WithTopNBounds(minN, maxN, def int) Option {
	return func(s *Service) {
		if minN > 0 && minN <= maxN {
			b := profile.Bounds{Min: minN, Max: maxN}
			b.Default = b.Clamp(def)
			s.bounds = b
		}
	}
}

// WithTopAthletes sets the length of the top athletes card.
func WithTopAthletes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topAthletes = n
		}
	}
}

// WithWordCloud sets how many sports feed the word cloud and the image size.
func WithWordCloud(words, width, height int) Option {
	return func(s *Service) {
		if words > 0 {
			s.cloudWords = words
		}
		if width > 0 && height > 0 {
			s.cloudWidth, s.cloudHeight = width, height
		}
	}
}

// WithIndexWorkers bounds the goroutines building the country index.
func WithIndexWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.indexWorkers = n
		}
	}
}

// WithSessionStore sets the session store. By default Start creates a MemoryStore.
func WithSessionStore(store session.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.sessions = store
		}
	}
}

// WithSessionLimits configures the default MemoryStore.
func WithSessionLimits(ttl time.Duration, maxEntries int) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
		if maxEntries > 0 {
			s.sessionMax = maxEntries
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
