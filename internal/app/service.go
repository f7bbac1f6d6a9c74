// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/adapters/countrymeta"
	"github.com/okian/podium/internal/adapters/dataset"
	"github.com/okian/podium/internal/adapters/render/wordcloud"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/adapters/session"
	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/profile"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Service implements the API dependencies for the country profile page.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	table    *countrymeta.Table
	sessions session.Store
	cloud    *wordcloud.Renderer
	index    []types.CountrySummary

	// Configuration
	athletesPath string
	regionsPath  string
	preferredNOC string
	bounds       profile.Bounds
	topAthletes  int
	cloudWords   int
	cloudWidth   int
	cloudHeight  int
	indexWorkers int
	sessionTTL   time.Duration
	sessionMax   int

	// Injected dataset
	records  []model.Record
	regions  []model.Region
	injected bool

	// State
	started     bool
	ownSessions bool
	defaultNOC  string
	skipped     int
	loadTook    time.Duration

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		preferredNOC: "USA",
		bounds:       profile.DefaultBounds,
		topAthletes:  5,
		cloudWords:   20,
		cloudWidth:   800,
		cloudHeight:  400,
		indexWorkers: runtime.NumCPU(),
		sessionTTL:   session.DefaultTTL,
		sessionMax:   100_000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset and builds the read-only indexes.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting profile service...")

	if !s.injected {
		res, err := dataset.Load(ctx, s.athletesPath, s.regionsPath)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		s.records, s.regions = res.Records, res.Regions
		s.skipped, s.loadTook = res.Skipped, res.Took
	}

	store := repository.NewMemoryStore(s.records, repository.WithRegions(s.regions))
	table, err := countrymeta.New(countrymeta.WithRegions(s.regions))
	if err != nil {
		return fmt.Errorf("country table: %w", err)
	}
	cloud, err := wordcloud.New(wordcloud.WithSize(s.cloudWidth, s.cloudHeight))
	if err != nil {
		return fmt.Errorf("word cloud: %w", err)
	}
	if s.sessions == nil {
		s.sessions = session.NewMemoryStore(
			session.WithTTL(s.sessionTTL),
			session.WithMaxEntries(s.sessionMax),
		)
		s.ownSessions = true
	}

	index, err := buildIndex(ctx, store, table, s.indexWorkers)
	if err != nil {
		return fmt.Errorf("country index: %w", err)
	}

	s.store, s.table, s.cloud, s.index = store, table, cloud, index
	s.defaultNOC = profile.DefaultCountry(store.Countries(), s.preferredNOC)
	if !s.injected {
		// rows now live in the store; a restart reloads them
		s.records = nil
	}
	s.started = true

	metrics.UpdateDataset(store.Count(), len(index), s.skipped, float64(s.loadTook.Milliseconds()))
	s.logger.Info(ctx, "profile service started",
		logger.Int("rows", store.Count()),
		logger.Int("countries", len(index)),
		logger.Int("skipped", s.skipped),
		logger.Duration("load", s.loadTook),
		logger.String("default", s.defaultNOC),
	)
	return nil
}

// Stop releases the session store Start created. A store passed with
// WithSessionStore belongs to the caller and is left open.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping profile service...")
	if s.ownSessions {
		if err := s.sessions.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing session store", logger.Error(err))
		}
		s.sessions, s.ownSessions = nil, false
	}
	s.started = false
	s.logger.Info(context.Background(), "profile service stopped")
}

// buildIndex summarises every country concurrently. Each goroutine writes
// only its own slot.
func buildIndex(ctx context.Context, store repository.Store, table *countrymeta.Table, workers int) ([]types.CountrySummary, error) {
	codes := store.Countries()
	out := make([]types.CountrySummary, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, noc := range codes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = summarize(noc, store.Rows(noc), table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func summarize(noc string, rows []model.Record, table *countrymeta.Table) types.CountrySummary {
	unique := profile.UniqueMedals(profile.MedalRows(rows))
	medals := profile.Summarize(unique)

	athletes := dedupe.New[string]()
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = r.Name
		}
		athletes.SeenAndRecord(id)
	}

	cs := types.CountrySummary{
		NOC:      noc,
		Name:     table.Name(noc),
		Region:   table.Region(noc),
		Gold:     medals.Gold,
		Silver:   medals.Silver,
		Bronze:   medals.Bronze,
		Total:    medals.Total,
		Athletes: athletes.Size(),
	}
	if c, ok := table.Lookup(noc); ok {
		cs.Flag = c.Flag
	}
	cs.TopSport = profile.TopSportByRows(rows)
	return cs
}

func (s *Service) renderOptions() []profile.Option {
	return []profile.Option{
		profile.WithBounds(s.bounds),
		profile.WithTopAthletes(s.topAthletes),
		profile.WithCloudWords(s.cloudWords),
		profile.WithLabel(s.table.Label),
	}
}

// Bounds returns the top-N sports bounds.
func (s *Service) Bounds() profile.Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// DefaultCountry returns the initial selection ("" when the dataset is empty).
func (s *Service) DefaultCountry() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultNOC
}

// Known reports whether noc is part of the country domain.
func (s *Service) Known(noc string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started && s.store.Has(noc)
}

// Options returns the country selection control entries.
func (s *Service) Options(_ context.Context) (types.Options, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return types.Options{}, ErrNotStarted
	}
	return types.Options{
		Countries: s.table.Options(s.store.Countries()),
		Default:   s.defaultNOC,
		TopN:      types.TopNBounds{Default: s.bounds.Default, Min: s.bounds.Min, Max: s.bounds.Max},
	}, nil
}

// Profile renders the country profile for noc.
func (s *Service) Profile(ctx context.Context, noc string, topN int) types.View {
	s.mu.RLock()
	started := s.started
	var (
		ds   profile.Dataset
		opts []profile.Option
	)
	if started {
		ds, opts = s.store, s.renderOptions()
	} else {
		opts = []profile.Option{profile.WithBounds(s.bounds)}
	}
	s.mu.RUnlock()

	start := time.Now()
	v := profile.Render(ds, noc, topN, opts...)
	took := time.Since(start)
	metrics.RecordProfileRender(string(v.State), float64(took.Microseconds())/1000)

	if v.State == types.StateError {
		s.log().Warn(ctx, "profile render failed",
			logger.String("noc", noc),
			logger.String("message", v.Message),
		)
	}
	return v
}

// WordCloud renders the sports word cloud of noc as PNG.
func (s *Service) WordCloud(ctx context.Context, noc string) ([]byte, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return nil, ErrNotStarted
	}
	store, cloud, n := s.store, s.cloud, s.cloudWords
	s.mu.RUnlock()

	if !store.Has(noc) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, noc)
	}
	words := profile.CloudWords(profile.UniqueMedals(profile.MedalRows(store.Rows(noc))), n)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMedals, noc)
	}

	start := time.Now()
	png, err := cloud.Render(ctx, words)
	metrics.RecordWordCloud(float64(time.Since(start).Milliseconds()), err != nil)
	if err != nil {
		return nil, fmt.Errorf("render word cloud: %w", err)
	}
	return png, nil
}

// Compare builds the side-by-side comparison of two countries.
func (s *Service) Compare(ctx context.Context, a, b string) (types.Comparison, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return types.Comparison{}, ErrNotStarted
	}
	store, table := s.store, s.table
	s.mu.RUnlock()

	out := types.Comparison{Countries: make([]types.CountryComparison, 0, 2)}
	for _, noc := range []string{a, b} {
		if !store.Has(noc) {
			return types.Comparison{}, fmt.Errorf("%w: %s", ErrUnknownCountry, noc)
		}
		out.Countries = append(out.Countries, profile.Compare(noc, table.Label(noc), store.Rows(noc)))
	}

	s.log().Debug(ctx, "countries compared", logger.String("a", a), logger.String("b", b))
	return out, nil
}

// Countries returns the country index filtered by a case-insensitive
// substring of the name, region or code. An empty query returns everything.
func (s *Service) Countries(_ context.Context, query string) ([]types.CountrySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]types.CountrySummary, 0, len(s.index))
	for _, c := range s.index {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Region), q) ||
			strings.Contains(strings.ToLower(c.NOC), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Selected returns the session's country, falling back to the default when
// nothing valid is stored.
func (s *Service) Selected(ctx context.Context, sessionID string) string {
	noc, err := s.sessionStore().Get(ctx, sessionID)
	switch {
	case err == nil && s.Known(noc):
		return noc
	case err != nil && !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrInvalidSession):
		metrics.RecordSessionError("get")
		s.log().Warn(ctx, "reading session selection", logger.Error(err))
	}
	return s.DefaultCountry()
}

// Remember mirrors a successful selection into the session.
func (s *Service) Remember(ctx context.Context, sessionID, noc string) error {
	if sessionID == "" || !s.Known(noc) {
		return nil
	}
	if err := s.sessionStore().Set(ctx, sessionID, noc); err != nil {
		metrics.RecordSessionError("set")
		return fmt.Errorf("remember selection: %w", err)
	}
	return nil
}

// Signal applies a cross-page "clicked country" value to the session.
// Invalid values are ignored: the selection is returned unchanged and accepted is false.
func (s *Service) Signal(ctx context.Context, sessionID, clicked string) (types.Selection, bool, error) {
	current := s.Selected(ctx, sessionID)

	s.mu.RLock()
	var known profile.Catalog
	if s.started {
		known = s.store
	}
	s.mu.RUnlock()

	next, ok := profile.ResolveSignal(known, current, clicked)
	if !ok {
		metrics.RecordSignal("ignored")
		s.log().Debug(ctx, "ignoring clicked country", logger.String("value", clicked))
		return types.Selection{Country: current}, false, nil
	}

	metrics.RecordSignal("accepted")
	if err := s.Remember(ctx, sessionID, next); err != nil {
		return types.Selection{Country: current}, true, err
	}
	return types.Selection{Country: next, Changed: next != current}, true, nil
}

func (s *Service) sessionStore() session.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sessions == nil {
		return noSessions{}
	}
	return s.sessions
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"topN":         s.bounds,
		"indexWorkers": s.indexWorkers,
	}

	if s.started {
		stats["rows"] = s.store.Count()
		stats["countries"] = len(s.index)
		stats["skippedRows"] = s.skipped
		stats["loadMillis"] = s.loadTook.Milliseconds()
		stats["defaultCountry"] = s.defaultNOC
		stats["sessionStore"] = fmt.Sprintf("%T", s.sessions)
		stats["countryTable"] = s.table.Len()
		w, h := s.cloud.Size()
		stats["wordCloudSize"] = fmt.Sprintf("%dx%d", w, h)
		if n, ok := s.sessions.(interface{ Len() int }); ok {
			stats["sessions"] = n.Len()
		}
	}

	return stats
}

// noSessions is used before Start; it stores nothing.
type noSessions struct{}

func (noSessions) Get(context.Context, string) (string, error) { return "", session.ErrNotFound }
func (noSessions) Set(context.Context, string, string) error   { return ErrNotStarted }
func (noSessions) Close() error                                { return nil }
