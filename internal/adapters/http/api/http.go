// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/podium/internal/domain/profile"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Options lists the country selection control and the top-N bounds.
	Options(ctx context.Context) (types.Options, error)
	// Profile renders one country. It never fails; failures are an Error view.
	Profile(ctx context.Context, noc string, topN int) types.View
	WordCloud(ctx context.Context, noc string) ([]byte, error)
	Countries(ctx context.Context, query string) ([]types.CountrySummary, error)
	Compare(ctx context.Context, a, b string) (types.Comparison, error)

	// Session scoped selection.
	Selected(ctx context.Context, sessionID string) string
	Remember(ctx context.Context, sessionID, noc string) error
	Signal(ctx context.Context, sessionID, clicked string) (types.Selection, bool, error)

	Bounds() profile.Bounds
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	optionsHandler   *OptionsHandler
	countriesHandler *CountriesHandler
	compareHandler   *CompareHandler
	profileHandler   *ProfileHandler
	wordCloudHandler *WordCloudHandler
	sessionHandler   *SessionHandler

	limiter        RateLimiter
	trustForwarded bool
	sessionTTL     time.Duration
	secure         bool
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		optionsHandler:   NewOptionsHandler(deps),
		countriesHandler: NewCountriesHandler(deps),
		compareHandler:   NewCompareHandler(deps),
		profileHandler:   NewProfileHandler(deps),
		wordCloudHandler: NewWordCloudHandler(deps),
		sessionHandler:   NewSessionHandler(deps),
		sessionTTL:       defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Operational endpoints skip limiting and sessions.
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/api/options", s.route(s.optionsHandler.HandleOptions, "options"))
	mux.HandleFunc("/api/countries", s.route(s.countriesHandler.HandleCountries, "countries"))
	mux.HandleFunc("/api/countries/compare", s.route(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/api/profile", s.route(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/api/profile/wordcloud.png", s.route(s.wordCloudHandler.HandleWordCloud, "wordcloud"))
	mux.HandleFunc("/api/session", s.route(s.sessionHandler.HandleGetSession, "session"))
	mux.HandleFunc("/api/session/clicked-country", s.route(s.sessionHandler.HandleClickedCountry, "clicked_country"))
}

// route stacks metrics, limiting and session middleware around next.
func (s *Server) route(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	h := SessionMiddleware(next, s.sessionTTL, s.secure)
	if s.limiter != nil {
		h = RateLimitMiddleware(h, endpoint, s.limiter, s.trustForwarded)
	}
	return MetricsMiddleware(h, endpoint)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func log() logger.Logger {
	return logger.Named("api")
}
