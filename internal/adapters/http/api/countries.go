package api

import (
	"net/http"
)

// OptionsHandler serves the page controls.
type OptionsHandler struct {
	deps Dependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps Dependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

// HandleOptions handles GET /api/options.
func (h *OptionsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_options"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	opts, err := h.deps.Options(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// CountriesHandler serves the country index.
type CountriesHandler struct {
	deps Dependencies
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps Dependencies) *CountriesHandler {
	return &CountriesHandler{deps: deps}
}

// HandleCountries handles GET /api/countries?q=term.
func (h *CountriesHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_countries"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	list, err := h.deps.Countries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CompareHandler serves the two-country comparison.
type CompareHandler struct {
	deps Dependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// HandleCompare handles GET /api/countries/compare?a=XXX&b=YYY.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare_countries"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	a, b := normalizeNOC(q.Get("a")), normalizeNOC(q.Get("b"))
	if a == "" || b == "" {
		fail(w, NewKind(op, ErrBadRequest))
		return
	}
	c, err := h.deps.Compare(r.Context(), a, b)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}
