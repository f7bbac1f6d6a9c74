package api

import (
	"net/http"
	"strconv"

	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
)

// ProfileHandler serves the country profile view.
type ProfileHandler struct {
	deps Dependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps Dependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleProfile handles GET /api/profile?noc=XXX&top=N.
//
// Without noc the session's selection is rendered. An explicit empty noc
// renders the Empty state. A top that is not an integer uses the default;
// out of range values are clamped by the renderer.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_profile"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	ctx := r.Context()
	sid := SessionID(ctx)
	q := r.URL.Query()

	noc := normalizeNOC(q.Get("noc"))
	if !q.Has("noc") {
		noc = h.deps.Selected(ctx, sid)
	}
	topN := h.deps.Bounds().Default
	if n, err := strconv.Atoi(q.Get("top")); err == nil {
		topN = n
	}

	view := h.deps.Profile(ctx, noc, topN)
	if view.State == types.StatePopulated || view.State == types.StateNoMedals {
		if err := h.deps.Remember(ctx, sid, view.Country); err != nil {
			log().Warn(ctx, "storing session selection", logger.String("noc", view.Country), logger.Error(err))
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, view)
}
