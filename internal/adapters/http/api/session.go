package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
)

const maxSignalBody = 1 << 10

// SessionHandler serves the session selection and cross-page signals.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

type signalRequest struct {
	NOC string `json:"noc"`
}

// HandleGetSession handles GET /api/session.
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "api.get_session", http.MethodGet) {
		return
	}
	ctx := r.Context()
	writeJSON(w, http.StatusOK, types.Selection{Country: h.deps.Selected(ctx, SessionID(ctx))})
}

// HandleClickedCountry handles POST /api/session/clicked-country.
// A valid code re-targets the selection (200); anything else is ignored (204).
func (h *SessionHandler) HandleClickedCountry(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_clicked_country"
	if !requireMethod(w, r, op, http.MethodPost) {
		return
	}
	ctx := r.Context()

	var req signalRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSignalBody))
	if err := dec.Decode(&req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	sel, accepted, err := h.deps.Signal(ctx, SessionID(ctx), normalizeNOC(req.NOC))
	if err != nil {
		log().Error(ctx, "applying clicked country", logger.String("noc", req.NOC), logger.Error(err))
		fail(w, Wrap(op, err))
		return
	}
	if !accepted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}
