package api

import (
	"net/http"
	"strconv"

	"github.com/okian/podium/pkg/logger"
)

// WordCloudHandler serves the sports word cloud image.
type WordCloudHandler struct {
	deps Dependencies
}

// NewWordCloudHandler creates a new word cloud handler.
func NewWordCloudHandler(deps Dependencies) *WordCloudHandler {
	return &WordCloudHandler{deps: deps}
}

// HandleWordCloud handles GET /api/profile/wordcloud.png?noc=XXX.
func (h *WordCloudHandler) HandleWordCloud(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_wordcloud"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	noc := normalizeNOC(r.URL.Query().Get("noc"))
	if noc == "" {
		fail(w, NewKind(op, ErrBadRequest))
		return
	}
	png, err := h.deps.WordCloud(r.Context(), noc)
	if err != nil {
		err = Wrap(op, err)
		if status, _ := statusOf(err); status >= statusInternalError {
			log().Error(r.Context(), "word cloud failed", logger.String("noc", noc), logger.Error(err))
		}
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
