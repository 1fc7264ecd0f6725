package stats

import (
	"net/http"
	"slot_engine/internal/converter"
	"slot_engine/internal/model"
	"slot_engine/pkg/resp"

	"github.com/go-chi/chi/v5"
)

// Source снимок статистики игры
type Source func() model.GameStats

type Handler struct {
	games map[model.Game]Source
}

func NewHandler(games map[model.Game]Source) *Handler {
	return &Handler{games: games}
}

// Get GET /stats/{game}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	game := model.Game(chi.URLParam(r, "game"))

	src, ok := h.games[game]
	if !ok {
		resp.WriteError(w, http.StatusNotFound, "unknown game")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(src()))
}
