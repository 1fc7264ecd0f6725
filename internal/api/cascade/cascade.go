package cascade

import (
	"net/http"
	"slot_engine/internal/api"
	dto "slot_engine/internal/api/dto/cascade"
	"slot_engine/internal/converter"
	"slot_engine/internal/middleware"
	"slot_engine/internal/service"
	"slot_engine/pkg/req"
	"slot_engine/pkg/resp"
	"strconv"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.CascadeService
	Log  *zap.Logger
}

type Handler struct {
	serv service.CascadeService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	result, err := h.serv.Spin(r.Context(), userID, converter.ToCascadeSpin(payload))
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCascadeSpinResponse(*result))
}

func (h *Handler) BuyBonus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	payload, err := req.Decode[dto.BuyBonusRequest](r.Body)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	result, err := h.serv.BuyBonus(r.Context(), userID, payload.Bet)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCascadeSpinResponse(*result))
}

func (h *Handler) CheckData(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	data, err := h.serv.CheckData(r.Context(), userID)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCascadeDataResponse(*data))
}

// History последние раунды, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.serv.History(r.Context(), userID, limit)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(records))
}
