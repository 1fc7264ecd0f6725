package payment

import (
	"net/http"
	"slot_engine/internal/api"
	dto "slot_engine/internal/api/dto/payment"
	"slot_engine/internal/middleware"
	"slot_engine/internal/service"
	"slot_engine/pkg/req"
	"slot_engine/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.PaymentService
	Log  *zap.Logger
}

type Handler struct {
	serv service.PaymentService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	balance, err := h.serv.Deposit(r.Context(), userID, payload.Amount)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	balance, err := h.serv.GetBalance(r.Context(), userID)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}
