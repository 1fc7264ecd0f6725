// Package api HTTP-слой: обработчики игр, авторизации, платежей и статистики
package api

import (
	"errors"
	"net/http"
	"slot_engine/internal/engine"
	"slot_engine/internal/locker"
	"slot_engine/internal/repository"
	"slot_engine/internal/service/auth"
	"slot_engine/internal/service/payment"
	"slot_engine/pkg/resp"

	"go.uber.org/zap"
)

// Status HTTP статус для ошибки сервиса
func Status(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidBet),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, auth.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, engine.ErrBonusActive),
		errors.Is(err, engine.ErrNoFreeSpins),
		errors.Is(err, auth.ErrLoginTaken),
		errors.Is(err, locker.ErrLockTimeout):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSession):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError отвечает ошибкой. Внутренние ошибки логируются, клиенту уходит общий текст
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		resp.WriteError(w, status, "internal error")
		return
	}
	resp.WriteError(w, status, err.Error())
}

// BadRequest тело запроса не разобрано
func BadRequest(w http.ResponseWriter, err error) {
	resp.WriteError(w, http.StatusBadRequest, "invalid request: "+err.Error())
}
