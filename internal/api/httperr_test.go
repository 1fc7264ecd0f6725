package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slot_engine/internal/engine"
	"slot_engine/internal/locker"
	"slot_engine/internal/repository"
	"slot_engine/internal/service/auth"
	"slot_engine/internal/service/payment"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{engine.ErrInvalidBet, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", payment.ErrInvalidAmount), http.StatusBadRequest},
		{engine.ErrInsufficientBalance, http.StatusPaymentRequired},
		{engine.ErrBonusActive, http.StatusConflict},
		{engine.ErrNoFreeSpins, http.StatusConflict},
		{auth.ErrLoginTaken, http.StatusConflict},
		{locker.ErrLockTimeout, http.StatusConflict},
		{auth.ErrInvalidSession, http.StatusUnauthorized},
		{repository.ErrNotFound, http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Errorf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWriteErrorHidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, zap.NewNop(), errors.New("password=hunter2"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Errorf("internal error leaked: %s", rec.Body.String())
	}
}
