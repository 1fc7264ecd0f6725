package line

import (
	"context"
	"net/http"
	"net/http/httptest"
	dto "slot_engine/internal/api/dto/line"
	roundDto "slot_engine/internal/api/dto/round"
	lineGame "slot_engine/internal/engine/line"
	"slot_engine/internal/middleware"
	"slot_engine/internal/model"
	"slot_engine/internal/repository/memory"
	"slot_engine/internal/repository/stats_repo"
	lineService "slot_engine/internal/service/line"
	"slot_engine/internal/service/round"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

func newHandler(t *testing.T, balance int64) (*Handler, int) {
	t.Helper()

	game, err := lineGame.New(lineGame.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	users := memory.NewUsers()
	userID, err := users.CreateUser(context.Background(), &model.User{Login: "p", Balance: balance})
	if err != nil {
		t.Fatal(err)
	}
	serv := lineService.NewLineService(lineService.Deps{
		Game:        game,
		Repo:        memory.NewGameState(),
		UserRepo:    users,
		HistoryRepo: memory.NewHistory(),
		StatsRepo:   stats_repo.NewStatsRepository(model.GameLine, decimal.NewFromInt(95), 0, nil),
		TxManager:   memory.TxManager{},
		RNG:         round.Seeded(5),
	})
	return NewHandler(HandlerDeps{Serv: serv}), userID
}

func call(h http.HandlerFunc, userID int, method, target, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func TestSpinHandler(t *testing.T) {
	h, userID := newHandler(t, 1000)

	rec := call(h.Spin, userID, http.MethodPost, "/line/spin", `{"bet":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body)
	}
	var got dto.SpinResponse
	if err := jsoniter.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Debit != 10 || got.Balance != 990+got.TotalPayout {
		t.Errorf("debit=%d payout=%d balance=%d", got.Debit, got.TotalPayout, got.Balance)
	}
	if len(got.Board) != 5 || len(got.Board[0]) != 3 {
		t.Errorf("board shape %dx%d", len(got.Board), len(got.Board[0]))
	}
	if got.RoundID == "" || got.Fairness.ServerSeedHash == "" {
		t.Errorf("round metadata missing: %+v", got)
	}
}

func TestSpinHandlerErrors(t *testing.T) {
	h, userID := newHandler(t, 5)

	cases := []struct {
		name, body string
		want       int
	}{
		{"malformed", `{"bet":`, http.StatusBadRequest},
		{"unknown field", `{"bet":10,"odds":2}`, http.StatusBadRequest},
		{"zero bet", `{"bet":0}`, http.StatusBadRequest},
		{"broke", `{"bet":10}`, http.StatusPaymentRequired},
		{"free spin without award", `{"bet":1,"mode":"FREE_SPIN"}`, http.StatusConflict},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if rec := call(h.Spin, userID, http.MethodPost, "/line/spin", c.body); rec.Code != c.want {
				t.Errorf("code = %d, want %d body = %s", rec.Code, c.want, rec.Body)
			}
		})
	}
}

func TestBuyBonusAndData(t *testing.T) {
	h, userID := newHandler(t, 10_000)

	rec := call(h.BuyBonus, userID, http.MethodPost, "/line/buy-bonus", `{"bet":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("buy bonus code = %d body = %s", rec.Code, rec.Body)
	}
	var spin dto.SpinResponse
	_ = jsoniter.Unmarshal(rec.Body.Bytes(), &spin)
	if spin.Debit != 1000 || spin.AwardedFreeSpins < 10 {
		t.Errorf("buy bonus debit=%d awarded=%d", spin.Debit, spin.AwardedFreeSpins)
	}

	rec = call(h.CheckData, userID, http.MethodGet, "/line/data", "")
	var data dto.DataResponse
	_ = jsoniter.Unmarshal(rec.Body.Bytes(), &data)
	if data.Balance != spin.Balance || data.FreeSpinCount != spin.FreeSpinCount {
		t.Errorf("data = %+v, spin balance=%d free=%d", data, spin.Balance, spin.FreeSpinCount)
	}

	rec = call(h.History, userID, http.MethodGet, "/line/history?limit=5", "")
	var hist roundDto.HistoryResponse
	_ = jsoniter.Unmarshal(rec.Body.Bytes(), &hist)
	if len(hist.Items) != 1 || hist.Items[0].RoundID != spin.RoundID {
		t.Errorf("history = %+v", hist.Items)
	}
}
