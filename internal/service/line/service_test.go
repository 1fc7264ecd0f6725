package line

import (
	"context"
	"errors"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/line"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"slot_engine/internal/repository/memory"
	"slot_engine/internal/repository/stats_repo"
	"slot_engine/internal/service"
	"slot_engine/internal/service/round"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type fixture struct {
	serv    service.LineService
	users   *memory.Users
	state   *memory.GameState
	history *memory.History
	userID  int
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()

	game, err := line.New(line.DefaultConfig())
	if err != nil {
		t.Fatalf("game: %v", err)
	}
	f := &fixture{
		users:   memory.NewUsers(),
		state:   memory.NewGameState(),
		history: memory.NewHistory(),
	}
	f.userID, err = f.users.CreateUser(context.Background(), &model.User{Login: "player", Balance: balance})
	if err != nil {
		t.Fatal(err)
	}
	f.serv = NewLineService(Deps{
		Game:        game,
		Repo:        f.state,
		UserRepo:    f.users,
		HistoryRepo: f.history,
		StatsRepo:   stats_repo.NewStatsRepository(model.GameLine, decimal.NewFromInt(95), 0, nil),
		TxManager:   memory.TxManager{},
		RNG:         round.Seeded(11),
	})
	return f
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	b, err := f.users.GetBalance(context.Background(), f.userID)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSpinSettlesBalanceAndHistory(t *testing.T) {
	f := newFixture(t, 1000)
	ctx := context.Background()

	res, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 10})
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	out := res.Outcome
	if out.Debit != 10 || out.NewBalance != 1000-10+out.TotalPayout {
		t.Fatalf("outcome debit=%d payout=%d balance=%d", out.Debit, out.TotalPayout, out.NewBalance)
	}
	if got := f.balance(t); got != out.NewBalance {
		t.Errorf("stored balance = %d, want %d", got, out.NewBalance)
	}

	recs, _ := f.serv.History(ctx, f.userID, 10)
	if len(recs) != 1 || recs[0].RoundID != res.RoundID || recs[0].BalanceAfter != out.NewBalance {
		t.Fatalf("history = %+v", recs)
	}
	if st := f.serv.Stats(); st.TotalSpins != 1 || st.TotalBet != "10" {
		t.Errorf("stats = %+v", st)
	}
}

func TestSpinRejectedLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	if _, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 10}); !errors.Is(err, engine.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if _, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 0}); !errors.Is(err, engine.ErrInvalidBet) {
		t.Fatalf("err = %v, want ErrInvalidBet", err)
	}
	if got := f.balance(t); got != 5 {
		t.Errorf("balance = %d, want 5", got)
	}
	if recs, _ := f.serv.History(ctx, f.userID, 10); len(recs) != 0 {
		t.Errorf("history written for rejected spins: %d", len(recs))
	}
}

func TestSpinUnknownUser(t *testing.T) {
	f := newFixture(t, 100)
	if _, err := f.serv.Spin(context.Background(), f.userID+1, model.SpinRequest{Bet: 1}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBuyBonusThenFreeSpins(t *testing.T) {
	f := newFixture(t, 10000)
	ctx := context.Background()

	res, err := f.serv.BuyBonus(ctx, f.userID, 10)
	if err != nil {
		t.Fatalf("buy bonus: %v", err)
	}
	if res.Outcome.Debit != 1000 || res.Outcome.AwardedFreeSpins < 10 {
		t.Fatalf("debit=%d awarded=%d", res.Outcome.Debit, res.Outcome.AwardedFreeSpins)
	}

	if _, err := f.serv.BuyBonus(ctx, f.userID, 10); !errors.Is(err, engine.ErrBonusActive) {
		t.Fatalf("second buy err = %v, want ErrBonusActive", err)
	}

	data, err := f.serv.CheckData(ctx, f.userID)
	if err != nil {
		t.Fatal(err)
	}
	before := data.Balance

	spin, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 10})
	if err != nil {
		t.Fatal(err)
	}
	if spin.Outcome.Mode != model.ModeFreeSpin || spin.Outcome.Debit != 0 {
		t.Fatalf("mode=%s debit=%d, want free spin", spin.Outcome.Mode, spin.Outcome.Debit)
	}
	if got := f.balance(t); got != before+spin.Outcome.TotalPayout {
		t.Errorf("balance = %d, want %d", got, before+spin.Outcome.TotalPayout)
	}
	if spin.Outcome.FreeSpinsRemaining != data.FreeSpinCount-1+spin.Outcome.AwardedFreeSpins {
		t.Errorf("free spins = %d", spin.Outcome.FreeSpinsRemaining)
	}
}

func TestFreeSpinsPlayAtStoredBet(t *testing.T) {
	f := newFixture(t, 10000)
	ctx := context.Background()

	if _, err := f.serv.BuyBonus(ctx, f.userID, 10); err != nil {
		t.Fatalf("buy bonus: %v", err)
	}
	data, err := f.serv.CheckData(ctx, f.userID)
	if err != nil {
		t.Fatal(err)
	}
	if data.FreeSpinBet != 10 {
		t.Fatalf("stored free spin bet = %d, want 10", data.FreeSpinBet)
	}

	// Крупная ставка запроса не поднимает ставку фриспина
	spin, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if spin.Outcome.Mode != model.ModeFreeSpin || spin.Outcome.Bet != 10 {
		t.Fatalf("mode=%s bet=%d, want free spin at 10", spin.Outcome.Mode, spin.Outcome.Bet)
	}
	recs, _ := f.serv.History(ctx, f.userID, 1)
	if len(recs) != 1 || recs[0].Bet != 10 {
		t.Fatalf("history = %+v", recs)
	}
	fs, _ := f.state.GetFreeSpins(ctx, f.userID)
	if fs.Count != spin.Outcome.FreeSpinsRemaining || (fs.Count > 0 && fs.Bet != 10) {
		t.Errorf("persisted free spins = %+v", fs)
	}
}

func TestConcurrentSpinsConserveBalance(t *testing.T) {
	const start = 100000
	f := newFixture(t, start)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 5}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	recs, _ := f.serv.History(ctx, f.userID, 0)
	if len(recs) != 32 {
		t.Fatalf("%d rounds recorded, want 32", len(recs))
	}
	want := int64(start)
	for _, r := range recs {
		want += r.Payout - r.Debit
	}
	if got := f.balance(t); got != want {
		t.Errorf("balance = %d, want %d", got, want)
	}
}
