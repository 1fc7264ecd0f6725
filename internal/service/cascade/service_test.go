package cascade

import (
	"context"
	"errors"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/cascade"
	"slot_engine/internal/model"
	"slot_engine/internal/repository/memory"
	"slot_engine/internal/repository/stats_repo"
	"slot_engine/internal/service"
	"slot_engine/internal/service/round"
	"testing"

	"github.com/shopspring/decimal"
)

type fixture struct {
	serv   service.CascadeService
	users  *memory.Users
	state  *memory.GameState
	userID int
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()

	game, err := cascade.New(cascade.DefaultConfig())
	if err != nil {
		t.Fatalf("game: %v", err)
	}
	f := &fixture{users: memory.NewUsers(), state: memory.NewGameState()}
	f.userID, err = f.users.CreateUser(context.Background(), &model.User{Login: "player", Balance: balance})
	if err != nil {
		t.Fatal(err)
	}
	f.serv = NewCascadeService(Deps{
		Game:        game,
		Repo:        f.state,
		UserRepo:    f.users,
		HistoryRepo: memory.NewHistory(),
		StatsRepo:   stats_repo.NewStatsRepository(model.GameCascade, decimal.NewFromInt(95), 0, nil),
		TxManager:   memory.TxManager{},
		RNG:         round.Seeded(3),
	})
	return f
}

func TestCheckDataDefaults(t *testing.T) {
	f := newFixture(t, 500)

	data, err := f.serv.CheckData(context.Background(), f.userID)
	if err != nil {
		t.Fatal(err)
	}
	if data.Balance != 500 || data.FreeSpinCount != 0 {
		t.Fatalf("data = %+v", data.Data)
	}
	if !data.Multipliers.Fits(7, 7) || data.Multipliers.Mult[3][3] != 1 {
		t.Errorf("multipliers not initialised: %+v", data.Multipliers)
	}
}

func TestSpinPersistsState(t *testing.T) {
	f := newFixture(t, 10000)
	ctx := context.Background()

	res, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 2, Mode: model.ModeBase})
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	out := res.Outcome
	if out.NewBalance != 10000-2+out.TotalPayout {
		t.Fatalf("balance %d does not settle", out.NewBalance)
	}

	stored, _ := f.state.GetMultiplierState(ctx, f.userID)
	if !stored.Fits(7, 7) {
		t.Fatal("multipliers not stored")
	}
	for r := range stored.Mult {
		for c := range stored.Mult[r] {
			if stored.Mult[r][c] != out.Multipliers.Mult[r][c] {
				t.Fatalf("stored multiplier (%d,%d) = %d, want %d", r, c, stored.Mult[r][c], out.Multipliers.Mult[r][c])
			}
		}
	}
	if b, _ := f.users.GetBalance(ctx, f.userID); b != out.NewBalance {
		t.Errorf("stored balance = %d, want %d", b, out.NewBalance)
	}
}

func TestBuyBonusFlow(t *testing.T) {
	f := newFixture(t, 10000)
	ctx := context.Background()

	res, err := f.serv.BuyBonus(ctx, f.userID, 2)
	if err != nil {
		t.Fatalf("buy bonus: %v", err)
	}
	if res.Outcome.Debit != 200 || res.Outcome.FreeSpinsRemaining < 10 {
		t.Fatalf("debit=%d free spins=%d", res.Outcome.Debit, res.Outcome.FreeSpinsRemaining)
	}
	if _, err := f.serv.BuyBonus(ctx, f.userID, 2); !errors.Is(err, engine.ErrBonusActive) {
		t.Fatalf("err = %v, want ErrBonusActive", err)
	}

	// Множители копятся между фриспинами
	prev := res.Outcome.Multipliers
	spin, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 2, Mode: model.ModeFreeSpin})
	if err != nil {
		t.Fatal(err)
	}
	for r := range prev.Mult {
		for c := range prev.Mult[r] {
			if spin.Outcome.Multipliers.Mult[r][c] < prev.Mult[r][c] {
				t.Fatalf("multiplier (%d,%d) dropped during free spins", r, c)
			}
		}
	}
}

func TestFreeSpinsPlayAtStoredBet(t *testing.T) {
	f := newFixture(t, 10000)
	ctx := context.Background()

	if _, err := f.serv.BuyBonus(ctx, f.userID, 4); err != nil {
		t.Fatalf("buy bonus: %v", err)
	}
	if fs, _ := f.state.GetFreeSpins(ctx, f.userID); fs.Bet != 4 {
		t.Fatalf("persisted free spins = %+v, want bet 4", fs)
	}

	spin, err := f.serv.Spin(ctx, f.userID, model.SpinRequest{Bet: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if spin.Outcome.Mode != model.ModeFreeSpin || spin.Outcome.Bet != 4 || spin.Outcome.Debit != 0 {
		t.Fatalf("mode=%s bet=%d debit=%d, want free spin at 4", spin.Outcome.Mode, spin.Outcome.Bet, spin.Outcome.Debit)
	}
	data, err := f.serv.CheckData(ctx, f.userID)
	if err != nil {
		t.Fatal(err)
	}
	if data.FreeSpinCount != spin.Outcome.FreeSpinsRemaining || data.FreeSpinBet != 4 {
		t.Errorf("data = %+v", data.Data)
	}
}

func TestFreeSpinModeWithoutFreeSpins(t *testing.T) {
	f := newFixture(t, 100)
	if _, err := f.serv.Spin(context.Background(), f.userID, model.SpinRequest{Bet: 2, Mode: model.ModeFreeSpin}); !errors.Is(err, engine.ErrNoFreeSpins) {
		t.Fatalf("err = %v, want ErrNoFreeSpins", err)
	}
}
