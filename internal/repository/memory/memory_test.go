package memory

import (
	"context"
	"errors"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"testing"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	u := NewUsers()

	id, err := u.CreateUser(ctx, &model.User{Login: "p1", Balance: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := u.CreateUser(ctx, &model.User{Login: "p1"}); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("duplicate login err = %v", err)
	}

	got, _ := u.GetUserByLogin(ctx, "p1")
	got.Balance = 1
	if b, _ := u.GetBalance(ctx, id); b != 100 {
		t.Errorf("returned user aliases storage, balance = %d", b)
	}

	if b, err := u.AddBalance(ctx, id, 50); err != nil || b != 150 {
		t.Errorf("add balance = %d, %v", b, err)
	}
	if err := u.UpdateBalance(ctx, id, 7); err != nil {
		t.Fatal(err)
	}
	if b, _ := u.GetBalanceForUpdate(ctx, id); b != 7 {
		t.Errorf("balance = %d", b)
	}
	if _, err := u.GetBalance(ctx, id+1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown user err = %v", err)
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := NewSessions()

	if err := s.CreateSession(ctx, &model.Session{ID: "a", UserID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateSession(ctx, &model.Session{ID: "a"}); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("duplicate session err = %v", err)
	}
	if got, err := s.GetSession(ctx, "a"); err != nil || got.UserID != 1 {
		t.Errorf("session = %+v, %v", got, err)
	}
	_ = s.DeleteSession(ctx, "a")
	if err := s.DeleteSession(ctx, "a"); err != nil {
		t.Errorf("second delete err = %v", err)
	}
	if _, err := s.GetSession(ctx, "a"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("deleted session err = %v", err)
	}
}

func TestGameStateClonesMultipliers(t *testing.T) {
	ctx := context.Background()
	g := NewGameState()

	if fs, _ := g.GetFreeSpins(ctx, 1); fs != (model.FreeSpins{}) {
		t.Errorf("fresh free spins = %+v", fs)
	}
	_ = g.UpdateFreeSpins(ctx, 1, model.FreeSpins{Count: 12, Bet: 20})

	st := model.NewMultiplierState(7, 7)
	st.Mult[0][0] = 4
	_ = g.SetMultiplierState(ctx, 1, st)
	st.Mult[0][0] = 128

	got, _ := g.GetMultiplierState(ctx, 1)
	if got.Mult[0][0] != 4 {
		t.Errorf("stored multiplier = %d, want 4", got.Mult[0][0])
	}
	if fs, _ := g.GetFreeSpins(ctx, 1); fs.Count != 12 || fs.Bet != 20 {
		t.Errorf("free spins lost after multiplier update: %+v", fs)
	}
}

func TestHistoryList(t *testing.T) {
	ctx := context.Background()
	h := NewHistory()
	for i, game := range []model.Game{model.GameLine, model.GameCascade, model.GameLine, model.GameLine} {
		_ = h.Save(ctx, &model.SpinRecord{RoundID: string(rune('a' + i)), UserID: 1, Game: game})
	}
	_ = h.Save(ctx, &model.SpinRecord{RoundID: "z", UserID: 2, Game: model.GameLine})

	got, _ := h.List(ctx, 1, model.GameLine, 2)
	if len(got) != 2 || got[0].RoundID != "d" || got[1].RoundID != "c" {
		t.Errorf("list = %+v", got)
	}
	if all, _ := h.List(ctx, 1, model.GameLine, 0); len(all) != 3 {
		t.Errorf("unbounded list len = %d", len(all))
	}
}
