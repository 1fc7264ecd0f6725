package cascade

import (
	"context"
	"slot_engine/internal/model"
)

// CheckData баланс, фриспины и множители. Множители по умолчанию, если игрок еще не играл
func (s *serv) CheckData(ctx context.Context, userID int) (*model.CascadeData, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	freeSpins, err := s.repo.GetFreeSpins(ctx, userID)
	if err != nil {
		return nil, err
	}
	mult, err := s.repo.GetMultiplierState(ctx, userID)
	if err != nil {
		return nil, err
	}

	cfg := s.game.Config()
	if !mult.Fits(cfg.Rows, cfg.Cols) {
		mult = model.NewMultiplierState(cfg.Rows, cfg.Cols)
	}

	return &model.CascadeData{
		Data:        model.Data{Balance: balance, FreeSpinCount: freeSpins.Count, FreeSpinBet: freeSpins.Bet},
		Multipliers: mult,
	}, nil
}

func (s *serv) History(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error) {
	return s.historyRepo.List(ctx, userID, model.GameCascade, limit)
}

func (s *serv) Stats() model.GameStats {
	return s.statsRepo.Snapshot()
}
