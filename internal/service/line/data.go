package line

import (
	"context"
	"slot_engine/internal/model"
)

func (s *serv) CheckData(ctx context.Context, userID int) (*model.Data, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	freeSpins, err := s.repo.GetFreeSpins(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Data{Balance: balance, FreeSpinCount: freeSpins.Count, FreeSpinBet: freeSpins.Bet}, nil
}

func (s *serv) History(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error) {
	return s.historyRepo.List(ctx, userID, model.GameLine, limit)
}

func (s *serv) Stats() model.GameStats {
	return s.statsRepo.Snapshot()
}
