package line

import (
	"context"
	"fmt"
	"slot_engine/internal/locker"
	"slot_engine/internal/model"
	"slot_engine/internal/service/round"

	"go.uber.org/zap"
)

// Spin раунд под блокировкой игрока в одной транзакции:
// баланс FOR UPDATE, фриспины, движок, новый баланс, фриспины, история
func (s *serv) Spin(ctx context.Context, userID int, req model.SpinRequest) (*model.LineRound, error) {
	unlock, err := s.locker.Lock(ctx, locker.Key(userID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	roundID := round.NewID()
	src, fair := s.rng(roundID)

	var out model.LineOutcome
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.userRepo.GetBalanceForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		freeSpins, err := s.repo.GetFreeSpins(txCtx, userID)
		if err != nil {
			return fmt.Errorf("get free spins: %w", err)
		}

		// Ошибка движка откатывает транзакцию, состояние не меняется
		out, err = s.game.Spin(req, model.PlayerState{Balance: balance, FreeSpins: freeSpins.Count, FreeSpinBet: freeSpins.Bet}, src)
		if err != nil {
			return err
		}

		if err = s.userRepo.UpdateBalance(txCtx, userID, out.NewBalance); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		next := model.FreeSpins{Count: out.FreeSpinsRemaining, Bet: out.FreeSpinBet}
		if next != freeSpins {
			if err = s.repo.UpdateFreeSpins(txCtx, userID, next); err != nil {
				return fmt.Errorf("update free spins: %w", err)
			}
		}

		rec, err := round.Record{
			RoundID:   roundID,
			UserID:    userID,
			Game:      model.GameLine,
			Mode:      out.Mode,
			Bet:       out.Bet,
			Debit:     out.Debit,
			Payout:    out.TotalPayout,
			Balance:   out.NewBalance,
			FreeSpins: out.FreeSpinsRemaining,
			Fairness:  fair,
		}.Build(out)
		if err != nil {
			return err
		}
		if err = s.historyRepo.Save(txCtx, rec); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.statsRepo.Record(out.Debit, out.TotalPayout)
	s.log.Debug("spin",
		zap.String("round", roundID),
		zap.Int("user", userID),
		zap.String("mode", string(out.Mode)),
		zap.Int64("bet", out.Bet),
		zap.Int64("payout", out.TotalPayout),
		zap.Int("free_spins", out.FreeSpinsRemaining),
	)

	return &model.LineRound{RoundID: roundID, Fairness: fair, Outcome: out}, nil
}
