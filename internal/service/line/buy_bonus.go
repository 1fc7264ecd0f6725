package line

import (
	"context"
	"slot_engine/internal/model"
)

// BuyBonus покупка бонуса, цена в ставках из конфигурации игры. Запрещена при активных фриспинах
func (s *serv) BuyBonus(ctx context.Context, userID int, bet int64) (*model.LineRound, error) {
	return s.Spin(ctx, userID, model.SpinRequest{Bet: bet, Mode: model.ModeBuyBonus})
}
