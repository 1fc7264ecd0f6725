package converter

import (
	roundDto "slot_engine/internal/api/dto/round"
	"slot_engine/internal/model"
	"time"
)

func ToFairnessDTO(f model.Fairness) roundDto.Fairness {
	return roundDto.Fairness{
		ServerSeed:     f.ServerSeed,
		ServerSeedHash: f.ServerSeedHash,
		ClientSeed:     f.ClientSeed,
		Nonce:          f.Nonce,
	}
}

func ToHistoryResponse(records []model.SpinRecord) roundDto.HistoryResponse {
	items := make([]roundDto.HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, roundDto.HistoryItem{
			RoundID:      r.RoundID,
			Mode:         string(r.Mode),
			Bet:          r.Bet,
			Debit:        r.Debit,
			Payout:       r.Payout,
			BalanceAfter: r.BalanceAfter,
			FreeSpins:    r.FreeSpins,
			Fairness:     ToFairnessDTO(r.Fairness),
			Outcome:      r.Outcome,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return roundDto.HistoryResponse{Items: items}
}

func ToStatsResponse(s model.GameStats) roundDto.StatsResponse {
	return roundDto.StatsResponse{
		Game:        string(s.Game),
		TotalSpins:  s.TotalSpins,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP,
		WindowRTP:   s.WindowRTP,
		TargetRTP:   s.TargetRTP,
		WindowSize:  s.WindowSize,
		Alert:       s.Alert,
	}
}
