package converter

import (
	dto "slot_engine/internal/api/dto/line"
	"slot_engine/internal/model"
)

func ToLineSpin(req dto.SpinRequest) model.SpinRequest {
	return model.SpinRequest{Bet: req.Bet, Mode: model.Mode(req.Mode)}
}

func ToLineSpinResponse(r model.LineRound) dto.SpinResponse {
	out := r.Outcome

	board := make([][]string, len(out.Board))
	for reel, syms := range out.Board {
		board[reel] = make([]string, len(syms))
		for row, s := range syms {
			board[reel][row] = string(s)
		}
	}

	wins := make([]dto.LineWin, 0, len(out.Wins))
	for _, w := range out.Wins {
		pos := make([][2]int, len(w.Positions))
		for i, p := range w.Positions {
			pos[i] = [2]int{p.Reel, p.Row}
		}
		wins = append(wins, dto.LineWin{
			Line:       w.Line,
			Symbol:     string(w.Symbol),
			Count:      w.Count,
			Multiplier: w.Multiplier.String(),
			Payout:     w.Payout,
			Positions:  pos,
		})
	}

	return dto.SpinResponse{
		RoundID:          r.RoundID,
		Mode:             string(out.Mode),
		Bet:              out.Bet,
		Debit:            out.Debit,
		Board:            board,
		LineWins:         wins,
		ScatterCount:     out.ScatterCount,
		AwardedFreeSpins: out.AwardedFreeSpins,
		FreeSpinCount:    out.FreeSpinsRemaining,
		FreeSpinBet:      out.FreeSpinBet,
		IsBonusActive:    out.IsBonusActive,
		Capped:           out.Capped,
		TotalPayout:      out.TotalPayout,
		Balance:          out.NewBalance,
		Fairness:         ToFairnessDTO(r.Fairness),
	}
}

func ToLineDataResponse(d model.Data) dto.DataResponse {
	return dto.DataResponse{Balance: d.Balance, FreeSpinCount: d.FreeSpinCount, FreeSpinBet: d.FreeSpinBet}
}
