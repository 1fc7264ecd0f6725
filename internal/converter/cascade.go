package converter

import (
	dto "slot_engine/internal/api/dto/cascade"
	"slot_engine/internal/model"
)

func ToCascadeSpin(req dto.SpinRequest) model.SpinRequest {
	return model.SpinRequest{Bet: req.Bet, Mode: model.Mode(req.Mode)}
}

func cascadeBoard(b model.CascadeBoard) [][]int {
	out := make([][]int, len(b))
	for r, row := range b {
		out[r] = make([]int, len(row))
		for c, s := range row {
			out[r][c] = int(s)
		}
	}
	return out
}

func copyMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for r := range m {
		out[r] = append([]int(nil), m[r]...)
	}
	return out
}

func toClusterDTO(cl model.Cluster) dto.Cluster {
	cells := make([][2]int, len(cl.Cells))
	for i, p := range cl.Cells {
		cells[i] = [2]int{p.Row, p.Col}
	}
	return dto.Cluster{
		Symbol:        int(cl.Symbol),
		Cells:         cells,
		Size:          cl.Size,
		PayMultiplier: cl.PayMultiplier.String(),
		Multiplier:    cl.Multiplier,
		Payout:        cl.Payout,
	}
}

func ToCascadeSpinResponse(r model.CascadeRound) dto.SpinResponse {
	out := r.Outcome

	steps := make([]dto.Step, 0, len(out.Steps))
	for _, st := range out.Steps {
		clusters := make([]dto.Cluster, 0, len(st.Clusters))
		for _, cl := range st.Clusters {
			clusters = append(clusters, toClusterDTO(cl))
		}
		news := make([]dto.NewSymbol, 0, len(st.NewSymbols))
		for _, ns := range st.NewSymbols {
			news = append(news, dto.NewSymbol{Row: ns.Row, Col: ns.Col, Symbol: int(ns.Symbol)})
		}
		steps = append(steps, dto.Step{
			Index:      st.Index,
			Clusters:   clusters,
			NewSymbols: news,
			Payout:     st.Payout,
		})
	}

	return dto.SpinResponse{
		RoundID:             r.RoundID,
		Mode:                string(out.Mode),
		Bet:                 out.Bet,
		Debit:               out.Debit,
		InitialBoard:        cascadeBoard(out.InitialBoard),
		FinalBoard:          cascadeBoard(out.FinalBoard),
		Steps:               steps,
		ScatterCount:        out.ScatterCount,
		InitialScatterCount: out.InitialScatterCount,
		AwardedFreeSpins:    out.AwardedFreeSpins,
		FreeSpinCount:       out.FreeSpinsRemaining,
		FreeSpinBet:         out.FreeSpinBet,
		IsBonusActive:       out.IsBonusActive,
		Multipliers:         copyMatrix(out.Multipliers.Mult),
		Capped:              out.Capped,
		TotalPayout:         out.TotalPayout,
		Balance:             out.NewBalance,
		Fairness:            ToFairnessDTO(r.Fairness),
	}
}

func ToCascadeDataResponse(d model.CascadeData) dto.DataResponse {
	return dto.DataResponse{
		Balance:       d.Balance,
		FreeSpinCount: d.FreeSpinCount,
		FreeSpinBet:   d.FreeSpinBet,
		Multipliers:   copyMatrix(d.Multipliers.Mult),
	}
}
