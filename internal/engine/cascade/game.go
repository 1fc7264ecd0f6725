package cascade

import (
	"fmt"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/model"
)

// Game каскадная игра
type Game struct {
	cfg      Config
	resolver *Resolver
}

// New проверяет конфигурацию и собирает игру
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cascade config: %w", err)
	}
	return &Game{cfg: cfg, resolver: NewResolver(cfg)}, nil
}

func (g *Game) Config() Config {
	return g.cfg
}

// Generate начальное поле. При покупке бонуса в разные ячейки ставится от Min до Max scatter
func (g *Game) Generate(src rng.Source, mode model.Mode) model.CascadeBoard {
	board := model.NewCascadeBoard(g.cfg.Rows, g.cfg.Cols)
	for r := 0; r < g.cfg.Rows; r++ {
		for c := 0; c < g.cfg.Cols; c++ {
			board[r][c] = g.cfg.Weights.Draw(src)
		}
	}
	if mode != model.ModeBuyBonus {
		return board
	}

	k := g.cfg.BuyBonusScatters.Pick(src.IntN)
	cells := make([]int, g.cfg.Rows*g.cfg.Cols)
	for i := range cells {
		cells[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
		board[cells[i]/g.cfg.Cols][cells[i]%g.cfg.Cols] = model.CascadeScatter
	}
	return board
}

// Spin один раунд. Множители сбрасываются на каждом платном раунде и переносятся между фриспинами.
// Scatter считаются на финальном поле: они не участвуют в кластерах, поэтому это начальные плюс досыпанные
func (g *Game) Spin(req model.SpinRequest, state model.PlayerState, src rng.Source) (model.CascadeOutcome, error) {
	w, err := g.cfg.Prepare(req, state)
	if err != nil {
		return model.CascadeOutcome{}, err
	}

	mult := state.Multipliers
	if w.Mode != model.ModeFreeSpin || !mult.Fits(g.cfg.Rows, g.cfg.Cols) {
		mult = model.NewMultiplierState(g.cfg.Rows, g.cfg.Cols)
	}

	initial := g.Generate(src, w.Mode)
	res, err := g.resolver.Resolve(initial, w.Bet, mult, src)
	if err != nil {
		return model.CascadeOutcome{}, err
	}

	scatters := res.Final.Count(model.CascadeScatter)
	awarded := g.cfg.FreeSpins.Award(scatters)
	total, capped := g.cfg.Cap(res.TotalPayout, w.Bet)
	left := w.FreeSpinsLeft + awarded

	return model.CascadeOutcome{
		Mode:                w.Mode,
		Bet:                 w.Bet,
		Debit:               w.Debit,
		InitialBoard:        initial,
		FinalBoard:          res.Final,
		Steps:               res.Steps,
		ScatterCount:        scatters,
		InitialScatterCount: initial.Count(model.CascadeScatter),
		AwardedFreeSpins:    awarded,
		FreeSpinsRemaining:  left,
		IsBonusActive:       left > 0,
		FreeSpinBet:         w.NextFreeSpinBet(left),
		Multipliers:         res.Multipliers,
		Capped:              capped,
		TotalPayout:         total,
		NewBalance:          engine.Settle(state.Balance, w, total),
	}, nil
}
