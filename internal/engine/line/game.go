package line

import (
	"fmt"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/model"
)

// Game линейная игра: проверка ставки, генерация, оценка, начисление фриспинов и баланса
type Game struct {
	cfg  Config
	gen  *Generator
	eval *Evaluator
}

// New проверяет конфигурацию и собирает игру
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("line config: %w", err)
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("line config: %w", err)
	}
	return &Game{
		cfg:  cfg,
		gen:  gen,
		eval: NewEvaluator(cfg.Paylines, cfg.Paytable),
	}, nil
}

func (g *Game) Config() Config {
	return g.cfg
}

// Spin один раунд. state не изменяется, при ошибке ничего не посчитано
func (g *Game) Spin(req model.SpinRequest, state model.PlayerState, src rng.Source) (model.LineOutcome, error) {
	w, err := g.cfg.Prepare(req, state)
	if err != nil {
		return model.LineOutcome{}, err
	}

	board := g.gen.Generate(src, w.Mode)
	ev := g.eval.Evaluate(board, w.Bet)
	total, capped := g.cfg.Cap(ev.TotalPayout, w.Bet)
	awarded := g.cfg.FreeSpins.Award(ev.BonusCount)
	left := w.FreeSpinsLeft + awarded

	return model.LineOutcome{
		Mode:               w.Mode,
		Bet:                w.Bet,
		Debit:              w.Debit,
		Board:              board,
		Wins:               ev.Wins,
		ScatterCount:       ev.BonusCount,
		AwardedFreeSpins:   awarded,
		FreeSpinsRemaining: left,
		IsBonusActive:      left > 0,
		FreeSpinBet:        w.NextFreeSpinBet(left),
		Capped:             capped,
		TotalPayout:        total,
		NewBalance:         engine.Settle(state.Balance, w, total),
	}, nil
}
