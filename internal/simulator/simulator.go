// Package simulator прогон большого числа раундов на детерминированном источнике для оценки RTP
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slot_engine/internal/engine/cascade"
	"slot_engine/internal/engine/line"
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/model"
	"time"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// bottomlessBalance баланс, который не кончается за прогон
const bottomlessBalance = math.MaxInt64 / 4

// maxChain защита от бесконечной цепочки ретриггеров
const maxChain = 100_000

var ErrInvalidOptions = errors.New("invalid simulation options")

// Step результат одного спина в терминах симулятора
type Step struct {
	Debit     int64
	Payout    int64
	Awarded   int
	FreeSpins int
	State     model.PlayerState
}

// SpinFunc один спин игры с переносом состояния игрока
type SpinFunc func(req model.SpinRequest, state model.PlayerState, src rng.Source) (Step, error)

func Line(g *line.Game) SpinFunc {
	return func(req model.SpinRequest, state model.PlayerState, src rng.Source) (Step, error) {
		out, err := g.Spin(req, state, src)
		if err != nil {
			return Step{}, err
		}
		return Step{
			Debit:     out.Debit,
			Payout:    out.TotalPayout,
			Awarded:   out.AwardedFreeSpins,
			FreeSpins: out.FreeSpinsRemaining,
			State: model.PlayerState{
				Balance:     out.NewBalance,
				FreeSpins:   out.FreeSpinsRemaining,
				FreeSpinBet: out.FreeSpinBet,
			},
		}, nil
	}
}

func Cascade(g *cascade.Game) SpinFunc {
	return func(req model.SpinRequest, state model.PlayerState, src rng.Source) (Step, error) {
		out, err := g.Spin(req, state, src)
		if err != nil {
			return Step{}, err
		}
		return Step{
			Debit:     out.Debit,
			Payout:    out.TotalPayout,
			Awarded:   out.AwardedFreeSpins,
			FreeSpins: out.FreeSpinsRemaining,
			State: model.PlayerState{
				Balance:     out.NewBalance,
				FreeSpins:   out.FreeSpinsRemaining,
				FreeSpinBet: out.FreeSpinBet,
				Multipliers: out.Multipliers,
			},
		}, nil
	}
}

type Options struct {
	Game   model.Game
	Rounds int
	Bet    int64
	Seed   uint64
	// Mode BASE или BUY_BONUS, пусто - BASE
	Mode model.Mode
	// Progress куда рисовать прогресс, nil - без прогресса
	Progress io.Writer
}

func (o Options) validate() error {
	if o.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be positive", ErrInvalidOptions)
	}
	if o.Bet <= 0 {
		return fmt.Errorf("%w: bet must be positive", ErrInvalidOptions)
	}
	switch o.Mode {
	case "", model.ModeBase, model.ModeBuyBonus:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidOptions, o.Mode)
	}
	return nil
}

// Run играет Rounds платных раундов. Фриспины, выпавшие в раунде, доигрываются
// в нём же и входят в его выигрыш
func Run(ctx context.Context, spin SpinFunc, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	mode := opts.Mode
	if mode == "" {
		mode = model.ModeBase
	}

	src := rng.NewSeeded(opts.Seed)
	rep := &Report{Game: opts.Game, Mode: mode, Rounds: opts.Rounds, Bet: opts.Bet, Seed: opts.Seed}
	returns := make([]float64, 0, opts.Rounds)
	state := model.PlayerState{}

	bar := pb.StartNew(opts.Rounds)
	if opts.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(opts.Progress)
	}
	defer bar.Finish()

	for i := 0; i < opts.Rounds; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		state.Balance = bottomlessBalance
		step, err := spin(model.SpinRequest{Bet: opts.Bet, Mode: mode}, state, src)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		state = step.State

		debit, win := step.Debit, step.Payout
		rep.BaseWin += step.Payout
		if step.Awarded > 0 {
			rep.Triggers++
		}

		for chain := 0; state.FreeSpins > 0; chain++ {
			if chain == maxChain {
				return nil, fmt.Errorf("round %d: free spin chain exceeds %d", i, maxChain)
			}
			state.Balance = bottomlessBalance
			free, err := spin(model.SpinRequest{Bet: opts.Bet, Mode: model.ModeFreeSpin}, state, src)
			if err != nil {
				return nil, fmt.Errorf("round %d free spin: %w", i, err)
			}
			state = free.State
			win += free.Payout
			rep.FreeWin += free.Payout
			rep.FreeSpinsPlayed++
			if free.Awarded > 0 {
				rep.Retriggers++
			}
		}

		rep.TotalBet += debit
		rep.TotalWin += win
		if win > 0 {
			rep.HitRounds++
		}
		if win > rep.MaxWin {
			rep.MaxWin = win
		}
		returns = append(returns, float64(win)/float64(debit))
		bar.Increment()
	}

	rep.Elapsed = time.Since(bar.StartTime())
	rep.summarize(returns)
	return rep, nil
}

// summarize RTP как среднее возвратов раундов, доверительный интервал нормальный
func (r *Report) summarize(returns []float64) {
	mean, std := stat.MeanStdDev(returns, nil)
	r.RTP = mean
	r.Std = std
	if mean > 0 {
		r.CV = std / mean
	}
	r.HitRate = float64(r.HitRounds) / float64(r.Rounds)
	r.MaxWinX = float64(r.MaxWin) / float64(r.Bet)

	if len(returns) > 1 {
		z := distuv.UnitNormal.Quantile(0.975)
		half := z * std / math.Sqrt(float64(len(returns)))
		r.CI = Interval{Lo: mean - half, Hi: mean + half}
	} else {
		r.CI = Interval{Lo: mean, Hi: mean}
	}
}
