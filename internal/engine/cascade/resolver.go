package cascade

import (
	"fmt"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/model"

	"github.com/shopspring/decimal"
)

// Resolution итог разрешения каскадов
type Resolution struct {
	Steps       []model.CascadeStep
	Final       model.CascadeBoard
	TotalPayout int64
	Multipliers model.MultiplierState
}

// Resolver цикл кластеры -> выплата -> удаление -> гравитация -> досыпка
type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve разрешает каскады начиная с initial. initial и mult не изменяются.
// Больше MaxCascadeSteps шагов считается ошибкой конфигурации
func (r *Resolver) Resolve(initial model.CascadeBoard, bet int64, mult model.MultiplierState, src rng.Source) (Resolution, error) {
	board := initial.Clone()
	state := mult.Clone()
	if !state.Fits(board.Rows(), board.Cols()) {
		state = model.NewMultiplierState(board.Rows(), board.Cols())
	}

	var res Resolution
	for idx := 0; ; idx++ {
		clusters := FindClusters(board, r.cfg.MinClusterSize)
		if len(clusters) == 0 {
			break
		}
		if idx >= r.cfg.MaxCascadeSteps {
			return Resolution{}, fmt.Errorf("%w: cascade did not settle in %d steps", engine.ErrConfiguration, r.cfg.MaxCascadeSteps)
		}

		step := model.CascadeStep{Index: idx}
		for _, cl := range clusters {
			r.score(&cl, state, bet)
			step.Payout += cl.Payout
			step.Clusters = append(step.Clusters, cl)
		}
		// Кластеры не пересекаются, удаляем после подсчёта всех
		for _, cl := range clusters {
			r.remove(cl, board, state)
		}

		Collapse(board)
		step.NewSymbols = Refill(board, r.cfg.Weights, src)

		res.TotalPayout += step.Payout
		res.Steps = append(res.Steps, step)
	}

	res.Final = board
	res.Multipliers = state
	return res, nil
}

// score выплата кластера: bet x paytable[symbol][tier] x средний множитель ячеек
func (r *Resolver) score(cl *model.Cluster, state model.MultiplierState, bet int64) {
	cl.PayMultiplier = r.pay(cl.Symbol, cl.Size)
	cl.Multiplier = 1
	if r.cfg.Multipliers.Enabled {
		cl.Multiplier = averageMultiplier(cl.Cells, state)
	}
	cl.Payout = engine.Payout(bet, cl.PayMultiplier.Mul(decimal.NewFromInt(int64(cl.Multiplier))))
}

func (r *Resolver) pay(sym model.CascadeSymbol, size int) decimal.Decimal {
	pays, ok := r.cfg.Paytable[sym]
	if !ok {
		return decimal.Zero
	}
	return pays[r.cfg.tier(size)]
}

// remove очищает ячейки и обновляет счётчики попаданий
func (r *Resolver) remove(cl model.Cluster, board model.CascadeBoard, state model.MultiplierState) {
	rules := r.cfg.Multipliers
	for _, p := range cl.Cells {
		board[p.Row][p.Col] = model.CascadeEmpty
		if !rules.Enabled {
			continue
		}
		state.Hits[p.Row][p.Col]++
		if hits := state.Hits[p.Row][p.Col]; hits >= 2 {
			m := rules.Start
			for i := 2; i < hits && m < rules.Max; i++ {
				m *= 2
			}
			state.Mult[p.Row][p.Col] = min(m, rules.Max)
		}
	}
}

// averageMultiplier среднее с округлением вниз, не меньше 1
func averageMultiplier(cells []model.Position, state model.MultiplierState) int {
	if len(cells) == 0 {
		return 1
	}
	sum := 0
	for _, p := range cells {
		sum += state.Mult[p.Row][p.Col]
	}
	return max(sum/len(cells), 1)
}
