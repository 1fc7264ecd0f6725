package line

import (
	"slot_engine/internal/engine"
	"slot_engine/internal/model"

	"github.com/shopspring/decimal"
)

// minRun минимальная длина выигрышной цепочки
const minRun = 3

// Evaluation выигрыши одного поля
type Evaluation struct {
	Wins          []model.LineWin
	LinePayout    int64
	ScatterPayout int64
	TotalPayout   int64
	BonusCount    int
}

// Evaluator оценка линий и бонус-символов
type Evaluator struct {
	paylines []model.Payline
	paytable map[model.LineSymbol]map[int]decimal.Decimal
}

// NewEvaluator оценщик для линий и таблицы выплат
func NewEvaluator(paylines []model.Payline, paytable map[model.LineSymbol]map[int]decimal.Decimal) *Evaluator {
	return &Evaluator{paylines: paylines, paytable: paytable}
}

// Evaluate считает выигрыши поля при ставке bet
func (e *Evaluator) Evaluate(board model.LineBoard, bet int64) Evaluation {
	var res Evaluation

	for i, pl := range e.paylines {
		win, ok := e.evaluateLine(board, i+1, pl, bet)
		if !ok {
			continue
		}
		res.Wins = append(res.Wins, win)
		res.LinePayout += win.Payout
	}

	// Бонус-символы платят в любом месте поля
	var positions []model.ReelPosition
	for reel := range board {
		for row, sym := range board[reel] {
			if sym == model.SymbolBonus {
				positions = append(positions, model.ReelPosition{Reel: reel, Row: row})
			}
		}
	}
	res.BonusCount = len(positions)
	if res.BonusCount >= 2 {
		m, ok := e.paytable[model.SymbolBonus][res.BonusCount]
		if payout := engine.Payout(bet, m); ok && payout > 0 {
			win := model.LineWin{
				Line:       -1,
				Symbol:     model.SymbolBonus,
				Count:      res.BonusCount,
				Multiplier: m,
				Payout:     payout,
				Positions:  positions,
			}
			res.Wins = append(res.Wins, win)
			res.ScatterPayout = win.Payout
		}
	}

	res.TotalPayout = res.LinePayout + res.ScatterPayout
	return res
}

// evaluateLine первая ячейка линии задаёт символ. Линия, начинающаяся с W или B, не платит
func (e *Evaluator) evaluateLine(board model.LineBoard, index int, pl model.Payline, bet int64) (model.LineWin, bool) {
	base := board[0][pl[0]]
	if base == model.SymbolWild || base == model.SymbolBonus {
		return model.LineWin{}, false
	}

	count := 0
	for reel, row := range pl {
		sym := board[reel][row]
		if sym != base && sym != model.SymbolWild {
			break
		}
		count++
	}
	if count < minRun {
		return model.LineWin{}, false
	}

	m, ok := e.paytable[base][count]
	if !ok {
		return model.LineWin{}, false
	}
	// Выигрыш, округлившийся до нуля, не записывается
	payout := engine.Payout(bet, m)
	if payout <= 0 {
		return model.LineWin{}, false
	}

	positions := make([]model.ReelPosition, count)
	for reel := 0; reel < count; reel++ {
		positions[reel] = model.ReelPosition{Reel: reel, Row: pl[reel]}
	}
	return model.LineWin{
		Line:       index,
		Symbol:     base,
		Count:      count,
		Multiplier: m,
		Payout:     payout,
		Positions:  positions,
	}, true
}
