package model

import "github.com/shopspring/decimal"

// LineSymbol символ линейного слота (S1..S8, W, B)
type LineSymbol string

const (
	SymbolWild  LineSymbol = "W"
	SymbolBonus LineSymbol = "B"
)

// LineBoard игровое поле [барабан][строка]
type LineBoard [][]LineSymbol

// NewLineBoard пустое поле reels x rows
func NewLineBoard(reels, rows int) LineBoard {
	b := make(LineBoard, reels)
	for r := range b {
		b[r] = make([]LineSymbol, rows)
	}
	return b
}

// Count количество символа на поле
func (b LineBoard) Count(sym LineSymbol) int {
	n := 0
	for _, reel := range b {
		for _, s := range reel {
			if s == sym {
				n++
			}
		}
	}
	return n
}

// Payline номер строки на каждом барабане
type Payline []int

// ReelPosition ячейка линейного поля
type ReelPosition struct {
	Reel int
	Row  int
}

// LineWin выигрыш по линии. Line = -1 для выплаты за бонус-символы
type LineWin struct {
	Line       int
	Symbol     LineSymbol
	Count      int
	Multiplier decimal.Decimal
	Payout     int64
	Positions  []ReelPosition
}

// LineOutcome итог раунда линейной игры
type LineOutcome struct {
	Mode  Mode
	Bet   int64
	Debit int64

	Board        LineBoard
	Wins         []LineWin
	ScatterCount int

	AwardedFreeSpins   int
	FreeSpinsRemaining int
	IsBonusActive      bool
	// FreeSpinBet ставка оставшихся фриспинов, 0 без фриспинов
	FreeSpinBet int64

	// Capped true, если сумма выигрышей упёрлась в лимит
	Capped      bool
	TotalPayout int64
	NewBalance  int64
}
