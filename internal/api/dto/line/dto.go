package line

import "slot_engine/internal/api/dto/round"

type SpinRequest struct {
	Bet  int64  `json:"bet"`            // Ставка в минимальных единицах
	Mode string `json:"mode,omitempty"` // BASE, FREE_SPIN, BUY_BONUS. Пусто - BASE
}

type BuyBonusRequest struct {
	Bet int64 `json:"bet"` // Ставка, цена бонуса кратна ей
}

type SpinResponse struct {
	RoundID          string         `json:"round_id"`
	Mode             string         `json:"mode"`
	Bet              int64          `json:"bet"`
	Debit            int64          `json:"debit"`              // Списано с баланса
	Board            [][]string     `json:"board"`              // [барабан][ряд]
	LineWins         []LineWin      `json:"line_wins"`          // Выигрышные линии, scatter с line = -1
	ScatterCount     int            `json:"scatter_count"`      // Кол-во бонус-символов
	AwardedFreeSpins int            `json:"awarded_free_spins"` // Начислено в этом спине
	FreeSpinCount    int            `json:"free_spin_count"`    // Остаток фриспинов
	FreeSpinBet      int64          `json:"free_spin_bet"`      // Ставка фриспинов, 0 без них
	IsBonusActive    bool           `json:"is_bonus_active"`
	Capped           bool           `json:"capped"` // Выигрыш урезан лимитом
	TotalPayout      int64          `json:"total_payout"`
	Balance          int64          `json:"balance"` // Баланс после
	Fairness         round.Fairness `json:"fairness"`
}

type LineWin struct {
	Line       int      `json:"line"`   // 1-20
	Symbol     string   `json:"symbol"` // ID символа
	Count      int      `json:"count"`  // 3-5
	Multiplier string   `json:"multiplier"`
	Payout     int64    `json:"payout"`
	Positions  [][2]int `json:"positions"` // [барабан, ряд]
}

type DataResponse struct {
	Balance       int64 `json:"balance"`
	FreeSpinCount int   `json:"free_spin_count"`
	FreeSpinBet   int64 `json:"free_spin_bet"`
}
