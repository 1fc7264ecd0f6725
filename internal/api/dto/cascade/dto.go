package cascade

import "slot_engine/internal/api/dto/round"

type SpinRequest struct {
	Bet  int64  `json:"bet"`
	Mode string `json:"mode,omitempty"`
}

type BuyBonusRequest struct {
	Bet int64 `json:"bet"`
}

type SpinResponse struct {
	RoundID             string         `json:"round_id"`
	Mode                string         `json:"mode"`
	Bet                 int64          `json:"bet"`
	Debit               int64          `json:"debit"`
	InitialBoard        [][]int        `json:"initial_board"` // [ряд][колонка], 7 - scatter
	FinalBoard          [][]int        `json:"final_board"`
	Steps               []Step         `json:"steps"`
	ScatterCount        int            `json:"scatter_count"` // На финальном поле
	InitialScatterCount int            `json:"initial_scatter_count"`
	AwardedFreeSpins    int            `json:"awarded_free_spins"`
	FreeSpinCount       int            `json:"free_spin_count"`
	FreeSpinBet         int64          `json:"free_spin_bet"`
	IsBonusActive       bool           `json:"is_bonus_active"`
	Multipliers         [][]int        `json:"multipliers"` // Множители ячеек после раунда
	Capped              bool           `json:"capped"`
	TotalPayout         int64          `json:"total_payout"`
	Balance             int64          `json:"balance"`
	Fairness            round.Fairness `json:"fairness"`
}

type Step struct {
	Index      int         `json:"index"`
	Clusters   []Cluster   `json:"clusters"`
	NewSymbols []NewSymbol `json:"new_symbols"`
	Payout     int64       `json:"payout"`
}

type Cluster struct {
	Symbol        int      `json:"symbol"`
	Cells         [][2]int `json:"cells"` // [ряд, колонка]
	Size          int      `json:"size"`
	PayMultiplier string   `json:"pay_multiplier"`
	Multiplier    int      `json:"multiplier"` // Средний множитель ячеек
	Payout        int64    `json:"payout"`
}

type NewSymbol struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Symbol int `json:"symbol"`
}

type DataResponse struct {
	Balance       int64   `json:"balance"`
	FreeSpinCount int     `json:"free_spin_count"`
	FreeSpinBet   int64   `json:"free_spin_bet"`
	Multipliers   [][]int `json:"multipliers"`
}
