package round

import jsoniter "github.com/json-iterator/go"

// Fairness данные для проверки раунда
type Fairness struct {
	ServerSeed     string `json:"server_seed"`      // Раскрытый серверный сид
	ServerSeedHash string `json:"server_seed_hash"` // sha256 сида
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
}

type HistoryItem struct {
	RoundID      string              `json:"round_id"`
	Mode         string              `json:"mode"`
	Bet          int64               `json:"bet"`
	Debit        int64               `json:"debit"`
	Payout       int64               `json:"payout"`
	BalanceAfter int64               `json:"balance_after"`
	FreeSpins    int                 `json:"free_spin_count"`
	Fairness     Fairness            `json:"fairness"`
	Outcome      jsoniter.RawMessage `json:"outcome"`
	CreatedAt    string              `json:"created_at"` // RFC3339
}

type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

type StatsResponse struct {
	Game        string `json:"game"`
	TotalSpins  int64  `json:"total_spins"`
	TotalBet    string `json:"total_bet"`
	TotalPayout string `json:"total_payout"`
	CurrentRTP  string `json:"current_rtp"`
	WindowRTP   string `json:"window_rtp"`
	TargetRTP   string `json:"target_rtp"`
	WindowSize  int    `json:"window_size"`
	Alert       bool   `json:"alert"`
}
