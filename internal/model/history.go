package model

import "time"

// Fairness данные для проверки раунда: хэш серверного сида публикуется, сам сид раскрывается после раунда
type Fairness struct {
	ServerSeed     string
	ServerSeedHash string
	ClientSeed     string
	Nonce          uint64
}

// SpinRecord запись истории раунда
type SpinRecord struct {
	RoundID      string
	UserID       int
	Game         Game
	Mode         Mode
	Bet          int64
	Debit        int64
	Payout       int64
	BalanceAfter int64
	FreeSpins    int
	Fairness     Fairness
	// Outcome сериализованный LineOutcome или CascadeOutcome
	Outcome   []byte
	CreatedAt time.Time
}

// GameStats снимок статистики RTP игры
type GameStats struct {
	Game        Game
	TotalSpins  int64
	TotalBet    string
	TotalPayout string
	CurrentRTP  string
	WindowRTP   string
	TargetRTP   string
	WindowSize  int
	Alert       bool
}

// LineRound завершенный раунд линейной игры
type LineRound struct {
	RoundID  string
	Fairness Fairness
	Outcome  LineOutcome
}

// CascadeRound завершенный раунд каскадной игры
type CascadeRound struct {
	RoundID  string
	Fairness Fairness
	Outcome  CascadeOutcome
}
