package model

import "github.com/shopspring/decimal"

// GameState накопленная статистика игры
type GameState struct {
	TotalSpins  int64
	TotalBet    decimal.Decimal // Сумма всех списаний
	TotalPayout decimal.Decimal // Сумма всех выплат

	CurrentRTP decimal.Decimal // TotalPayout/TotalBet*100
	TargetRTP  decimal.Decimal

	// Alert RTP окна ушел от целевого дальше критического отклонения
	Alert bool

	SpinWindow []SpinResult // Окно последних спинов
	WindowBet  decimal.Decimal
	WindowPay  decimal.Decimal
	WindowRTP  decimal.Decimal
	WindowSize int
}

// SpinResult спин в окне
type SpinResult struct {
	Bet    int64
	Payout int64
}
