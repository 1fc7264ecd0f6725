package model

// Mode режим раунда
type Mode string

const (
	ModeBase     Mode = "BASE"
	ModeFreeSpin Mode = "FREE_SPIN"
	ModeBuyBonus Mode = "BUY_BONUS"
)

// Game идентификатор игры
type Game string

const (
	GameLine    Game = "line"
	GameCascade Game = "cascade"
)

// SpinRequest запрос на один раунд
type SpinRequest struct {
	Bet  int64
	Mode Mode
}

// PlayerState состояние игрока до раунда
type PlayerState struct {
	Balance   int64
	FreeSpins int
	// FreeSpinBet ставка, на которой играются оставшиеся фриспины
	FreeSpinBet int64
	// Множители ячеек каскадной игры, для линейной игры не используются
	Multipliers MultiplierState
}

// Wager результат проверки запроса: фактический режим, списание и остаток фриспинов после списания
type Wager struct {
	Mode          Mode
	Bet           int64
	Debit         int64
	FreeSpinsLeft int
}

// NextFreeSpinBet ставка фриспинов после раунда: ставка этого раунда, пока фриспины остаются
func (w Wager) NextFreeSpinBet(left int) int64 {
	if left > 0 {
		return w.Bet
	}
	return 0
}

// FreeSpins хранимое состояние фриспинов игрока
type FreeSpins struct {
	Count int
	Bet   int64
}

// Data баланс и фриспины для check-data
type Data struct {
	Balance       int64
	FreeSpinCount int
	FreeSpinBet   int64
}

// CascadeData check-data каскадной игры с текущими множителями ячеек
type CascadeData struct {
	Data
	Multipliers MultiplierState
}
