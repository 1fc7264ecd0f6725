package engine

import (
	"fmt"
	"slot_engine/internal/model"

	"github.com/shopspring/decimal"
)

// BetRules допустимые ставки
type BetRules struct {
	Min  int64 `yaml:"min"`
	Max  int64 `yaml:"max"`
	Step int64 `yaml:"step"`
}

// Validate проверка самих правил
func (r BetRules) Validate() error {
	if r.Min <= 0 || r.Max < r.Min || r.Step <= 0 {
		return fmt.Errorf("%w: bet rules min=%d max=%d step=%d", ErrConfiguration, r.Min, r.Max, r.Step)
	}
	return nil
}

// Check проверка ставки
func (r BetRules) Check(bet int64) error {
	if bet < r.Min || bet > r.Max {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidBet, bet, r.Min, r.Max)
	}
	if bet%r.Step != 0 {
		return fmt.Errorf("%w: %d is not a multiple of %d", ErrInvalidBet, bet, r.Step)
	}
	return nil
}

// Limits параметры раунда, общие для обеих игр
type Limits struct {
	Bet BetRules `yaml:"bet"`
	// BuyBonusMultiplier цена покупки бонуса в ставках
	BuyBonusMultiplier int64 `yaml:"buy_bonus_multiplier"`
	// MaxWinXBet лимит выигрыша за раунд в ставках
	MaxWinXBet int64 `yaml:"max_win_x_bet"`
}

func (l Limits) Validate() error {
	if err := l.Bet.Validate(); err != nil {
		return err
	}
	if l.BuyBonusMultiplier <= 0 {
		return fmt.Errorf("%w: buy_bonus_multiplier must be positive", ErrConfiguration)
	}
	if l.MaxWinXBet <= 0 {
		return fmt.Errorf("%w: max_win_x_bet must be positive", ErrConfiguration)
	}
	return nil
}

// Prepare проверяет запрос и считает списание. Ничего не меняет.
// Ставка фриспина берется из состояния, ставка запроса только проверяется
func (l Limits) Prepare(req model.SpinRequest, state model.PlayerState) (model.Wager, error) {
	if err := l.Bet.Check(req.Bet); err != nil {
		return model.Wager{}, err
	}

	w := model.Wager{Bet: req.Bet, FreeSpinsLeft: state.FreeSpins}

	switch req.Mode {
	case model.ModeBuyBonus:
		if state.FreeSpins > 0 {
			return model.Wager{}, ErrBonusActive
		}
		w.Mode = model.ModeBuyBonus
		w.Debit = req.Bet * l.BuyBonusMultiplier
	case model.ModeFreeSpin:
		if state.FreeSpins <= 0 {
			return model.Wager{}, ErrNoFreeSpins
		}
		w.Mode = model.ModeFreeSpin
	case model.ModeBase, "":
		// Обычная кнопка спина сначала расходует фриспины
		if state.FreeSpins > 0 {
			w.Mode = model.ModeFreeSpin
		} else {
			w.Mode = model.ModeBase
			w.Debit = req.Bet
		}
	default:
		return model.Wager{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidBet, req.Mode)
	}

	if w.Mode == model.ModeFreeSpin {
		w.FreeSpinsLeft--
		// Фриспины играются на ставке, которая их выиграла
		if state.FreeSpinBet > 0 {
			w.Bet = state.FreeSpinBet
		}
	}

	if state.Balance < w.Debit {
		return model.Wager{}, fmt.Errorf("%w: balance %d, need %d", ErrInsufficientBalance, state.Balance, w.Debit)
	}
	return w, nil
}

// Cap ограничивает выигрыш лимитом
func (l Limits) Cap(total, bet int64) (int64, bool) {
	maxPay := l.MaxWinXBet * bet
	if total > maxPay {
		return maxPay, true
	}
	return total, false
}

// Payout выплата bet x multiplier с округлением вниз
func Payout(bet int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(bet).Mul(multiplier).Floor().IntPart()
}

// Settle баланс после раунда: balance - debit + payout
func Settle(balance int64, w model.Wager, payout int64) int64 {
	return balance - w.Debit + payout
}

// ForcedRange сколько бонус-символов ставится при покупке бонуса
type ForcedRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Validate диапазон помещается в cells ячеек и гарантирует хотя бы trigger символов
func (r ForcedRange) Validate(cells, trigger int) error {
	if r.Min < 1 || r.Max < r.Min || r.Max > cells {
		return fmt.Errorf("%w: buy bonus scatters %d..%d", ErrConfiguration, r.Min, r.Max)
	}
	if r.Min < trigger {
		return fmt.Errorf("%w: buy bonus must force at least %d symbols", ErrConfiguration, trigger)
	}
	return nil
}

// Pick количество в [Min, Max]
func (r ForcedRange) Pick(intN func(int) int) int {
	return r.Min + intN(r.Max-r.Min+1)
}
