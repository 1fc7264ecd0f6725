// Package engine общие правила раунда: проверка ставки, выбор режима, списание и начисление.
package engine

import "errors"

var (
	// ErrInvalidBet ставка вне допустимого диапазона или шага
	ErrInvalidBet = errors.New("invalid bet")
	// ErrInsufficientBalance баланса не хватает на ставку или покупку бонуса
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrConfiguration некорректная конфигурация игры
	ErrConfiguration = errors.New("configuration error")
	// ErrBonusActive покупка бонуса при оставшихся фриспинах
	ErrBonusActive = errors.New("free spins are not empty")
	// ErrNoFreeSpins запрошен фриспин, а фриспинов нет
	ErrNoFreeSpins = errors.New("no free spins left")
)
