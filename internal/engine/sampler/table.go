// Package sampler взвешенный выбор символов.
package sampler

import (
	"fmt"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/rng"
)

// Weight символ и его вес
type Weight[S comparable] struct {
	Symbol S   `yaml:"symbol"`
	Weight int `yaml:"weight"`
}

// Table упорядоченная таблица весов. Порядок важен для воспроизводимости
type Table[S comparable] []Weight[S]

func (t Table[S]) Total() int {
	total := 0
	for _, w := range t {
		total += w.Weight
	}
	return total
}

// Validate пустая таблица, отрицательный вес или нулевая сумма считаются ошибкой конфигурации
func (t Table[S]) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty weight table", engine.ErrConfiguration)
	}
	for _, w := range t {
		if w.Weight < 0 {
			return fmt.Errorf("%w: negative weight %d for %v", engine.ErrConfiguration, w.Weight, w.Symbol)
		}
	}
	if t.Total() == 0 {
		return fmt.Errorf("%w: weight table sums to zero", engine.ErrConfiguration)
	}
	return nil
}

// Draw выбирает символ: r в [0, total), вычитаем веса по порядку, пока остаток не станет отрицательным.
// Таблица должна пройти Validate
func (t Table[S]) Draw(src rng.Source) S {
	r := src.IntN(t.Total())
	for _, w := range t {
		if r < w.Weight {
			return w.Symbol
		}
		r -= w.Weight
	}
	return t[len(t)-1].Symbol
}

// Contains есть ли символ с ненулевым весом
func (t Table[S]) Contains(sym S) bool {
	for _, w := range t {
		if w.Symbol == sym && w.Weight > 0 {
			return true
		}
	}
	return false
}
