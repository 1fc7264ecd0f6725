package sampler

import (
	"fmt"
	"slices"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/rng"
)

// Source источник символов с учётом позиции и режима.
// На wild-барабанах используется отдельная таблица, в бонусном режиме там же
// с вероятностью wildChance выпадает wild без обращения к таблице.
type Source[S comparable] struct {
	base       Table[S]
	wild       Table[S]
	wildReels  []int
	wildSymbol S
	wildChance float64
}

// NewSource проверяет таблицы. Пустая wild-таблица означает base на всех позициях
func NewSource[S comparable](base, wild Table[S], wildReels []int, wildSymbol S, wildChance float64) (*Source[S], error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base weights: %w", err)
	}
	if len(wild) == 0 {
		wild = base
	}
	if err := wild.Validate(); err != nil {
		return nil, fmt.Errorf("wild reel weights: %w", err)
	}
	if wildChance < 0 || wildChance > 1 {
		return nil, fmt.Errorf("%w: wild chance %v outside [0, 1]", engine.ErrConfiguration, wildChance)
	}
	return &Source[S]{
		base:       base,
		wild:       wild,
		wildReels:  slices.Clone(wildReels),
		wildSymbol: wildSymbol,
		wildChance: wildChance,
	}, nil
}

// WildEligible можно ли wild на барабане
func (s *Source[S]) WildEligible(reel int) bool {
	return slices.Contains(s.wildReels, reel)
}

// WildReels барабаны, на которых возможен wild
func (s *Source[S]) WildReels() []int {
	return s.wildReels
}

// Draw символ для барабана reel
func (s *Source[S]) Draw(src rng.Source, reel int, bonus bool) S {
	if !s.WildEligible(reel) {
		return s.base.Draw(src)
	}
	if bonus && src.Float64() < s.wildChance {
		return s.wildSymbol
	}
	return s.wild.Draw(src)
}
