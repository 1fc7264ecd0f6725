// Package award начисление фриспинов за scatter/бонус-символы.
package award

import (
	"fmt"
	"slot_engine/internal/engine"
)

// Tier от Count символов начисляется Spins фриспинов
type Tier struct {
	Count int `yaml:"count"`
	Spins int `yaml:"spins"`
}

// Tiers ступени по возрастанию Count
type Tiers []Tier

// Default <3 -> 0, 3 -> 10, 4 -> 15, 5+ -> 20
func Default() Tiers {
	return Tiers{
		{Count: 3, Spins: 10},
		{Count: 4, Spins: 15},
		{Count: 5, Spins: 20},
	}
}

// Validate Count строго растёт, Spins положительны и не убывают
func (t Tiers) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no free spin tiers", engine.ErrConfiguration)
	}
	for i, tier := range t {
		if tier.Count <= 0 || tier.Spins <= 0 {
			return fmt.Errorf("%w: free spin tier %d must be positive", engine.ErrConfiguration, i)
		}
		if i > 0 && (tier.Count <= t[i-1].Count || tier.Spins < t[i-1].Spins) {
			return fmt.Errorf("%w: free spin tiers must be ordered", engine.ErrConfiguration)
		}
	}
	return nil
}

// Min минимальное количество символов для начисления
func (t Tiers) Min() int {
	return t[0].Count
}

// Award фриспины за count символов
func (t Tiers) Award(count int) int {
	spins := 0
	for _, tier := range t {
		if count < tier.Count {
			break
		}
		spins = tier.Spins
	}
	return spins
}
