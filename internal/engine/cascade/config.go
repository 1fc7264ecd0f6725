// Package cascade каскадная игра 7x7: кластеры от 5 символов, гравитация, досыпка, множители ячеек.
package cascade

import (
	"fmt"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/award"
	"slot_engine/internal/engine/sampler"
	"slot_engine/internal/model"

	"github.com/shopspring/decimal"
)

// MultiplierRules множители ячеек: со второго попадания Start, дальше удвоение до Max
type MultiplierRules struct {
	Enabled bool `yaml:"enabled"`
	Start   int  `yaml:"start"`
	Max     int  `yaml:"max"`
}

// Config математика каскадной игры
type Config struct {
	engine.Limits `yaml:",inline"`

	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	MinClusterSize  int `yaml:"min_cluster_size"`
	MaxCascadeSteps int `yaml:"max_cascade_steps"`

	// Weights веса обычных символов и scatter, одна таблица для поля и досыпки
	Weights sampler.Table[model.CascadeSymbol] `yaml:"symbol_weights"`

	// ClusterTiers нижние границы размеров кластера, первая равна MinClusterSize
	ClusterTiers []int `yaml:"cluster_tiers"`
	// Paytable символ -> множитель ставки для каждой ступени ClusterTiers
	Paytable map[model.CascadeSymbol][]decimal.Decimal `yaml:"paytable"`

	Multipliers MultiplierRules `yaml:"cell_multipliers"`

	BuyBonusScatters engine.ForcedRange `yaml:"buy_bonus_scatters"`
	FreeSpins        award.Tiers        `yaml:"free_spins"`
}

// Validate проверка конфигурации. Все ошибки оборачивают engine.ErrConfiguration
func (c Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w: board %dx%d", engine.ErrConfiguration, c.Rows, c.Cols)
	}
	if c.MinClusterSize < 2 {
		return fmt.Errorf("%w: min_cluster_size %d", engine.ErrConfiguration, c.MinClusterSize)
	}
	if c.MaxCascadeSteps < 1 {
		return fmt.Errorf("%w: max_cascade_steps %d", engine.ErrConfiguration, c.MaxCascadeSteps)
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	for _, w := range c.Weights {
		if w.Symbol < 0 || w.Symbol > model.CascadeScatter {
			return fmt.Errorf("%w: unknown symbol %d", engine.ErrConfiguration, w.Symbol)
		}
		// Выпадающий символ без строки выплат никогда бы не платил
		if _, ok := c.Paytable[w.Symbol]; w.Weight > 0 && w.Symbol != model.CascadeScatter && !ok {
			return fmt.Errorf("%w: symbol %d has no paytable row", engine.ErrConfiguration, w.Symbol)
		}
	}

	if len(c.ClusterTiers) == 0 || c.ClusterTiers[0] != c.MinClusterSize {
		return fmt.Errorf("%w: cluster tiers must start at %d", engine.ErrConfiguration, c.MinClusterSize)
	}
	for i := 1; i < len(c.ClusterTiers); i++ {
		if c.ClusterTiers[i] <= c.ClusterTiers[i-1] {
			return fmt.Errorf("%w: cluster tiers must increase", engine.ErrConfiguration)
		}
	}
	for sym, pays := range c.Paytable {
		if sym == model.CascadeScatter {
			return fmt.Errorf("%w: scatter cannot pay as a cluster", engine.ErrConfiguration)
		}
		if len(pays) != len(c.ClusterTiers) {
			return fmt.Errorf("%w: symbol %d has %d pays for %d tiers", engine.ErrConfiguration, sym, len(pays), len(c.ClusterTiers))
		}
		for i, p := range pays {
			if p.IsNegative() || (i > 0 && p.LessThan(pays[i-1])) {
				return fmt.Errorf("%w: symbol %d pays must be non-negative and non-decreasing", engine.ErrConfiguration, sym)
			}
		}
	}

	if m := c.Multipliers; m.Enabled && (m.Start < 2 || m.Max < m.Start) {
		return fmt.Errorf("%w: cell multipliers start=%d max=%d", engine.ErrConfiguration, m.Start, m.Max)
	}

	if err := c.FreeSpins.Validate(); err != nil {
		return err
	}
	return c.BuyBonusScatters.Validate(c.Rows*c.Cols, c.FreeSpins.Min())
}

// tier индекс ступени для размера кластера
func (c Config) tier(size int) int {
	idx := 0
	for i, bound := range c.ClusterTiers {
		if size >= bound {
			idx = i
		}
	}
	return idx
}

func tiers(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

// DefaultConfig конфигурация по умолчанию, совпадает с config.yaml
func DefaultConfig() Config {
	return Config{
		Limits: engine.Limits{
			Bet:                engine.BetRules{Min: 2, Max: 1000, Step: 2},
			BuyBonusMultiplier: 100,
			MaxWinXBet:         10000,
		},
		Rows:            7,
		Cols:            7,
		MinClusterSize:  5,
		MaxCascadeSteps: 100,
		Weights: sampler.Table[model.CascadeSymbol]{
			{0, 22}, {1, 20}, {2, 18}, {3, 16}, {4, 12}, {5, 9}, {6, 6},
			{model.CascadeScatter, 1},
		},
		ClusterTiers: []int{5, 6, 8, 10, 12},
		Paytable: map[model.CascadeSymbol][]decimal.Decimal{
			0: tiers("0.2", "0.3", "0.5", "1", "2"),
			1: tiers("0.25", "0.4", "0.6", "1.2", "2.5"),
			2: tiers("0.3", "0.5", "0.8", "1.5", "3"),
			3: tiers("0.4", "0.6", "1", "2", "4"),
			4: tiers("0.5", "0.8", "1.5", "3", "6"),
			5: tiers("0.8", "1.2", "2", "4", "8"),
			6: tiers("1", "1.5", "3", "6", "12"),
		},
		Multipliers:      MultiplierRules{Enabled: true, Start: 2, Max: 128},
		BuyBonusScatters: engine.ForcedRange{Min: 3, Max: 5},
		FreeSpins:        award.Default(),
	}
}
