// Package line линейный слот 5x3 с фиксированными линиями, wild и бонус-символами.
package line

import (
	"fmt"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/award"
	"slot_engine/internal/engine/sampler"
	"slot_engine/internal/model"

	"github.com/shopspring/decimal"
)

// Config математика линейной игры
type Config struct {
	engine.Limits `yaml:",inline"`

	Reels int `yaml:"reels"`
	Rows  int `yaml:"rows"`

	Weights     sampler.Table[model.LineSymbol] `yaml:"symbol_weights"`
	WildWeights sampler.Table[model.LineSymbol] `yaml:"wild_reel_weights"`
	WildReels   []int                           `yaml:"wild_reels"`
	// BonusWildChance шанс принудительного wild на wild-барабане во фриспинах
	BonusWildChance float64 `yaml:"bonus_wild_chance"`
	// ExpandingWilds wild на wild-барабане занимает весь барабан
	ExpandingWilds bool `yaml:"expanding_wilds"`

	BuyBonusScatters engine.ForcedRange `yaml:"buy_bonus_scatters"`

	Paylines []model.Payline `yaml:"paylines"`
	// Paytable символ -> длина цепочки -> множитель ставки. Для B ключ - количество на поле
	Paytable map[model.LineSymbol]map[int]decimal.Decimal `yaml:"paytable"`

	FreeSpins award.Tiers `yaml:"free_spins"`
}

// Validate проверка конфигурации. Все ошибки оборачивают engine.ErrConfiguration
func (c Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if c.Reels < 3 || c.Rows < 1 {
		return fmt.Errorf("%w: board %dx%d is too small", engine.ErrConfiguration, c.Reels, c.Rows)
	}
	for _, r := range c.WildReels {
		if r < 0 || r >= c.Reels {
			return fmt.Errorf("%w: wild reel %d outside board", engine.ErrConfiguration, r)
		}
	}
	if len(c.Paylines) == 0 {
		return fmt.Errorf("%w: no paylines", engine.ErrConfiguration)
	}
	for i, pl := range c.Paylines {
		if len(pl) != c.Reels {
			return fmt.Errorf("%w: payline %d has %d cells, want %d", engine.ErrConfiguration, i+1, len(pl), c.Reels)
		}
		for _, row := range pl {
			if row < 0 || row >= c.Rows {
				return fmt.Errorf("%w: payline %d row %d outside board", engine.ErrConfiguration, i+1, row)
			}
		}
	}
	for sym, pays := range c.Paytable {
		for n, m := range pays {
			if n < 1 || m.IsNegative() {
				return fmt.Errorf("%w: paytable %s[%d]=%s", engine.ErrConfiguration, sym, n, m)
			}
		}
	}
	// Обычный символ с весом обязан иметь строку выплат. Отдельная длина без записи платит 0
	for _, table := range []sampler.Table[model.LineSymbol]{c.Weights, c.WildWeights} {
		for _, w := range table {
			if w.Weight <= 0 || w.Symbol == model.SymbolWild || w.Symbol == model.SymbolBonus {
				continue
			}
			if _, ok := c.Paytable[w.Symbol]; !ok {
				return fmt.Errorf("%w: symbol %s has no paytable row", engine.ErrConfiguration, w.Symbol)
			}
		}
	}
	if err := c.FreeSpins.Validate(); err != nil {
		return err
	}
	return c.BuyBonusScatters.Validate(c.Reels*c.Rows, c.FreeSpins.Min())
}

// DefaultPaylines 20 линий для поля 5x3
func DefaultPaylines() []model.Payline {
	return []model.Payline{
		{1, 1, 1, 1, 1}, {0, 0, 0, 0, 0}, {2, 2, 2, 2, 2}, {0, 1, 2, 1, 0}, {2, 1, 0, 1, 2},
		{0, 0, 1, 2, 2}, {2, 2, 1, 0, 0}, {1, 0, 0, 0, 1}, {1, 2, 2, 2, 1}, {0, 1, 1, 1, 0},
		{2, 1, 1, 1, 2}, {1, 0, 1, 2, 1}, {1, 2, 1, 0, 1}, {0, 1, 0, 1, 0}, {2, 1, 2, 1, 2},
		{1, 1, 0, 1, 1}, {1, 1, 2, 1, 1}, {0, 0, 2, 0, 0}, {2, 2, 0, 2, 2}, {0, 2, 0, 2, 0},
	}
}

func pays(p3, p4, p5 string) map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		3: decimal.RequireFromString(p3),
		4: decimal.RequireFromString(p4),
		5: decimal.RequireFromString(p5),
	}
}

// DefaultConfig конфигурация по умолчанию, совпадает с config.yaml
func DefaultConfig() Config {
	weights := sampler.Table[model.LineSymbol]{
		{"S1", 30}, {"S2", 28}, {"S3", 25}, {"S4", 22},
		{"S5", 18}, {"S6", 14}, {"S7", 10}, {"S8", 6},
		{model.SymbolBonus, 3},
	}
	wildWeights := append(sampler.Table[model.LineSymbol](nil), weights...)
	wildWeights = append(wildWeights, sampler.Weight[model.LineSymbol]{Symbol: model.SymbolWild, Weight: 5})

	return Config{
		Limits: engine.Limits{
			Bet:                engine.BetRules{Min: 1, Max: 1000, Step: 1},
			BuyBonusMultiplier: 100,
			MaxWinXBet:         10000,
		},
		Reels:            5,
		Rows:             3,
		Weights:          weights,
		WildWeights:      wildWeights,
		WildReels:        []int{1, 2, 3},
		BonusWildChance:  0.3,
		BuyBonusScatters: engine.ForcedRange{Min: 3, Max: 5},
		Paylines:         DefaultPaylines(),
		Paytable: map[model.LineSymbol]map[int]decimal.Decimal{
			"S1": pays("0.1", "0.25", "0.5"),
			"S2": pays("0.1", "0.3", "0.6"),
			"S3": pays("0.15", "0.4", "0.8"),
			"S4": pays("0.2", "0.5", "1"),
			"S5": pays("0.3", "0.75", "1.5"),
			"S6": pays("0.4", "1", "2.5"),
			"S7": pays("0.6", "1.5", "4"),
			"S8": pays("1", "2.5", "10"),
			model.SymbolBonus: {
				2: decimal.RequireFromString("0.5"),
				3: decimal.NewFromInt(2),
				4: decimal.NewFromInt(10),
				5: decimal.NewFromInt(50),
			},
		},
		FreeSpins: award.Default(),
	}
}
