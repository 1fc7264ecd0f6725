package line

import (
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/engine/sampler"
	"slot_engine/internal/model"
)

// Generator генерирует поле линейной игры
type Generator struct {
	cfg    Config
	source *sampler.Source[model.LineSymbol]
}

func newGenerator(cfg Config) (*Generator, error) {
	src, err := sampler.NewSource(cfg.Weights, cfg.WildWeights, cfg.WildReels, model.SymbolWild, cfg.BonusWildChance)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, source: src}, nil
}

// Generate поле для режима mode
func (g *Generator) Generate(src rng.Source, mode model.Mode) model.LineBoard {
	bonus := mode == model.ModeFreeSpin
	board := model.NewLineBoard(g.cfg.Reels, g.cfg.Rows)

	for reel := 0; reel < g.cfg.Reels; reel++ {
		for row := 0; row < g.cfg.Rows; row++ {
			sym := g.source.Draw(src, reel, bonus)
			board[reel][row] = sym
			if sym == model.SymbolWild && g.cfg.ExpandingWilds && g.source.WildEligible(reel) {
				g.expand(board, reel)
				break
			}
		}
	}

	switch mode {
	case model.ModeFreeSpin:
		g.guaranteeWild(src, board)
	case model.ModeBuyBonus:
		g.forceBonus(src, board)
	}
	return board
}

// guaranteeWild во фриспинах на wild-барабанах должен быть хотя бы один wild
func (g *Generator) guaranteeWild(src rng.Source, board model.LineBoard) {
	reels := g.source.WildReels()
	if len(reels) == 0 {
		return
	}
	for _, reel := range reels {
		for _, sym := range board[reel] {
			if sym == model.SymbolWild {
				return
			}
		}
	}

	reel := reels[src.IntN(len(reels))]
	row := src.IntN(g.cfg.Rows)
	board[reel][row] = model.SymbolWild
	if g.cfg.ExpandingWilds {
		g.expand(board, reel)
	}
}

// forceBonus ставит от Min до Max бонус-символов в разные ячейки
func (g *Generator) forceBonus(src rng.Source, board model.LineBoard) {
	k := g.cfg.BuyBonusScatters.Pick(src.IntN)

	// частичная перетасовка индексов ячеек: первые k различны
	cells := make([]int, g.cfg.Reels*g.cfg.Rows)
	for i := range cells {
		cells[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
		reel, row := cells[i]/g.cfg.Rows, cells[i]%g.cfg.Rows
		board[reel][row] = model.SymbolBonus
	}
}

func (g *Generator) expand(board model.LineBoard, reel int) {
	for row := range board[reel] {
		board[reel][row] = model.SymbolWild
	}
}
