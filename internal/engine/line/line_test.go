package line

import (
	"errors"
	"reflect"
	"slot_engine/internal/engine"
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/engine/sampler"
	"slot_engine/internal/model"
	"testing"

	"github.com/shopspring/decimal"
)

// board строки сверху вниз, в каждой строке символы по барабанам
func board(rows ...[]model.LineSymbol) model.LineBoard {
	b := model.NewLineBoard(len(rows[0]), len(rows))
	for row, syms := range rows {
		for reel, s := range syms {
			b[reel][row] = s
		}
	}
	return b
}

func row(s ...model.LineSymbol) []model.LineSymbol { return s }

func middleLineEvaluator(extra map[model.LineSymbol]map[int]decimal.Decimal) *Evaluator {
	pt := map[model.LineSymbol]map[int]decimal.Decimal{
		"S3": {3: decimal.NewFromInt(1), 4: decimal.NewFromInt(5), 5: decimal.NewFromInt(20)},
	}
	for k, v := range extra {
		pt[k] = v
	}
	return NewEvaluator([]model.Payline{{1, 1, 1, 1, 1}}, pt)
}

func TestEvaluateWildExtendsRun(t *testing.T) {
	b := board(
		row("S1", "S2", "S4", "S5", "S6"),
		row("S3", "S3", "W", "S3", "S7"),
		row("S2", "S1", "S5", "S4", "S6"),
	)
	ev := middleLineEvaluator(nil).Evaluate(b, 10)
	if len(ev.Wins) != 1 {
		t.Fatalf("expected one win, got %+v", ev.Wins)
	}
	w := ev.Wins[0]
	if w.Line != 1 || w.Symbol != "S3" || w.Count != 4 || w.Payout != 50 {
		t.Fatalf("unexpected win %+v", w)
	}
	if len(w.Positions) != 4 || w.Positions[2] != (model.ReelPosition{Reel: 2, Row: 1}) {
		t.Fatalf("unexpected positions %+v", w.Positions)
	}
	if ev.TotalPayout != 50 {
		t.Fatalf("expected total 50, got %d", ev.TotalPayout)
	}
}

func TestEvaluateWildAnchorNeverPays(t *testing.T) {
	b := board(
		row("S1", "S2", "S4", "S5", "S6"),
		row("W", "S3", "S3", "S3", "S3"),
		row("S2", "S1", "S5", "S4", "S6"),
	)
	ev := middleLineEvaluator(nil).Evaluate(b, 10)
	if len(ev.Wins) != 0 || ev.TotalPayout != 0 {
		t.Fatalf("wild anchored line must not pay, got %+v", ev.Wins)
	}
}

func TestEvaluateBonusBreaksRun(t *testing.T) {
	b := board(
		row("S1", "S2", "S4", "S5", "S6"),
		row("S3", "S3", "B", "S3", "S3"),
		row("S2", "S1", "S5", "S4", "S6"),
	)
	ev := middleLineEvaluator(nil).Evaluate(b, 10)
	if len(ev.Wins) != 0 {
		t.Fatalf("run of 2 must not pay, got %+v", ev.Wins)
	}
	if ev.BonusCount != 1 {
		t.Fatalf("expected one bonus symbol, got %d", ev.BonusCount)
	}
}

func TestEvaluateMissingPaytableEntry(t *testing.T) {
	b := board(
		row("S1", "S2", "S4", "S5", "S6"),
		row("S8", "S8", "S8", "S3", "S3"),
		row("S2", "S1", "S5", "S4", "S6"),
	)
	ev := middleLineEvaluator(nil).Evaluate(b, 10)
	if len(ev.Wins) != 0 {
		t.Fatalf("symbol without paytable must not pay, got %+v", ev.Wins)
	}
}

func TestEvaluateSkipsWinsFlooredToZero(t *testing.T) {
	b := board(
		row("B", "S2", "S4", "S5", "B"),
		row("S8", "S8", "S8", "S3", "S3"),
		row("S2", "S1", "B", "S4", "S6"),
	)
	e := middleLineEvaluator(map[model.LineSymbol]map[int]decimal.Decimal{
		"S8":              {3: decimal.RequireFromString("0.1")},
		model.SymbolBonus: {3: decimal.RequireFromString("0.5")},
	})
	ev := e.Evaluate(b, 1)
	if len(ev.Wins) != 0 || ev.TotalPayout != 0 {
		t.Fatalf("wins floored to zero must be skipped, got %+v", ev.Wins)
	}
	if ev.BonusCount != 3 {
		t.Fatalf("bonus count must still be reported, got %d", ev.BonusCount)
	}

	ev = e.Evaluate(b, 10)
	if len(ev.Wins) != 2 || ev.LinePayout != 1 || ev.ScatterPayout != 5 {
		t.Fatalf("unexpected wins at bet 10: %+v", ev)
	}
}

func TestEvaluateBonusScatter(t *testing.T) {
	b := board(
		row("B", "S2", "S4", "S5", "B"),
		row("S1", "S3", "S2", "S3", "S3"),
		row("S2", "S1", "B", "S4", "S6"),
	)
	e := middleLineEvaluator(map[model.LineSymbol]map[int]decimal.Decimal{
		model.SymbolBonus: {3: decimal.NewFromInt(2)},
	})
	ev := e.Evaluate(b, 10)
	if ev.BonusCount != 3 {
		t.Fatalf("expected 3 bonus symbols, got %d", ev.BonusCount)
	}
	if len(ev.Wins) != 1 {
		t.Fatalf("expected scatter win only, got %+v", ev.Wins)
	}
	w := ev.Wins[0]
	if w.Line != -1 || w.Count != 3 || w.Payout != 20 || len(w.Positions) != 3 {
		t.Fatalf("unexpected scatter win %+v", w)
	}
	if ev.ScatterPayout != 20 || ev.TotalPayout != 20 {
		t.Fatalf("unexpected totals %+v", ev)
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Bet = engine.BetRules{Min: 1, Max: 1000, Step: 1}
	return cfg
}

func mustGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func TestGenerateFreeSpinGuaranteesWild(t *testing.T) {
	cfg := testConfig()
	cfg.BonusWildChance = 0
	cfg.WildWeights = cfg.Weights
	gen, err := newGenerator(cfg)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	for seed := uint64(0); seed < 200; seed++ {
		b := gen.Generate(rng.NewSeeded(seed), model.ModeFreeSpin)
		wilds := 0
		for _, reel := range cfg.WildReels {
			for _, s := range b[reel] {
				if s == model.SymbolWild {
					wilds++
				}
			}
		}
		if wilds != 1 {
			t.Fatalf("seed %d: expected exactly one forced wild, got %d", seed, wilds)
		}
		if b.Count(model.SymbolWild) != 1 {
			t.Fatalf("seed %d: wild outside wild reels", seed)
		}
	}
}

func TestGenerateBaseHasNoWildOutsideWildReels(t *testing.T) {
	g := mustGame(t, testConfig())
	for seed := uint64(0); seed < 200; seed++ {
		b := g.gen.Generate(rng.NewSeeded(seed), model.ModeBase)
		for _, reel := range []int{0, 4} {
			for _, s := range b[reel] {
				if s == model.SymbolWild {
					t.Fatalf("seed %d: wild on reel %d", seed, reel)
				}
			}
		}
	}
}

func TestGenerateBuyBonusForcesBonusSymbols(t *testing.T) {
	cfg := testConfig()
	noBonus := sampler.Table[model.LineSymbol]{{"S1", 5}, {"S2", 5}}
	cfg.Weights = noBonus
	cfg.WildWeights = noBonus
	gen, err := newGenerator(cfg)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	seen := map[int]bool{}
	for seed := uint64(0); seed < 300; seed++ {
		n := gen.Generate(rng.NewSeeded(seed), model.ModeBuyBonus).Count(model.SymbolBonus)
		if n < 3 || n > 5 {
			t.Fatalf("seed %d: expected 3..5 bonus symbols, got %d", seed, n)
		}
		seen[n] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all counts 3..5 to occur, got %v", seen)
	}
}

func TestGenerateExpandingWilds(t *testing.T) {
	cfg := testConfig()
	cfg.ExpandingWilds = true
	cfg.WildWeights = sampler.Table[model.LineSymbol]{{model.SymbolWild, 1}}
	gen, err := newGenerator(cfg)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	b := gen.Generate(rng.NewSeeded(5), model.ModeBase)
	for _, reel := range cfg.WildReels {
		for r, s := range b[reel] {
			if s != model.SymbolWild {
				t.Fatalf("reel %d row %d: expected expanded wild, got %s", reel, r, s)
			}
		}
	}
}

func TestSpinDeterministic(t *testing.T) {
	g := mustGame(t, testConfig())
	state := model.PlayerState{Balance: 10000}
	for seed := uint64(0); seed < 50; seed++ {
		a, err := g.Spin(model.SpinRequest{Bet: 10, Mode: model.ModeBase}, state, rng.NewSeeded(seed))
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		b, err := g.Spin(model.SpinRequest{Bet: 10, Mode: model.ModeBase}, state, rng.NewSeeded(seed))
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: outcomes differ", seed)
		}
	}
}

func TestSpinProvablyFairReplay(t *testing.T) {
	g := mustGame(t, testConfig())
	state := model.PlayerState{Balance: 10000}
	req := model.SpinRequest{Bet: 10, Mode: model.ModeBase}
	a, _ := g.Spin(req, state, rng.NewProvablyFair("server-seed", "round-1", 0))
	b, _ := g.Spin(req, state, rng.NewProvablyFair("server-seed", "round-1", 0))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("replay with the same seeds differs")
	}
}

func TestSpinConservation(t *testing.T) {
	g := mustGame(t, testConfig())
	state := model.PlayerState{Balance: 100000}
	src := rng.NewSeeded(99)
	for i := 0; i < 2000; i++ {
		out, err := g.Spin(model.SpinRequest{Bet: 10}, state, src)
		if err != nil {
			t.Fatalf("spin %d: %v", i, err)
		}
		var sum int64
		for _, w := range out.Wins {
			sum += w.Payout
		}
		if !out.Capped && sum != out.TotalPayout {
			t.Fatalf("spin %d: wins sum %d != total %d", i, sum, out.TotalPayout)
		}
		if out.NewBalance != state.Balance-out.Debit+out.TotalPayout {
			t.Fatalf("spin %d: balance not conserved", i)
		}
		wantLeft := state.FreeSpins + out.AwardedFreeSpins
		if out.Mode == model.ModeFreeSpin {
			wantLeft--
		}
		if out.FreeSpinsRemaining != wantLeft {
			t.Fatalf("spin %d: free spins %d, want %d", i, out.FreeSpinsRemaining, wantLeft)
		}
		if out.IsBonusActive != (out.FreeSpinsRemaining > 0) {
			t.Fatalf("spin %d: bonus flag mismatch", i)
		}
		state = model.PlayerState{Balance: out.NewBalance, FreeSpins: out.FreeSpinsRemaining}
	}
}

func TestSpinFreeSpinIsFree(t *testing.T) {
	g := mustGame(t, testConfig())
	out, err := g.Spin(model.SpinRequest{Bet: 10}, model.PlayerState{Balance: 0, FreeSpins: 5}, rng.NewSeeded(1))
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if out.Mode != model.ModeFreeSpin || out.Debit != 0 {
		t.Fatalf("expected free spin without debit, got %+v", out)
	}
	if out.FreeSpinsRemaining != 4+out.AwardedFreeSpins {
		t.Fatalf("unexpected remaining %d", out.FreeSpinsRemaining)
	}
}

func TestSpinBuyBonusAwardsFreeSpins(t *testing.T) {
	g := mustGame(t, testConfig())
	for seed := uint64(0); seed < 100; seed++ {
		out, err := g.Spin(model.SpinRequest{Bet: 10, Mode: model.ModeBuyBonus}, model.PlayerState{Balance: 1000}, rng.NewSeeded(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if out.Debit != 1000 {
			t.Fatalf("expected debit 1000, got %d", out.Debit)
		}
		if out.AwardedFreeSpins < 10 || !out.IsBonusActive {
			t.Fatalf("seed %d: buy bonus must trigger free spins, got %d", seed, out.AwardedFreeSpins)
		}
	}
}

func TestSpinFreeSpinsKeepTriggerBet(t *testing.T) {
	g := mustGame(t, testConfig())
	out, err := g.Spin(model.SpinRequest{Bet: 10, Mode: model.ModeBuyBonus}, model.PlayerState{Balance: 1000}, rng.NewSeeded(1))
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if out.FreeSpinBet != 10 {
		t.Fatalf("expected stored bet 10, got %d", out.FreeSpinBet)
	}

	// Ставка запроса во фриспинах не влияет на выигрыш
	state := model.PlayerState{Balance: out.NewBalance, FreeSpins: out.FreeSpinsRemaining, FreeSpinBet: out.FreeSpinBet}
	src := rng.NewSeeded(2)
	for state.FreeSpins > 0 {
		out, err = g.Spin(model.SpinRequest{Bet: 1000}, state, src)
		if err != nil {
			t.Fatalf("free spin: %v", err)
		}
		if out.Mode != model.ModeFreeSpin || out.Bet != 10 || out.Debit != 0 {
			t.Fatalf("free spin played at bet %d mode %s debit %d", out.Bet, out.Mode, out.Debit)
		}
		for _, w := range out.Wins {
			want := engine.Payout(10, w.Multiplier)
			if w.Payout != want {
				t.Fatalf("win %+v paid %d, want %d at bet 10", w, w.Payout, want)
			}
		}
		state = model.PlayerState{Balance: out.NewBalance, FreeSpins: out.FreeSpinsRemaining, FreeSpinBet: out.FreeSpinBet}
	}
	if out.FreeSpinBet != 0 {
		t.Fatalf("stored bet must clear after last free spin, got %d", out.FreeSpinBet)
	}
}

func TestSpinRejectsWithoutComputing(t *testing.T) {
	g := mustGame(t, testConfig())
	state := model.PlayerState{Balance: 5}
	if _, err := g.Spin(model.SpinRequest{Bet: 10}, state, rng.NewSeeded(1)); !errors.Is(err, engine.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if _, err := g.Spin(model.SpinRequest{Bet: 0}, state, rng.NewSeeded(1)); !errors.Is(err, engine.ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
	if state.Balance != 5 {
		t.Fatalf("state mutated")
	}
}

func TestSpinCapsPayout(t *testing.T) {
	cfg := testConfig()
	cfg.MaxWinXBet = 1
	cfg.Weights = sampler.Table[model.LineSymbol]{{"S8", 1}}
	cfg.WildWeights = cfg.Weights
	g := mustGame(t, cfg)
	out, err := g.Spin(model.SpinRequest{Bet: 10}, model.PlayerState{Balance: 100}, rng.NewSeeded(1))
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if !out.Capped || out.TotalPayout != 10 {
		t.Fatalf("expected payout capped at 10, got %d capped=%v", out.TotalPayout, out.Capped)
	}
	if out.NewBalance != 100 {
		t.Fatalf("expected balance 100, got %d", out.NewBalance)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := map[string]func(*Config){
		"zero weights": func(c *Config) { c.Weights = sampler.Table[model.LineSymbol]{{"S1", 0}} },
		"short payline": func(c *Config) { c.Paylines = []model.Payline{{1, 1}} },
		"wild reel":     func(c *Config) { c.WildReels = []int{9} },
		"buy range":     func(c *Config) { c.BuyBonusScatters = engine.ForcedRange{Min: 2, Max: 5} },
		"no tiers":      func(c *Config) { c.FreeSpins = nil },
		"missing row":   func(c *Config) { delete(c.Paytable, "S3") },
	}
	for name, mutate := range cases {
		cfg := testConfig()
		mutate(&cfg)
		if _, err := New(cfg); !errors.Is(err, engine.ErrConfiguration) {
			t.Fatalf("%s: expected ErrConfiguration, got %v", name, err)
		}
	}
}
