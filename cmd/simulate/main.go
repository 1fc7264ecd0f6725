package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slot_engine/internal/config/env"
	"slot_engine/internal/engine/cascade"
	"slot_engine/internal/engine/line"
	"slot_engine/internal/model"
	"slot_engine/internal/simulator"
)

func main() {
	game := flag.String("game", "line", "line | cascade")
	rounds := flag.Int("rounds", 1_000_000, "paid rounds to play")
	seed := flag.Uint64("seed", 1, "rng seed")
	bet := flag.Int64("bet", 10, "bet per round")
	buy := flag.Bool("buy", false, "buy the bonus every round")
	cfgPath := flag.String("config", env.GameConfigPath(), "game config yaml")
	flag.Parse()

	if err := run(*game, *cfgPath, *rounds, *seed, *bet, *buy); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(game, cfgPath string, rounds int, seed uint64, bet int64, buy bool) error {
	cfg, err := env.NewGameConfigFromYAML(cfgPath)
	if err != nil {
		return err
	}

	var spin simulator.SpinFunc
	switch model.Game(game) {
	case model.GameLine:
		g, err := line.New(cfg.Line())
		if err != nil {
			return err
		}
		spin = simulator.Line(g)
	case model.GameCascade:
		g, err := cascade.New(cfg.Cascade())
		if err != nil {
			return err
		}
		spin = simulator.Cascade(g)
	default:
		return fmt.Errorf("unknown game %q", game)
	}

	mode := model.ModeBase
	if buy {
		mode = model.ModeBuyBonus
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := simulator.Run(ctx, spin, simulator.Options{
		Game:     model.Game(game),
		Rounds:   rounds,
		Bet:      bet,
		Seed:     seed,
		Mode:     mode,
		Progress: os.Stderr,
	})
	if err != nil {
		return err
	}
	return rep.WriteTable(os.Stdout)
}
