package round

import (
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/model"
	"testing"
)

func TestProvablyFairIsReplayable(t *testing.T) {
	src, fair := ProvablyFair()("round-1")
	if fair.ClientSeed != "round-1" || fair.ServerSeed == "" {
		t.Fatalf("fairness = %+v", fair)
	}
	if !rng.Verify(fair.ServerSeed, fair.ServerSeedHash) {
		t.Fatal("commitment does not match revealed seed")
	}

	replay := Replay(fair)
	for i := 0; i < 50; i++ {
		if a, b := src.IntN(1000), replay.IntN(1000); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}
}

func TestProvablyFairNewSeedPerRound(t *testing.T) {
	f := ProvablyFair()
	_, a := f("r")
	_, b := f("r")
	if a.ServerSeed == b.ServerSeed {
		t.Fatal("server seed reused")
	}
}

func TestSeededSequence(t *testing.T) {
	a, b := Seeded(7), Seeded(7)
	for i := 0; i < 3; i++ {
		sa, _ := a("")
		sb, _ := b("")
		if x, y := sa.IntN(1<<30), sb.IntN(1<<30); x != y {
			t.Fatalf("round %d differs: %d != %d", i, x, y)
		}
	}
}

func TestRecordBuild(t *testing.T) {
	rec, err := Record{
		RoundID: "r1",
		UserID:  3,
		Game:    model.GameLine,
		Mode:    model.ModeBase,
		Bet:     10,
		Debit:   10,
		Payout:  25,
		Balance: 115,
	}.Build(map[string]int{"total_payout": 25})
	if err != nil {
		t.Fatal(err)
	}
	if rec.BalanceAfter != 115 || string(rec.Outcome) != `{"total_payout":25}` || rec.CreatedAt.IsZero() {
		t.Errorf("record = %+v", rec)
	}
}
