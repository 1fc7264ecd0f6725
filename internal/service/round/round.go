// Package round общие части раунда для игровых сервисов: источник случайности и запись истории
package round

import (
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/model"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Factory источник случайности для раунда и данные для его проверки
type Factory func(roundID string) (rng.Source, model.Fairness)

// ProvablyFair новый серверный сид на раунд, клиентский сид - ID раунда
func ProvablyFair() Factory {
	return func(roundID string) (rng.Source, model.Fairness) {
		seed := rng.NewServerSeed()
		fair := model.Fairness{
			ServerSeed:     seed,
			ServerSeedHash: rng.Commitment(seed),
			ClientSeed:     roundID,
		}
		return rng.NewProvablyFair(fair.ServerSeed, fair.ClientSeed, fair.Nonce), fair
	}
}

// Seeded воспроизводимая последовательность раундов
func Seeded(seed uint64) Factory {
	var n atomic.Uint64
	return func(string) (rng.Source, model.Fairness) {
		return rng.NewSeeded(seed + n.Add(1) - 1), model.Fairness{}
	}
}

func NewID() string {
	return uuid.NewString()
}

// Replay источник, повторяющий раунд по раскрытым сидам
func Replay(f model.Fairness) rng.Source {
	return rng.NewProvablyFair(f.ServerSeed, f.ClientSeed, f.Nonce)
}

// Record собирает запись истории. outcome сериализуется целиком
type Record struct {
	RoundID   string
	UserID    int
	Game      model.Game
	Mode      model.Mode
	Bet       int64
	Debit     int64
	Payout    int64
	Balance   int64
	FreeSpins int
	Fairness  model.Fairness
}

func (r Record) Build(outcome any) (*model.SpinRecord, error) {
	raw, err := json.Marshal(outcome)
	if err != nil {
		return nil, err
	}
	return &model.SpinRecord{
		RoundID:      r.RoundID,
		UserID:       r.UserID,
		Game:         r.Game,
		Mode:         r.Mode,
		Bet:          r.Bet,
		Debit:        r.Debit,
		Payout:       r.Payout,
		BalanceAfter: r.Balance,
		FreeSpins:    r.FreeSpins,
		Fairness:     r.Fairness,
		Outcome:      raw,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
