package repository

import (
	"context"
	"errors"
	"slot_engine/internal/model"
)

var (
	// ErrNotFound запись отсутствует
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists нарушение уникальности
	ErrAlreadyExists = errors.New("already exists")
)

// LineRepository состояние линейной игры игрока
type LineRepository interface {
	// GetFreeSpins остаток фриспинов и их ставка, нули если записи нет
	GetFreeSpins(ctx context.Context, id int) (model.FreeSpins, error)
	UpdateFreeSpins(ctx context.Context, id int, fs model.FreeSpins) error
}

// CascadeRepository состояние каскадной игры: фриспины и множители ячеек
type CascadeRepository interface {
	GetFreeSpins(ctx context.Context, id int) (model.FreeSpins, error)
	UpdateFreeSpins(ctx context.Context, id int, fs model.FreeSpins) error

	GetMultiplierState(ctx context.Context, id int) (model.MultiplierState, error)
	SetMultiplierState(ctx context.Context, id int, state model.MultiplierState) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int64, error)
	// GetBalanceForUpdate блокирует строку до конца транзакции
	GetBalanceForUpdate(ctx context.Context, id int) (int64, error)
	UpdateBalance(ctx context.Context, id int, amount int64) error
	AddBalance(ctx context.Context, id int, delta int64) (int64, error)
}

// HistoryRepository журнал раундов
type HistoryRepository interface {
	Save(ctx context.Context, rec *model.SpinRecord) error
	List(ctx context.Context, userID int, game model.Game, limit int) ([]model.SpinRecord, error)
}

// StatsRepository наблюдение за фактическим RTP игры
type StatsRepository interface {
	Record(bet, payout int64)
	Snapshot() model.GameStats
}
