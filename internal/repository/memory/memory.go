// Package memory хранилище в памяти процесса: запуск без Postgres и тесты сервисов
package memory

import (
	"context"
	"slices"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// TxManager выполняет функцию без транзакции. Раунды игрока сериализует locker
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Users пользователи
type Users struct {
	mtx     sync.RWMutex
	nextID  int
	byID    map[int]*model.User
	byLogin map[string]int
}

func NewUsers() *Users {
	return &Users{byID: make(map[int]*model.User), byLogin: make(map[string]int)}
}

func (u *Users) CreateUser(_ context.Context, user *model.User) (int, error) {
	u.mtx.Lock()
	defer u.mtx.Unlock()

	if _, ok := u.byLogin[user.Login]; ok {
		return 0, repository.ErrAlreadyExists
	}
	u.nextID++
	stored := *user
	stored.ID = u.nextID
	u.byID[stored.ID] = &stored
	u.byLogin[stored.Login] = stored.ID
	return stored.ID, nil
}

func (u *Users) GetUserByLogin(_ context.Context, login string) (*model.User, error) {
	u.mtx.RLock()
	defer u.mtx.RUnlock()

	id, ok := u.byLogin[login]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := *u.byID[id]
	return &user, nil
}

func (u *Users) GetBalance(_ context.Context, id int) (int64, error) {
	u.mtx.RLock()
	defer u.mtx.RUnlock()

	user, ok := u.byID[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return user.Balance, nil
}

func (u *Users) GetBalanceForUpdate(ctx context.Context, id int) (int64, error) {
	return u.GetBalance(ctx, id)
}

func (u *Users) UpdateBalance(_ context.Context, id int, amount int64) error {
	u.mtx.Lock()
	defer u.mtx.Unlock()

	user, ok := u.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Balance = amount
	return nil
}

func (u *Users) AddBalance(_ context.Context, id int, delta int64) (int64, error) {
	u.mtx.Lock()
	defer u.mtx.Unlock()

	user, ok := u.byID[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	user.Balance += delta
	return user.Balance, nil
}

// Sessions сессии refresh токенов
type Sessions struct {
	mtx      sync.RWMutex
	sessions map[string]model.Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]model.Session)}
}

func (s *Sessions) CreateSession(_ context.Context, session *model.Session) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return repository.ErrAlreadyExists
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Sessions) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (s *Sessions) DeleteSession(_ context.Context, sessionID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

type gameState struct {
	freeSpins model.FreeSpins
	mult      model.MultiplierState
}

// GameState фриспины и множители ячеек одной игры
type GameState struct {
	mtx    sync.RWMutex
	states map[int]gameState
}

func NewGameState() *GameState {
	return &GameState{states: make(map[int]gameState)}
}

func (g *GameState) GetFreeSpins(_ context.Context, id int) (model.FreeSpins, error) {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	return g.states[id].freeSpins, nil
}

func (g *GameState) UpdateFreeSpins(_ context.Context, id int, fs model.FreeSpins) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	st := g.states[id]
	st.freeSpins = fs
	g.states[id] = st
	return nil
}

func (g *GameState) GetMultiplierState(_ context.Context, id int) (model.MultiplierState, error) {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	return g.states[id].mult.Clone(), nil
}

func (g *GameState) SetMultiplierState(_ context.Context, id int, state model.MultiplierState) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	st := g.states[id]
	st.mult = state.Clone()
	g.states[id] = st
	return nil
}

// History журнал раундов
type History struct {
	mtx     sync.RWMutex
	records []model.SpinRecord
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Save(_ context.Context, rec *model.SpinRecord) error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.records = append(h.records, *rec)
	return nil
}

// maxListLimit как у postgres-репозитория
const maxListLimit = 100

// List новые первыми
func (h *History) List(_ context.Context, userID int, game model.Game, limit int) ([]model.SpinRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	h.mtx.RLock()
	defer h.mtx.RUnlock()

	out := make([]model.SpinRecord, 0)
	for _, rec := range slices.Backward(h.records) {
		if rec.UserID != userID || rec.Game != game {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var (
	_ trm.Manager                  = TxManager{}
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.AuthRepository    = (*Sessions)(nil)
	_ repository.LineRepository    = (*GameState)(nil)
	_ repository.CascadeRepository = (*GameState)(nil)
	_ repository.HistoryRepository = (*History)(nil)
)
