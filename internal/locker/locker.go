// Package locker сериализация раундов одного игрока
package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrLockTimeout блокировку не удалось взять до отмены контекста
var ErrLockTimeout = errors.New("player is busy")

// Locker Lock ждет освобождения ключа. Возвращенную unlock нужно вызвать ровно один раз
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), error)
}

// Key ключ блокировки игрока. Один на все игры и пополнение: баланс у игрока общий
func Key(userID int) string {
	return fmt.Sprintf("slot:lock:user:%d", userID)
}

// Memory блокировки в памяти процесса, для одного инстанса и тестов
type Memory struct {
	mtx   sync.Mutex
	slots map[string]chan struct{}
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]chan struct{})}
}

func (m *Memory) Lock(ctx context.Context, key string) (func(), error) {
	for {
		m.mtx.Lock()
		ch, busy := m.slots[key]
		if !busy {
			ch = make(chan struct{})
			m.slots[key] = ch
			m.mtx.Unlock()
			return m.release(key, ch), nil
		}
		m.mtx.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
		}
	}
}

func (m *Memory) release(key string, ch chan struct{}) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mtx.Lock()
			delete(m.slots, key)
			m.mtx.Unlock()
			close(ch)
		})
	}
}
