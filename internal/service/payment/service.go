package payment

import (
	"context"
	"errors"
	"fmt"
	"slot_engine/internal/locker"
	"slot_engine/internal/repository"
	"slot_engine/internal/service"

	"go.uber.org/zap"
)

// ErrInvalidAmount сумма пополнения должна быть положительной
var ErrInvalidAmount = errors.New("amount must be positive")

// maxDeposit ограничение одного пополнения
const maxDeposit = 1_000_000_000

type serv struct {
	userRepo repository.UserRepository
	locker   locker.Locker
	log      *zap.Logger
}

// NewPaymentService lk общий с игровыми сервисами, nil - блокировки в памяти
func NewPaymentService(userRepo repository.UserRepository, lk locker.Locker, log *zap.Logger) service.PaymentService {
	if lk == nil {
		lk = locker.NewMemory()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{userRepo: userRepo, locker: lk, log: log}
}

// Deposit атомарно пополняет баланс под блокировкой игрока, возвращает новый баланс
func (s *serv) Deposit(ctx context.Context, userID int, amount int64) (int64, error) {
	if amount <= 0 || amount > maxDeposit {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	unlock, err := s.locker.Lock(ctx, locker.Key(userID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	balance, err := s.userRepo.AddBalance(ctx, userID, amount)
	if err != nil {
		return 0, err
	}

	s.log.Info("deposit", zap.Int("user", userID), zap.Int64("amount", amount), zap.Int64("balance", balance))
	return balance, nil
}

func (s *serv) GetBalance(ctx context.Context, userID int) (int64, error) {
	return s.userRepo.GetBalance(ctx, userID)
}
