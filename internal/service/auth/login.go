package auth

import (
	"context"
	"errors"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"slot_engine/pkg/pass"
)

func (s *serv) Login(ctx context.Context, login, password string) (*model.AuthData, error) {
	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err = pass.Compare(user.Password, password); err != nil {
		if errors.Is(err, pass.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.openSession(ctx, user.ID)
}

// Logout закрывает сессию, повторный вызов не ошибка
func (s *serv) Logout(ctx context.Context, sessionID string) error {
	return s.authRepo.DeleteSession(ctx, sessionID)
}
