package auth

import (
	"context"
	"errors"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"slot_engine/pkg/token"
	"time"
)

// Refresh проверяет refresh токен сессии и выдает новую пару. Старая сессия закрывается
func (s *serv) Refresh(ctx context.Context, sessionID, refreshToken string) (*model.AuthData, error) {
	var data *model.AuthData
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.authRepo.GetSession(txCtx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidSession
			}
			return err
		}

		if session.Expired(time.Now()) || !token.VerifyRefreshToken(refreshToken, session.RefreshHash) {
			return ErrInvalidSession
		}

		if err = s.authRepo.DeleteSession(txCtx, sessionID); err != nil {
			return err
		}

		data, err = s.openSession(txCtx, session.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
