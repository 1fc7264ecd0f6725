package auth

import (
	"context"
	"slot_engine/internal/model"
	"slot_engine/pkg/token"
	"time"
)

// openSession новая сессия и пара токенов для пользователя
func (s *serv) openSession(ctx context.Context, userID int) (*model.AuthData, error) {
	sessionID := generateSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx, &model.Session{
		ID:          sessionID,
		UserID:      userID,
		RefreshHash: token.HashRefreshToken(refreshToken),
		ExpiresAt:   time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		userID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}
