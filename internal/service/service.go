package service

import (
	"context"
	"slot_engine/internal/model"
)

type LineService interface {
	Spin(ctx context.Context, userID int, req model.SpinRequest) (*model.LineRound, error)
	BuyBonus(ctx context.Context, userID int, bet int64) (*model.LineRound, error)
	CheckData(ctx context.Context, userID int) (*model.Data, error)
	History(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error)
	Stats() model.GameStats
}

type CascadeService interface {
	Spin(ctx context.Context, userID int, req model.SpinRequest) (*model.CascadeRound, error)
	BuyBonus(ctx context.Context, userID int, bet int64) (*model.CascadeRound, error)
	CheckData(ctx context.Context, userID int) (*model.CascadeData, error)
	History(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error)
	Stats() model.GameStats
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (*model.AuthData, error)
	Logout(ctx context.Context, sessionID string) error
}

type PaymentService interface {
	Deposit(ctx context.Context, userID int, amount int64) (int64, error)
	GetBalance(ctx context.Context, userID int) (int64, error)
}
