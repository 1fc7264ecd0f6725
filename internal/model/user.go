package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  int64
}

// UserClaims claims access токена, ID пользователя в Subject
type UserClaims struct {
	jwt.RegisteredClaims
}

// AuthData токены, выдаваемые при регистрации и логине
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
