package env

import (
	"fmt"
	"os"
	"slot_engine/internal/config"
	"time"
)

const (
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"
)

type jwtConfig struct {
	accessTokenSecretKey []byte
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	secret := os.Getenv(accessTokenKeyEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}

	access, err := requiredDuration(accessTokenDurationEnvName)
	if err != nil {
		return nil, err
	}
	refresh, err := requiredDuration(refreshTokenDurationEnvName)
	if err != nil {
		return nil, err
	}
	if refresh <= access {
		return nil, fmt.Errorf("refresh token duration %s must exceed access token duration %s", refresh, access)
	}

	return &jwtConfig{
		accessTokenSecretKey: []byte(secret),
		accessTokenDuration:  access,
		refreshTokenDuration: refresh,
	}, nil
}

func requiredDuration(name string) (time.Duration, error) {
	if len(os.Getenv(name)) == 0 {
		return 0, fmt.Errorf("%s not found", name)
	}
	d, err := durationOrDefault(name, 0)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return j.accessTokenSecretKey
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}
