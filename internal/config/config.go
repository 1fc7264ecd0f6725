package config

import (
	"slot_engine/internal/engine/cascade"
	"slot_engine/internal/engine/line"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// GameConfig математика игр из yaml
type GameConfig interface {
	Line() line.Config
	Cascade() cascade.Config
}

type HTTPConfig interface {
	Address() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

// RedisConfig пустой адрес - блокировки игроков в памяти процесса
type RedisConfig interface {
	Address() string
	Password() string
	DB() int
	LockTTL() time.Duration
}

type LogConfig interface {
	Level() string
	Development() bool
}
