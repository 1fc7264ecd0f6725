package env

import (
	"errors"
	"fmt"
	"os"
	"slot_engine/internal/config"
	"strconv"
)

const (
	dsnName         = "PG_DSN"
	maxConnsEnvName = "PG_MAX_CONNS"
)

// ErrNoDSN postgres не настроен, приложение уходит на хранение в памяти
var ErrNoDSN = errors.New("pg dsn not found")

type pgConfig struct {
	dsn      string
	maxConns int32
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, ErrNoDSN
	}

	var maxConns int32
	if raw := os.Getenv(maxConnsEnvName); len(raw) != 0 {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid %s: %q", maxConnsEnvName, raw)
		}
		maxConns = int32(v)
	}

	return &pgConfig{dsn: dsn, maxConns: maxConns}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

// MaxConns 0 - размер пула по умолчанию pgxpool
func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}
