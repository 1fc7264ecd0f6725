package env

import (
	"fmt"
	"os"
	"slot_engine/internal/config"
	"strconv"
	"time"
)

const (
	redisAddrEnvName     = "REDIS_ADDR"
	redisPasswordEnvName = "REDIS_PASSWORD"
	redisDBEnvName       = "REDIS_DB"
	redisLockTTLEnvName  = "REDIS_LOCK_TTL"

	defaultLockTTL = 10 * time.Second
)

type redisConfig struct {
	address  string
	password string
	db       int
	lockTTL  time.Duration
}

func NewRedisConfig() (config.RedisConfig, error) {
	db := 0
	if raw := os.Getenv(redisDBEnvName); len(raw) != 0 {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", redisDBEnvName, err)
		}
		db = v
	}

	ttl, err := durationOrDefault(redisLockTTLEnvName, defaultLockTTL)
	if err != nil {
		return nil, err
	}

	return &redisConfig{
		address:  os.Getenv(redisAddrEnvName),
		password: os.Getenv(redisPasswordEnvName),
		db:       db,
		lockTTL:  ttl,
	}, nil
}

func (r *redisConfig) Address() string {
	return r.address
}

func (r *redisConfig) Password() string {
	return r.password
}

func (r *redisConfig) DB() int {
	return r.db
}

func (r *redisConfig) LockTTL() time.Duration {
	return r.lockTTL
}
