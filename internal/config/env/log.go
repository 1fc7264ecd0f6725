package env

import (
	"os"
	"slot_engine/internal/config"
	"strconv"
)

const (
	logLevelEnvName       = "LOG_LEVEL"
	logDevelopmentEnvName = "LOG_DEVELOPMENT"
)

type logConfig struct {
	level       string
	development bool
}

func NewLogConfig() (config.LogConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}
	dev, _ := strconv.ParseBool(os.Getenv(logDevelopmentEnvName))
	return &logConfig{level: level, development: dev}, nil
}

func (l *logConfig) Level() string {
	return l.level
}

func (l *logConfig) Development() bool {
	return l.development
}
