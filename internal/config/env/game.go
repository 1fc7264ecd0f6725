package env

import (
	"os"
	"slot_engine/internal/config"
	"slot_engine/internal/engine/cascade"
	"slot_engine/internal/engine/line"

	"gopkg.in/yaml.v3"
)

const (
	gameConfigEnvName = "GAME_CONFIG"
	defaultGameConfig = "config.yaml"
)

type gameConfig struct {
	LineCfg    line.Config    `yaml:"line"`
	CascadeCfg cascade.Config `yaml:"cascade"`
}

// GameConfigPath путь к yaml из GAME_CONFIG или config.yaml
func GameConfigPath() string {
	if p := os.Getenv(gameConfigEnvName); len(p) != 0 {
		return p
	}
	return defaultGameConfig
}

// NewGameConfigFromYAML читает и проверяет конфигурацию обеих игр
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseGameConfig(data)
}

func parseGameConfig(data []byte) (*gameConfig, error) {
	var cfg gameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Сборка игр проверяет и таблицы весов
	if _, err := line.New(cfg.LineCfg); err != nil {
		return nil, err
	}
	if _, err := cascade.New(cfg.CascadeCfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (g *gameConfig) Line() line.Config {
	return g.LineCfg
}

func (g *gameConfig) Cascade() cascade.Config {
	return g.CascadeCfg
}
