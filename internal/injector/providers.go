package injector

import (
	"fmt"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/game"
)

// ConfigPath is the YAML config file; empty means built-in defaults.
type ConfigPath string

func ProvideConfig(path ConfigPath) (*config.Config, error) {
	return config.Load(string(path))
}

func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger := log.New(log.Options{Level: level, Encoding: cfg.Log.Encoding})
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideGame(cfg *config.Config, logger log.Log) (*game.Game, func(), error) {
	g, err := game.New(cfg, logger.Named("game"))
	if err != nil {
		return nil, nil, err
	}
	return g, func() { _ = g.Close() }, nil
}
