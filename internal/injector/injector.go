//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/game"
)

var GameSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideGame,
)

func InitializeGame(path ConfigPath) (*game.Game, func(), error) {
	wire.Build(GameSet)
	return nil, nil, nil
}
