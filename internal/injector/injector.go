//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/AlexisPollonni/Arch/internal/core/observability/log"
	"github.com/AlexisPollonni/Arch/internal/core/system"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}

func ProvideWorld() *system.World {
	wire.Build(
		system.DefaultConfig,
		log.Provide,
		wire.Bind(new(log.Log), new(*log.Logger)),
		system.NewWorld,
	)
	return nil
}
