//go:build wireinject
// +build wireinject

package app

import (
	"smalipatch/internal/adapters/filesystem"
	"smalipatch/internal/adapters/logger"
	"smalipatch/internal/core"
	"smalipatch/internal/core/handler"
	"smalipatch/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	logger.ProvideZapLogger,
	wire.Bind(new(ports.Logger), new(*logger.ZapLogger)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvidePatcher,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectApplyCommandHandler() (handler.ApplyCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideApplyCommandHandler,
	)
	return handler.ApplyCommandHandler{}, nil
}

func InjectParseCommandHandler() (handler.ParseCommandHandler, error) {
	wire.Build(
		Adapter,
		handler.ProvideParseCommandHandler,
	)
	return handler.ParseCommandHandler{}, nil
}

func InjectInitializeCommandHandler() (handler.InitializeCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideInitializeCommandHandler,
	)
	return handler.InitializeCommandHandler{}, nil
}
