//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"meumuseu/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideKeyValueStore,
	ProvideTunablesWatcher,
	ProvideLatencyGate,
	ProvideMetrics,
	ProvideTokenService,
	ProvideErrorHandler,
	ProvideDomainConfig,
	ProvideIdentityStore,
	ProvidePlanStore,
	ProvideMuseumStore,
	ProvideShareReader,
	ProvideAvatarStore,
	ProvideCaptionService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
