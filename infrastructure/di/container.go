package di

import (
	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/application/services"
	"meumuseu/infrastructure/config"
	"meumuseu/pkg/auth"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	KV           ports.KeyValueStore
	Tunables     *config.TunablesWatcher
	Gate         *services.LatencyGate
	Metrics      *observability.Collector
	Tokens       *auth.TokenService
	ErrorHandler *pkgerrors.ErrorHandler
	Identity     ports.IdentityStore
	Plans        ports.PlanStore
	Museum       ports.MuseumStore
	Share        ports.ShareReader
	Avatars      ports.AvatarStore
	Captions     *services.CaptionService
}
