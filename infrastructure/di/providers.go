package di

import (
	"fmt"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/application/services"
	domaincfg "meumuseu/domain/config"
	"meumuseu/infrastructure/config"
	"meumuseu/infrastructure/persistence/instrumentedkv"
	"meumuseu/infrastructure/persistence/memorykv"
	"meumuseu/infrastructure/persistence/sqlitekv"
	"meumuseu/pkg/auth"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/observability"
)

// developmentSecret signs sessions when no JWT_SECRET is configured.
// Config validation rejects this outside development.
const developmentSecret = "development-secret-change-in-production"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideKeyValueStore creates the configured storage backend, wrapped with
// operation metrics when metrics are enabled. The cleanup function closes it
// on container shutdown.
func ProvideKeyValueStore(cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) (ports.KeyValueStore, func(), error) {
	var store ports.KeyValueStore
	var cleanup func()

	switch cfg.StorageDriver {
	case "memory":
		s := memorykv.New()
		store, cleanup = s, func() { s.Close() }
	case "sqlite":
		s, err := sqlitekv.NewWithDSN(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("SQLite store opened", zap.String("path", cfg.SQLitePath))
		store, cleanup = s, func() { s.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.EnableMetrics {
		store = instrumentedkv.Wrap(store, metrics)
	}
	return store, cleanup, nil
}

// ProvideTunablesWatcher creates the hot-reloadable tunables source
func ProvideTunablesWatcher(cfg *config.Config, logger *zap.Logger) (*config.TunablesWatcher, func(), error) {
	watcher, err := config.NewTunablesWatcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	watcher.Start()
	return watcher, watcher.Stop, nil
}

// ProvideLatencyGate creates the simulated-latency gate fed by tunables
func ProvideLatencyGate(tunables *config.TunablesWatcher) *services.LatencyGate {
	return services.NewDynamicLatencyGate(tunables.Latency)
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideTokenService creates the session token service
func ProvideTokenService(cfg *config.Config) (*auth.TokenService, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = developmentSecret
	}
	return auth.NewTokenService(secret, cfg.JWTIssuer, cfg.SessionTTL)
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideDomainConfig supplies the domain-level field limits
func ProvideDomainConfig() *domaincfg.DomainConfig {
	return domaincfg.DefaultDomainConfig()
}

// ProvideIdentityStore creates the identity store
func ProvideIdentityStore(kv ports.KeyValueStore, gate *services.LatencyGate, logger *zap.Logger) ports.IdentityStore {
	return services.NewIdentityService(kv, gate, logger)
}

// ProvidePlanStore creates the plan store
func ProvidePlanStore(kv ports.KeyValueStore, gate *services.LatencyGate, metrics *observability.Collector, logger *zap.Logger) ports.PlanStore {
	return services.NewPlanService(kv, gate, metrics, logger)
}

// ProvideMuseumStore creates the museum store
func ProvideMuseumStore(kv ports.KeyValueStore, plans ports.PlanStore, gate *services.LatencyGate, metrics *observability.Collector, logger *zap.Logger) ports.MuseumStore {
	return services.NewMuseumService(kv, plans, gate, metrics, logger)
}

// ProvideShareReader creates the public museum reader
func ProvideShareReader(kv ports.KeyValueStore, logger *zap.Logger) ports.ShareReader {
	return services.NewShareService(kv, logger)
}

// ProvideAvatarStore creates the avatar store
func ProvideAvatarStore(kv ports.KeyValueStore, dcfg *domaincfg.DomainConfig, logger *zap.Logger) ports.AvatarStore {
	return services.NewAvatarService(kv, dcfg, logger)
}

// ProvideCaptionService creates the caption generator
func ProvideCaptionService(gate *services.LatencyGate, metrics *observability.Collector, logger *zap.Logger) *services.CaptionService {
	return services.NewCaptionService(gate, metrics, logger)
}
