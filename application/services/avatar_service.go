package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/config"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/infrastructure/persistence/layout"
	pkgerrors "meumuseu/pkg/errors"
)

// AvatarService persists per-user profile images as base64 data URIs. It
// implements ports.AvatarStore. The image bytes themselves never leave the
// key-value store; callers render the URI directly.
type AvatarService struct {
	kv     ports.KeyValueStore
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewAvatarService creates a new avatar service
func NewAvatarService(kv ports.KeyValueStore, cfg *config.DomainConfig, logger *zap.Logger) *AvatarService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &AvatarService{
		kv:     kv,
		cfg:    cfg,
		logger: logger,
	}
}

// Get returns the stored data URI, or empty when no avatar is set
func (s *AvatarService) Get(ctx context.Context, userID valueobjects.EntityID) (string, error) {
	raw, found, err := s.kv.Get(ctx, layout.AvatarKey(userID.String()))
	if err != nil {
		return "", pkgerrors.NewPersistenceError("read avatar", err)
	}
	if !found {
		return "", nil
	}
	return raw, nil
}

// Set stores a data URI as the user's avatar. An empty URI clears it.
func (s *AvatarService) Set(ctx context.Context, userID valueobjects.EntityID, dataURI string) error {
	key := layout.AvatarKey(userID.String())

	if dataURI == "" {
		if err := s.kv.Delete(ctx, key); err != nil {
			return pkgerrors.NewPersistenceError("clear avatar", err)
		}
		return nil
	}

	if !strings.HasPrefix(dataURI, "data:image/") {
		return pkgerrors.NewValidationError("avatar must be an image data URI")
	}
	if len(dataURI) > s.cfg.MaxMediaURLLength {
		return pkgerrors.NewValidationError("avatar image is too large")
	}

	if err := s.kv.Set(ctx, key, dataURI); err != nil {
		return pkgerrors.NewPersistenceError("persist avatar", err)
	}

	s.logger.Debug("Avatar updated", zap.String("user_id", userID.String()))
	return nil
}
