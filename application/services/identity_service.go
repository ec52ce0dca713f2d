package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/core/entities"
	"meumuseu/infrastructure/persistence/layout"
	pkgerrors "meumuseu/pkg/errors"
)

// IdentityService manages the single logged-in user record. It implements
// ports.IdentityStore over the durable key-value store. Login and register
// fabricate a user after format checks only; there is no credential store
// and no real authentication behind them.
type IdentityService struct {
	kv     ports.KeyValueStore
	codec  *layout.Codec
	gate   *LatencyGate
	logger *zap.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(kv ports.KeyValueStore, gate *LatencyGate, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		kv:     kv,
		codec:  layout.NewCodec(),
		gate:   gate,
		logger: logger,
	}
}

// Login validates the credential format and starts a fresh session,
// replacing any previously stored user record.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, err
	}

	if err := entities.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := entities.NewUser(email, "")
	if err != nil {
		return nil, err
	}

	if err := s.persistUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return user, nil
}

// Register validates the registration fields and starts a fresh session
func (s *IdentityService) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, err
	}

	if err := entities.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.NewValidationError("name cannot be empty")
	}

	user, err := entities.NewUser(email, name)
	if err != nil {
		return nil, err
	}

	if err := s.persistUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return user, nil
}

// Logout clears the session record and wipes the shared rooms and memories
// collections. The wipe spans ALL users' data, not just the departing
// user's subset; see the open questions in DESIGN.md.
func (s *IdentityService) Logout(ctx context.Context) error {
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, layout.KeyUser); err != nil {
		return pkgerrors.NewPersistenceError("clear session", err)
	}
	if err := s.kv.Delete(ctx, layout.KeyRooms); err != nil {
		return pkgerrors.NewPersistenceError("clear rooms", err)
	}
	if err := s.kv.Delete(ctx, layout.KeyMemories); err != nil {
		return pkgerrors.NewPersistenceError("clear memories", err)
	}

	s.logger.Info("User logged out, shared collections cleared")
	return nil
}

// Current returns the stored session user, or nil when nobody is logged in
func (s *IdentityService) Current(ctx context.Context) (*entities.User, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyUser)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("read session", err)
	}
	if !found {
		return nil, nil
	}
	return s.codec.DecodeUser(raw)
}

func (s *IdentityService) persistUser(ctx context.Context, user *entities.User) error {
	encoded, err := s.codec.EncodeUser(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, layout.KeyUser, encoded); err != nil {
		return pkgerrors.NewPersistenceError("persist session", err)
	}
	return nil
}
