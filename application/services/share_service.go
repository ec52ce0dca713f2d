package services

import (
	"context"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/core/aggregates"
	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/infrastructure/persistence/layout"
	pkgerrors "meumuseu/pkg/errors"
)

// ShareService assembles the public, read-only museum view served to
// anonymous visitors. It implements ports.ShareReader. Only the owner whose
// id matches the stored session record resolves; any other id is treated as
// an unknown museum.
type ShareService struct {
	kv     ports.KeyValueStore
	codec  *layout.Codec
	logger *zap.Logger
}

// NewShareService creates a new share service
func NewShareService(kv ports.KeyValueStore, logger *zap.Logger) *ShareService {
	return &ShareService{
		kv:     kv,
		codec:  layout.NewCodec(),
		logger: logger,
	}
}

// Museum builds the shared view for the given owner id
func (s *ShareService) Museum(ctx context.Context, userID valueobjects.EntityID) (*aggregates.Museum, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyUser)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("read session", err)
	}
	if !found {
		return nil, pkgerrors.NewNotFoundError("museum")
	}

	owner, err := s.codec.DecodeUser(raw)
	if err != nil {
		return nil, err
	}
	if !owner.ID.Equals(userID) {
		return nil, pkgerrors.NewNotFoundError("museum")
	}

	rooms, err := s.ownedRooms(ctx, userID)
	if err != nil {
		return nil, err
	}
	memories, err := s.ownedMemories(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Shared museum assembled",
		zap.String("user_id", userID.String()),
		zap.Int("rooms", len(rooms)),
		zap.Int("memories", len(memories)),
	)
	return aggregates.BuildMuseum(owner, rooms, memories), nil
}

func (s *ShareService) ownedRooms(ctx context.Context, userID valueobjects.EntityID) ([]*entities.Room, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyRooms)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("read rooms", err)
	}
	if !found {
		return nil, nil
	}
	all, err := s.codec.DecodeRooms(raw)
	if err != nil {
		return nil, err
	}
	owned := make([]*entities.Room, 0, len(all))
	for _, r := range all {
		if r.OwnedBy(userID) {
			owned = append(owned, r)
		}
	}
	return owned, nil
}

func (s *ShareService) ownedMemories(ctx context.Context, userID valueobjects.EntityID) ([]*entities.Memory, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyMemories)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("read memories", err)
	}
	if !found {
		return nil, nil
	}
	all, err := s.codec.DecodeMemories(raw)
	if err != nil {
		return nil, err
	}
	owned := make([]*entities.Memory, 0, len(all))
	for _, m := range all {
		if m.OwnedBy(userID) {
			owned = append(owned, m)
		}
	}
	return owned, nil
}
