package services

import (
	"context"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/infrastructure/persistence/layout"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/observability"
)

// MuseumService manages the rooms and memories collections. It implements
// ports.MuseumStore over the durable key-value store.
//
// The collections span all users under two shared keys, so every mutation
// is a full read-modify-write: read everything, replace the acting user's
// subset, rewrite. Concurrent writers from separate processes therefore
// race with last-write-wins over the whole collection; that is the
// consistency model this service inherits, not a guarantee it adds.
type MuseumService struct {
	kv      ports.KeyValueStore
	codec   *layout.Codec
	plans   ports.PlanStore
	gate    *LatencyGate
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewMuseumService creates a new museum service
func NewMuseumService(
	kv ports.KeyValueStore,
	plans ports.PlanStore,
	gate *LatencyGate,
	metrics *observability.Collector,
	logger *zap.Logger,
) *MuseumService {
	return &MuseumService{
		kv:      kv,
		codec:   layout.NewCodec(),
		plans:   plans,
		gate:    gate,
		metrics: metrics,
		logger:  logger,
	}
}

// CreateRoom creates a room after the plan's room quota allows it
func (s *MuseumService) CreateRoom(ctx context.Context, userID valueobjects.EntityID, draft entities.RoomDraft) (*entities.Room, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, err
	}

	all, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}

	mine := 0
	for _, r := range all {
		if r.OwnedBy(userID) {
			mine++
		}
	}

	within, err := s.plans.IsWithinLimits(ctx, userID, mine, ports.NoCount)
	if err != nil {
		return nil, err
	}
	if !within {
		plan, err := s.plans.Current(ctx, userID)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.LimitRejections.WithLabelValues("rooms").Inc()
		}
		return nil, pkgerrors.NewLimitReachedError("rooms", plan.Limits().MaxRooms)
	}

	room, err := entities.NewRoom(userID, draft)
	if err != nil {
		return nil, err
	}

	if err := s.saveRooms(ctx, append(all, room)); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RoomsCreated.Inc()
	}
	s.logger.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return room, nil
}

// UpdateRoom merges a partial update into a room the user owns
func (s *MuseumService) UpdateRoom(ctx context.Context, userID, roomID valueobjects.EntityID, patch entities.RoomPatch) (*entities.Room, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, err
	}

	all, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}

	room := findRoom(all, userID, roomID)
	if room == nil {
		return nil, pkgerrors.NewNotFoundError("room")
	}

	if err := room.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.saveRooms(ctx, all); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes a room the user owns and cascades to its memories
func (s *MuseumService) DeleteRoom(ctx context.Context, userID, roomID valueobjects.EntityID) error {
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}

	all, err := s.loadRooms(ctx)
	if err != nil {
		return err
	}

	if findRoom(all, userID, roomID) == nil {
		return pkgerrors.NewNotFoundError("room")
	}

	kept := all[:0]
	for _, r := range all {
		if !(r.ID.Equals(roomID) && r.OwnedBy(userID)) {
			kept = append(kept, r)
		}
	}
	if err := s.saveRooms(ctx, kept); err != nil {
		return err
	}

	memories, err := s.loadMemories(ctx)
	if err != nil {
		return err
	}
	remaining := memories[:0]
	removed := 0
	for _, m := range memories {
		if m.RoomID.Equals(roomID) && m.OwnedBy(userID) {
			removed++
			continue
		}
		remaining = append(remaining, m)
	}
	if err := s.saveMemories(ctx, remaining); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RoomsDeleted.Inc()
	}
	s.logger.Info("Room deleted",
		zap.String("room_id", roomID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("cascaded_memories", removed),
	)
	return nil
}

// GetRoom returns a room the user owns
func (s *MuseumService) GetRoom(ctx context.Context, userID, roomID valueobjects.EntityID) (*entities.Room, error) {
	all, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}
	room := findRoom(all, userID, roomID)
	if room == nil {
		return nil, pkgerrors.NewNotFoundError("room")
	}
	return room, nil
}

// ListRooms returns the user's rooms
func (s *MuseumService) ListRooms(ctx context.Context, userID valueobjects.EntityID) ([]*entities.Room, error) {
	all, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]*entities.Room, 0)
	for _, r := range all {
		if r.OwnedBy(userID) {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

// CreateMemory creates a memory in a room the user owns, after the plan's
// per-room quota allows it
func (s *MuseumService) CreateMemory(ctx context.Context, userID, roomID valueobjects.EntityID, draft entities.MemoryDraft) (*entities.Memory, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, err
	}

	rooms, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}
	if findRoom(rooms, userID, roomID) == nil {
		return nil, pkgerrors.NewNotFoundError("room")
	}

	ok, err := s.plans.CanAddMemoryToRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		plan, err := s.plans.Current(ctx, userID)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.LimitRejections.WithLabelValues("memories").Inc()
		}
		return nil, pkgerrors.NewLimitReachedError("memories per room", plan.Limits().MaxMemoriesPerRoom)
	}

	memory, err := entities.NewMemory(userID, roomID, draft)
	if err != nil {
		return nil, err
	}

	all, err := s.loadMemories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.saveMemories(ctx, append(all, memory)); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.MemoriesCreated.Inc()
	}
	s.logger.Info("Memory created",
		zap.String("memory_id", memory.ID.String()),
		zap.String("room_id", roomID.String()),
		zap.String("user_id", userID.String()),
	)
	return memory, nil
}

// UpdateMemory merges a partial update into a memory the user owns
func (s *MuseumService) UpdateMemory(ctx context.Context, userID, memoryID valueobjects.EntityID, patch entities.MemoryPatch) (*entities.Memory, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, err
	}

	all, err := s.loadMemories(ctx)
	if err != nil {
		return nil, err
	}

	memory := findMemory(all, userID, memoryID)
	if memory == nil {
		return nil, pkgerrors.NewNotFoundError("memory")
	}

	if err := memory.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.saveMemories(ctx, all); err != nil {
		return nil, err
	}
	return memory, nil
}

// DeleteMemory removes a memory the user owns
func (s *MuseumService) DeleteMemory(ctx context.Context, userID, memoryID valueobjects.EntityID) error {
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}

	all, err := s.loadMemories(ctx)
	if err != nil {
		return err
	}

	if findMemory(all, userID, memoryID) == nil {
		return pkgerrors.NewNotFoundError("memory")
	}

	kept := all[:0]
	for _, m := range all {
		if !(m.ID.Equals(memoryID) && m.OwnedBy(userID)) {
			kept = append(kept, m)
		}
	}
	if err := s.saveMemories(ctx, kept); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.MemoriesDeleted.Inc()
	}
	return nil
}

// GetMemory returns a memory the user owns
func (s *MuseumService) GetMemory(ctx context.Context, userID, memoryID valueobjects.EntityID) (*entities.Memory, error) {
	all, err := s.loadMemories(ctx)
	if err != nil {
		return nil, err
	}
	memory := findMemory(all, userID, memoryID)
	if memory == nil {
		return nil, pkgerrors.NewNotFoundError("memory")
	}
	return memory, nil
}

// ListMemories returns the user's memories in a room
func (s *MuseumService) ListMemories(ctx context.Context, userID, roomID valueobjects.EntityID) ([]*entities.Memory, error) {
	all, err := s.loadMemories(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]*entities.Memory, 0)
	for _, m := range all {
		if m.RoomID.Equals(roomID) && m.OwnedBy(userID) {
			mine = append(mine, m)
		}
	}
	return mine, nil
}

// RoomMemoryCount counts the user's memories in a room
func (s *MuseumService) RoomMemoryCount(ctx context.Context, userID, roomID valueobjects.EntityID) (int, error) {
	mine, err := s.ListMemories(ctx, userID, roomID)
	if err != nil {
		return 0, err
	}
	return len(mine), nil
}

func (s *MuseumService) loadRooms(ctx context.Context) ([]*entities.Room, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyRooms)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("read rooms", err)
	}
	if !found {
		return nil, nil
	}
	return s.codec.DecodeRooms(raw)
}

func (s *MuseumService) saveRooms(ctx context.Context, rooms []*entities.Room) error {
	encoded, err := s.codec.EncodeRooms(rooms)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, layout.KeyRooms, encoded); err != nil {
		return pkgerrors.NewPersistenceError("persist rooms", err)
	}
	return nil
}

func (s *MuseumService) loadMemories(ctx context.Context) ([]*entities.Memory, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyMemories)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("read memories", err)
	}
	if !found {
		return nil, nil
	}
	return s.codec.DecodeMemories(raw)
}

func (s *MuseumService) saveMemories(ctx context.Context, memories []*entities.Memory) error {
	encoded, err := s.codec.EncodeMemories(memories)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, layout.KeyMemories, encoded); err != nil {
		return pkgerrors.NewPersistenceError("persist memories", err)
	}
	return nil
}

func findRoom(rooms []*entities.Room, userID, roomID valueobjects.EntityID) *entities.Room {
	for _, r := range rooms {
		if r.ID.Equals(roomID) && r.OwnedBy(userID) {
			return r
		}
	}
	return nil
}

func findMemory(memories []*entities.Memory, userID, memoryID valueobjects.EntityID) *entities.Memory {
	for _, m := range memories {
		if m.ID.Equals(memoryID) && m.OwnedBy(userID) {
			return m
		}
	}
	return nil
}
