package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/infrastructure/persistence/layout"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/observability"
)

// PlanService tracks the per-user subscription tier. It implements
// ports.PlanStore. The per-room quota check deliberately scans the durable
// memories collection rather than any cached view, so it stays correct even
// when another store mutated the collection since the last load.
type PlanService struct {
	kv      ports.KeyValueStore
	codec   *layout.Codec
	gate    *LatencyGate
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(kv ports.KeyValueStore, gate *LatencyGate, metrics *observability.Collector, logger *zap.Logger) *PlanService {
	return &PlanService{
		kv:      kv,
		codec:   layout.NewCodec(),
		gate:    gate,
		metrics: metrics,
		logger:  logger,
	}
}

// Current returns the user's tier. Absent or unrecognized entries default
// to basic and are persisted immediately, matching the load-time behavior
// of the persisted-data contract.
func (s *PlanService) Current(ctx context.Context, userID valueobjects.EntityID) (valueobjects.PlanType, error) {
	key := layout.PlanKey(userID.String())

	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", pkgerrors.NewPersistenceError("read plan", err)
	}
	if found {
		if plan, err := valueobjects.ParsePlanType(raw); err == nil {
			return plan, nil
		}
		s.logger.Warn("Unrecognized plan entry, resetting to basic",
			zap.String("user_id", userID.String()),
			zap.String("value", raw),
		)
	}

	if err := s.kv.Set(ctx, key, valueobjects.PlanBasic.String()); err != nil {
		return "", pkgerrors.NewPersistenceError("persist plan", err)
	}
	return valueobjects.PlanBasic, nil
}

// IsWithinLimits checks the given counts against the user's tier quotas.
// Pass ports.NoCount as memoryCount to check only the room quota.
func (s *PlanService) IsWithinLimits(ctx context.Context, userID valueobjects.EntityID, roomCount, memoryCount int) (bool, error) {
	plan, err := s.Current(ctx, userID)
	if err != nil {
		return false, err
	}

	limits := plan.Limits()
	within := limits.AllowsRooms(roomCount)
	if memoryCount != ports.NoCount {
		within = within && limits.AllowsMemories(memoryCount)
	}
	return within, nil
}

// CanAddMemoryToRoom reports whether one more memory fits the per-room
// quota. Premium short-circuits true without touching storage counts.
func (s *PlanService) CanAddMemoryToRoom(ctx context.Context, userID, roomID valueobjects.EntityID) (bool, error) {
	plan, err := s.Current(ctx, userID)
	if err != nil {
		return false, err
	}
	if plan.IsPremium() {
		return true, nil
	}

	usage, err := s.usage(ctx, userID, roomID, plan)
	if err != nil {
		return false, err
	}
	return usage.Current < usage.Max, nil
}

// UpgradeToPremium flips the tier flag. No payment verification happens:
// the caller opens the external checkout link and reports success
// optimistically, which is a deliberate simulation, not a guarantee.
func (s *PlanService) UpgradeToPremium(ctx context.Context, userID valueobjects.EntityID) error {
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}

	key := layout.PlanKey(userID.String())
	if err := s.kv.Set(ctx, key, valueobjects.PlanPremium.String()); err != nil {
		return pkgerrors.NewPersistenceError("persist plan", err)
	}

	if s.metrics != nil {
		s.metrics.PlanUpgrades.Inc()
	}
	s.logger.Info("Plan upgraded to premium", zap.String("user_id", userID.String()))
	return nil
}

// UsageDetails reports current/max/percentage for a room's memory quota
func (s *PlanService) UsageDetails(ctx context.Context, userID, roomID valueobjects.EntityID) (ports.Usage, error) {
	plan, err := s.Current(ctx, userID)
	if err != nil {
		return ports.Usage{}, err
	}
	return s.usage(ctx, userID, roomID, plan)
}

func (s *PlanService) usage(ctx context.Context, userID, roomID valueobjects.EntityID, plan valueobjects.PlanType) (ports.Usage, error) {
	raw, found, err := s.kv.Get(ctx, layout.KeyMemories)
	if err != nil {
		return ports.Usage{}, pkgerrors.NewPersistenceError("read memories", err)
	}

	current := 0
	if found {
		memories, err := s.codec.DecodeMemories(raw)
		if err != nil {
			return ports.Usage{}, err
		}
		for _, m := range memories {
			if m.RoomID.Equals(roomID) && m.OwnedBy(userID) {
				current++
			}
		}
	}

	limits := plan.Limits()
	usage := ports.Usage{Current: current, Max: limits.MaxMemoriesPerRoom}
	if usage.Max != valueobjects.Unlimited {
		usage.Percentage = math.Min(100, float64(usage.Current)/float64(usage.Max)*100)
	}
	return usage, nil
}
