package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/infrastructure/persistence/memorykv"
	pkgerrors "meumuseu/pkg/errors"
)

func TestShareService_Museum(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles the owner's rooms and memories", func(t *testing.T) {
		kv := memorykv.New()
		identity := newIdentityService(kv)
		plans := newPlanService(kv)
		museum := NewMuseumService(kv, plans, NewLatencyGate(0), nil, zap.NewNop())
		share := NewShareService(kv, zap.NewNop())

		owner, err := identity.Login(ctx, "ana@example.com", "secret1")
		require.NoError(t, err)
		require.NoError(t, plans.UpgradeToPremium(ctx, owner.ID))

		first, err := museum.CreateRoom(ctx, owner.ID, entities.RoomDraft{Name: "Infância"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		second, err := museum.CreateRoom(ctx, owner.ID, entities.RoomDraft{Name: "Viagens"})
		require.NoError(t, err)

		older, err := museum.CreateMemory(ctx, owner.ID, first.ID, entities.MemoryDraft{
			Title: "Bicicleta", MediaType: valueobjects.MediaText, Content: "a primeira",
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		newer, err := museum.CreateMemory(ctx, owner.ID, first.ID, entities.MemoryDraft{
			Title: "Escola", MediaType: valueobjects.MediaImage, MediaURL: "data:image/png;base64,AAAA",
		})
		require.NoError(t, err)

		view, err := share.Museum(ctx, owner.ID)
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", view.Owner.Email)
		require.Len(t, view.Rooms, 2)

		assert.Equal(t, first.ID, view.Rooms[0].Room.ID, "rooms come oldest first")
		assert.Equal(t, second.ID, view.Rooms[1].Room.ID)

		exhibit := view.Rooms[0]
		require.Len(t, exhibit.Memories, 2)
		assert.Equal(t, newer.ID, exhibit.Memories[0].ID, "memories come newest first")
		assert.Equal(t, older.ID, exhibit.Memories[1].ID)

		assert.Equal(t, 1, exhibit.Counts.Text)
		assert.Equal(t, 1, exhibit.Counts.Image)
		assert.Equal(t, 2, exhibit.Counts.Total)
		assert.Equal(t, 2, view.Counts.Total)
		assert.Empty(t, view.Rooms[1].Memories)
	})

	t.Run("unknown owner id resolves to not found", func(t *testing.T) {
		kv := memorykv.New()
		identity := newIdentityService(kv)
		share := NewShareService(kv, zap.NewNop())

		_, err := identity.Login(ctx, "ana@example.com", "secret1")
		require.NoError(t, err)

		_, err = share.Museum(ctx, valueobjects.NewEntityID())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("no session means no museum", func(t *testing.T) {
		share := NewShareService(memorykv.New(), zap.NewNop())

		_, err := share.Museum(ctx, valueobjects.NewEntityID())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("tolerates missing collections", func(t *testing.T) {
		kv := memorykv.New()
		identity := newIdentityService(kv)
		share := NewShareService(kv, zap.NewNop())

		owner, err := identity.Login(ctx, "ana@example.com", "secret1")
		require.NoError(t, err)

		view, err := share.Museum(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, view.Rooms)
		assert.Zero(t, view.Counts.Total)
	})
}
