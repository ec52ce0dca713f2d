package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meumuseu/infrastructure/persistence/layout"
	"meumuseu/infrastructure/persistence/memorykv"
	pkgerrors "meumuseu/pkg/errors"
)

func newIdentityService(kv *memorykv.Store) *IdentityService {
	return NewIdentityService(kv, NewLatencyGate(0), zap.NewNop())
}

func TestIdentityService_Login(t *testing.T) {
	t.Run("creates session from valid credentials", func(t *testing.T) {
		kv := memorykv.New()
		svc := newIdentityService(kv)

		user, err := svc.Login(context.Background(), "ana@example.com", "secret1")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, "ana", user.Name, "name derives from the email local part")
		assert.Len(t, user.ID.String(), 9)

		current, err := svc.Current(context.Background())
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, user.ID, current.ID)
	})

	t.Run("rejects email without at sign", func(t *testing.T) {
		svc := newIdentityService(memorykv.New())

		_, err := svc.Login(context.Background(), "not-an-email", "secret1")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := newIdentityService(memorykv.New())

		_, err := svc.Login(context.Background(), "ana@example.com", "short")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("replaces previous session", func(t *testing.T) {
		svc := newIdentityService(memorykv.New())

		first, err := svc.Login(context.Background(), "ana@example.com", "secret1")
		require.NoError(t, err)

		second, err := svc.Login(context.Background(), "bia@example.com", "secret2")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		current, err := svc.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "bia@example.com", current.Email)
	})
}

func TestIdentityService_Register(t *testing.T) {
	t.Run("uses the provided name", func(t *testing.T) {
		svc := newIdentityService(memorykv.New())

		user, err := svc.Register(context.Background(), "Ana Clara", "ana@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Ana Clara", user.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := newIdentityService(memorykv.New())

		_, err := svc.Register(context.Background(), "   ", "ana@example.com", "secret1")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestIdentityService_Logout(t *testing.T) {
	t.Run("clears session and both shared collections", func(t *testing.T) {
		kv := memorykv.New()
		svc := newIdentityService(kv)

		_, err := svc.Login(context.Background(), "ana@example.com", "secret1")
		require.NoError(t, err)
		require.NoError(t, kv.Set(context.Background(), layout.KeyRooms, `[]`))
		require.NoError(t, kv.Set(context.Background(), layout.KeyMemories, `[]`))

		require.NoError(t, svc.Logout(context.Background()))

		for _, key := range []string{layout.KeyUser, layout.KeyRooms, layout.KeyMemories} {
			_, found, err := kv.Get(context.Background(), key)
			require.NoError(t, err)
			assert.False(t, found, "key %s should be gone after logout", key)
		}
	})

	t.Run("leaves per-user plan entries alone", func(t *testing.T) {
		kv := memorykv.New()
		svc := newIdentityService(kv)

		user, err := svc.Login(context.Background(), "ana@example.com", "secret1")
		require.NoError(t, err)

		planKey := layout.PlanKey(user.ID.String())
		require.NoError(t, kv.Set(context.Background(), planKey, "premium"))

		require.NoError(t, svc.Logout(context.Background()))

		value, found, err := kv.Get(context.Background(), planKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "premium", value)
	})
}

func TestIdentityService_Current(t *testing.T) {
	t.Run("returns nil when logged out", func(t *testing.T) {
		svc := newIdentityService(memorykv.New())

		user, err := svc.Current(context.Background())
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails on corrupt session record", func(t *testing.T) {
		kv := memorykv.New()
		svc := newIdentityService(kv)
		require.NoError(t, kv.Set(context.Background(), layout.KeyUser, `{"id":`))

		_, err := svc.Current(context.Background())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsPersistence(err))
	})
}
