package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
	pkgerrors "meumuseu/pkg/errors"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "museum_user", KeyUser)
	assert.Equal(t, "museum_rooms", KeyRooms)
	assert.Equal(t, "museum_memories", KeyMemories)
	assert.Equal(t, "museum_plan_abc123def", PlanKey("abc123def"))
	assert.Equal(t, "museum_avatar_abc123def", AvatarKey("abc123def"))
}

func TestCodec_User(t *testing.T) {
	codec := NewCodec()

	t.Run("round-trips the session record", func(t *testing.T) {
		user, err := entities.NewUser("ana@example.com", "Ana")
		require.NoError(t, err)

		raw, err := codec.EncodeUser(user)
		require.NoError(t, err)

		decoded, err := codec.DecodeUser(raw)
		require.NoError(t, err)
		assert.True(t, decoded.ID.Equals(user.ID))
		assert.Equal(t, user.Email, decoded.Email)
		assert.Equal(t, user.Name, decoded.Name)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := codec.DecodeUser(`{"id":`)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsPersistence(err))
	})

	t.Run("rejects a record without an email", func(t *testing.T) {
		_, err := codec.DecodeUser(`{"id":"abc123def","name":"Ana"}`)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsPersistence(err))
	})
}

func TestCodec_Rooms(t *testing.T) {
	codec := NewCodec()

	t.Run("nil collection encodes as an empty array", func(t *testing.T) {
		raw, err := codec.EncodeRooms(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})

	t.Run("round-trips a collection", func(t *testing.T) {
		room, err := entities.NewRoom(valueobjects.NewEntityID(), entities.RoomDraft{
			Name:        "Infância",
			Description: "primeiros anos",
		})
		require.NoError(t, err)

		raw, err := codec.EncodeRooms([]*entities.Room{room})
		require.NoError(t, err)

		decoded, err := codec.DecodeRooms(raw)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.True(t, decoded[0].ID.Equals(room.ID))
		assert.Equal(t, "Infância", decoded[0].Name)
	})

	t.Run("rejects a null element", func(t *testing.T) {
		_, err := codec.DecodeRooms(`[null]`)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsPersistence(err))
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := codec.DecodeRooms(`[{`)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsPersistence(err))
	})
}

func TestCodec_Memories(t *testing.T) {
	codec := NewCodec()

	t.Run("nil collection encodes as an empty array", func(t *testing.T) {
		raw, err := codec.EncodeMemories(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})

	t.Run("round-trips a collection", func(t *testing.T) {
		memory, err := entities.NewMemory(valueobjects.NewEntityID(), valueobjects.NewEntityID(), entities.MemoryDraft{
			Title:     "Bicicleta",
			MediaType: valueobjects.MediaText,
			Content:   "a primeira",
		})
		require.NoError(t, err)

		raw, err := codec.EncodeMemories([]*entities.Memory{memory})
		require.NoError(t, err)

		decoded, err := codec.DecodeMemories(raw)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.True(t, decoded[0].ID.Equals(memory.ID))
		assert.Equal(t, valueobjects.MediaText, decoded[0].MediaType)
	})

	t.Run("rejects a record missing required fields", func(t *testing.T) {
		_, err := codec.DecodeMemories(`[{"id":"abc123def"}]`)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsPersistence(err))
	})
}
