package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meumuseu/domain/core/valueobjects"
	pkgerrors "meumuseu/pkg/errors"
)

func TestNewMemory(t *testing.T) {
	userID := valueobjects.NewEntityID()
	roomID := valueobjects.NewEntityID()

	t.Run("creates a text memory", func(t *testing.T) {
		memory, err := NewMemory(userID, roomID, MemoryDraft{
			Title:     "Bicicleta",
			MediaType: valueobjects.MediaText,
			Content:   "a primeira bicicleta",
		})
		require.NoError(t, err)

		assert.True(t, memory.OwnedBy(userID))
		assert.True(t, memory.RoomID.Equals(roomID))
		assert.Equal(t, valueobjects.MediaText, memory.MediaType)
		assert.Equal(t, memory.CreatedAt, memory.UpdatedAt)
	})

	t.Run("creates a media memory with a data uri", func(t *testing.T) {
		memory, err := NewMemory(userID, roomID, MemoryDraft{
			Title:     "Foto da escola",
			MediaType: valueobjects.MediaImage,
			MediaURL:  "data:image/png;base64,AAAA",
		})
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,AAAA", memory.MediaURL)
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		_, err := NewMemory(userID, roomID, MemoryDraft{Title: " ", MediaType: valueobjects.MediaText})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects an unknown media type", func(t *testing.T) {
		_, err := NewMemory(userID, roomID, MemoryDraft{Title: "Foto", MediaType: "gif"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects a zero room", func(t *testing.T) {
		_, err := NewMemory(userID, valueobjects.EntityID{}, MemoryDraft{Title: "Foto", MediaType: valueobjects.MediaText})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("caps text content length", func(t *testing.T) {
		_, err := NewMemory(userID, roomID, MemoryDraft{
			Title:     "Texto",
			MediaType: valueobjects.MediaText,
			Content:   strings.Repeat("a", 50001),
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestMemory_Apply(t *testing.T) {
	userID := valueobjects.NewEntityID()
	roomID := valueobjects.NewEntityID()

	t.Run("patches only the provided fields", func(t *testing.T) {
		memory, err := NewMemory(userID, roomID, MemoryDraft{
			Title:       "Bicicleta",
			Description: "a primeira",
			MediaType:   valueobjects.MediaText,
			Content:     "texto original",
		})
		require.NoError(t, err)

		content := "texto revisado"
		generated := true
		require.NoError(t, memory.Apply(MemoryPatch{Content: &content, AIGenerated: &generated}))

		assert.Equal(t, "texto revisado", memory.Content)
		assert.Equal(t, "Bicicleta", memory.Title)
		assert.Equal(t, "a primeira", memory.Description)
		assert.True(t, memory.AIGenerated)
	})

	t.Run("a failed patch leaves the memory untouched", func(t *testing.T) {
		memory, err := NewMemory(userID, roomID, MemoryDraft{Title: "Bicicleta", MediaType: valueobjects.MediaText})
		require.NoError(t, err)

		bad := valueobjects.MediaType("gif")
		err = memory.Apply(MemoryPatch{MediaType: &bad})
		require.Error(t, err)
		assert.Equal(t, valueobjects.MediaText, memory.MediaType)
	})

	t.Run("can switch media type", func(t *testing.T) {
		memory, err := NewMemory(userID, roomID, MemoryDraft{Title: "Bicicleta", MediaType: valueobjects.MediaText, Content: "texto"})
		require.NoError(t, err)

		image := valueobjects.MediaImage
		uri := "data:image/png;base64,AAAA"
		require.NoError(t, memory.Apply(MemoryPatch{MediaType: &image, MediaURL: &uri}))
		assert.Equal(t, valueobjects.MediaImage, memory.MediaType)
		assert.Equal(t, uri, memory.MediaURL)
	})
}
