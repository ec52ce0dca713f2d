package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meumuseu/application/ports"
)

var _ ports.CaptionGenerator = (*CaptionService)(nil)

func newCaptionService() *CaptionService {
	return NewCaptionService(NewLatencyGate(0), nil, zap.NewNop())
}

func hasCaptionPrefix(caption string) bool {
	for _, prefix := range captionPrefixes {
		if strings.HasPrefix(caption, prefix) {
			return true
		}
	}
	return false
}

func TestCaptionService_Generate(t *testing.T) {
	svc := newCaptionService()

	t.Run("uses keywords from the description", func(t *testing.T) {
		caption := svc.Generate("bicicleta vermelha ganhada no aniversário")

		require.True(t, hasCaptionPrefix(caption), "caption %q should start with a known prefix", caption)
		tail := caption[strings.Index(caption, ": ")+2:]
		for _, word := range strings.Fields(tail) {
			assert.Contains(t, []string{"bicicleta", "vermelha", "ganhada", "aniversário"}, word)
		}
	})

	t.Run("picks at most two keywords", func(t *testing.T) {
		caption := svc.Generate("bicicleta vermelha ganhada aniversário inesquecível")
		tail := caption[strings.Index(caption, ": ")+2:]
		assert.LessOrEqual(t, len(strings.Fields(tail)), 2)
	})

	t.Run("an empty description still gets a prefix", func(t *testing.T) {
		caption := svc.Generate("")
		assert.NotEmpty(t, caption)
		assert.Contains(t, captionPrefixes, caption)
	})

	t.Run("a bare prefix when every word is too short", func(t *testing.T) {
		caption := svc.Generate("a de o um dia")
		require.True(t, hasCaptionPrefix(caption), "caption %q should start with a known prefix", caption)
		assert.Contains(t, captionPrefixes, caption)
	})

	t.Run("a bare prefix when only stoplisted words remain", func(t *testing.T) {
		caption := svc.Generate("sobre quando depois antes ainda")
		require.True(t, hasCaptionPrefix(caption), "caption %q should start with a known prefix", caption)
		assert.Contains(t, captionPrefixes, caption)
	})

	t.Run("never returns the failure caption for plain input", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			assert.NotEqual(t, fallbackCaption, svc.Generate("sobre quando depois"))
		}
	})
}

func TestCaptionService_extractKeywords(t *testing.T) {
	svc := newCaptionService()

	t.Run("length filter counts runes not bytes", func(t *testing.T) {
		keywords := svc.extractKeywords("café férias memórias")
		assert.NotContains(t, keywords, "café", "four runes is too short")
		assert.Contains(t, keywords, "férias")
		assert.Contains(t, keywords, "memórias")
	})

	t.Run("stopwords are matched case-insensitively", func(t *testing.T) {
		keywords := svc.extractKeywords("Sobre QUANDO bicicleta")
		assert.Equal(t, []string{"bicicleta"}, keywords)
	})

	t.Run("portuguese corpus words are dropped", func(t *testing.T) {
		keywords := svc.extractKeywords("aquela bicicleta estava brilhando")
		assert.NotContains(t, keywords, "aquela")
		assert.NotContains(t, keywords, "estava")
		assert.Contains(t, keywords, "bicicleta")
	})
}

func TestCaptionService_GenerateWithContext(t *testing.T) {
	t.Run("delegates after the gate", func(t *testing.T) {
		svc := newCaptionService()

		caption, err := svc.GenerateWithContext(context.Background(), "bicicleta vermelha")
		require.NoError(t, err)
		assert.True(t, hasCaptionPrefix(caption))
	})

	t.Run("propagates cancellation", func(t *testing.T) {
		svc := newCaptionService()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.GenerateWithContext(ctx, "bicicleta vermelha")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
