package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "meumuseu/pkg/errors"
)

func TestNewUser(t *testing.T) {
	t.Run("keeps a provided name", func(t *testing.T) {
		user, err := NewUser("ana@example.com", "Ana Clara")
		require.NoError(t, err)
		assert.Equal(t, "Ana Clara", user.Name)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Len(t, user.ID.String(), 9)
	})

	t.Run("derives the name from the email local part", func(t *testing.T) {
		user, err := NewUser("ana.clara@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, "ana.clara", user.Name)
	})

	t.Run("a blank name also derives", func(t *testing.T) {
		user, err := NewUser("ana@example.com", "   ")
		require.NoError(t, err)
		assert.Equal(t, "ana", user.Name)
	})

	t.Run("trims the email", func(t *testing.T) {
		user, err := NewUser("  ana@example.com  ", "Ana")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
	})

	t.Run("rejects an email without at sign", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Ana")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("truncates an overlong name", func(t *testing.T) {
		user, err := NewUser("ana@example.com", strings.Repeat("a", 500))
		require.NoError(t, err)
		assert.Len(t, user.Name, 120)
	})
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("ana@example.com", "secret1"))
	assert.NoError(t, ValidateCredentials("a@b", "123456"))

	err := ValidateCredentials("not-an-email", "secret1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	err = ValidateCredentials("ana@example.com", "12345")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}
