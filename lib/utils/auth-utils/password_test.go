package authutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	t.Run("hash and check", func(t *testing.T) {
		hash, err := HashPassword("qwerty123")
		require.NoError(t, err)
		require.NotEqual(t, "qwerty123", hash)
		require.True(t, CheckPassword(hash, "qwerty123"))
		require.False(t, CheckPassword(hash, "qwerty124"))
	})
	t.Run("empty password", func(t *testing.T) {
		_, err := HashPassword("")
		require.Error(t, err)
	})
}
