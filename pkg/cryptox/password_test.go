package cryptox_test

import (
	"strings"
	"testing"

	"github.com/jmcarb/clienthub/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.NotContains(t, hash, "correct horse battery staple")
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	h2, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("hunter22hunter22")
	require.NoError(t, err)

	t.Run("accepts correct password", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("hunter22hunter22", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		err := cryptox.VerifyPassword("hunter23hunter23", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("rejects malformed hash", func(t *testing.T) {
		require.Error(t, cryptox.VerifyPassword("whatever", "not-a-phc-string"))
		require.Error(t, cryptox.VerifyPassword("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"))
	})
}
