package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/jmcarb/clienthub/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("produces the requested entropy", func(t *testing.T) {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, cryptox.TokenSize256)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			token, err := cryptox.GenerateToken(cryptox.TokenSize128)
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup)
			seen[token] = struct{}{}
		}
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := cryptox.GenerateToken(0)
		require.Error(t, err)
		_, err = cryptox.GenerateToken(-1)
		require.Error(t, err)
	})
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp1 := cryptox.FingerprintToken("opaque-secret")
	fp2 := cryptox.FingerprintToken("opaque-secret")
	require.Equal(t, fp1, fp2)
	require.NotEqual(t, fp1, cryptox.FingerprintToken("other-secret"))

	// SHA-256 is 32 bytes -> 43 chars base64url without padding.
	require.Len(t, fp1, 43)
}
