package ratex_test

import (
	"testing"
	"time"

	"github.com/jmcarb/clienthub/pkg/ratex"
	"github.com/stretchr/testify/require"
)

func TestAllowExhaustsBurst(t *testing.T) {
	t.Parallel()

	kl := ratex.New(ratex.Config{
		AttemptsPerWindow: 3,
		Window:            time.Hour, // effectively no refill during the test
		Burst:             3,
	})

	for i := range 3 {
		require.True(t, kl.Allow("a@x.com"), "attempt %d should pass", i)
	}
	require.False(t, kl.Allow("a@x.com"))
}

func TestKeysAreIndependent(t *testing.T) {
	t.Parallel()

	kl := ratex.New(ratex.Config{
		AttemptsPerWindow: 1,
		Window:            time.Hour,
	})

	require.True(t, kl.Allow("a@x.com"))
	require.False(t, kl.Allow("a@x.com"))

	// A different key gets its own bucket.
	require.True(t, kl.Allow("b@x.com"))
}

func TestBurstDefaultsToAttempts(t *testing.T) {
	t.Parallel()

	kl := ratex.New(ratex.Config{
		AttemptsPerWindow: 2,
		Window:            time.Hour,
	})

	require.True(t, kl.Allow("k"))
	require.True(t, kl.Allow("k"))
	require.False(t, kl.Allow("k"))
}
