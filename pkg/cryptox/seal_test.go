package cryptox_test

import (
	"testing"

	"github.com/animeutils/animesched/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealer(t *testing.T) {
	t.Parallel()

	sealer, err := cryptox.NewSealer([]byte("cache passphrase"))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte("access-token-value")

		sealed, err := sealer.Seal(plaintext)
		require.NoError(t, err)
		require.NotEqual(t, plaintext, sealed)

		opened, err := sealer.Open(sealed)
		require.NoError(t, err)
		require.Equal(t, plaintext, opened)
	})

	t.Run("random nonce per seal", func(t *testing.T) {
		a, err := sealer.Seal([]byte("same input"))
		require.NoError(t, err)
		b, err := sealer.Seal([]byte("same input"))
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("tamper detection", func(t *testing.T) {
		sealed, err := sealer.Seal([]byte("refresh-token-value"))
		require.NoError(t, err)

		sealed[len(sealed)-1] ^= 0xff
		_, err = sealer.Open(sealed)
		require.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := cryptox.NewSealer([]byte("different passphrase"))
		require.NoError(t, err)

		sealed, err := sealer.Seal([]byte("secret"))
		require.NoError(t, err)

		_, err = other.Open(sealed)
		require.Error(t, err)
	})

	t.Run("truncated input", func(t *testing.T) {
		_, err := sealer.Open([]byte("short"))
		require.Error(t, err)
	})

	t.Run("empty key material", func(t *testing.T) {
		_, err := cryptox.NewSealer(nil)
		require.Error(t, err)
	})
}
