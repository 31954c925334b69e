package password_test

import (
	"strings"
	"testing"

	"hotelbooking/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("salted", func(t *testing.T) {
		first, err := password.Hash("secret-pass")
		require.NoError(t, err)

		second, err := password.Hash("secret-pass")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.NotContains(t, first, "secret-pass")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := password.Hash("")
		assert.ErrorIs(t, err, password.ErrEmpty)
	})

	t.Run("longer than bcrypt accepts", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("a", 73))
		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("secret-pass")
	require.NoError(t, err)

	assert.NoError(t, password.Verify("secret-pass", hashed))
	assert.ErrorIs(t, password.Verify("Secret-pass", hashed), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("", hashed), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("secret-pass", ""), password.ErrInvalidPassword)

	err = password.Verify("secret-pass", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
