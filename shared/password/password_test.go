package password_test

import (
	"oec/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	t.Run("hashes with the default cost", func(t *testing.T) {
		hash, err := password.Hash("s3cret-Pass!")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-Pass!", hash)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, password.DefaultCost, cost)
	})

	t.Run("salts every hash", func(t *testing.T) {
		first, err := password.Hash("same")
		require.NoError(t, err)

		second, err := password.Hash("same")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		hash, err := password.Hash("")
		require.Error(t, err)
		assert.Empty(t, hash)
	})
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "matching password", password: "correct horse", hash: hash},
		{name: "wrong password", password: "battery staple", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "correct horse", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed hash is not a mismatch", func(t *testing.T) {
		err := password.Verify("correct horse", "not-a-bcrypt-hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, password.ErrInvalidPassword)
	})
}
