package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dipsport/shared/password"
)

func TestHash(t *testing.T) {
	t.Run("empty password", func(t *testing.T) {
		hashed, err := password.Hash("")

		assert.ErrorIs(t, err, password.ErrEmpty)
		assert.Empty(t, hashed)
	})

	t.Run("uses configured cost", func(t *testing.T) {
		hashed, err := password.Hash("stadium-admin")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hashed))
		require.NoError(t, err)
		assert.Equal(t, password.Cost, cost)
	})

	t.Run("salted per call", func(t *testing.T) {
		first, err := password.Hash("stadium-admin")
		require.NoError(t, err)

		second, err := password.Hash("stadium-admin")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("longer than bcrypt allows", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("x", 73))

		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hashed  string
		wantErr error
		anyErr  bool
	}{
		{name: "match", plain: "correct horse", hashed: hashed},
		{name: "wrong password", plain: "battery staple", hashed: hashed, wantErr: password.ErrMismatch},
		{name: "empty password", plain: "", hashed: hashed, wantErr: password.ErrMismatch},
		{name: "empty hash", plain: "correct horse", hashed: "", wantErr: password.ErrMismatch},
		{name: "malformed hash", plain: "correct horse", hashed: "not-a-bcrypt-hash", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrMismatch)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
