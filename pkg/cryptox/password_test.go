package cryptox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewPasswordHasherWithPepper("test-pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, h.Verify(tt.password, hash))
			require.ErrorIs(t, h.Verify(tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasherWithPepper("test-pepper")

	a, err := h.Hash("admin123")
	require.NoError(t, err)
	b, err := h.Hash("admin123")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestPepperChangesHash(t *testing.T) {
	hash, err := NewPasswordHasherWithPepper("one").Hash("admin123")
	require.NoError(t, err)

	require.ErrorIs(t, NewPasswordHasherWithPepper("two").Verify("admin123", hash), ErrPasswordMismatch)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := NewPasswordHasherWithPepper("p")

	for _, bad := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$junk$a$b"} {
		require.Error(t, h.Verify("pw", bad), bad)
	}
}

func TestPepperFileIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets", "pepper")

	first, err := NewPasswordHasher(path)
	require.NoError(t, err)
	hash, err := first.Hash("admin123")
	require.NoError(t, err)

	// A second hasher must pick up the same pepper from disk.
	second, err := NewPasswordHasher(path)
	require.NoError(t, err)
	require.NoError(t, second.Verify("admin123", hash))
}
