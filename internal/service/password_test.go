package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_Bcrypt(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Digest("correct-horse")
	require.NoError(t, err)
	b, err := h.Digest("correct-horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "$2"))
	assert.NotEqual(t, a, b, "salt must differ between digests")
	assert.True(t, h.Verify(a, "correct-horse"))
	assert.False(t, h.Verify(a, "wrong"))
}

func TestPasswordHasher_Legacy(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	sum := sha256.Sum256([]byte("secret-pass"))
	shaDigest := hex.EncodeToString(sum[:])
	assert.True(t, h.Verify(shaDigest, "secret-pass"))
	assert.True(t, h.Verify(strings.ToUpper(shaDigest), "secret-pass"))
	assert.False(t, h.Verify(shaDigest, "other-pass"))

	fallback := legacyFallbackDigest("secret-pass")
	assert.True(t, h.Verify(fallback, "secret-pass"))
	assert.False(t, h.Verify(fallback, "other-pass"))

	assert.False(t, h.Verify("", "secret-pass"))
	assert.False(t, h.Verify("garbage", "secret-pass"))
}

func TestLegacyFallbackDigest(t *testing.T) {
	// h = 5381*33 ^ 'a' = 177573 ^ 97 = 177604
	assert.Equal(t, "fallback_2b5c4", legacyFallbackDigest("a"))
	assert.Equal(t, "fallback_1505", legacyFallbackDigest(""))
	assert.Equal(t, legacyFallbackDigest("пароль"), legacyFallbackDigest("пароль"))
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(100).cost)
}

func TestIDs(t *testing.T) {
	id := newUserID()
	assert.Len(t, id, 14)
	assert.True(t, strings.HasPrefix(id, "u_"))
	for _, c := range id[2:] {
		assert.Contains(t, idAlphabet, string(c))
	}

	orderID := newOrderID(testNow)
	assert.Regexp(t, `^GS-20261018-[A-HJ-NP-Z2-9]{6}$`, orderID)
}
