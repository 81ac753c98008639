package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	h, err := NewBcryptHasher(1)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, h.Cost())
}

func TestHash_FreshSaltEveryCall(t *testing.T) {
	h := newTestHasher(t)

	d1, err := h.Hash("correct horse")
	require.NoError(t, err)
	d2, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, strings.HasPrefix(d1, "$2a$"))
	assert.True(t, h.Verify("correct horse", d1))
	assert.True(t, h.Verify("correct horse", d2))
}

func TestHash_DigestEncodesCost(t *testing.T) {
	h := newTestHasher(t)
	d, err := h.Hash("pw-12345")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(d))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHash_TooLong(t *testing.T) {
	h := newTestHasher(t)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestVerify(t *testing.T) {
	h := newTestHasher(t)
	d, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{"match", "s3cret-pass", d, true},
		{"mismatch", "s3cret-pasS", d, false},
		{"empty plaintext", "", d, false},
		{"empty digest", "s3cret-pass", "", false},
		{"malformed digest", "s3cret-pass", "not-a-bcrypt-hash", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.plaintext, tt.digest))
		})
	}
}
