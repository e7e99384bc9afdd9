package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("P@ssw0rd1")
	salt := []byte("a@x.com")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 32)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("P@ssw0rd1")

	key1 := DeriveKey(secret, []byte("a@x.com"))
	key2 := DeriveKey(secret, []byte("b@x.com"))

	assert.NotEqual(t, key1, key2)
}

func TestEncryptToken_RoundTrip(t *testing.T) {
	secret := []byte("P@ssw0rd1")
	salt := []byte("a@x.com")

	token, err := EncryptToken("a@x.comP@ssw0rd1", secret, salt)
	require.NoError(t, err)

	plaintext, err := DecryptToken(token, secret, salt)
	require.NoError(t, err)
	assert.Equal(t, "a@x.comP@ssw0rd1", plaintext)
}

func TestEncryptToken_FreshNonce(t *testing.T) {
	secret := []byte("P@ssw0rd1")
	salt := []byte("a@x.com")

	token1, err := EncryptToken("a@x.comP@ssw0rd1", secret, salt)
	require.NoError(t, err)
	token2, err := EncryptToken("a@x.comP@ssw0rd1", secret, salt)
	require.NoError(t, err)

	// Tokens differ byte-wise but both decrypt correctly.
	assert.NotEqual(t, token1, token2)

	for _, token := range []string{token1, token2} {
		plaintext, err := DecryptToken(token, secret, salt)
		require.NoError(t, err)
		assert.Equal(t, "a@x.comP@ssw0rd1", plaintext)
	}
}

func TestDecryptToken_WrongSecret(t *testing.T) {
	salt := []byte("a@x.com")

	token, err := EncryptToken("a@x.comP@ssw0rd1", []byte("P@ssw0rd1"), salt)
	require.NoError(t, err)

	_, err = DecryptToken(token, []byte("wrong"), salt)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecryptToken_Garbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"too short", "YWJj"},
		{"random bytes", "aGVsbG8gd29ybGQgdGhpcyBpcyBub3QgYSB0b2tlbg=="},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecryptToken(tc.token, []byte("secret"), []byte("salt"))
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
