// Package cryptox implements the reversible token cipher backing the
// credential vault. A token is the AES-GCM encryption of "email+password"
// under a key derived from the password itself, so only the correct password
// recovers the original string. This emulates an identity provider's
// credential check; it is not a production-grade credential store.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

var ErrMalformedToken = errors.New("malformed token")

// DeriveKey derives a 32-byte AES key from a secret and salt using Argon2id.
// Same inputs always yield the same key.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// EncryptToken encrypts plaintext under a key derived from (secret, salt) and
// returns a base64 token with the random nonce prepended. Tokens produced
// from the same inputs differ byte-wise (fresh nonce) but always decrypt
// correctly with the same secret.
func EncryptToken(plaintext string, secret, salt []byte) (string, error) {
	key := DeriveKey(secret, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptToken reverses EncryptToken. A wrong secret and a garbage token are
// indistinguishable to the caller: both yield a single error value.
func DecryptToken(token string, secret, salt []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrMalformedToken
	}
	if len(raw) < nonceSize {
		return "", ErrMalformedToken
	}

	key := DeriveKey(secret, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrMalformedToken
	}
	return string(plaintext), nil
}
