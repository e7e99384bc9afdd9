// Package vault manages credential tokens keyed by email. A token is the
// reversible encryption of "email+password" parameterized by the password,
// so validating a password means recovering that exact string back.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlebedeva/tastebook/internal/common"
	"github.com/mlebedeva/tastebook/internal/cryptox"
	"github.com/mlebedeva/tastebook/internal/storage"
)

type Vault struct {
	store storage.Store
}

func New(store storage.Store) *Vault {
	return &Vault{store: store}
}

// GenerateToken builds a fresh credential token for (email, secret).
// The token decrypts back to email+secret only under the same secret.
func (v *Vault) GenerateToken(email, secret string) (string, error) {
	return cryptox.EncryptToken(email+secret, []byte(secret), []byte(email))
}

// TokenFor returns the stored credential token for email, or
// common.ErrNotFound if no credential exists.
func (v *Vault) TokenFor(ctx context.Context, email string) (string, error) {
	value, err := v.store.Read(ctx, storage.AuthKey(email))
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Validate reports whether secret unlocks the stored credential for email.
// Returns common.ErrIdentityNotFound when no credential exists. A wrong
// secret is simply false; the caller cannot distinguish a bad secret from a
// corrupted token.
func (v *Vault) Validate(ctx context.Context, email, secret string) (bool, error) {
	token, err := v.TokenFor(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, common.ErrIdentityNotFound
		}
		return false, fmt.Errorf("failed to load credential: %w", err)
	}

	decrypted, err := cryptox.DecryptToken(token, []byte(secret), []byte(email))
	if err != nil {
		return false, nil
	}
	return decrypted == email+secret, nil
}

// Store persists a credential token under email, replacing any previous one.
func (v *Vault) Store(ctx context.Context, email, token string) error {
	return v.store.Write(ctx, storage.AuthKey(email), []byte(token))
}

// Remove deletes the credential for email. Removing a missing credential is
// not an error.
func (v *Vault) Remove(ctx context.Context, email string) error {
	return v.store.Delete(ctx, storage.AuthKey(email))
}
