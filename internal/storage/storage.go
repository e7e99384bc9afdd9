// Package storage defines the key-value contract the identity backend
// persists through. The same namespace holds raw token strings and JSON
// documents; callers marshal structured values themselves.
//
// Key conventions used by the backend:
//
//	"<email>: auth"     credential token for that email
//	"<email>: details"  identity record for that email
//	"sessionAuth"       token of the active session
//	"sessionEmail"      email of the active session
package storage

import "context"

// Store is a synchronous key-value store over string keys.
//
// Read returns common.ErrNotFound when no value exists for the key.
// Implementations must be safe for concurrent use.
type Store interface {
	Write(ctx context.Context, key string, value []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

const (
	// SessionAuthKey holds the active session's credential token.
	SessionAuthKey = "sessionAuth"
	// SessionEmailKey holds the active session's email.
	SessionEmailKey = "sessionEmail"
)

// AuthKey returns the storage key for an email's credential token.
func AuthKey(email string) string { return email + ": auth" }

// DetailsKey returns the storage key for an email's identity record.
func DetailsKey(email string) string { return email + ": details" }
