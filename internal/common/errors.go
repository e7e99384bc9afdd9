// Package common defines shared sentinel errors used across the backend,
// vault, record, and storage layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Account lifecycle errors.
	ErrIdentityNotFound = errors.New("identity does not exist")
	ErrAlreadyExists    = errors.New("account already exists")
	ErrInvalidSecret    = errors.New("password is incorrect")
	ErrEmailInUse       = errors.New("email already in use")
	ErrRecordNotFound   = errors.New("record does not exist")

	// Session errors.
	ErrNotSignedIn = errors.New("not signed in")
)
