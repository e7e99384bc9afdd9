// Package records persists identity profile records keyed by email.
package records

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// User is the profile record associated with an identity.
type User struct {
	ID string `json:"id"`

	Name  string `json:"name"`
	Email string `json:"email"`

	CountryCode string `json:"countryCode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`

	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`

	AboutMe string `json:"aboutMe,omitempty"`

	ProfilePicture    string `json:"profilePicture,omitempty"`
	ProfileCoverImage string `json:"profileCoverImage,omitempty"`
	UpdateFlag        bool   `json:"updateFlag,omitempty"`
}

// Patch is a partial update; nil fields are left untouched. Email and ID are
// deliberately absent: they can only change through the privileged
// change-email path.
type Patch struct {
	Name        *string `json:"name,omitempty"`
	CountryCode *string `json:"countryCode,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`

	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`

	AboutMe *string `json:"aboutMe,omitempty"`

	ProfilePicture    *string `json:"profilePicture,omitempty"`
	ProfileCoverImage *string `json:"profileCoverImage,omitempty"`
	UpdateFlag        *bool   `json:"updateFlag,omitempty"`
}

// DeriveID computes the stable record identifier for an email: an HMAC-SHA256
// of the email keyed by the email itself, hex-encoded. Deterministic, so the
// same email always maps to the same id; recomputed only when the email
// changes.
func DeriveID(email string) string {
	mac := hmac.New(sha256.New, []byte(email))
	mac.Write([]byte(email))
	return hex.EncodeToString(mac.Sum(nil))
}
