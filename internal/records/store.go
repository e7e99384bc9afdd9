package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mlebedeva/tastebook/internal/common"
	"github.com/mlebedeva/tastebook/internal/storage"
)

type Store struct {
	store storage.Store
}

func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// Get returns the record for email, or nil if none exists.
func (s *Store) Get(ctx context.Context, email string) (*User, error) {
	value, err := s.store.Read(ctx, storage.DetailsKey(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	var user User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	return &user, nil
}

// Put overwrites the record stored under email. Used at account creation and
// during identity migration.
func (s *Store) Put(ctx context.Context, email string, user *User) error {
	value, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}
	return s.store.Write(ctx, storage.DetailsKey(email), value)
}

// Update merges patch over the existing record. Email and ID always keep
// their stored values; the patch type cannot express them and the merge
// re-asserts them anyway. Returns common.ErrRecordNotFound if no record
// exists for email.
func (s *Store) Update(ctx context.Context, email string, patch Patch) (*User, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrRecordNotFound
	}

	merged := merge(*user, patch)
	// Identity fields never move through the generic update path.
	merged.Email = user.Email
	merged.ID = user.ID

	if err := s.Put(ctx, email, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Remove deletes the record for email. Removing a missing record is not an
// error.
func (s *Store) Remove(ctx context.Context, email string) error {
	return s.store.Delete(ctx, storage.DetailsKey(email))
}

func merge(user User, patch Patch) User {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.CountryCode != nil {
		user.CountryCode = *patch.CountryCode
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.City != nil {
		user.City = *patch.City
	}
	if patch.Country != nil {
		user.Country = *patch.Country
	}
	if patch.AboutMe != nil {
		user.AboutMe = *patch.AboutMe
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}
	if patch.ProfileCoverImage != nil {
		user.ProfileCoverImage = *patch.ProfileCoverImage
	}
	if patch.UpdateFlag != nil {
		user.UpdateFlag = *patch.UpdateFlag
	}
	return user
}
