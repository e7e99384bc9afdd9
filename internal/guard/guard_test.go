package guard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebedeva/tastebook/internal/records"
	"github.com/mlebedeva/tastebook/internal/session"
	"github.com/mlebedeva/tastebook/internal/storage/filestore"
)

func setupRecords(t *testing.T) *records.Store {
	t.Helper()
	store, err := filestore.New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return records.NewStore(store)
}

func TestAuth(t *testing.T) {
	hub := session.NewHub()
	g := Auth(hub, "/login")
	ctx := context.Background()

	d := g(ctx)
	assert.False(t, d.Allowed)
	assert.Equal(t, "/login", d.RedirectTo)

	hub.Set(session.State{Email: "a@x.com", Token: "tok", Valid: true})

	d = g(ctx)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.RedirectTo)
}

func TestAnonymous(t *testing.T) {
	hub := session.NewHub()
	g := Anonymous(hub, "/home")
	ctx := context.Background()

	assert.True(t, g(ctx).Allowed)

	hub.Set(session.State{Email: "a@x.com", Token: "tok", Valid: true})

	d := g(ctx)
	assert.False(t, d.Allowed)
	assert.Equal(t, "/home", d.RedirectTo)
}

func TestProfileComplete(t *testing.T) {
	tests := []struct {
		name    string
		user    *records.User
		allowed bool
	}{
		{
			name: "complete profile",
			user: &records.User{
				ID: "1", Email: "a@x.com",
				PhoneNumber: "5551234", CountryCode: "+47", Country: "Norway",
			},
			allowed: true,
		},
		{
			name:    "missing phone",
			user:    &records.User{ID: "1", Email: "a@x.com", CountryCode: "+47", Country: "Norway"},
			allowed: false,
		},
		{
			name:    "missing country",
			user:    &records.User{ID: "1", Email: "a@x.com", PhoneNumber: "5551234", CountryCode: "+47"},
			allowed: false,
		},
		{
			name:    "no record",
			user:    nil,
			allowed: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := setupRecords(t)
			hub := session.NewHub()
			hub.Set(session.State{Email: "a@x.com", Token: "tok", Valid: true})

			if tc.user != nil {
				require.NoError(t, recs.Put(context.Background(), "a@x.com", tc.user))
			}

			g := ProfileComplete(hub, recs, "/accounts/setup-profile")
			d := g(context.Background())

			assert.Equal(t, tc.allowed, d.Allowed)
			if !tc.allowed {
				assert.Equal(t, "/accounts/setup-profile", d.RedirectTo)
			}
		})
	}
}

func TestProfileComplete_SignedOut(t *testing.T) {
	recs := setupRecords(t)
	hub := session.NewHub()

	g := ProfileComplete(hub, recs, "/accounts/setup-profile")
	d := g(context.Background())

	assert.False(t, d.Allowed)
}
