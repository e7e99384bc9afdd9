// Package backend emulates a remote identity provider on top of local
// storage. It owns the account lifecycle (create, delete, sign-in, sign-out,
// email and password change) and is the only writer of the session hub, so
// session state and storage can never diverge: every operation that touches
// the active identity's credential re-derives the session from a fresh
// sign-in instead of patching it in place.
package backend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/mlebedeva/tastebook/internal/common"
	"github.com/mlebedeva/tastebook/internal/logging"
	"github.com/mlebedeva/tastebook/internal/records"
	"github.com/mlebedeva/tastebook/internal/session"
	"github.com/mlebedeva/tastebook/internal/storage"
	"github.com/mlebedeva/tastebook/internal/vault"
)

// Options tunes the simulated network latency slept between the transient
// loading state and the resolved state. Zero values mean no delay.
type Options struct {
	LatencyMin time.Duration
	LatencyMax time.Duration
}

type Service struct {
	vault   *vault.Vault
	records *records.Store
	store   storage.Store
	hub     *session.Hub
	log     logging.Logger
	opts    Options

	// Per-identity serialization: concurrent operations on the same email
	// run one at a time; operations on different emails interleave freely.
	locks sync.Map // email -> *sync.Mutex
}

func New(v *vault.Vault, r *records.Store, store storage.Store, hub *session.Hub, log logging.Logger, opts Options) *Service {
	return &Service{
		vault:   v,
		records: r,
		store:   store,
		hub:     hub,
		log:     log,
		opts:    opts,
	}
}

func (s *Service) lockIdentity(email string) func() {
	m, _ := s.locks.LoadOrStore(email, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// lockIdentities locks several identities in a stable order so that two
// overlapping multi-identity operations cannot deadlock.
func (s *Service) lockIdentities(emails ...string) func() {
	sorted := append([]string(nil), emails...)
	sort.Strings(sorted)

	unlocks := make([]func(), 0, len(sorted))
	for _, e := range sorted {
		unlocks = append(unlocks, s.lockIdentity(e))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func (s *Service) simulateLatency() {
	min, max := s.opts.LatencyMin, s.opts.LatencyMax
	if max <= min {
		if min > 0 {
			time.Sleep(min)
		}
		return
	}
	time.Sleep(min + time.Duration(rand.Int63n(int64(max-min))))
}

// CreateAccount registers a new identity. It fails with
// common.ErrAlreadyExists if a credential already exists for email.
// Registration does not sign the new account in.
func (s *Service) CreateAccount(ctx context.Context, email, secret string, user records.User) error {
	unlock := s.lockIdentity(email)
	defer unlock()

	_, err := s.vault.TokenFor(ctx, email)
	if err == nil {
		return common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to check credential: %w", err)
	}

	user.ID = records.DeriveID(email)
	user.Email = email
	if err := s.records.Put(ctx, email, &user); err != nil {
		return err
	}

	token, err := s.vault.GenerateToken(email, secret)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.vault.Store(ctx, email, token); err != nil {
		return err
	}

	s.log.Info(ctx, "account created", "email", email)
	return nil
}

// DeleteAccount removes the credential and record for email. If email is the
// active session's identity, the session is cleared as well; leaving a live
// session for a deleted account would let guards keep admitting it.
func (s *Service) DeleteAccount(ctx context.Context, email string) error {
	unlock := s.lockIdentity(email)
	defer unlock()

	if err := s.vault.Remove(ctx, email); err != nil {
		return err
	}
	if err := s.records.Remove(ctx, email); err != nil {
		return err
	}

	s.log.Info(ctx, "account deleted", "email", email)

	if s.hub.Current().Email == email {
		return s.signOut(ctx)
	}
	return nil
}

// SignIn authenticates email with secret and establishes the session. The
// transient loading state is published before any suspension point, so every
// subscriber observes loading strictly before the resolved state.
func (s *Service) SignIn(ctx context.Context, email, secret string) error {
	unlock := s.lockIdentity(email)
	defer unlock()
	return s.signIn(ctx, email, secret)
}

func (s *Service) signIn(ctx context.Context, email, secret string) error {
	prev := s.hub.Current()
	loading := prev
	loading.Loading = true
	s.hub.Set(loading)

	s.simulateLatency()

	ok, err := s.vault.Validate(ctx, email, secret)
	if err != nil {
		s.hub.Set(prev)
		return err
	}
	if !ok {
		s.hub.Set(prev)
		return common.ErrInvalidSecret
	}

	token, err := s.vault.TokenFor(ctx, email)
	if err != nil {
		s.hub.Set(prev)
		return err
	}

	if err := s.store.Write(ctx, storage.SessionAuthKey, []byte(token)); err != nil {
		s.hub.Set(prev)
		return err
	}
	if err := s.store.Write(ctx, storage.SessionEmailKey, []byte(email)); err != nil {
		s.hub.Set(prev)
		return err
	}

	s.hub.Set(session.State{Email: email, Token: token, Valid: true})
	s.log.Info(ctx, "signed in", "email", email)
	return nil
}

// SignOut clears the session. Storage failures are propagated, not
// swallowed; the session state is then left as it was.
func (s *Service) SignOut(ctx context.Context) error {
	current := s.hub.Current()
	if current.Email != "" {
		unlock := s.lockIdentity(current.Email)
		defer unlock()
	}
	return s.signOut(ctx)
}

func (s *Service) signOut(ctx context.Context) error {
	prev := s.hub.Current()
	loading := prev
	loading.Loading = true
	s.hub.Set(loading)

	s.simulateLatency()

	if err := s.store.Delete(ctx, storage.SessionAuthKey); err != nil {
		s.hub.Set(prev)
		return err
	}
	if err := s.store.Delete(ctx, storage.SessionEmailKey); err != nil {
		s.hub.Set(prev)
		return err
	}

	s.hub.Set(session.SignedOut())
	s.log.Info(ctx, "signed out", "email", prev.Email)
	return nil
}

// ChangeEmail moves an account from oldEmail to newEmail after checking
// secret, and returns the freshly derived record id. The session is rebuilt
// with a sign-out/sign-in pair under the new email.
//
// If the new-side writes succeed but the old-side deletion fails, both
// records remain live and the error is returned; the inconsistency is
// deliberate (see DESIGN.md) rather than silently repaired.
func (s *Service) ChangeEmail(ctx context.Context, oldEmail, newEmail, secret string) (string, error) {
	unlock := s.lockIdentities(oldEmail, newEmail)
	defer unlock()

	ok, err := s.vault.Validate(ctx, oldEmail, secret)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrInvalidSecret
	}

	_, err = s.vault.TokenFor(ctx, newEmail)
	if err == nil {
		return "", common.ErrEmailInUse
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("failed to check credential: %w", err)
	}

	user, err := s.records.Get(ctx, oldEmail)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", common.ErrRecordNotFound
	}

	newID := records.DeriveID(newEmail)
	user.ID = newID
	user.Email = newEmail
	if err := s.records.Put(ctx, newEmail, user); err != nil {
		return "", err
	}

	token, err := s.vault.GenerateToken(newEmail, secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.vault.Store(ctx, newEmail, token); err != nil {
		return "", err
	}

	if err := s.records.Remove(ctx, oldEmail); err != nil {
		return "", err
	}
	if err := s.vault.Remove(ctx, oldEmail); err != nil {
		return "", err
	}

	if err := s.signOut(ctx); err != nil {
		return "", err
	}
	if err := s.signIn(ctx, newEmail, secret); err != nil {
		return "", err
	}

	s.log.Info(ctx, "email changed", "from", oldEmail, "to", newEmail)
	return newID, nil
}

// ChangePassword rotates the credential for email after checking the current
// secret, then rebuilds the session with the new one.
func (s *Service) ChangePassword(ctx context.Context, email, currentSecret, newSecret string) error {
	unlock := s.lockIdentity(email)
	defer unlock()

	ok, err := s.vault.Validate(ctx, email, currentSecret)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrInvalidSecret
	}

	token, err := s.vault.GenerateToken(email, newSecret)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.vault.Store(ctx, email, token); err != nil {
		return err
	}

	if err := s.signOut(ctx); err != nil {
		return err
	}
	if err := s.signIn(ctx, email, newSecret); err != nil {
		return err
	}

	s.log.Info(ctx, "password changed", "email", email)
	return nil
}

// Auth returns the persisted session token, or "" when signed out.
func (s *Service) Auth(ctx context.Context) (string, error) {
	value, err := s.store.Read(ctx, storage.SessionAuthKey)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Email returns the persisted session email, or "" when signed out.
func (s *Service) Email(ctx context.Context) (string, error) {
	value, err := s.store.Read(ctx, storage.SessionEmailKey)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// RestoreSession re-publishes a signed-in state from the persisted session
// pointer, mirroring how the original frontend picked its session back up
// after a page reload. Returns false when no session was persisted.
func (s *Service) RestoreSession(ctx context.Context) (bool, error) {
	token, err := s.Auth(ctx)
	if err != nil {
		return false, err
	}
	email, err := s.Email(ctx)
	if err != nil {
		return false, err
	}
	if token == "" || email == "" {
		return false, nil
	}

	s.hub.Set(session.State{Email: email, Token: token, Valid: true})
	s.log.Info(ctx, "session restored", "email", email)
	return true, nil
}
