// Package guard provides navigation predicates evaluated against the current
// session state at the moment of navigation. A guard either allows the
// navigation or names a redirect target.
package guard

import (
	"context"

	"github.com/mlebedeva/tastebook/internal/records"
	"github.com/mlebedeva/tastebook/internal/session"
)

// Decision is a guard verdict: Allowed, or a redirect target.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision                 { return Decision{Allowed: true} }
func redirect(target string) Decision { return Decision{RedirectTo: target} }

// Guard decides whether a navigation may proceed.
type Guard func(ctx context.Context) Decision

// Auth admits only authenticated sessions; everyone else is redirected.
func Auth(hub *session.Hub, redirectTo string) Guard {
	return func(ctx context.Context) Decision {
		if hub.Current().Valid {
			return allow()
		}
		return redirect(redirectTo)
	}
}

// Anonymous admits only signed-out sessions; an authenticated session is
// redirected away (keeps signed-in users off the login and registration
// pages).
func Anonymous(hub *session.Hub, redirectTo string) Guard {
	return func(ctx context.Context) Decision {
		if hub.Current().Valid {
			return redirect(redirectTo)
		}
		return allow()
	}
}

// ProfileComplete admits sessions whose record has the minimum profile
// fields populated (phone number, country code, country); incomplete
// profiles are sent to the setup flow. A missing session or record also
// redirects.
func ProfileComplete(hub *session.Hub, recs *records.Store, redirectTo string) Guard {
	return func(ctx context.Context) Decision {
		current := hub.Current()
		if !current.Valid {
			return redirect(redirectTo)
		}

		user, err := recs.Get(ctx, current.Email)
		if err != nil || user == nil {
			return redirect(redirectTo)
		}
		if user.PhoneNumber != "" && user.CountryCode != "" && user.Country != "" {
			return allow()
		}
		return redirect(redirectTo)
	}
}
