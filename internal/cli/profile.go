package cli

import (
	"context"
	"fmt"

	"github.com/mlebedeva/tastebook/internal/records"
)

// requireAuth mirrors a guarded route: the command only runs when the auth
// guard admits the current session.
func (a *App) requireAuth(ctx context.Context) bool {
	if d := a.authGuard(ctx); !d.Allowed {
		fmt.Fprintf(a.out, "sign in first (-> %s)\n", d.RedirectTo)
		return false
	}
	return true
}

func (a *App) profile(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}
	if d := a.profileGuard(ctx); !d.Allowed {
		fmt.Fprintf(a.out, "profile incomplete, finish setup first (-> %s)\n", d.RedirectTo)
	}

	user, err := a.records.Get(ctx, a.hub.Current().Email)
	if err != nil {
		fmt.Fprintf(a.out, "failed to load profile: %v\n", err)
		return
	}
	if user == nil {
		fmt.Fprintln(a.out, "no profile record")
		return
	}

	fmt.Fprintf(a.out, "Name:    %s\n", user.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", user.Email)
	fmt.Fprintf(a.out, "Phone:   %s %s\n", user.CountryCode, user.PhoneNumber)
	fmt.Fprintf(a.out, "Place:   %s, %s\n", user.City, user.Country)
	if user.AboutMe != "" {
		fmt.Fprintf(a.out, "About:   %s\n", user.AboutMe)
	}
}

func (a *App) update(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}

	var patch records.Patch
	var err error

	if patch.Name, err = GetOptionalText(a.reader, "Name", a.out); err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	if patch.CountryCode, err = GetOptionalText(a.reader, "Country code", a.out); err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	if patch.PhoneNumber, err = GetOptionalText(a.reader, "Phone number", a.out); err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	if patch.City, err = GetOptionalText(a.reader, "City", a.out); err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	if patch.Country, err = GetOptionalText(a.reader, "Country", a.out); err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	if patch.AboutMe, err = GetOptionalText(a.reader, "About me", a.out); err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	updated, err := a.records.Update(ctx, a.hub.Current().Email, patch)
	if err != nil {
		fmt.Fprintf(a.out, "update failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Profile updated for %s\n", updated.Email)
}

func (a *App) changeEmail(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}

	newEmail, err := GetSimpleText(a.reader, "New email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	oldEmail := a.hub.Current().Email
	if _, err := a.backend.ChangeEmail(ctx, oldEmail, newEmail, password); err != nil {
		fmt.Fprintf(a.out, "email change failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Email changed to %s\n", newEmail)
}

func (a *App) changePassword(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}

	current, err := GetPassword(a.out, "Current password")
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	replacement, err := GetPassword(a.out, "New password")
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	if err := a.backend.ChangePassword(ctx, a.hub.Current().Email, current, replacement); err != nil {
		fmt.Fprintf(a.out, "password change failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}

func (a *App) deleteAccount(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}

	confirm, err := GetSimpleText(a.reader, "Type the account email to confirm deletion", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	email := a.hub.Current().Email
	if confirm != email {
		fmt.Fprintln(a.out, "confirmation does not match, aborting")
		return
	}

	if err := a.backend.DeleteAccount(ctx, email); err != nil {
		fmt.Fprintf(a.out, "deletion failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Account deleted.")
}
