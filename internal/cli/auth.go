package cli

import (
	"context"
	"fmt"

	"github.com/mlebedeva/tastebook/internal/records"
)

func (a *App) register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	if err := a.backend.CreateAccount(ctx, email, password, records.User{Name: name}); err != nil {
		fmt.Fprintf(a.out, "registration failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Account created. Use 'login' to sign in.")
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	if err := a.backend.SignIn(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "sign-in failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", email)
}

func (a *App) logout(ctx context.Context) {
	if !a.hub.Current().Valid {
		fmt.Fprintln(a.out, "not signed in")
		return
	}
	if err := a.backend.SignOut(ctx); err != nil {
		fmt.Fprintf(a.out, "sign-out failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Signed out.")
}

func (a *App) whoami() {
	current := a.hub.Current()
	if !current.Valid {
		fmt.Fprintln(a.out, "not signed in")
		return
	}
	fmt.Fprintln(a.out, current.Email)
}
