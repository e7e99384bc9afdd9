// Package cli is the interactive front end standing in for the original
// application's forms and pages: it drives the mock backend, watches the
// session hub, and gates profile commands behind the navigation guards.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mlebedeva/tastebook/internal/backend"
	"github.com/mlebedeva/tastebook/internal/guard"
	"github.com/mlebedeva/tastebook/internal/logging"
	"github.com/mlebedeva/tastebook/internal/records"
	"github.com/mlebedeva/tastebook/internal/session"
)

type App struct {
	backend *backend.Service
	records *records.Store
	hub     *session.Hub
	log     logging.Logger

	authGuard    guard.Guard
	profileGuard guard.Guard

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(svc *backend.Service, recs *records.Store, hub *session.Hub, log logging.Logger) *App {
	return &App{
		backend:      svc,
		records:      recs,
		hub:          hub,
		log:          log,
		authGuard:    guard.Auth(hub, "login"),
		profileGuard: guard.ProfileComplete(hub, recs, "setup-profile"),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}
}

func (a *App) status() string {
	current := a.hub.Current()
	if current.Loading {
		return "(...)"
	}
	if current.Valid {
		return fmt.Sprintf("(%s)", current.Email)
	}
	return ""
}

// WatchSession logs every session-state change until ctx is cancelled.
func (a *App) WatchSession(ctx context.Context) {
	ch, cancel := a.hub.Subscribe()
	defer cancel()

	for {
		select {
		case s := <-ch:
			a.log.Debug(ctx, "session state",
				"email", s.Email, "valid", s.Valid, "loading", s.Loading)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Tastebook (type 'help' for commands)")

	go a.WatchSession(ctx)

	if restored, err := a.backend.RestoreSession(ctx); err != nil {
		fmt.Fprintf(a.out, "could not restore session: %v\n", err)
	} else if restored {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.hub.Current().Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(a.out, "tastebook %s> ", a.status())
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			a.help()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()
		case "profile":
			a.profile(ctx)
		case "update":
			a.update(ctx)
		case "change-email":
			a.changeEmail(ctx)
		case "change-password":
			a.changePassword(ctx)
		case "delete-account":
			a.deleteAccount(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "unknown command %q (type 'help')\n", parts[0])
		}
	}
}

func (a *App) help() {
	if a.hub.Current().Valid {
		fmt.Fprintln(a.out, "Available commands: whoami, profile, update, change-email, change-password, delete-account, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, exit")
	}
}
