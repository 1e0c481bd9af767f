package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// SignUp prompts for an email and password and creates a backend account.
// The new session is stored locally.
func (a *App) SignUp(ctx context.Context, _ []string) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	s, err := a.authService.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	a.setUser(s.User.Email)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Account created, signed in as", s.User.Email)
	return nil
}

// SignIn prompts for credentials and authenticates against the backend.
// Signing in needs the backend; local data stays usable either way.
func (a *App) SignIn(ctx context.Context, _ []string) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	s, err := a.authService.SignIn(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "sign in failed", "email", email, "err", err)
		return err
	}
	a.setUser(s.User.Email)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Signed in as", s.User.Email)
	return nil
}

// SignOut forgets the stored session. Pass "--wipe" to also delete all
// local data, photo files included.
func (a *App) SignOut(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "--wipe" {
		n, err := a.clientService.PurgePhotos(ctx)
		if err != nil {
			return err
		}
		if err := a.authService.ClearLocalData(ctx); err != nil {
			return err
		}
		a.log.Info(ctx, "local data wiped", "photos", n)
	} else if err := a.authService.SignOut(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
