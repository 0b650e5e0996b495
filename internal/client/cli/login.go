package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/beswanhub/beswan-cli/internal/common"
)

// Login prompts for credentials and exchanges them for an access token. The
// password bytes are wiped as soon as the request returns.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	a.userEmail = email
	printlnFn("Logged in as", email)
	return nil
}

// Logout drops the token and session state. Local drafts are kept; they
// belong to the installation, not the session.
func (a *App) Logout() {
	a.api.SetToken("")
	a.userEmail = ""
	a.registration.Invalidate()
	printlnFn("Logged out")
}
