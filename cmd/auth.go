package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/shared"
)

// AuthLogin obtains a session token and stores it in the local session slot.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store unavailable", shared.ErrSessionMissing)
	}

	name := cmd.String("name")
	r.logger.Infof("logging in as %v", name)

	token, err := r.backend.Login(ctx, name, cmd.String("password"))
	if err != nil {
		return err
	}

	if err := r.sessions.Save(token); err != nil {
		return err
	}

	return r.writePlain("✓ Logged in as %s\n", name)
}

// AuthRegister creates an account and immediately logs in with the same
// credentials, matching the registration flow of the web client.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store unavailable", shared.ErrSessionMissing)
	}

	name := cmd.String("name")
	password := cmd.String("password")

	if err := r.backend.Register(ctx, name, cmd.String("email"), password); err != nil {
		return err
	}
	r.logger.Infof("account %v created", name)

	token, err := r.backend.Login(ctx, name, password)
	if err != nil {
		return fmt.Errorf("account created but login failed: %w", err)
	}

	if err := r.sessions.Save(token); err != nil {
		return err
	}

	return r.writePlain("✓ Registered and logged in as %s\n", name)
}

// AuthLogout clears the stored session token. Logging out twice is harmless.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store unavailable", shared.ErrSessionMissing)
	}

	if err := r.sessions.Clear(); err != nil {
		return err
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami shows the profile bound to the stored token.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.backend.Profile(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	return r.writePlain("%s <%s> (%s)\n", profile.Name, profile.Email, profile.Role)
}
