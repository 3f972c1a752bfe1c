package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/formatter"
)

// UserShow prints the caller's profile and enriched review history.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.backend.Profile(ctx)
	if err != nil {
		return err
	}

	reviews, err := r.backend.OwnReviews(ctx)
	if err != nil {
		return err
	}
	entries := r.engine.EnrichReviews(ctx, reviews)

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"profile": profile, "reviews": entries}, true)
	}

	r.writePlain("%s <%s> (%s)\n\n", profile.Name, profile.Email, profile.Role)

	if len(entries) == 0 {
		return r.writePlain("No reviews yet\n")
	}

	for _, entry := range entries {
		r.writePlain("%-26s %4.1f★  %s", entry.Review.ID, entry.Review.Rating, entry.Review.Movie.Title)
		if entry.Review.Movie.ReleaseYear > 0 {
			r.writePlain(" (%d)", entry.Review.Movie.ReleaseYear)
		}
		r.writePlain("\n")
	}

	return r.writePlain("\n%d reviews\n", len(entries))
}

// UserExport renders the caller's review history to the chosen format,
// writing to stdout or the --output path.
func (r *Runner) UserExport(ctx context.Context, cmd *cli.Command) error {
	reviews, err := r.backend.OwnReviews(ctx)
	if err != nil {
		return err
	}

	entries := r.engine.EnrichReviews(ctx, reviews)

	data, err := formatter.Export(entries, cmd.String("format"))
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteFile(path, data); err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d reviews to %s\n", len(entries), path)
	}

	return r.writePlain("%s", data)
}

// UserDelete removes the caller's account after confirmation, then clears
// the stored session.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		r.writePlain("Delete your account and all of your reviews? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return r.writePlain("Aborted\n")
		}
	}

	if err := r.backend.DeleteAccount(ctx); err != nil {
		return err
	}

	if r.sessions != nil {
		if err := r.sessions.Clear(); err != nil {
			r.logger.Warnf("account deleted but session not cleared: %v", err)
		}
	}

	return r.writePlain("✓ Account deleted\n")
}
