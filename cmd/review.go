package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
)

// ReviewAdd submits a review. The rating bounds and comment presence are
// checked before any request goes out; a duplicate review surfaces as a
// distinct outcome rather than a generic API failure.
func (r *Runner) ReviewAdd(ctx context.Context, cmd *cli.Command) error {
	rating := cmd.Float("rating")
	if !models.ValidRating(rating) {
		return fmt.Errorf("%w: rating must be between %.1f and %.1f", shared.ErrInvalidFlag, models.MinRating, models.MaxRating)
	}

	comment := cmd.String("comment")
	if comment == "" {
		return fmt.Errorf("%w: a comment is required", shared.ErrInvalidFlag)
	}

	review, err := r.backend.CreateReview(ctx, cmd.String("movie"), rating, comment)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateReview) {
			return r.writePlain("✗ You have already reviewed this movie\n")
		}
		return err
	}

	return r.writePlain("✓ Review %s saved (%.1f★)\n", review.ID, review.Rating)
}

// ReviewRm deletes one of the caller's reviews by ID.
func (r *Runner) ReviewRm(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: review id", shared.ErrMissingArgument)
	}

	if err := r.backend.DeleteReview(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Review %s deleted\n", id)
}
