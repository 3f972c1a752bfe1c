package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
)

// AdminAdd creates a catalog entry from the flag values. Director and genre
// flags are comma-separated lists; a non-numeric year falls back to unset.
func (r *Runner) AdminAdd(ctx context.Context, cmd *cli.Command) error {
	draft := models.Movie{
		Title:       cmd.String("title"),
		Director:    models.SplitList(cmd.String("director")),
		Genre:       models.SplitList(cmd.String("genre")),
		ReleaseYear: models.ParseYear(cmd.String("year")),
	}

	movie, err := r.backend.CreateMovie(ctx, draft)
	if err != nil {
		return err
	}

	r.writePlain("✓ Added %s (%s)\n", movie.Title, movie.ID)
	if url, ok := r.posters.PosterURL(ctx, movie.Title); ok {
		r.writePlain("Poster: %s\n", url)
	}

	return nil
}

// AdminUpdate overwrites a movie. Only the fields whose flags were provided
// change; everything else carries over from the current entity.
func (r *Runner) AdminUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")

	movies, err := r.backend.Movies(ctx)
	if err != nil {
		return err
	}

	var current *models.Movie
	for i := range movies {
		if movies[i].ID == id {
			current = &movies[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("%w: no movie with id %s", shared.ErrNotFound, id)
	}

	draft := *current
	if cmd.IsSet("title") {
		draft.Title = cmd.String("title")
	}
	if cmd.IsSet("director") {
		draft.Director = models.SplitList(cmd.String("director"))
	}
	if cmd.IsSet("genre") {
		draft.Genre = models.SplitList(cmd.String("genre"))
	}
	if cmd.IsSet("year") {
		draft.ReleaseYear = models.ParseYear(cmd.String("year"))
	}

	movie, err := r.backend.UpdateMovie(ctx, draft)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Updated %s (%s)\n", movie.Title, movie.ID)
}

// AdminRm deletes a movie by ID.
func (r *Runner) AdminRm(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	if err := r.backend.DeleteMovie(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Movie %s deleted\n", id)
}
