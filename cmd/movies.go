package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
	"github.com/whataflick/flick/internal/tasks"
)

// MoviesList fetches the catalog and enriches every movie with its poster
// and average rating, reporting progress as enrichment proceeds.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	prog := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range prog {
			r.logger.Debugf("%v %v/%v %v", update.Phase, update.Step, update.Total, update.Message)
		}
	}()

	result, err := r.engine.EnrichCatalog(ctx, prog, tasks.EnrichOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Entries, cmd.Bool("pretty"))
	}

	for _, entry := range result.Entries {
		rating := "   –"
		if entry.ReviewCount > 0 {
			rating = fmt.Sprintf("%.1f★", entry.Average)
		}

		r.writePlain("%-26s %s  %s", entry.Movie.ID, rating, entry.Movie.Title)
		if entry.Movie.ReleaseYear > 0 {
			r.writePlain(" (%d)", entry.Movie.ReleaseYear)
		}
		if entry.HasPoster {
			r.writePlain("  %s", entry.PosterURL)
		}
		r.writePlain("\n")
	}

	return r.writePlain("\n%d movies\n", len(result.Entries))
}

// MoviesInspect shows one movie with its review thread. Reviewer names
// resolve per user; the stored token's own reviews are labeled "You" and
// unresolvable reviewers fall back to "Anonymous".
func (r *Runner) MoviesInspect(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	movies, err := r.backend.Movies(ctx)
	if err != nil {
		return err
	}

	var movie *models.Movie
	for i := range movies {
		if movies[i].ID == id {
			movie = &movies[i]
			break
		}
	}
	if movie == nil {
		return fmt.Errorf("%w: no movie with id %s", shared.ErrNotFound, id)
	}

	reviews, err := r.backend.MovieReviews(ctx, id)
	if err != nil {
		return err
	}

	selfID := ""
	if r.sessions != nil {
		selfID = models.UserIDFromToken(r.sessions.Current())
	}
	names := r.engine.ResolveReviewers(ctx, nil, reviews, selfID)

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"movie": movie, "reviews": reviews}, true)
	}

	r.writePlain("%s", movie.Title)
	if movie.ReleaseYear > 0 {
		r.writePlain(" (%d)", movie.ReleaseYear)
	}
	r.writePlain("\n")
	if line := movie.DirectorLine(); line != "" {
		r.writePlain("Directed by %s\n", line)
	}
	if line := movie.GenreLine(); line != "" {
		r.writePlain("%s\n", line)
	}
	if url, ok := r.posters.PosterURL(ctx, movie.Title); ok {
		r.writePlain("Poster: %s\n", url)
	}

	if len(reviews) == 0 {
		return r.writePlain("\nNo reviews yet\n")
	}

	r.writePlain("\n%.1f★ across %d reviews\n\n", models.AverageRating(reviews), len(reviews))
	for _, review := range reviews {
		name := names[review.User.ID]
		if name == "" {
			name = "Anonymous"
		}
		r.writePlain("%4.1f★ %s: %s\n", review.Rating, name, review.Comment)
	}

	return nil
}
