package services

import (
	"context"

	"github.com/whataflick/flick/internal/models"
)

// Backend defines the operations exposed by the movie-rating API.
//
// Implementations translate HTTP status codes into the shared error
// sentinels so callers can branch on outcome without inspecting responses.
type Backend interface {
	// Login obtains a session token for the given credentials.
	Login(ctx context.Context, name, password string) (string, error)

	// Register creates an account. It does not log the account in.
	Register(ctx context.Context, name, email, password string) error

	// Profile fetches the caller's own profile (name, email, role).
	Profile(ctx context.Context) (*models.Profile, error)

	// DeleteAccount removes the caller's account.
	DeleteAccount(ctx context.Context) error

	// UserName resolves a display name by user id.
	UserName(ctx context.Context, id string) (string, error)

	// OwnReviews lists the caller's reviews with embedded movie descriptors.
	OwnReviews(ctx context.Context) ([]models.Review, error)

	// Movies lists the full catalog. Anonymous.
	Movies(ctx context.Context) ([]models.Movie, error)

	// MovieReviews lists reviews for one movie. Anonymous.
	MovieReviews(ctx context.Context, movieID string) ([]models.Review, error)

	// CreateMovie persists a draft and returns the server-assigned entity.
	CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error)

	// UpdateMovie overwrites an existing movie by id.
	UpdateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error)

	// DeleteMovie removes a movie by id.
	DeleteMovie(ctx context.Context, id string) error

	// CreateReview submits a review, returning [shared.ErrDuplicateReview]
	// when one already exists for this (user, movie) pair.
	CreateReview(ctx context.Context, movieID string, rating float64, comment string) (*models.Review, error)

	// DeleteReview removes the caller's review by id.
	DeleteReview(ctx context.Context, id string) error
}

// PosterFinder resolves a display image URL for a movie title.
type PosterFinder interface {
	// PosterURL returns the poster URL for a title, or ok=false when no
	// result exists or the lookup fails. Lookup failures never surface as
	// errors; callers degrade to a placeholder.
	PosterURL(ctx context.Context, title string) (string, bool)
}
