// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/whataflick/flick/internal/models"
)

// StubBackend is a configurable test double for [services.Backend]. Unset
// function fields return zero values.
type StubBackend struct {
	LoginFn        func(ctx context.Context, name, password string) (string, error)
	RegisterFn     func(ctx context.Context, name, email, password string) error
	ProfileFn      func(ctx context.Context) (*models.Profile, error)
	DeleteAcctFn   func(ctx context.Context) error
	UserNameFn     func(ctx context.Context, id string) (string, error)
	OwnReviewsFn   func(ctx context.Context) ([]models.Review, error)
	MoviesFn       func(ctx context.Context) ([]models.Movie, error)
	MovieReviewsFn func(ctx context.Context, movieID string) ([]models.Review, error)
	CreateMovieFn  func(ctx context.Context, movie models.Movie) (*models.Movie, error)
	UpdateMovieFn  func(ctx context.Context, movie models.Movie) (*models.Movie, error)
	DeleteMovieFn  func(ctx context.Context, id string) error
	CreateReviewFn func(ctx context.Context, movieID string, rating float64, comment string) (*models.Review, error)
	DeleteReviewFn func(ctx context.Context, id string) error
}

func (s *StubBackend) Login(ctx context.Context, name, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, name, password)
	}
	return "", nil
}

func (s *StubBackend) Register(ctx context.Context, name, email, password string) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return nil
}

func (s *StubBackend) Profile(ctx context.Context) (*models.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx)
	}
	return &models.Profile{}, nil
}

func (s *StubBackend) DeleteAccount(ctx context.Context) error {
	if s.DeleteAcctFn != nil {
		return s.DeleteAcctFn(ctx)
	}
	return nil
}

func (s *StubBackend) UserName(ctx context.Context, id string) (string, error) {
	if s.UserNameFn != nil {
		return s.UserNameFn(ctx, id)
	}
	return "", nil
}

func (s *StubBackend) OwnReviews(ctx context.Context) ([]models.Review, error) {
	if s.OwnReviewsFn != nil {
		return s.OwnReviewsFn(ctx)
	}
	return nil, nil
}

func (s *StubBackend) Movies(ctx context.Context) ([]models.Movie, error) {
	if s.MoviesFn != nil {
		return s.MoviesFn(ctx)
	}
	return nil, nil
}

func (s *StubBackend) MovieReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	if s.MovieReviewsFn != nil {
		return s.MovieReviewsFn(ctx, movieID)
	}
	return nil, nil
}

func (s *StubBackend) CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	if s.CreateMovieFn != nil {
		return s.CreateMovieFn(ctx, movie)
	}
	return &movie, nil
}

func (s *StubBackend) UpdateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	if s.UpdateMovieFn != nil {
		return s.UpdateMovieFn(ctx, movie)
	}
	return &movie, nil
}

func (s *StubBackend) DeleteMovie(ctx context.Context, id string) error {
	if s.DeleteMovieFn != nil {
		return s.DeleteMovieFn(ctx, id)
	}
	return nil
}

func (s *StubBackend) CreateReview(ctx context.Context, movieID string, rating float64, comment string) (*models.Review, error) {
	if s.CreateReviewFn != nil {
		return s.CreateReviewFn(ctx, movieID, rating, comment)
	}
	return &models.Review{}, nil
}

func (s *StubBackend) DeleteReview(ctx context.Context, id string) error {
	if s.DeleteReviewFn != nil {
		return s.DeleteReviewFn(ctx, id)
	}
	return nil
}

// StubPosters is a test double for [services.PosterFinder] backed by a map
// of title → URL.
type StubPosters struct {
	URLs map[string]string
}

func (s *StubPosters) PosterURL(_ context.Context, title string) (string, bool) {
	url, ok := s.URLs[title]
	return url, ok
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
