// Movie-rating backend implementation of [Backend]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "http://localhost:3000"

// TokenSource reads the currently stored bearer token, or "" when anonymous.
// The client re-reads it on every call so login/logout take effect without
// rebuilding the service.
type TokenSource func() string

// FlickService implements [Backend] against the movie-rating REST API.
type FlickService struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
}

// NewFlickService creates a backend client. A nil token source is treated
// as permanently anonymous.
func NewFlickService(baseURL string, token TokenSource, client *http.Client) *FlickService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &FlickService{
		baseURL:    baseURL,
		token:      token,
		httpClient: client,
	}
}

var _ Backend = (*FlickService)(nil)

// authedClient wraps the base client with an [oauth2] transport attaching
// the stored bearer token to every request.
func (s *FlickService) authedClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// doRequest performs a request and translates the outcome.
//
// Status mapping: 2xx decodes into result; 401/403 → [shared.ErrUnauthorized];
// 404 → [shared.ErrNotFound]; 409 → [shared.ErrDuplicateReview]; any other
// non-2xx → [shared.ErrAPIRequest] carrying the server message when one is
// present. Network and parse failures → [shared.ErrTransport].
func (s *FlickService) doRequest(ctx context.Context, method, path string, body, result any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	client := s.httpClient
	if authed {
		token := s.token()
		if token == "" {
			return fmt.Errorf("%w: no session token", shared.ErrNotAuthenticated)
		}
		client = s.authedClient(ctx, token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrTransport, err)
		}
	}

	return nil
}

// statusError maps a non-2xx status and body to an outcome sentinel.
func statusError(status int, body []byte) error {
	var sentinel error
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = shared.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = shared.ErrNotFound
	case http.StatusConflict:
		sentinel = shared.ErrDuplicateReview
	default:
		sentinel = shared.ErrAPIRequest
	}

	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, errResp.Message)
	}
	return fmt.Errorf("%w: status %d", sentinel, status)
}

// Login obtains a session token via POST /login.
func (s *FlickService) Login(ctx context.Context, name, password string) (string, error) {
	body := struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}{name, password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := s.doRequest(ctx, http.MethodPost, "/login", body, &resp, false); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response carried no token", shared.ErrTransport)
	}

	return resp.Token, nil
}

// Register creates an account via POST /register.
func (s *FlickService) Register(ctx context.Context, name, email, password string) error {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{name, email, password}

	return s.doRequest(ctx, http.MethodPost, "/register", body, nil, false)
}

// Profile fetches the caller's own profile via GET /user.
func (s *FlickService) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.doRequest(ctx, http.MethodGet, "/user", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteAccount removes the caller's account via DELETE /user.
func (s *FlickService) DeleteAccount(ctx context.Context) error {
	return s.doRequest(ctx, http.MethodDelete, "/user", nil, nil, true)
}

// UserName resolves a display name via GET /user/{id}.
func (s *FlickService) UserName(ctx context.Context, id string) (string, error) {
	var resp struct {
		Name string `json:"name"`
	}
	if err := s.doRequest(ctx, http.MethodGet, "/user/"+id, nil, &resp, true); err != nil {
		return "", err
	}
	return resp.Name, nil
}

// OwnReviews lists the caller's reviews via GET /user/review.
func (s *FlickService) OwnReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.doRequest(ctx, http.MethodGet, "/user/review", nil, &reviews, true); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Movies lists the catalog via GET /movies.
func (s *FlickService) Movies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, "/movies", nil, &movies, false); err != nil {
		return nil, err
	}
	return movies, nil
}

// MovieReviews lists reviews for one movie via GET /movies/{id}/reviews.
func (s *FlickService) MovieReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.doRequest(ctx, http.MethodGet, "/movies/"+movieID+"/reviews", nil, &reviews, false); err != nil {
		return nil, err
	}
	return reviews, nil
}

// movieEnvelope tolerates both wrapped ({"movie": {...}}) and bare entity
// bodies on movie writes.
type movieEnvelope struct {
	entity models.Movie
}

func (e *movieEnvelope) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Movie *models.Movie `json:"movie"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Movie != nil {
		e.entity = *wrapper.Movie
		return nil
	}
	return json.Unmarshal(data, &e.entity)
}

// CreateMovie persists a draft via POST /movies.
func (s *FlickService) CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	var resp movieEnvelope
	if err := s.doRequest(ctx, http.MethodPost, "/movies", movie, &resp, true); err != nil {
		return nil, err
	}
	return &resp.entity, nil
}

// UpdateMovie overwrites a movie via PUT /movies/{id}.
func (s *FlickService) UpdateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	if !movie.Persisted() {
		return nil, fmt.Errorf("%w: cannot update a draft without an id", shared.ErrInvalidInput)
	}

	var resp movieEnvelope
	if err := s.doRequest(ctx, http.MethodPut, "/movies/"+movie.ID, movie, &resp, true); err != nil {
		return nil, err
	}
	return &resp.entity, nil
}

// DeleteMovie removes a movie via DELETE /movies/{id}.
func (s *FlickService) DeleteMovie(ctx context.Context, id string) error {
	return s.doRequest(ctx, http.MethodDelete, "/movies/"+id, nil, nil, true)
}

// CreateReview submits a review via POST /reviews. A 409 response surfaces
// as [shared.ErrDuplicateReview].
func (s *FlickService) CreateReview(ctx context.Context, movieID string, rating float64, comment string) (*models.Review, error) {
	body := struct {
		MovieID string  `json:"movieId"`
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}{movieID, rating, comment}

	var review models.Review
	if err := s.doRequest(ctx, http.MethodPost, "/reviews", body, &review, true); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review via DELETE /reviews/{id}.
func (s *FlickService) DeleteReview(ctx context.Context, id string) error {
	return s.doRequest(ctx, http.MethodDelete, "/reviews/"+id, nil, nil, true)
}
