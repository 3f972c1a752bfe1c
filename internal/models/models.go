// package models defines the data model for the movie-rating client
package models

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Role values returned by the backend profile endpoint.
const (
	RoleAdmin = "Admin"
	RoleRater = "Rater"
)

// Rating bounds accepted by the backend.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Movie represents a catalog entry. A Movie without an ID is a local draft
// that has not been persisted by the backend.
type Movie struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Director    []string `json:"director"`
	Genre       []string `json:"genre"`
	ReleaseYear int      `json:"releaseYear,omitempty"`
}

// Persisted reports whether the backend has assigned this movie an ID.
func (m Movie) Persisted() bool { return m.ID != "" }

// DirectorLine renders the director sequence for display and editing.
func (m Movie) DirectorLine() string { return strings.Join(m.Director, ", ") }

// GenreLine renders the genre sequence for display and editing.
func (m Movie) GenreLine() string { return strings.Join(m.Genre, ", ") }

// UserRef is the authoring-user descriptor embedded in a review.
type UserRef struct {
	ID string `json:"_id"`
}

// MovieRef is the movie reference carried by a review. The own-reviews
// endpoint embeds a descriptor with title and year; the per-movie review
// listing may return the bare id string instead.
type MovieRef struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title,omitempty"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
}

// UnmarshalJSON accepts both reference forms: a JSON string holding the id,
// or the populated descriptor object.
func (r *MovieRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	type plain MovieRef
	var ref plain
	if err := json.Unmarshal(data, &ref); err != nil {
		return err
	}
	*r = MovieRef(ref)
	return nil
}

// Review represents a star rating with a comment. The backend enforces at
// most one review per (user, movie) pair.
type Review struct {
	ID        string    `json:"_id"`
	Movie     MovieRef  `json:"movieId"`
	User      UserRef   `json:"userId"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the caller's own account as returned by GET /user.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds the bearer token and the identity hints derived from it.
// UserID comes from an unverified client-side decode and is advisory only,
// used to label the caller's own reviews; Role is bound by a profile fetch
// and stays empty for anonymous callers.
type Session struct {
	Token  string
	UserID string
	Role   string
}

// NewSession derives a Session from a stored token. An empty token yields
// the anonymous session.
func NewSession(token string) Session {
	return Session{Token: token, UserID: UserIDFromToken(token)}
}

// Anonymous reports whether no token is held.
func (s Session) Anonymous() bool { return s.Token == "" }

// IsAdmin reports whether the resolved role grants catalog administration.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// UserIDFromToken decodes the middle token segment as base64 JSON and reads
// its userId claim. No signature verification happens here: the result must
// never gate a write, only label "my content" in the UI.
func UserIDFromToken(token string) string {
	if token == "" {
		return ""
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return ""
	}

	var claims struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}

	return claims.UserID
}

// AverageRating computes the arithmetic mean over a review set, or 0 when
// the set is empty. Recomputed whenever the set changes; never stored.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	return total / float64(len(reviews))
}

// ValidRating reports whether a rating lies within the accepted bounds.
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}

// SplitList turns comma-separated field input into a trimmed ordered
// sequence, applied on every keystroke while editing director/genre fields.
func SplitList(input string) []string {
	if input == "" {
		return []string{}
	}

	parts := strings.Split(input, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// ParseYear parses release-year input, falling back to 0 (the empty
// placeholder) on non-numeric text so typing never blocks.
func ParseYear(input string) int {
	year, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || year < 0 {
		return 0
	}
	return year
}
