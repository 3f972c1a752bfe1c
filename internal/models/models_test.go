package models

import (
	"encoding/base64"
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func tokenWithPayload(t *testing.T, payload string) string {
	t.Helper()
	return "header." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestUserIDFromToken(t *testing.T) {
	t.Run("Reads userId Claim", func(t *testing.T) {
		token := tokenWithPayload(t, `{"userId":"abc123","iat":1700000000}`)
		if got := UserIDFromToken(token); got != "abc123" {
			t.Errorf("expected abc123, got %q", got)
		}
	})

	t.Run("Empty Token", func(t *testing.T) {
		if got := UserIDFromToken(""); got != "" {
			t.Errorf("expected empty id, got %q", got)
		}
	})

	t.Run("Malformed Token", func(t *testing.T) {
		for _, token := range []string{"just-one-segment", "a.b", "a.b.c.d"} {
			if got := UserIDFromToken(token); got != "" {
				t.Errorf("expected empty id for %q, got %q", token, got)
			}
		}
	})

	t.Run("Invalid Base64 Payload", func(t *testing.T) {
		if got := UserIDFromToken("header.!!!not-base64!!!.sig"); got != "" {
			t.Errorf("expected empty id, got %q", got)
		}
	})

	t.Run("Payload Without Claim", func(t *testing.T) {
		token := tokenWithPayload(t, `{"sub":"someone"}`)
		if got := UserIDFromToken(token); got != "" {
			t.Errorf("expected empty id, got %q", got)
		}
	})

	t.Run("Padded Payload", func(t *testing.T) {
		token := "header." + base64.URLEncoding.EncodeToString([]byte(`{"userId":"padded"}`)) + ".sig"
		if got := UserIDFromToken(token); got != "padded" {
			t.Errorf("expected padded, got %q", got)
		}
	})
}

func TestSession(t *testing.T) {
	t.Run("Anonymous Without Token", func(t *testing.T) {
		session := NewSession("")
		if !session.Anonymous() {
			t.Error("expected anonymous session")
		}
		if session.IsAdmin() {
			t.Error("anonymous session must not be admin")
		}
	})

	t.Run("Token Binds UserID", func(t *testing.T) {
		session := NewSession(tokenWithPayload(t, `{"userId":"u1"}`))
		if session.Anonymous() {
			t.Error("expected authenticated session")
		}
		if session.UserID != "u1" {
			t.Errorf("expected UserID u1, got %q", session.UserID)
		}
	})

	t.Run("Role Gates Admin", func(t *testing.T) {
		session := NewSession(tokenWithPayload(t, `{"userId":"u1"}`))
		if session.IsAdmin() {
			t.Error("unresolved role must not be admin")
		}
		session.Role = RoleRater
		if session.IsAdmin() {
			t.Error("rater must not be admin")
		}
		session.Role = RoleAdmin
		if !session.IsAdmin() {
			t.Error("expected admin")
		}
	})
}

func TestAverageRating(t *testing.T) {
	t.Run("Empty Set", func(t *testing.T) {
		if got := AverageRating(nil); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("Mean Over Set", func(t *testing.T) {
		reviews := []Review{
			{Rating: 4.0, CreatedAt: time.Now()},
			{Rating: 8.0},
			{Rating: 6.0},
		}
		if got := AverageRating(reviews); got != 6.0 {
			t.Errorf("expected 6.0, got %v", got)
		}
	})
}

func TestValidRating(t *testing.T) {
	cases := []struct {
		rating float64
		want   bool
	}{
		{0.9, false},
		{1.0, true},
		{5.5, true},
		{10.0, true},
		{10.1, false},
		{-3, false},
	}

	for _, tc := range cases {
		if got := ValidRating(tc.rating); got != tc.want {
			t.Errorf("ValidRating(%v) = %v, want %v", tc.rating, got, tc.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	t.Run("Empty Input", func(t *testing.T) {
		got := SplitList("")
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("Trims Around Commas", func(t *testing.T) {
		got := SplitList(" Joel Coen , Ethan Coen ")
		want := []string{"Joel Coen", "Ethan Coen"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Keeps Mid-Typing Empties", func(t *testing.T) {
		got := SplitList("Drama,")
		want := []string{"Drama", ""}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"1999", 1999},
		{" 2024 ", 2024},
		{"", 0},
		{"abc", 0},
		{"19x9", 0},
		{"-5", 0},
	}

	for _, tc := range cases {
		if got := ParseYear(tc.input); got != tc.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestMovieRef(t *testing.T) {
	t.Run("Bare ID String", func(t *testing.T) {
		var review Review
		if err := json.Unmarshal([]byte(`{"_id":"r1","movieId":"m1","rating":7.5}`), &review); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if review.Movie.ID != "m1" {
			t.Errorf("expected movie id m1, got %q", review.Movie.ID)
		}
		if review.Movie.Title != "" {
			t.Errorf("bare reference carries no title, got %q", review.Movie.Title)
		}
	})

	t.Run("Embedded Descriptor", func(t *testing.T) {
		var review Review
		payload := `{"_id":"r2","movieId":{"_id":"m2","title":"Heat","releaseYear":1995}}`
		if err := json.Unmarshal([]byte(payload), &review); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if review.Movie.ID != "m2" || review.Movie.Title != "Heat" || review.Movie.ReleaseYear != 1995 {
			t.Errorf("unexpected descriptor %+v", review.Movie)
		}
	})

	t.Run("Mixed List", func(t *testing.T) {
		var reviews []Review
		payload := `[{"movieId":"m1"},{"movieId":{"_id":"m2","title":"Heat"}}]`
		if err := json.Unmarshal([]byte(payload), &reviews); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reviews[0].Movie.ID != "m1" || reviews[1].Movie.Title != "Heat" {
			t.Errorf("unexpected references %+v", reviews)
		}
	})
}

func TestMovie(t *testing.T) {
	t.Run("Persisted", func(t *testing.T) {
		if (Movie{}).Persisted() {
			t.Error("draft must not be persisted")
		}
		if !(Movie{ID: "m1"}).Persisted() {
			t.Error("movie with id must be persisted")
		}
	})

	t.Run("Display Lines", func(t *testing.T) {
		movie := Movie{Director: []string{"Lana Wachowski", "Lilly Wachowski"}, Genre: []string{"Sci-Fi"}}
		if got := movie.DirectorLine(); got != "Lana Wachowski, Lilly Wachowski" {
			t.Errorf("unexpected director line %q", got)
		}
		if got := movie.GenreLine(); got != "Sci-Fi" {
			t.Errorf("unexpected genre line %q", got)
		}
	})
}
