package repositories

import (
	"database/sql"
	"testing"

	"github.com/whataflick/flick/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSessionRepository(t *testing.T) {
	t.Run("Token", func(t *testing.T) {
		t.Run("Empty Store Is Anonymous", func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))

			token, err := repo.Token()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "" {
				t.Errorf("expected empty token, got %q", token)
			}
		})

		t.Run("Returns Stored Token", func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))

			if err := repo.Save("tok-1"); err != nil {
				t.Fatalf("failed to save: %v", err)
			}

			token, err := repo.Token()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "tok-1" {
				t.Errorf("expected tok-1, got %q", token)
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("Last Writer Wins", func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))

			repo.Save("first")
			repo.Save("second")

			if token := repo.Current(); token != "second" {
				t.Errorf("expected second, got %q", token)
			}

			var count int
			if err := repo.db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&count); err != nil {
				t.Fatalf("failed to count rows: %v", err)
			}
			if count != 1 {
				t.Errorf("expected a single session row, got %d", count)
			}
		})

		t.Run("Rejects Empty Token", func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))

			if err := repo.Save(""); err == nil {
				t.Error("expected error for empty token")
			}
		})
	})

	t.Run("Clear", func(t *testing.T) {
		t.Run("Removes Token", func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))

			repo.Save("tok-1")
			if err := repo.Clear(); err != nil {
				t.Fatalf("failed to clear: %v", err)
			}

			if token := repo.Current(); token != "" {
				t.Errorf("expected empty token after clear, got %q", token)
			}
		})

		t.Run("Idempotent On Empty Store", func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))

			if err := repo.Clear(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if err := repo.Clear(); err != nil {
				t.Errorf("expected no error on second clear, got %v", err)
			}
		})
	})

	t.Run("Current", func(t *testing.T) {
		t.Run("Swallows Storage Errors", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewSessionRepository(db)
			db.Close()

			if token := repo.Current(); token != "" {
				t.Errorf("expected empty token on closed store, got %q", token)
			}
		})
	})
}
