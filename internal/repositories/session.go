package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// SessionRepository persists the single bearer token the client holds,
// the terminal analogue of the browser's localStorage token slot. Login
// and registration write it; logout and account deletion clear it; every
// controller lifecycle reads it.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Token returns the stored bearer token, or "" when none is stored.
// Absence is not an error: it means the caller is anonymous.
func (r *SessionRepository) Token() (string, error) {
	var token string
	err := r.db.QueryRow(`SELECT token FROM session WHERE slot = 0`).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	return token, nil
}

// Current reads the token, swallowing storage errors into anonymity.
// Suitable as a [services.TokenSource].
func (r *SessionRepository) Current() string {
	token, err := r.Token()
	if err != nil {
		return ""
	}
	return token
}

// Save stores the token, replacing any previous session. Last writer wins;
// writes are user-serialized by construction.
func (r *SessionRepository) Save(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store an empty token")
	}

	query := `
		INSERT INTO session (slot, token, updated_at) VALUES (0, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, token, time.Now()); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM session WHERE slot = 0`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
