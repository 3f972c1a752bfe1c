package shared

import (
	"testing"
)

func TestRunMigrations(t *testing.T) {
	t.Run("Creates Session Table", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := db.Exec(`INSERT INTO session (slot, token, updated_at) VALUES (0, 'tok', CURRENT_TIMESTAMP)`); err != nil {
			t.Errorf("session table missing after migration: %v", err)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Errorf("second run must be a no-op, got %v", err)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
			t.Fatalf("failed to count applied migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one recorded migration")
		}
	})

	t.Run("Enforces Single Session Slot", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := db.Exec(`INSERT INTO session (slot, token, updated_at) VALUES (1, 'tok', CURRENT_TIMESTAMP)`); err == nil {
			t.Error("slot check must reject rows other than slot 0")
		}
	})
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations")
	}

	for _, m := range migrations {
		if m.Up == "" || m.Down == "" {
			t.Errorf("migration %d incomplete", m.Version)
		}
	}
}
