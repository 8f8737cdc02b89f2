package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DemoProfile is the profile SeedFixtures writes to.
const DemoProfile = "demo"

// SeedFixtures populates the demo profile with a half-finished board and a
// matching activity trail. Existing demo rows are replaced.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC()

	if _, err := database.Exec("DELETE FROM kv_store WHERE profile = ?", DemoProfile); err != nil {
		return fmt.Errorf("seed kv_store: %w", err)
	}
	if _, err := database.Exec("DELETE FROM activity_log WHERE profile = ?", DemoProfile); err != nil {
		return fmt.Errorf("seed activity_log: %w", err)
	}

	if _, err := database.Exec(
		"INSERT INTO kv_store (profile, key, value) VALUES (?, ?, ?)",
		DemoProfile, "puzzleGameProgress", `["execution","product","tools","learning"]`,
	); err != nil {
		return fmt.Errorf("seed kv_store: %w", err)
	}

	entries := []struct{ action, tile string }{
		{"complete_tile", "execution"},
		{"complete_tile", "product"},
		{"revisit", "execution"},
		{"complete_tile", "tools"},
		{"complete_tile", "learning"},
	}
	for i, e := range entries {
		at := now.Add(time.Duration(i-len(entries)) * time.Minute)
		if _, err := database.Exec(
			"INSERT INTO activity_log (id, profile, action, tile_id, created_at) VALUES (?, ?, ?, ?, ?)",
			"ACT-"+uuid.NewString(), DemoProfile, e.action, e.tile, at,
		); err != nil {
			return fmt.Errorf("seed activity_log: %w", err)
		}
	}

	return nil
}
