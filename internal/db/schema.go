package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of declaring their own tables, so a repository
// that references a missing column fails at test time.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run the sqlite adapter tests against the new schema
const SchemaSQL = `
-- Key-value storage (one row per profile and key)
CREATE TABLE IF NOT EXISTS kv_store (
	profile TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (profile, key)
);

-- Activity log (append-only audit trail of board actions)
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	profile TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('complete_tile', 'revisit', 'complete_game', 'reset')),
	tile_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_log_profile ON activity_log(profile, created_at);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(database)
	}

	// Fresh install - create modern schema directly and mark every
	// migration as applied.
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to mark migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
