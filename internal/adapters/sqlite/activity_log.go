package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/ninegrid/internal/ports/secondary"
)

// ActivityLog implements secondary.ActivityLog with SQLite.
// Entries are read back for the profile given at construction only.
type ActivityLog struct {
	db      *sql.DB
	profile string
	now     func() time.Time
}

// NewActivityLog creates a new SQLite activity log for profile.
func NewActivityLog(db *sql.DB, profile string) *ActivityLog {
	return &ActivityLog{db: db, profile: profile, now: time.Now}
}

// Record appends an entry, assigning its ID and timestamp.
func (l *ActivityLog) Record(ctx context.Context, entry *secondary.ActivityRecord) error {
	if entry.Profile == "" {
		entry.Profile = l.profile
	}
	entry.ID = "ACT-" + uuid.NewString()
	createdAt := l.now().UTC()

	var tileID sql.NullString
	if entry.TileID != "" {
		tileID = sql.NullString{String: entry.TileID, Valid: true}
	}

	_, err := l.db.ExecContext(ctx,
		"INSERT INTO activity_log (id, profile, action, tile_id, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.Profile, entry.Action, tileID, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	entry.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// List returns matching entries, most recent first.
func (l *ActivityLog) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := "SELECT id, profile, action, tile_id, created_at FROM activity_log WHERE profile = ?"
	args := []any{l.profile}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}
	if filters.TileID != "" {
		query += " AND tile_id = ?"
		args = append(args, filters.TileID)
	}

	query += " ORDER BY created_at DESC, rowid DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityRecord
	for rows.Next() {
		var (
			tileID    sql.NullString
			createdAt time.Time
		)

		record := &secondary.ActivityRecord{}
		if err := rows.Scan(&record.ID, &record.Profile, &record.Action, &tileID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		record.TileID = tileID.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

// Ensure ActivityLog implements the interface.
var _ secondary.ActivityLog = (*ActivityLog)(nil)
