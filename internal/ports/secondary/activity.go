package secondary

import "context"

// ActivityLog defines the secondary port for the activity audit trail.
type ActivityLog interface {
	// Record appends an entry. ID and CreatedAt are assigned by the implementation.
	Record(ctx context.Context, entry *ActivityRecord) error

	// List returns matching entries, most recent first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)
}

// ActivityRecord represents an activity entry as stored in persistence.
type ActivityRecord struct {
	ID        string
	Profile   string
	Action    string // "complete_tile", "revisit", "complete_game", "reset"
	TileID    string // empty for board-wide actions
	CreatedAt string
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	Action string
	TileID string
	Limit  int // 0 means all
}
