package primary

import "context"

// LogService defines the primary port for the puzzle activity log.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters, newest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)
}

// LogEntry represents an activity log entry at the port boundary.
type LogEntry struct {
	ID        string
	Profile   string
	Action    string // "complete_tile", "revisit", "complete_game", "reset"
	TileID    string // empty for board-wide actions
	CreatedAt string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	Action string
	TileID string
	Limit  int
}
