package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/ninegrid/internal/ports/primary"
	"github.com/example/ninegrid/internal/ports/secondary"
)

// ErrNoActivityLog is returned when the configured store keeps no activity log.
var ErrNoActivityLog = errors.New("activity log is only kept by the sqlite store")

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	activity secondary.ActivityLog
}

// NewLogService creates a new LogService with injected dependencies.
// activity may be nil, in which case every query returns ErrNoActivityLog.
func NewLogService(activity secondary.ActivityLog) *LogServiceImpl {
	return &LogServiceImpl{
		activity: activity,
	}
}

// ListLogs retrieves log entries matching the given filters.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	if s.activity == nil {
		return nil, ErrNoActivityLog
	}

	records, err := s.activity.List(ctx, secondary.ActivityFilters{
		Action: filters.Action,
		TileID: filters.TileID,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToLogEntry(r)
	}
	return entries, nil
}

// Helper methods

func (s *LogServiceImpl) recordToLogEntry(r *secondary.ActivityRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:        r.ID,
		Profile:   r.Profile,
		Action:    r.Action,
		TileID:    r.TileID,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
