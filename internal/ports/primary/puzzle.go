// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"
	"time"
)

// PuzzleService defines the primary port for the nine-tile puzzle.
type PuzzleService interface {
	// LoadProgress restores stored progress. Unreadable or malformed data is
	// logged and treated as no prior state.
	LoadProgress(ctx context.Context) error

	// HandleTileActivated handles a click on a tile linked to pageRef.
	// An empty pageRef uses the tile's own page.
	HandleTileActivated(ctx context.Context, tileID, pageRef string) (*ActivationResponse, error)

	// MarkComplete marks a tile complete without persisting or navigating.
	// It reports whether the tile was newly completed.
	MarkComplete(ctx context.Context, tileID string) (bool, error)

	// SaveProgress persists the completed tiles.
	SaveProgress(ctx context.Context) error

	// CompleteGame runs the completion sequence once all tiles are complete.
	CompleteGame(ctx context.Context) error

	// ResetGame clears progress, visuals and storage, and cancels pending timers.
	ResetGame(ctx context.Context) error

	// ShowModal shows the completion modal.
	ShowModal(ctx context.Context) error

	// CloseModal hides the completion modal.
	CloseModal(ctx context.Context) error

	// Status returns a snapshot of the board.
	Status(ctx context.Context) (*PuzzleStatus, error)

	// Wait blocks until every pending timed effect has fired or been cancelled.
	Wait(ctx context.Context) error

	// Close cancels pending timers. The service must not be used afterwards.
	Close() error
}

// ActivationResponse contains the result of activating a tile.
type ActivationResponse struct {
	TileID        string
	Outcome       string // "revisited", "completed", "game_completed"
	URL           string // empty when the game completed
	NavigateAfter time.Duration
	Completed     int
	Total         int
}

// PuzzleStatus represents the board at the port boundary.
type PuzzleStatus struct {
	Tiles         []*TileStatus
	Completed     int
	Total         int
	GameCompleted bool
	ModalOpen     bool
	Pending       int // timed effects not yet fired
}

// TileStatus represents a tile at the port boundary.
type TileStatus struct {
	ID        string
	Title     string
	Page      string
	URL       string
	Index     int
	Completed bool
}
