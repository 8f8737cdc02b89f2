package secondary

import "context"

// Surface defines the secondary port for the rendering layer.
// Calls may arrive from timer goroutines, so implementations must be safe
// for concurrent use.
type Surface interface {
	// SetTileCompleted sets the visual completion state of a tile.
	SetTileCompleted(ctx context.Context, tileID string, completed bool) error

	// Pulse plays the first-time completion pulse on a tile, with the
	// tone when tone is true.
	Pulse(ctx context.Context, tileID string, tone bool) error

	// SetBackgroundVisible reveals or hides the background pattern.
	SetBackgroundVisible(ctx context.Context, visible bool) error

	// SetModalVisible shows or hides the completion modal.
	SetModalVisible(ctx context.Context, visible bool) error

	// Open navigates to url.
	Open(ctx context.Context, url string) error
}
