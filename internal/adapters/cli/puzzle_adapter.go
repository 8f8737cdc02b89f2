// Package cli contains thin adapters translating CLI operations to primary port calls.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/ninegrid/internal/ports/primary"
)

// PuzzleAdapter is a thin adapter that translates CLI operations to PuzzleService calls.
// It depends only on the primary port interfaces, enabling easy testing with mocks.
type PuzzleAdapter struct {
	service primary.PuzzleService
	logs    primary.LogService
	out     io.Writer
}

// NewPuzzleAdapter creates a new PuzzleAdapter with the given services.
func NewPuzzleAdapter(service primary.PuzzleService, logs primary.LogService, out io.Writer) *PuzzleAdapter {
	return &PuzzleAdapter{
		service: service,
		logs:    logs,
		out:     out,
	}
}

// Status displays overall progress and every tile.
func (a *PuzzleAdapter) Status(ctx context.Context) (*primary.PuzzleStatus, error) {
	status, err := a.service.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	fmt.Fprintf(a.out, "Progress: %d/%d tiles\n", status.Completed, status.Total)
	if status.GameCompleted {
		fmt.Fprintf(a.out, "Game:     %s\n", color.New(color.FgGreen).Sprint("complete"))
	} else {
		fmt.Fprintln(a.out, "Game:     in progress")
	}
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tTILE\tSTATUS")
	fmt.Fprintln(w, "-\t----\t------")
	for _, tile := range status.Tiles {
		fmt.Fprintf(w, "%d\t%s\t%s\n", tile.Index+1, tile.ID, tileState(tile.Completed))
	}
	w.Flush()

	return status, nil
}

// Tiles lists every tile with the page it links to.
func (a *PuzzleAdapter) Tiles(ctx context.Context) ([]*primary.TileStatus, error) {
	status, err := a.service.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiles: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTITLE\tURL")
	fmt.Fprintln(w, "-\t--\t-----\t---")
	for _, tile := range status.Tiles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", tile.Index+1, tile.ID, tile.Title, tile.URL)
	}
	w.Flush()

	return status.Tiles, nil
}

// Open activates a tile and reports what happened.
func (a *PuzzleAdapter) Open(ctx context.Context, tileID, pageRef string) (*primary.ActivationResponse, error) {
	resp, err := a.service.HandleTileActivated(ctx, tileID, pageRef)
	if err != nil {
		return nil, err
	}

	switch resp.Outcome {
	case "revisited":
		fmt.Fprintf(a.out, "↺ %s already complete\n", resp.TileID)
		fmt.Fprintf(a.out, "  → %s\n", resp.URL)
	case "game_completed":
		fmt.Fprintf(a.out, "✓ %s complete (%d/%d)\n", resp.TileID, resp.Completed, resp.Total)
		fmt.Fprintln(a.out, color.New(color.FgHiYellow, color.Bold).Sprint("★ Puzzle complete!"))
	default:
		fmt.Fprintf(a.out, "✓ %s complete (%d/%d)\n", resp.TileID, resp.Completed, resp.Total)
		fmt.Fprintf(a.out, "  → %s (in %s)\n", resp.URL, resp.NavigateAfter)
	}

	return resp, nil
}

// Reset clears all progress.
func (a *PuzzleAdapter) Reset(ctx context.Context) error {
	if err := a.service.ResetGame(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ Progress reset")
	return nil
}

// Log lists activity entries.
func (a *PuzzleAdapter) Log(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := a.logs.ListLogs(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity found.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tTILE")
	fmt.Fprintln(w, "----\t------\t----")
	for _, e := range entries {
		tile := e.TileID
		if tile == "" {
			tile = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt, e.Action, tile)
	}
	w.Flush()

	return entries, nil
}

func tileState(completed bool) string {
	if completed {
		return color.New(color.FgGreen).Sprint("✓ complete")
	}
	return "· pending"
}
