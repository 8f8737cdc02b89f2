package puzzle

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// MarkContext provides context for the mark-complete guard.
type MarkContext struct {
	TileID        TileID
	TileOnBoard   bool
	AlreadyMarked bool
}

// CompleteGameContext provides context for the completion guard.
type CompleteGameContext struct {
	Completed     int
	BoardSize     int
	GameCompleted bool
}

// CanMarkTile evaluates whether a tile transitions to completed.
// Rules:
// - Tile must be on the board
// - Tile must not be completed already
func CanMarkTile(ctx MarkContext) GuardResult {
	if !ctx.TileOnBoard {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tile %s is not on the board", ctx.TileID),
		}
	}

	if ctx.AlreadyMarked {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tile %s is already complete", ctx.TileID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanCompleteGame evaluates whether the completion sequence may run.
// Rules:
// - Completion runs once until reset
// - Every tile must be completed
func CanCompleteGame(ctx CompleteGameContext) GuardResult {
	if ctx.GameCompleted {
		return GuardResult{
			Allowed: false,
			Reason:  "game is already complete",
		}
	}

	if ctx.Completed < ctx.BoardSize {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only %d of %d tiles complete", ctx.Completed, ctx.BoardSize),
		}
	}

	return GuardResult{Allowed: true}
}
