package puzzle

import (
	"fmt"
	"time"

	"github.com/example/ninegrid/internal/core/effects"
)

// Default delays of the timed effects.
const (
	DefaultNavigateDelay = 800 * time.Millisecond
	DefaultModalDelay    = 1000 * time.Millisecond
)

// Timing holds the delays of the timed effects.
type Timing struct {
	NavigateDelay time.Duration // between first completion of a tile and navigation
	ModalDelay    time.Duration // between game completion and the modal
}

// DefaultTiming returns the default delays.
func DefaultTiming() Timing {
	return Timing{NavigateDelay: DefaultNavigateDelay, ModalDelay: DefaultModalDelay}
}

// Outcome describes what an activation did.
type Outcome string

const (
	// OutcomeRevisited: the tile was already complete; navigation is immediate.
	OutcomeRevisited Outcome = "revisited"
	// OutcomeCompleted: the tile was completed; navigation is delayed.
	OutcomeCompleted Outcome = "completed"
	// OutcomeGameCompleted: the tile was the last one; no navigation.
	OutcomeGameCompleted Outcome = "game_completed"
)

// Activation is the result of Game.Activate.
type Activation struct {
	TileID        TileID
	Outcome       Outcome
	URL           string        // empty when the game completed
	NavigateAfter time.Duration // zero for immediate navigation
}

// Restoration is the result of Game.Restore.
type Restoration struct {
	Restored      []TileID
	Skipped       []TileID // stored IDs that are not on the board
	GameCompleted bool
	Err           error // decode failure; state is left untouched when set
}

// StoredState is the raw content of the two store keys.
type StoredState struct {
	Progress     string
	HasProgress  bool
	Completed    string
	HasCompleted bool
}

// Game is the piece state controller. It owns the board and the progress
// and turns every operation into effects. It is not safe for concurrent use.
type Game struct {
	board    *Board
	progress *Progress
	links    Links
	timing   Timing
}

// NewGame creates a game with empty progress.
func NewGame(board *Board, links Links, timing Timing) *Game {
	return &Game{
		board:    board,
		progress: NewProgress(),
		links:    links,
		timing:   timing,
	}
}

// Board returns the game's board.
func (g *Game) Board() *Board { return g.board }

// PageURL resolves a pageRef through the game's links.
func (g *Game) PageURL(pageRef string) string { return g.links.Resolve(pageRef) }

// Progress returns the live progress. Callers must not hold it across operations.
func (g *Game) Progress() *Progress { return g.progress }

// Activate handles a tile being activated with the page it links to.
// An empty pageRef falls back to the tile's own page.
func (g *Game) Activate(id TileID, pageRef string) (Activation, []effects.Effect, error) {
	tile, ok := g.board.Tile(id)
	if !ok {
		return Activation{}, nil, fmt.Errorf("%w: %s", ErrUnknownTile, id)
	}
	if pageRef == "" {
		pageRef = tile.Page
	}
	url := g.links.Resolve(pageRef)
	nav := effects.NavigateEffect{Page: pageRef, URL: url}

	if g.progress.Has(id) {
		return Activation{TileID: id, Outcome: OutcomeRevisited, URL: url},
			[]effects.Effect{
				effects.AuditEffect{Action: "revisit", TileID: string(id)},
				nav,
			}, nil
	}

	snap := g.Snapshot()
	marks := g.MarkComplete(id)
	save, err := g.SaveProgress()
	if err != nil {
		g.progress = snap
		return Activation{}, nil, err
	}
	// Persist first: a failed write leaves the surface untouched.
	effs := append(save, marks...)

	if g.progress.Count() == g.board.Size() {
		effs = append(effs, g.CompleteGame()...)
		return Activation{TileID: id, Outcome: OutcomeGameCompleted}, effs, nil
	}

	effs = append(effs, effects.DelayEffect{
		After:   g.timing.NavigateDelay,
		Effects: []effects.Effect{nav},
	})
	return Activation{
		TileID:        id,
		Outcome:       OutcomeCompleted,
		URL:           url,
		NavigateAfter: g.timing.NavigateDelay,
	}, effs, nil
}

// MarkComplete adds id to the progress. Only a first-time completion
// yields effects: the tile is marked and pulsed exactly once.
func (g *Game) MarkComplete(id TileID) []effects.Effect {
	_, onBoard := g.board.Tile(id)
	guard := CanMarkTile(MarkContext{
		TileID:        id,
		TileOnBoard:   onBoard,
		AlreadyMarked: g.progress.Has(id),
	})
	if !guard.Allowed {
		return nil
	}

	g.progress.add(id)
	return []effects.Effect{
		effects.TileEffect{TileID: string(id), Completed: true},
		effects.PulseEffect{TileID: string(id)},
		effects.AuditEffect{Action: "complete_tile", TileID: string(id)},
	}
}

// CompleteGame runs the completion sequence once: background now,
// completion flag persisted, modal after the modal delay.
func (g *Game) CompleteGame() []effects.Effect {
	guard := CanCompleteGame(CompleteGameContext{
		Completed:     g.progress.Count(),
		BoardSize:     g.board.Size(),
		GameCompleted: g.progress.GameCompleted(),
	})
	if !guard.Allowed {
		return nil
	}

	g.progress.gameCompleted = true
	return []effects.Effect{
		effects.PersistEffect{Key: CompletedKey, Value: CompletedValue},
		effects.BackgroundEffect{Visible: true},
		effects.DelayEffect{
			After:   g.timing.ModalDelay,
			Effects: []effects.Effect{effects.ModalEffect{Visible: true}},
		},
		effects.AuditEffect{Action: "complete_game"},
	}
}

// Snapshot returns a copy of the current progress for Rollback.
func (g *Game) Snapshot() *Progress { return g.progress.clone() }

// Rollback returns the game to snap after an operation whose effects
// failed. Tiles completed since snap are unmarked, a background revealed
// since snap is hidden, and the snapshot's list is written back.
func (g *Game) Rollback(snap *Progress) ([]effects.Effect, error) {
	var effs []effects.Effect
	for _, id := range g.progress.order {
		if !snap.Has(id) {
			effs = append(effs, effects.TileEffect{TileID: string(id), Completed: false})
		}
	}
	if g.progress.gameCompleted && !snap.gameCompleted {
		effs = append(effs, effects.BackgroundEffect{Visible: false})
	}

	g.progress = snap.clone()
	save, err := g.SaveProgress()
	if err != nil {
		return effs, err
	}
	return append(effs, save...), nil
}

// SaveProgress returns the effect that persists the completed list.
func (g *Game) SaveProgress() ([]effects.Effect, error) {
	raw, err := EncodeProgress(g.progress.Completed())
	if err != nil {
		return nil, err
	}
	return []effects.Effect{effects.PersistEffect{Key: ProgressKey, Value: raw}}, nil
}

// Restore replays stored state: every known stored tile is marked complete
// (no navigation), and a "true" completion flag reveals the background
// without the modal. A decode failure leaves the state untouched and is
// reported in Restoration.Err.
func (g *Game) Restore(stored StoredState) (Restoration, []effects.Effect) {
	var ids []TileID
	if stored.HasProgress && stored.Progress != "" {
		decoded, err := DecodeProgress(stored.Progress)
		if err != nil {
			return Restoration{Err: err}, nil
		}
		ids = decoded
	}

	var (
		res  Restoration
		effs []effects.Effect
	)
	for _, id := range ids {
		if _, ok := g.board.Tile(id); !ok {
			res.Skipped = append(res.Skipped, id)
			effs = append(effs, effects.LogEffect{
				Level:   "warn",
				Message: "skipping stored tile that is not on the board",
				Fields:  map[string]any{"tile": string(id)},
			})
			continue
		}
		if marked := g.markRestored(id); len(marked) > 0 {
			res.Restored = append(res.Restored, id)
			effs = append(effs, marked...)
		}
	}

	if stored.HasCompleted && stored.Completed == CompletedValue {
		g.progress.gameCompleted = true
		res.GameCompleted = true
		effs = append(effs, effects.BackgroundEffect{Visible: true})
	}
	return res, effs
}

// markRestored is MarkComplete without the audit entry and with a
// silent pulse.
func (g *Game) markRestored(id TileID) []effects.Effect {
	var out []effects.Effect
	for _, e := range g.MarkComplete(id) {
		switch typed := e.(type) {
		case effects.AuditEffect:
			continue
		case effects.PulseEffect:
			typed.Silent = true
			out = append(out, typed)
		default:
			out = append(out, e)
		}
	}
	return out
}

// Reset clears progress and game status, unmarks every tile, hides the
// background and erases both store keys.
func (g *Game) Reset() []effects.Effect {
	g.progress.clear()

	effs := make([]effects.Effect, 0, g.board.Size()+4)
	for _, t := range g.board.Tiles() {
		effs = append(effs, effects.TileEffect{TileID: string(t.ID), Completed: false})
	}
	return append(effs,
		effects.BackgroundEffect{Visible: false},
		effects.EraseEffect{Key: ProgressKey},
		effects.EraseEffect{Key: CompletedKey},
		effects.AuditEffect{Action: "reset"},
	)
}
