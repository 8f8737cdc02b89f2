package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/example/ninegrid/internal/core/effects"
	"github.com/example/ninegrid/internal/core/puzzle"
	"github.com/example/ninegrid/internal/ports/primary"
	"github.com/example/ninegrid/internal/ports/secondary"
)

// PuzzleServiceImpl implements the PuzzleService interface.
// It owns one game and serialises every operation on it, including timed
// callbacks fired by the scheduler.
type PuzzleServiceImpl struct {
	mu        sync.Mutex
	game      *puzzle.Game
	store     secondary.KeyValueStore
	executor  EffectExecutor
	timers    *timerSet
	logger    *zap.Logger
	modalOpen bool
	closed    bool
}

// NewPuzzleService creates a new PuzzleService with injected dependencies.
func NewPuzzleService(game *puzzle.Game, store secondary.KeyValueStore, executor EffectExecutor, scheduler secondary.Scheduler, logger *zap.Logger) *PuzzleServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PuzzleServiceImpl{
		game:     game,
		store:    store,
		executor: executor,
		timers:   newTimerSet(scheduler),
		logger:   logger,
	}
}

// LoadProgress restores stored progress. Read and decode failures are
// logged and leave the board empty.
func (s *PuzzleServiceImpl) LoadProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.readStored(ctx)
	if err != nil {
		s.logger.Warn("failed to read stored progress", zap.Error(err))
		return nil
	}

	res, effs := s.game.Restore(stored)
	if res.Err != nil {
		s.logger.Warn("failed to load progress", zap.Error(res.Err))
		return nil
	}

	if err := s.run(ctx, effs); err != nil {
		return fmt.Errorf("failed to restore progress: %w", err)
	}

	s.logger.Info("progress loaded",
		zap.Int("restored", len(res.Restored)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Bool("game_completed", res.GameCompleted),
	)
	return nil
}

func (s *PuzzleServiceImpl) readStored(ctx context.Context) (puzzle.StoredState, error) {
	var (
		stored puzzle.StoredState
		err    error
	)
	stored.Progress, stored.HasProgress, err = s.store.Get(ctx, puzzle.ProgressKey)
	if err != nil {
		return puzzle.StoredState{}, fmt.Errorf("failed to read %s: %w", puzzle.ProgressKey, err)
	}
	stored.Completed, stored.HasCompleted, err = s.store.Get(ctx, puzzle.CompletedKey)
	if err != nil {
		return puzzle.StoredState{}, fmt.Errorf("failed to read %s: %w", puzzle.CompletedKey, err)
	}
	return stored, nil
}

// HandleTileActivated handles a click on a tile.
func (s *PuzzleServiceImpl) HandleTileActivated(ctx context.Context, tileID, pageRef string) (*primary.ActivationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.game.Snapshot()
	act, effs, err := s.game.Activate(puzzle.TileID(tileID), pageRef)
	if err != nil {
		return nil, err
	}

	if err := s.run(ctx, effs); err != nil {
		s.rollback(ctx, snap)
		return nil, fmt.Errorf("failed to activate tile %s: %w", tileID, err)
	}

	progress := s.game.Progress()
	s.logger.Info("tile activated",
		zap.String("tile", tileID),
		zap.String("outcome", string(act.Outcome)),
		zap.Int("completed", progress.Count()),
	)

	return &primary.ActivationResponse{
		TileID:        string(act.TileID),
		Outcome:       string(act.Outcome),
		URL:           act.URL,
		NavigateAfter: act.NavigateAfter,
		Completed:     progress.Count(),
		Total:         s.game.Board().Size(),
	}, nil
}

// MarkComplete marks a tile complete without persisting or navigating.
func (s *PuzzleServiceImpl) MarkComplete(ctx context.Context, tileID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.game.Board().Tile(puzzle.TileID(tileID)); !ok {
		return false, fmt.Errorf("%w: %s", puzzle.ErrUnknownTile, tileID)
	}

	effs := s.game.MarkComplete(puzzle.TileID(tileID))
	if len(effs) == 0 {
		return false, nil
	}
	if err := s.run(ctx, effs); err != nil {
		return true, fmt.Errorf("failed to mark tile %s: %w", tileID, err)
	}
	return true, nil
}

// SaveProgress persists the completed tiles.
func (s *PuzzleServiceImpl) SaveProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	effs, err := s.game.SaveProgress()
	if err != nil {
		return err
	}
	if err := s.run(ctx, effs); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// CompleteGame runs the completion sequence. It is a no-op once the game
// is complete or while tiles remain.
func (s *PuzzleServiceImpl) CompleteGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.game.Snapshot()
	effs := s.game.CompleteGame()
	if len(effs) == 0 {
		return nil
	}
	if err := s.run(ctx, effs); err != nil {
		s.rollback(ctx, snap)
		return fmt.Errorf("failed to complete game: %w", err)
	}
	s.logger.Info("game completed")
	return nil
}

// ResetGame cancels pending timers, then clears progress, visuals and storage.
func (s *PuzzleServiceImpl) ResetGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := s.timers.cancelAll()
	if err := s.run(ctx, s.game.Reset()); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}
	s.logger.Info("game reset", zap.Int("cancelled_timers", cancelled))
	return nil
}

// ShowModal shows the completion modal.
func (s *PuzzleServiceImpl) ShowModal(ctx context.Context) error {
	return s.setModal(ctx, true)
}

// CloseModal hides the completion modal.
func (s *PuzzleServiceImpl) CloseModal(ctx context.Context) error {
	return s.setModal(ctx, false)
}

func (s *PuzzleServiceImpl) setModal(ctx context.Context, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, []effects.Effect{effects.ModalEffect{Visible: visible}})
}

// Status returns a snapshot of the board.
func (s *PuzzleServiceImpl) Status(ctx context.Context) (*primary.PuzzleStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.game.Board()
	progress := s.game.Progress()

	tiles := make([]*primary.TileStatus, 0, board.Size())
	for _, t := range board.Tiles() {
		tiles = append(tiles, &primary.TileStatus{
			ID:        string(t.ID),
			Title:     t.Title,
			Page:      t.Page,
			URL:       s.game.PageURL(t.Page),
			Index:     t.Index,
			Completed: progress.Has(t.ID),
		})
	}

	return &primary.PuzzleStatus{
		Tiles:         tiles,
		Completed:     progress.Count(),
		Total:         board.Size(),
		GameCompleted: progress.GameCompleted(),
		ModalOpen:     s.modalOpen,
		Pending:       s.timers.count(),
	}, nil
}

// Wait blocks until every pending timed effect has fired or been cancelled.
func (s *PuzzleServiceImpl) Wait(ctx context.Context) error {
	return s.timers.wait(ctx)
}

// Close cancels pending timers.
func (s *PuzzleServiceImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.timers.cancelAll()
	return nil
}

// run executes effects in order. Delayed effects are handed to the timer
// set; everything else goes to the executor. Must be called with mu held.
func (s *PuzzleServiceImpl) run(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		switch typed := eff.(type) {
		case effects.DelayEffect:
			s.deferEffects(ctx, typed)
		case effects.CompositeEffect:
			if err := s.run(ctx, typed.Effects); err != nil {
				return err
			}
		default:
			if modal, ok := eff.(effects.ModalEffect); ok {
				s.modalOpen = modal.Visible
			}
			if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
				return err
			}
		}
	}
	return nil
}

// rollback returns the game to snap after a failed run so a retry starts
// from the same state. Must be called with mu held.
func (s *PuzzleServiceImpl) rollback(ctx context.Context, snap *puzzle.Progress) {
	undo, err := s.game.Rollback(snap)
	if err != nil {
		s.logger.Warn("failed to encode rolled back progress", zap.Error(err))
	}
	if err := s.run(ctx, undo); err != nil {
		s.logger.Warn("failed to roll back", zap.Error(err))
	}
}

func (s *PuzzleServiceImpl) deferEffects(ctx context.Context, eff effects.DelayEffect) {
	detached := context.WithoutCancel(ctx)
	s.timers.schedule(eff.After, func(gen uint64) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || !s.timers.current(gen) {
			return
		}
		if err := s.run(detached, eff.Effects); err != nil {
			s.logger.Error("deferred effect failed", zap.Error(err))
		}
	})
}

// Ensure PuzzleServiceImpl implements the interface.
var _ primary.PuzzleService = (*PuzzleServiceImpl)(nil)
