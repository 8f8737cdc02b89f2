// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/ninegrid/internal/core/effects"
	"github.com/example/ninegrid/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the surface,
// the key-value store and the activity log.
type DefaultEffectExecutor struct {
	surface  secondary.Surface
	store    secondary.KeyValueStore
	activity secondary.ActivityLog // optional
	profile  string
	logger   *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
// activity may be nil, in which case audit effects are dropped.
func NewEffectExecutor(surface secondary.Surface, store secondary.KeyValueStore, activity secondary.ActivityLog, profile string, logger *zap.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEffectExecutor{
		surface:  surface,
		store:    store,
		activity: activity,
		profile:  profile,
		logger:   logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.TileEffect:
		return e.surface.SetTileCompleted(ctx, typed.TileID, typed.Completed)
	case effects.PulseEffect:
		return e.surface.Pulse(ctx, typed.TileID, !typed.Silent)
	case effects.BackgroundEffect:
		return e.surface.SetBackgroundVisible(ctx, typed.Visible)
	case effects.ModalEffect:
		return e.surface.SetModalVisible(ctx, typed.Visible)
	case effects.NavigateEffect:
		e.logger.Debug("navigating", zap.String("page", typed.Page), zap.String("url", typed.URL))
		return e.surface.Open(ctx, typed.URL)
	case effects.PersistEffect:
		return e.store.Set(ctx, typed.Key, typed.Value)
	case effects.EraseEffect:
		return e.store.Delete(ctx, typed.Key)
	case effects.AuditEffect:
		e.executeAudit(ctx, typed)
		return nil
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.DelayEffect:
		return fmt.Errorf("delay effects must be scheduled, not executed")
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

// executeAudit never fails the operation: the activity log is a side channel.
func (e *DefaultEffectExecutor) executeAudit(ctx context.Context, eff effects.AuditEffect) {
	if e.activity == nil {
		return
	}
	err := e.activity.Record(ctx, &secondary.ActivityRecord{
		Profile: e.profile,
		Action:  eff.Action,
		TileID:  eff.TileID,
	})
	if err != nil {
		e.logger.Warn("failed to record activity",
			zap.String("action", eff.Action),
			zap.String("tile", eff.TileID),
			zap.Error(err),
		)
	}
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}

// Ensure DefaultEffectExecutor implements the interface.
var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
