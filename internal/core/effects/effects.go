// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import "time"

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// TileEffect sets the visual completion state of a tile.
type TileEffect struct {
	TileID    string
	Completed bool
}

func (e TileEffect) EffectType() string { return "tile" }

// PulseEffect plays the first-time completion pulse (and tone) on a tile.
type PulseEffect struct {
	TileID string
	Silent bool // no tone; set when replaying stored progress
}

func (e PulseEffect) EffectType() string { return "pulse" }

// BackgroundEffect reveals or hides the background pattern.
type BackgroundEffect struct {
	Visible bool
}

func (e BackgroundEffect) EffectType() string { return "background" }

// ModalEffect shows or hides the completion modal.
type ModalEffect struct {
	Visible bool
}

func (e ModalEffect) EffectType() string { return "modal" }

// NavigateEffect opens the page linked to a tile.
type NavigateEffect struct {
	Page string // pageRef, e.g. "execution"
	URL  string // resolved target, e.g. "pages/execution.html"
}

func (e NavigateEffect) EffectType() string { return "navigate" }

// PersistEffect writes a value to the key-value store.
type PersistEffect struct {
	Key   string
	Value string
}

func (e PersistEffect) EffectType() string { return "persist" }

// EraseEffect removes a key from the key-value store.
type EraseEffect struct {
	Key string
}

func (e EraseEffect) EffectType() string { return "erase" }

// DelayEffect runs Effects once After has elapsed.
// The shell owns the timer and may cancel it before it fires.
type DelayEffect struct {
	After   time.Duration
	Effects []Effect
}

func (e DelayEffect) EffectType() string { return "delay" }

// AuditEffect records an entry in the activity log.
type AuditEffect struct {
	Action string // e.g. "complete_tile", "revisit", "complete_game", "reset"
	TileID string // empty for board-wide actions
}

func (e AuditEffect) EffectType() string { return "audit" }

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
