package puzzle

import (
	"encoding/json"
	"fmt"
)

// Store keys.
const (
	ProgressKey  = "puzzleGameProgress"
	CompletedKey = "puzzleGameCompleted"

	// CompletedValue is the only value of CompletedKey that counts as complete.
	CompletedValue = "true"
)

// Progress is the set of completed tiles plus the game status.
// The set remembers insertion order so the persisted list is deterministic.
type Progress struct {
	order         []TileID
	done          map[TileID]struct{}
	gameCompleted bool
}

// NewProgress returns empty progress.
func NewProgress() *Progress {
	return &Progress{done: make(map[TileID]struct{})}
}

// Has reports whether id is completed.
func (p *Progress) Has(id TileID) bool {
	_, ok := p.done[id]
	return ok
}

// Count returns the number of completed tiles.
func (p *Progress) Count() int { return len(p.order) }

// GameCompleted reports the game status.
func (p *Progress) GameCompleted() bool { return p.gameCompleted }

// Completed returns completed tile IDs in completion order.
func (p *Progress) Completed() []TileID {
	out := make([]TileID, len(p.order))
	copy(out, p.order)
	return out
}

// add returns false if id was already present.
func (p *Progress) add(id TileID) bool {
	if p.Has(id) {
		return false
	}
	p.done[id] = struct{}{}
	p.order = append(p.order, id)
	return true
}

func (p *Progress) clone() *Progress {
	c := &Progress{
		order:         make([]TileID, len(p.order)),
		done:          make(map[TileID]struct{}, len(p.done)),
		gameCompleted: p.gameCompleted,
	}
	copy(c.order, p.order)
	for id := range p.done {
		c.done[id] = struct{}{}
	}
	return c
}

func (p *Progress) clear() {
	p.order = nil
	p.done = make(map[TileID]struct{})
	p.gameCompleted = false
}

// EncodeProgress serialises completed IDs as a JSON list of strings.
func EncodeProgress(ids []TileID) (string, error) {
	list := make([]string, len(ids))
	for i, id := range ids {
		list[i] = string(id)
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode progress: %w", err)
	}
	return string(data), nil
}

// DecodeProgress parses a JSON list of strings. Anything else, including
// a bare null, is an error.
func DecodeProgress(raw string) ([]TileID, error) {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	if list == nil {
		return nil, fmt.Errorf("failed to decode progress: %w", ErrNotAList)
	}
	ids := make([]TileID, len(list))
	for i, s := range list {
		ids[i] = TileID(s)
	}
	return ids, nil
}
