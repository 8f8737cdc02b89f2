// Package puzzle contains the pure logic of the nine-tile capability map.
// Nothing in this package performs I/O: transitions mutate in-memory state
// and return effects for the shell to execute.
package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

// BoardSize is the number of tiles on a board.
const BoardSize = 9

var (
	// ErrUnknownTile is returned when a tile ID is not on the board.
	ErrUnknownTile = errors.New("unknown tile")
	// ErrInvalidBoard is returned when a tile table cannot form a board.
	ErrInvalidBoard = errors.New("invalid board")
	// ErrNotAList is returned when stored progress is valid JSON but not a list.
	ErrNotAList = errors.New("progress is not a list")
)

// TileID identifies a tile. It is stable across sessions and is what gets persisted.
type TileID string

// Tile is one of the nine interactive units.
type Tile struct {
	ID    TileID
	Page  string // pageRef used for navigation
	Title string
	Index int // row-major grid position, 0..8
}

// DefaultTiles is the capability map shipped with ninegrid, in grid order.
var DefaultTiles = []Tile{
	{ID: "execution", Page: "execution", Title: "Execution"},
	{ID: "product", Page: "product", Title: "Product"},
	{ID: "analysis", Page: "analysis", Title: "Analysis"},
	{ID: "tools", Page: "tools", Title: "Tools"},
	{ID: "ideas", Page: "ideas", Title: "Ideas"},
	{ID: "learning", Page: "learning", Title: "Learning"},
	{ID: "about", Page: "about", Title: "About"},
	{ID: "projects", Page: "projects", Title: "Projects"},
	{ID: "contact", Page: "contact", Title: "Contact"},
}

// Board is the fixed TileID -> Tile mapping, built once.
type Board struct {
	tiles []Tile
	byID  map[TileID]Tile
}

// NewBoard validates tiles and indexes them by ID.
// Tiles keep the order given; Index is assigned from that order.
func NewBoard(tiles []Tile) (*Board, error) {
	if len(tiles) != BoardSize {
		return nil, fmt.Errorf("%w: need %d tiles, got %d", ErrInvalidBoard, BoardSize, len(tiles))
	}

	b := &Board{
		tiles: make([]Tile, 0, len(tiles)),
		byID:  make(map[TileID]Tile, len(tiles)),
	}
	for i, t := range tiles {
		id := TileID(strings.TrimSpace(string(t.ID)))
		if id == "" {
			return nil, fmt.Errorf("%w: tile %d has no ID", ErrInvalidBoard, i)
		}
		if _, dup := b.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate tile %s", ErrInvalidBoard, id)
		}
		t.ID = id
		t.Index = i
		if t.Page == "" {
			t.Page = string(id)
		}
		if t.Title == "" {
			t.Title = string(id)
		}
		b.tiles = append(b.tiles, t)
		b.byID[id] = t
	}
	return b, nil
}

// DefaultBoard returns the board built from DefaultTiles.
func DefaultBoard() *Board {
	b, err := NewBoard(DefaultTiles)
	if err != nil {
		panic(err)
	}
	return b
}

// Tile looks up a tile by ID.
func (b *Board) Tile(id TileID) (Tile, bool) {
	t, ok := b.byID[id]
	return t, ok
}

// At returns the tile at a grid position.
func (b *Board) At(index int) (Tile, bool) {
	if index < 0 || index >= len(b.tiles) {
		return Tile{}, false
	}
	return b.tiles[index], true
}

// Tiles returns the tiles in grid order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Size returns the number of tiles.
func (b *Board) Size() int { return len(b.tiles) }
