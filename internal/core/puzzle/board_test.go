package puzzle

import (
	"errors"
	"testing"
)

func TestNewBoard(t *testing.T) {
	nine := func() []Tile {
		tiles := make([]Tile, len(DefaultTiles))
		copy(tiles, DefaultTiles)
		return tiles
	}

	tests := []struct {
		name    string
		tiles   func() []Tile
		wantErr bool
	}{
		{
			name:  "default tiles form a board",
			tiles: nine,
		},
		{
			name:    "eight tiles are rejected",
			tiles:   func() []Tile { return nine()[:8] },
			wantErr: true,
		},
		{
			name: "duplicate IDs are rejected",
			tiles: func() []Tile {
				tiles := nine()
				tiles[8].ID = "execution"
				return tiles
			},
			wantErr: true,
		},
		{
			name: "blank IDs are rejected",
			tiles: func() []Tile {
				tiles := nine()
				tiles[3].ID = "  "
				return tiles
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoard(tt.tiles())
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBoard) {
					t.Fatalf("expected ErrInvalidBoard, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBoard failed: %v", err)
			}
			if board.Size() != BoardSize {
				t.Errorf("Size() = %d, want %d", board.Size(), BoardSize)
			}
		})
	}
}

func TestBoard_IndexesAndDefaults(t *testing.T) {
	tiles := make([]Tile, len(DefaultTiles))
	copy(tiles, DefaultTiles)
	tiles[4] = Tile{ID: "ideas"}

	board, err := NewBoard(tiles)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}

	tile, ok := board.Tile("ideas")
	if !ok {
		t.Fatal("expected tile ideas")
	}
	if tile.Index != 4 {
		t.Errorf("Index = %d, want 4", tile.Index)
	}
	if tile.Page != "ideas" || tile.Title != "ideas" {
		t.Errorf("expected page and title to default to the ID, got %q/%q", tile.Page, tile.Title)
	}

	at, ok := board.At(8)
	if !ok || at.ID != "contact" {
		t.Errorf("At(8) = %v, %v; want contact", at.ID, ok)
	}
	if _, ok := board.At(9); ok {
		t.Error("At(9) should be out of range")
	}
	if _, ok := board.Tile("missing"); ok {
		t.Error("expected missing tile lookup to fail")
	}
}

func TestLinks_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		pageRef string
		want    string
	}{
		{"known page", "", "execution", "pages/execution.html"},
		{"unknown page uses template", "", "resume", "pages/resume.html"},
		{"base URL is prefixed", "https://example.com/map/", "contact", "https://example.com/map/pages/contact.html"},
		{"base URL without slash", "https://example.com", "tools", "https://example.com/pages/tools.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Links{BaseURL: tt.base}.Resolve(tt.pageRef)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.pageRef, got, tt.want)
			}
		})
	}
}

func TestDecodeProgress(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []TileID
		wantErr bool
	}{
		{"list of strings", `["execution","tools"]`, []TileID{"execution", "tools"}, false},
		{"empty list", `[]`, []TileID{}, false},
		{"not JSON", `not-json`, nil, true},
		{"object", `{"execution":true}`, nil, true},
		{"list of numbers", `[1,2,3]`, nil, true},
		{"null", `null`, nil, true},
		{"string", `"x"`, nil, true},
		{"number", `9`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeProgress(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeProgress failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeProgress_NullIsNotAList(t *testing.T) {
	if _, err := DecodeProgress("null"); !errors.Is(err, ErrNotAList) {
		t.Errorf("expected ErrNotAList, got %v", err)
	}
}

func TestEncodeProgress_MatchesBrowserFormat(t *testing.T) {
	raw, err := EncodeProgress([]TileID{"execution"})
	if err != nil {
		t.Fatalf("EncodeProgress failed: %v", err)
	}
	if raw != `["execution"]` {
		t.Errorf("EncodeProgress = %s, want [\"execution\"]", raw)
	}

	raw, err = EncodeProgress(nil)
	if err != nil {
		t.Fatalf("EncodeProgress failed: %v", err)
	}
	if raw != `[]` {
		t.Errorf("EncodeProgress(nil) = %s, want []", raw)
	}
}
