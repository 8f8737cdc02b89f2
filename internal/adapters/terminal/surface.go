// Package terminal renders the puzzle board on a text terminal.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/example/ninegrid/internal/core/puzzle"
	"github.com/example/ninegrid/internal/ports/secondary"
)

const (
	bell      = "\a"
	cellWidth = 16
	columns   = 3
)

// Launcher opens url outside the process.
type Launcher func(ctx context.Context, url string) error

// Options configures a Surface.
type Options struct {
	Out         io.Writer
	Sound       bool     // ring the terminal bell on first-time completion
	OpenBrowser bool     // hand navigation URLs to Launcher
	Launcher    Launcher // defaults to OpenURL
	OnChange    func()   // called after every visual change, outside the lock
}

// Surface implements secondary.Surface as a colored 3x3 board.
// State changes are kept in a view model and drawn by Render.
type Surface struct {
	opts  Options
	tiles []puzzle.Tile

	mu         sync.Mutex
	completed  map[string]bool
	pulsed     string
	background bool
	modal      bool
	notice     string
}

// NewSurface creates a surface for the given tiles in grid order.
func NewSurface(tiles []puzzle.Tile, opts Options) *Surface {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Launcher == nil {
		opts.Launcher = OpenURL
	}
	return &Surface{
		opts:      opts,
		tiles:     tiles,
		completed: make(map[string]bool),
	}
}

// SetTileCompleted sets the visual completion state of a tile.
func (s *Surface) SetTileCompleted(ctx context.Context, tileID string, completed bool) error {
	s.update(func() {
		if completed {
			s.completed[tileID] = true
			return
		}
		delete(s.completed, tileID)
		if s.pulsed == tileID {
			s.pulsed = ""
		}
	})
	return nil
}

// Pulse highlights the tile and rings the bell when tone is requested
// and sound is enabled.
func (s *Surface) Pulse(ctx context.Context, tileID string, tone bool) error {
	s.update(func() {
		s.pulsed = tileID
		s.notice = fmt.Sprintf("%s complete", tileID)
	})
	if tone && s.opts.Sound {
		if _, err := io.WriteString(s.opts.Out, bell); err != nil {
			return fmt.Errorf("failed to ring bell: %w", err)
		}
	}
	return nil
}

// SetBackgroundVisible shows or hides the pattern border.
func (s *Surface) SetBackgroundVisible(ctx context.Context, visible bool) error {
	s.update(func() {
		s.background = visible
		if !visible {
			s.notice = "board reset"
		}
	})
	return nil
}

// SetModalVisible shows or hides the completion box.
func (s *Surface) SetModalVisible(ctx context.Context, visible bool) error {
	s.update(func() { s.modal = visible })
	return nil
}

// Open records the navigation and launches the URL when enabled.
func (s *Surface) Open(ctx context.Context, url string) error {
	s.update(func() { s.notice = "→ " + url })
	if !s.opts.OpenBrowser {
		return nil
	}
	if err := s.opts.Launcher(ctx, url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// Render writes the current view to the configured output.
func (s *Surface) Render() error {
	_, err := io.WriteString(s.opts.Out, s.View())
	return err
}

// View returns the board as text, one line per row.
func (s *Surface) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	width := columns*cellWidth + 2
	pattern := color.New(color.FgMagenta).Sprint(strings.Repeat("░", width))

	if s.background {
		b.WriteString(pattern + "\n")
	}
	for row := 0; row*columns < len(s.tiles); row++ {
		b.WriteString(" ")
		for col := 0; col < columns; col++ {
			i := row*columns + col
			if i >= len(s.tiles) {
				break
			}
			b.WriteString(s.cell(s.tiles[i]))
		}
		b.WriteString("\n")
	}
	if s.background {
		b.WriteString(pattern + "\n")
	}

	fmt.Fprintf(&b, "%d/%d complete", len(s.completed), len(s.tiles))
	if s.notice != "" {
		b.WriteString("  " + s.notice)
	}
	b.WriteString("\n")

	if s.modal {
		b.WriteString(modalBox())
	}
	return b.String()
}

// Modal reports whether the completion box is shown.
func (s *Surface) Modal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

func (s *Surface) cell(tile puzzle.Tile) string {
	label := []rune(fmt.Sprintf("%d %s", tile.Index+1, tile.Title))
	if len(label) > cellWidth-3 {
		label = label[:cellWidth-3]
	}
	text := fmt.Sprintf(" %-*s", cellWidth-3, string(label))

	id := string(tile.ID)
	switch {
	case id == s.pulsed:
		return color.New(color.FgHiGreen, color.Bold).Sprint("✓") + color.New(color.Bold).Sprint(text) + " "
	case s.completed[id]:
		return color.New(color.FgGreen).Sprint("✓") + text + " "
	default:
		return color.New(color.FgHiBlack).Sprint("·") + text + " "
	}
}

func modalBox() string {
	lines := []string{
		"",
		color.New(color.FgHiYellow, color.Bold).Sprint("  ★ Puzzle complete! ★"),
		"  Every capability has been explored.",
		color.New(color.FgHiBlack).Sprint("  Esc to close, Ctrl+R to start over"),
		"",
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) update(change func()) {
	s.mu.Lock()
	change()
	s.mu.Unlock()

	if s.opts.OnChange != nil {
		s.opts.OnChange()
	}
}

// OpenURL opens url with the platform's default handler.
// The handler outlives ctx; it is reaped in the background.
func OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// Ensure Surface implements the interface.
var _ secondary.Surface = (*Surface)(nil)
