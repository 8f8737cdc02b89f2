package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/example/ninegrid/internal/ports/primary"
)

// Control bytes read from the terminal.
const (
	keyCtrlC  = 0x03
	keyCtrlR  = 0x12
	keyEscape = 0x1b
)

const clearScreen = "\x1b[H\x1b[2J"

// Player runs the interactive board: digits activate tiles, Ctrl+R resets,
// Esc closes the completion modal, q or Ctrl+C quits.
type Player struct {
	service primary.PuzzleService
	view    func() string
	out     io.Writer

	mu      sync.Mutex
	raw     bool
	message string
}

// NewPlayer creates a player drawing view to out.
func NewPlayer(service primary.PuzzleService, view func() string, out io.Writer) *Player {
	return &Player{service: service, view: view, out: out}
}

// SetRaw switches line endings for a terminal in raw mode.
func (p *Player) SetRaw(raw bool) {
	p.mu.Lock()
	p.raw = raw
	p.mu.Unlock()
}

// Redraw clears the screen and draws the board. Safe to call from timer goroutines.
func (p *Player) Redraw() {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(color.New(color.Bold).Sprint("ninegrid"))
	b.WriteString(": explore all nine tiles\n\n")
	b.WriteString(p.view())
	b.WriteString("\n")
	if p.message != "" {
		b.WriteString(p.message + "\n")
	}
	b.WriteString(color.New(color.FgHiBlack).Sprint("1-9 open tile · Ctrl+R reset · Esc close · q quit"))
	b.WriteString("\n")

	text := b.String()
	if p.raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	io.WriteString(p.out, text) //nolint:errcheck
}

// Run reads keys from in until quit or end of input.
func (p *Player) Run(ctx context.Context, in io.Reader) error {
	r := bufio.NewReader(in)
	p.Redraw()

	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := p.handleKey(ctx, b)
		if err != nil {
			p.setMessage(color.New(color.FgRed).Sprint(err.Error()))
		}
		if quit {
			return nil
		}
		p.Redraw()
	}
}

// handleKey dispatches one key. It reports whether the loop should stop.
func (p *Player) handleKey(ctx context.Context, b byte) (bool, error) {
	switch {
	case b == 'q' || b == keyCtrlC:
		return true, nil
	case b == keyCtrlR || b == 'r':
		p.setMessage("")
		return false, p.service.ResetGame(ctx)
	case b == keyEscape || b == 'c':
		p.setMessage("")
		return false, p.service.CloseModal(ctx)
	case b >= '1' && b <= '9':
		p.setMessage("")
		return false, p.activate(ctx, int(b-'1'))
	default:
		return false, nil
	}
}

func (p *Player) activate(ctx context.Context, index int) error {
	status, err := p.service.Status(ctx)
	if err != nil {
		return err
	}
	if index >= len(status.Tiles) {
		return fmt.Errorf("no tile %d", index+1)
	}

	_, err = p.service.HandleTileActivated(ctx, status.Tiles[index].ID, "")
	return err
}

func (p *Player) setMessage(msg string) {
	p.mu.Lock()
	p.message = msg
	p.mu.Unlock()
}
