package cli

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	cliadapter "github.com/example/ninegrid/internal/adapters/cli"
	"github.com/example/ninegrid/internal/wire"
)

// PlayCmd returns the interactive play command
func PlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play on an interactive board",
		Long: `Draw the board and play with the keyboard:

  1-9      open the tile at that position
  Ctrl+R   reset progress (r in line mode)
  Esc      close the completion message (c in line mode)
  q        quit

Logs go to <config dir>/ninegrid.log unless log_file is set, so they do
not overwrite the board.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			// The surface reports changes from timer goroutines; the player
			// exists only after the app is wired.
			var player atomic.Pointer[cliadapter.Player]
			redraw := func() {
				if p := player.Load(); p != nil {
					p.Redraw()
				}
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.LogFile == "" {
				dir, err := configDir(cmd)
				if err != nil {
					return err
				}
				cfg.LogFile = filepath.Join(dir, "ninegrid.log")
			}

			app, err := wire.New(ctx, cfg, wire.Options{Out: out(cmd), OnChange: redraw})
			if err != nil {
				return err
			}
			defer app.Close()

			p := cliadapter.NewPlayer(app.Puzzle, app.Surface.View, out(cmd))

			fd := int(os.Stdin.Fd())
			if term.IsTerminal(fd) {
				if oldState, err := term.MakeRaw(fd); err == nil {
					defer term.Restore(fd, oldState) //nolint:errcheck
					p.SetRaw(true)
				}
			}

			player.Store(p)
			return p.Run(ctx, cmd.InOrStdin())
		},
	}
}
