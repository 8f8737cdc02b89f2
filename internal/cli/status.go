package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/ninegrid/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	var board bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show puzzle progress",
		Long: `Show how many tiles are complete, whether the game is complete,
and the state of every tile.

Use --board to draw the 3x3 board instead of the table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, wire.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			if board {
				return app.Surface.Render()
			}

			_, err = app.PuzzleAdapter().Status(commandContext(cmd))
			return err
		},
	}

	cmd.Flags().BoolVar(&board, "board", false, "draw the board")
	return cmd
}

// TilesCmd returns the tiles command
func TilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiles",
		Short: "List tiles and the pages they link to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, wire.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			_, err = app.PuzzleAdapter().Tiles(commandContext(cmd))
			return err
		},
	}
}

// OpenCmd returns the open command
func OpenCmd() *cobra.Command {
	var (
		page   string
		noWait bool
	)

	cmd := &cobra.Command{
		Use:   "open <tile>",
		Short: "Open a tile, marking it complete",
		Long: `Open a tile by id (see 'ninegrid tiles').

A tile opened for the first time is marked complete and saved, then its
page is opened after the navigate delay. Opening a completed tile goes to
its page immediately. Opening the last tile completes the game instead of
navigating.

Examples:
  ninegrid open execution
  ninegrid open tools --page ideas`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			app, err := openApp(cmd, wire.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.PuzzleAdapter().Open(ctx, args[0], page); err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}

			if noWait {
				return nil
			}
			// Let the delayed navigation and completion message fire before exiting.
			if err := app.Puzzle.Wait(ctx); err != nil {
				return err
			}
			if app.Surface.Modal() {
				return app.Surface.Render()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&page, "page", "", "page to navigate to (default: the tile's own page)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "exit without waiting for delayed navigation")
	return cmd
}

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress for the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, wire.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			return app.PuzzleAdapter().Reset(commandContext(cmd))
		},
	}
}
