package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/ninegrid/internal/ports/primary"
	"github.com/example/ninegrid/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var (
		limit  int
		action string
		tile   string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent puzzle activity",
		Long: `Show activity entries for the profile, newest first (default 50).

Actions: complete_tile, revisit, complete_game, reset.
Only the sqlite store keeps an activity log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, wire.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			if limit <= 0 {
				limit = 50
			}

			_, err = app.PuzzleAdapter().Log(commandContext(cmd), primary.LogFilters{
				Action: action,
				TileID: tile,
				Limit:  limit,
			})
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum entries to show")
	cmd.Flags().StringVar(&action, "action", "", "only show this action")
	cmd.Flags().StringVar(&tile, "tile", "", "only show this tile")
	return cmd
}
