package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/ninegrid/internal/config"
	"github.com/example/ninegrid/internal/db"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development utilities",
		Hidden: true,
	}

	cmd.AddCommand(devSeedCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo profile with fixture data",
		Long: `Replace the demo profile in the sqlite database with four completed
tiles and a short activity history.

Try it with: ninegrid --profile demo status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Store != config.StoreSQLite {
				return fmt.Errorf("dev seed needs the sqlite store, not %s", cfg.Store)
			}

			path := cfg.DBPath
			if path == "" {
				if path, err = db.DefaultPath(); err != nil {
					return err
				}
			}

			database, err := db.Open(path)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Fprintf(out(cmd), "✓ Seeded profile %q in %s\n", db.DemoProfile, path)
			return nil
		},
	}
}
