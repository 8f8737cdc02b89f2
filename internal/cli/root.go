// Package cli contains the cobra commands of the ninegrid binary.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/ninegrid/internal/config"
	"github.com/example/ninegrid/internal/version"
	"github.com/example/ninegrid/internal/wire"
)

// Global flag names
const (
	flagConfig  = "config"
	flagProfile = "profile"
	flagStore   = "store"
	flagDB      = "db"
)

// RootCmd returns the ninegrid root command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ninegrid",
		Short:   "ninegrid - a nine-tile capability map puzzle",
		Version: version.String(),
		Long: `ninegrid is a puzzle of nine tiles, each linked to a page.
Opening a tile marks it complete and navigates to its page; completing
all nine reveals the background pattern and a congratulations message.

Progress is stored per profile in sqlite (default), redis or memory.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "config directory (default ~/.ninegrid)")
	rootCmd.PersistentFlags().String(flagProfile, "", "progress profile")
	rootCmd.PersistentFlags().String(flagStore, "", "store kind: sqlite, redis or memory")
	rootCmd.PersistentFlags().String(flagDB, "", "sqlite database path")

	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(TilesCmd())
	rootCmd.AddCommand(OpenCmd())
	rootCmd.AddCommand(ResetCmd())
	rootCmd.AddCommand(PlayCmd())
	rootCmd.AddCommand(LogCmd())
	rootCmd.AddCommand(ConfigCmd())

	// Developer tools
	rootCmd.AddCommand(DevCmd())

	return rootCmd
}

// configDir returns the --config directory or ~/.ninegrid.
func configDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString(flagConfig)
	if dir != "" {
		return dir, nil
	}
	return config.DefaultDir()
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := configDir(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(flagProfile) {
		cfg.Profile, _ = flags.GetString(flagProfile)
	}
	if flags.Changed(flagStore) {
		cfg.Store, _ = flags.GetString(flagStore)
	}
	if flags.Changed(flagDB) {
		cfg.DBPath, _ = flags.GetString(flagDB)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp resolves the config and wires the application.
func openApp(cmd *cobra.Command, opts wire.Options) (*wire.App, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if opts.Out == nil {
		opts.Out = cmd.OutOrStdout()
	}
	if opts.LogOut == nil {
		opts.LogOut = cmd.ErrOrStderr()
	}
	return wire.New(commandContext(cmd), cfg, opts)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
