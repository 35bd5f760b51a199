package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iammorganparry/relaypanel/internal/config"
)

type rootFlags struct {
	envFile string
	dbPath  string
}

// NewRootCmd creates the top-level "relayd" command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "relayd",
		Short:         "Relay and button panel controller",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides RELAYD_DB_PATH)")

	serve := newServeCmd(flags)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newSessionsCmd(flags),
	)

	return root
}

// loadConfig reads .env, the environment, then applies flags that were set.
func loadConfig(flags *rootFlags, fs *pflag.FlagSet) (*config.Config, error) {
	if err := loadDotEnv(flags.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if fs != nil {
		if fs.Changed("port") {
			cfg.Port, _ = fs.GetInt("port")
		}
		if fs.Changed("board") {
			cfg.BoardFile, _ = fs.GetString("board")
		}
		if fs.Changed("no-mdns") {
			noMDNS, _ := fs.GetBool("no-mdns")
			cfg.MDNSEnabled = !noMDNS
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
