package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/relaypanel/internal/sessions"
	"github.com/iammorganparry/relaypanel/internal/store"
)

func newSessionsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect or change button sessions without the daemon",
		Long:  "Reads and writes the session store directly. A running daemon keeps its\n" +
			"own copy in memory and picks up offline changes on its next start.",
	}

	cmd.AddCommand(
		newSessionsListCmd(flags),
		newSessionsSetCmd(flags),
	)

	return cmd
}

func newSessionsListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the session assigned to each button",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(flags, func(r *sessions.Registry) error {
				for i, s := range r.All() {
					if s == "" {
						s = "-"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, s)
				}
				return nil
			})
		},
	}
}

func newSessionsSetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <button> [session]",
		Short: "Assign a session to a button; omit the session to clear it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			button, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("button must be an integer: %q", args[0])
			}
			session := ""
			if len(args) == 2 {
				session = args[1]
			}

			return withRegistry(flags, func(r *sessions.Registry) error {
				if err := r.Set(button, session); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "button %d -> %q\n", button, session)
				return nil
			})
		},
	}
}

func withRegistry(flags *rootFlags, fn func(*sessions.Registry) error) error {
	cfg, err := loadConfig(flags, nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	r, err := sessions.Load(store.NewKVStore(db))
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	return fn(r)
}
