package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vango-dev/contact/internal/config"
	"github.com/vango-dev/contact/internal/errors"
	"github.com/vango-dev/contact/pkg/inbox"
)

func inboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Read delivered submissions",
	}
	cmd.AddCommand(inboxListCmd())
	return cmd
}

func inboxListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest submissions from the SQLite inbox",
		Long: `List submissions stored by the sqlite sink, newest first, one JSON
object per line. The database is taken from inbox.sqlite.path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}
			if cfg.Inbox.SQLite.Path == "" {
				return errors.New("C105").WithKey("inbox.sqlite.path")
			}

			ctx := cmd.Context()
			db, err := inbox.OpenSQLite(ctx, cfg.Inbox.SQLite.Path)
			if err != nil {
				return errors.New("C300").WithKey(cfg.Inbox.SQLite.Path).Wrap(err)
			}
			defer db.Close()

			subs, err := db.List(ctx, limit)
			if err != nil {
				return errors.New("C300").WithKey(cfg.Inbox.SQLite.Path).Wrap(err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, sub := range subs {
				if err := enc.Encode(sub); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of submissions")

	return cmd
}
