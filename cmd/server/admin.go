package main

import (
	"fmt"

	"expertqa/internal/db"
	"github.com/spf13/cobra"
)

func newAdminCmd(a *app) *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "admin <name>",
		Short: "Grant or revoke admin rights for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dbConn, err := db.Connect(ctx, a.cfg.DBURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer dbConn.Close()

			name := args[0]
			if err := db.SetAdmin(ctx, dbConn.Pool, a.cfg.RequestTimeout, name, !revoke); err != nil {
				return err
			}
			a.logger.Info("admin flag updated", "name", name, "admin", !revoke)
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove admin rights instead of granting them")
	return cmd
}
