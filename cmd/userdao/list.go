package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all users",
	GroupID: "users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := openGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer g.Close()

		users, err := g.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), users)
		}
		printUserListTable(cmd.OutOrStdout(), users)
		return nil
	},
}
