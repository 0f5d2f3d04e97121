package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/store"
)

var getCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show a user and its comments",
	GroupID: "users",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		g, _, err := openGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer g.Close()

		user, err := g.GetByID(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no user with id %d", id)
		}
		if err != nil {
			return err
		}
		return printUser(cmd.OutOrStdout(), user)
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q: must be a positive integer", s)
	}
	return id, nil
}
