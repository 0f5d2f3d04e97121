package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/dao"
	"github.com/exparity/userdao/internal/export"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Save every user from a JSONL export",
	Long: `Read a JSONL export (file, or stdin when no file or "-" is given) and save
each user as a new row. Ids in the export are ignored; each user is saved in
its own transaction and the import stops at the first failure.`,
	GroupID: "data",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		g, _, err := openGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer g.Close()

		n, err := importUsers(cmd.Context(), g, in)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d users\n", n)
		return err
	},
}

// importUsers saves every user in r and returns how many were saved.
func importUsers(ctx context.Context, d dao.UserDAO, r io.Reader) (int, error) {
	users, err := export.ReadJSONL(r)
	if err != nil {
		return 0, err
	}
	for i, u := range users {
		oldID := u.ID
		u.ID = 0
		for _, c := range u.Comments {
			c.ID = 0
		}
		if _, err := d.Save(ctx, u); err != nil {
			return i, fmt.Errorf("import user %d: %w", oldID, err)
		}
	}
	return len(users), nil
}
