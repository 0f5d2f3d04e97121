package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/model"
)

var saveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Save a user read as JSON from a file or stdin",
	Long: `Save a user and its comments in one transaction.

The user is read as JSON from the given file, or from stdin when no file
(or "-") is given. Any ids in the input are ignored; new ids are assigned.`,
	Example: `  userdao save jane.json
  userdao save --json < jane.json`,
	GroupID: "users",
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

		user, err := decodeUser(in)
		if err != nil {
			return err
		}

		g, _, err := openGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer g.Close()

		if _, err := g.Save(cmd.Context(), user); err != nil {
			return err
		}
		return printUser(cmd.OutOrStdout(), user)
	},
}

// decodeUser reads a single user from r. Ids are cleared so the store
// assigns fresh ones.
func decodeUser(r io.Reader) (*model.User, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var u model.User
	if err := dec.Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	u.ID = 0
	if u.Comments == nil {
		u.Comments = []*model.Comment{}
	}
	for i, c := range u.Comments {
		if c == nil {
			return nil, fmt.Errorf("decode user: comment %d is null", i)
		}
		c.ID = 0
	}
	return &u, nil
}
