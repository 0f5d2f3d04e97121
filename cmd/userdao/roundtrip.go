package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/beanmatch"
	"github.com/exparity/userdao/internal/dao"
	"github.com/exparity/userdao/internal/fixture"
	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/ui"
)

type roundTripOptions struct {
	count     int
	comments  int // negative: random between 0 and fixture.DefaultMaxComments
	seed      int64
	tolerance time.Duration
}

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Save random users, load them back and compare",
	Long: `Generate random users, save each one, load it back by id and compare
the two graphs field by field. Timestamps are compared with a tolerance.
Exits non-zero when any user does not come back the same.`,
	Example: `  userdao roundtrip --count 20 --comments 3
  userdao roundtrip --seed 42 --tolerance 1us`,
	GroupID: "verify",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		comments, _ := cmd.Flags().GetInt("comments")
		seed, _ := cmd.Flags().GetInt64("seed")
		tolerance, _ := cmd.Flags().GetDuration("tolerance")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		g, _, err := openGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer g.Close()

		return runRoundTrip(cmd.Context(), g, roundTripOptions{
			count:     count,
			comments:  comments,
			seed:      seed,
			tolerance: tolerance,
		}, cmd.OutOrStdout())
	},
}

func init() {
	roundtripCmd.Flags().Int("count", 1, "number of users to round trip")
	roundtripCmd.Flags().Int("comments", -1, "comments per user (-1 for random)")
	roundtripCmd.Flags().Int64("seed", 0, "random seed (0 picks one)")
	roundtripCmd.Flags().Duration("tolerance", beanmatch.DefaultTimeTolerance, "allowed timestamp difference")
}

func runRoundTrip(ctx context.Context, d dao.UserDAO, opts roundTripOptions, w io.Writer) error {
	fmt.Fprintln(w, ui.RenderMuted(fmt.Sprintf("seed %d", opts.seed)))
	f := fixture.New(opts.seed)

	failures := 0
	for range opts.count {
		var want *model.User
		if opts.comments < 0 {
			want = fixture.RandomUser(f)
		} else {
			want = fixture.RandomUserWithComments(f, opts.comments)
		}

		if _, err := d.Save(ctx, want); err != nil {
			return err
		}
		got, err := d.GetByID(ctx, want.ID)
		if err != nil {
			return err
		}

		var problem string
		if beanmatch.SameInstance(want, got) {
			problem = "loaded user is the instance that was saved"
		} else {
			problem = beanmatch.Diff(want, got, beanmatch.Options(opts.tolerance)...)
		}

		if problem == "" {
			fmt.Fprintf(w, "%s user %d (%d comments)\n", ui.RenderPass("PASS"), want.ID, len(want.Comments))
			continue
		}
		failures++
		fmt.Fprintf(w, "%s user %d (%d comments)\n%s\n", ui.RenderFail("FAIL"), want.ID, len(want.Comments), problem)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d round trips failed (seed %d)", failures, opts.count, opts.seed)
	}
	return nil
}
