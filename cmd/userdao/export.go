package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/config"
	"github.com/exparity/userdao/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all users as JSONL",
	Long: `Export every user with its comments as JSONL.

The export is written to --out when given and uploaded to S3 when a bucket is
configured (export.s3_bucket or USERDAO_S3_BUCKET). With neither, it goes to
stdout. With --interval the export repeats until interrupted.`,
	GroupID: "data",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		interval, _ := cmd.Flags().GetDuration("interval")

		g, cfg, err := openGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer g.Close()

		dests, err := exportDestinations(cmd.Context(), out, cfg.Export)
		if err != nil {
			return err
		}
		if len(dests) == 0 {
			return export.ExportJSONL(cmd.Context(), g, cmd.OutOrStdout())
		}

		sched := export.NewScheduler(g, dests, interval, logger)
		if interval <= 0 {
			return sched.RunOnce(cmd.Context())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		sched.Start(ctx)
		<-ctx.Done()
		sched.Stop()
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "write the export to this file")
	exportCmd.Flags().Duration("interval", 0, "repeat the export on this interval (e.g. 15m)")
}

func exportDestinations(ctx context.Context, out string, cfg config.Export) ([]export.Destination, error) {
	var dests []export.Destination
	if out != "" {
		dests = append(dests, export.NewFileDestination(out))
	}
	if cfg.S3Bucket != "" {
		s3, err := export.NewS3Destination(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dests = append(dests, s3)
	}
	return dests, nil
}
