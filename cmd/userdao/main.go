package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/config"
	"github.com/exparity/userdao/internal/dao"
	"github.com/exparity/userdao/internal/ui"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool

	logger = slog.Default()
)

func defaultConfigPath() string {
	if s := os.Getenv("USERDAO_CONFIG"); s != "" {
		return s
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:          "userdao <command>",
	Short:        "Save, load and verify users and their comments",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		ui.SetColor(ui.ShouldUseColor())
		return nil
	},
}

// openGateway loads the configuration and connects a gateway. The caller
// closes the gateway.
func openGateway(ctx context.Context) (*dao.Gateway, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	g, err := dao.OpenConfig(ctx, cfg, dao.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return g, cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "configuration file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "users", Title: "Users:"},
		&cobra.Group{ID: "verify", Title: "Verification:"},
		&cobra.Group{ID: "data", Title: "Data:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Users
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)

	// Verification
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(watchCmd)

	// Data
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
