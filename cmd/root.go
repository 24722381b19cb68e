package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/infrasavings/app"
	"github.com/kilianp07/infrasavings/config"
	"github.com/kilianp07/infrasavings/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "infrasavings",
	Short:         "Build installed capacity, capital cost and land usage tables from solved networks",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the report tables",
	RunE:  runBuild,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(buildCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	_, err = svc.Run(ctx)
	return err
}
