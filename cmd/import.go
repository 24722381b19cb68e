package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/infrasavings/core/model"
	"github.com/kilianp07/infrasavings/infra/logger"
	"github.com/kilianp07/infrasavings/infra/network"
)

var importOpts struct {
	db  string
	key model.NetworkKey
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a network export in the SQLite network store",
	Args:  cobra.ExactArgs(1),
	RunE:  importNetwork,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importOpts.db, "db", "networks.db", "SQLite network store")
	f.StringVar(&importOpts.key.Scenario, "scenario", "", "scenario id")
	f.StringVar(&importOpts.key.Horizon, "horizon", "", "planning horizon")
	f.StringVar(&importOpts.key.LineLimit, "lineex", "", "line limit, e.g. v1.15")
	f.StringVar(&importOpts.key.Clusters, "clusters", "", "number of clusters")
	f.StringVar(&importOpts.key.SectorOpts, "sector-opts", "", "sector options, e.g. Co2L0.45-1H")
	for _, name := range []string{"scenario", "horizon", "lineex", "clusters", "sector-opts"} {
		_ = importCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(importCmd)
}

func importNetwork(cmd *cobra.Command, args []string) error {
	n, err := network.ReadFile(args[0])
	if err != nil {
		return err
	}
	store, err := network.NewSQLiteStore(importOpts.db)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Save(cmd.Context(), importOpts.key, n); err != nil {
		return fmt.Errorf("save %s: %w", importOpts.key, err)
	}
	logger.New("import").Infof("imported %s as %s (%d generators, %d links, %d stores)",
		args[0], importOpts.key, len(n.Generators), len(n.Links), len(n.Stores))
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List networks held in the SQLite network store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := network.NewSQLiteStore(importOpts.db)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = store.Close() }()
		keys, err := store.Keys(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range keys {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), k.String())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&importOpts.db, "db", "networks.db", "SQLite network store")
	rootCmd.AddCommand(listCmd)
}
