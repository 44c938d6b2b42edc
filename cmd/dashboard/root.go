package main

import (
	"fmt"
	"io"

	"github.com/robsahakyan/mining-pools/internal/client"
	"github.com/robsahakyan/mining-pools/internal/config"
	"github.com/robsahakyan/mining-pools/internal/dashboard"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd builds the dashboard CLI writing its output to out
func newRootCmd(out io.Writer) *cobra.Command {
	var apiURL string

	newStore := func() (*dashboard.Store, error) {
		if err := config.ValidateAPIURL(apiURL); err != nil {
			return nil, err
		}
		gateway, err := client.New(apiURL)
		if err != nil {
			return nil, err
		}
		return dashboard.NewStore(gateway), nil
	}

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Read-only view of the mining pools API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClientWithURL(apiURL)
			if err != nil {
				return err
			}
			logrus.SetLevel(cfg.LogLevel)
			apiURL = cfg.APIURL
			return nil
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "mining pools API base URL (default $MINING_POOLS_API_URL or http://localhost:8080)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all mining pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			fetchErr := store.FetchPools(cmd.Context())
			if err := dashboard.RenderTable(out, store.State()); err != nil {
				return err
			}
			if fetchErr != nil {
				return fmt.Errorf("fetch mining pools: %w", fetchErr)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one mining pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer store.ClearSelectedPool()

			fetchErr := store.FetchPoolDetail(cmd.Context(), args[0])
			if err := dashboard.RenderDetail(out, store.State()); err != nil {
				return err
			}
			if fetchErr != nil {
				return fmt.Errorf("fetch mining pool %s: %w", args[0], fetchErr)
			}
			return nil
		},
	}

	root.AddCommand(list, show)
	return root
}
