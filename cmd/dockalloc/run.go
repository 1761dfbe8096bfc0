package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dock-allocation-service/internal/app"
	"dock-allocation-service/internal/config"
	"dock-allocation-service/internal/platform/obs"
	"dock-allocation-service/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		output    string
		poolOrder string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one allocation over the configured companies and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(root.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			render, err := renderer(output)
			if err != nil {
				return err
			}

			logger := obs.NewLoggerTo(cmd.ErrOrStderr(), "dockalloc", cfg.Log.Level, "console")
			ctx = logger.WithContext(ctx)

			svc, err := app.New(ctx, cfg, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer svc.Close()

			req := svc.Defaults
			if poolOrder != "" {
				if req.PoolOrder, err = services.ParsePoolOrder(poolOrder); err != nil {
					return err
				}
			}

			report, err := svc.Allocator.Run(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&poolOrder, "pool-order", "", "override pool order: lifo or earliest")
	return cmd
}
