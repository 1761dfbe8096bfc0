package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfgPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "dockalloc",
		Short:        "Allocate shared dock windows to companies",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json); built-in sample network when empty")

	cmd.AddCommand(newRunCmd(opts), newWindowsCmd(opts))
	return cmd
}
