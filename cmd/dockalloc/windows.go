package main

import (
	"fmt"
	"strconv"
	"strings"

	"dock-allocation-service/internal/config"
	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/services"

	"github.com/spf13/cobra"
)

func newWindowsCmd(root *rootOptions) *cobra.Command {
	var (
		window  string
		arrival int
	)
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Show the successor windows left after a dock arrival",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			bounds := cfg.Dock.Bounds()

			consumed := bounds.Hours()
			if window != "" {
				if consumed, err = parseWindow(window); err != nil {
					return err
				}
			}

			successors := services.WindowPartitioner{Bounds: bounds}.Partition(consumed, arrival)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "consumed %s, arrival %d, buffer %d\n", consumed, arrival, bounds.UnloadBuffer)
			if len(successors) == 0 {
				fmt.Fprintln(out, "no successor windows")
				return nil
			}
			for _, w := range successors {
				fmt.Fprintf(out, "successor %s\n", w)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "", "consumed window as BEGIN,END; dock hours when empty")
	cmd.Flags().IntVarP(&arrival, "arrival", "a", 0, "recorded dock arrival")
	_ = cmd.MarkFlagRequired("arrival")
	return cmd
}

func parseWindow(s string) (domain.TimeWindow, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(parts) != 2 {
		return domain.TimeWindow{}, fmt.Errorf("window %q: want BEGIN,END", s)
	}
	begin, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("window %q: begin: %w", s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("window %q: end: %w", s, err)
	}
	return domain.NewTimeWindow(begin, end)
}
