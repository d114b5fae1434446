package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/coinbar/internal/history"
	"github.com/Veraticus/coinbar/internal/menu"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show gross volume for recent days",
		Long: `List the per-currency gross volume recorded for recent days. Each run of
the menu updates the current day's snapshot, so past days reflect the last
refresh of that day.`,
		RunE: runHistory,
	}

	cmd.Flags().Int("days", 7, "number of days to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cacheDir, err := resolveCacheDir()
	if err != nil {
		return fmt.Errorf("failed to resolve cache directory: %w", err)
	}

	store, err := history.NewStore(filepath.Join(cacheDir, historyDBFile))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	days, _ := cmd.Flags().GetInt("days")
	recorded, err := store.RecentDays(cmd.Context(), days)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(recorded) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet")
		return nil
	}

	for _, day := range recorded {
		parts := make([]string, 0, len(day.Totals))
		for _, currency := range day.Totals.Currencies() {
			parts = append(parts, menu.FormatAmount(day.Totals[currency], currency))
		}
		if len(parts) == 0 {
			parts = append(parts, "0.00")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", day.Day.Format("02.01.2006"), strings.Join(parts, " | "))
	}

	return nil
}
