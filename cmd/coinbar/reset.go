package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear cached state",
		Long: `Remove the last-seen amount so the next run starts fresh (no coin sound
will play on the run after a reset). With --all, remove the entire cache
directory including the generated sound file and the history database.`,
		RunE: runReset,
	}

	cmd.Flags().Bool("all", false, "remove the whole cache directory")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	cacheDir, err := resolveCacheDir()
	if err != nil {
		return fmt.Errorf("failed to resolve cache directory: %w", err)
	}

	all, _ := cmd.Flags().GetBool("all")
	if all {
		if err := os.RemoveAll(cacheDir); err != nil {
			return fmt.Errorf("failed to remove cache directory: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", cacheDir)
		return nil
	}

	path := filepath.Join(cacheDir, "last_amount")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to reset")
			return nil
		}
		return fmt.Errorf("failed to remove last amount: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
	return nil
}
