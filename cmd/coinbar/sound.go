package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/coinbar/internal/sound"
)

func soundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sound",
		Short: "Generate and play the coin sound",
		Long: `Generate the coin notification sound (if not already cached) and play it
through the configured audio player. Useful for checking your audio setup
without waiting for a sale.`,
		RunE: runSound,
	}

	cmd.Flags().Bool("regenerate", false, "rewrite the cached sound file before playing")

	return cmd
}

func runSound(cmd *cobra.Command, _ []string) error {
	cacheDir, err := ensureCacheDir()
	if err != nil {
		return fmt.Errorf("failed to prepare cache directory: %w", err)
	}

	path := filepath.Join(cacheDir, "coin.wav")

	regenerate, _ := cmd.Flags().GetBool("regenerate")
	if regenerate {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cached sound: %w", err)
		}
	}

	if err := sound.EnsureFile(path); err != nil {
		return fmt.Errorf("failed to generate sound: %w", err)
	}

	player := sound.ExecPlayer{Command: viper.GetString("player")}
	player.Play(path)

	fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", path)
	return nil
}
