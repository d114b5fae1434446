// Package notify detects new sales between runs and triggers the coin sound.
//
// The signal is the cross-currency sum of the day's totals collapsed into a
// single dimensionless integer. With more than one currency in play a mix
// change can fire or suppress the notification even when no single currency
// total moved comparably; this approximation is deliberate and kept until
// requirements say otherwise.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/coinbar/internal/model"
	"github.com/Veraticus/coinbar/internal/sound"
)

// lastAmountFile holds the previous run's cross-currency sum as a decimal
// integer string.
const lastAmountFile = "last_amount"

// coinSoundFile is the cached synthesized tone.
const coinSoundFile = "coin.wav"

// Notifier compares each run's total against the cached previous total and
// plays the coin sound on an increase.
type Notifier struct {
	player   sound.Player
	cacheDir string
}

// NewNotifier creates a Notifier persisting state under cacheDir.
func NewNotifier(cacheDir string, player sound.Player) *Notifier {
	return &Notifier{
		cacheDir: cacheDir,
		player:   player,
	}
}

// LastAmountPath returns the cache file holding the previous total.
func (n *Notifier) LastAmountPath() string {
	return filepath.Join(n.cacheDir, lastAmountFile)
}

// SoundPath returns the cached coin sound file.
func (n *Notifier) SoundPath() string {
	return filepath.Join(n.cacheDir, coinSoundFile)
}

// CheckAndNotify plays the coin sound if the total increased since the last
// run, then unconditionally persists the current total. No sound plays when
// the previous total is zero: that is the first run of a day (or a reset
// cache), not a new sale. A missing or unparsable cache file reads as zero.
//
// The returned error only ever concerns persisting the new total; the
// notification itself is fire-and-forget.
func (n *Notifier) CheckAndNotify(totals model.Totals) error {
	current := totals.Sum()
	previous := n.readPrevious()

	if current > previous && previous > 0 {
		n.playCoinSound()
	}

	if err := os.MkdirAll(n.cacheDir, 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(n.LastAmountPath(), []byte(strconv.FormatInt(current, 10)), 0600); err != nil {
		return fmt.Errorf("failed to write last amount: %w", err)
	}

	return nil
}

func (n *Notifier) readPrevious() int64 {
	data, err := os.ReadFile(n.LastAmountPath())
	if err != nil {
		return 0
	}
	previous, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return previous
}

func (n *Notifier) playCoinSound() {
	path := n.SoundPath()
	if err := sound.EnsureFile(path); err != nil {
		slog.Debug("Failed to generate coin sound", "path", path, "error", err)
		return
	}
	n.player.Play(path)
}
