package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/coinbar/internal/common"
	"github.com/Veraticus/coinbar/internal/config"
	"github.com/Veraticus/coinbar/internal/history"
	"github.com/Veraticus/coinbar/internal/keyring"
	"github.com/Veraticus/coinbar/internal/menu"
	"github.com/Veraticus/coinbar/internal/model"
	"github.com/Veraticus/coinbar/internal/notify"
	"github.com/Veraticus/coinbar/internal/sound"
	"github.com/Veraticus/coinbar/internal/stripe"
)

// historyDBFile is the history database inside the cache directory.
const historyDBFile = "history.db"

// menuApp wires the run-once pipeline: credential lookup, fetch, notify,
// record, render. Every failure past the credential check renders as a menu
// and the process still exits 0; the host parses stdout regardless.
type menuApp struct {
	out    io.Writer
	creds  func(ctx context.Context) (string, bool)
	fetch  func(ctx context.Context, apiKey string, since time.Time) (model.Totals, error)
	notify func(totals model.Totals) error
	record func(ctx context.Context, day time.Time, totals model.Totals) error
	now    func() time.Time
}

func (a *menuApp) run(ctx context.Context) error {
	r := menu.NewRenderer(a.out).WithClock(a.now)

	apiKey, ok := a.creds(ctx)
	if !ok {
		r.NoCredential()
		return nil
	}

	now := a.now()
	totals, err := a.fetch(ctx, apiKey, stripe.StartOfDay(now))
	if err != nil {
		slog.Warn("Fetch failed", "error", err)
		r.FetchError(err)
		return nil
	}

	// Cache and history writes are best-effort: a filesystem problem must
	// not hide a successful fetch behind an error menu.
	if a.notify != nil {
		if err := a.notify(totals); err != nil {
			common.LogWarn("Failed to persist notification cache", common.Fields{"error": err})
		}
	}
	if a.record != nil {
		if err := a.record(ctx, now, totals); err != nil {
			common.LogWarn("Failed to record history", common.Fields{"error": err})
		}
	}

	r.Totals(totals)
	return nil
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cacheDir, err := resolveCacheDir()
	if err != nil {
		slog.Warn("Failed to resolve cache directory", "error", err)
	}

	client := func(ctx context.Context, apiKey string, since time.Time) (model.Totals, error) {
		c := stripe.NewClient(apiKey,
			stripe.WithBaseURL(viper.GetString("stripe.base_url")),
			stripe.WithPageLimit(viper.GetInt("stripe.page_limit")))
		return c.GrossVolume(ctx, since)
	}

	app := &menuApp{
		out:   cmd.OutOrStdout(),
		creds: keyring.NewLookup().APIKey,
		fetch: client,
		now:   time.Now,
	}

	if cacheDir != "" {
		notifier := notify.NewNotifier(cacheDir, sound.ExecPlayer{Command: viper.GetString("player")})
		app.notify = notifier.CheckAndNotify
		app.record = recordHistory(cacheDir)
	}

	return app.run(cmd.Context())
}

// recordHistory opens the history store lazily, on the success path only.
func recordHistory(cacheDir string) func(ctx context.Context, day time.Time, totals model.Totals) error {
	return func(ctx context.Context, day time.Time, totals model.Totals) error {
		store, err := history.NewStore(filepath.Join(cacheDir, historyDBFile))
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.RecordDay(ctx, day, totals)
	}
}

func resolveCacheDir() (string, error) {
	if dir := viper.GetString("cache_dir"); dir != "" {
		return config.ExpandPath(dir), nil
	}
	return config.DefaultCacheDir()
}

// ensureCacheDir is shared by the human-facing subcommands that need the
// directory to exist up front.
func ensureCacheDir() (string, error) {
	dir, err := resolveCacheDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
