package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/coinbar/internal/model"
)

type fakePlayer struct {
	played []string
}

func (p *fakePlayer) Play(path string) {
	p.played = append(p.played, path)
}

func writeLastAmount(t *testing.T, dir, value string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_amount"), []byte(value), 0600))
}

func readLastAmount(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "last_amount"))
	require.NoError(t, err)
	return string(data)
}

func TestFirstRunDoesNotPlay(t *testing.T) {
	dir := t.TempDir()
	player := &fakePlayer{}
	n := NewNotifier(dir, player)

	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 500}))

	assert.Empty(t, player.played)
	assert.Equal(t, "500", readLastAmount(t, dir))
}

func TestIncreasePlays(t *testing.T) {
	dir := t.TempDir()
	writeLastAmount(t, dir, "500")

	player := &fakePlayer{}
	n := NewNotifier(dir, player)

	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 700}))

	require.Len(t, player.played, 1)
	assert.Equal(t, filepath.Join(dir, "coin.wav"), player.played[0])
	assert.FileExists(t, player.played[0])
	assert.Equal(t, "700", readLastAmount(t, dir))
}

func TestUnchangedDoesNotPlay(t *testing.T) {
	dir := t.TempDir()
	writeLastAmount(t, dir, "700")

	player := &fakePlayer{}
	n := NewNotifier(dir, player)

	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 700}))

	assert.Empty(t, player.played)
}

func TestDecreaseDoesNotPlayButPersists(t *testing.T) {
	dir := t.TempDir()
	writeLastAmount(t, dir, "700")

	player := &fakePlayer{}
	n := NewNotifier(dir, player)

	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 300}))

	assert.Empty(t, player.played)
	// The cache is overwritten unconditionally, even on a decrease.
	assert.Equal(t, "300", readLastAmount(t, dir))
}

func TestGarbledCacheReadsAsZero(t *testing.T) {
	dir := t.TempDir()
	writeLastAmount(t, dir, "not a number")

	player := &fakePlayer{}
	n := NewNotifier(dir, player)

	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 500}))

	// previous=0 suppresses the sound exactly like a missing file.
	assert.Empty(t, player.played)
	assert.Equal(t, "500", readLastAmount(t, dir))
}

func TestCrossCurrencySumIsTheSignal(t *testing.T) {
	dir := t.TempDir()
	writeLastAmount(t, dir, "1000")

	player := &fakePlayer{}
	n := NewNotifier(dir, player)

	// 600 USD + 500 EUR = 1100 > 1000 even though neither currency alone
	// exceeds the previous sum.
	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 600, "EUR": 500}))

	assert.Len(t, player.played, 1)
	assert.Equal(t, "1100", readLastAmount(t, dir))
}

func TestCreatesCacheDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	n := NewNotifier(dir, &fakePlayer{})

	require.NoError(t, n.CheckAndNotify(model.Totals{"USD": 100}))
	assert.Equal(t, "100", readLastAmount(t, dir))
}
