package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/spacedlist/internal/logging"
)

func writeScript(t *testing.T, dir, code string) string {
	t.Helper()
	path := filepath.Join(dir, "demo.lua")
	require.NoError(t, os.WriteFile(path, []byte(code), 0o644))
	return path
}

func TestRunnerRun(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, Output: &buf})
	path := writeScript(t, t.TempDir(), demo+`print("done")`)

	res, err := NewRunner(log, WithCallLimit(1000)).Run(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Len(t, res.Exports, 3)
	assert.Equal(t, []string{"done"}, res.Output)
	assert.Contains(t, buf.String(), res.ID.String())
	assert.Contains(t, buf.String(), `"msg":"done"`)
}

func TestRunnerFreshStatePerRun(t *testing.T) {
	path := writeScript(t, t.TempDir(), `spaced.export("only", spaced.list())`)
	r := NewRunner(nil)

	first, err := r.Run(context.Background(), path)
	require.NoError(t, err)
	second, err := r.Run(context.Background(), path)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, second.Exports, 1)
}

func TestRunnerErrors(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(nil)

	_, err := r.Run(context.Background(), filepath.Join(dir, "missing.lua"))
	require.Error(t, err)

	path := writeScript(t, dir, `error("boom")`)
	_, err = r.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWatch(t *testing.T) {
	old := WatchDebounce
	WatchDebounce = 10 * time.Millisecond
	t.Cleanup(func() { WatchDebounce = old })

	dir := t.TempDir()
	path := writeScript(t, dir, `local x = 1`)
	other := filepath.Join(dir, "other.lua")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(context.Context) {
			calls <- struct{}{}
		})
	}()

	// The watcher starts asynchronously, so keep writing until it reports.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(other, []byte("-- unrelated"), 0o644)
		_ = os.WriteFile(path, []byte("local x = 2"), 0o644)
		select {
		case <-calls:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
