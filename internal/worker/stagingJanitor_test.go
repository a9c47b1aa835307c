package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/gif-overlay/internal/pkg/storage"
)

func stageAged(t *testing.T, s storage.FileStorage, name string, age time.Duration) string {
	t.Helper()
	path, err := s.Stage(name, strings.NewReader("GIF89a"))
	require.NoError(t, err)
	mod := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	s := storage.NewFileStorage(t.TempDir())
	stale := stageAged(t, s, "stale.gif", time.Hour)
	fresh := stageAged(t, s, "fresh.gif", time.Second)

	janitor := NewStagingJanitor(s, nil, time.Minute, 15*time.Minute)

	assert.Equal(t, 1, janitor.sweep())
	assert.False(t, s.Exists(stale))
	assert.True(t, s.Exists(fresh))
}

func TestStartSweepsImmediatelyAndStops(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewFileStorage(dir)
	stale := stageAged(t, s, "stale.gif", time.Hour)

	janitor := NewStagingJanitor(s, nil, time.Hour, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		janitor.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(stale)
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}

	entries, err := os.ReadDir(filepath.Clean(dir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
