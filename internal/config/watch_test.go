package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSeesFileReplacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timber.yaml")
	store, err := NewStore(NewYAML(path))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan Config, 1)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- Watch(ctx, store, path, func(cfg Config) {
			select {
			case changed <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to arm before the write lands.
	time.Sleep(100 * time.Millisecond)

	err = store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.BorderWidth = 9
		return cfg, nil
	})
	require.NoError(t, err)

	select {
	case cfg := <-changed:
		assert.Equal(t, 9, cfg.BorderWidth)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	select {
	case err := <-watchErr:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
