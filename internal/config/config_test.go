package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSeedsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timber.yaml")
	store, err := NewStore(NewYAML(path))
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "a missing file is written with the defaults")

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig.BorderWidth, cfg.BorderWidth)
	assert.Equal(t, defaultConfig.Listen, cfg.Listen)
}

func TestStoreRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name   string
		driver Driver
	}{
		{"yaml", NewYAML(filepath.Join(t.TempDir(), "timber.yaml"))},
		{"json", NewJSON(filepath.Join(t.TempDir(), "timber.json"))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewStore(tc.driver)
			require.NoError(t, err)

			err = store.UpdateConfig(func(cfg Config) (Config, error) {
				cfg.BorderWidth = 7
				cfg.Bindings = append(cfg.Bindings, Binding{
					Mods:    []string{"mod4"},
					Keysym:  0x74,
					Command: "xterm",
				})
				return cfg, nil
			})
			require.NoError(t, err)

			cfg, err := store.GetConfig()
			require.NoError(t, err)
			assert.Equal(t, 7, cfg.BorderWidth)
			require.Len(t, cfg.Bindings, 1)
			assert.Equal(t, "xterm", cfg.Bindings[0].Command)
		})
	}
}

func TestNormalizeAssignsUUIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timber.yaml")
	store, err := NewStore(NewYAML(path))
	require.NoError(t, err)

	err = store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.Bindings = []Binding{
			{Mods: []string{"ctrl"}, Keysym: 0x74, Command: "a"},
			{UUID: "keep-me", Mods: []string{"ctrl"}, Keysym: 0x75, Command: "b"},
		}
		return cfg, nil
	})
	require.NoError(t, err)

	require.NoError(t, Normalize(store))

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Bindings, 2)
	assert.NotEmpty(t, cfg.Bindings[0].UUID)
	assert.Equal(t, "keep-me", cfg.Bindings[1].UUID)
}

func TestParseMods(t *testing.T) {
	mask, err := ParseMods([]string{"shift", "ctrl", "mod4"})
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<0|1<<2|1<<6), mask)

	mask, err = ParseMods(nil)
	require.NoError(t, err)
	assert.Zero(t, mask)

	_, err = ParseMods([]string{"hyper"})
	assert.Error(t, err)
}

func TestRuntimeBindings(t *testing.T) {
	cfg := Config{Bindings: []Binding{
		{UUID: "u1", Mods: []string{"mod1"}, Keysym: 0xff0d, Command: "xterm"},
	}}
	out, err := cfg.RuntimeBindings()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint32(1<<3), out[0].Mods)
	assert.Equal(t, uint32(0xff0d), out[0].Keysym)
	assert.Equal(t, "xterm", out[0].Command)

	cfg.Bindings[0].Mods = []string{"bogus"}
	_, err = cfg.RuntimeBindings()
	assert.Error(t, err)
}
