package config

import "github.com/google/uuid"

// Normalize assigns missing binding UUIDs so entries stay addressable across
// edits and reloads.
func Normalize(store Store) error {
	return store.UpdateConfig(func(cfg Config) (Config, error) {
		for i := range cfg.Bindings {
			if cfg.Bindings[i].UUID == "" {
				cfg.Bindings[i].UUID = uuid.NewString()
			}
		}

		return cfg, nil
	})
}
