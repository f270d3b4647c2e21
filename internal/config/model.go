package config

import (
	"fmt"

	"github.com/timberwm/timber/internal/wm"
)

var defaultConfig = Config{
	BorderWidth: 2,
	Listen:      "127.0.0.1:9077",
	Bindings:    []Binding{},
}

type Config struct {
	BorderWidth int       `json:"border_width" yaml:"border_width"`
	Listen      string    `json:"listen" yaml:"listen"`
	Bindings    []Binding `json:"bindings" yaml:"bindings"`
}

type Binding struct {
	UUID    string   `json:"uuid" yaml:"uuid"`
	Mods    []string `json:"mods" yaml:"mods"`
	Keysym  uint32   `json:"keysym" yaml:"keysym"`
	Command string   `json:"command" yaml:"command"`
}

// X11 core modifier masks; the names double as the config vocabulary.
var modMasks = map[string]uint32{
	"shift": 1 << 0,
	"lock":  1 << 1,
	"ctrl":  1 << 2,
	"mod1":  1 << 3,
	"mod2":  1 << 4,
	"mod3":  1 << 5,
	"mod4":  1 << 6,
	"mod5":  1 << 7,
}

func ParseMods(names []string) (uint32, error) {
	var mask uint32
	for _, name := range names {
		m, ok := modMasks[name]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
		mask |= m
	}
	return mask, nil
}

// RuntimeBindings translates the configured bindings into the table's form.
func (c Config) RuntimeBindings() ([]wm.Binding, error) {
	out := make([]wm.Binding, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		mask, err := ParseMods(b.Mods)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.UUID, err)
		}
		out = append(out, wm.Binding{
			UUID:    b.UUID,
			Mods:    mask,
			Keysym:  b.Keysym,
			Command: b.Command,
		})
	}
	return out, nil
}
