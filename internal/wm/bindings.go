package wm

import "github.com/google/uuid"

// Binding maps a (modifier mask, keysym) chord to a shell command line.
type Binding struct {
	UUID    string
	Mods    uint32
	Keysym  uint32
	Command string
}

// BindingTable keeps bindings in insertion order; matching scans for the
// first exact hit.
type BindingTable struct {
	entries []Binding
}

func (t *BindingTable) Entries() []Binding { return t.entries }
func (t *BindingTable) Len() int           { return len(t.entries) }

// Add upserts by (mods, keysym): an existing chord keeps its slot and gets
// the new command. A zero keysym is rejected.
func (t *BindingTable) Add(b Binding) error {
	if b.Keysym == 0 {
		return ErrInvalidParameter
	}
	if b.UUID == "" {
		b.UUID = uuid.NewString()
	}
	for i := range t.entries {
		if t.entries[i].Mods == b.Mods && t.entries[i].Keysym == b.Keysym {
			t.entries[i].Command = b.Command
			return nil
		}
	}
	t.entries = append(t.entries, b)
	return nil
}

// Replace swaps the whole table, used when the config file is re-applied.
func (t *BindingTable) Replace(entries []Binding) {
	t.entries = entries
}

// Match scans in insertion order for the first binding whose modifier mask
// and keysym match; candidates covers layout-level keysym ambiguity.
func (t *BindingTable) Match(mods uint32, candidates []uint32) *Binding {
	for i := range t.entries {
		if t.entries[i].Mods != mods {
			continue
		}
		for _, ks := range candidates {
			if t.entries[i].Keysym == ks {
				return &t.entries[i]
			}
		}
	}
	return nil
}
