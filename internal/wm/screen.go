package wm

import (
	"slices"

	"github.com/google/uuid"
)

// Screen is one output with its cyclic list of desktops. The list never goes
// below one desktop; sibling lookup is index arithmetic modulo length.
type Screen struct {
	UUID     string
	Name     string
	Geometry Rect
	Usable   Rect
	Modes    []string

	desktops []*Desktop
	focused  int
	server   *Server
}

func (s *Screen) Desktops() []*Desktop { return s.desktops }

func (s *Screen) FocusedDesktop() *Desktop {
	if len(s.desktops) == 0 {
		return nil
	}
	return s.desktops[s.focused]
}

// AddDesktop creates a desktop right after the focused one, or at the list
// start on a fresh screen, and focuses it.
func (s *Screen) AddDesktop(name string) *Desktop {
	d := newDesktop(name, s)
	at := 0
	if len(s.desktops) > 0 {
		at = s.focused + 1
	}
	s.desktops = slices.Insert(s.desktops, at, d)
	s.FocusDesktop(d)
	return d
}

// RemoveDesktop deletes d from the screen. The screen's last desktop can
// never be removed and a desktop must be empty to go.
func (s *Screen) RemoveDesktop(d *Desktop) error {
	idx := slices.Index(s.desktops, d)
	if idx < 0 || len(s.desktops) == 1 {
		return ErrDesktopNotFound
	}
	if !d.Empty() {
		return ErrDesktopNotEmpty
	}
	if idx == s.focused {
		s.FocusDesktop(s.desktops[(idx+1)%len(s.desktops)])
	}
	s.desktops = slices.Delete(s.desktops, idx, idx+1)
	if s.focused > idx {
		s.focused--
	}
	d.destroy()
	return nil
}

// FocusDesktop hides the previously focused desktop's layers, reveals d,
// restores d's client focus and marks this screen globally active.
func (s *Screen) FocusDesktop(d *Desktop) {
	idx := slices.Index(s.desktops, d)
	if idx < 0 {
		panic("wm: desktop not on this screen")
	}
	if prev := s.FocusedDesktop(); prev != nil && prev != d {
		prev.hide()
		prev.visible = false
	}
	s.focused = idx
	d.visible = true
	d.show()
	d.FocusClient(d.focus, true)
	s.server.activate(s)
}

// FindSibling returns the neighboring desktop in the cycle direction,
// wrapping around the list.
func (s *Screen) FindSibling(cycle Cycle) *Desktop {
	n := len(s.desktops)
	if n == 0 {
		return nil
	}
	if cycle == CycleNext {
		return s.desktops[(s.focused+1)%n]
	}
	return s.desktops[(s.focused-1+n)%n]
}

// SwapDesktops reorders a and b in the list; focus follows its desktop.
// Both must live on this screen.
func (s *Screen) SwapDesktops(a, b *Desktop) {
	ia, ib := slices.Index(s.desktops, a), slices.Index(s.desktops, b)
	if ia < 0 || ib < 0 {
		panic("wm: swapping desktops across screens")
	}
	s.desktops[ia], s.desktops[ib] = s.desktops[ib], s.desktops[ia]
	switch s.focused {
	case ia:
		s.focused = ib
	case ib:
		s.focused = ia
	}
}

func newScreen(name string, geom, usable Rect, modes []string, server *Server) *Screen {
	return &Screen{
		UUID:     uuid.NewString(),
		Name:     name,
		Geometry: geom,
		Usable:   usable,
		Modes:    modes,
		server:   server,
	}
}
