package xscene

import (
	"context"
	"log/slog"

	"github.com/jezek/xgb/xproto"
	"github.com/timberwm/timber/internal/scene"
	"github.com/timberwm/timber/internal/wm"
)

func (s *XScene) String() string { return "xscene.XScene" }

// Serve announces the output and then translates X events into core
// messages until the connection drops or ctx is done. Closing the
// connection is the only way to unblock WaitForEvent.
func (s *XScene) Serve(ctx context.Context) error {
	name, geom, modes := s.OutputGeometry()
	s.post(wm.OutputAddedMsg{Name: name, Geometry: geom, Usable: geom, Modes: modes})

	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	for {
		ev, err := s.conn.WaitForEvent()
		if ev == nil && err == nil {
			// Connection gone; tear the output down so the core exits.
			s.post(wm.OutputRemovedMsg{Name: name})
			return ctx.Err()
		}
		if err != nil {
			slog.Debug("X error", "error", err)
			continue
		}

		switch ev := ev.(type) {
		case xproto.MapRequestEvent:
			xproto.MapWindow(s.conn, ev.Window)
			s.post(wm.ClientMappedMsg{
				Window: scene.Window(ev.Window),
				Title:  s.windowTitle(ev.Window),
			})
		case xproto.UnmapNotifyEvent:
			s.post(wm.ClientUnmappedMsg{Window: scene.Window(ev.Window)})
		case xproto.DestroyNotifyEvent:
			s.post(wm.SurfaceDestroyedMsg{Window: scene.Window(ev.Window)})
		case xproto.ConfigureRequestEvent:
			// The layout engine owns geometry; acknowledge with the
			// current box by letting the next recalculation configure it.
		case xproto.KeyPressEvent:
			s.handleKeyPress(ev)
		default:
			slog.Debug("unhandled X event", "event", ev)
		}
	}
}

func (s *XScene) handleKeyPress(ev xproto.KeyPressEvent) {
	keysyms := make([]uint32, 0, 4)
	for _, ks := range s.keymap[ev.Detail] {
		if ks != 0 {
			keysyms = append(keysyms, uint32(ks))
		}
	}

	swallowC := make(chan bool, 1)
	s.post(wm.KeyPressMsg{
		Mods:     uint32(ev.State),
		Keysyms:  keysyms,
		SwallowC: swallowC,
	})
	if <-swallowC {
		return
	}

	// No binding matched; forward the event unmodified to the focused
	// client.
	if ev.Child != 0 {
		xproto.SendEvent(s.conn, false, ev.Child, xproto.EventMaskKeyPress, string(ev.Bytes()))
	}
}

func (s *XScene) windowTitle(w xproto.Window) string {
	prop, err := xproto.GetProperty(s.conn, false, w, xproto.AtomWmName,
		xproto.AtomString, 0, 64).Reply()
	if err != nil || prop == nil {
		return ""
	}
	return string(prop.Value)
}
