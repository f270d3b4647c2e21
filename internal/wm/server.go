package wm

import (
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/timberwm/timber/internal/scene"
)

// Server is the single process-wide window manager context. It is
// constructed once at startup and every mutation goes through it on the
// event loop's goroutine, so no locking happens anywhere below.
type Server struct {
	scene  scene.Scene
	border int

	screens []*Screen
	active  int

	bindings BindingTable
	grabbed  bool

	pending  map[scene.Window]bool
	post     func(Msg)
	quitting bool

	desktopSeq int
}

type Options struct {
	BorderWidth int
}

func NewServer(sc scene.Scene, opts Options) *Server {
	return &Server{
		scene:   sc,
		border:  opts.BorderWidth,
		pending: make(map[scene.Window]bool),
	}
}

func (s *Server) Screens() []*Screen      { return s.screens }
func (s *Server) Bindings() *BindingTable { return &s.bindings }

// SetGrabbed marks an external input grab as holding priority; while set
// there is no current client.
func (s *Server) SetGrabbed(flag bool) { s.grabbed = flag }

// CurrentScreen is the globally active screen, nil before the first output.
func (s *Server) CurrentScreen() *Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[s.active]
}

func (s *Server) CurrentDesktop() *Desktop {
	scr := s.CurrentScreen()
	if scr == nil {
		return nil
	}
	return scr.FocusedDesktop()
}

func (s *Server) CurrentClient() *Client {
	if s.grabbed {
		return nil
	}
	d := s.CurrentDesktop()
	if d == nil {
		return nil
	}
	return d.Focused()
}

func (s *Server) activate(scr *Screen) {
	if idx := slices.Index(s.screens, scr); idx >= 0 {
		s.active = idx
	}
}

func (s *Server) nextDesktopName() string {
	s.desktopSeq++
	return strconv.Itoa(s.desktopSeq)
}

func (s *Server) requestExit() { s.quitting = true }

// FindSiblingScreen returns the neighboring screen in the cycle direction,
// wrapping.
func (s *Server) FindSiblingScreen(cycle Cycle) *Screen {
	n := len(s.screens)
	if n == 0 {
		return nil
	}
	if cycle == CycleNext {
		return s.screens[(s.active+1)%n]
	}
	return s.screens[(s.active-1+n)%n]
}

// FocusScreen brings scr's focused desktop forward, which also marks scr
// globally active.
func (s *Server) FocusScreen(scr *Screen) {
	scr.FocusDesktop(scr.FocusedDesktop())
}

// OnOutputAdded creates a screen for a fresh output with one auto-created
// desktop. The first screen becomes active.
func (s *Server) OnOutputAdded(name string, geom, usable Rect, modes []string) *Screen {
	scr := newScreen(name, geom, usable, modes, s)
	s.screens = append(s.screens, scr)
	scr.AddDesktop(s.nextDesktopName())
	slog.Info("output added", "name", name, "geometry", geom)
	return scr
}

// OnOutputRemoved tears the named screen down. With a sibling screen left
// its desktops are re-parented onto it in order and focus follows; the last
// screen going away force-removes every client and asks the process to exit.
func (s *Server) OnOutputRemoved(name string) {
	idx := slices.IndexFunc(s.screens, func(scr *Screen) bool { return scr.Name == name })
	if idx < 0 {
		return
	}
	scr := s.screens[idx]
	slog.Info("output removed", "name", name)

	if len(s.screens) == 1 {
		for _, d := range scr.desktops {
			for _, c := range d.Clients() {
				if err := d.RemoveClient(c); err != nil {
					panic("wm: client not owned by its desktop")
				}
				s.scene.Destroy(c.Window)
				delete(s.pending, c.Window)
			}
		}
		s.screens = nil
		s.active = 0
		s.requestExit()
		return
	}

	heir := s.screens[(idx+1)%len(s.screens)]
	hadFocus := s.CurrentScreen() == scr
	moved := scr.desktops
	for _, d := range moved {
		d.hide()
		d.visible = false
		d.screen = heir
		heir.desktops = append(heir.desktops, d)
	}
	scr.desktops = nil
	s.screens = slices.Delete(s.screens, idx, idx+1)
	if s.active > idx {
		s.active--
	} else if s.active == idx {
		s.active = slices.Index(s.screens, heir)
	}
	for _, d := range moved {
		d.Recalculate()
	}
	if hadFocus {
		heir.FocusDesktop(heir.FocusedDesktop())
	}
}

// OnClientMapped adopts a freshly mapped toplevel onto the focused desktop
// of the active screen and focuses it.
func (s *Server) OnClientMapped(w scene.Window, title string) *Client {
	scr := s.CurrentScreen()
	if scr == nil {
		slog.Warn("client mapped before any output", "window", w)
		s.scene.Destroy(w)
		return nil
	}
	d := scr.FocusedDesktop()
	c := &Client{UUID: uuid.NewString(), Title: title, Window: w}
	d.AddClient(c)
	d.FocusClient(c, true)
	slog.Debug("client mapped", "window", w, "title", title, "desktop", d.Name)
	return c
}

// OnClientUnmapped removes the client owning w from its desktop.
func (s *Server) OnClientUnmapped(w scene.Window) {
	s.dropWindow(w)
}

// OnSurfaceDestroyed removes the client owning w; the visual is already gone.
func (s *Server) OnSurfaceDestroyed(w scene.Window) {
	s.dropWindow(w)
}

func (s *Server) dropWindow(w scene.Window) {
	c := s.findWindow(w)
	if c == nil {
		return
	}
	d := c.desktop
	if err := d.RemoveClient(c); err != nil {
		panic("wm: client not owned by its desktop")
	}
	delete(s.pending, w)
	slog.Debug("client removed", "window", w, "desktop", d.Name)
}

func (s *Server) findWindow(w scene.Window) *Client {
	for _, scr := range s.screens {
		for _, d := range scr.desktops {
			for _, c := range d.Clients() {
				if c.Window == w {
					return c
				}
			}
		}
	}
	return nil
}

// OnKeyPressed matches a resolved modifier mask plus keysym candidates
// against the binding table. A hit spawns the bound command line detached
// and swallows the event; a miss forwards it unmodified.
func (s *Server) OnKeyPressed(mods uint32, keysyms []uint32) bool {
	b := s.bindings.Match(mods, keysyms)
	if b == nil {
		return false
	}
	if err := Spawn(b.Command); err != nil {
		slog.Error("failed to spawn bound command", "command", b.Command, "error", err)
	}
	return true
}

// resizeAckTimeout bounds how long a size change may stay unacknowledged
// before the pending state is cleared regardless.
const resizeAckTimeout = 50 * time.Millisecond

// syncBox records c's new box and pushes it to the scene. A size change is
// held pending until the client surface acknowledges it or the timer fires,
// whichever comes first; focus notifications are deferred until then.
func (s *Server) syncBox(c *Client, box Rect) {
	resized := box.W != c.Box.W || box.H != c.Box.H
	c.Box = box
	s.scene.Configure(c.Window, box.X, box.Y, box.W, box.H)
	if resized && s.post != nil {
		s.pending[c.Window] = true
		w := c.Window
		time.AfterFunc(resizeAckTimeout, func() { s.post(resizeExpiredMsg{Window: w}) })
	}
}

// OnResizeCommitted clears the pending-resize state for w and lets the held
// focus notification proceed.
func (s *Server) OnResizeCommitted(w scene.Window) {
	if !s.pending[w] {
		return
	}
	delete(s.pending, w)
	s.notifyFocus()
}

func (s *Server) notifyFocus() {
	c := s.CurrentClient()
	if c == nil {
		return
	}
	if c.desktop == nil {
		panic("wm: focus notification for a client without a desktop")
	}
	if s.pending[c.Window] {
		return
	}
	s.scene.NotifyFocus(c.Window)
}
