// Package xscene implements the scene collaborator on top of X11. Clients
// are real X windows reparented into per-desktop container windows; group
// visibility is map/unmap.
package xscene

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/timberwm/timber/internal/scene"
	"github.com/timberwm/timber/internal/wm"
)

type XScene struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	post   func(wm.Msg)

	border         int
	keymap         map[xproto.Keycode][]xproto.Keysym
	atomProtocols  xproto.Atom
	atomDeleteWin  xproto.Atom
	activeBorder   uint32
	inactiveBorder uint32
}

func New(conn *xgb.Conn, border int, post func(wm.Msg)) (*XScene, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	s := &XScene{
		conn:           conn,
		screen:         screen,
		post:           post,
		border:         border,
		keymap:         make(map[xproto.Keycode][]xproto.Keysym),
		activeBorder:   0xff5f87af,
		inactiveBorder: 0xff3a3a3a,
	}

	// Becoming the window manager: only one client may select substructure
	// redirection on the root.
	if err := xproto.ChangeWindowAttributesChecked(conn, screen.Root,
		xproto.CwEventMask,
		[]uint32{
			xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify |
				xproto.EventMaskKeyPress,
		}).Check(); err != nil {
		return nil, fmt.Errorf("register as window manager: %w", err)
	}

	cursor, err := CreateCursor(conn, LeftPtr)
	if err != nil {
		return nil, err
	}
	if err := xproto.ChangeWindowAttributesChecked(conn, screen.Root,
		xproto.CwCursor, []uint32{uint32(cursor)}).Check(); err != nil {
		return nil, err
	}

	if err := s.internAtoms(); err != nil {
		return nil, err
	}
	if err := s.loadKeymap(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *XScene) internAtoms() error {
	var err error
	s.atomProtocols, err = s.internAtom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	s.atomDeleteWin, err = s.internAtom("WM_DELETE_WINDOW")
	return err
}

func (s *XScene) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(s.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func (s *XScene) loadKeymap() error {
	const low, high = 8, 255
	reply, err := xproto.GetKeyboardMapping(s.conn, low, high-low+1).Reply()
	if err != nil {
		return err
	}
	per := int(reply.KeysymsPerKeycode)
	for i := 0; i <= high-low; i++ {
		code := xproto.Keycode(low + i)
		s.keymap[code] = reply.Keysyms[i*per : (i+1)*per]
	}
	return nil
}

// OutputGeometry describes the root screen; X geometry changes arrive as
// ConfigureNotify on the root.
func (s *XScene) OutputGeometry() (name string, geom wm.Rect, modes []string) {
	geom = wm.Rect{W: int(s.screen.WidthInPixels), H: int(s.screen.HeightInPixels)}
	mode := fmt.Sprintf("%dx%d", geom.W, geom.H)
	return "X11-0", geom, []string{mode}
}

// groupAttributes is the attribute set for desktop container windows.
// Clients get reparented into these, so unmap and destroy notifications for
// them are delivered on the container, not the root; the containers must
// carry the substructure mask themselves.
func groupAttributes() (uint16, []uint32) {
	return xproto.CwBackPixel | xproto.CwEventMask,
		[]uint32{0, xproto.EventMaskSubstructureNotify}
}

func (s *XScene) CreateGroup() scene.Group {
	wid, err := xproto.NewWindowId(s.conn)
	if err != nil {
		panic(err)
	}

	// Container window covering the whole screen, kept unmapped until the
	// desktop is revealed.
	mask, values := groupAttributes()
	if err := xproto.CreateWindowChecked(s.conn, s.screen.RootDepth,
		wid, s.screen.Root,
		0, 0, s.screen.WidthInPixels, s.screen.HeightInPixels, 0,
		xproto.WindowClassInputOutput, s.screen.RootVisual,
		uint32(mask), values).Check(); err != nil {
		panic(err)
	}

	return scene.Group(wid)
}

func (s *XScene) DestroyGroup(g scene.Group) {
	xproto.DestroyWindow(s.conn, xproto.Window(g))
}

func (s *XScene) SetGroupVisible(g scene.Group, visible bool) {
	if visible {
		xproto.MapWindow(s.conn, xproto.Window(g))
		return
	}
	xproto.UnmapWindow(s.conn, xproto.Window(g))
}

func (s *XScene) Reparent(w scene.Window, g scene.Group) {
	xproto.ReparentWindow(s.conn, xproto.Window(w), xproto.Window(g), 0, 0)
}

func (s *XScene) Configure(w scene.Window, x, y, width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	// The core hands in the box inset by the border; the X border is drawn
	// outside the window, so shift back to keep the outer edge on the tile.
	if err := xproto.ConfigureWindowChecked(s.conn, xproto.Window(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{
			uint32(x - s.border), uint32(y - s.border),
			uint32(width), uint32(height),
			uint32(s.border),
		}).Check(); err != nil {
		// The window may already be gone; the destroy notification is on
		// its way.
		return
	}
	s.post(wm.ResizeCommittedMsg{Window: w})
}

func (s *XScene) SetActivated(w scene.Window, activated bool) {
	border := s.inactiveBorder
	if activated {
		border = s.activeBorder
	}
	xproto.ChangeWindowAttributes(s.conn, xproto.Window(w),
		xproto.CwBorderPixel, []uint32{border})
}

func (s *XScene) FocusInput(w scene.Window) {
	target := xproto.Window(w)
	if w == scene.None {
		target = s.screen.Root
	}
	xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot, target, xproto.TimeCurrentTime)
}

func (s *XScene) NotifyFocus(w scene.Window) {
	xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot, xproto.Window(w), xproto.TimeCurrentTime)
}

func (s *XScene) CloseClient(w scene.Window) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   s.atomProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(s.atomDeleteWin),
			uint32(xproto.TimeCurrentTime),
			0,
			0,
			0,
		}),
	}
	xproto.SendEvent(s.conn, false, xproto.Window(w), xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (s *XScene) Destroy(w scene.Window) {
	xproto.DestroyWindow(s.conn, xproto.Window(w))
}

var _ scene.Scene = (*XScene)(nil)
