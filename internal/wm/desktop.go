package wm

import (
	"github.com/google/uuid"
	"github.com/timberwm/timber/internal/scene"
)

// Desktop owns one tree of clients plus a focus reference and a fullscreen
// flag. It is a member of exactly one screen's cyclic desktop list.
type Desktop struct {
	UUID       string
	Name       string
	Fullscreen bool

	tree    *Tree
	focus   *Client
	screen  *Screen
	visible bool

	content scene.Group
	overlay scene.Group // fullscreen layer
}

func newDesktop(name string, s *Screen) *Desktop {
	return &Desktop{
		UUID:    uuid.NewString(),
		Name:    name,
		tree:    NewTree(),
		screen:  s,
		content: s.server.scene.CreateGroup(),
		overlay: s.server.scene.CreateGroup(),
	}
}

func (d *Desktop) Empty() bool        { return d.tree.Empty() }
func (d *Desktop) Focused() *Client   { return d.focus }
func (d *Desktop) Clients() []*Client { return d.tree.Clients() }
func (d *Desktop) Screen() *Screen    { return d.screen }

func (d *Desktop) scene() scene.Scene { return d.screen.server.scene }

func (d *Desktop) show() {
	d.scene().SetGroupVisible(d.content, !d.Fullscreen)
	d.scene().SetGroupVisible(d.overlay, d.Fullscreen)
}

func (d *Desktop) hide() {
	d.scene().SetGroupVisible(d.content, false)
	d.scene().SetGroupVisible(d.overlay, false)
}

func (d *Desktop) destroy() {
	d.scene().DestroyGroup(d.content)
	d.scene().DestroyGroup(d.overlay)
}

// AddClient inserts c at the focused leaf, or as the root of an empty tree,
// moves its visual into the content group, drops fullscreen and lays the
// desktop out again. The desktop's focus is untouched unless it was empty.
func (d *Desktop) AddClient(c *Client) {
	at := nilNode
	if !d.tree.Empty() {
		at = d.tree.FirstLeaf(d.tree.root)
		if d.focus != nil {
			at = d.focus.node
		}
	}
	d.tree.Insert(at, c)
	c.desktop = d
	c.Border = d.screen.server.border
	d.scene().Reparent(c.Window, d.content)
	d.SetFullscreen(false)
	if d.focus == nil {
		d.focus = c
	}
	d.Recalculate()
}

// RemoveClient takes c out of the tree. When c held the focus, the new focus
// is the sibling found toward the side opposite the slot c occupied, which
// keeps focus on the content promoted into c's place.
func (d *Desktop) RemoveClient(c *Client) error {
	if c.desktop != d || c.node == nilNode {
		return ErrClientNotFound
	}

	var replacement *Client
	if d.focus == c {
		cycle := CyclePrev
		if p := d.tree.parentOf(c.node); p != nilNode && d.tree.side(p, c.node) == CyclePrev {
			cycle = CycleNext
		}
		if sib := d.tree.FindSibling(c.node, cycle); sib != nilNode {
			replacement = d.tree.nodes[sib].client
		}
	}

	d.tree.Remove(c.node)
	c.desktop = nil
	if d.focus == c {
		d.focus = replacement
	}
	d.SetFullscreen(false)
	d.Recalculate()
	return nil
}

// SetFullscreen toggles between the content layer and the fullscreen layer,
// migrating the focused client's visual between them.
func (d *Desktop) SetFullscreen(flag bool) {
	if d.Fullscreen == flag {
		return
	}
	d.Fullscreen = flag
	if d.focus != nil {
		target := d.content
		if flag {
			target = d.overlay
		}
		d.scene().Reparent(d.focus.Window, target)
	}
	if d.visible {
		d.show()
	}
	d.Recalculate()
}

// FocusClient makes c the desktop's focused client, unfocusing the previous
// one first. A change of target always drops fullscreen. Input routing is
// only touched when adjustInput is set. c may be nil.
func (d *Desktop) FocusClient(c *Client, adjustInput bool) {
	if c != nil && c.desktop != d {
		panic("wm: focus target belongs to another desktop")
	}
	if d.focus != c {
		d.SetFullscreen(false)
	}
	if d.focus != nil && d.focus != c {
		d.scene().SetActivated(d.focus.Window, false)
	}
	d.focus = c
	if c != nil {
		d.scene().SetActivated(c.Window, true)
		if adjustInput {
			d.scene().FocusInput(c.Window)
		}
	} else if adjustInput {
		d.scene().FocusInput(scene.None)
	}
}

// Recalculate lays the desktop out over the screen's usable area: the
// focused client alone when fullscreen, the tree otherwise. It finishes by
// re-issuing a focus notification, since moved boxes can shift the pointer's
// relative position.
func (d *Desktop) Recalculate() {
	srv := d.screen.server
	if d.Fullscreen && d.focus != nil {
		srv.syncBox(d.focus, d.screen.Usable)
	} else {
		for _, p := range d.tree.Recalculate(d.screen.Usable, srv.border) {
			srv.syncBox(p.Client, p.Box)
		}
	}
	srv.notifyFocus()
}
