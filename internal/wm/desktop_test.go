package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopRemoveFocusedKeepsPromotedContent(t *testing.T) {
	s, _ := newTestServer(t)
	mapClient(s, 101, "alpha")
	b := mapClient(s, 102, "beta")
	c := mapClient(s, 103, "gamma")
	d := s.CurrentDesktop()
	require.Same(t, c, d.Focused())

	// Removing gamma promotes beta into its parent slot; focus follows the
	// promoted content instead of jumping across the tree.
	require.NoError(t, d.RemoveClient(c))
	assert.Same(t, b, d.Focused())
}

func TestDesktopRemoveFocusedLeftChild(t *testing.T) {
	s, _ := newTestServer(t)
	a := mapClient(s, 101, "alpha")
	b := mapClient(s, 102, "beta")
	d := s.CurrentDesktop()
	d.FocusClient(a, true)

	require.NoError(t, d.RemoveClient(a))
	assert.Same(t, b, d.Focused())
}

func TestDesktopRemoveUnfocusedLeavesFocus(t *testing.T) {
	s, _ := newTestServer(t)
	a := mapClient(s, 101, "alpha")
	b := mapClient(s, 102, "beta")
	d := s.CurrentDesktop()

	require.NoError(t, d.RemoveClient(a))
	assert.Same(t, b, d.Focused())
	assert.Equal(t, d.Screen().Usable.Shrink(2), b.Box)
}

func TestDesktopRemoveForeignClient(t *testing.T) {
	s, _ := newTestServer(t)
	c := mapClient(s, 101, "alpha")
	s.CurrentScreen().AddDesktop("scratch")
	other := s.CurrentDesktop()

	assert.ErrorIs(t, other.RemoveClient(c), ErrClientNotFound)
	assert.NotNil(t, c.Desktop())
}

func TestDesktopLastClientRemoved(t *testing.T) {
	s, _ := newTestServer(t)
	c := mapClient(s, 101, "alpha")
	d := s.CurrentDesktop()

	require.NoError(t, d.RemoveClient(c))
	assert.True(t, d.Empty())
	assert.Nil(t, d.Focused())
	assert.Nil(t, c.Desktop())
}

func TestDesktopFullscreenMigratesLayers(t *testing.T) {
	s, rec := newTestServer(t)
	c := mapClient(s, 101, "alpha")
	d := s.CurrentDesktop()
	rec.Reset()

	d.SetFullscreen(true)
	assert.Equal(t, 1, rec.Count("reparent 101"))
	assert.Equal(t, d.Screen().Usable, c.Box)

	d.SetFullscreen(true)
	assert.Equal(t, 1, rec.Count("reparent 101"), "same state is a no-op")

	d.SetFullscreen(false)
	assert.Equal(t, 2, rec.Count("reparent 101"))
	assert.Equal(t, d.Screen().Usable.Shrink(2), c.Box)
}

func TestDesktopFocusChangeDropsFullscreen(t *testing.T) {
	s, _ := newTestServer(t)
	a := mapClient(s, 101, "alpha")
	mapClient(s, 102, "beta")
	d := s.CurrentDesktop()
	d.SetFullscreen(true)
	require.True(t, d.Fullscreen)

	d.FocusClient(a, true)
	assert.False(t, d.Fullscreen)
	assert.Same(t, a, d.Focused())
}

func TestDesktopAddClientKeepsFocus(t *testing.T) {
	s, _ := newTestServer(t)
	a := mapClient(s, 101, "alpha")
	d := s.CurrentDesktop()

	// AddClient inserts at the focused leaf without stealing focus; only the
	// map handler promotes the new client afterwards.
	b := &Client{UUID: "b", Title: "beta", Window: 102}
	d.AddClient(b)
	assert.Same(t, a, d.Focused())
	assert.Equal(t, []*Client{a, b}, d.Clients())
}

func TestDesktopFocusForeignClientPanics(t *testing.T) {
	s, _ := newTestServer(t)
	c := mapClient(s, 101, "alpha")
	s.CurrentScreen().AddDesktop("scratch")
	other := s.CurrentDesktop()

	assert.Panics(t, func() { other.FocusClient(c, false) })
}
