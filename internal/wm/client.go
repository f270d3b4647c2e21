package wm

import "github.com/timberwm/timber/internal/scene"

// Client is one managed toplevel surface.
type Client struct {
	UUID   string
	Title  string
	Box    Rect
	Border int
	Window scene.Window

	desktop *Desktop
	node    nodeID
}

func (c *Client) Desktop() *Desktop { return c.desktop }
