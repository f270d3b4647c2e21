// Package scene is the contract between the window manager core and the
// compositor collaborator. The core never reaches past this interface; the
// collaborator owns surfaces, frames and input devices and reports lifecycle
// events back through messages on the event loop.
package scene

// Window is an opaque handle to a toplevel surface owned by the collaborator.
type Window uint32

// None is the zero Window.
const None Window = 0

// Group is a visual container the collaborator stacks clients into. Every
// desktop owns two: its content group and its fullscreen group.
type Group uint32

type Scene interface {
	CreateGroup() Group
	DestroyGroup(g Group)
	SetGroupVisible(g Group, visible bool)

	// Reparent moves a client's visual into g.
	Reparent(w Window, g Group)

	// Configure places and sizes a client's visual.
	Configure(w Window, x, y, width, height int)

	// SetActivated toggles the client's activated look (border, decorations).
	SetActivated(w Window, activated bool)

	// FocusInput routes keyboard input to w. None clears input focus.
	FocusInput(w Window)

	// NotifyFocus re-issues a focus notification without changing routing,
	// used after layout changes move boxes under the pointer.
	NotifyFocus(w Window)

	// CloseClient asks the client to close itself.
	CloseClient(w Window)

	// Destroy tears the client's visual down without asking.
	Destroy(w Window)
}
