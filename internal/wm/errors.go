package wm

import "errors"

// Command errors surfaced to control protocol callers. Anything beyond these
// is an internal invariant violation and panics instead.
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrScreenNotFound   = errors.New("screen not found")
	ErrDesktopNotFound  = errors.New("desktop not found")
	ErrDesktopNotEmpty  = errors.New("desktop not empty")
	ErrInvalidParameter = errors.New("invalid parameter")
)
