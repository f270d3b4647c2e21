package wm

import (
	"testing"

	"github.com/timberwm/timber/internal/scene"
)

// newTestServer builds a server over a recording scene with one 1920x1080
// output whose usable area leaves a 40px strut at the bottom. Without a loop
// attached, resize acknowledgements are not tracked and every mutation is
// synchronous.
func newTestServer(t *testing.T) (*Server, *scene.Recorder) {
	t.Helper()
	rec := scene.NewRecorder()
	s := NewServer(rec, Options{BorderWidth: 2})
	s.OnOutputAdded("test-0",
		Rect{W: 1920, H: 1080},
		Rect{W: 1920, H: 1040},
		[]string{"1920x1080"},
	)
	rec.Reset()
	return s, rec
}

func mapClient(s *Server, w scene.Window, title string) *Client {
	return s.OnClientMapped(w, title)
}
