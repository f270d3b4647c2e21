package scene

import "fmt"

// Recorder is a Scene that records every call, for exercising the core
// without a compositor.
type Recorder struct {
	Calls []string

	lastGroup Group
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (r *Recorder) CreateGroup() Group {
	r.lastGroup++
	r.record("create-group %d", r.lastGroup)
	return r.lastGroup
}

func (r *Recorder) DestroyGroup(g Group) {
	r.record("destroy-group %d", g)
}

func (r *Recorder) SetGroupVisible(g Group, visible bool) {
	r.record("group-visible %d %t", g, visible)
}

func (r *Recorder) Reparent(w Window, g Group) {
	r.record("reparent %d %d", w, g)
}

func (r *Recorder) Configure(w Window, x, y, width, height int) {
	r.record("configure %d %dx%d+%d+%d", w, width, height, x, y)
}

func (r *Recorder) SetActivated(w Window, activated bool) {
	r.record("activated %d %t", w, activated)
}

func (r *Recorder) FocusInput(w Window) {
	r.record("focus-input %d", w)
}

func (r *Recorder) NotifyFocus(w Window) {
	r.record("notify-focus %d", w)
}

func (r *Recorder) CloseClient(w Window) {
	r.record("close %d", w)
}

func (r *Recorder) Destroy(w Window) {
	r.record("destroy %d", w)
}

var _ Scene = (*Recorder)(nil)
