package wm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thejerf/suture/v4"
	"github.com/timberwm/timber/internal/bus"
	"github.com/timberwm/timber/internal/scene"
)

// Msg is one serialized event: a protocol command, an input event or a
// surface lifecycle notification. The loop consumes them in strict arrival
// order, so every mutation of the server happens on one goroutine.
type Msg any

type CommandMsg struct {
	Req    Request
	ReplyC chan<- CommandReply
}

type CommandReply struct {
	Report string
	Err    error
}

type ClientMappedMsg struct {
	Window scene.Window
	Title  string
}

type ClientUnmappedMsg struct {
	Window scene.Window
}

type SurfaceDestroyedMsg struct {
	Window scene.Window
}

type OutputAddedMsg struct {
	Name     string
	Geometry Rect
	Usable   Rect
	Modes    []string
}

type OutputRemovedMsg struct {
	Name string
}

type KeyPressMsg struct {
	Mods    uint32
	Keysyms []uint32
	// SwallowC receives whether the event was consumed by a binding.
	SwallowC chan<- bool
}

type ResizeCommittedMsg struct {
	Window scene.Window
}

type resizeExpiredMsg struct {
	Window scene.Window
}

type BindingsReplacedMsg struct {
	Bindings []Binding
}

// EventStateChanged is published on the bus after every successful mutation
// so control stream subscribers can refresh.
type EventStateChanged struct {
	Op string `json:"op"`
}

// Loop owns the event queue and drives the server. It is a suture
// service; returning ErrTerminateSupervisorTree after state.quit or the loss
// of the last output brings the whole process down.
type Loop struct {
	server *Server

	mu    sync.Mutex
	queue []Msg
	wakeC chan struct{}
}

func NewLoop(server *Server) *Loop {
	l := &Loop{
		server: server,
		wakeC:  make(chan struct{}, 1),
	}
	server.post = l.Post
	return l
}

// Post queues m for the loop. Safe to call from any goroutine, including
// from a handler on the loop goroutine itself: a scene may acknowledge a
// configure synchronously from inside Configure, so the queue is unbounded
// and posting never blocks.
func (l *Loop) Post(m Msg) {
	l.mu.Lock()
	l.queue = append(l.queue, m)
	l.mu.Unlock()
	select {
	case l.wakeC <- struct{}{}:
	default:
	}
}

func (l *Loop) next() (Msg, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	m := l.queue[0]
	l.queue = l.queue[1:]
	return m, true
}

func (l *Loop) String() string { return "wm.Loop" }

func (l *Loop) Serve(ctx context.Context) error {
	for {
		for {
			m, ok := l.next()
			if !ok {
				break
			}
			l.handle(m)
			if l.server.quitting {
				return suture.ErrTerminateSupervisorTree
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wakeC:
		}
	}
}

func (l *Loop) handle(m Msg) {
	s := l.server
	switch m := m.(type) {
	case CommandMsg:
		report, err := s.Dispatch(m.Req)
		if err == nil && m.Req.Op != "state.query" {
			bus.Publish(EventStateChanged{Op: m.Req.Op})
		}
		m.ReplyC <- CommandReply{Report: report, Err: err}
	case ClientMappedMsg:
		s.OnClientMapped(m.Window, m.Title)
		bus.Publish(EventStateChanged{Op: "client.mapped"})
	case ClientUnmappedMsg:
		s.OnClientUnmapped(m.Window)
		bus.Publish(EventStateChanged{Op: "client.unmapped"})
	case SurfaceDestroyedMsg:
		s.OnSurfaceDestroyed(m.Window)
		bus.Publish(EventStateChanged{Op: "client.destroyed"})
	case OutputAddedMsg:
		s.OnOutputAdded(m.Name, m.Geometry, m.Usable, m.Modes)
		bus.Publish(EventStateChanged{Op: "output.added"})
	case OutputRemovedMsg:
		s.OnOutputRemoved(m.Name)
		bus.Publish(EventStateChanged{Op: "output.removed"})
	case KeyPressMsg:
		m.SwallowC <- s.OnKeyPressed(m.Mods, m.Keysyms)
	case ResizeCommittedMsg:
		s.OnResizeCommitted(m.Window)
	case resizeExpiredMsg:
		s.OnResizeCommitted(m.Window)
	case BindingsReplacedMsg:
		s.bindings.Replace(m.Bindings)
	default:
		slog.Debug("unhandled message", "msg", m)
	}
}
