// Package control serves the external control protocol: framed command
// records in, one result or one typed error out, plus a state-change event
// stream. Transport framing ends here; semantics live in the wm package.
package control

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/timberwm/timber/internal/build"
	"github.com/timberwm/timber/internal/bus"
	"github.com/timberwm/timber/internal/wm"
)

// Dispatcher hands one request to the event loop and waits for its reply.
type Dispatcher func(req wm.Request) (string, error)

type Server struct {
	addr     string
	dispatch Dispatcher
	hub      *bus.Hub[wm.EventStateChanged]
}

func NewServer(addr string, dispatch Dispatcher, hub *bus.Hub[wm.EventStateChanged]) *Server {
	return &Server{
		addr:     addr,
		dispatch: dispatch,
		hub:      hub,
	}
}

func (s *Server) String() string { return "control.Server" }

func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.handler()}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}
	return err
}

func (s *Server) handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(Logger())
	router.Get("/events", s.handleEvents)

	api := humachi.New(router, huma.DefaultConfig("timber control", build.Current.Version))
	s.register(api)

	return router
}

type commandInput struct {
	Body wm.Request
}

type commandOutput struct {
	Body struct {
		Report string `json:"report,omitempty"`
	}
}

func (s *Server) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "command",
		Method:      http.MethodPost,
		Path:        "/command",
		Summary:     "Execute one control protocol command",
	}, func(ctx context.Context, in *commandInput) (*commandOutput, error) {
		report, err := s.dispatch(in.Body)
		if err != nil {
			return nil, asHTTPError(err)
		}
		out := &commandOutput{}
		out.Body.Report = report
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "state",
		Method:      http.MethodGet,
		Path:        "/state",
		Summary:     "Structured status dump",
	}, func(ctx context.Context, _ *struct{}) (*commandOutput, error) {
		report, err := s.dispatch(wm.Request{Op: "state.query"})
		if err != nil {
			return nil, asHTTPError(err)
		}
		out := &commandOutput{}
		out.Body.Report = report
		return out, nil
	})
}

// asHTTPError maps the command error taxonomy onto HTTP statuses; anything
// unknown would be a dispatcher bug.
func asHTTPError(err error) error {
	switch {
	case errors.Is(err, wm.ErrClientNotFound),
		errors.Is(err, wm.ErrScreenNotFound),
		errors.Is(err, wm.ErrDesktopNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, wm.ErrDesktopNotEmpty):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, wm.ErrInvalidParameter):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return huma.Error500InternalServerError(err.Error())
}

// handleEvents streams state-change notifications, one line per event.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	eventC, cancel := s.hub.Subscribe(r.Context())
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-eventC:
			fmt.Fprintf(w, "%s\n", ev.Op)
			flusher.Flush()
		}
	}
}
