package control

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func Logger() func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&slogFormatter{})
}

// slogFormatter is a chi LogFormatter backed by slog.
type slogFormatter struct{}

func (l *slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	attrs := []any{}

	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		attrs = append(attrs, slog.String("request", reqID))
	}
	attrs = append(attrs, slog.String("from", r.RemoteAddr))

	return &slogEntry{
		attrs: attrs,
		msg:   fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
	}
}

type slogEntry struct {
	attrs []any
	msg   string
}

func (l *slogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	attrs := append(l.attrs,
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.String("elapsed", elapsed.String()),
	)

	if status >= 500 {
		slog.Error(l.msg, attrs...)
		return
	}
	slog.Info(l.msg, attrs...)
}

func (l *slogEntry) Panic(v interface{}, stack []byte) {
	middleware.PrintPrettyStack(v)
}
