// Package socket implements thermod's control socket: an HTTP server
// exposing TimeTable reads/writes and a long-poll monitor endpoint,
// adapted from the teacher's internal/api/api.go (ServeMux,
// writeJSON/writeError helpers, method-dispatch-by-switch) onto
// spec.md §4.3's four resources.
package socket

import (
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/masterlock"
	"github.com/thermod-project/thermod/internal/publisher"
	"github.com/thermod-project/thermod/internal/timetable"
)

// Server serves the control socket. TimeTable and Lock are shared
// with the control cycle; every handler that touches TimeTable
// acquires Lock first, exactly like the cycle does.
type Server struct {
	TimeTable *timetable.TimeTable
	Lock      *masterlock.MasterLock
	Publisher *publisher.Publisher

	mux *http.ServeMux
}

func New(tt *timetable.TimeTable, lock *masterlock.MasterLock, pub *publisher.Publisher) *Server {
	s := &Server{TimeTable: tt, Lock: lock, Publisher: pub}

	mux := http.NewServeMux()
	mux.HandleFunc("/settings", s.recoverMiddleware(s.handleSettings))
	mux.HandleFunc("/heating", s.recoverMiddleware(s.handleStatus))
	mux.HandleFunc("/status", s.recoverMiddleware(s.handleStatus))
	mux.HandleFunc("/monitor", s.recoverMiddleware(s.handleMonitor))
	mux.HandleFunc("/", s.recoverMiddleware(s.handleNotFound))
	s.mux = mux

	return s
}

// ServeHTTP lets Server itself be passed to http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// clientAddr splits r.RemoteAddr into the (host, port) pair the
// fail2ban log format requires.
func clientAddr(r *http.Request) (string, string) {
	host, port, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr, ""
	}
	return host, port
}

// recoverMiddleware implements spec.md §4.3's "any unhandled exception
// inside a handler -> 500 with a critical fail2ban-format log entry",
// the Go analogue of the teacher's lack-of-panic style translated into
// this daemon's single-recover-boundary error design (SPEC_FULL.md §8).
func (s *Server) recoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				host, port := clientAddr(r)
				log.Error().
					Str("host", host).
					Str("port", port).
					Str("method", r.Method).
					Interface("panic", rec).
					Msgf("('%s', %s) the %s request produced an unhandled %T exception", host, port, r.Method, rec)
				writeError(w, http.StatusInternalServerError, "unhandled exception", "")
			}
		}()
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = writeJSONBody(w, data)
}

type errorResponse struct {
	Error   string `json:"error"`
	Explain string `json:"explain,omitempty"`
}

func writeError(w http.ResponseWriter, status int, errMsg, explain string) {
	writeJSON(w, status, errorResponse{Error: errMsg, Explain: explain})
}

func warnInvalidRequest(r *http.Request, detail string) {
	host, port := clientAddr(r)
	log.Warn().Str("host", host).Str("port", port).
		Msgf("('%s', %s) invalid request %q received", host, port, detail)
}

func warnMethodNotImplemented(r *http.Request) {
	host, port := clientAddr(r)
	log.Warn().Str("host", host).Str("port", port).
		Msgf("('%s', %s) method %q not implemented", host, port, r.Method)
}

func warnCannotUpdateSettings(r *http.Request) {
	host, port := clientAddr(r)
	log.Warn().Str("host", host).Str("port", port).
		Msgf("('%s', %s) cannot update settings", host, port)
}

func methodNotImplemented(w http.ResponseWriter, r *http.Request) {
	warnMethodNotImplemented(r)
	writeError(w, http.StatusNotImplemented, fmt.Sprintf("method %s not implemented", r.Method), "")
}
