package socket

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/thermod-project/thermod/internal/timetable"
)

func writeJSONBody(w io.Writer, data interface{}) error {
	return json.NewEncoder(w).Encode(data)
}

// handleSettings serves GET (full timetable dump) and POST (partial
// transactional update) on /settings.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getSettings(w, r)
	case http.MethodPost:
		s.postSettings(w, r)
	default:
		methodNotImplemented(w, r)
	}
}

// getSettings marshals the TimeTable under the master lock so the
// returned document is a coherent snapshot even while the cycle or
// another handler is mutating state.
func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	s.Lock.Lock()
	data, err := json.Marshal(s.TimeTable)
	s.Lock.Unlock()

	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot serialize settings", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// postSettings applies a partial update as one transaction and, on
// success, notifies the master condition so the control cycle
// re-evaluates immediately instead of waiting out its interval.
func (s *Server) postSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		warnInvalidRequest(r, "unreadable body")
		writeError(w, http.StatusBadRequest, "invalid request", "cannot read request body")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var patch timetable.Patch
	if err := dec.Decode(&patch); err != nil {
		warnInvalidRequest(r, truncate(string(body), 200))
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	s.Lock.Lock()
	err = s.TimeTable.Update(patch)
	if err == nil {
		s.Lock.Notify()
	}
	s.Lock.Unlock()

	if err != nil {
		warnCannotUpdateSettings(r)

		var verr *timetable.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Code, verr.Explain)
		case errors.Is(err, timetable.ErrInvalidSyntax), errors.Is(err, timetable.ErrInvalidContent):
			writeError(w, http.StatusBadRequest, "invalid settings", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "cannot save settings", err.Error())
		}
		return
	}

	log.Info().Msg("settings updated from control socket")
	w.WriteHeader(http.StatusOK)
}

// handleStatus serves the last published ThermodStatus on both
// /heating and /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotImplemented(w, r)
		return
	}

	status, ok := s.Publisher.Current()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "status not available yet",
			"the control cycle has not completed its first iteration")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleMonitor long-polls: the connection is held open until the next
// status publication (or the client goes away), then answered with
// that single snapshot and closed. Clients re-issue the request to
// keep monitoring.
func (s *Server) handleMonitor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotImplemented(w, r)
		return
	}

	name := r.URL.Query().Get("name")
	ch, unsubscribe := s.Publisher.Subscribe()
	defer unsubscribe()

	host, port := clientAddr(r)
	log.Debug().Str("host", host).Str("port", port).Str("monitor", name).
		Msg("monitor connected, waiting for next status")

	select {
	case status := <-ch:
		writeJSON(w, http.StatusOK, status)
	case <-r.Context().Done():
		log.Debug().Str("host", host).Str("port", port).Str("monitor", name).
			Msg("monitor disconnected before next status")
	}
}

// handleNotFound answers every unregistered path, logging in the
// fail2ban-matchable format.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	warnInvalidRequest(r, r.Method+" "+r.URL.Path)
	writeError(w, http.StatusNotFound, "invalid request", "unknown path "+r.URL.Path)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
