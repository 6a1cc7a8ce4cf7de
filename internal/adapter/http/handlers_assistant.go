package adapthttp

import (
	"net/http"

	"hydration/internal/assist"
)

// handleAssistantIntent accepts a normalized assistant intent and
// echoes the resulting state snapshot. Invalid quantities are absorbed
// by the dispatcher; only storage failures surface as errors here.
func (s *Server) handleAssistantIntent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// State-reporting hook: the assistant polls the snapshot.
		writeJSON(w, http.StatusOK, s.dispatcher.Snapshot())
		return
	case http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var intent assist.Intent
	if err := parseJSON(r, &intent); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state, err := s.dispatcher.HandleIntent(r.Context(), intent)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
