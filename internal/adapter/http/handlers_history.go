package adapthttp

import (
	"errors"
	"net/http"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.engine.History()})
}

func (s *Server) handleHistoryCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Date         string `json:"date"`
		GlassesDrunk int    `json:"glassesDrunk"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == "" {
		writeError(w, http.StatusBadRequest, errors.New("date is required"))
		return
	}

	if err := s.engine.CorrectHistory(r.Context(), body.Date, body.GlassesDrunk); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.engine.History()})
}
