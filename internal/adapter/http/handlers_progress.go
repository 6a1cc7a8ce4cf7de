package adapthttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hydration/internal/app"
	"hydration/internal/assist"
	"hydration/internal/domain"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotBody())
}

func (s *Server) handleWaterAdd(w http.ResponseWriter, r *http.Request) {
	s.handleWaterDelta(w, r, s.engine.AddWater)
}

func (s *Server) handleWaterRemove(w http.ResponseWriter, r *http.Request) {
	s.handleWaterDelta(w, r, s.engine.RemoveWater)
}

func (s *Server) handleWaterDelta(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, quantity int) error) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Absent quantity means one glass.
	quantity := 1
	if len(body.Quantity) > 0 {
		q, err := assist.ParseQuantity(body.Quantity)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		quantity = q
	}

	if err := op(r.Context(), quantity); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotBody())
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Glasses json.RawMessage `json:"glasses"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	glasses, err := assist.ParseQuantity(body.Glasses)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.engine.SetGoal(r.Context(), glasses); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotBody())
}

func (s *Server) snapshotBody() map[string]any {
	current, goal := s.engine.Snapshot()
	percentage := float64(current) / float64(goal) * 100
	return map[string]any{
		"currentGlasses": current,
		"goalGlasses":    goal,
		"percentage":     percentage,
		"motivation":     domain.MotivationMessage(percentage),
	}
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidGoal), errors.Is(err, domain.ErrInvalidGlasses):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, app.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
