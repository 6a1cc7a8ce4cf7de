// Package adapthttp is the driving HTTP adapter exposing the tracker
// to the rendering layer and the voice assistant.
package adapthttp

import (
	"net/http"

	"hydration/internal/app"
	"hydration/internal/assist"
)

// Server routes requests to the progress engine and the assistant
// dispatcher.
type Server struct {
	engine     *app.Engine
	dispatcher *assist.Dispatcher
}

// New creates a Server wired to the given engine and dispatcher.
func New(engine *app.Engine, dispatcher *assist.Dispatcher) *Server {
	return &Server{engine: engine, dispatcher: dispatcher}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/progress", s.handleProgress)
	api.HandleFunc("/water/add", s.handleWaterAdd)
	api.HandleFunc("/water/remove", s.handleWaterRemove)
	api.HandleFunc("/goal", s.handleGoal)

	api.HandleFunc("/history", s.handleHistory)
	api.HandleFunc("/history/correct", s.handleHistoryCorrect)

	api.HandleFunc("/assistant/intent", s.handleAssistantIntent)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return withNoCache(s.loggingMiddleware(root))
}
