package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"adscontrol-backend-go/internal/analytics"
	"adscontrol-backend-go/internal/models"

	"github.com/go-chi/chi/v5"
)

// AnalyzeProject runs the suggestion engine. The body is optional; scope defaults to general.
func (s *Server) AnalyzeProject(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	scope, ok := analytics.ParseScope(req.Scope)
	if !ok {
		WriteError(w, http.StatusBadRequest, "scope must be one of: general, content, campaign")
		return
	}
	result, err := s.Analyzer.Analyze(r.Context(), chi.URLParam(r, "projectId"), scope)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) ProjectMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := s.Analyzer.Metrics(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) ContentTypes(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, models.AllTypeInfo())
}
