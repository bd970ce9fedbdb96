package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"adscontrol-backend-go/internal/analytics"
	"adscontrol-backend-go/internal/models"
	"adscontrol-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// filterFromQuery reads ?project_id=&type=. Missing values match everything.
func filterFromQuery(r *http.Request) models.Filter {
	return models.Filter{
		ProjectID: queryValue(r, "project_id"),
		Type:      models.ContentType(strings.ToUpper(queryValue(r, "type"))),
	}
}

func (s *Server) ListContents(w http.ResponseWriter, r *http.Request) {
	items, err := s.Catalog.ListContents(r.Context(), filterFromQuery(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toContentDTOs(items))
}

func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	content, err := s.Catalog.CreateContent(r.Context(), payload)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toContentDTO(content))
}

func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.Catalog.GetContent(r.Context(), chi.URLParam(r, "contentId"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toContentDTO(content))
}

func (s *Server) UpdateContent(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	content, err := s.Catalog.UpdateContent(r.Context(), chi.URLParam(r, "contentId"), payload)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toContentDTO(content))
}

func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.DeleteContent(r.Context(), chi.URLParam(r, "contentId")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BestContents ranks creatives per type by their primary KPI.
func (s *Server) BestContents(w http.ResponseWriter, r *http.Request) {
	var window analytics.Window
	var err error
	if window.From, err = parseDateQuery(r, "start_date"); err != nil {
		writeFailure(w, r, err)
		return
	}
	if window.To, err = parseDateQuery(r, "end_date"); err != nil {
		writeFailure(w, r, err)
		return
	}
	limit := analytics.DefaultCreativeLimit
	if raw := queryValue(r, "limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	ranked, err := s.Analyzer.BestCreatives(r.Context(), queryValue(r, "project_id"), window, limit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toRankedDTOs(ranked))
}

func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	raw := queryValue(r, key)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(services.DateLayout, raw)
	if err != nil {
		return time.Time{}, services.ErrBadRequest(key + " must be a date in YYYY-MM-DD format")
	}
	return parsed, nil
}
