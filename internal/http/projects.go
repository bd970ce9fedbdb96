package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	items, err := s.Catalog.ListProjects(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	project, err := s.Catalog.CreateProject(r.Context(), payload)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, project)
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.Catalog.GetProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	project, err := s.Catalog.UpdateProject(r.Context(), chi.URLParam(r, "projectId"), payload)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.DeleteProject(r.Context(), chi.URLParam(r, "projectId")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
