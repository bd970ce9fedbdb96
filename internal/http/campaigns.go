package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	items, err := s.Catalog.ListCampaigns(r.Context(), filterFromQuery(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCampaignDTOs(items))
}

func (s *Server) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	campaign, err := s.Catalog.CreateCampaign(r.Context(), payload)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toCampaignDTO(campaign))
}

func (s *Server) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.Catalog.GetCampaign(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCampaignDTO(campaign))
}

func (s *Server) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	campaign, err := s.Catalog.UpdateCampaign(r.Context(), chi.URLParam(r, "campaignId"), payload)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCampaignDTO(campaign))
}

func (s *Server) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.DeleteCampaign(r.Context(), chi.URLParam(r, "campaignId")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListCampaignContents(w http.ResponseWriter, r *http.Request) {
	items, err := s.Catalog.CampaignContents(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toContentDTOs(items))
}

func (s *Server) LinkCampaignContent(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.ContentID) == "" {
		WriteError(w, http.StatusBadRequest, "content_id is required")
		return
	}
	link, err := s.Catalog.LinkContent(r.Context(), chi.URLParam(r, "campaignId"), strings.TrimSpace(req.ContentID))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, link)
}

func (s *Server) UnlinkCampaignContent(w http.ResponseWriter, r *http.Request) {
	err := s.Catalog.UnlinkContent(r.Context(), chi.URLParam(r, "campaignId"), chi.URLParam(r, "contentId"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
