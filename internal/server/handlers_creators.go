package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/query"
	"github.com/jonathan/creator-studio/internal/types"
)

// ---------------------------------------------------------------------
// Creator Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateCreator(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	creator, err := s.db.CreateCreator(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, creator)
}

func (s *Server) handleListCreators(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = types.StatusAll
	}
	if !types.ValidStatus(status) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status filter; expected all, active, or inactive")
		return
	}

	skip, limit := s.parsePaging(r)
	filters := db.CreatorFilters{
		Search: r.URL.Query().Get("search"),
		Status: status,
		Skip:   skip,
		Limit:  limit,
	}

	creators, total, err := s.db.ListCreators(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, query.NewPage(creators, total, skip, limit))
}

func (s *Server) handleGetCreator(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	creator, err := s.db.GetCreator(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if creator == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.jsonResponse(w, http.StatusOK, creator)
}

func (s *Server) handleUpdateCreator(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	var req types.UpdateCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	creator, err := s.db.UpdateCreator(r.Context(), creatorID, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if creator == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.jsonResponse(w, http.StatusOK, creator)
}

func (s *Server) handleSetCreatorActive(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	var req types.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	creator, err := s.db.SetCreatorActive(r.Context(), creatorID, req.IsActive)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if creator == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.jsonResponse(w, http.StatusOK, creator)
}

func (s *Server) handleDeleteCreator(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	deleted, err := s.db.DeleteCreator(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
