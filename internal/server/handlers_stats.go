package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------
// Statistics Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreatorStats(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	snapshot, err := s.stats.CreatorStats(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Stats error: "+err.Error())
		return
	}
	if snapshot == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.jsonResponse(w, http.StatusOK, snapshot)
}

type bulkStatsRequest struct {
	CreatorIDs []uuid.UUID `json:"creator_ids"`
}

// handleBulkStats returns a snapshot for every requested id. The aggregation
// never fails; unavailable backends degrade to zeroed snapshots.
func (s *Server) handleBulkStats(w http.ResponseWriter, r *http.Request) {
	var req bulkStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.CreatorIDs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "creator_ids is required")
		return
	}

	snapshots := s.stats.BulkStats(r.Context(), req.CreatorIDs)
	s.jsonResponse(w, http.StatusOK, map[string]any{"snapshots": snapshots})
}
