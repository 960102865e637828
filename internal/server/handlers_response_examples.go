package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/creator-studio/internal/bulkio"
	"github.com/jonathan/creator-studio/internal/query"
	"github.com/jonathan/creator-studio/internal/types"
)

// ---------------------------------------------------------------------
// Response Example Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateResponseExample(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}

	var req types.CreateResponseExampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	example, err := s.db.CreateResponseExample(r.Context(), creatorID, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusCreated, example)
}

// handleListResponseExamples filters the full corpus in memory and pages the
// result. Search also matches candidate response text, which server-side
// windowing cannot express against the normalized rows.
func (s *Server) handleListResponseExamples(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}
	category, ok := s.parseCategoryFilter(w, r)
	if !ok {
		return
	}

	examples, err := s.db.ListResponseExamples(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	filtered := types.FilterResponseExamples(examples, r.URL.Query().Get("search"), category)
	skip, limit := s.parsePaging(r)
	s.jsonResponse(w, http.StatusOK, query.Paginate(filtered, skip, limit))
}

func (s *Server) handleGetResponseExample(w http.ResponseWriter, r *http.Request) {
	exampleID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid example ID"})
		return
	}

	example, err := s.db.GetResponseExample(r.Context(), exampleID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if example == nil {
		s.respondError(w, &ErrExampleNotFound{ExampleID: exampleID})
		return
	}

	s.jsonResponse(w, http.StatusOK, example)
}

func (s *Server) handleUpdateResponseExample(w http.ResponseWriter, r *http.Request) {
	exampleID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid example ID"})
		return
	}

	var req types.UpdateResponseExampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	example, err := s.db.UpdateResponseExample(r.Context(), exampleID, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if example == nil {
		s.respondError(w, &ErrExampleNotFound{ExampleID: exampleID})
		return
	}

	s.stats.Invalidate(r.Context(), example.CreatorID)
	s.jsonResponse(w, http.StatusOK, example)
}

func (s *Server) handleDeleteResponseExample(w http.ResponseWriter, r *http.Request) {
	exampleID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid example ID"})
		return
	}

	deleted, err := s.db.DeleteResponseExample(r.Context(), exampleID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.respondError(w, &ErrExampleNotFound{ExampleID: exampleID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleImportResponseExamples(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}

	report, err := bulkio.ImportResponseExamples(r.Context(), s.db, creatorID, r.Body, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleExportResponseExamples(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}

	category, ok := s.parseCategoryFilter(w, r)
	if !ok {
		return
	}

	// The export reflects the currently filtered view, not the whole corpus.
	examples, err := s.db.ListResponseExamples(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	examples = types.FilterResponseExamples(examples, r.URL.Query().Get("search"), category)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="response_examples.csv"`)
	if err := bulkio.ExportResponseExamples(w, examples); err != nil {
		// headers already sent; nothing more to write
		return
	}
}
