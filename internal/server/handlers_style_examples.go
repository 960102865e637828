package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/creator-studio/internal/bulkio"
	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/query"
	"github.com/jonathan/creator-studio/internal/types"
)

// ---------------------------------------------------------------------
// Style Example Handlers
// ---------------------------------------------------------------------

// requireCreator resolves the {id} path segment to an existing creator,
// writing the error response itself when that fails.
func (s *Server) requireCreator(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return uuid.Nil, false
	}

	creator, err := s.db.GetCreator(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return uuid.Nil, false
	}
	if creator == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return uuid.Nil, false
	}
	return creatorID, true
}

// parseCategoryFilter validates the optional category query parameter.
func (s *Server) parseCategoryFilter(w http.ResponseWriter, r *http.Request) (string, bool) {
	category := r.URL.Query().Get("category")
	if category != "" && category != types.CategoryAll && !types.ValidCategory(category) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid category filter")
		return "", false
	}
	return category, true
}

func (s *Server) handleCreateStyleExample(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}

	var req types.CreateStyleExampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	example, err := s.db.CreateStyleExample(r.Context(), creatorID, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusCreated, example)
}

func (s *Server) handleListStyleExamples(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}
	category, ok := s.parseCategoryFilter(w, r)
	if !ok {
		return
	}

	skip, limit := s.parsePaging(r)
	filters := db.ExampleFilters{
		Search:   r.URL.Query().Get("search"),
		Category: category,
		Skip:     skip,
		Limit:    limit,
	}

	examples, total, err := s.db.ListStyleExamples(r.Context(), creatorID, filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, query.NewPage(examples, total, skip, limit))
}

func (s *Server) handleGetStyleExample(w http.ResponseWriter, r *http.Request) {
	exampleID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid example ID"})
		return
	}

	example, err := s.db.GetStyleExample(r.Context(), exampleID)
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

func (s *Server) handleUpdateStyleExample(w http.ResponseWriter, r *http.Request) {
	exampleID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid example ID"})
		return
	}

	var req types.UpdateStyleExampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	example, err := s.db.UpdateStyleExample(r.Context(), exampleID, &req)
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

func (s *Server) handleDeleteStyleExample(w http.ResponseWriter, r *http.Request) {
	exampleID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid example ID"})
		return
	}

	deleted, err := s.db.DeleteStyleExample(r.Context(), exampleID)
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

// handleImportStyleExamples ingests a CSV upload. Row failures are reported
// in the response, not surfaced as an HTTP error.
func (s *Server) handleImportStyleExamples(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}

	report, err := bulkio.ImportStyleExamples(r.Context(), s.db, creatorID, r.Body, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleExportStyleExamples(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := s.requireCreator(w, r)
	if !ok {
		return
	}

	category, ok := s.parseCategoryFilter(w, r)
	if !ok {
		return
	}

	// The export reflects the currently filtered view, not the whole corpus.
	examples, err := s.db.ListAllStyleExamples(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	examples = types.FilterStyleExamples(examples, r.URL.Query().Get("search"), category)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="style_examples.csv"`)
	if err := bulkio.ExportStyleExamples(w, examples); err != nil {
		// headers already sent; nothing more to write
		return
	}
}
