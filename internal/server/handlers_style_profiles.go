package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/creator-studio/internal/schemas"
	"github.com/jonathan/creator-studio/internal/types"
)

// ---------------------------------------------------------------------
// Style Profile Handlers
// ---------------------------------------------------------------------

// handleGetStyleProfile returns the creator's profile, materializing the
// defaulted one on first access.
func (s *Server) handleGetStyleProfile(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	profile, err := s.db.GetOrCreateStyleProfile(r.Context(), creatorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateStyleProfile replaces the whole profile object. A rejected
// update leaves the stored profile untouched.
func (s *Server) handleUpdateStyleProfile(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	var profile types.StyleProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.CreatorID = creatorID

	if err := profile.Validate(); err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.validationResponse(w, verr)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.db.UpdateStyleProfile(r.Context(), creatorID, &profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusOK, updated)
}

// profileEditRequest is the body shared by the incremental set/map helpers.
type profileEditRequest struct {
	Value string `json:"value"`
	Key   string `json:"key,omitempty"`
}

// profileMutation runs one incremental edit and writes the standard
// responses. The db layer surfaces a *types.ValidationError when the edit
// would break a profile invariant.
func (s *Server) profileMutation(w http.ResponseWriter, r *http.Request, mutate func(uuid.UUID) (*types.StyleProfile, error)) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	profile, err := mutate(creatorID)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.validationResponse(w, verr)
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusOK, profile)
}

// decodeEdit parses the edit body and enforces required fields.
func (s *Server) decodeEdit(w http.ResponseWriter, r *http.Request, needKey bool) (*profileEditRequest, bool) {
	var req profileEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if needKey && req.Key == "" {
		s.errorResponse(w, http.StatusBadRequest, "Key is required")
		return nil, false
	}
	if !needKey && req.Value == "" {
		s.errorResponse(w, http.StatusBadRequest, "Value is required")
		return nil, false
	}
	return &req, true
}

func (s *Server) handleAddEmoji(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEdit(w, r, false)
	if !ok {
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.AddApprovedEmoji(r.Context(), creatorID, req.Value)
	})
}

func (s *Server) handleRemoveEmoji(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'value' is required")
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.RemoveApprovedEmoji(r.Context(), creatorID, value)
	})
}

func (s *Server) handleAddSeparator(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEdit(w, r, false)
	if !ok {
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.AddSentenceSeparator(r.Context(), creatorID, req.Value)
	})
}

func (s *Server) handleRemoveSeparator(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'value' is required")
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.RemoveSentenceSeparator(r.Context(), creatorID, value)
	})
}

func (s *Server) handleSetReplacement(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEdit(w, r, true)
	if !ok {
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.SetTextReplacement(r.Context(), creatorID, req.Key, req.Value)
	})
}

func (s *Server) handleRemoveReplacement(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.RemoveTextReplacement(r.Context(), creatorID, key)
	})
}

func (s *Server) handleSetAbbreviation(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEdit(w, r, true)
	if !ok {
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.SetAbbreviation(r.Context(), creatorID, req.Key, req.Value)
	})
}

func (s *Server) handleRemoveAbbreviation(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}
	s.profileMutation(w, r, func(creatorID uuid.UUID) (*types.StyleProfile, error) {
		return s.db.RemoveAbbreviation(r.Context(), creatorID, key)
	})
}

// handleValidateProfileDocument checks a raw JSON document against the
// canonical profile schema without persisting anything.
func (s *Server) handleValidateProfileDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateStyleProfileDocument(body); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			violations := make([]map[string]string, 0, len(verr.Errors))
			for _, fieldErr := range verr.Errors {
				violations = append(violations, map[string]string{
					"field":   fieldErr.Field,
					"message": fieldErr.Message,
				})
			}
			s.jsonResponse(w, http.StatusOK, map[string]any{
				"valid":      false,
				"violations": violations,
			})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"valid": true})
}

// handleImportProfileDocument schema-validates a raw JSON document and, when
// it passes, applies it as the creator's profile. Schema violations reject
// the import and leave the stored profile untouched.
func (s *Server) handleImportProfileDocument(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "Invalid creator ID"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateStyleProfileDocument(body); err != nil {
		var serr *schemas.ValidationError
		if errors.As(err, &serr) {
			verr := types.NewValidationError()
			for _, fieldErr := range serr.Errors {
				verr.Add(fieldErr.Field, fieldErr.Message)
			}
			s.validationResponse(w, verr)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var profile types.StyleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.CreatorID = creatorID

	if err := profile.Validate(); err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.validationResponse(w, verr)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.db.UpdateStyleProfile(r.Context(), creatorID, &profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.respondError(w, &ErrCreatorNotFound{CreatorID: creatorID})
		return
	}

	s.stats.Invalidate(r.Context(), creatorID)
	s.jsonResponse(w, http.StatusOK, updated)
}
