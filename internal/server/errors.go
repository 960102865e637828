// Package server provides the HTTP REST API for the creator studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/creator-studio/internal/types"
)

// ErrCreatorNotFound indicates the referenced creator does not exist.
type ErrCreatorNotFound struct {
	CreatorID uuid.UUID
}

func (e *ErrCreatorNotFound) Error() string {
	return fmt.Sprintf("creator not found: %s", e.CreatorID)
}

// ErrExampleNotFound indicates the referenced example does not exist.
type ErrExampleNotFound struct {
	ExampleID uuid.UUID
}

func (e *ErrExampleNotFound) Error() string {
	return fmt.Sprintf("example not found: %s", e.ExampleID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// respondError writes err with the status HTTPStatus assigns it. Field-level
// validation errors keep their structured body; everything else gets the
// standard error envelope.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		s.validationResponse(w, verr)
		return
	}
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var unavailable *types.ErrUnavailable
	if errors.As(err, &unavailable) {
		return http.StatusServiceUnavailable
	}

	switch err.(type) {
	case *ErrCreatorNotFound, *ErrExampleNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
