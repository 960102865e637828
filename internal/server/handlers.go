package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/creator-studio/internal/query"
)

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(key))
}

// parsePaging reads skip/limit query parameters and clamps them to the
// server's window rules. A configured page size overrides the default limit.
func (s *Server) parsePaging(r *http.Request) (int, int) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit == 0 {
		limit = s.pageSize
	}
	return query.Clamp(skip, limit)
}
