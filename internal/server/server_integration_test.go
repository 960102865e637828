//go:build integration

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/creator-studio/internal/config"
	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/query"
	"github.com/jonathan/creator-studio/internal/stats"
	"github.com/jonathan/creator-studio/internal/types"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL environment variable to run them.

func getIntegrationServer(t *testing.T) (*Server, http.Handler, string) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx))

	s := &Server{
		db:         database,
		stats:      stats.NewAggregator(database),
		jwtService: NewJWTService(&config.JWTConfig{Secret: "itest-secret", ExpirationHours: 1}),
		pageSize:   query.DefaultLimit,
	}

	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	t.Cleanup(database.Close)
	return s, s.routes(), token
}

func doJSON(t *testing.T, handler http.Handler, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestIntegration_CreatorCRUDOverHTTP(t *testing.T) {
	_, handler, token := getIntegrationServer(t)

	w := doJSON(t, handler, token, http.MethodPost, "/creators",
		map[string]any{"name": "itest-http-creator", "description": "made over http"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var creator types.Creator
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creator))
	assert.True(t, creator.IsActive)

	w = doJSON(t, handler, token, http.MethodGet, "/creators/"+creator.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, handler, token, http.MethodPost, "/creators/"+creator.ID.String()+"/active",
		map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	var updated types.Creator
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.IsActive)

	w = doJSON(t, handler, token, http.MethodDelete, "/creators/"+creator.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, handler, token, http.MethodGet, "/creators/"+creator.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIntegration_StyleProfileOverHTTP(t *testing.T) {
	_, handler, token := getIntegrationServer(t)

	w := doJSON(t, handler, token, http.MethodPost, "/creators", map[string]any{"name": "itest-profile-http"})
	require.Equal(t, http.StatusCreated, w.Code)
	var creator types.Creator
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creator))
	defer doJSON(t, handler, token, http.MethodDelete, "/creators/"+creator.ID.String(), nil)

	// first access materializes the defaulted profile
	w = doJSON(t, handler, token, http.MethodGet, "/creators/"+creator.ID.String()+"/style-profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile types.StyleProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, types.CaseStyleSentence, profile.CaseStyle)
	assert.Equal(t, 100, profile.MessageLengthPreferences.OptimalLength)

	// incremental emoji add
	w = doJSON(t, handler, token, http.MethodPost,
		"/creators/"+creator.ID.String()+"/style-profile/emojis", map[string]string{"value": "🔥"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Contains(t, profile.ApprovedEmojis, "🔥")

	// whole-object update with a violation leaves the profile untouched
	bad := profile
	bad.CaseStyle = "shouting"
	w = doJSON(t, handler, token, http.MethodPut, "/creators/"+creator.ID.String()+"/style-profile", bad)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, handler, token, http.MethodGet, "/creators/"+creator.ID.String()+"/style-profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, types.CaseStyleSentence, profile.CaseStyle)
}

func TestIntegration_ImportExportOverHTTP(t *testing.T) {
	_, handler, token := getIntegrationServer(t)

	w := doJSON(t, handler, token, http.MethodPost, "/creators", map[string]any{"name": "itest-csv-http"})
	require.Equal(t, http.StatusCreated, w.Code)
	var creator types.Creator
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creator))
	defer doJSON(t, handler, token, http.MethodDelete, "/creators/"+creator.ID.String(), nil)

	csv := "fan_message,creator_response,category\nhi!,hey hey,Greeting\noops,,Greeting\n"
	req := httptest.NewRequest(http.MethodPost, "/creators/"+creator.ID.String()+"/style-examples/import",
		strings.NewReader(csv))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Total    int `json:"total"`
		Imported int `json:"imported"`
		Failures []struct {
			Row int `json:"row"`
		} `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Failures[0].Row)

	w = doJSON(t, handler, token, http.MethodGet, "/creators/"+creator.ID.String()+"/style-examples/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "hey hey")

	// export honors the active search and category filters
	w = doJSON(t, handler, token, http.MethodPost, "/creators/"+creator.ID.String()+"/style-examples",
		map[string]any{"fan_message": "what's up", "creator_response": "not much", "category": "Question"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, handler, token, http.MethodGet,
		"/creators/"+creator.ID.String()+"/style-examples/export?category=Greeting", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hey hey")
	assert.NotContains(t, w.Body.String(), "not much")

	w = doJSON(t, handler, token, http.MethodGet,
		"/creators/"+creator.ID.String()+"/style-examples/export?search=nope", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hey hey")

	w = doJSON(t, handler, token, http.MethodGet,
		"/creators/"+creator.ID.String()+"/style-examples/export?category=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegration_StatsOverHTTP(t *testing.T) {
	_, handler, token := getIntegrationServer(t)

	w := doJSON(t, handler, token, http.MethodPost, "/creators", map[string]any{"name": "itest-stats-http"})
	require.Equal(t, http.StatusCreated, w.Code)
	var creator types.Creator
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creator))
	defer doJSON(t, handler, token, http.MethodDelete, "/creators/"+creator.ID.String(), nil)

	w = doJSON(t, handler, token, http.MethodPost, "/creators/"+creator.ID.String()+"/style-examples",
		map[string]any{"fan_message": "hi", "creator_response": "hey", "category": "Greeting"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, handler, token, http.MethodGet, "/creators/"+creator.ID.String()+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot types.CreatorStatsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 1, snapshot.StyleExamplesCount)
	assert.Equal(t, 1, snapshot.TotalExamples)

	// bulk stats includes unknown ids as zeroed snapshots
	unknown := uuid.New()
	w = doJSON(t, handler, token, http.MethodPost, "/stats/bulk",
		map[string]any{"creator_ids": []string{creator.ID.String(), unknown.String()}})
	require.Equal(t, http.StatusOK, w.Code)

	var bulk struct {
		Snapshots map[string]types.CreatorStatsSnapshot `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bulk))
	assert.Len(t, bulk.Snapshots, 2)
	assert.Equal(t, 0, bulk.Snapshots[unknown.String()].TotalExamples)
}
