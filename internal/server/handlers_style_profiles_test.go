package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/creator-studio/internal/types"
)

const testCreatorID = "3e14f9c2-9f63-4e16-8d3b-2a4b6f9ad111"

func TestHandleGetStyleProfile_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/creators/bad/style-profile", nil)
	req.SetPathValue("id", "bad")
	w := httptest.NewRecorder()

	s.handleGetStyleProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateStyleProfile_InvalidCaseStyle(t *testing.T) {
	s := newTestServer()

	profile := types.DefaultStyleProfile()
	profile.CaseStyle = "shouting"
	body, err := json.Marshal(profile)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/creators/"+testCreatorID+"/style-profile", bytes.NewBuffer(body))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleUpdateStyleProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "case_style")
}

func TestHandleUpdateStyleProfile_AllViolationsReported(t *testing.T) {
	s := newTestServer()

	profile := types.DefaultStyleProfile()
	profile.CaseStyle = "shouting"
	profile.MessageLengthPreferences.OptimalLength = 1000 // above max 500
	profile.PunctuationRules.MaxConsecutiveExclamations = -1
	body, err := json.Marshal(profile)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/creators/"+testCreatorID+"/style-profile", bytes.NewBuffer(body))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleUpdateStyleProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "case_style")
	assert.Contains(t, resp.Fields, "message_length_preferences.max_length")
	assert.Contains(t, resp.Fields, "punctuation_rules.max_consecutive_exclamations")
}

func TestHandleAddEmoji_MissingValue(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/creators/"+testCreatorID+"/style-profile/emojis", bytes.NewBufferString(`{}`))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleAddEmoji(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRemoveEmoji_MissingValue(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/creators/"+testCreatorID+"/style-profile/emojis", nil)
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleRemoveEmoji(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSetReplacement_MissingKey(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/creators/"+testCreatorID+"/style-profile/replacements", bytes.NewBufferString(`{"value":"u"}`))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleSetReplacement(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleValidateProfileDocument_Valid(t *testing.T) {
	s := newTestServer()

	body, err := json.Marshal(types.DefaultStyleProfile())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/style-profile/validate-document", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	s.handleValidateProfileDocument(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestHandleValidateProfileDocument_Invalid(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/style-profile/validate-document",
		bytes.NewBufferString(`{"case_style":"shouting"}`))
	w := httptest.NewRecorder()

	s.handleValidateProfileDocument(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid      bool `json:"valid"`
		Violations []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Violations)
}

func TestHandleValidateProfileDocument_NotJSON(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/style-profile/validate-document",
		bytes.NewBufferString("{ not json"))
	w := httptest.NewRecorder()

	s.handleValidateProfileDocument(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImportProfileDocument_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/creators/bad/style-profile/document", nil)
	req.SetPathValue("id", "bad")
	w := httptest.NewRecorder()

	s.handleImportProfileDocument(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImportProfileDocument_SchemaViolation(t *testing.T) {
	s := newTestServer()

	profile := types.DefaultStyleProfile()
	profile.CaseStyle = "shouting"
	body, err := json.Marshal(profile)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/creators/"+testCreatorID+"/style-profile/document", bytes.NewBuffer(body))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleImportProfileDocument(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "case_style")
}

func TestHandleImportProfileDocument_UnknownField(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/creators/"+testCreatorID+"/style-profile/document",
		bytes.NewBufferString(`{"bogus": true}`))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleImportProfileDocument(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImportProfileDocument_NotJSON(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/creators/"+testCreatorID+"/style-profile/document",
		bytes.NewBufferString("{ not json"))
	req.SetPathValue("id", testCreatorID)
	w := httptest.NewRecorder()

	s.handleImportProfileDocument(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
