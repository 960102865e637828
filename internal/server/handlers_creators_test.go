package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCreateCreator_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/creators", bytes.NewBufferString("{ not json"))
	w := httptest.NewRecorder()

	s.handleCreateCreator(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Contains(t, resp["error"], "Invalid request body")
}

func TestHandleCreateCreator_MissingName(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/creators", bytes.NewBufferString(`{"description":"no name"}`))
	w := httptest.NewRecorder()

	s.handleCreateCreator(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateCreator_NameTooLong(t *testing.T) {
	s := newTestServer()

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	body, err := json.Marshal(map[string]string{"name": string(long)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/creators", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	s.handleCreateCreator(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetCreator_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/creators/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetCreator(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Contains(t, resp["error"], "Invalid creator ID")
}

func TestHandleListCreators_InvalidStatus(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/creators?status=paused", nil)
	w := httptest.NewRecorder()

	s.handleListCreators(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Contains(t, resp["error"], "status")
}

func TestHandleUpdateCreator_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/creators/xyz", bytes.NewBufferString(`{"name":"new"}`))
	req.SetPathValue("id", "xyz")
	w := httptest.NewRecorder()

	s.handleUpdateCreator(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSetCreatorActive_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/creators/3e14f9c2-9f63-4e16-8d3b-2a4b6f9ad111/active", bytes.NewBufferString("nope"))
	req.SetPathValue("id", "3e14f9c2-9f63-4e16-8d3b-2a4b6f9ad111")
	w := httptest.NewRecorder()

	s.handleSetCreatorActive(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteCreator_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/creators/bad", nil)
	req.SetPathValue("id", "bad")
	w := httptest.NewRecorder()

	s.handleDeleteCreator(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
