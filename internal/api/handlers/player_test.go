package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/storage"
	"github.com/scoutlens/scoutlens/pkg/config"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

func newPlayerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	cfg := &config.Config{FallbackPolicy: config.FallbackBestEffort}
	adapter := storage.NewAdapter(cfg, storage.NewLocalStore(t.TempDir(), log), nil, nil, log)
	h := NewPlayerHandler(adapter)

	router := gin.New()
	router.GET("/players", h.GetPlayers)
	router.POST("/players", h.UpsertPlayer)
	router.PATCH("/players/:id/photo", h.SetPhotoPath)
	router.PATCH("/players/:id/tags", h.SetTags)
	router.DELETE("/players", h.RemovePlayers)
	router.GET("/teams", h.GetTeams)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestPlayersEndpointLifecycle(t *testing.T) {
	router := newPlayerRouter(t)

	// empty store lists as empty, not an error
	w, resp := doJSON(t, router, http.MethodGet, "/players", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// create two players, one through a legacy alias payload
	w, resp = doJSON(t, router, http.MethodPost, "/players", gin.H{"name": "Luka Jovic", "team_name": "River Plate"})
	require.Equal(t, http.StatusOK, w.Code)
	id1 := resp.Data.(map[string]any)["id"].(string)
	require.NotEmpty(t, id1)

	w, _ = doJSON(t, router, http.MethodPost, "/players", gin.H{"name": "Enzo Fernandez", "Team": "River Plate"})
	require.Equal(t, http.StatusOK, w.Code)

	// alias-agnostic, case-insensitive team filter
	w, resp = doJSON(t, router, http.MethodGet, "/players?team=river+plate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data.([]any), 2)

	// tag and photo updates
	w, _ = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/players/%s/tags", id1), gin.H{"tags": []string{"target"}})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/players/%s/photo", id1), gin.H{"photo_path": "photos/luka.jpg"})
	assert.Equal(t, http.StatusOK, w.Code)

	// teams listing
	w, resp = doJSON(t, router, http.MethodGet, "/teams", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"River Plate"}, resp.Data)

	// delete reports an accurate count for partially-unknown ids
	w, resp = doJSON(t, router, http.MethodDelete, "/players", gin.H{"ids": []string{id1, "zzz"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, resp.Data.(map[string]any)["deleted"])

	w, resp = doJSON(t, router, http.MethodGet, "/players", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data.([]any), 1)
}

func TestUpsertRejectsMalformedJSON(t *testing.T) {
	router := newPlayerRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/players", bytes.NewReader([]byte(`{"name":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveRequiresIDs(t *testing.T) {
	router := newPlayerRouter(t)

	w, resp := doJSON(t, router, http.MethodDelete, "/players", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, utils.ErrCodeValidation, resp.Error.Code)
}
