package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"event-scanner-service/model"
	"event-scanner-service/router"
	"event-scanner-service/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, events []model.EventRecord) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New(filepath.Join(t.TempDir(), "events.json"))
	if events != nil {
		require.NoError(t, s.Save(events))
	}
	return router.Setup(s)
}

func doRequest(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

var testEvents = []model.EventRecord{
	{CommentID: "c1", Text: "来週オフ会を開催します", Author: "alice", ExtractedAt: "2024-06-02T00:00:00.000000Z"},
	{CommentID: "c2", Text: "明日18時スタート", Author: "bob", ExtractedAt: "2024-06-01T00:00:00.000000Z"},
	{CommentID: "c3", Text: "今週土曜にライブ", Author: "alice", ExtractedAt: "2024-05-31T00:00:00.000000Z"},
}

func TestGetEvents(t *testing.T) {
	r := setupRouter(t, testEvents)

	w := doRequest(r, "/api/events")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []model.EventRecord `json:"events"`
		Count  int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "c1", resp.Events[0].CommentID)
}

func TestGetEventsFilters(t *testing.T) {
	r := setupRouter(t, testEvents)

	w := doRequest(r, "/api/events?author=alice")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []model.EventRecord `json:"events"`
		Count  int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	w = doRequest(r, "/api/events?limit=1")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	w = doRequest(r, "/api/events?limit=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEventsEmptyStore(t *testing.T) {
	r := setupRouter(t, nil)

	w := doRequest(r, "/api/events")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"events":[],"count":0}`, w.Body.String())
}

func TestGetEventByID(t *testing.T) {
	r := setupRouter(t, testEvents)

	w := doRequest(r, "/api/events/c2")
	require.Equal(t, http.StatusOK, w.Code)

	var event model.EventRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, "bob", event.Author)

	w = doRequest(r, "/api/events/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventCount(t *testing.T) {
	r := setupRouter(t, testEvents)

	w := doRequest(r, "/api/events/count")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}
