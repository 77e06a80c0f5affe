package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.github.com/Wanderer0074348/SheetGrader/src/cache"
	"www.github.com/Wanderer0074348/SheetGrader/src/middleware"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
	"www.github.com/Wanderer0074348/SheetGrader/src/session"
)

func setupSessionHandler(t *testing.T) (*SessionHandler, *session.Store, *session.Manager) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := session.NewStore(client, time.Hour)
	manager := session.NewManager()

	return NewSessionHandler(store, manager), store, manager
}

func TestHandleGetSession(t *testing.T) {
	handler, store, manager := setupSessionHandler(t)

	created, err := store.Create(t.Context())
	require.NoError(t, err)

	key := cache.ComputeKey([]byte("doc"), models.ModeStandard, "")
	manager.Put(created.SessionID, key, cache.Entry{Filename: "a.pdf", Mode: models.ModeStandard})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/session", nil)
	c.Set(middleware.ContextKey, created.SessionID)
	handler.HandleGetSession(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Session       models.Session `json:"session"`
		CachedResults int            `json:"cached_results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, created.SessionID, body.Session.SessionID)
	assert.Equal(t, 1, body.CachedResults)
}

func TestHandleGetSession_Unknown(t *testing.T) {
	handler, _, _ := setupSessionHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/session", nil)
	c.Set(middleware.ContextKey, "sess_gone")
	handler.HandleGetSession(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleEndSession_DropsMetadataAndCache(t *testing.T) {
	handler, store, manager := setupSessionHandler(t)

	created, err := store.Create(t.Context())
	require.NoError(t, err)

	key := cache.ComputeKey([]byte("doc"), models.ModeStandard, "")
	manager.Put(created.SessionID, key, cache.Entry{Filename: "a.pdf", Mode: models.ModeStandard})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/v1/session", nil)
	c.Set(middleware.ContextKey, created.SessionID)
	handler.HandleEndSession(c)

	require.Equal(t, http.StatusOK, w.Code)

	_, err = store.Get(t.Context(), created.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, ok := manager.Lookup(created.SessionID, key)
	assert.False(t, ok, "ending the session must destroy its cache")
}
