package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"www.github.com/Wanderer0074348/SheetGrader/src/middleware"
	"www.github.com/Wanderer0074348/SheetGrader/src/session"
)

type SessionHandler struct {
	sessions *session.Store
	caches   *session.Manager
}

func NewSessionHandler(sessions *session.Store, caches *session.Manager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		caches:   caches,
	}
}

// HandleGetSession reports the caller's session metadata and cache size.
func (h *SessionHandler) HandleGetSession(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	meta, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":        meta,
		"cached_results": h.caches.Len(sessionID),
	})
}

// HandleEndSession terminates the session: metadata and the in-memory result
// cache go together.
func (h *SessionHandler) HandleEndSession(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		log.WithError(err).Error("failed to delete session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
		return
	}
	h.caches.Drop(sessionID)

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "session ended"})
}
