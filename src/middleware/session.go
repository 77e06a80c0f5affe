package middleware

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"www.github.com/Wanderer0074348/SheetGrader/src/session"
)

const (
	// SessionCookie is the browser cookie carrying the session ID.
	SessionCookie = "session_id"
	// ContextKey is where the resolved session ID lands on the gin context.
	ContextKey = "session_id"
)

type SessionMiddleware struct {
	store   *session.Store
	manager *session.Manager
	maxAge  int
	secure  bool
}

func NewSessionMiddleware(store *session.Store, manager *session.Manager, maxAge int, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		store:   store,
		manager: manager,
		maxAge:  maxAge,
		secure:  secure,
	}
}

// EnsureSession resolves the caller's session, creating one on first contact.
// An expired session ID gets a fresh session (and a fresh, empty result
// cache); stale in-memory caches for dead sessions are dropped on the spot.
func (m *SessionMiddleware) EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)

		if err == nil && sessionID != "" {
			if _, getErr := m.store.Get(c.Request.Context(), sessionID); getErr == nil {
				if touchErr := m.store.Touch(c.Request.Context(), sessionID); touchErr != nil {
					log.WithError(touchErr).Warn("failed to refresh session")
				}
				c.Set(ContextKey, sessionID)
				c.Next()
				return
			}
			// Cookie points at an expired session: its cache must not survive.
			m.manager.Drop(sessionID)
		}

		created, err := m.store.Create(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			c.Abort()
			return
		}

		c.SetCookie(SessionCookie, created.SessionID, m.maxAge, "/", "", m.secure, true)
		c.Set(ContextKey, created.SessionID)
		c.Next()
	}
}

// SessionID pulls the resolved session ID off the gin context.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextKey)
}
