package mw

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/session"
)

const identityKey = "identity"

// Auth resolves the session cookie into a domain.Identity and stores
// it on the request context. Requests without a valid session are
// rejected with 401.
func Auth(sessions session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(cookieName)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sess, err := sessions.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		if sess.Expired(time.Now()) {
			_ = sessions.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(identityKey, domain.Identity{
			UserID: sess.UserID,
			Name:   sess.Name,
			Role:   domain.Role(sess.Role),
		})
		c.Next()
	}
}

// WithIdentity injects a fixed identity; handler tests use it in place
// of Auth.
func WithIdentity(id domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, id)
		c.Next()
	}
}

// CallerIdentity returns the identity stored by Auth. The boolean is
// false on routes that skipped authentication.
func CallerIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
