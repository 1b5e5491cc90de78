package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/mw"
	"lasalleserve-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// dateLayout is the wire format for loan start/end dates.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// caller pulls the identity resolved by the auth middleware. Routes
// behind mw.Auth always have one; a miss is a wiring bug.
func caller(c *gin.Context) (domain.Identity, bool) {
	id, ok := mw.CallerIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

// abortWithError translates domain errors into HTTP status codes.
// Anything untyped is a 500 and deliberately opaque to the client.
func abortWithError(c *gin.Context, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		status := http.StatusInternalServerError
		switch derr.Code {
		case domain.ErrCodeValidation:
			status = http.StatusBadRequest
		case domain.ErrCodeUnauthorized:
			status = http.StatusForbidden
		case domain.ErrCodeNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeState, domain.ErrCodeInsufficientStock:
			status = http.StatusConflict
		}
		c.AbortWithStatusJSON(status, gin.H{"code": derr.Code, "error": derr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
