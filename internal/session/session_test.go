package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExpiryBackfill(t *testing.T) {
	issued := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("no exp claim falls back to max age", func(t *testing.T) {
		sess := Session{UserID: "u1", IssuedAt: issued.Unix()}
		sess.defaultExpiry(24 * time.Hour)

		assert.False(t, sess.Expired(issued.Add(23*time.Hour)))
		assert.True(t, sess.Expired(issued.Add(25*time.Hour)))
	})

	t.Run("own exp claim wins", func(t *testing.T) {
		sess := Session{
			UserID:    "u1",
			IssuedAt:  issued.Unix(),
			ExpiresAt: issued.Add(time.Hour).Unix(),
		}
		sess.defaultExpiry(24 * time.Hour)

		assert.Equal(t, issued.Add(time.Hour).Unix(), sess.ExpiresAt)
		assert.True(t, sess.Expired(issued.Add(2*time.Hour)))
	})

	t.Run("zero max age leaves the session open-ended", func(t *testing.T) {
		sess := Session{UserID: "u1", IssuedAt: issued.Unix()}
		sess.defaultExpiry(0)

		assert.False(t, sess.Expired(issued.AddDate(10, 0, 0)))
	})
}
