package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/response"
)

// TrackDailyVisit upserts one DailyVisit row per authenticated user per day.
// Failures never block the request.
func TrackDailyVisit(visits repository.VisitRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := response.GetUserID(c); err == nil {
			if err := visits.Touch(c.Request.Context(), userID, time.Now().UTC()); err != nil {
				logrus.WithError(err).WithField("user", userID).Warn("failed to record daily visit")
			}
		}
		c.Next()
	}
}
