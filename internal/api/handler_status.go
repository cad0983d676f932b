package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus reports the refresh loop state for the dashboard header:
// loading flag, last refresh time, last error, countdown and event count.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.events.Status(h.sched.Countdown()))
}

// PostRefresh requests an immediate refresh outside the schedule. The work
// happens asynchronously; the response only acknowledges the trigger.
func (h *Handler) PostRefresh(c *gin.Context) {
	h.sched.TriggerRefresh()
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh scheduled"})
}
