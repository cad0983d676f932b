package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/refresh"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/stats"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	events  *store.Events
	store   store.Store
	sched   *refresh.Scheduler
	webpush *webpush.Options
	loc     *time.Location
}

// NewHandler creates a new API handler. webpushOptions is nil when push is
// disabled.
func NewHandler(events *store.Events, s store.Store, sched *refresh.Scheduler, webpushOptions *webpush.Options, loc *time.Location) *Handler {
	return &Handler{
		events:  events,
		store:   s,
		sched:   sched,
		webpush: webpushOptions,
		loc:     loc,
	}
}

// selection reads the month/location filter pair off the query string.
func (h *Handler) selection(c *gin.Context) stats.Selection {
	return stats.Selection{
		Month:    c.DefaultQuery("month", stats.FilterAll),
		Location: c.DefaultQuery("location", stats.FilterAll),
	}
}
