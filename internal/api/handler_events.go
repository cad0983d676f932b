package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/stats"
)

// GetEvents returns the event collection narrowed to the selected month and
// location.
func (h *Handler) GetEvents(c *gin.Context) {
	events := stats.Filter(h.events.Snapshot(), h.selection(c))
	c.JSON(http.StatusOK, events)
}

// GetFacets returns the filter option lists plus the location legend. The
// lists always come from the full collection, so an active filter never
// hides the other options.
func (h *Handler) GetFacets(c *gin.Context) {
	snapshot := h.events.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"months":    stats.Months(snapshot),
		"locations": stats.Locations(snapshot),
		"legend":    model.Legend(),
	})
}

// GetRecent returns the newest entries of the filtered collection.
func (h *Handler) GetRecent(c *gin.Context) {
	events := stats.Filter(h.events.Snapshot(), h.selection(c))
	c.JSON(http.StatusOK, stats.RecentFeed(events))
}
