package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/stats"
)

// GetLocationStats returns the location distribution of the filtered
// collection.
func (h *Handler) GetLocationStats(c *gin.Context) {
	filtered := stats.Filter(h.events.Snapshot(), h.selection(c))
	c.JSON(http.StatusOK, stats.LocationDistribution(filtered))
}

// GetFloorStats returns the condo floor histogram plus its headline figure.
// The view always covers the full collection.
func (h *Handler) GetFloorStats(c *gin.Context) {
	counts := stats.FloorDistribution(h.events.Snapshot())
	c.JSON(http.StatusOK, gin.H{
		"floors":       counts,
		"mostFrequent": stats.MostFrequentFloor(counts),
	})
}

// GetTrend returns the workday arrival-time series over the full collection.
func (h *Handler) GetTrend(c *gin.Context) {
	c.JSON(http.StatusOK, stats.ArrivalTrend(h.events.Snapshot(), stats.TieLastInput))
}

// GetAverages returns the mean arrival minutes per location for the selected
// period.
func (h *Handler) GetAverages(c *gin.Context) {
	period, ok := stats.ParsePeriod(c.DefaultQuery("period", string(stats.PeriodAll)))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid period, want all, week or month"})
		return
	}
	c.JSON(http.StatusOK, stats.AverageArrivals(h.events.Snapshot(), period, h.loc))
}

// GetDailyStats returns how many entries were logged per calendar day,
// filtered by the active selection.
func (h *Handler) GetDailyStats(c *gin.Context) {
	filtered := stats.Filter(h.events.Snapshot(), h.selection(c))
	c.JSON(http.StatusOK, stats.DailyCounts(filtered, h.loc))
}
