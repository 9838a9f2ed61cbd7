package handlers

import (
	"context"
	"net/http"

	"quickmechanic/services/tracking"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
)

// OrderTracker is satisfied by *tracking.Tracker.
type OrderTracker interface {
	Track(ctx context.Context, orderID string) (*tracking.Tracking, error)
}

type TrackingHandler struct {
	Tracker OrderTracker
}

func NewTrackingHandler(tracker OrderTracker) *TrackingHandler {
	return &TrackingHandler{Tracker: tracker}
}

// TrackOrderHandler renders an order's progress through the lifecycle.
func (h *TrackingHandler) TrackOrderHandler(c *gin.Context) {
	t, err := h.Tracker.Track(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		utils.WorkflowJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
