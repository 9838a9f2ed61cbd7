package handlers

import (
	"net/http"

	"quickmechanic/services/quote"

	"github.com/gin-gonic/gin"
)

// GetServicesHandler lists the service catalogue with base estimates.
func GetServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": quote.Services()})
}

// GetTimeSlotsHandler lists the bookable start times.
func GetTimeSlotsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeslots": quote.TimeSlots})
}
