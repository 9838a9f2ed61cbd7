package handlers

import (
	"net/http"

	"quickmechanic/middleware"
	"quickmechanic/services/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler tells the caller which dashboard variant to open.
func DashboardHandler(c *gin.Context) {
	userID, userType, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	d, err := dashboard.Resolve(userType)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "dashboard": d})
}
