package handlers

import (
	"context"
	"net/http"

	"quickmechanic/models"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
)

// PlateResolver is satisfied by *vehicle.Identifier.
type PlateResolver interface {
	Resolve(ctx context.Context, plate string) (*models.Vehicle, error)
}

// VehicleHandler serves standalone plate lookups.
type VehicleHandler struct {
	Resolver PlateResolver
}

func NewVehicleHandler(resolver PlateResolver) *VehicleHandler {
	return &VehicleHandler{Resolver: resolver}
}

// LookupPlateHandler resolves a plate without touching any booking session.
func (h *VehicleHandler) LookupPlateHandler(c *gin.Context) {
	v, err := h.Resolver.Resolve(c.Request.Context(), c.Param("plate"))
	if err != nil {
		utils.WorkflowJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": v})
}
