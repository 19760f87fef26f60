package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_console/internal/middleware"
	"fleet_console/internal/relation"
)

// RelationController exposes the vehicle<->driver picker: coordinated
// two-sided assignment, unassignment and the selectable counterpart lists.
type RelationController struct {
	assigner *relation.Assigner
}

func NewRelationController(assigner *relation.Assigner) *RelationController {
	return &RelationController{assigner: assigner}
}

func (rc *RelationController) Assign(c *gin.Context) {
	var input struct {
		VehicleID uint `json:"vehicle_id" binding:"required"`
		DriverID  uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment input: " + err.Error()})
		return
	}

	orgID := middleware.OrganizationID(c)
	if err := rc.assigner.Assign(c.Request.Context(), orgID, input.VehicleID, input.DriverID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver assigned"})
}

func (rc *RelationController) Unassign(c *gin.Context) {
	var input struct {
		VehicleID uint `json:"vehicle_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment input: " + err.Error()})
		return
	}

	orgID := middleware.OrganizationID(c)
	if err := rc.assigner.Unassign(c.Request.Context(), orgID, input.VehicleID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver unassigned"})
}

func (rc *RelationController) Options(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	vehicles, drivers, err := rc.assigner.Options(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "drivers": drivers})
}
