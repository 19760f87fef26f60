package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_console/internal/middleware"
	"fleet_console/internal/models"
	"fleet_console/internal/repository"
)

// DashboardController aggregates the landing-page figures: fleet counts,
// vehicle status breakdown and money totals.
type DashboardController struct {
	db *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (dc *DashboardController) Summary(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	ctx := c.Request.Context()

	var vehicleCount, driverCount, activityCount, pendingActivities int64
	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Vehicle{}, &vehicleCount},
		{&models.Driver{}, &driverCount},
		{&models.Activity{}, &activityCount},
	}
	for _, q := range counts {
		err := dc.db.WithContext(ctx).Model(q.model).
			Where("organization_id = ?", orgID).
			Count(q.dest).Error
		if err != nil {
			respondError(c, &repository.TransportError{Op: "dashboard counts", Err: err})
			return
		}
	}
	err := dc.db.WithContext(ctx).Model(&models.Activity{}).
		Where("organization_id = ? AND status = ?", orgID, models.PaymentPending).
		Count(&pendingActivities).Error
	if err != nil {
		respondError(c, &repository.TransportError{Op: "dashboard counts", Err: err})
		return
	}

	vehiclesByStatus := make([]statusCount, 0)
	err = dc.db.WithContext(ctx).Model(&models.Vehicle{}).
		Select("status, count(*) as count").
		Where("organization_id = ?", orgID).
		Group("status").
		Scan(&vehiclesByStatus).Error
	if err != nil {
		respondError(c, &repository.TransportError{Op: "dashboard vehicle statuses", Err: err})
		return
	}

	var totalRevenue, totalExpenses float64
	err = dc.db.WithContext(ctx).Model(&models.Revenue{}).
		Select("coalesce(sum(amount), 0)").
		Where("organization_id = ?", orgID).
		Scan(&totalRevenue).Error
	if err != nil {
		respondError(c, &repository.TransportError{Op: "dashboard revenue total", Err: err})
		return
	}
	err = dc.db.WithContext(ctx).Model(&models.Expense{}).
		Select("coalesce(sum(amount), 0)").
		Where("organization_id = ?", orgID).
		Scan(&totalExpenses).Error
	if err != nil {
		respondError(c, &repository.TransportError{Op: "dashboard expense total", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"vehicles":           vehicleCount,
		"drivers":            driverCount,
		"activities":         activityCount,
		"pending_activities": pendingActivities,
		"vehicles_by_status": vehiclesByStatus,
		"total_revenue":      totalRevenue,
		"total_expenses":     totalExpenses,
		"net":                totalRevenue - totalExpenses,
	}})
}
