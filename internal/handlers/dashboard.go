package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/taskforce/taskforce-api/internal/errors"
	"github.com/taskforce/taskforce-api/internal/middleware"
	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/services"
)

// DashboardHandler exposes the reporting endpoints.
type DashboardHandler struct {
	statsService *services.StatsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(statsService *services.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// Stats returns the dashboard counters. An employee sees only their own
// task breakdown; admins and managers get the global view with user
// population figures.
func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if actor.Role == models.RoleEmployee {
		counts, err := h.statsService.EmployeeStats(actor.ID)
		if err != nil {
			apierrors.InternalError(c, "Failed to compute stats")
			return
		}
		c.JSON(http.StatusOK, counts)
		return
	}

	stats, err := h.statsService.GlobalStats()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Performance returns the per-employee completion report.
func (h *DashboardHandler) Performance(c *gin.Context) {
	report, err := h.statsService.Performance()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute performance")
		return
	}

	c.JSON(http.StatusOK, report)
}
