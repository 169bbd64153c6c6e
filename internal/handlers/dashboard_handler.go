package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/services"
)

// DashboardHandler serves the aggregated monthly dashboard.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard computes the current month's summary and budget
// evaluation from a fresh snapshot. The clock is read here, at the
// transport edge, and passed down explicitly.
// @Summary     Get dashboard
// @Description Get the current month's summary, breakdown, streaks, and budget evaluation
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
