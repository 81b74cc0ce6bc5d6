package handler

import (
	"net/http"

	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Get godoc
// @Summary Dashboard
// @Description Fleet statistics and cost series for a year
// @Tags Dashboard
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {object} domain.Dashboard
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Get(r.Context(), queryInt(r, "year"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}
