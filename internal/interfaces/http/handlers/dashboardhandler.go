package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketapp/internal/application/ticket/usecases"
	"ticketapp/internal/interfaces/http/middleware"
	"ticketapp/internal/shared/utils"
)

type DashboardHandler struct {
	dashboardUC usecases.GetDashboardExecutor
}

func NewDashboardHandler(dashboardUC usecases.GetDashboardExecutor) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	result, err := h.dashboardUC.Execute(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
