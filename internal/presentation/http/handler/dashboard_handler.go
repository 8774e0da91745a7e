package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// GetLowStock handles getting items at or below their alert quantity
func (h *DashboardHandler) GetLowStock(c *gin.Context) {
	items, err := h.dashboardService.GetLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", gin.H{
		"items": items,
	})
}

// GetExpiringBatches handles getting batches expiring soon
func (h *DashboardHandler) GetExpiringBatches(c *gin.Context) {
	batches, err := h.dashboardService.GetExpiringBatches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expiring batches retrieved successfully", gin.H{
		"batches": batches,
	})
}
