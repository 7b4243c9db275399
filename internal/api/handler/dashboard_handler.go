package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hostel-hub/internal/service"
	"hostel-hub/pkg/response"
)

// DashboardHandler 宿管首页统计
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Stats 楼栋人数、待处理报修与当日报餐人数
// GET /api/v1/dashboard-stats/:hostel
func (h *DashboardHandler) Stats(c *gin.Context) {
	hostel := c.Param("hostel")
	if !ensureHostel(c, hostel) {
		return
	}

	result, err := h.dashboardSvc.GetStats(c.Request.Context(), hostel)
	if err != nil {
		if errors.Is(err, service.ErrInvalidHostel) {
			response.BadRequest(c, 10001, "无效的楼栋")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
