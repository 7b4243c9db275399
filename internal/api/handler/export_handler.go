package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/service"
	"hostel-hub/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportComplaints 导出楼栋报修清单
// GET /api/v1/export/complaints/:hostel
func (h *ExportHandler) ExportComplaints(c *gin.Context) {
	hostel := c.Param("hostel")
	if !ensureHostel(c, hostel) {
		return
	}

	buf, filename, err := h.exportSvc.ExportComplaints(c.Request.Context(), hostel)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeXLSX(c, buf, filename)
}

// ExportMessRoster 导出楼栋报餐名单
// GET /api/v1/export/mess/:hostel?date=2026-03-02
func (h *ExportHandler) ExportMessRoster(c *gin.Context) {
	hostel := c.Param("hostel")
	if !ensureHostel(c, hostel) {
		return
	}

	var q dto.MessRosterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "date 格式应为 YYYY-MM-DD")
		return
	}

	buf, filename, err := h.exportSvc.ExportMessRoster(c.Request.Context(), hostel, q.Date)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeXLSX(c, buf, filename)
}

// writeXLSX 设置下载响应头
func writeXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidHostel):
		response.BadRequest(c, 10001, "无效的楼栋")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 15001, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
