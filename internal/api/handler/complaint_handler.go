package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/service"
	"hostel-hub/pkg/response"
)

// ComplaintHandler 报修模块 HTTP 处理器
type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

// NewComplaintHandler 创建 ComplaintHandler
func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// File 提交报修
// POST /api/v1/complaint
func (h *ComplaintHandler) File(c *gin.Context) {
	var req dto.FileComplaintRequest
	if !bindJSON(c, &req) {
		return
	}
	if !ensureOwnStudent(c, req.StudentID, req.HostelName) {
		return
	}

	result, err := h.complaintSvc.File(c.Request.Context(), &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}
	response.Created(c, result)
}

// ListMine 学生本人的报修
// GET /api/v1/my-complaints/:id
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if !ensureSelf(c, studentID) {
		return
	}

	result, err := h.complaintSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}
	response.OK(c, result)
}

// ListByHostel 楼栋全部报修
// GET /api/v1/hostel-complaints/:hostel
func (h *ComplaintHandler) ListByHostel(c *gin.Context) {
	hostel := c.Param("hostel")
	if !ensureHostel(c, hostel) {
		return
	}

	result, err := h.complaintSvc.ListByHostel(c.Request.Context(), hostel)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}
	response.OK(c, result)
}

// Resolve 标记报修已处理
// PUT /api/v1/resolve-complaint/:id
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	hostel, ok := MustGetHostel(c)
	if !ok {
		return
	}

	result, err := h.complaintSvc.Resolve(c.Request.Context(), id, hostel)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ComplaintHandler) handleComplaintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrComplaintNotFound):
		response.NotFound(c, 13001, "报修记录不存在")
	case errors.Is(err, service.ErrComplaintForbidden):
		response.Forbidden(c, 10003, "无权处理其他楼栋的报修")
	case errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, 10001, "无效的报修分类")
	case errors.Is(err, service.ErrInvalidHostel):
		response.BadRequest(c, 10001, "无效的楼栋")
	default:
		response.InternalError(c)
	}
}
