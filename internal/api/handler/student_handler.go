package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/service"
	"hostel-hub/pkg/response"
)

// StudentHandler 学生查询
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Search 按楼栋与房间号查询学生，未找到时返回 {notFound: true}
// GET /api/v1/student-search?room=101&hostel=A
func (h *StudentHandler) Search(c *gin.Context) {
	var q dto.StudentSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if !ensureHostel(c, q.Hostel) {
		return
	}

	result, err := h.studentSvc.SearchByRoom(c.Request.Context(), q.Hostel, q.Room)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.OK(c, gin.H{"notFound": true})
		case errors.Is(err, service.ErrInvalidHostel):
			response.BadRequest(c, 10001, "无效的楼栋")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}
