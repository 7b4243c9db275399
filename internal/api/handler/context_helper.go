package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hostel-hub/internal/api/middleware"
	"hostel-hub/internal/model"
	"hostel-hub/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxUserID)
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxRole)
}

// MustGetHostel 从 Gin 上下文中安全提取账号所属楼栋。
func MustGetHostel(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxHostel)
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	s := c.GetString(key)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// tokenMeta 当前 Access Token 的 jti 与过期时间，注销时使用
func tokenMeta(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.CtxTokenJTI), c.GetTime(middleware.CtxTokenExp)
}

// ensureSelf 仅学生本人可访问；宿管按楼栋走 hostel-complaints / dashboard 接口。
func ensureSelf(c *gin.Context, studentID string) bool {
	userID, ok := MustGetUserID(c)
	if !ok {
		return false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return false
	}
	if role != model.RoleStudent || userID != studentID {
		response.Forbidden(c, 10003, "只能访问本人数据")
		return false
	}
	return true
}

// ensureOwnStudent 写操作：必须是学生本人，且楼栋与 Token 一致。
func ensureOwnStudent(c *gin.Context, studentID, hostel string) bool {
	userID, ok := MustGetUserID(c)
	if !ok {
		return false
	}
	tokenHostel, ok := MustGetHostel(c)
	if !ok {
		return false
	}
	if userID != studentID || tokenHostel != hostel {
		response.Forbidden(c, 10003, "只能提交本人数据")
		return false
	}
	return true
}

// ensureHostel 宿管只能访问所管楼栋。
func ensureHostel(c *gin.Context, hostel string) bool {
	tokenHostel, ok := MustGetHostel(c)
	if !ok {
		return false
	}
	if tokenHostel != hostel {
		response.Forbidden(c, 10003, "无权访问其他楼栋")
		return false
	}
	return true
}

// bindJSON 绑定请求体；失败时写入 400，请求体超限写入 413。
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return false
		}
		response.BadRequest(c, 10001, "参数校验失败")
		return false
	}
	return true
}

// uuidParam 读取 UUID 格式的路径参数，格式错误写入 400。
func uuidParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, 10001, "无效的 ID")
		return "", false
	}
	return id, true
}
