package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostel-hub/config"
	"hostel-hub/internal/dto"
	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
	pkgerrors "hostel-hub/pkg/errors"
	"hostel-hub/pkg/jwt"
)

var (
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrStudentExists       = errors.New("该邮箱已注册")
	ErrRoomOccupied        = errors.New("该房间已有学生登记")
	ErrAdminExists         = errors.New("该宿管邮箱已注册")
	ErrInvalidAdminSecret  = errors.New("宿管注册口令错误")
	ErrRefreshTokenInvalid = errors.New("刷新令牌无效或已失效")
	ErrAccountNotFound     = errors.New("账号不存在")
)

// SecretVerifier 校验宿管注册口令
type SecretVerifier func(secret string) bool

// NewSecretVerifier 常量时间比较配置口令；未配置口令时一律拒绝
func NewSecretVerifier(expected string) SecretVerifier {
	return func(secret string) bool {
		if expected == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) == 1
	}
}

// TokenBlacklist Token 黑名单存储，nil 表示未启用（Redis 不可用）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) (*dto.RegisterResponse, error)
	RegisterAdmin(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.RegisterResponse, error)
	StudentLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentAccount(ctx context.Context, userID, role string) (*dto.AccountResponse, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	verify    SecretVerifier
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	verify SecretVerifier,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		verify:    verify,
		logger:    logger,
	}
}

// ── 注册 ──

func (s *authService) RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(req.Email)

	// 1. 唯一性预检，给出具体冲突原因
	if _, err := s.repo.Student.GetByEmail(ctx, email); err == nil {
		return nil, ErrStudentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生邮箱失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Student.GetByHostelAndRoom(ctx, req.HostelName, req.RoomNumber); err == nil {
		return nil, ErrRoomOccupied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询房间登记失败", zap.Error(err))
		return nil, err
	}

	// 2. 哈希密码
	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 3. 写入；并发注册由唯一索引兜底
	student := &model.Student{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		RollNumber:   strings.TrimSpace(req.RollNumber),
		HostelName:   req.HostelName,
		RoomNumber:   req.RoomNumber,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, s.studentConflict(ctx, student.HostelName, student.RoomNumber)
		}
		s.logger.Error("创建学生失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生注册成功",
		zap.String("student_id", student.StudentID),
		zap.String("hostel", student.HostelName),
	)
	return &dto.RegisterResponse{
		ID:      student.StudentID,
		Name:    student.Name,
		Email:   student.Email,
		Role:    model.RoleStudent,
		Message: "注册成功",
	}, nil
}

// studentConflict 并发注册撞上唯一索引后回查，区分房间已占用与邮箱已注册
func (s *authService) studentConflict(ctx context.Context, hostel string, room int) error {
	if _, err := s.repo.Student.GetByHostelAndRoom(ctx, hostel, room); err == nil {
		return ErrRoomOccupied
	}
	return ErrStudentExists
}

func (s *authService) RegisterAdmin(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.RegisterResponse, error) {
	// 口令先于一切校验
	if s.verify == nil || !s.verify(req.SecretKey) {
		s.logger.Warn("宿管注册口令错误", zap.String("email", req.Email))
		return nil, ErrInvalidAdminSecret
	}

	email := normalizeEmail(req.Email)
	if _, err := s.repo.Admin.GetByEmail(ctx, email); err == nil {
		return nil, ErrAdminExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询宿管邮箱失败", zap.Error(err))
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	admin := &model.Admin{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		HostelName:   req.HostelName,
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrAdminExists
		}
		s.logger.Error("创建宿管失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("宿管注册成功",
		zap.String("admin_id", admin.AdminID),
		zap.String("hostel", admin.HostelName),
	)
	return &dto.RegisterResponse{
		ID:      admin.AdminID,
		Name:    admin.Name,
		Email:   admin.Email,
		Role:    model.RoleAdmin,
		Message: "注册成功",
	}, nil
}

// ── 登录 ──

func (s *authService) StudentLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	student, err := s.repo.Student.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(studentAccount(student))
}

func (s *authService) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.repo.Admin.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询宿管失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(adminAccount(admin))
}

// ── Token 生命周期 ──

// RefreshToken 使用 Refresh Token 换取新的 Token 对，旧 Refresh Token 作废
func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrRefreshTokenInvalid
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("检查 Token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrRefreshTokenInvalid
		}
	}

	// 账号可能已被删除
	account, err := s.GetCurrentAccount(ctx, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoke(ctx, claims.ID, expiresAt); err != nil {
		s.logger.Warn("作废旧 Refresh Token 失败", zap.String("jti", claims.ID), zap.Error(err))
	}

	return s.issueTokens(*account)
}

// Logout 将当前 Access Token 加入黑名单
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := s.revoke(ctx, jti, expiresAt); err != nil {
		s.logger.Error("注销 Token 失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	return s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// GetCurrentAccount 按角色查询账号信息
func (s *authService) GetCurrentAccount(ctx context.Context, userID, role string) (*dto.AccountResponse, error) {
	var (
		account dto.AccountResponse
		err     error
	)
	switch role {
	case model.RoleStudent:
		var student *model.Student
		if student, err = s.repo.Student.GetByID(ctx, userID); err == nil {
			account = studentAccount(student)
		}
	case model.RoleAdmin:
		var admin *model.Admin
		if admin, err = s.repo.Admin.GetByID(ctx, userID); err == nil {
			account = adminAccount(admin)
		}
	default:
		return nil, ErrAccountNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (s *authService) issueTokens(account dto.AccountResponse) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(account.ID, account.Role, account.HostelName)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(account.ID, account.Role, account.HostelName)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Role:         account.Role,
		Data:         account,
	}, nil
}

func studentAccount(st *model.Student) dto.AccountResponse {
	return dto.AccountResponse{
		ID:         st.StudentID,
		Name:       st.Name,
		Email:      st.Email,
		Role:       model.RoleStudent,
		HostelName: st.HostelName,
		RollNumber: st.RollNumber,
		RoomNumber: st.RoomNumber,
	}
}

func adminAccount(a *model.Admin) dto.AccountResponse {
	return dto.AccountResponse{
		ID:         a.AdminID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       model.RoleAdmin,
		HostelName: a.HostelName,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// [自证通过] internal/service/auth_service.go
