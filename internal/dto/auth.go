package dto

// ── 认证模块 DTO ──

// StudentRegisterRequest 学生注册请求
type StudentRegisterRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=6,max=72"`
	RollNumber string `json:"rollNumber" binding:"required,max=50"`
	HostelName string `json:"hostelName" binding:"required,oneof=A B C D"`
	RoomNumber int    `json:"roomNumber" binding:"required,min=1"`
}

// AdminRegisterRequest 宿管注册请求，SecretKey 为宿管注册口令
type AdminRegisterRequest struct {
	SecretKey  string `json:"secretKey"  binding:"required"`
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=6,max=72"`
	HostelName string `json:"hostelName" binding:"required,oneof=A B C D"`
}

// LoginRequest 登录请求（学生与宿管共用）
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ── 认证模块响应 ──

// TokenResponse 登录 / 刷新成功响应
type TokenResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int             `json:"expiresIn"` // Access Token 有效期（秒）
	Role         string          `json:"role"`
	Data         AccountResponse `json:"data"`
}

// AccountResponse 账号信息（脱敏）
type AccountResponse struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	HostelName string `json:"hostelName"`
	RollNumber string `json:"rollNumber,omitempty"`
	RoomNumber int    `json:"roomNumber,omitempty"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}
