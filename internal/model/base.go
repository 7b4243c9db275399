package model

import "time"

// BaseModel 通用时间戳字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 楼栋 ──

// Hostels 全部楼栋编号
var Hostels = []string{"A", "B", "C", "D"}

// IsValidHostel 校验楼栋编号
func IsValidHostel(h string) bool {
	for _, v := range Hostels {
		if v == h {
			return true
		}
	}
	return false
}

// ── 账号角色 ──

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// [自证通过] internal/model/base.go
