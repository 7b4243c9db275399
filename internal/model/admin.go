package model

// Admin 宿管表 — 对应 admins，每名宿管只管理一个楼栋
type Admin struct {
	AdminID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	HostelName   string `gorm:"type:char(1);not null"                          json:"hostel_name"`
	BaseModel
}

// TableName 指定表名
func (Admin) TableName() string { return "admins" }
