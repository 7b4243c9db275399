package model

// Student 学生表 — 对应 students
// (hostel_name, room_number) 唯一：一间房只登记一名学生
type Student struct {
	StudentID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	RollNumber   string `gorm:"type:varchar(50);not null"                      json:"roll_number"`
	HostelName   string `gorm:"type:char(1);not null;uniqueIndex:uq_students_hostel_room" json:"hostel_name"`
	RoomNumber   int    `gorm:"not null;uniqueIndex:uq_students_hostel_room"   json:"room_number"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
