package dto

// StudentSearchQuery 按房间号查询学生
type StudentSearchQuery struct {
	Room   int    `form:"room"   binding:"required,min=1"`
	Hostel string `form:"hostel" binding:"required,oneof=A B C D"`
}

// StudentResponse 学生信息（脱敏）
type StudentResponse struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNumber string `json:"rollNumber"`
	HostelName string `json:"hostelName"`
	RoomNumber int    `json:"roomNumber"`
}
