package dto

// ── 报修模块 DTO ──

// FileComplaintRequest 提交报修请求
type FileComplaintRequest struct {
	StudentID   string `json:"studentId"   binding:"required,uuid"`
	StudentName string `json:"studentName" binding:"max=100"`
	HostelName  string `json:"hostelName"  binding:"required,oneof=A B C D"`
	RoomNumber  int    `json:"roomNumber"  binding:"required,min=1"`
	Category    string `json:"category"    binding:"required,oneof=Electricity Plumbing Mess Internet Other"`
	Description string `json:"description" binding:"required,max=2000"`
}

// ComplaintResponse 报修记录
type ComplaintResponse struct {
	ID          string `json:"_id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	HostelName  string `json:"hostelName"`
	RoomNumber  int    `json:"roomNumber"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}
