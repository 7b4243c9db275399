package dto

// ── 报餐模块 DTO ──

// SubmitMessChoiceRequest 报餐请求
type SubmitMessChoiceRequest struct {
	StudentID   string `json:"studentId"   binding:"required,uuid"`
	StudentName string `json:"studentName" binding:"max=100"`
	HostelName  string `json:"hostelName"  binding:"required,oneof=A B C D"`
	MealType    string `json:"mealType"    binding:"required,oneof=Breakfast Lunch Dinner"`
	Choice      string `json:"choice"      binding:"required"` // Eating | Not Eating，由 Service 校验
}

// MessChoicesResponse 学生当日三餐选择
type MessChoicesResponse struct {
	Date      string `json:"date"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// MessChoiceResponse 报餐写入后的完整记录
type MessChoiceResponse struct {
	ID          string `json:"_id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	HostelName  string `json:"hostelName"`
	Date        string `json:"date"`
	Breakfast   string `json:"breakfast"`
	Lunch       string `json:"lunch"`
	Dinner      string `json:"dinner"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// MealDeadlineResponse 单个餐次的截止状态
type MealDeadlineResponse struct {
	MealType string `json:"mealType"`
	Cutover  string `json:"cutover"` // HH:MM
	Open     bool   `json:"open"`
}

// MessDeadlinesResponse 当日各餐次截止状态，供前端决定是否展示投票按钮
type MessDeadlinesResponse struct {
	Date     string                 `json:"date"`
	Now      string                 `json:"now"`
	Timezone string                 `json:"timezone"`
	Slots    []MealDeadlineResponse `json:"slots"`
}

// MessRosterQuery 报餐名单导出参数
type MessRosterQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
