package dto

// DashboardStatsResponse 宿管首页统计
type DashboardStatsResponse struct {
	Hostel            string            `json:"hostel"`
	Date              string            `json:"date"`
	TotalStudents     int64             `json:"totalStudents"`
	PendingComplaints int64             `json:"pendingComplaints"`
	MessStats         MessStatsResponse `json:"messStats"`
}

// MessStatsResponse 当日三餐就餐人数，三项互不排斥
type MessStatsResponse struct {
	BreakfastEating int64 `json:"breakfastEating"`
	LunchEating     int64 `json:"lunchEating"`
	DinnerEating    int64 `json:"dinnerEating"`
}
