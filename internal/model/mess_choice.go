package model

import "fmt"

// ── 餐次 ──

// MealSlot 餐次：早餐 / 午餐 / 晚餐
type MealSlot string

const (
	MealBreakfast MealSlot = "Breakfast"
	MealLunch     MealSlot = "Lunch"
	MealDinner    MealSlot = "Dinner"
)

// MealSlots 按一天内先后顺序
var MealSlots = []MealSlot{MealBreakfast, MealLunch, MealDinner}

// ParseMealSlot 校验并转换餐次
func ParseMealSlot(s string) (MealSlot, error) {
	switch MealSlot(s) {
	case MealBreakfast, MealLunch, MealDinner:
		return MealSlot(s), nil
	}
	return "", fmt.Errorf("未知餐次 %q", s)
}

// Column 餐次对应的 mess_choices 列名
func (m MealSlot) Column() string {
	switch m {
	case MealBreakfast:
		return "breakfast"
	case MealLunch:
		return "lunch"
	case MealDinner:
		return "dinner"
	}
	return ""
}

// ── 报餐选项 ──

const (
	ChoiceEating    = "Eating"
	ChoiceNotEating = "Not Eating"
)

// IsValidChoice 校验报餐选项
func IsValidChoice(c string) bool {
	return c == ChoiceEating || c == ChoiceNotEating
}

// MessChoice 每日报餐表 — 对应 mess_choices
// (student_id, date) 唯一，date 为服务器时区下的 YYYY-MM-DD
// student_name / hostel_name 为写入时的冗余副本，统计时无需回表
type MessChoice struct {
	MessChoiceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"mess_choice_id"`
	StudentID    string `gorm:"type:uuid;not null;uniqueIndex:uq_mess_choices_student_date"  json:"student_id"`
	StudentName  string `gorm:"type:varchar(100);not null;default:''"                        json:"student_name"`
	HostelName   string `gorm:"type:char(1);not null;index:idx_mess_choices_hostel_date"     json:"hostel_name"`
	Date         string `gorm:"type:varchar(10);not null;uniqueIndex:uq_mess_choices_student_date;index:idx_mess_choices_hostel_date" json:"date"`
	Breakfast    string `gorm:"type:varchar(20);not null;default:'Not Eating'"               json:"breakfast"`
	Lunch        string `gorm:"type:varchar(20);not null;default:'Not Eating'"               json:"lunch"`
	Dinner       string `gorm:"type:varchar(20);not null;default:'Not Eating'"               json:"dinner"`
	BaseModel
}

// TableName 指定表名
func (MessChoice) TableName() string { return "mess_choices" }

// NewMessChoice 当日首次报餐时构造的记录，三餐均为默认值
func NewMessChoice(studentID, studentName, hostelName, date string) *MessChoice {
	return &MessChoice{
		StudentID:   studentID,
		StudentName: studentName,
		HostelName:  hostelName,
		Date:        date,
		Breakfast:   ChoiceNotEating,
		Lunch:       ChoiceNotEating,
		Dinner:      ChoiceNotEating,
	}
}

// Get 读取指定餐次的选项
func (m *MessChoice) Get(slot MealSlot) string {
	switch slot {
	case MealBreakfast:
		return m.Breakfast
	case MealLunch:
		return m.Lunch
	case MealDinner:
		return m.Dinner
	}
	return ""
}

// Set 只修改指定餐次，其余餐次保持不变
func (m *MessChoice) Set(slot MealSlot, choice string) {
	switch slot {
	case MealBreakfast:
		m.Breakfast = choice
	case MealLunch:
		m.Lunch = choice
	case MealDinner:
		m.Dinner = choice
	}
}

// MessStats 某楼栋某日三餐就餐人数（互不排斥）
type MessStats struct {
	BreakfastEating int64 `gorm:"column:breakfast_eating"`
	LunchEating     int64 `gorm:"column:lunch_eating"`
	DinnerEating    int64 `gorm:"column:dinner_eating"`
}
