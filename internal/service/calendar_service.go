package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"hostel-hub/internal/model"
)

// ── 报餐截止日历 ──────────────────────────────────────────────
//
// 每个餐次一个按天重复的事件，结束于截止时刻，提前 calendarLead 开始，
// 学生订阅后可在日历应用中收到提醒。
// ─────────────────────────────────────────────────────────────

const calendarLead = 30 * time.Minute

// icsLocalLayout 带 TZID 的本地时间格式，重复事件随夏令时保持墙上时间不变
const icsLocalLayout = "20060102T150405"

var mealLabels = map[model.MealSlot]string{
	model.MealBreakfast: "早餐",
	model.MealLunch:     "午餐",
	model.MealDinner:    "晚餐",
}

// CalendarService 报餐截止日历订阅
type CalendarService interface {
	DeadlineCalendar(ctx context.Context, hostel string) (string, error)
}

type calendarService struct {
	policy *MealPolicy
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(policy *MealPolicy, logger *zap.Logger) CalendarService {
	return &calendarService{policy: policy, logger: logger}
}

func (s *calendarService) DeadlineCalendar(_ context.Context, hostel string) (string, error) {
	if !model.IsValidHostel(hostel) {
		return "", ErrInvalidHostel
	}

	now := s.policy.Now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//hostel-hub//mess deadlines//ZH")
	cal.SetXWRCalName(fmt.Sprintf("%s 栋报餐截止", hostel))
	cal.SetXWRTimezone(s.policy.Location().String())

	for _, slot := range model.MealSlots {
		cutover := s.policy.Cutover(slot, now)
		uid := fmt.Sprintf("mess-%s-%s@hostel-hub", hostel, slot.Column())

		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		s.setLocalTime(event, ics.ComponentPropertyDtStart, cutover.Add(-calendarLead))
		s.setLocalTime(event, ics.ComponentPropertyDtEnd, cutover)
		event.SetSummary(fmt.Sprintf("%s报餐截止 %s", mealLabels[slot], s.policy.CutoverLabel(slot)))
		event.SetDescription(fmt.Sprintf("%s 栋%s报餐将于 %s 截止，之后无法修改当日选择", hostel, mealLabels[slot], s.policy.CutoverLabel(slot)))
		event.SetProperty(ics.ComponentPropertyRrule, "FREQ=DAILY")
	}

	s.logger.Debug("生成报餐截止日历", zap.String("hostel", hostel))
	return cal.Serialize(), nil
}

// setLocalTime 以报餐时区的墙上时间写入 DTSTART/DTEND
// 服务器本地时区没有 IANA 名称，写成不带 TZID 的浮动时间
func (s *calendarService) setLocalTime(event *ics.VEvent, prop ics.ComponentProperty, at time.Time) {
	loc := s.policy.Location()
	value := at.In(loc).Format(icsLocalLayout)
	if loc == time.Local {
		event.SetProperty(prop, value)
		return
	}
	event.SetProperty(prop, value, &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{loc.String()}})
}
