package service

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"hostel-hub/config"
	"hostel-hub/internal/model"
)

func testMessConfig(tz string) *config.MessConfig {
	return &config.MessConfig{
		Timezone:         tz,
		BreakfastCutover: "07:00",
		LunchCutover:     "11:00",
		DinnerCutover:    "18:00",
	}
}

// newTestPolicy UTC 时区、时钟固定在 at 的截止规则
func newTestPolicy(t *testing.T, at time.Time) *MealPolicy {
	t.Helper()
	p, err := NewMealPolicy(testMessConfig("UTC"))
	if err != nil {
		t.Fatalf("创建 MealPolicy 失败: %v", err)
	}
	return p.WithClock(func() time.Time { return at })
}

func utc(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestMealPolicy_IsOpen_Boundaries(t *testing.T) {
	p := newTestPolicy(t, utc(0, 0))

	cases := []struct {
		name string
		slot model.MealSlot
		at   time.Time
		want bool
	}{
		{"早餐截止前一分钟", model.MealBreakfast, utc(6, 59), true},
		{"早餐截止时刻", model.MealBreakfast, utc(7, 0), false},
		{"早餐截止后", model.MealBreakfast, utc(9, 30), false},
		{"午餐截止前", model.MealLunch, utc(10, 59), true},
		{"午餐截止时刻", model.MealLunch, utc(11, 0), false},
		{"晚餐午后", model.MealDinner, utc(15, 0), true},
		{"晚餐截止时刻", model.MealDinner, utc(18, 0), false},
		{"晚餐深夜", model.MealDinner, utc(23, 59), false},
		{"未知餐次", model.MealSlot("Supper"), utc(0, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.IsOpen(tc.slot, tc.at); got != tc.want {
				t.Errorf("IsOpen(%s, %s) = %v，期望 %v", tc.slot, tc.at.Format("15:04"), got, tc.want)
			}
		})
	}
}

func TestMealPolicy_CheckOpen(t *testing.T) {
	p := newTestPolicy(t, utc(12, 0))

	if err := p.CheckOpen(model.MealLunch, p.Now()); !errors.Is(err, ErrMealDeadlinePassed) {
		t.Errorf("期望 ErrMealDeadlinePassed，实际: %v", err)
	}
	if err := p.CheckOpen(model.MealDinner, p.Now()); err != nil {
		t.Errorf("晚餐应可报，实际: %v", err)
	}
}

func TestMealPolicy_LocalTimezone(t *testing.T) {
	p, err := NewMealPolicy(testMessConfig("Asia/Kolkata"))
	if err != nil {
		t.Fatalf("创建 MealPolicy 失败: %v", err)
	}

	// UTC 01:00 = IST 06:30：早餐仍可报
	at := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	if !p.IsOpen(model.MealBreakfast, at) {
		t.Error("IST 06:30 早餐应可报")
	}
	// UTC 01:30 = IST 07:00：早餐截止
	if p.IsOpen(model.MealBreakfast, at.Add(30*time.Minute)) {
		t.Error("IST 07:00 早餐应已截止")
	}
}

func TestMealPolicy_DateKeyUsesLocalDate(t *testing.T) {
	p, err := NewMealPolicy(testMessConfig("Asia/Kolkata"))
	if err != nil {
		t.Fatalf("创建 MealPolicy 失败: %v", err)
	}

	// UTC 3 月 1 日 20:00 已是 IST 3 月 2 日 01:30
	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	if got := p.DateKey(at); got != "2026-03-02" {
		t.Errorf("DateKey = %s，期望 2026-03-02", got)
	}
	if got := p.WithClock(func() time.Time { return at }).Today(); got != "2026-03-02" {
		t.Errorf("Today = %s，期望 2026-03-02", got)
	}
}

func TestMealPolicy_CutoverLabel(t *testing.T) {
	p := newTestPolicy(t, utc(0, 0))
	if got := p.CutoverLabel(model.MealLunch); got != "11:00" {
		t.Errorf("CutoverLabel(Lunch) = %s，期望 11:00", got)
	}
	cut := p.Cutover(model.MealDinner, utc(3, 0))
	if !cut.Equal(utc(18, 0)) {
		t.Errorf("Cutover(Dinner) = %s，期望 18:00", cut)
	}
}

func TestNewMealPolicy_BadConfig(t *testing.T) {
	cfg := testMessConfig("UTC")
	cfg.DinnerCutover = "6pm"
	if _, err := NewMealPolicy(cfg); err == nil {
		t.Error("无效截止时间应返回错误")
	}

	cfg = testMessConfig("Nowhere/Atlantis")
	if _, err := NewMealPolicy(cfg); err == nil {
		t.Error("无效时区应返回错误")
	}
}
