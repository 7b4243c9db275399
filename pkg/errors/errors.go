package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateKey 唯一约束冲突（邮箱、宿舍房间号、学生当日报餐记录）
var ErrDuplicateKey = errors.New("记录已存在")

// Translate 将 GORM 驱动层错误转换为业务可识别的错误
// 依赖 gorm.Config.TranslateError 把 PostgreSQL 23505 映射为 gorm.ErrDuplicatedKey
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

// IsDuplicateKey 判断是否为唯一约束冲突
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey)
}
