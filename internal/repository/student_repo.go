package repository

import (
	"context"

	"gorm.io/gorm"

	"hostel-hub/internal/model"
	pkgerrors "hostel-hub/pkg/errors"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	// Create 邮箱或 (楼栋, 房间) 冲突时返回 pkgerrors.ErrDuplicateKey
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByHostelAndRoom(ctx context.Context, hostel string, room int) (*model.Student, error)
	CountByHostel(ctx context.Context, hostel string) (int64, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return pkgerrors.Translate(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByHostelAndRoom(ctx context.Context, hostel string, room int) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("hostel_name = ? AND room_number = ?", hostel, room).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) CountByHostel(ctx context.Context, hostel string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("hostel_name = ?", hostel).
		Count(&count).Error
	return count, err
}
