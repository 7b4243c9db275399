package repository

import (
	"context"

	"gorm.io/gorm"

	"hostel-hub/internal/model"
)

// ComplaintRepository 报修数据访问接口
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	GetByID(ctx context.Context, id string) (*model.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Complaint, error)
	ListByHostel(ctx context.Context, hostel string) ([]model.Complaint, error)
	// MarkResolved 无论当前状态如何都置为 Resolved；记录不存在时返回 gorm.ErrRecordNotFound
	MarkResolved(ctx context.Context, id string) error
	CountPendingByHostel(ctx context.Context, hostel string) (int64, error)
}

type complaintRepo struct {
	db *gorm.DB
}

// NewComplaintRepo 创建 ComplaintRepository 实例
func NewComplaintRepo(db *gorm.DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

func (r *complaintRepo) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepo) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	var c model.Complaint
	err := r.db.WithContext(ctx).
		Where("complaint_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepo) ListByHostel(ctx context.Context, hostel string) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.db.WithContext(ctx).
		Where("hostel_name = ?", hostel).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepo) MarkResolved(ctx context.Context, id string) error {
	// PostgreSQL 的 RowsAffected 统计匹配行，重复置 Resolved 仍为 1
	result := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("complaint_id = ?", id).
		Update("status", model.ComplaintResolved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *complaintRepo) CountPendingByHostel(ctx context.Context, hostel string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("hostel_name = ? AND status = ?", hostel, model.ComplaintPending).
		Count(&count).Error
	return count, err
}
