package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
	"hostel-hub/pkg/metrics"
)

var (
	ErrComplaintNotFound  = errors.New("报修记录不存在")
	ErrComplaintForbidden = errors.New("无权处理其他楼栋的报修")
	ErrInvalidCategory    = errors.New("无效的报修分类")
)

// ComplaintService 报修业务接口
type ComplaintService interface {
	File(ctx context.Context, req *dto.FileComplaintRequest) (*dto.ComplaintResponse, error)
	// Resolve 将报修标记为已处理，重复调用结果不变；hostel 为操作者所管楼栋
	Resolve(ctx context.Context, id, hostel string) (*dto.ComplaintResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.ComplaintResponse, error)
	ListByHostel(ctx context.Context, hostel string) ([]dto.ComplaintResponse, error)
}

type complaintService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewComplaintService 创建 ComplaintService 实例
func NewComplaintService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) ComplaintService {
	return &complaintService{repo: repo, metrics: m, logger: logger}
}

func (s *complaintService) File(ctx context.Context, req *dto.FileComplaintRequest) (*dto.ComplaintResponse, error) {
	if !model.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if !model.IsValidHostel(req.HostelName) {
		return nil, ErrInvalidHostel
	}

	complaint := &model.Complaint{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		HostelName:  req.HostelName,
		RoomNumber:  req.RoomNumber,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Status:      model.ComplaintPending,
	}
	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		s.logger.Error("创建报修失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	s.metrics.ComplaintsFiled.WithLabelValues(complaint.HostelName, complaint.Category).Inc()
	s.logger.Info("收到报修",
		zap.String("complaint_id", complaint.ComplaintID),
		zap.String("hostel", complaint.HostelName),
		zap.String("category", complaint.Category),
	)
	resp := toComplaintResponse(complaint)
	return &resp, nil
}

func (s *complaintService) Resolve(ctx context.Context, id, hostel string) (*dto.ComplaintResponse, error) {
	complaint, err := s.repo.Complaint.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		s.logger.Error("查询报修失败", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}
	if complaint.HostelName != hostel {
		return nil, ErrComplaintForbidden
	}

	if err := s.repo.Complaint.MarkResolved(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		s.logger.Error("处理报修失败", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}

	complaint.Status = model.ComplaintResolved
	resp := toComplaintResponse(complaint)
	return &resp, nil
}

func (s *complaintService) ListByStudent(ctx context.Context, studentID string) ([]dto.ComplaintResponse, error) {
	complaints, err := s.repo.Complaint.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生报修失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toComplaintResponses(complaints), nil
}

func (s *complaintService) ListByHostel(ctx context.Context, hostel string) ([]dto.ComplaintResponse, error) {
	if !model.IsValidHostel(hostel) {
		return nil, ErrInvalidHostel
	}
	complaints, err := s.repo.Complaint.ListByHostel(ctx, hostel)
	if err != nil {
		s.logger.Error("查询楼栋报修失败", zap.String("hostel", hostel), zap.Error(err))
		return nil, err
	}
	return toComplaintResponses(complaints), nil
}

func toComplaintResponse(c *model.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:          c.ComplaintID,
		StudentID:   c.StudentID,
		StudentName: c.StudentName,
		HostelName:  c.HostelName,
		RoomNumber:  c.RoomNumber,
		Category:    c.Category,
		Description: c.Description,
		Status:      c.Status,
		Date:        dto.FormatTime(c.CreatedAt),
	}
}

func toComplaintResponses(list []model.Complaint) []dto.ComplaintResponse {
	out := make([]dto.ComplaintResponse, 0, len(list))
	for i := range list {
		out = append(out, toComplaintResponse(&list[i]))
	}
	return out
}
