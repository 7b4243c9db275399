package service

import (
	"context"

	"go.uber.org/zap"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
)

// DashboardService 宿管首页统计
type DashboardService interface {
	GetStats(ctx context.Context, hostel string) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	ledger *MessLedger
	policy *MealPolicy
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, policy *MealPolicy, logger *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		ledger: NewMessLedger(repo.MessChoice, logger),
		policy: policy,
		logger: logger,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, hostel string) (*dto.DashboardStatsResponse, error) {
	if !model.IsValidHostel(hostel) {
		return nil, ErrInvalidHostel
	}

	total, err := s.repo.Student.CountByHostel(ctx, hostel)
	if err != nil {
		s.logger.Error("统计学生人数失败", zap.String("hostel", hostel), zap.Error(err))
		return nil, err
	}

	pending, err := s.repo.Complaint.CountPendingByHostel(ctx, hostel)
	if err != nil {
		s.logger.Error("统计待处理报修失败", zap.String("hostel", hostel), zap.Error(err))
		return nil, err
	}

	today := s.policy.Today()
	stats, err := s.ledger.Stats(ctx, hostel, today)
	if err != nil {
		s.logger.Error("统计报餐人数失败", zap.String("hostel", hostel), zap.Error(err))
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		Hostel:            hostel,
		Date:              today,
		TotalStudents:     total,
		PendingComplaints: pending,
		MessStats: dto.MessStatsResponse{
			BreakfastEating: stats.BreakfastEating,
			LunchEating:     stats.LunchEating,
			DinnerEating:    stats.DinnerEating,
		},
	}, nil
}
