package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-hub/internal/dto"
	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
)

var ErrStudentNotFound = errors.New("未找到该房间的学生")

// StudentService 学生查询
type StudentService interface {
	SearchByRoom(ctx context.Context, hostel string, room int) (*dto.StudentResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) SearchByRoom(ctx context.Context, hostel string, room int) (*dto.StudentResponse, error) {
	if !model.IsValidHostel(hostel) {
		return nil, ErrInvalidHostel
	}

	student, err := s.repo.Student.GetByHostelAndRoom(ctx, hostel, room)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("按房间查询学生失败",
			zap.String("hostel", hostel),
			zap.Int("room", room),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.StudentResponse{
		ID:         student.StudentID,
		Name:       student.Name,
		Email:      student.Email,
		RollNumber: student.RollNumber,
		HostelName: student.HostelName,
		RoomNumber: student.RoomNumber,
	}, nil
}
