package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
	pkgerrors "hostel-hub/pkg/errors"
)

var ErrMessWriteFailed = errors.New("报餐记录保存失败")

// MessVote 一次报餐：某学生某日某餐次的选择
type MessVote struct {
	StudentID   string
	StudentName string
	HostelName  string
	Date        string
	Slot        model.MealSlot
	Choice      string
}

// MessLedger 每日报餐台账
// 每名学生每天至多一条记录，每次写入只改动一个餐次
// 截止时间由调用方判断，台账只负责落库
type MessLedger struct {
	repo   repository.MessChoiceRepository
	logger *zap.Logger
}

// NewMessLedger 创建报餐台账
func NewMessLedger(repo repository.MessChoiceRepository, logger *zap.Logger) *MessLedger {
	return &MessLedger{repo: repo, logger: logger}
}

// Choices 读取学生某日的报餐记录，无记录时返回三餐默认值（不落库）
func (l *MessLedger) Choices(ctx context.Context, studentID, date string) (*model.MessChoice, error) {
	mc, err := l.repo.GetByStudentAndDate(ctx, studentID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NewMessChoice(studentID, "", "", date), nil
		}
		return nil, err
	}
	return mc, nil
}

// Record 写入一次报餐并返回写入后的完整记录
// 先按 (学生, 日期) 单列更新；不存在则插入，插入遇唯一冲突说明并发请求已建行，回退为更新
func (l *MessLedger) Record(ctx context.Context, vote MessVote) (*model.MessChoice, error) {
	err := l.repo.UpdateSlot(ctx, vote.StudentID, vote.Date, vote.Slot, vote.Choice)
	if err == nil {
		return l.reload(ctx, vote)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, l.writeFailed("更新报餐失败", vote, err)
	}

	row := model.NewMessChoice(vote.StudentID, vote.StudentName, vote.HostelName, vote.Date)
	row.Set(vote.Slot, vote.Choice)

	err = l.repo.Create(ctx, row)
	if err == nil {
		return row, nil
	}
	if !pkgerrors.IsDuplicateKey(err) {
		return nil, l.writeFailed("创建报餐记录失败", vote, err)
	}

	l.logger.Debug("并发首次报餐，改为更新",
		zap.String("student_id", vote.StudentID),
		zap.String("date", vote.Date),
	)
	if err := l.repo.UpdateSlot(ctx, vote.StudentID, vote.Date, vote.Slot, vote.Choice); err != nil {
		return nil, l.writeFailed("冲突后更新报餐失败", vote, err)
	}
	return l.reload(ctx, vote)
}

func (l *MessLedger) reload(ctx context.Context, vote MessVote) (*model.MessChoice, error) {
	mc, err := l.repo.GetByStudentAndDate(ctx, vote.StudentID, vote.Date)
	if err != nil {
		return nil, l.writeFailed("读取报餐记录失败", vote, err)
	}
	return mc, nil
}

func (l *MessLedger) writeFailed(msg string, vote MessVote, err error) error {
	l.logger.Error(msg,
		zap.String("student_id", vote.StudentID),
		zap.String("date", vote.Date),
		zap.String("meal", string(vote.Slot)),
		zap.Error(err),
	)
	return fmt.Errorf("%w: %v", ErrMessWriteFailed, err)
}

// Roster 某楼栋某日的全部报餐记录
func (l *MessLedger) Roster(ctx context.Context, hostel, date string) ([]model.MessChoice, error) {
	return l.repo.ListByHostelAndDate(ctx, hostel, date)
}

// Stats 某楼栋某日三餐就餐人数
func (l *MessLedger) Stats(ctx context.Context, hostel, date string) (*model.MessStats, error) {
	return l.repo.AggregateByHostelAndDate(ctx, hostel, date)
}
