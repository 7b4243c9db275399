package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportComplaints 导出楼栋全部报修，按提交时间倒序
	ExportComplaints(ctx context.Context, hostel string) (*bytes.Buffer, string, error)
	// ExportMessRoster 导出楼栋某日报餐名单，date 为空时取今日
	ExportMessRoster(ctx context.Context, hostel, date string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	ledger *MessLedger
	policy *MealPolicy
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, policy *MealPolicy, logger *zap.Logger) ExportService {
	return &exportService{
		repo:   repo,
		ledger: NewMessLedger(repo.MessChoice, logger),
		policy: policy,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportComplaints 导出报修清单
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：A 栋报修清单
//   - 表头：提交时间 | 房间 | 学生 | 分类 | 描述 | 状态
//   - 状态为 Pending 的行使用高亮样式

func (s *exportService) ExportComplaints(ctx context.Context, hostel string) (*bytes.Buffer, string, error) {
	if !model.IsValidHostel(hostel) {
		return nil, "", ErrInvalidHostel
	}

	complaints, err := s.repo.Complaint.ListByHostel(ctx, hostel)
	if err != nil {
		s.logger.Error("查询楼栋报修失败", zap.String("hostel", hostel), zap.Error(err))
		return nil, "", err
	}

	headers := []string{"提交时间", "房间", "学生", "分类", "描述", "状态"}
	widths := []float64{20, 8, 16, 12, 48, 10}

	w, err := newSheetWriter("报修清单", fmt.Sprintf("%s 栋报修清单", hostel), headers, widths)
	if err != nil {
		s.logger.Error("初始化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	defer w.close()

	pendingStyle, _ := w.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FCE4D6"}, Pattern: 1},
	})

	loc := s.policy.Location()
	for _, c := range complaints {
		row := w.appendRow(
			c.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			c.RoomNumber,
			c.StudentName,
			c.Category,
			c.Description,
			c.Status,
		)
		if c.Status == model.ComplaintPending {
			w.styleRow(row, pendingStyle)
		}
	}

	return s.finish(w, fmt.Sprintf("报修清单_%s栋.xlsx", hostel))
}

// ═══════════════════════════════════════════════════════════
// ExportMessRoster 导出报餐名单
// ═══════════════════════════════════════════════════════════
//
// 每名已报餐学生一行，末尾追加三餐就餐人数合计

func (s *exportService) ExportMessRoster(ctx context.Context, hostel, date string) (*bytes.Buffer, string, error) {
	if !model.IsValidHostel(hostel) {
		return nil, "", ErrInvalidHostel
	}
	if date == "" {
		date = s.policy.Today()
	}

	roster, err := s.ledger.Roster(ctx, hostel, date)
	if err != nil {
		s.logger.Error("查询报餐名单失败", zap.String("hostel", hostel), zap.String("date", date), zap.Error(err))
		return nil, "", err
	}

	headers := []string{"学生", "早餐", "午餐", "晚餐"}
	widths := []float64{20, 12, 12, 12}

	w, err := newSheetWriter("报餐名单", fmt.Sprintf("%s 栋 %s 报餐名单", hostel, date), headers, widths)
	if err != nil {
		s.logger.Error("初始化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	defer w.close()

	var totals [3]int
	for _, mc := range roster {
		w.appendRow(mc.StudentName, mc.Breakfast, mc.Lunch, mc.Dinner)
		for i, slot := range model.MealSlots {
			if mc.Get(slot) == model.ChoiceEating {
				totals[i]++
			}
		}
	}
	row := w.appendRow("就餐合计", totals[0], totals[1], totals[2])
	w.styleRow(row, w.header)

	return s.finish(w, fmt.Sprintf("报餐名单_%s栋_%s.xlsx", hostel, date))
}

func (s *exportService) finish(w *sheetWriter, filename string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	if err := w.f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, filename, nil
}

// ── 辅助 ──

// sheetWriter 单 Sheet 表格：第 1 行标题，第 2 行表头，数据从第 3 行开始
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	cols   int
	row    int
	header int
}

func newSheetWriter(sheet, title string, headers []string, widths []float64) (*sheetWriter, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet, cols: len(headers), row: 2, header: headerStyle}

	for i, width := range widths {
		col := colName(i)
		f.SetColWidth(sheet, col, col, width)
	}

	// 标题行
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	// 表头
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	w.styleRow(2, headerStyle)
	return w, nil
}

// appendRow 追加一行并返回行号
func (w *sheetWriter) appendRow(values ...interface{}) int {
	w.row++
	for i, v := range values {
		w.f.SetCellValue(w.sheet, cell(colName(i), w.row), v)
	}
	return w.row
}

func (w *sheetWriter) styleRow(row, style int) {
	w.f.SetCellStyle(w.sheet, cell("A", row), cell(colName(w.cols-1), row), style)
}

func (w *sheetWriter) close() { _ = w.f.Close() }

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
