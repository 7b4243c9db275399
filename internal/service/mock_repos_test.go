package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"hostel-hub/internal/model"
	"hostel-hub/internal/repository"
	pkgerrors "hostel-hub/pkg/errors"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	mu       sync.Mutex
	students map[string]*model.Student // key: student_id
	seq      int
	err      error // 非 nil 时所有调用返回该错误
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, s := range m.students {
		if s.Email == student.Email || (s.HostelName == student.HostelName && s.RoomNumber == student.RoomNumber) {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("student-%d", m.seq)
	}
	cp := *student
	m.students[student.StudentID] = &cp
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByHostelAndRoom(_ context.Context, hostel string, room int) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.students {
		if s.HostelName == hostel && s.RoomNumber == room {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) CountByHostel(_ context.Context, hostel string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, s := range m.students {
		if s.HostelName == hostel {
			n++
		}
	}
	return n, nil
}

// racingStudentRepo 首次房间预检时另一名学生抢先登记同一房间，
// 预检返回未占用，随后的 Create 撞上唯一索引
type racingStudentRepo struct {
	*mockStudentRepo
	once   sync.Once
	winner model.Student
}

func (r *racingStudentRepo) GetByHostelAndRoom(ctx context.Context, hostel string, room int) (*model.Student, error) {
	raced := false
	r.once.Do(func() {
		raced = true
		w := r.winner
		_ = r.mockStudentRepo.Create(ctx, &w)
	})
	if raced {
		return nil, gorm.ErrRecordNotFound
	}
	return r.mockStudentRepo.GetByHostelAndRoom(ctx, hostel, room)
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*model.Admin
	seq    int
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == admin.Email {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if admin.AdminID == "" {
		m.seq++
		admin.AdminID = fmt.Sprintf("admin-%d", m.seq)
	}
	cp := *admin
	m.admins[admin.AdminID] = &cp
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock MessChoiceRepository ──
// 以 (student_id, date) 模拟唯一索引

type mockMessChoiceRepo struct {
	mu      sync.Mutex
	rows    map[string]*model.MessChoice
	seq     int
	creates int
	updates int
	err     error
}

func newMockMessChoiceRepo() *mockMessChoiceRepo {
	return &mockMessChoiceRepo{rows: make(map[string]*model.MessChoice)}
}

func messKey(studentID, date string) string { return studentID + "|" + date }

func (m *mockMessChoiceRepo) Create(_ context.Context, choice *model.MessChoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	key := messKey(choice.StudentID, choice.Date)
	if _, ok := m.rows[key]; ok {
		return pkgerrors.ErrDuplicateKey
	}
	m.seq++
	m.creates++
	choice.MessChoiceID = fmt.Sprintf("mc-%d", m.seq)
	choice.CreatedAt = time.Now()
	choice.UpdatedAt = choice.CreatedAt
	cp := *choice
	m.rows[key] = &cp
	return nil
}

func (m *mockMessChoiceRepo) GetByStudentAndDate(_ context.Context, studentID, date string) (*model.MessChoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if row, ok := m.rows[messKey(studentID, date)]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessChoiceRepo) UpdateSlot(_ context.Context, studentID, date string, slot model.MealSlot, choice string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	row, ok := m.rows[messKey(studentID, date)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.updates++
	row.Set(slot, choice)
	row.UpdatedAt = time.Now()
	return nil
}

func (m *mockMessChoiceRepo) ListByHostelAndDate(_ context.Context, hostel, date string) ([]model.MessChoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []model.MessChoice
	for _, row := range m.rows {
		if row.HostelName == hostel && row.Date == date {
			result = append(result, *row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentName < result[j].StudentName })
	return result, nil
}

func (m *mockMessChoiceRepo) AggregateByHostelAndDate(_ context.Context, hostel, date string) (*model.MessStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var stats model.MessStats
	for _, row := range m.rows {
		if row.HostelName != hostel || row.Date != date {
			continue
		}
		if row.Breakfast == model.ChoiceEating {
			stats.BreakfastEating++
		}
		if row.Lunch == model.ChoiceEating {
			stats.LunchEating++
		}
		if row.Dinner == model.ChoiceEating {
			stats.DinnerEating++
		}
	}
	return &stats, nil
}

// seed 直接写入一条记录
func (m *mockMessChoiceRepo) seed(row model.MessChoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	row.MessChoiceID = fmt.Sprintf("mc-%d", m.seq)
	m.rows[messKey(row.StudentID, row.Date)] = &row
}

// racingMessChoiceRepo 首次 UpdateSlot 报告记录不存在，随后另一请求抢先建行，
// 用于确定性地复现首次报餐的并发冲突
type racingMessChoiceRepo struct {
	*mockMessChoiceRepo
	once   sync.Once
	winner model.MessChoice
}

func (r *racingMessChoiceRepo) UpdateSlot(ctx context.Context, studentID, date string, slot model.MealSlot, choice string) error {
	raced := false
	r.once.Do(func() {
		raced = true
		r.mockMessChoiceRepo.seed(r.winner)
	})
	if raced {
		return gorm.ErrRecordNotFound
	}
	return r.mockMessChoiceRepo.UpdateSlot(ctx, studentID, date, slot, choice)
}

// ── Mock ComplaintRepository ──

type mockComplaintRepo struct {
	mu         sync.Mutex
	complaints map[string]*model.Complaint
	seq        int
	err        error
}

func newMockComplaintRepo() *mockComplaintRepo {
	return &mockComplaintRepo{complaints: make(map[string]*model.Complaint)}
}

func (m *mockComplaintRepo) Create(_ context.Context, complaint *model.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	complaint.ComplaintID = fmt.Sprintf("complaint-%d", m.seq)
	if complaint.CreatedAt.IsZero() {
		// 按序号递增，保证排序稳定
		complaint.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	}
	cp := *complaint
	m.complaints[complaint.ComplaintID] = &cp
	return nil
}

func (m *mockComplaintRepo) GetByID(_ context.Context, id string) (*model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.complaints[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComplaintRepo) list(match func(*model.Complaint) bool) []model.Complaint {
	var result []model.Complaint
	for _, c := range m.complaints {
		if match(c) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockComplaintRepo) ListByStudent(_ context.Context, studentID string) ([]model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.list(func(c *model.Complaint) bool { return c.StudentID == studentID }), nil
}

func (m *mockComplaintRepo) ListByHostel(_ context.Context, hostel string) ([]model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.list(func(c *model.Complaint) bool { return c.HostelName == hostel }), nil
}

func (m *mockComplaintRepo) MarkResolved(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	c, ok := m.complaints[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = model.ComplaintResolved
	return nil
}

func (m *mockComplaintRepo) CountPendingByHostel(_ context.Context, hostel string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, c := range m.complaints {
		if c.HostelName == hostel && c.Status == model.ComplaintPending {
			n++
		}
	}
	return n, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (b *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ttl > 0 {
		b.revoked[jti] = ttl
	}
	return nil
}

func (b *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revoked[jti]
	return ok, nil
}

// ── 测试夹具 ──

type mockRepos struct {
	student    *mockStudentRepo
	admin      *mockAdminRepo
	messChoice *mockMessChoiceRepo
	complaint  *mockComplaintRepo
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		student:    newMockStudentRepo(),
		admin:      newMockAdminRepo(),
		messChoice: newMockMessChoiceRepo(),
		complaint:  newMockComplaintRepo(),
	}
}

func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		Student:    m.student,
		Admin:      m.admin,
		MessChoice: m.messChoice,
		Complaint:  m.complaint,
	}
}
