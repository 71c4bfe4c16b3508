package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	seq       int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		m.seq++
		employee.EmployeeID = fmt.Sprintf("emp-%d", m.seq)
	}
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetBySystemName(_ context.Context, systemName string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.SystemName == systemName {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, activeOnly bool) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if activeOnly && !e.Active {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	m.employees[employee.EmployeeID] = employee
	return nil
}

// ── Mock ChildRepository ──

type mockChildRepo struct {
	children map[string]*model.Child
	seq      int
}

func newMockChildRepo() *mockChildRepo {
	return &mockChildRepo{children: make(map[string]*model.Child)}
}

func (m *mockChildRepo) Create(_ context.Context, child *model.Child) error {
	if child.ChildID == "" {
		m.seq++
		child.ChildID = fmt.Sprintf("child-%d", m.seq)
	}
	m.children[child.ChildID] = child
	return nil
}

func (m *mockChildRepo) GetByID(_ context.Context, id string) (*model.Child, error) {
	if c, ok := m.children[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChildRepo) GetByCode(_ context.Context, code string) (*model.Child, error) {
	for _, c := range m.children {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChildRepo) List(_ context.Context, activeOnly bool) ([]model.Child, error) {
	var result []model.Child
	for _, c := range m.children {
		if activeOnly && !c.Active {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockChildRepo) Update(_ context.Context, child *model.Child) error {
	m.children[child.ChildID] = child
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	seq    int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.seq++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.seq)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, filter repository.ShiftFilter) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if filter.StartDate != nil && s.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && s.Date.After(*filter.EndDate) {
			continue
		}
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ChildID != nil && s.ChildID != *filter.ChildID {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockShiftRepo) ListForDate(_ context.Context, employeeID, childID string, date time.Time, excludeID *string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if !s.Date.Equal(date) {
			continue
		}
		if excludeID != nil && s.ShiftID == *excludeID {
			continue
		}
		if s.EmployeeID != employeeID && s.ChildID != childID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) FindExact(_ context.Context, employeeID, childID string, date time.Time, startTime, endTime string) (*model.Shift, error) {
	for _, s := range m.shifts {
		if s.EmployeeID == employeeID && s.ChildID == childID && s.Date.Equal(date) &&
			s.StartTime == startTime && s.EndTime == endTime {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) SumHours(_ context.Context, employeeID, childID string, start, end time.Time, excludeID *string) (float64, error) {
	var total float64
	for _, s := range m.shifts {
		if s.EmployeeID != employeeID || s.ChildID != childID {
			continue
		}
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		if excludeID != nil && s.ShiftID == *excludeID {
			continue
		}
		sm, err := parseClock(s.StartTime)
		if err != nil {
			return 0, err
		}
		em, err := parseClock(s.EndTime)
		if err != nil {
			return 0, err
		}
		total += hoursBetween(sm, em)
	}
	return total, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

// ── Mock ExclusionPeriodRepository ──

type mockExclusionRepo struct {
	exclusions map[string]*model.ExclusionPeriod
	seq        int
}

func newMockExclusionRepo() *mockExclusionRepo {
	return &mockExclusionRepo{exclusions: make(map[string]*model.ExclusionPeriod)}
}

func (m *mockExclusionRepo) Create(_ context.Context, exclusion *model.ExclusionPeriod) error {
	if exclusion.ExclusionPeriodID == "" {
		m.seq++
		exclusion.ExclusionPeriodID = fmt.Sprintf("exc-%d", m.seq)
	}
	m.exclusions[exclusion.ExclusionPeriodID] = exclusion
	return nil
}

func (m *mockExclusionRepo) CreateBatch(ctx context.Context, exclusions []model.ExclusionPeriod) error {
	for i := range exclusions {
		if err := m.Create(ctx, &exclusions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockExclusionRepo) GetByID(_ context.Context, id string) (*model.ExclusionPeriod, error) {
	if e, ok := m.exclusions[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExclusionRepo) List(_ context.Context, activeOnly bool) ([]model.ExclusionPeriod, error) {
	var result []model.ExclusionPeriod
	for _, e := range m.exclusions {
		if activeOnly && !e.Active {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockExclusionRepo) ListActiveForShift(_ context.Context, employeeID, childID string, date time.Time) ([]model.ExclusionPeriod, error) {
	var result []model.ExclusionPeriod
	for _, e := range m.exclusions {
		if !e.Active {
			continue
		}
		if date.Before(e.StartDate) || date.After(e.EndDate) {
			continue
		}
		matchesEmployee := e.EmployeeID != nil && *e.EmployeeID == employeeID
		matchesChild := e.ChildID != nil && *e.ChildID == childID
		if !matchesEmployee && !matchesChild && !e.IsGlobal() {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockExclusionRepo) Deactivate(_ context.Context, id string) error {
	if e, ok := m.exclusions[id]; ok {
		e.Active = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock HourLimitRepository ──

type mockHourLimitRepo struct {
	limits map[string]*model.HourLimit
	seq    int
}

func newMockHourLimitRepo() *mockHourLimitRepo {
	return &mockHourLimitRepo{limits: make(map[string]*model.HourLimit)}
}

func (m *mockHourLimitRepo) Create(_ context.Context, limit *model.HourLimit) error {
	if limit.HourLimitID == "" {
		m.seq++
		limit.HourLimitID = fmt.Sprintf("limit-%d", m.seq)
	}
	m.limits[limit.HourLimitID] = limit
	return nil
}

func (m *mockHourLimitRepo) GetByID(_ context.Context, id string) (*model.HourLimit, error) {
	if l, ok := m.limits[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHourLimitRepo) GetActiveByPair(_ context.Context, employeeID, childID string) (*model.HourLimit, error) {
	for _, l := range m.limits {
		if l.Active && l.EmployeeID == employeeID && l.ChildID == childID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHourLimitRepo) List(_ context.Context, activeOnly bool) ([]model.HourLimit, error) {
	var result []model.HourLimit
	for _, l := range m.limits {
		if activeOnly && !l.Active {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockHourLimitRepo) Update(_ context.Context, limit *model.HourLimit) error {
	m.limits[limit.HourLimitID] = limit
	return nil
}

// ── Mock PayrollPeriodRepository ──

type mockPayrollPeriodRepo struct {
	periods map[string]*model.PayrollPeriod
	anchor  time.Time
	seq     int
}

func newMockPayrollPeriodRepo() *mockPayrollPeriodRepo {
	return &mockPayrollPeriodRepo{periods: make(map[string]*model.PayrollPeriod)}
}

func (m *mockPayrollPeriodRepo) List(_ context.Context) ([]model.PayrollPeriod, error) {
	var result []model.PayrollPeriod
	for _, p := range m.periods {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockPayrollPeriodRepo) GetByID(_ context.Context, id string) (*model.PayrollPeriod, error) {
	if p, ok := m.periods[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollPeriodRepo) GetForDate(_ context.Context, date time.Time) (*model.PayrollPeriod, error) {
	for _, p := range m.periods {
		if p.Contains(date) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollPeriodRepo) Next(_ context.Context, after time.Time) (*model.PayrollPeriod, error) {
	var best *model.PayrollPeriod
	for _, p := range m.periods {
		if !p.StartDate.After(after) {
			continue
		}
		if best == nil || p.StartDate.Before(best.StartDate) {
			best = p
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (m *mockPayrollPeriodRepo) Prev(_ context.Context, before time.Time) (*model.PayrollPeriod, error) {
	var best *model.PayrollPeriod
	for _, p := range m.periods {
		if !p.EndDate.Before(before) {
			continue
		}
		if best == nil || p.EndDate.After(best.EndDate) {
			best = p
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (m *mockPayrollPeriodRepo) ReplaceAll(ctx context.Context, anchor time.Time, periods []model.PayrollPeriod) error {
	m.periods = make(map[string]*model.PayrollPeriod)
	m.anchor = anchor
	for i := range periods {
		m.seq++
		periods[i].PayrollPeriodID = fmt.Sprintf("pp-%d", m.seq)
		p := periods[i]
		m.periods[p.PayrollPeriodID] = &p
	}
	return nil
}

// ── Mock AppSettingRepository ──

type mockAppSettingRepo struct {
	settings map[string]*model.AppSetting
}

func newMockAppSettingRepo() *mockAppSettingRepo {
	return &mockAppSettingRepo{settings: make(map[string]*model.AppSetting)}
}

func (m *mockAppSettingRepo) Get(_ context.Context, key string) (*model.AppSetting, error) {
	if s, ok := m.settings[key]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppSettingRepo) List(_ context.Context) ([]model.AppSetting, error) {
	var result []model.AppSetting
	for _, s := range m.settings {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockAppSettingRepo) Set(_ context.Context, key, value string) error {
	if s, ok := m.settings[key]; ok {
		s.Value = value
		s.Version++
		s.UpdatedAt = time.Now()
		return nil
	}
	m.settings[key] = &model.AppSetting{Key: key, Value: value, Version: 1, UpdatedAt: time.Now()}
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── shared fixtures ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:            newMockUserRepo(),
		Employee:        newMockEmployeeRepo(),
		Child:           newMockChildRepo(),
		Shift:           newMockShiftRepo(),
		ExclusionPeriod: newMockExclusionRepo(),
		HourLimit:       newMockHourLimitRepo(),
		PayrollPeriod:   newMockPayrollPeriodRepo(),
		AppSetting:      newMockAppSettingRepo(),
	}
}
