package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

var (
	ErrPeriodNotFound    = errors.New("payroll period not found")
	ErrExclusionNotFound = errors.New("exclusion period not found")
	ErrExclusionScope    = errors.New("an exclusion may target an employee or a child, not both")
	ErrExclusionTimePair = errors.New("start time and end time must be set together")
	ErrDateOrder         = errors.New("end date must be on or after start date")
)

// Periods generated around the anchor: ten before the current window, the
// current one, and nineteen after.
const (
	periodsBack  = 10
	periodsTotal = 30
)

// bulk-expansion range defaults and cap, in days
const (
	bulkDefaultSpan = 90
	bulkMaxSpan     = 180
)

// PayrollService owns the 14-day period cache, exclusion windows, and the
// per-period hour rollups.
type PayrollService interface {
	ListPeriods(ctx context.Context) ([]dto.PayrollPeriodResponse, error)
	GetCurrentPeriod(ctx context.Context) (*dto.PayrollPeriodResponse, error)
	GetPeriodForDate(ctx context.Context, date string) (*dto.PayrollPeriodResponse, error)
	NavigatePeriod(ctx context.Context, periodID string, direction int) (*dto.PayrollPeriodResponse, error)
	ConfigurePeriods(ctx context.Context, req *dto.ConfigurePeriodsRequest) ([]dto.PayrollPeriodResponse, error)
	GetPeriodSummary(ctx context.Context, periodID string) (*dto.PeriodSummaryResponse, error)

	ListExclusions(ctx context.Context, req *dto.ExclusionListRequest) ([]dto.ExclusionResponse, error)
	CreateExclusion(ctx context.Context, req *dto.CreateExclusionRequest) (*dto.ExclusionResponse, error)
	DeactivateExclusion(ctx context.Context, id string) error
	ExpandBulkDates(ctx context.Context, req *dto.ExpandBulkDatesRequest) ([]dto.BulkDate, error)
	CreateBulkExclusions(ctx context.Context, req *dto.CreateBulkExclusionsRequest) (*dto.CreateBulkExclusionsResponse, error)
}

type payrollService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewPayrollService(repo *repository.Repository, logger *zap.Logger) PayrollService {
	return &payrollService{repo: repo, logger: logger, now: time.Now}
}

// ── period engine ──

// buildPeriods derives the full period set from an anchor date. The anchor is
// rolled forward in 14-day steps until it lands within a year of today, then
// stepped back so ten whole periods precede the current window.
func (s *payrollService) buildPeriods(anchor time.Time) []model.PayrollPeriod {
	today := dateOnly(s.now())
	start := dateOnly(anchor)
	for start.Before(today.AddDate(0, 0, -365)) {
		start = start.AddDate(0, 0, model.PayrollPeriodDays)
	}
	start = start.AddDate(0, 0, -periodsBack*model.PayrollPeriodDays)

	periods := make([]model.PayrollPeriod, 0, periodsTotal)
	for i := 0; i < periodsTotal; i++ {
		end := start.AddDate(0, 0, model.PayrollPeriodDays-1)
		periods = append(periods, model.PayrollPeriod{StartDate: start, EndDate: end})
		start = end.AddDate(0, 0, 1)
	}
	return periods
}

func (s *payrollService) ConfigurePeriods(ctx context.Context, req *dto.ConfigurePeriodsRequest) ([]dto.PayrollPeriodResponse, error) {
	anchor, err := parseDate(req.AnchorDate)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	periods := s.buildPeriods(anchor)
	if err := s.repo.PayrollPeriod.ReplaceAll(ctx, anchor, periods); err != nil {
		return nil, err
	}
	s.logger.Info("payroll periods regenerated",
		zap.String("anchor", anchor.Format(model.DateFormat)),
		zap.Int("count", len(periods)))
	out := make([]dto.PayrollPeriodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, *toPeriodResponse(&periods[i]))
	}
	return out, nil
}

func (s *payrollService) ListPeriods(ctx context.Context) ([]dto.PayrollPeriodResponse, error) {
	periods, err := s.repo.PayrollPeriod.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayrollPeriodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, *toPeriodResponse(&periods[i]))
	}
	return out, nil
}

func (s *payrollService) GetCurrentPeriod(ctx context.Context) (*dto.PayrollPeriodResponse, error) {
	return s.periodForDate(ctx, dateOnly(s.now()))
}

func (s *payrollService) GetPeriodForDate(ctx context.Context, date string) (*dto.PayrollPeriodResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	return s.periodForDate(ctx, d)
}

func (s *payrollService) periodForDate(ctx context.Context, d time.Time) (*dto.PayrollPeriodResponse, error) {
	period, err := s.repo.PayrollPeriod.GetForDate(ctx, d)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return toPeriodResponse(period), nil
}

func (s *payrollService) NavigatePeriod(ctx context.Context, periodID string, direction int) (*dto.PayrollPeriodResponse, error) {
	period, err := s.repo.PayrollPeriod.GetByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	var neighbor *model.PayrollPeriod
	if direction > 0 {
		neighbor, err = s.repo.PayrollPeriod.Next(ctx, period.EndDate)
	} else {
		neighbor, err = s.repo.PayrollPeriod.Prev(ctx, period.StartDate)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return toPeriodResponse(neighbor), nil
}

// GetPeriodSummary rolls up the period's shifts into totals per employee and
// per child.
func (s *payrollService) GetPeriodSummary(ctx context.Context, periodID string) (*dto.PeriodSummaryResponse, error) {
	period, err := s.repo.PayrollPeriod.GetByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	shifts, err := s.repo.Shift.ListByDateRange(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	summary := &dto.PeriodSummaryResponse{Period: *toPeriodResponse(period)}
	empHours := map[string]*dto.NamedHours{}
	childHours := map[string]*dto.NamedHours{}
	for i := range shifts {
		sh := &shifts[i]
		start, err := parseClock(sh.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(sh.EndTime)
		if err != nil {
			return nil, err
		}
		hours := hoursBetween(start, end)

		summary.TotalShifts++
		if sh.IsImported {
			summary.ImportedShifts++
		} else {
			summary.ManualShifts++
		}
		summary.TotalHours += hours

		emp := empHours[sh.EmployeeID]
		if emp == nil {
			name := sh.EmployeeID
			if sh.Employee != nil {
				name = sh.Employee.FriendlyName
			}
			emp = &dto.NamedHours{ID: sh.EmployeeID, Name: name}
			empHours[sh.EmployeeID] = emp
		}
		emp.Hours += hours

		ch := childHours[sh.ChildID]
		if ch == nil {
			name := sh.ChildID
			if sh.Child != nil {
				name = sh.Child.Name
			}
			ch = &dto.NamedHours{ID: sh.ChildID, Name: name}
			childHours[sh.ChildID] = ch
		}
		ch.Hours += hours
	}
	summary.EmployeeHours = sortedNamedHours(empHours)
	summary.ChildHours = sortedNamedHours(childHours)
	return summary, nil
}

func sortedNamedHours(m map[string]*dto.NamedHours) []dto.NamedHours {
	out := make([]dto.NamedHours, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ── exclusions ──

func (s *payrollService) ListExclusions(ctx context.Context, req *dto.ExclusionListRequest) ([]dto.ExclusionResponse, error) {
	exclusions, err := s.repo.ExclusionPeriod.List(ctx, req.ActiveOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExclusionResponse, 0, len(exclusions))
	for i := range exclusions {
		out = append(out, *toExclusionResponse(&exclusions[i]))
	}
	return out, nil
}

func (s *payrollService) CreateExclusion(ctx context.Context, req *dto.CreateExclusionRequest) (*dto.ExclusionResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	if end.Before(start) {
		return nil, ErrDateOrder
	}
	startTime, endTime, err := normalizeTimePair(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if req.EmployeeID != nil && req.ChildID != nil {
		return nil, ErrExclusionScope
	}

	exclusion := &model.ExclusionPeriod{
		Name:       req.Name,
		StartDate:  start,
		EndDate:    end,
		StartTime:  startTime,
		EndTime:    endTime,
		EmployeeID: req.EmployeeID,
		ChildID:    req.ChildID,
		Reason:     req.Reason,
		Active:     true,
	}
	if err := s.repo.ExclusionPeriod.Create(ctx, exclusion); err != nil {
		return nil, classifyStoreError(err)
	}
	return toExclusionResponse(exclusion), nil
}

func (s *payrollService) DeactivateExclusion(ctx context.Context, id string) error {
	if _, err := s.repo.ExclusionPeriod.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExclusionNotFound
		}
		return err
	}
	return s.repo.ExclusionPeriod.Deactivate(ctx, id)
}

// normalizeTimePair validates an optional time window: both ends or neither,
// end strictly after start, values normalized to HH:MM.
func normalizeTimePair(startTime, endTime *string) (*string, *string, error) {
	if (startTime == nil) != (endTime == nil) {
		return nil, nil, ErrExclusionTimePair
	}
	if startTime == nil {
		return nil, nil, nil
	}
	start, err := parseClock(*startTime)
	if err != nil {
		return nil, nil, validationErrorf("%v", err)
	}
	end, err := parseClock(*endTime)
	if err != nil {
		return nil, nil, validationErrorf("%v", err)
	}
	if end <= start {
		return nil, nil, validationErrorf("end time must be after start time")
	}
	ss, es := minutesToClock(start), minutesToClock(end)
	return &ss, &es, nil
}

// ── bulk recurring exclusions ──

// ExpandBulkDates enumerates the concrete dates a recurring rule covers,
// walking each payroll period that intersects the range so every date can be
// positioned as week 1 or week 2. Dates outside any configured period are
// skipped.
func (s *payrollService) ExpandBulkDates(ctx context.Context, req *dto.ExpandBulkDatesRequest) ([]dto.BulkDate, error) {
	start := dateOnly(s.now())
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, validationErrorf("%v", err)
		}
		start = d
	}
	end := start.AddDate(0, 0, bulkDefaultSpan)
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, validationErrorf("%v", err)
		}
		end = d
	}
	if end.Before(start) {
		return nil, ErrDateOrder
	}
	if limit := start.AddDate(0, 0, bulkMaxSpan); end.After(limit) {
		end = limit
	}

	weekdays := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		weekdays[time.Weekday(wd)] = true
	}

	periods, err := s.repo.PayrollPeriod.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].StartDate.Before(periods[j].StartDate) })

	var out []dto.BulkDate
	for i := range periods {
		p := &periods[i]
		if p.EndDate.Before(start) || p.StartDate.After(end) {
			continue
		}
		lo, hi := p.StartDate, p.EndDate
		if lo.Before(start) {
			lo = start
		}
		if hi.After(end) {
			hi = end
		}
		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			if !weekdays[d.Weekday()] {
				continue
			}
			week := p.WeekOf(d)
			if req.WeekFilter == "week1" && week != 1 {
				continue
			}
			if req.WeekFilter == "week2" && week != 2 {
				continue
			}
			out = append(out, dto.BulkDate{Date: d.Format(model.DateFormat), Week: week})
		}
	}
	return out, nil
}

// CreateBulkExclusions writes one single-day exclusion row per expanded date.
func (s *payrollService) CreateBulkExclusions(ctx context.Context, req *dto.CreateBulkExclusionsRequest) (*dto.CreateBulkExclusionsResponse, error) {
	if req.EmployeeID != nil && req.ChildID != nil {
		return nil, ErrExclusionScope
	}
	startTime, endTime, err := normalizeTimePair(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	dates, err := s.ExpandBulkDates(ctx, &req.ExpandBulkDatesRequest)
	if err != nil {
		return nil, err
	}

	exclusions := make([]model.ExclusionPeriod, 0, len(dates))
	for _, bd := range dates {
		d, err := parseDate(bd.Date)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, model.ExclusionPeriod{
			Name:       req.Name,
			StartDate:  d,
			EndDate:    d,
			StartTime:  startTime,
			EndTime:    endTime,
			EmployeeID: req.EmployeeID,
			ChildID:    req.ChildID,
			Reason:     req.Reason,
			Active:     true,
		})
	}
	if len(exclusions) > 0 {
		if err := s.repo.ExclusionPeriod.CreateBatch(ctx, exclusions); err != nil {
			return nil, classifyStoreError(err)
		}
	}
	s.logger.Info("bulk exclusions created",
		zap.String("name", req.Name),
		zap.Int("count", len(exclusions)))
	return &dto.CreateBulkExclusionsResponse{Created: len(exclusions), Dates: dates}, nil
}

// ── mapping ──

func toPeriodResponse(p *model.PayrollPeriod) *dto.PayrollPeriodResponse {
	return &dto.PayrollPeriodResponse{
		ID:        p.PayrollPeriodID,
		StartDate: p.StartDate.Format(model.DateFormat),
		EndDate:   p.EndDate.Format(model.DateFormat),
	}
}

func toExclusionResponse(e *model.ExclusionPeriod) *dto.ExclusionResponse {
	out := &dto.ExclusionResponse{
		ID:         e.ExclusionPeriodID,
		Name:       e.Name,
		StartDate:  e.StartDate.Format(model.DateFormat),
		EndDate:    e.EndDate.Format(model.DateFormat),
		EmployeeID: e.EmployeeID,
		ChildID:    e.ChildID,
		Reason:     e.Reason,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.StartTime != nil {
		v := clockForWire(*e.StartTime)
		out.StartTime = &v
	}
	if e.EndTime != nil {
		v := clockForWire(*e.EndTime)
		out.EndTime = &v
	}
	return out
}
