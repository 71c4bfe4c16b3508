package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftImported = errors.New("imported shifts cannot be modified or deleted")
)

// ShiftService owns shift CRUD and the scheduling checks that gate every
// write: interval overlap, exclusion windows, and weekly hour limits.
type ShiftService interface {
	List(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error)
	Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, []string, error)
	Update(ctx context.Context, id string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, []string, error)
	Delete(ctx context.Context, id string) error

	// CreateImported writes a shift from the trusted import pipeline: the
	// overlap check is demoted to a warning and the row is immutable after.
	CreateImported(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, []string, error)

	// AutoGenerate fills the child's free time on a date with shifts for the
	// employee, skipping windows blocked by existing bookings or timed
	// exclusions.
	AutoGenerate(ctx context.Context, req *dto.AutoGenerateShiftsRequest) (*dto.AutoGenerateShiftsResponse, error)

	// Validate runs the full check pipeline without writing anything.
	Validate(ctx context.Context, req *dto.ValidateShiftRequest) (*dto.ValidateShiftResponse, error)
	CheckOverlaps(ctx context.Context, req *dto.ValidateShiftRequest) (*dto.OverlapCheckResponse, error)
	CheckExclusions(ctx context.Context, req *dto.ValidateShiftRequest) ([]dto.ExclusionMatch, error)
	CheckHourLimit(ctx context.Context, req *dto.ValidateShiftRequest) (*dto.HourLimitCheckResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

// shiftProbe is a proposal with all fields parsed and range-checked.
type shiftProbe struct {
	employeeID    string
	childID       string
	date          time.Time
	startMin      int
	endMin        int
	excludeID     *string
	allowOverlaps bool
}

func (s *shiftService) parseProbe(employeeID, childID, date, startTime, endTime string, excludeID *string, allowOverlaps bool) (*shiftProbe, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	start, err := parseClock(startTime)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	if end <= start {
		return nil, validationErrorf("end time must be after start time")
	}
	return &shiftProbe{
		employeeID:    employeeID,
		childID:       childID,
		date:          d,
		startMin:      start,
		endMin:        end,
		excludeID:     excludeID,
		allowOverlaps: allowOverlaps,
	}, nil
}

// ── check pipeline ──

// runChecks is the single validation path for every write and dry run.
// Order matters: exclusions first, then overlaps, then hour limits. The first
// fatal finding aborts; non-fatal findings accumulate as warnings.
func (s *shiftService) runChecks(ctx context.Context, p *shiftProbe) ([]string, error) {
	var warnings []string

	exclusions, err := s.matchExclusions(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, exc := range exclusions {
		switch {
		case exc.EmployeeID != nil:
			return nil, exclusionErrorf("employee is excluded during this period: %s", exc.Name)
		case exc.ChildID != nil:
			return nil, exclusionErrorf("child is excluded during this period: %s", exc.Name)
		default:
			warnings = append(warnings, "general exclusion period active: "+exc.Name)
		}
	}

	empHit, childHit, err := s.findOverlaps(ctx, p)
	if err != nil {
		return nil, err
	}
	if empHit != nil {
		msg := "employee already has a shift from " + s.describeShiftWindow(empHit)
		if !p.allowOverlaps {
			return nil, overlapErrorf("%s", msg)
		}
		warnings = append(warnings, msg)
	}
	if childHit != nil {
		msg := "child already has a shift from " + s.describeShiftWindow(childHit)
		if !p.allowOverlaps {
			return nil, overlapErrorf("%s", msg)
		}
		warnings = append(warnings, msg)
	}

	limit, err := s.hourLimitVerdict(ctx, p)
	if err != nil {
		return nil, err
	}
	if limit.Applicable {
		if limit.Exceeded {
			return nil, validationErrorf(
				"week %d hours (%.1f) would exceed the weekly limit (%.1f) for this employee/child pair",
				limit.Week, limit.TotalHours, limit.MaxHours)
		}
		if limit.Warned {
			warnings = append(warnings, formatThresholdWarning(limit))
		}
	}

	return warnings, nil
}

// matchExclusions returns the active exclusion windows that apply to the
// probe. Date-only exclusions always apply; timed exclusions apply only when
// the time windows overlap.
func (s *shiftService) matchExclusions(ctx context.Context, p *shiftProbe) ([]model.ExclusionPeriod, error) {
	candidates, err := s.repo.ExclusionPeriod.ListActiveForShift(ctx, p.employeeID, p.childID, p.date)
	if err != nil {
		return nil, err
	}
	var matched []model.ExclusionPeriod
	for _, exc := range candidates {
		if exc.StartTime != nil && exc.EndTime != nil {
			es, err := parseClock(*exc.StartTime)
			if err != nil {
				return nil, err
			}
			ee, err := parseClock(*exc.EndTime)
			if err != nil {
				return nil, err
			}
			if !timesOverlap(p.startMin, p.endMin, es, ee) {
				continue
			}
		}
		matched = append(matched, exc)
	}
	return matched, nil
}

// findOverlaps returns the first colliding shift per scope, or nil.
func (s *shiftService) findOverlaps(ctx context.Context, p *shiftProbe) (employee, child *model.Shift, err error) {
	sameDay, err := s.repo.Shift.ListForDate(ctx, p.employeeID, p.childID, p.date, p.excludeID)
	if err != nil {
		return nil, nil, err
	}
	for i := range sameDay {
		sh := &sameDay[i]
		os, err := parseClock(sh.StartTime)
		if err != nil {
			return nil, nil, err
		}
		oe, err := parseClock(sh.EndTime)
		if err != nil {
			return nil, nil, err
		}
		if !timesOverlap(p.startMin, p.endMin, os, oe) {
			continue
		}
		if employee == nil && sh.EmployeeID == p.employeeID {
			employee = sh
		}
		if child == nil && sh.ChildID == p.childID {
			child = sh
		}
	}
	return employee, child, nil
}

// hourLimitVerdict computes the weekly-hours position of the probe against
// the pair's limit. Applicable is false when no active limit exists or no
// payroll period covers the date.
func (s *shiftService) hourLimitVerdict(ctx context.Context, p *shiftProbe) (*dto.HourLimitCheckResponse, error) {
	limit, err := s.repo.HourLimit.GetActiveByPair(ctx, p.employeeID, p.childID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.HourLimitCheckResponse{Applicable: false}, nil
		}
		return nil, err
	}
	period, err := s.repo.PayrollPeriod.GetForDate(ctx, p.date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.HourLimitCheckResponse{Applicable: false}, nil
		}
		return nil, err
	}

	week := period.WeekOf(p.date)
	weekStart := period.StartDate
	weekEnd := period.StartDate.AddDate(0, 0, 6)
	if week == 2 {
		weekStart = period.StartDate.AddDate(0, 0, 7)
		weekEnd = period.EndDate
	}

	existing, err := s.repo.Shift.SumHours(ctx, p.employeeID, p.childID, weekStart, weekEnd, p.excludeID)
	if err != nil {
		return nil, err
	}

	proposed := hoursBetween(p.startMin, p.endMin)
	total := existing + proposed
	verdict := &dto.HourLimitCheckResponse{
		Applicable:     true,
		Week:           week,
		ExistingHours:  existing,
		ProposedHours:  proposed,
		TotalHours:     total,
		MaxHours:       limit.MaxHoursPerWeek,
		AlertThreshold: limit.AlertThreshold,
		Exceeded:       total > limit.MaxHoursPerWeek,
	}
	if !verdict.Exceeded && limit.AlertThreshold != nil && total > *limit.AlertThreshold {
		verdict.Warned = true
	}
	return verdict, nil
}

func formatThresholdWarning(v *dto.HourLimitCheckResponse) string {
	return fmt.Sprintf("week %d hours (%.1f) exceed the alert threshold (%.1f) for this employee/child pair",
		v.Week, v.TotalHours, *v.AlertThreshold)
}

func (s *shiftService) describeShiftWindow(sh *model.Shift) string {
	start, err1 := parseClock(sh.StartTime)
	end, err2 := parseClock(sh.EndTime)
	if err1 != nil || err2 != nil {
		return sh.StartTime + " to " + sh.EndTime
	}
	return clock12(start) + " to " + clock12(end)
}

// ── CRUD ──

func (s *shiftService) List(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, error) {
	filter := repository.ShiftFilter{EmployeeID: req.EmployeeID, ChildID: req.ChildID}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, validationErrorf("%v", err)
		}
		filter.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, validationErrorf("%v", err)
		}
		filter.EndDate = &d
	}
	shifts, err := s.repo.Shift.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, *toShiftResponse(&shifts[i]))
	}
	return out, nil
}

func (s *shiftService) GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return toShiftResponse(shift), nil
}

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, []string, error) {
	return s.create(ctx, req, false, false)
}

func (s *shiftService) CreateImported(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, []string, error) {
	return s.create(ctx, req, true, true)
}

func (s *shiftService) create(ctx context.Context, req *dto.CreateShiftRequest, imported, allowOverlaps bool) (*dto.ShiftResponse, []string, error) {
	probe, err := s.parseProbe(req.EmployeeID, req.ChildID, req.Date, req.StartTime, req.EndTime, nil, allowOverlaps)
	if err != nil {
		return nil, nil, err
	}
	employee, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEmployeeNotFound
		}
		return nil, nil, err
	}
	child, err := s.repo.Child.GetByID(ctx, req.ChildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrChildNotFound
		}
		return nil, nil, err
	}

	warnings, err := s.runChecks(ctx, probe)
	if err != nil {
		return nil, nil, err
	}

	shift := &model.Shift{
		EmployeeID:  req.EmployeeID,
		ChildID:     req.ChildID,
		Date:        probe.date,
		StartTime:   minutesToClock(probe.startMin),
		EndTime:     minutesToClock(probe.endMin),
		ServiceCode: req.ServiceCode,
		Status:      req.Status,
		IsImported:  imported,
	}
	if shift.Status == "" {
		shift.Status = "new"
	}
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		return nil, nil, classifyStoreError(err)
	}
	shift.Employee = employee
	shift.Child = child
	s.logger.Info("shift created",
		zap.String("shift_id", shift.ShiftID),
		zap.String("employee_id", shift.EmployeeID),
		zap.String("child_id", shift.ChildID),
		zap.Bool("imported", imported))
	return toShiftResponse(shift), warnings, nil
}

func (s *shiftService) Update(ctx context.Context, id string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, []string, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrShiftNotFound
		}
		return nil, nil, err
	}
	if shift.IsImported {
		return nil, nil, ErrShiftImported
	}

	if req.EmployeeID != nil {
		if _, err := s.repo.Employee.GetByID(ctx, *req.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrEmployeeNotFound
			}
			return nil, nil, err
		}
		shift.EmployeeID = *req.EmployeeID
		shift.Employee = nil
	}
	if req.ChildID != nil {
		if _, err := s.repo.Child.GetByID(ctx, *req.ChildID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrChildNotFound
			}
			return nil, nil, err
		}
		shift.ChildID = *req.ChildID
		shift.Child = nil
	}
	dateStr := shift.Date.Format(model.DateFormat)
	if req.Date != nil {
		dateStr = *req.Date
	}
	startStr := shift.StartTime
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	endStr := shift.EndTime
	if req.EndTime != nil {
		endStr = *req.EndTime
	}
	if req.ServiceCode != nil {
		shift.ServiceCode = req.ServiceCode
	}
	if req.Status != nil {
		shift.Status = *req.Status
	}

	probe, err := s.parseProbe(shift.EmployeeID, shift.ChildID, dateStr, startStr, endStr, &id, false)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := s.runChecks(ctx, probe)
	if err != nil {
		return nil, nil, err
	}

	shift.Date = probe.date
	shift.StartTime = minutesToClock(probe.startMin)
	shift.EndTime = minutesToClock(probe.endMin)
	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		return nil, nil, classifyStoreError(err)
	}
	updated, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return toShiftResponse(updated), warnings, nil
}

func (s *shiftService) Delete(ctx context.Context, id string) error {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}
	if shift.IsImported {
		return ErrShiftImported
	}
	return s.repo.Shift.Delete(ctx, id)
}

// ── auto-generation ──

// Auto-generated shifts fill the day between 06:00 and 23:45.
const (
	autoGenDayStart = 6 * 60
	autoGenDayEnd   = 23*60 + 45
)

// AutoGenerate walks the child's day in time order and writes one shift per
// free gap. Blocked windows come from the child's existing shifts and any
// timed exclusion touching the pair; a gap is skipped when the employee is
// already booked inside it. A date-only exclusion blocks the whole day.
func (s *shiftService) AutoGenerate(ctx context.Context, req *dto.AutoGenerateShiftsRequest) (*dto.AutoGenerateShiftsResponse, error) {
	probe, err := s.parseProbe(req.EmployeeID, req.ChildID, req.Date,
		minutesToClock(autoGenDayStart), minutesToClock(autoGenDayEnd), nil, false)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Child.GetByID(ctx, req.ChildID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	type window struct{ start, end int }
	var blocked []window

	exclusions, err := s.matchExclusions(ctx, probe)
	if err != nil {
		return nil, err
	}
	for _, exc := range exclusions {
		if exc.StartTime == nil || exc.EndTime == nil {
			return &dto.AutoGenerateShiftsResponse{
				Message: "full-day exclusion active on this date: " + exc.Name,
			}, nil
		}
		es, err := parseClock(*exc.StartTime)
		if err != nil {
			return nil, err
		}
		ee, err := parseClock(*exc.EndTime)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, window{es, ee})
	}

	sameDay, err := s.repo.Shift.ListForDate(ctx, req.EmployeeID, req.ChildID, probe.date, nil)
	if err != nil {
		return nil, err
	}
	var employeeBusy []window
	for i := range sameDay {
		sh := &sameDay[i]
		ss, err := parseClock(sh.StartTime)
		if err != nil {
			return nil, err
		}
		se, err := parseClock(sh.EndTime)
		if err != nil {
			return nil, err
		}
		if sh.ChildID == req.ChildID {
			blocked = append(blocked, window{ss, se})
		}
		if sh.EmployeeID == req.EmployeeID {
			employeeBusy = append(employeeBusy, window{ss, se})
		}
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].start < blocked[j].start })

	out := &dto.AutoGenerateShiftsResponse{}
	fill := func(start, end int) error {
		for _, w := range employeeBusy {
			if timesOverlap(start, end, w.start, w.end) {
				return nil
			}
		}
		shift := &model.Shift{
			EmployeeID: req.EmployeeID,
			ChildID:    req.ChildID,
			Date:       probe.date,
			StartTime:  minutesToClock(start),
			EndTime:    minutesToClock(end),
			Status:     "auto-generated",
		}
		if err := s.repo.Shift.Create(ctx, shift); err != nil {
			return classifyStoreError(err)
		}
		out.Shifts = append(out.Shifts, dto.GeneratedShift{
			ShiftID:   shift.ShiftID,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
		})
		return nil
	}

	cur := autoGenDayStart
	for _, w := range blocked {
		if cur < w.start {
			if err := fill(cur, w.start); err != nil {
				return nil, err
			}
		}
		if w.end > cur {
			cur = w.end
		}
	}
	if cur < autoGenDayEnd {
		if err := fill(cur, autoGenDayEnd); err != nil {
			return nil, err
		}
	}

	out.Created = len(out.Shifts)
	s.logger.Info("shifts auto-generated",
		zap.String("employee_id", req.EmployeeID),
		zap.String("child_id", req.ChildID),
		zap.String("date", req.Date),
		zap.Int("created", out.Created))
	return out, nil
}

// ── dry-run probes ──

func (s *shiftService) Validate(ctx context.Context, req *dto.ValidateShiftRequest) (*dto.ValidateShiftResponse, error) {
	probe, err := s.parseProbe(req.EmployeeID, req.ChildID, req.Date, req.StartTime, req.EndTime, req.ExcludeShiftID, req.AllowOverlaps)
	if err != nil {
		return conflictVerdict(err)
	}
	warnings, err := s.runChecks(ctx, probe)
	if err != nil {
		return conflictVerdict(err)
	}
	return &dto.ValidateShiftResponse{Valid: true, Warnings: warnings}, nil
}

// conflictVerdict folds a fatal ConflictError into the dry-run response
// shape; any other error still propagates.
func conflictVerdict(err error) (*dto.ValidateShiftResponse, error) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return &dto.ValidateShiftResponse{
			Valid:     false,
			Conflicts: []dto.ConflictInfo{{Cause: string(conflict.Cause), Message: conflict.Message}},
		}, nil
	}
	return nil, err
}

func (s *shiftService) CheckOverlaps(ctx context.Context, req *dto.ValidateShiftRequest) (*dto.OverlapCheckResponse, error) {
	probe, err := s.parseProbe(req.EmployeeID, req.ChildID, req.Date, req.StartTime, req.EndTime, req.ExcludeShiftID, req.AllowOverlaps)
	if err != nil {
		return nil, err
	}
	empHit, childHit, err := s.findOverlaps(ctx, probe)
	if err != nil {
		return nil, err
	}
	out := &dto.OverlapCheckResponse{}
	if empHit != nil {
		out.Employee = toOverlapMatch(empHit, "employee")
	}
	if childHit != nil {
		out.Child = toOverlapMatch(childHit, "child")
	}
	return out, nil
}

func (s *shiftService) CheckExclusions(ctx context.Context, req *dto.ValidateShiftRequest) ([]dto.ExclusionMatch, error) {
	probe, err := s.parseProbe(req.EmployeeID, req.ChildID, req.Date, req.StartTime, req.EndTime, req.ExcludeShiftID, req.AllowOverlaps)
	if err != nil {
		return nil, err
	}
	matched, err := s.matchExclusions(ctx, probe)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExclusionMatch, 0, len(matched))
	for i := range matched {
		exc := &matched[i]
		scope := "global"
		if exc.EmployeeID != nil {
			scope = "employee"
		} else if exc.ChildID != nil {
			scope = "child"
		}
		out = append(out, dto.ExclusionMatch{
			ExclusionPeriodID: exc.ExclusionPeriodID,
			Name:              exc.Name,
			Scope:             scope,
			Blocking:          !exc.IsGlobal(),
		})
	}
	return out, nil
}

func (s *shiftService) CheckHourLimit(ctx context.Context, req *dto.ValidateShiftRequest) (*dto.HourLimitCheckResponse, error) {
	probe, err := s.parseProbe(req.EmployeeID, req.ChildID, req.Date, req.StartTime, req.EndTime, req.ExcludeShiftID, req.AllowOverlaps)
	if err != nil {
		return nil, err
	}
	return s.hourLimitVerdict(ctx, probe)
}

// ── mapping ──

func toShiftResponse(sh *model.Shift) *dto.ShiftResponse {
	out := &dto.ShiftResponse{
		ID:          sh.ShiftID,
		EmployeeID:  sh.EmployeeID,
		ChildID:     sh.ChildID,
		Date:        sh.Date.Format(model.DateFormat),
		StartTime:   clockForWire(sh.StartTime),
		EndTime:     clockForWire(sh.EndTime),
		ServiceCode: sh.ServiceCode,
		Status:      sh.Status,
		IsImported:  sh.IsImported,
		CreatedAt:   sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   sh.UpdatedAt.Format(time.RFC3339),
	}
	if sh.Employee != nil {
		out.EmployeeName = sh.Employee.FriendlyName
	}
	if sh.Child != nil {
		out.ChildName = sh.Child.Name
	}
	return out
}

func toOverlapMatch(sh *model.Shift, scope string) *dto.OverlapMatch {
	return &dto.OverlapMatch{
		ShiftID:   sh.ShiftID,
		Scope:     scope,
		Date:      sh.Date.Format(model.DateFormat),
		StartTime: clockForWire(sh.StartTime),
		EndTime:   clockForWire(sh.EndTime),
	}
}

// clockForWire normalizes a stored time value (possibly HH:MM:SS) to HH:MM.
func clockForWire(s string) string {
	if m, err := parseClock(s); err == nil {
		return minutesToClock(m)
	}
	return s
}
