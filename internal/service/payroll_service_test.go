package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

// fixedNow keeps the period math deterministic. 2025-03-12 is a Wednesday.
var fixedNow = time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

func setupTestPayrollService(t *testing.T) (PayrollService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	svc := &payrollService{repo: repo, logger: zap.NewNop(), now: func() time.Time { return fixedNow }}
	return svc, repo
}

func configurePeriods(t *testing.T, svc PayrollService, anchor string) []dto.PayrollPeriodResponse {
	t.Helper()
	periods, err := svc.ConfigurePeriods(context.Background(), &dto.ConfigurePeriodsRequest{AnchorDate: anchor})
	if err != nil {
		t.Fatalf("ConfigurePeriods: %v", err)
	}
	return periods
}

// ── period generation ──

func TestPayrollService_ConfigurePeriods_ThirtyContiguous(t *testing.T) {
	svc, _ := setupTestPayrollService(t)

	periods := configurePeriods(t, svc, "2024-01-01")
	if len(periods) != 30 {
		t.Fatalf("expected 30 periods, got %d", len(periods))
	}
	for i, p := range periods {
		start, err := time.Parse(model.DateFormat, p.StartDate)
		if err != nil {
			t.Fatalf("period %d start: %v", i, err)
		}
		end, err := time.Parse(model.DateFormat, p.EndDate)
		if err != nil {
			t.Fatalf("period %d end: %v", i, err)
		}
		if !end.Equal(start.AddDate(0, 0, 13)) {
			t.Errorf("period %d spans %s..%s, want exactly 14 days", i, p.StartDate, p.EndDate)
		}
		if i > 0 {
			prevEnd, _ := time.Parse(model.DateFormat, periods[i-1].EndDate)
			if !start.Equal(prevEnd.AddDate(0, 0, 1)) {
				t.Errorf("period %d does not start the day after period %d ends", i, i-1)
			}
		}
	}
}

func TestPayrollService_ConfigurePeriods_AnchorAlignment(t *testing.T) {
	svc, _ := setupTestPayrollService(t)

	// Anchor far in the past: every period start must remain congruent to the
	// anchor modulo 14 days.
	anchor, _ := time.Parse(model.DateFormat, "2020-06-01")
	periods := configurePeriods(t, svc, "2020-06-01")
	for _, p := range periods {
		start, _ := time.Parse(model.DateFormat, p.StartDate)
		days := int(start.Sub(anchor).Hours() / 24)
		if days%14 != 0 {
			t.Errorf("period start %s is not aligned to the anchor grid", p.StartDate)
		}
	}
}

func TestPayrollService_ConfigurePeriods_CoversToday(t *testing.T) {
	svc, _ := setupTestPayrollService(t)
	configurePeriods(t, svc, "2025-03-03")

	current, err := svc.GetCurrentPeriod(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentPeriod after configure: %v", err)
	}
	start, _ := time.Parse(model.DateFormat, current.StartDate)
	end, _ := time.Parse(model.DateFormat, current.EndDate)
	today := dateOnly(fixedNow)
	if today.Before(start) || today.After(end) {
		t.Errorf("current period %s..%s does not contain today %s",
			current.StartDate, current.EndDate, today.Format(model.DateFormat))
	}
}

func TestPayrollService_ConfigurePeriods_Regeneration(t *testing.T) {
	svc, repo := setupTestPayrollService(t)
	configurePeriods(t, svc, "2024-01-01")
	configurePeriods(t, svc, "2024-01-08")

	periods, err := repo.PayrollPeriod.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(periods) != 30 {
		t.Errorf("regeneration must replace, not append: have %d periods", len(periods))
	}
}

func TestPayrollService_ConfigurePeriods_BadAnchor(t *testing.T) {
	svc, _ := setupTestPayrollService(t)

	_, err := svc.ConfigurePeriods(context.Background(), &dto.ConfigurePeriodsRequest{AnchorDate: "01/01/2024"})
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Cause != CauseValidation {
		t.Errorf("expected validation error for bad anchor, got %v", err)
	}
}

// ── week positioning ──

func TestPayrollPeriod_WeekOf(t *testing.T) {
	start, _ := time.Parse(model.DateFormat, "2025-03-03")
	p := &model.PayrollPeriod{StartDate: start, EndDate: start.AddDate(0, 0, 13)}

	if w := p.WeekOf(start); w != 1 {
		t.Errorf("start day: week %d, want 1", w)
	}
	if w := p.WeekOf(start.AddDate(0, 0, 6)); w != 1 {
		t.Errorf("start+6: week %d, want 1", w)
	}
	if w := p.WeekOf(start.AddDate(0, 0, 7)); w != 2 {
		t.Errorf("start+7: week %d, want 2", w)
	}
	if w := p.WeekOf(start.AddDate(0, 0, 13)); w != 2 {
		t.Errorf("end day: week %d, want 2", w)
	}
}

// ── navigation ──

func TestPayrollService_NavigatePeriod(t *testing.T) {
	svc, _ := setupTestPayrollService(t)
	ctx := context.Background()
	configurePeriods(t, svc, "2025-03-03")

	current, err := svc.GetCurrentPeriod(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	next, err := svc.NavigatePeriod(ctx, current.ID, 1)
	if err != nil {
		t.Fatalf("navigate forward: %v", err)
	}
	curEnd, _ := time.Parse(model.DateFormat, current.EndDate)
	nextStart, _ := time.Parse(model.DateFormat, next.StartDate)
	if !nextStart.Equal(curEnd.AddDate(0, 0, 1)) {
		t.Errorf("next period starts %s, want the day after %s", next.StartDate, current.EndDate)
	}

	back, err := svc.NavigatePeriod(ctx, next.ID, -1)
	if err != nil {
		t.Fatalf("navigate back: %v", err)
	}
	if back.ID != current.ID {
		t.Errorf("forward then back should land on the same period")
	}
}

func TestPayrollService_NavigatePeriod_Boundary(t *testing.T) {
	svc, repo := setupTestPayrollService(t)
	ctx := context.Background()
	configurePeriods(t, svc, "2024-01-01")

	periods, err := repo.PayrollPeriod.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// List is newest-first.
	newest, oldest := periods[0], periods[len(periods)-1]

	if _, err := svc.NavigatePeriod(ctx, newest.PayrollPeriodID, 1); !errors.Is(err, ErrPeriodNotFound) {
		t.Errorf("expected ErrPeriodNotFound past the newest period, got %v", err)
	}
	if _, err := svc.NavigatePeriod(ctx, oldest.PayrollPeriodID, -1); !errors.Is(err, ErrPeriodNotFound) {
		t.Errorf("expected ErrPeriodNotFound before the oldest period, got %v", err)
	}
}

func TestPayrollService_GetPeriodForDate_Unconfigured(t *testing.T) {
	svc, _ := setupTestPayrollService(t)

	if _, err := svc.GetPeriodForDate(context.Background(), "2025-03-10"); !errors.Is(err, ErrPeriodNotFound) {
		t.Errorf("expected ErrPeriodNotFound with no periods, got %v", err)
	}
}

// ── exclusions ──

func TestPayrollService_CreateExclusion_ScopeRules(t *testing.T) {
	svc, _ := setupTestPayrollService(t)
	ctx := context.Background()

	_, err := svc.CreateExclusion(ctx, &dto.CreateExclusionRequest{
		Name: "bad", StartDate: "2025-03-10", EndDate: "2025-03-12",
		EmployeeID: strPtr("emp-1"), ChildID: strPtr("child-1"),
	})
	if !errors.Is(err, ErrExclusionScope) {
		t.Errorf("expected ErrExclusionScope, got %v", err)
	}

	_, err = svc.CreateExclusion(ctx, &dto.CreateExclusionRequest{
		Name: "bad", StartDate: "2025-03-12", EndDate: "2025-03-10",
	})
	if !errors.Is(err, ErrDateOrder) {
		t.Errorf("expected ErrDateOrder, got %v", err)
	}

	_, err = svc.CreateExclusion(ctx, &dto.CreateExclusionRequest{
		Name: "bad", StartDate: "2025-03-10", EndDate: "2025-03-12",
		StartTime: strPtr("09:00"),
	})
	if !errors.Is(err, ErrExclusionTimePair) {
		t.Errorf("expected ErrExclusionTimePair, got %v", err)
	}
}

func TestPayrollService_DeactivateExclusion(t *testing.T) {
	svc, repo := setupTestPayrollService(t)
	ctx := context.Background()

	created, err := svc.CreateExclusion(ctx, &dto.CreateExclusionRequest{
		Name: "holiday", StartDate: "2025-03-10", EndDate: "2025-03-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeactivateExclusion(ctx, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	stored, err := repo.ExclusionPeriod.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Active {
		t.Error("exclusion should be inactive")
	}

	if err := svc.DeactivateExclusion(ctx, "missing"); !errors.Is(err, ErrExclusionNotFound) {
		t.Errorf("expected ErrExclusionNotFound, got %v", err)
	}
}

// ── bulk expansion ──

func TestPayrollService_ExpandBulkDates_MondayWeek1(t *testing.T) {
	svc, _ := setupTestPayrollService(t)
	ctx := context.Background()
	// Anchor on a Monday so week boundaries are predictable.
	configurePeriods(t, svc, "2025-03-03")

	// Four whole weeks starting on a period boundary: two payroll weeks 1 and
	// two payroll weeks 2, hence exactly two week-1 Mondays.
	dates, err := svc.ExpandBulkDates(ctx, &dto.ExpandBulkDatesRequest{
		StartDate:  strPtr("2025-03-03"),
		EndDate:    strPtr("2025-03-30"),
		Weekdays:   []int{1}, // Monday
		WeekFilter: "week1",
	})
	if err != nil {
		t.Fatalf("ExpandBulkDates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d: %+v", len(dates), dates)
	}
	if dates[0].Date != "2025-03-03" || dates[1].Date != "2025-03-17" {
		t.Errorf("unexpected dates: %+v", dates)
	}
	for _, d := range dates {
		if d.Week != 1 {
			t.Errorf("date %s classified week %d, want 1", d.Date, d.Week)
		}
	}
}

func TestPayrollService_ExpandBulkDates_BothWeeks(t *testing.T) {
	svc, _ := setupTestPayrollService(t)
	ctx := context.Background()
	configurePeriods(t, svc, "2025-03-03")

	dates, err := svc.ExpandBulkDates(ctx, &dto.ExpandBulkDatesRequest{
		StartDate:  strPtr("2025-03-03"),
		EndDate:    strPtr("2025-03-16"),
		Weekdays:   []int{5}, // Friday
		WeekFilter: "both",
	})
	if err != nil {
		t.Fatalf("ExpandBulkDates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 Fridays, got %d", len(dates))
	}
	if dates[0].Week != 1 || dates[1].Week != 2 {
		t.Errorf("expected weeks 1 then 2, got %+v", dates)
	}
}

func TestPayrollService_ExpandBulkDates_SkipsUncoveredDates(t *testing.T) {
	svc, _ := setupTestPayrollService(t)
	ctx := context.Background()
	// No periods configured at all.

	dates, err := svc.ExpandBulkDates(ctx, &dto.ExpandBulkDatesRequest{
		StartDate:  strPtr("2025-03-03"),
		EndDate:    strPtr("2025-03-30"),
		Weekdays:   []int{1},
		WeekFilter: "both",
	})
	if err != nil {
		t.Fatalf("ExpandBulkDates: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("dates outside any period must be skipped, got %+v", dates)
	}
}

func TestPayrollService_CreateBulkExclusions_OneRowPerDate(t *testing.T) {
	svc, repo := setupTestPayrollService(t)
	ctx := context.Background()
	configurePeriods(t, svc, "2025-03-03")

	result, err := svc.CreateBulkExclusions(ctx, &dto.CreateBulkExclusionsRequest{
		ExpandBulkDatesRequest: dto.ExpandBulkDatesRequest{
			StartDate:  strPtr("2025-03-03"),
			EndDate:    strPtr("2025-03-30"),
			Weekdays:   []int{3}, // Wednesday
			WeekFilter: "both",
		},
		Name:    "therapy",
		ChildID: strPtr("child-1"),
	})
	if err != nil {
		t.Fatalf("CreateBulkExclusions: %v", err)
	}
	if result.Created != 4 {
		t.Fatalf("expected 4 Wednesdays created, got %d", result.Created)
	}

	stored, err := repo.ExclusionPeriod.List(ctx, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(stored))
	}
	for _, exc := range stored {
		if !exc.StartDate.Equal(exc.EndDate) {
			t.Errorf("bulk rows must be single-day, got %s..%s",
				exc.StartDate.Format(model.DateFormat), exc.EndDate.Format(model.DateFormat))
		}
		if exc.ChildID == nil || *exc.ChildID != "child-1" {
			t.Errorf("expected child scope on %+v", exc)
		}
	}
}

// ── summary ──

func TestPayrollService_GetPeriodSummary(t *testing.T) {
	svc, repo := setupTestPayrollService(t)
	ctx := context.Background()
	configurePeriods(t, svc, "2025-03-03")

	current, err := svc.GetCurrentPeriod(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	date, _ := time.Parse(model.DateFormat, current.StartDate)

	alice := &model.Employee{EmployeeID: "emp-1", FriendlyName: "Alice Smith", SystemName: "alice", Active: true}
	casey := &model.Child{ChildID: "child-1", Name: "Casey", Code: "CAS1", Active: true}
	shifts := []model.Shift{
		{EmployeeID: "emp-1", ChildID: "child-1", Date: date, StartTime: "09:00", EndTime: "13:00", Employee: alice, Child: casey},
		{EmployeeID: "emp-1", ChildID: "child-1", Date: date.AddDate(0, 0, 1), StartTime: "09:00", EndTime: "11:30", Employee: alice, Child: casey, IsImported: true},
	}
	for i := range shifts {
		if err := repo.Shift.Create(ctx, &shifts[i]); err != nil {
			t.Fatalf("seed shift: %v", err)
		}
	}

	summary, err := svc.GetPeriodSummary(ctx, current.ID)
	if err != nil {
		t.Fatalf("GetPeriodSummary: %v", err)
	}
	if summary.TotalShifts != 2 || summary.ManualShifts != 1 || summary.ImportedShifts != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.TotalHours != 6.5 {
		t.Errorf("expected 6.5 total hours, got %.2f", summary.TotalHours)
	}
	if len(summary.EmployeeHours) != 1 || summary.EmployeeHours[0].Name != "Alice Smith" || summary.EmployeeHours[0].Hours != 6.5 {
		t.Errorf("unexpected employee rollup: %+v", summary.EmployeeHours)
	}
	if len(summary.ChildHours) != 1 || summary.ChildHours[0].Hours != 6.5 {
		t.Errorf("unexpected child rollup: %+v", summary.ChildHours)
	}
}
