package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

var (
	ErrExportNoShifts   = errors.New("the period has no shifts to export")
	ErrExportNoPeriod   = errors.New("payroll period not found")
	ErrExportGenerateXL = errors.New("failed to generate the Excel file")
)

// ExportService renders read-only snapshots: a payroll-period summary
// workbook and the active exclusions as a calendar feed. Both return a
// buffer plus a suggested file name; the handler sets the response headers.
type ExportService interface {
	ExportPeriodSummary(ctx context.Context, periodID string) (*bytes.Buffer, string, error)
	ExportExclusionCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	payroll PayrollService
	logger  *zap.Logger
}

func NewExportService(repo *repository.Repository, payroll PayrollService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, payroll: payroll, logger: logger}
}

// ExportPeriodSummary writes one sheet of shift lines followed by the
// per-employee and per-child hour rollups.
func (s *exportService) ExportPeriodSummary(ctx context.Context, periodID string) (*bytes.Buffer, string, error) {
	period, err := s.repo.PayrollPeriod.GetByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportNoPeriod
		}
		return nil, "", err
	}
	summary, err := s.payroll.GetPeriodSummary(ctx, periodID)
	if err != nil {
		return nil, "", err
	}
	shifts, err := s.repo.Shift.ListByDateRange(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Period Summary"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateXL
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "C", 24)
	f.SetColWidth(sheet, "D", "G", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := fmt.Sprintf("Payroll Period %s to %s", summary.Period.StartDate, summary.Period.EndDate)
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", "G1")

	headers := []string{"Date", "Employee", "Child", "Start", "End", "Hours", "Source"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 3
	for i := range shifts {
		sh := &shifts[i]
		start, err := parseClock(sh.StartTime)
		if err != nil {
			return nil, "", err
		}
		end, err := parseClock(sh.EndTime)
		if err != nil {
			return nil, "", err
		}
		employeeName := sh.EmployeeID
		if sh.Employee != nil {
			employeeName = sh.Employee.FriendlyName
		}
		childName := sh.ChildID
		if sh.Child != nil {
			childName = sh.Child.Name
		}
		source := "Manual"
		if sh.IsImported {
			source = "Imported"
		}
		values := []interface{}{
			sh.Date.Format(model.DateFormat),
			employeeName,
			childName,
			clock12(start),
			clock12(end),
			hoursBetween(start, end),
			source,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total Hours")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalHours)
	row += 2

	row = s.writeRollup(f, sheet, row, "Hours by Employee", summary.EmployeeHours)
	s.writeRollup(f, sheet, row+1, "Hours by Child", summary.ChildHours)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("failed to serialize workbook", zap.Error(err))
		return nil, "", ErrExportGenerateXL
	}
	filename := fmt.Sprintf("period-summary-%s.xlsx", summary.Period.StartDate)
	return buf, filename, nil
}

func (s *exportService) writeRollup(f *excelize.File, sheet string, row int, title string, lines []dto.NamedHours) int {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), title)
	row++
	for _, line := range lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Hours)
		row++
	}
	return row
}

// ExportExclusionCalendar publishes every active exclusion as a VEVENT.
// Date-only exclusions become all-day events; timed ones carry the window.
func (s *exportService) ExportExclusionCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	exclusions, err := s.repo.ExclusionPeriod.List(ctx, true)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//evvie-time-tracker//exclusions//EN")

	for i := range exclusions {
		exc := &exclusions[i]
		event := cal.AddEvent(exc.ExclusionPeriodID)
		event.SetSummary(exc.Name)
		if exc.Reason != "" {
			event.SetDescription(exc.Reason)
		}
		event.SetDtStampTime(exc.CreatedAt)

		if exc.StartTime != nil && exc.EndTime != nil {
			startMin, err := parseClock(*exc.StartTime)
			if err != nil {
				return nil, "", err
			}
			endMin, err := parseClock(*exc.EndTime)
			if err != nil {
				return nil, "", err
			}
			event.SetStartAt(exc.StartDate.Add(time.Duration(startMin) * time.Minute))
			event.SetEndAt(exc.EndDate.Add(time.Duration(endMin) * time.Minute))
		} else {
			event.SetAllDayStartAt(exc.StartDate)
			// DTEND is exclusive for all-day events.
			event.SetAllDayEndAt(exc.EndDate.AddDate(0, 0, 1))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "exclusions.ics", nil
}
