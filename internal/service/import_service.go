package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

var ErrMissingColumns = errors.New("missing required CSV columns")

// ImportService ingests agency timesheet exports. The export is the source
// of truth: its shifts enter with overlap checks demoted to warnings, and an
// imported row displaces any manual shift with the same details.
type ImportService interface {
	ValidateCSV(ctx context.Context, r io.Reader) (*dto.ImportValidationResponse, error)
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResultResponse, error)
}

type importService struct {
	repo     *repository.Repository
	shiftSvc ShiftService
	logger   *zap.Logger
}

func NewImportService(repo *repository.Repository, shiftSvc ShiftService, logger *zap.Logger) ImportService {
	return &importService{repo: repo, shiftSvc: shiftSvc, logger: logger}
}

var requiredColumns = []string{"Date", "Consumer", "Employee", "Start Time", "End Time"}

// codedName matches "Friendly Name (CODE)" cells.
var codedName = regexp.MustCompile(`^(.+?)\s*\(([A-Z0-9]+)\)`)

var (
	startPrefix = regexp.MustCompile(`^Start:\s*(.+)`)
	endPrefix   = regexp.MustCompile(`^End:\s*(.+)`)
)

// csvRow is one timesheet line with every field parsed and normalized.
type csvRow struct {
	date         time.Time
	childName    string
	childCode    string
	employeeName string
	employeeCode string
	startTime    string
	endTime      string
	serviceCode  *string
	status       string
}

func parseCSVRow(record map[string]string) (*csvRow, error) {
	date, err := time.Parse("1/2/2006", record["Date"])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want M/D/YYYY", record["Date"])
	}

	childName, childCode := splitCodedName(record["Consumer"])
	employeeName, employeeCode := splitCodedName(record["Employee"])

	startTime, err := parseImportClock(record["Start Time"], startPrefix)
	if err != nil {
		return nil, err
	}
	endTime, err := parseImportClock(record["End Time"], endPrefix)
	if err != nil {
		return nil, err
	}
	// Agency exports use 12:00 AM as an end-of-day marker.
	if endTime == "00:00" {
		endTime = "23:59"
	}

	row := &csvRow{
		date:         date,
		childName:    childName,
		childCode:    childCode,
		employeeName: employeeName,
		employeeCode: employeeCode,
		startTime:    startTime,
		endTime:      endTime,
		status:       record["Status"],
	}
	if sc := record["Service Code"]; sc != "" {
		row.serviceCode = &sc
	}
	if row.status == "" {
		row.status = "imported"
	}
	return row, nil
}

func splitCodedName(cell string) (name, code string) {
	if m := codedName.FindStringSubmatch(cell); m != nil {
		return m[1], m[2]
	}
	return cell, ""
}

// parseImportClock strips an optional "Start:"/"End:" label and converts the
// 12-hour timesheet value to HH:MM.
func parseImportClock(cell string, prefix *regexp.Regexp) (string, error) {
	value := cell
	if m := prefix.FindStringSubmatch(cell); m != nil {
		value = m[1]
	}
	t, err := time.Parse("3:04 PM", value)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, want H:MM AM/PM", value)
	}
	return t.Format(model.ClockFormat), nil
}

// readRows parses the whole file into header-keyed records.
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	have := make(map[string]int, len(header))
	for i, col := range header {
		have[col] = i
	}
	for _, col := range requiredColumns {
		if _, ok := have[col]; !ok {
			return nil, fmt.Errorf("%w: need %v", ErrMissingColumns, requiredColumns)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		row := make(map[string]string, len(header))
		for col, i := range have {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ValidateCSV dry-runs the file: shape and per-row parse errors only, no
// lookups and no writes.
func (s *importService) ValidateCSV(ctx context.Context, r io.Reader) (*dto.ImportValidationResponse, error) {
	rows, err := readRows(r)
	if err != nil {
		return &dto.ImportValidationResponse{Valid: false, Errors: []string{err.Error()}}, nil
	}

	out := &dto.ImportValidationResponse{Rows: len(rows)}
	for i, record := range rows {
		parsed, err := parseCSVRow(record)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if parsed.childCode == "" {
			out.Warnings = append(out.Warnings, fmt.Sprintf("row %d: no code found for child %q", i+1, parsed.childName))
		}
		if parsed.employeeCode == "" {
			out.Warnings = append(out.Warnings, fmt.Sprintf("row %d: no code found for employee %q", i+1, parsed.employeeName))
		}
	}
	out.Valid = len(out.Errors) == 0
	return out, nil
}

func (s *importService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResultResponse, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}

	result := &dto.ImportResultResponse{}
	for i, record := range rows {
		if err := s.importRow(ctx, i+1, record, result); err != nil {
			return nil, err
		}
	}
	s.logger.Info("csv import finished",
		zap.Int("imported", result.Imported),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("replaced", result.Replaced),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

// importRow processes one line. Per-row failures are recorded in the result;
// only infrastructure errors propagate.
func (s *importService) importRow(ctx context.Context, line int, record map[string]string, result *dto.ImportResultResponse) error {
	parsed, err := parseCSVRow(record)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
		return nil
	}

	employeeID, err := s.resolveEmployee(ctx, parsed)
	if err != nil {
		return err
	}
	childID, err := s.resolveChild(ctx, parsed)
	if err != nil {
		return err
	}

	// An identical shift already on file: skip imported duplicates, displace
	// manual ones.
	existing, err := s.repo.Shift.FindExact(ctx, employeeID, childID, parsed.date, parsed.startTime, parsed.endTime)
	switch {
	case err == nil:
		if existing.IsImported {
			result.Duplicates++
			return nil
		}
		if err := s.repo.Shift.Delete(ctx, existing.ShiftID); err != nil {
			return err
		}
		result.Replaced++
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	_, warnings, err := s.shiftSvc.CreateImported(ctx, &dto.CreateShiftRequest{
		EmployeeID:  employeeID,
		ChildID:     childID,
		Date:        parsed.date.Format(model.DateFormat),
		StartTime:   parsed.startTime,
		EndTime:     parsed.endTime,
		ServiceCode: parsed.serviceCode,
		Status:      parsed.status,
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", line, conflict.Message))
			return nil
		}
		return err
	}
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", line, w))
	}
	result.Imported++
	return nil
}

// resolveEmployee finds the caregiver by system name, creating a stub on
// first sight.
func (s *importService) resolveEmployee(ctx context.Context, row *csvRow) (string, error) {
	employee, err := s.repo.Employee.GetBySystemName(ctx, row.employeeName)
	if err == nil {
		return employee.EmployeeID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	created := &model.Employee{
		FriendlyName: row.employeeName,
		SystemName:   row.employeeName,
		Active:       true,
	}
	if err := s.repo.Employee.Create(ctx, created); err != nil {
		return "", err
	}
	return created.EmployeeID, nil
}

// resolveChild looks the client up by code, then by name-as-code, creating a
// stub when neither matches.
func (s *importService) resolveChild(ctx context.Context, row *csvRow) (string, error) {
	if row.childCode != "" {
		child, err := s.repo.Child.GetByCode(ctx, row.childCode)
		if err == nil {
			return child.ChildID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}
	child, err := s.repo.Child.GetByCode(ctx, row.childName)
	if err == nil {
		return child.ChildID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	code := row.childCode
	if code == "" {
		code = row.childName
	}
	created := &model.Child{Name: row.childName, Code: code, Active: true}
	if err := s.repo.Child.Create(ctx, created); err != nil {
		return "", err
	}
	return created.ChildID, nil
}
