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

	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── export business errors ──

var (
	ErrExportNoStaffing   = errors.New("occurrence has no staffing to export")
	ErrExportGenerateFail = errors.New("generate export file failed")
)

const osloTimezone = "Europe/Oslo"

// ExportService produces downloadable artifacts from occurrence data.
//
// Two formats are supported:
//   - a staffing roster workbook (.xlsx) per occurrence, for printing
//     and handing to the service host
//   - an iCalendar (RFC 5545) feed of published occurrences, for
//     subscribing from personal calendar apps
type ExportService interface {
	ExportStaffing(ctx context.Context, occurrenceID string) (*bytes.Buffer, string, error)
	CalendarFeed(ctx context.Context) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportStaffing — roster workbook for one occurrence
// ════════════════════════════════════════════════════════════
//
// Layout: title row, then | # | Role | Person | Type | with one row per
// assignment in display order. Returns buf, suggested filename, error.

func (s *exportService) ExportStaffing(ctx context.Context, occurrenceID string) (*bytes.Buffer, string, error) {
	occurrence, err := s.repo.Occurrence.GetByID(ctx, occurrenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrOccurrenceNotFound
		}
		s.logger.Error("load occurrence failed", zap.Error(err))
		return nil, "", err
	}

	items, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, "", err
	}
	assignments, err := s.repo.Assignment.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, "", err
	}
	if len(assignments) == 0 {
		return nil, "", ErrExportNoStaffing
	}

	programRoles := programRoleSet(items)
	title := occurrenceDisplayTitle(occurrence)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Staffing"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "D", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — %s", title, occurrence.Date.Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	f.SetCellValue(sheetName, "A2", "#")
	f.SetCellValue(sheetName, "B2", "Role")
	f.SetCellValue(sheetName, "C2", "Person")
	f.SetCellValue(sheetName, "D2", "Type")

	row := 3
	for i := range assignments {
		a := &assignments[i]

		roleName := a.ServiceRoleID
		if a.ServiceRole != nil {
			roleName = a.ServiceRole.Name
		}
		personName := "unassigned"
		if a.Person != nil {
			personName = a.Person.Name
		} else if a.PersonID != nil {
			personName = *a.PersonID
		}
		typeName := "program"
		if isManualAssignment(programRoles, a) {
			typeName = "extra duty"
		}

		f.SetCellValue(sheetName, cell("A", row), a.SortOrder)
		f.SetCellValue(sheetName, cell("B", row), roleName)
		f.SetCellValue(sheetName, cell("C", row), personName)
		f.SetCellValue(sheetName, cell("D", row), typeName)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("staffing_%s.xlsx", occurrence.Date.Format("2006-01-02"))
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// CalendarFeed — ICS feed of published occurrences
// ════════════════════════════════════════════════════════════

func (s *exportService) CalendarFeed(ctx context.Context) (string, error) {
	occurrences, err := s.repo.Occurrence.ListByStatus(ctx, model.OccurrencePublished)
	if err != nil {
		s.logger.Error("list published occurrences failed", zap.Error(err))
		return "", err
	}

	loc, err := time.LoadLocation(osloTimezone)
	if err != nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//eventmaster//calendar//EN")

	now := time.Now()
	for i := range occurrences {
		o := &occurrences[i]
		event := cal.AddEvent(o.OccurrenceID + "@eventmaster")
		event.SetCreatedTime(o.CreatedAt)
		event.SetDtStampTime(now)
		event.SetSummary(occurrenceDisplayTitle(o))

		start, end, allDay := occurrenceWindow(o, loc)
		if allDay {
			event.SetAllDayStartAt(start)
			event.SetAllDayEndAt(end)
		} else {
			event.SetStartAt(start)
			event.SetEndAt(end)
		}
	}

	return cal.Serialize(), nil
}

// occurrenceWindow resolves the event window from the occurrence date
// and its optional HH:MM clocks. Missing clocks produce an all-day
// event; a missing end defaults to one hour.
func occurrenceWindow(o *model.EventOccurrence, loc *time.Location) (start, end time.Time, allDay bool) {
	date := o.Date
	if o.StartTime == nil {
		start = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), true
	}

	start = atClock(date, *o.StartTime, loc)
	if o.EndTime != nil {
		end = atClock(date, *o.EndTime, loc)
		if !end.After(start) {
			end = start.Add(time.Hour)
		}
	} else {
		end = start.Add(time.Hour)
	}
	return start, end, false
}

func atClock(date time.Time, clock string, loc *time.Location) time.Time {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc)
}

// ── helpers ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
