package export

import (
	"context"
	"fmt"
	"time"

	"assochub/internal/adapters/persistence/repositories"
	"assochub/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// fetchPage is the page size used when draining a repository
const fetchPage = 500

// ExcelExporter builds Excel workbooks from repository data
type ExcelExporter struct {
	memberRepo repositories.MemberRepository
	reportRepo repositories.ReportRepository
	taskRepo   repositories.TaskRepository
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(
	memberRepo repositories.MemberRepository,
	reportRepo repositories.ReportRepository,
	taskRepo repositories.TaskRepository,
) *ExcelExporter {
	return &ExcelExporter{
		memberRepo: memberRepo,
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
	}
}

// Members exports all members to a workbook
func (e *ExcelExporter) Members(ctx context.Context) (*excelize.File, error) {
	members, err := drain(ctx, e.memberRepo.List)
	if err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Member Code", "Full Name", "Gender", "Phone", "Email",
		"Position", "Department", "Type", "Status", "Join Date",
	}
	f, sheet, err := newWorkbook("Members", headers)
	if err != nil {
		return nil, err
	}

	for i, m := range members {
		row := i + 2
		setRow(f, sheet, row,
			m.ID, m.MemberCode, m.FullName, m.Gender, m.Phone, m.Email,
			m.Position, m.Department, string(m.MemberType), string(m.Status),
			formatDate(&m.JoinDate),
		)
	}

	return f, nil
}

// Reports exports all reports to a workbook
func (e *ExcelExporter) Reports(ctx context.Context) (*excelize.File, error) {
	reports, err := drain(ctx, e.reportRepo.List)
	if err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Title", "Type", "Period", "Status",
		"Submitted At", "Approved At", "Rejection Reason",
	}
	f, sheet, err := newWorkbook("Reports", headers)
	if err != nil {
		return nil, err
	}

	for i, r := range reports {
		row := i + 2
		setRow(f, sheet, row,
			r.ID, r.Title, string(r.ReportType), r.Period, string(r.Status),
			formatDate(r.SubmittedAt), formatDate(r.ApprovedAt), r.RejectionReason,
		)
	}

	return f, nil
}

// Tasks exports all tasks to a workbook
func (e *ExcelExporter) Tasks(ctx context.Context) (*excelize.File, error) {
	tasks, err := drain(ctx, e.taskRepo.List)
	if err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Title", "Priority", "Status", "Assigned To",
		"Due Date", "Progress %", "Estimated Hours", "Actual Hours",
	}
	f, sheet, err := newWorkbook("Tasks", headers)
	if err != nil {
		return nil, err
	}

	for i, t := range tasks {
		row := i + 2
		status := t.Status
		if t.IsOverdue() {
			status = domain.TaskStatusOverdue
		}
		setRow(f, sheet, row,
			t.ID, t.Title, string(t.Priority), string(status), t.AssignedTo,
			formatDate(t.DueDate), t.ProgressPercentage, t.EstimatedHours, t.ActualHours,
		)
	}

	return f, nil
}

// newWorkbook creates a single-sheet workbook with a bold header row
func newWorkbook(sheet string, headers []string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return nil, "", err
		}
	}

	return f, sheet, nil
}

// setRow writes one record across a row, starting at column A
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}

// drain pages through a List-style repository method until exhausted
func drain[T any](ctx context.Context, list func(context.Context, int, int) ([]T, int64, error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += fetchPage {
		page, total, err := list(ctx, offset, fetchPage)
		if err != nil {
			return nil, fmt.Errorf("export fetch failed: %w", err)
		}
		all = append(all, page...)
		if len(page) < fetchPage || int64(len(all)) >= total {
			break
		}
	}
	return all, nil
}

// formatDate renders a nullable date for a spreadsheet cell
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
