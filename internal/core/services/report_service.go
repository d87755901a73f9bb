package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"assochub/internal/adapters/persistence/repositories"
	"assochub/internal/core/domain"
)

// Report service errors
var (
	ErrReportNotFound = errors.New("report not found")
)

// ReportService handles the report approval workflow
type ReportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repositories.ReportRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
	}
}

// CreateReportInput represents create report input
type CreateReportInput struct {
	Title       string            `json:"title" validate:"required"`
	ReportType  domain.ReportType `json:"report_type,omitempty"`
	Period      string            `json:"period,omitempty"`
	Content     string            `json:"content,omitempty"`
	Attachments string            `json:"attachments,omitempty"`
	CreatedBy   uint              `json:"created_by,omitempty"`
}

// Create creates a new report in Draft status
func (s *ReportService) Create(ctx context.Context, input *CreateReportInput) (*domain.Report, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	report := &domain.Report{
		Title:       input.Title,
		ReportType:  input.ReportType,
		Period:      input.Period,
		Content:     input.Content,
		Attachments: input.Attachments,
		Status:      domain.ReportStatusDraft,
		CreatedBy:   input.CreatedBy,
	}
	if report.ReportType == "" {
		report.ReportType = domain.ReportTypeMonthly
	}
	if !domain.ValidReportType(report.ReportType) {
		return nil, fmt.Errorf("%w: unknown report type %q", domain.ErrInvalidInput, report.ReportType)
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("✅ Report created: #%d %q (%s)", report.ID, report.Title, report.ReportType)
	return report, nil
}

// GetByID gets a report by ID
func (s *ReportService) GetByID(ctx context.Context, id uint) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// UpdateReportInput represents the allow-listed patch for a report. The
// id and creation metadata are not patchable by construction.
type UpdateReportInput struct {
	Title       *string            `json:"title,omitempty"`
	ReportType  *domain.ReportType `json:"report_type,omitempty"`
	Period      *string            `json:"period,omitempty"`
	Content     *string            `json:"content,omitempty"`
	Attachments *string            `json:"attachments,omitempty"`
}

// Update applies a patch. Only Draft and Rejected reports are editable.
func (s *ReportService) Update(ctx context.Context, id uint, input *UpdateReportInput) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if !report.IsEditable() {
		return nil, domain.ErrReportNotEditable
	}

	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.ReportType != nil {
		if !domain.ValidReportType(*input.ReportType) {
			return nil, fmt.Errorf("%w: unknown report type %q", domain.ErrInvalidInput, *input.ReportType)
		}
		report.ReportType = *input.ReportType
	}
	if input.Period != nil {
		report.Period = *input.Period
	}
	if input.Content != nil {
		report.Content = *input.Content
	}
	if input.Attachments != nil {
		report.Attachments = *input.Attachments
	}

	report.UpdatedAt = time.Now()
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a report. Only Draft and Rejected reports are deletable.
func (s *ReportService) Delete(ctx context.Context, id uint) error {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	if !report.IsDeletable() {
		return domain.ErrReportNotDeletable
	}

	return s.reportRepo.Delete(ctx, id)
}

// Submit moves a report into the approval queue
func (s *ReportService) Submit(ctx context.Context, id uint, submittedBy uint) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if err := report.Submit(submittedBy); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("✅ Report #%d submitted by user %d", report.ID, submittedBy)
	return report, nil
}

// Approve approves a submitted report
func (s *ReportService) Approve(ctx context.Context, id uint, approvedBy uint) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if err := report.Approve(approvedBy); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("✅ Report #%d approved by user %d", report.ID, approvedBy)
	return report, nil
}

// Reject rejects a submitted report with a mandatory reason
func (s *ReportService) Reject(ctx context.Context, id uint, rejectedBy uint, reason string) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if err := report.Reject(rejectedBy, reason); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("✅ Report #%d rejected by user %d: %s", report.ID, rejectedBy, reason)
	return report, nil
}

// ListReportsInput represents list/filter input
type ListReportsInput struct {
	Page        int
	Limit       int
	ReportType  *domain.ReportType
	Status      *domain.ReportStatus
	Period      string
	SubmittedBy *uint
	From        *time.Time
	To          *time.Time
	Search      string
}

// ListReportsOutput represents list output
type ListReportsOutput struct {
	Reports    []*domain.Report `json:"reports"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List lists reports with optional filtering and search
func (s *ReportService) List(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	var reports []*domain.Report
	var total int64
	var err error

	switch {
	case input.Search != "":
		reports, err = s.reportRepo.SearchByTitle(ctx, input.Search, input.Limit)
		total = int64(len(reports))
	case input.ReportType != nil:
		reports, err = s.reportRepo.GetByType(ctx, *input.ReportType)
		total = int64(len(reports))
	case input.Status != nil:
		reports, err = s.reportRepo.GetByStatus(ctx, *input.Status)
		total = int64(len(reports))
	case input.Period != "":
		reports, err = s.reportRepo.GetByPeriod(ctx, input.Period)
		total = int64(len(reports))
	case input.SubmittedBy != nil:
		reports, err = s.reportRepo.GetBySubmitter(ctx, *input.SubmittedBy)
		total = int64(len(reports))
	case input.From != nil && input.To != nil:
		reports, err = s.reportRepo.GetByDateRange(ctx, *input.From, *input.To)
		total = int64(len(reports))
	default:
		offset := (input.Page - 1) * input.Limit
		reports, total, err = s.reportRepo.List(ctx, offset, input.Limit)
	}
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListReportsOutput{
		Reports:    reports,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// ReportStatistics represents aggregate report counts
type ReportStatistics struct {
	Total        int64   `json:"total"`
	Draft        int64   `json:"draft"`
	Submitted    int64   `json:"submitted"`
	Approved     int64   `json:"approved"`
	Rejected     int64   `json:"rejected"`
	ApprovalRate float64 `json:"approval_rate"`
}

// Statistics aggregates report counts and the approval rate. The rate is
// 0 when nothing has been decided yet.
func (s *ReportService) Statistics(ctx context.Context) (*ReportStatistics, error) {
	counts, err := s.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ReportStatistics{
		Draft:     counts[domain.ReportStatusDraft],
		Submitted: counts[domain.ReportStatusSubmitted],
		Approved:  counts[domain.ReportStatusApproved],
		Rejected:  counts[domain.ReportStatusRejected],
	}
	stats.Total = stats.Draft + stats.Submitted + stats.Approved + stats.Rejected

	if decided := stats.Approved + stats.Rejected; decided > 0 {
		stats.ApprovalRate = float64(stats.Approved) / float64(decided)
	}
	return stats, nil
}
