package services

import (
	"context"
	"testing"

	"assochub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportInput(title string) *CreateReportInput {
	return &CreateReportInput{
		Title:     title,
		Period:    "2026-01",
		Content:   "Summary of activities",
		CreatedBy: 1,
	}
}

func TestReportServiceCreate(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())

	report, err := svc.Create(context.Background(), reportInput("January report"))
	require.NoError(t, err)
	assert.NotZero(t, report.ID)
	assert.Equal(t, domain.ReportStatusDraft, report.Status)
	assert.Equal(t, domain.ReportTypeMonthly, report.ReportType)
}

func TestReportServiceCreateRequiresTitle(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())

	_, err := svc.Create(context.Background(), reportInput(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportServiceCreateRejectsUnknownType(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())

	input := reportInput("Hourly report")
	input.ReportType = "HOURLY"
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportServiceUpdateRejectsUnknownType(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	report, err := svc.Create(ctx, reportInput("January report"))
	require.NoError(t, err)

	bad := domain.ReportType("HOURLY")
	_, err = svc.Update(ctx, report.ID, &UpdateReportInput{ReportType: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := svc.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportTypeMonthly, stored.ReportType)
}

func TestReportServiceApprovalWorkflow(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	report, err := svc.Create(ctx, reportInput("January report"))
	require.NoError(t, err)

	submitted, err := svc.Submit(ctx, report.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusSubmitted, submitted.Status)
	assert.Equal(t, uint(7), submitted.SubmittedBy)

	approved, err := svc.Approve(ctx, report.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusApproved, approved.Status)
	assert.Equal(t, uint(9), approved.ApprovedBy)
}

func TestReportServiceApproveFromDraft(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	report, err := svc.Create(ctx, reportInput("January report"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, report.ID, 9)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestReportServiceRejectAndResubmit(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	report, err := svc.Create(ctx, reportInput("January report"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, report.ID, 7)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, report.ID, 9, "")
	assert.ErrorIs(t, err, domain.ErrRejectionReason)

	rejected, err := svc.Reject(ctx, report.ID, 9, "numbers do not add up")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusRejected, rejected.Status)

	// Rejected reports can be fixed and submitted again
	title := "January report, revised"
	_, err = svc.Update(ctx, report.ID, &UpdateReportInput{Title: &title})
	require.NoError(t, err)

	resubmitted, err := svc.Submit(ctx, report.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusSubmitted, resubmitted.Status)
	assert.Empty(t, resubmitted.RejectionReason)
}

func TestReportServiceUpdateGates(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	report, err := svc.Create(ctx, reportInput("January report"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, report.ID, 7)
	require.NoError(t, err)

	title := "Changed after submission"
	_, err = svc.Update(ctx, report.ID, &UpdateReportInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrReportNotEditable)

	err = svc.Delete(ctx, report.ID)
	assert.ErrorIs(t, err, domain.ErrReportNotDeletable)
}

func TestReportServiceDeleteDraft(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	report, err := svc.Create(ctx, reportInput("January report"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, report.ID))

	_, err = svc.GetByID(ctx, report.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportServiceNotFound(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = svc.Submit(ctx, 999, 7)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportServiceStatistics(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	t.Run("empty set has zero approval rate", func(t *testing.T) {
		stats, err := svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Total)
		assert.Equal(t, 0.0, stats.ApprovalRate)
	})

	// One approved, one rejected, one still in draft
	for i, title := range []string{"A", "B", "C"} {
		report, err := svc.Create(ctx, reportInput(title))
		require.NoError(t, err)
		if i == 2 {
			continue
		}
		_, err = svc.Submit(ctx, report.ID, 7)
		require.NoError(t, err)
		if i == 0 {
			_, err = svc.Approve(ctx, report.ID, 9)
		} else {
			_, err = svc.Reject(ctx, report.ID, 9, "incomplete")
		}
		require.NoError(t, err)
	}

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Draft)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(1), stats.Rejected)
	// Rate counts only decided reports
	assert.InDelta(t, 0.5, stats.ApprovalRate, 1e-9)
}

func TestReportServiceListFilters(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	annual := reportInput("Annual summary")
	annual.ReportType = domain.ReportTypeAnnual
	_, err := svc.Create(ctx, annual)
	require.NoError(t, err)
	_, err = svc.Create(ctx, reportInput("Monthly update"))
	require.NoError(t, err)

	annualType := domain.ReportTypeAnnual
	out, err := svc.List(ctx, &ListReportsInput{ReportType: &annualType})
	require.NoError(t, err)
	require.Len(t, out.Reports, 1)
	assert.Equal(t, "Annual summary", out.Reports[0].Title)

	out, err = svc.List(ctx, &ListReportsInput{Search: "monthly"})
	require.NoError(t, err)
	require.Len(t, out.Reports, 1)
	assert.Equal(t, "Monthly update", out.Reports[0].Title)
}
