package handlers

import (
	"errors"
	"strconv"
	"time"

	"assochub/internal/adapters/persistence/models"
	"assochub/internal/core/domain"
	"assochub/internal/core/services"
	"assochub/internal/pkg/pagination"
	"assochub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles report creation
// @Summary Create report
// @Description Create a report in draft status
// @Tags Reports
// @Accept json
// @Produce json
// @Param body body services.CreateReportInput true "Report data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var input services.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if userID, ok := c.Locals("userID").(uint); ok {
		input.CreatedBy = userID
	}

	report, err := h.reportService.Create(c.Context(), &input)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Created(c, "Report created successfully", models.ReportFromDomain(report))
}

// Get handles report retrieval
// @Summary Get report
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Report retrieved successfully", models.ReportFromDomain(report))
}

// List handles report listing with filters
// @Summary List reports
// @Tags Reports
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param report_type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Param period query string false "Filter by period"
// @Param submitted_by query int false "Filter by submitter"
// @Param from query string false "Created from (RFC3339)"
// @Param to query string false "Created to (RFC3339)"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListReportsInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Period: c.Query("period"),
		Search: pagination.GetSearch(c),
	}
	if v := c.Query("report_type"); v != "" {
		t := domain.ReportType(v)
		input.ReportType = &t
	}
	if v := c.Query("status"); v != "" {
		s := domain.ReportStatus(v)
		input.Status = &s
	}
	if v := c.Query("submitted_by"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			input.SubmittedBy = &uid
		}
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.To = &t
		}
	}

	result, err := h.reportService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reports")
	}

	rows := make([]*models.Report, 0, len(result.Reports))
	for _, r := range result.Reports {
		rows = append(rows, models.ReportFromDomain(r))
	}

	return response.Success(c, "Reports retrieved successfully", pagination.NewResponse(rows, params, result.Total))
}

// Update handles report updates
// @Summary Update report
// @Description Update a report while it is in draft or rejected status
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param body body services.UpdateReportInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /reports/{id} [put]
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	var input services.UpdateReportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Update(c.Context(), id, &input)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Report updated successfully", models.ReportFromDomain(report))
}

// Delete handles report deletion
// @Summary Delete report
// @Description Delete a report while it is in draft or rejected status
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	if err := h.reportService.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Report deleted successfully", nil)
}

// Submit handles report submission
// @Summary Submit report
// @Description Submit a draft or rejected report for approval
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /reports/{id}/submit [post]
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	report, err := h.reportService.Submit(c.Context(), id, userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Report submitted successfully", models.ReportFromDomain(report))
}

// Approve handles report approval
// @Summary Approve report
// @Description Approve a submitted report (admin only)
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /reports/{id}/approve [post]
func (h *ReportHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	report, err := h.reportService.Approve(c.Context(), id, userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Report approved successfully", models.ReportFromDomain(report))
}

// RejectRequest carries the mandatory rejection reason
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject handles report rejection
// @Summary Reject report
// @Description Reject a submitted report with a reason (admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /reports/{id}/reject [post]
func (h *ReportHandler) Reject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Reject(c.Context(), id, userID, req.Reason)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Report rejected", models.ReportFromDomain(report))
}

// Statistics handles report statistics
// @Summary Report statistics
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /reports/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.reportService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

// handleError maps report service errors to HTTP responses
func (h *ReportHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		return response.NotFound(c, "Report not found")
	case errors.Is(err, domain.ErrRejectionReason):
		return response.BadRequest(c, "Rejection reason is required")
	case errors.Is(err, domain.ErrReportNotEditable):
		return response.Error(c, fiber.StatusUnprocessableEntity, "Report can only be edited in draft or rejected status")
	case errors.Is(err, domain.ErrReportNotDeletable):
		return response.Error(c, fiber.StatusUnprocessableEntity, "Report can only be deleted in draft or rejected status")
	case errors.Is(err, domain.ErrIllegalTransition):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
