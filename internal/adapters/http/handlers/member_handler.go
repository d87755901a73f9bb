package handlers

import (
	"errors"
	"strconv"

	"assochub/internal/adapters/persistence/models"
	"assochub/internal/core/domain"
	"assochub/internal/core/services"
	"assochub/internal/pkg/pagination"
	"assochub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create handles member creation
// @Summary Create member
// @Description Register a new association member
// @Tags Members
// @Accept json
// @Produce json
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Created(c, "Member created successfully", models.MemberFromDomain(member))
}

// Get handles member retrieval by ID
// @Summary Get member
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Member retrieved successfully", models.MemberFromDomain(member))
}

// GetByCode handles member retrieval by member code
// @Summary Get member by code
// @Tags Members
// @Produce json
// @Param code path string true "Member code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /members/code/{code} [get]
func (h *MemberHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return response.BadRequest(c, "Member code is required")
	}

	member, err := h.memberService.GetByCode(c.Context(), code)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Member retrieved successfully", models.MemberFromDomain(member))
}

// List handles member listing with filters
// @Summary List members
// @Description List members with pagination, filtering and search
// @Tags Members
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param member_type query string false "Filter by member type"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListMembersInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Search: pagination.GetSearch(c),
	}
	if v := c.Query("member_type"); v != "" {
		t := domain.MemberType(v)
		input.MemberType = &t
	}
	if v := c.Query("status"); v != "" {
		s := domain.MemberStatus(v)
		input.Status = &s
	}

	result, err := h.memberService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	rows := make([]*models.Member, 0, len(result.Members))
	for _, m := range result.Members {
		rows = append(rows, models.MemberFromDomain(m))
	}

	return response.Success(c, "Members retrieved successfully", pagination.NewResponse(rows, params, result.Total))
}

// Update handles member updates
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), id, &input)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Member updated successfully", models.MemberFromDomain(member))
}

// Delete handles member deletion
// @Summary Delete member
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// DeactivateRequest carries the optional audit reason
type DeactivateRequest struct {
	Reason string `json:"reason"`
}

// Deactivate handles member deactivation
// @Summary Deactivate member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param body body DeactivateRequest false "Reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /members/{id}/deactivate [post]
func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req DeactivateRequest
	_ = c.BodyParser(&req) // Reason is optional

	member, err := h.memberService.Deactivate(c.Context(), id, req.Reason)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Member deactivated successfully", models.MemberFromDomain(member))
}

// Activate handles member re-activation
// @Summary Activate member
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /members/{id}/activate [post]
func (h *MemberHandler) Activate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.Activate(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Member activated successfully", models.MemberFromDomain(member))
}

// BulkStatusRequest represents a bulk status change request
type BulkStatusRequest struct {
	IDs    []uint `json:"ids"`
	Status string `json:"status"`
}

// BulkUpdateStatus handles best-effort bulk status changes
// @Summary Bulk update member status
// @Description Apply a status to each listed member; failures are reported, not fatal
// @Tags Members
// @Accept json
// @Produce json
// @Param body body BulkStatusRequest true "IDs and target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /members/bulk-status [post]
func (h *MemberHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var req BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return response.BadRequest(c, "At least one member ID is required")
	}

	result, err := h.memberService.BulkUpdateStatus(c.Context(), req.IDs, domain.MemberStatus(req.Status))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Bulk status update completed", result)
}

// Statistics handles member statistics
// @Summary Member statistics
// @Tags Members
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /members/statistics [get]
func (h *MemberHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.memberService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

// handleError maps member service errors to HTTP responses
func (h *MemberHandler) handleError(c *fiber.Ctx, err error) error {
	var vErrs domain.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		return response.ValidationFailed(c, "Validation failed", vErrs)
	case errors.Is(err, services.ErrMemberNotFound):
		return response.NotFound(c, "Member not found")
	case errors.Is(err, services.ErrMemberCodeTaken):
		return response.Conflict(c, "Member code already in use")
	case errors.Is(err, services.ErrInvalidMemberStatus):
		return response.BadRequest(c, "Invalid member status")
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}

// parseID parses the :id path parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
