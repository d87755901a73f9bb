package services

import (
	"context"
	"errors"
	"log"
	"time"

	"assochub/internal/adapters/persistence/repositories"
	"assochub/internal/core/domain"
)

// Member service errors
var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberCodeTaken     = errors.New("member code already in use")
	ErrInvalidMemberStatus = errors.New("invalid member status")
)

// MemberService handles member business logic
type MemberService struct {
	memberRepo repositories.MemberRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
	}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	MemberCode  string              `json:"member_code" validate:"required"`
	FullName    string              `json:"full_name" validate:"required"`
	DateOfBirth *time.Time          `json:"date_of_birth,omitempty"`
	Gender      string              `json:"gender,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Email       string              `json:"email,omitempty"`
	Address     string              `json:"address,omitempty"`
	Position    string              `json:"position,omitempty"`
	Department  string              `json:"department,omitempty"`
	MemberType  domain.MemberType   `json:"member_type,omitempty"`
	Status      domain.MemberStatus `json:"status,omitempty"`
	JoinDate    *time.Time          `json:"join_date,omitempty"`
	Notes       string              `json:"notes,omitempty"`
}

// Create creates a new member. The member code must be unique.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*domain.Member, error) {
	member := &domain.Member{
		MemberCode:  input.MemberCode,
		FullName:    input.FullName,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		Position:    input.Position,
		Department:  input.Department,
		MemberType:  input.MemberType,
		Status:      input.Status,
		Notes:       input.Notes,
	}

	// Defaults
	if member.MemberType == "" {
		member.MemberType = domain.MemberTypeUnion
	}
	if member.Status == "" {
		member.Status = domain.MemberStatusActive
	}
	if input.JoinDate != nil {
		member.JoinDate = *input.JoinDate
	} else {
		member.JoinDate = time.Now()
	}

	if errs := member.Validate(); len(errs) > 0 {
		return nil, errs
	}

	// Uniqueness check via repository
	existing, err := s.memberRepo.GetByMemberCode(ctx, member.MemberCode)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberCodeTaken
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		// Unique index catches the race the pre-check cannot
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrMemberCodeTaken
		}
		return nil, err
	}

	log.Printf("✅ Member created: %s (%s)", member.MemberCode, member.FullName)
	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uint) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetByCode gets a member by member code
func (s *MemberService) GetByCode(ctx context.Context, code string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByMemberCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// UpdateMemberInput represents the allow-listed patch for a member. Nil
// fields are left untouched.
type UpdateMemberInput struct {
	MemberCode  *string              `json:"member_code,omitempty"`
	FullName    *string              `json:"full_name,omitempty"`
	DateOfBirth *time.Time           `json:"date_of_birth,omitempty"`
	Gender      *string              `json:"gender,omitempty"`
	Phone       *string              `json:"phone,omitempty"`
	Email       *string              `json:"email,omitempty"`
	Address     *string              `json:"address,omitempty"`
	Position    *string              `json:"position,omitempty"`
	Department  *string              `json:"department,omitempty"`
	MemberType  *domain.MemberType   `json:"member_type,omitempty"`
	Status      *domain.MemberStatus `json:"status,omitempty"`
	JoinDate    *time.Time           `json:"join_date,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
}

// Update applies a patch to a member. Changing the member code fails when
// the new code belongs to a different member.
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if input.MemberCode != nil && *input.MemberCode != member.MemberCode {
		other, err := s.memberRepo.GetByMemberCode(ctx, *input.MemberCode)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrMemberCodeTaken
		}
		member.MemberCode = *input.MemberCode
	}
	if input.FullName != nil {
		member.FullName = *input.FullName
	}
	if input.DateOfBirth != nil {
		member.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		member.Gender = *input.Gender
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.Position != nil {
		member.Position = *input.Position
	}
	if input.Department != nil {
		member.Department = *input.Department
	}
	if input.MemberType != nil {
		member.MemberType = *input.MemberType
	}
	if input.Status != nil {
		member.Status = *input.Status
	}
	if input.JoinDate != nil {
		member.JoinDate = *input.JoinDate
	}
	if input.Notes != nil {
		member.Notes = *input.Notes
	}

	if errs := member.Validate(); len(errs) > 0 {
		return nil, errs
	}

	member.UpdatedAt = time.Now()
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	log.Printf("✅ Member %d deleted", id)
	return nil
}

// Deactivate sets the member inactive, keeping the reason in notes
func (s *MemberService) Deactivate(ctx context.Context, id uint, reason string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.Deactivate(reason)
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	log.Printf("✅ Member %s deactivated", member.MemberCode)
	return member, nil
}

// Activate sets the member active again
func (s *MemberService) Activate(ctx context.Context, id uint) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.Activate()
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	log.Printf("✅ Member %s activated", member.MemberCode)
	return member, nil
}

// ListMembersInput represents list/filter input
type ListMembersInput struct {
	Page       int
	Limit      int
	MemberType *domain.MemberType
	Status     *domain.MemberStatus
	Search     string
}

// ListMembersOutput represents list output
type ListMembersOutput struct {
	Members    []*domain.Member `json:"members"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List lists members with optional filtering and search
func (s *MemberService) List(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	var members []*domain.Member
	var total int64
	var err error

	switch {
	case input.Search != "":
		members, err = s.memberRepo.SearchByName(ctx, input.Search, input.Limit)
		total = int64(len(members))
	case input.MemberType != nil:
		members, err = s.memberRepo.GetByType(ctx, *input.MemberType)
		total = int64(len(members))
	case input.Status != nil:
		members, err = s.memberRepo.GetByStatus(ctx, *input.Status)
		total = int64(len(members))
	default:
		offset := (input.Page - 1) * input.Limit
		members, total, err = s.memberRepo.List(ctx, offset, input.Limit)
	}
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListMembersOutput{
		Members:    members,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// BulkUpdateStatusOutput reports best-effort batch results
type BulkUpdateStatusOutput struct {
	Updated   int    `json:"updated"`
	FailedIDs []uint `json:"failed_ids,omitempty"`
}

// BulkUpdateStatus applies a status to each id in turn. A failure on one
// id never aborts the batch; it is skipped and reported.
func (s *MemberService) BulkUpdateStatus(ctx context.Context, ids []uint, status domain.MemberStatus) (*BulkUpdateStatusOutput, error) {
	if !domain.ValidMemberStatus(status) {
		return nil, ErrInvalidMemberStatus
	}

	out := &BulkUpdateStatusOutput{}
	for _, id := range ids {
		if err := s.memberRepo.UpdateStatus(ctx, id, status); err != nil {
			log.Printf("⚠️ Bulk status update skipped member %d: %v", id, err)
			out.FailedIDs = append(out.FailedIDs, id)
			continue
		}
		out.Updated++
	}

	log.Printf("✅ Bulk status update: %d/%d members -> %s", out.Updated, len(ids), status)
	return out, nil
}

// MemberStatistics represents aggregate member counts
type MemberStatistics struct {
	Total    int64                       `json:"total"`
	ByType   map[domain.MemberType]int64 `json:"by_type"`
	Active   int64                       `json:"active"`
	Inactive int64                       `json:"inactive"`
}

// Statistics aggregates member counts via repository queries so cost does
// not grow with the dataset held by the caller.
func (s *MemberService) Statistics(ctx context.Context) (*MemberStatistics, error) {
	total, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.memberRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.memberRepo.CountByStatus(ctx, domain.MemberStatusActive)
	if err != nil {
		return nil, err
	}
	inactive, err := s.memberRepo.CountByStatus(ctx, domain.MemberStatusInactive)
	if err != nil {
		return nil, err
	}

	return &MemberStatistics{
		Total:    total,
		ByType:   byType,
		Active:   active,
		Inactive: inactive,
	}, nil
}
