package domain

import (
	"fmt"
	"strings"
	"time"
)

// MemberType classifies a member within the association
type MemberType string

const (
	MemberTypeUnion       MemberType = "UNION"
	MemberTypeAssociation MemberType = "ASSOCIATION"
	MemberTypeExecutive   MemberType = "EXECUTIVE"
)

// MemberStatus represents member lifecycle status
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusInactive  MemberStatus = "INACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
)

// ValidMemberStatus reports whether s is a known member status.
func ValidMemberStatus(s MemberStatus) bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusSuspended:
		return true
	}
	return false
}

// ValidMemberType reports whether t is a known member type.
func ValidMemberType(t MemberType) bool {
	switch t {
	case MemberTypeUnion, MemberTypeAssociation, MemberTypeExecutive:
		return true
	}
	return false
}

// Member represents an association member in the domain layer
type Member struct {
	ID          uint
	MemberCode  string // unique, human-assigned
	FullName    string
	DateOfBirth *time.Time
	Gender      string
	Phone       string
	Email       string
	Address     string
	Position    string
	Department  string
	MemberType  MemberType
	Status      MemberStatus
	JoinDate    time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// phoneSeparators are stripped before the digits-only check.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")

// Validate checks every field-level rule and returns the full list of
// violations, never just the first one.
func (m *Member) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(m.MemberCode) == "" {
		errs = append(errs, FieldError{Field: "member_code", Message: "member code is required"})
	}
	if strings.TrimSpace(m.FullName) == "" {
		errs = append(errs, FieldError{Field: "full_name", Message: "full name is required"})
	}
	if m.Email != "" && !strings.Contains(m.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email format"})
	}
	if m.Phone != "" {
		digits := phoneSeparators.Replace(m.Phone)
		for _, r := range digits {
			if r < '0' || r > '9' {
				errs = append(errs, FieldError{Field: "phone", Message: "phone must contain digits only"})
				break
			}
		}
	}
	if m.DateOfBirth != nil && m.DateOfBirth.After(time.Now()) {
		errs = append(errs, FieldError{Field: "date_of_birth", Message: "date of birth cannot be in the future"})
	}
	if !ValidMemberType(m.MemberType) {
		errs = append(errs, FieldError{Field: "member_type", Message: "unknown member type"})
	}
	if !ValidMemberStatus(m.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "unknown member status"})
	}

	return errs
}

// IsValid reports whether the member passes all validation rules.
func (m *Member) IsValid() bool {
	return len(m.Validate()) == 0
}

// Deactivate sets the member inactive and records the reason as an audit
// line in notes.
func (m *Member) Deactivate(reason string) {
	now := time.Now()
	m.Status = MemberStatusInactive
	if reason != "" {
		m.appendNote(fmt.Sprintf("[%s] Deactivated: %s", now.Format("2006-01-02 15:04"), reason))
	} else {
		m.appendNote(fmt.Sprintf("[%s] Deactivated", now.Format("2006-01-02 15:04")))
	}
	m.UpdatedAt = now
}

// Activate sets the member active and records an audit line in notes.
func (m *Member) Activate() {
	now := time.Now()
	m.Status = MemberStatusActive
	m.appendNote(fmt.Sprintf("[%s] Activated", now.Format("2006-01-02 15:04")))
	m.UpdatedAt = now
}

// appendNote grows the notes field. This is an intentional audit trail.
func (m *Member) appendNote(line string) {
	if m.Notes == "" {
		m.Notes = line
		return
	}
	m.Notes = m.Notes + "\n" + line
}

// IsActive reports whether the member is currently active.
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}
