package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMember() *Member {
	return &Member{
		MemberCode: "M-001",
		FullName:   "Jordan Lee",
		Email:      "jordan@example.com",
		Phone:      "081-234-5678",
		MemberType: MemberTypeUnion,
		Status:     MemberStatusActive,
		JoinDate:   time.Now(),
	}
}

func TestMemberValidate(t *testing.T) {
	past := time.Now().AddDate(-30, 0, 0)
	future := time.Now().AddDate(1, 0, 0)

	tests := []struct {
		name       string
		mutate     func(*Member)
		wantFields []string
	}{
		{
			name:   "valid member",
			mutate: func(m *Member) {},
		},
		{
			name:       "missing member code",
			mutate:     func(m *Member) { m.MemberCode = "  " },
			wantFields: []string{"member_code"},
		},
		{
			name:       "missing full name",
			mutate:     func(m *Member) { m.FullName = "" },
			wantFields: []string{"full_name"},
		},
		{
			name:       "email without at sign",
			mutate:     func(m *Member) { m.Email = "not-an-email" },
			wantFields: []string{"email"},
		},
		{
			name:   "empty email is allowed",
			mutate: func(m *Member) { m.Email = "" },
		},
		{
			name:       "phone with letters",
			mutate:     func(m *Member) { m.Phone = "08x1234567" },
			wantFields: []string{"phone"},
		},
		{
			name:   "phone with separators only",
			mutate: func(m *Member) { m.Phone = "+66 (0) 81-234-5678" },
		},
		{
			name:   "date of birth in the past",
			mutate: func(m *Member) { m.DateOfBirth = &past },
		},
		{
			name:       "date of birth in the future",
			mutate:     func(m *Member) { m.DateOfBirth = &future },
			wantFields: []string{"date_of_birth"},
		},
		{
			name:       "unknown member type",
			mutate:     func(m *Member) { m.MemberType = "ALIEN" },
			wantFields: []string{"member_type"},
		},
		{
			name:       "unknown status",
			mutate:     func(m *Member) { m.Status = "RETIRED" },
			wantFields: []string{"status"},
		},
		{
			name: "all violations reported at once",
			mutate: func(m *Member) {
				m.MemberCode = ""
				m.FullName = ""
				m.Email = "bad"
			},
			wantFields: []string{"member_code", "full_name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMember()
			tt.mutate(m)

			errs := m.Validate()
			require.Len(t, errs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, errs[i].Field)
			}
			assert.Equal(t, len(tt.wantFields) == 0, m.IsValid())
		})
	}
}

func TestMemberDeactivateActivate(t *testing.T) {
	m := validMember()

	m.Deactivate("left the organization")
	assert.Equal(t, MemberStatusInactive, m.Status)
	assert.False(t, m.IsActive())
	assert.Contains(t, m.Notes, "Deactivated: left the organization")

	m.Activate()
	assert.Equal(t, MemberStatusActive, m.Status)
	assert.True(t, m.IsActive())
	assert.Contains(t, m.Notes, "Activated")

	// Audit lines accumulate, never overwrite
	assert.Contains(t, m.Notes, "Deactivated")
}

func TestMemberDeactivateWithoutReason(t *testing.T) {
	m := validMember()
	m.Deactivate("")

	assert.Equal(t, MemberStatusInactive, m.Status)
	assert.Contains(t, m.Notes, "Deactivated")
	assert.NotContains(t, m.Notes, "Deactivated:")
}

func TestValidMemberStatus(t *testing.T) {
	assert.True(t, ValidMemberStatus(MemberStatusActive))
	assert.True(t, ValidMemberStatus(MemberStatusInactive))
	assert.True(t, ValidMemberStatus(MemberStatusSuspended))
	assert.False(t, ValidMemberStatus("RETIRED"))
	assert.False(t, ValidMemberStatus(""))
}

func TestValidMemberType(t *testing.T) {
	assert.True(t, ValidMemberType(MemberTypeUnion))
	assert.True(t, ValidMemberType(MemberTypeAssociation))
	assert.True(t, ValidMemberType(MemberTypeExecutive))
	assert.False(t, ValidMemberType("ALIEN"))
	assert.False(t, ValidMemberType(""))
}
