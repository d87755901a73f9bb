package export

import (
	"context"
	"testing"
	"time"

	"assochub/internal/adapters/persistence/repositories"
	"assochub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMemberRepo embeds the interface; only List is needed by the exporter.
type stubMemberRepo struct {
	repositories.MemberRepository
	members []*domain.Member
}

func (s *stubMemberRepo) List(_ context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	total := int64(len(s.members))
	if offset >= len(s.members) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(s.members) {
		end = len(s.members)
	}
	return s.members[offset:end], total, nil
}

type stubTaskRepo struct {
	repositories.TaskRepository
	tasks []*domain.Task
}

func (s *stubTaskRepo) List(_ context.Context, offset, limit int) ([]*domain.Task, int64, error) {
	total := int64(len(s.tasks))
	if offset >= len(s.tasks) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(s.tasks) {
		end = len(s.tasks)
	}
	return s.tasks[offset:end], total, nil
}

func TestMembersExport(t *testing.T) {
	repo := &stubMemberRepo{members: []*domain.Member{
		{
			ID:         1,
			MemberCode: "MEM-001",
			FullName:   "Alice Anderson",
			Email:      "alice@assochub.local",
			MemberType: domain.MemberTypeUnion,
			Status:     domain.MemberStatusActive,
			JoinDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         2,
			MemberCode: "MEM-002",
			FullName:   "Bob Brown",
			MemberType: domain.MemberTypeAssociation,
			Status:     domain.MemberStatusInactive,
			JoinDate:   time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}}
	exporter := NewExcelExporter(repo, nil, nil)

	f, err := exporter.Members(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 members

	assert.Equal(t, "Member Code", rows[0][1])
	assert.Equal(t, "MEM-001", rows[1][1])
	assert.Equal(t, "Alice Anderson", rows[1][2])
	assert.Equal(t, "2024-03-15", rows[1][10])
	assert.Equal(t, "INACTIVE", rows[2][9])
}

func TestTasksExportShowsDerivedOverdue(t *testing.T) {
	pastDue := time.Now().Add(-24 * time.Hour)
	futureDue := time.Now().Add(24 * time.Hour)
	repo := &stubTaskRepo{tasks: []*domain.Task{
		{
			ID:       1,
			Title:    "Late work",
			Priority: domain.TaskPriorityHigh,
			Status:   domain.TaskStatusInProgress,
			DueDate:  &pastDue,
		},
		{
			ID:       2,
			Title:    "On-time work",
			Priority: domain.TaskPriorityLow,
			Status:   domain.TaskStatusInProgress,
			DueDate:  &futureDue,
		},
	}}
	exporter := NewExcelExporter(nil, nil, repo)

	f, err := exporter.Tasks(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Tasks")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Past-due tasks render the derived status regardless of what is stored
	assert.Equal(t, "OVERDUE", rows[1][3])
	assert.Equal(t, "IN_PROGRESS", rows[2][3])
}

func TestMembersExportEmpty(t *testing.T) {
	exporter := NewExcelExporter(&stubMemberRepo{}, nil, nil)

	f, err := exporter.Members(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
