package repositories

import (
	"context"
	"time"

	"assochub/internal/core/domain"
)

// MemberRepository defines member storage access. Every implementation
// provides every method; use-cases never probe for optional capabilities.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uint) (*domain.Member, error)
	GetByMemberCode(ctx context.Context, code string) (*domain.Member, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error)
	GetByType(ctx context.Context, memberType domain.MemberType) ([]*domain.Member, error)
	GetByStatus(ctx context.Context, status domain.MemberStatus) ([]*domain.Member, error)
	SearchByName(ctx context.Context, term string, limit int) ([]*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	UpdateStatus(ctx context.Context, id uint, status domain.MemberStatus) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[domain.MemberType]int64, error)
	CountByStatus(ctx context.Context, status domain.MemberStatus) (int64, error)
}

// ReportRepository defines report storage access
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uint) (*domain.Report, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Report, int64, error)
	GetByType(ctx context.Context, reportType domain.ReportType) ([]*domain.Report, error)
	GetByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error)
	GetByPeriod(ctx context.Context, period string) ([]*domain.Report, error)
	GetBySubmitter(ctx context.Context, submittedBy uint) ([]*domain.Report, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Report, error)
	SearchByTitle(ctx context.Context, term string, limit int) ([]*domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.ReportStatus]int64, error)
}

// TaskRepository defines task storage access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uint) (*domain.Task, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Task, int64, error)
	GetByAssignee(ctx context.Context, userID uint) ([]*domain.Task, error)
	GetByAssigner(ctx context.Context, userID uint) ([]*domain.Task, error)
	GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	GetByPriority(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error)
	GetByDueDateRange(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
	GetOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error)
	SearchByTitle(ctx context.Context, term string, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}

// UserRepository defines staff account storage access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token storage access
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
