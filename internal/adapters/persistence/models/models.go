package models

import (
	"time"

	"assochub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Role      string         `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row to a domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FullName:  u.FullName,
		Role:      domain.Role(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserFromDomain maps a domain user onto a row
func UserFromDomain(d *domain.User) *User {
	return &User{
		ID:        d.ID,
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		FullName:  d.FullName,
		Role:      string(d.Role),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Association Tables
// ============================================================

// Member represents members table
type Member struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	MemberCode  string         `gorm:"uniqueIndex;size:20;not null" json:"member_code"`
	FullName    string         `gorm:"size:100;not null" json:"full_name"`
	DateOfBirth *time.Time     `gorm:"type:date" json:"date_of_birth"`
	Gender      string         `gorm:"size:10" json:"gender"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Email       string         `gorm:"size:100" json:"email"`
	Address     string         `gorm:"size:255" json:"address"`
	Position    string         `gorm:"size:100" json:"position"`
	Department  string         `gorm:"size:100" json:"department"`
	MemberType  string         `gorm:"size:20;not null;default:'UNION';index" json:"member_type"`
	Status      string         `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	JoinDate    time.Time      `gorm:"type:date" json:"join_date"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// ToDomain converts the row to a domain member
func (m *Member) ToDomain() *domain.Member {
	return &domain.Member{
		ID:          m.ID,
		MemberCode:  m.MemberCode,
		FullName:    m.FullName,
		DateOfBirth: m.DateOfBirth,
		Gender:      m.Gender,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		Position:    m.Position,
		Department:  m.Department,
		MemberType:  domain.MemberType(m.MemberType),
		Status:      domain.MemberStatus(m.Status),
		JoinDate:    m.JoinDate,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MemberFromDomain maps a domain member onto a row
func MemberFromDomain(d *domain.Member) *Member {
	return &Member{
		ID:          d.ID,
		MemberCode:  d.MemberCode,
		FullName:    d.FullName,
		DateOfBirth: d.DateOfBirth,
		Gender:      d.Gender,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		Position:    d.Position,
		Department:  d.Department,
		MemberType:  string(d.MemberType),
		Status:      string(d.Status),
		JoinDate:    d.JoinDate,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Report represents reports table
type Report struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	ReportType      string         `gorm:"size:20;not null;index" json:"report_type"`
	Period          string         `gorm:"size:50;index" json:"period"`
	Content         string         `gorm:"type:text" json:"content"`
	Attachments     string         `gorm:"type:text" json:"attachments"`
	Status          string         `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	SubmittedBy     uint           `gorm:"index" json:"submitted_by"`
	SubmittedAt     *time.Time     `json:"submitted_at"`
	ApprovedBy      uint           `json:"approved_by"`
	ApprovedAt      *time.Time     `json:"approved_at"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason"`
	CreatedBy       uint           `gorm:"index" json:"created_by"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}

// ToDomain converts the row to a domain report
func (r *Report) ToDomain() *domain.Report {
	return &domain.Report{
		ID:              r.ID,
		Title:           r.Title,
		ReportType:      domain.ReportType(r.ReportType),
		Period:          r.Period,
		Content:         r.Content,
		Attachments:     r.Attachments,
		Status:          domain.ReportStatus(r.Status),
		SubmittedBy:     r.SubmittedBy,
		SubmittedAt:     r.SubmittedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ReportFromDomain maps a domain report onto a row
func ReportFromDomain(d *domain.Report) *Report {
	return &Report{
		ID:              d.ID,
		Title:           d.Title,
		ReportType:      string(d.ReportType),
		Period:          d.Period,
		Content:         d.Content,
		Attachments:     d.Attachments,
		Status:          string(d.Status),
		SubmittedBy:     d.SubmittedBy,
		SubmittedAt:     d.SubmittedAt,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectionReason: d.RejectionReason,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// Task represents tasks table
type Task struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Title              string         `gorm:"size:200;not null" json:"title"`
	Description        string         `gorm:"type:text" json:"description"`
	Priority           string         `gorm:"size:20;not null;default:'MEDIUM';index" json:"priority"`
	Status             string         `gorm:"size:20;not null;default:'NOT_STARTED';index" json:"status"`
	AssignedTo         uint           `gorm:"index" json:"assigned_to"`
	AssignedBy         uint           `gorm:"index" json:"assigned_by"`
	StartDate          *time.Time     `json:"start_date"`
	DueDate            *time.Time     `gorm:"index" json:"due_date"`
	CompletedDate      *time.Time     `json:"completed_date"`
	EstimatedHours     float64        `gorm:"type:decimal(7,2);default:0" json:"estimated_hours"`
	ActualHours        float64        `gorm:"type:decimal(7,2);default:0" json:"actual_hours"`
	ProgressPercentage int            `gorm:"default:0" json:"progress_percentage"`
	Notes              string         `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// ToDomain converts the row to a domain task
func (t *Task) ToDomain() *domain.Task {
	return &domain.Task{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Priority:           domain.TaskPriority(t.Priority),
		Status:             domain.TaskStatus(t.Status),
		AssignedTo:         t.AssignedTo,
		AssignedBy:         t.AssignedBy,
		StartDate:          t.StartDate,
		DueDate:            t.DueDate,
		CompletedDate:      t.CompletedDate,
		EstimatedHours:     t.EstimatedHours,
		ActualHours:        t.ActualHours,
		ProgressPercentage: t.ProgressPercentage,
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// TaskFromDomain maps a domain task onto a row
func TaskFromDomain(d *domain.Task) *Task {
	return &Task{
		ID:                 d.ID,
		Title:              d.Title,
		Description:        d.Description,
		Priority:           string(d.Priority),
		Status:             string(d.Status),
		AssignedTo:         d.AssignedTo,
		AssignedBy:         d.AssignedBy,
		StartDate:          d.StartDate,
		DueDate:            d.DueDate,
		CompletedDate:      d.CompletedDate,
		EstimatedHours:     d.EstimatedHours,
		ActualHours:        d.ActualHours,
		ProgressPercentage: d.ProgressPercentage,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Member{},
		&Report{},
		&Task{},
	)
}
