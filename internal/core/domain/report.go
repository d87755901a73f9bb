package domain

import "time"

// ReportType represents the reporting cadence
type ReportType string

const (
	ReportTypeMonthly   ReportType = "MONTHLY"
	ReportTypeQuarterly ReportType = "QUARTERLY"
	ReportTypeAnnual    ReportType = "ANNUAL"
	ReportTypeSpecial   ReportType = "SPECIAL"
)

// ValidReportType reports whether t is a known reporting cadence.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeMonthly, ReportTypeQuarterly, ReportTypeAnnual, ReportTypeSpecial:
		return true
	}
	return false
}

// ReportStatus represents the approval workflow state
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusSubmitted ReportStatus = "SUBMITTED"
	ReportStatusApproved  ReportStatus = "APPROVED"
	ReportStatusRejected  ReportStatus = "REJECTED"
)

// Report represents an organizational report moving through the
// Draft -> Submitted -> {Approved, Rejected} approval workflow.
type Report struct {
	ID              uint
	Title           string
	ReportType      ReportType
	Period          string // free-text period label, e.g. "2024-01"
	Content         string
	Attachments     string // serialized list of file references
	Status          ReportStatus
	SubmittedBy     uint
	SubmittedAt     *time.Time
	ApprovedBy      uint
	ApprovedAt      *time.Time
	RejectionReason string
	CreatedBy       uint
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Submit moves the report to Submitted, recording the submitter. A
// rejected report may be submitted again; that is the re-submission path.
func (r *Report) Submit(submittedBy uint) error {
	if r.Status != ReportStatusDraft && r.Status != ReportStatusRejected {
		return transitionError("report", string(r.Status), string(ReportStatusSubmitted))
	}
	now := time.Now()
	r.Status = ReportStatusSubmitted
	r.SubmittedBy = submittedBy
	r.SubmittedAt = &now
	r.RejectionReason = ""
	r.UpdatedAt = now
	return nil
}

// Approve moves a submitted report to Approved, recording the approver.
func (r *Report) Approve(approvedBy uint) error {
	if r.Status != ReportStatusSubmitted {
		return transitionError("report", string(r.Status), string(ReportStatusApproved))
	}
	now := time.Now()
	r.Status = ReportStatusApproved
	r.ApprovedBy = approvedBy
	r.ApprovedAt = &now
	r.UpdatedAt = now
	return nil
}

// Reject moves a submitted report to Rejected. A reason is mandatory.
func (r *Report) Reject(rejectedBy uint, reason string) error {
	if r.Status != ReportStatusSubmitted {
		return transitionError("report", string(r.Status), string(ReportStatusRejected))
	}
	if reason == "" {
		return ErrRejectionReason
	}
	now := time.Now()
	r.Status = ReportStatusRejected
	r.ApprovedBy = rejectedBy
	r.ApprovedAt = &now
	r.RejectionReason = reason
	r.UpdatedAt = now
	return nil
}

// IsEditable reports whether field updates are allowed. Rejected reports
// stay editable so they can be fixed and re-submitted.
func (r *Report) IsEditable() bool {
	return r.Status == ReportStatusDraft || r.Status == ReportStatusRejected
}

// IsDeletable reports whether the report may be deleted.
func (r *Report) IsDeletable() bool {
	return r.Status == ReportStatusDraft || r.Status == ReportStatusRejected
}
