package domain

import (
	"fmt"
	"time"
)

// TaskPriority represents task urgency
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

// ValidTaskPriority reports whether p is a known priority.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TaskStatus represents task execution state
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
	TaskStatusOnHold     TaskStatus = "ON_HOLD"
	TaskStatusOverdue    TaskStatus = "OVERDUE"
)

// Task represents a unit of work assigned between users.
type Task struct {
	ID                 uint
	Title              string
	Description        string
	Priority           TaskPriority
	Status             TaskStatus
	AssignedTo         uint
	AssignedBy         uint
	StartDate          *time.Time
	DueDate            *time.Time
	CompletedDate      *time.Time
	EstimatedHours     float64
	ActualHours        float64
	ProgressPercentage int // always in [0,100]
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsTerminal reports whether the task reached a state that permits no
// further status or progress mutation.
func (t *Task) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled
}

// IsOverdue is the derived overdue property: past due and not terminal.
// The stored OVERDUE status is a display convenience; this is the authority.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.IsTerminal() {
		return false
	}
	return t.DueDate.Before(time.Now())
}

// Start moves the task from NotStarted to InProgress, stamping the start
// date if it was never set.
func (t *Task) Start() error {
	if t.Status != TaskStatusNotStarted {
		return transitionError("task", string(t.Status), string(TaskStatusInProgress))
	}
	now := time.Now()
	t.Status = TaskStatusInProgress
	if t.StartDate == nil {
		t.StartDate = &now
	}
	t.UpdatedAt = now
	return nil
}

// Complete finishes the task from any non-terminal status, forcing
// progress to 100. actualHours overwrites the recorded hours when given.
func (t *Task) Complete(actualHours *float64) error {
	if t.Status == TaskStatusCompleted {
		return ErrTaskCompleted
	}
	if t.Status == TaskStatusCancelled {
		return transitionError("task", string(t.Status), string(TaskStatusCompleted))
	}
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.ProgressPercentage = 100
	t.CompletedDate = &now
	if actualHours != nil {
		t.ActualHours = *actualHours
	}
	t.UpdatedAt = now
	return nil
}

// Cancel cancels the task from any non-terminal status and appends the
// reason to notes.
func (t *Task) Cancel(reason string) error {
	if t.Status == TaskStatusCompleted {
		return ErrTaskCompleted
	}
	if t.Status == TaskStatusCancelled {
		return ErrTaskCancelled
	}
	now := time.Now()
	t.Status = TaskStatusCancelled
	if reason != "" {
		line := fmt.Sprintf("[%s] Cancelled: %s", now.Format("2006-01-02 15:04"), reason)
		if t.Notes == "" {
			t.Notes = line
		} else {
			t.Notes = t.Notes + "\n" + line
		}
	}
	t.UpdatedAt = now
	return nil
}

// Hold pauses an in-flight task. Completed and cancelled tasks cannot be
// paused, and neither can one that never started.
func (t *Task) Hold() error {
	if t.Status != TaskStatusInProgress && t.Status != TaskStatusOverdue {
		return transitionError("task", string(t.Status), string(TaskStatusOnHold))
	}
	t.Status = TaskStatusOnHold
	t.UpdatedAt = time.Now()
	return nil
}

// Resume returns a held task to InProgress.
func (t *Task) Resume() error {
	if t.Status != TaskStatusOnHold {
		return transitionError("task", string(t.Status), string(TaskStatusInProgress))
	}
	t.Status = TaskStatusInProgress
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateProgress sets the progress percentage. Progress is the source of
// truth and status follows it: 100 completes the task, the first nonzero
// value starts a not-started task.
func (t *Task) UpdateProgress(pct int) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: got %d", ErrProgressRange, pct)
	}
	if t.Status == TaskStatusCompleted {
		return ErrTaskCompleted
	}
	if t.Status == TaskStatusCancelled {
		return ErrTaskCancelled
	}

	if pct == 100 {
		return t.Complete(nil)
	}
	if pct > 0 && t.Status == TaskStatusNotStarted {
		if err := t.Start(); err != nil {
			return err
		}
	}
	t.ProgressPercentage = pct
	t.UpdatedAt = time.Now()
	return nil
}

// Reassign overwrites the assignment pair. Terminal tasks cannot be
// reassigned.
func (t *Task) Reassign(assignee, assigner uint) error {
	if t.Status == TaskStatusCompleted {
		return ErrTaskCompleted
	}
	if t.Status == TaskStatusCancelled {
		return ErrTaskCancelled
	}
	t.AssignedTo = assignee
	t.AssignedBy = assigner
	t.UpdatedAt = time.Now()
	return nil
}

// MarkOverdue flips a past-due, non-terminal task to the stored OVERDUE
// status. Used by the scheduled sweep; no-op when not actually overdue.
func (t *Task) MarkOverdue() bool {
	if !t.IsOverdue() {
		return false
	}
	if t.Status == TaskStatusNotStarted || t.Status == TaskStatusInProgress {
		t.Status = TaskStatusOverdue
		t.UpdatedAt = time.Now()
		return true
	}
	return false
}
