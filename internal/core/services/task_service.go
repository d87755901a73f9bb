package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"assochub/internal/adapters/persistence/repositories"
	"assochub/internal/core/domain"
)

// Task service errors
var (
	ErrTaskNotFound = errors.New("task not found")
)

// upcomingWindow is how far ahead "upcoming" looks in the overview.
const upcomingWindow = 7 * 24 * time.Hour

// TaskService handles task execution and progress tracking
type TaskService struct {
	taskRepo repositories.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents create task input
type CreateTaskInput struct {
	Title          string              `json:"title" validate:"required"`
	Description    string              `json:"description,omitempty"`
	Priority       domain.TaskPriority `json:"priority,omitempty"`
	AssignedTo     uint                `json:"assigned_to,omitempty"`
	AssignedBy     uint                `json:"assigned_by,omitempty"`
	StartDate      *time.Time          `json:"start_date,omitempty"`
	DueDate        *time.Time          `json:"due_date,omitempty"`
	EstimatedHours float64             `json:"estimated_hours,omitempty"`
	Notes          string              `json:"notes,omitempty"`
}

// Create creates a new task in NotStarted status
func (s *TaskService) Create(ctx context.Context, input *CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.EstimatedHours < 0 {
		return nil, fmt.Errorf("%w: estimated hours cannot be negative", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		Title:          input.Title,
		Description:    input.Description,
		Priority:       input.Priority,
		Status:         domain.TaskStatusNotStarted,
		AssignedTo:     input.AssignedTo,
		AssignedBy:     input.AssignedBy,
		StartDate:      input.StartDate,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		Notes:          input.Notes,
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if !domain.ValidTaskPriority(task.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, task.Priority)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Printf("✅ Task created: #%d %q (priority %s)", task.ID, task.Title, task.Priority)
	return task, nil
}

// GetByID gets a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// UpdateTaskInput represents the allow-listed patch for a task
type UpdateTaskInput struct {
	Title          *string              `json:"title,omitempty"`
	Description    *string              `json:"description,omitempty"`
	Priority       *domain.TaskPriority `json:"priority,omitempty"`
	StartDate      *time.Time           `json:"start_date,omitempty"`
	DueDate        *time.Time           `json:"due_date,omitempty"`
	EstimatedHours *float64             `json:"estimated_hours,omitempty"`
	ActualHours    *float64             `json:"actual_hours,omitempty"`
	Notes          *string              `json:"notes,omitempty"`
}

// Update applies a patch to a non-terminal task
func (s *TaskService) Update(ctx context.Context, id uint, input *UpdateTaskInput) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Status == domain.TaskStatusCompleted {
		return nil, domain.ErrTaskCompleted
	}
	if task.Status == domain.TaskStatusCancelled {
		return nil, domain.ErrTaskCancelled
	}

	if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
		return nil, fmt.Errorf("%w: estimated hours cannot be negative", domain.ErrInvalidInput)
	}
	if input.ActualHours != nil && *input.ActualHours < 0 {
		return nil, fmt.Errorf("%w: actual hours cannot be negative", domain.ErrInvalidInput)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !domain.ValidTaskPriority(*input.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = *input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = *input.ActualHours
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}

	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// Start begins work on a not-started task
func (s *TaskService) Start(ctx context.Context, id uint) (*domain.Task, error) {
	return s.transition(ctx, id, func(t *domain.Task) error {
		return t.Start()
	})
}

// Complete finishes a task, optionally recording actual hours
func (s *TaskService) Complete(ctx context.Context, id uint, actualHours *float64) (*domain.Task, error) {
	task, err := s.transition(ctx, id, func(t *domain.Task) error {
		return t.Complete(actualHours)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Task #%d completed", task.ID)
	return task, nil
}

// Cancel cancels a task, keeping the reason in notes
func (s *TaskService) Cancel(ctx context.Context, id uint, reason string) (*domain.Task, error) {
	task, err := s.transition(ctx, id, func(t *domain.Task) error {
		return t.Cancel(reason)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Task #%d cancelled", task.ID)
	return task, nil
}

// Hold pauses an in-flight task
func (s *TaskService) Hold(ctx context.Context, id uint) (*domain.Task, error) {
	return s.transition(ctx, id, func(t *domain.Task) error {
		return t.Hold()
	})
}

// Resume returns a held task to InProgress
func (s *TaskService) Resume(ctx context.Context, id uint) (*domain.Task, error) {
	return s.transition(ctx, id, func(t *domain.Task) error {
		return t.Resume()
	})
}

// UpdateProgress sets progress; status follows it (start at >0 from
// NotStarted, complete at 100)
func (s *TaskService) UpdateProgress(ctx context.Context, id uint, pct int) (*domain.Task, error) {
	return s.transition(ctx, id, func(t *domain.Task) error {
		return t.UpdateProgress(pct)
	})
}

// Assign overwrites the assignment pair on a non-terminal task
func (s *TaskService) Assign(ctx context.Context, id uint, assignee, assigner uint) (*domain.Task, error) {
	task, err := s.transition(ctx, id, func(t *domain.Task) error {
		return t.Reassign(assignee, assigner)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Task #%d assigned to user %d by user %d", task.ID, assignee, assigner)
	return task, nil
}

// transition fetches a task, applies a status mutation, and persists it
func (s *TaskService) transition(ctx context.Context, id uint, mutate func(*domain.Task) error) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if err := mutate(task); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasksInput represents list/filter input
type ListTasksInput struct {
	Page     int
	Limit    int
	Assignee *uint
	Assigner *uint
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	DueFrom  *time.Time
	DueTo    *time.Time
	Overdue  bool
	Search   string
}

// ListTasksOutput represents list output
type ListTasksOutput struct {
	Tasks      []*domain.Task `json:"tasks"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// List lists tasks with optional filtering and search
func (s *TaskService) List(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	var tasks []*domain.Task
	var total int64
	var err error

	switch {
	case input.Search != "":
		tasks, err = s.taskRepo.SearchByTitle(ctx, input.Search, input.Limit)
		total = int64(len(tasks))
	case input.Overdue:
		tasks, err = s.taskRepo.GetOverdue(ctx, time.Now())
		total = int64(len(tasks))
	case input.Assignee != nil:
		tasks, err = s.taskRepo.GetByAssignee(ctx, *input.Assignee)
		total = int64(len(tasks))
	case input.Assigner != nil:
		tasks, err = s.taskRepo.GetByAssigner(ctx, *input.Assigner)
		total = int64(len(tasks))
	case input.Status != nil:
		tasks, err = s.taskRepo.GetByStatus(ctx, *input.Status)
		total = int64(len(tasks))
	case input.Priority != nil:
		tasks, err = s.taskRepo.GetByPriority(ctx, *input.Priority)
		total = int64(len(tasks))
	case input.DueFrom != nil && input.DueTo != nil:
		tasks, err = s.taskRepo.GetByDueDateRange(ctx, *input.DueFrom, *input.DueTo)
		total = int64(len(tasks))
	default:
		offset := (input.Page - 1) * input.Limit
		tasks, total, err = s.taskRepo.List(ctx, offset, input.Limit)
	}
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListTasksOutput{
		Tasks:      tasks,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// TaskOverview aggregates one user's tasks and the derived subsets the
// dashboard shows
type TaskOverview struct {
	AssignedToMe []*domain.Task `json:"assigned_to_me"`
	AssignedByMe []*domain.Task `json:"assigned_by_me"`
	Overdue      []*domain.Task `json:"overdue"`
	Upcoming     []*domain.Task `json:"upcoming"`
	InProgress   []*domain.Task `json:"in_progress"`
}

// MyOverview is a read-only composition over existing queries; the
// overdue/upcoming/in-progress subsets are derived from assigned-to-me.
func (s *TaskService) MyOverview(ctx context.Context, userID uint) (*TaskOverview, error) {
	assignedTo, err := s.taskRepo.GetByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignedBy, err := s.taskRepo.GetByAssigner(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &TaskOverview{
		AssignedToMe: assignedTo,
		AssignedByMe: assignedBy,
	}

	now := time.Now()
	horizon := now.Add(upcomingWindow)
	for _, t := range assignedTo {
		if t.IsOverdue() {
			overview.Overdue = append(overview.Overdue, t)
		}
		if t.DueDate != nil && !t.IsTerminal() &&
			!t.DueDate.Before(now) && !t.DueDate.After(horizon) {
			overview.Upcoming = append(overview.Upcoming, t)
		}
		if t.Status == domain.TaskStatusInProgress {
			overview.InProgress = append(overview.InProgress, t)
		}
	}
	return overview, nil
}

// TaskStatistics represents aggregate task counts
type TaskStatistics struct {
	Total          int64   `json:"total"`
	NotStarted     int64   `json:"not_started"`
	InProgress     int64   `json:"in_progress"`
	Completed      int64   `json:"completed"`
	Overdue        int64   `json:"overdue"`
	CompletionRate float64 `json:"completion_rate"`
}

// Statistics aggregates task counts. Overdue is derived from due dates,
// not from the stored status. The completion rate is 0 for an empty set.
func (s *TaskService) Statistics(ctx context.Context) (*TaskStatistics, error) {
	total, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.taskRepo.CountOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	stats := &TaskStatistics{
		Total:      total,
		NotStarted: counts[domain.TaskStatusNotStarted],
		InProgress: counts[domain.TaskStatusInProgress],
		Completed:  counts[domain.TaskStatusCompleted],
		Overdue:    overdue,
	}
	if total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(total)
	}
	return stats, nil
}
