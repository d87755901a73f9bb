package repositories

import (
	"context"
	"errors"
	"time"

	"assochub/internal/adapters/persistence/models"
	"assochub/internal/core/domain"

	"gorm.io/gorm"
)

// taskRepository implements TaskRepository on GORM
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	row := models.TaskFromDomain(task)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	task.ID = row.ID
	task.CreatedAt = row.CreatedAt
	task.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var row models.Task
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *taskRepository) List(ctx context.Context, offset, limit int) ([]*domain.Task, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Task
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainTasks(rows), total, nil
}

func (r *taskRepository) GetByAssignee(ctx context.Context, userID uint) ([]*domain.Task, error) {
	return r.findAll(ctx, "assigned_to = ?", userID)
}

func (r *taskRepository) GetByAssigner(ctx context.Context, userID uint) ([]*domain.Task, error) {
	return r.findAll(ctx, "assigned_by = ?", userID)
}

func (r *taskRepository) GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return r.findAll(ctx, "status = ?", string(status))
}

func (r *taskRepository) GetByPriority(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error) {
	return r.findAll(ctx, "priority = ?", string(priority))
}

func (r *taskRepository) GetByDueDateRange(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	return r.findAll(ctx, "due_date BETWEEN ? AND ?", from, to)
}

func (r *taskRepository) GetOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	return r.findAll(ctx, "due_date < ? AND status NOT IN ?", now,
		[]string{string(domain.TaskStatusCompleted), string(domain.TaskStatusCancelled)})
}

func (r *taskRepository) SearchByTitle(ctx context.Context, term string, limit int) ([]*domain.Task, error) {
	var rows []models.Task
	err := r.db.WithContext(ctx).
		Where("title LIKE ?", "%"+term+"%").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	row := models.TaskFromDomain(task)
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", task.ID).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.TaskStatus]int64, len(counts))
	for _, c := range counts {
		result[domain.TaskStatus(c.Status)] = c.Count
	}
	return result, nil
}

func (r *taskRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("due_date < ? AND status NOT IN ?", now,
			[]string{string(domain.TaskStatusCompleted), string(domain.TaskStatusCancelled)}).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) findAll(ctx context.Context, query string, args ...interface{}) ([]*domain.Task, error) {
	var rows []models.Task
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

func toDomainTasks(rows []models.Task) []*domain.Task {
	tasks := make([]*domain.Task, len(rows))
	for i := range rows {
		tasks[i] = rows[i].ToDomain()
	}
	return tasks
}
