package repositories

import (
	"context"
	"errors"
	"time"

	"assochub/internal/adapters/persistence/models"
	"assochub/internal/core/domain"

	"gorm.io/gorm"
)

// reportRepository implements ReportRepository on GORM
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	row := models.ReportFromDomain(report)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	report.ID = row.ID
	report.CreatedAt = row.CreatedAt
	report.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*domain.Report, error) {
	var row models.Report
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *reportRepository) List(ctx context.Context, offset, limit int) ([]*domain.Report, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Report
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainReports(rows), total, nil
}

func (r *reportRepository) GetByType(ctx context.Context, reportType domain.ReportType) ([]*domain.Report, error) {
	return r.findAll(ctx, "report_type = ?", string(reportType))
}

func (r *reportRepository) GetByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error) {
	return r.findAll(ctx, "status = ?", string(status))
}

func (r *reportRepository) GetByPeriod(ctx context.Context, period string) ([]*domain.Report, error) {
	return r.findAll(ctx, "period = ?", period)
}

func (r *reportRepository) GetBySubmitter(ctx context.Context, submittedBy uint) ([]*domain.Report, error) {
	return r.findAll(ctx, "submitted_by = ?", submittedBy)
}

func (r *reportRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Report, error) {
	return r.findAll(ctx, "created_at BETWEEN ? AND ?", from, to)
}

func (r *reportRepository) SearchByTitle(ctx context.Context, term string, limit int) ([]*domain.Report, error) {
	var rows []models.Report
	err := r.db.WithContext(ctx).
		Where("title LIKE ?", "%"+term+"%").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainReports(rows), nil
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	row := models.ReportFromDomain(report)
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", report.ID).
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

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountByStatus(ctx context.Context) (map[domain.ReportStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.ReportStatus]int64, len(counts))
	for _, c := range counts {
		result[domain.ReportStatus(c.Status)] = c.Count
	}
	return result, nil
}

func (r *reportRepository) findAll(ctx context.Context, query string, args ...interface{}) ([]*domain.Report, error) {
	var rows []models.Report
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainReports(rows), nil
}

func toDomainReports(rows []models.Report) []*domain.Report {
	reports := make([]*domain.Report, len(rows))
	for i := range rows {
		reports[i] = rows[i].ToDomain()
	}
	return reports
}
