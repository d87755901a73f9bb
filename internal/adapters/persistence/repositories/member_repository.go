package repositories

import (
	"context"
	"errors"

	"assochub/internal/adapters/persistence/models"
	"assochub/internal/core/domain"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository on GORM
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	row := models.MemberFromDomain(member)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEntry
		}
		return err
	}
	member.ID = row.ID
	member.CreatedAt = row.CreatedAt
	member.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (*domain.Member, error) {
	var row models.Member
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *memberRepository) GetByMemberCode(ctx context.Context, code string) (*domain.Member, error) {
	var row models.Member
	err := r.db.WithContext(ctx).
		Where("member_code = ?", code).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *memberRepository) List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Member
	err := r.db.WithContext(ctx).
		Order("member_code ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainMembers(rows), total, nil
}

func (r *memberRepository) GetByType(ctx context.Context, memberType domain.MemberType) ([]*domain.Member, error) {
	var rows []models.Member
	err := r.db.WithContext(ctx).
		Where("member_type = ?", string(memberType)).
		Order("member_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMembers(rows), nil
}

func (r *memberRepository) GetByStatus(ctx context.Context, status domain.MemberStatus) ([]*domain.Member, error) {
	var rows []models.Member
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("member_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMembers(rows), nil
}

func (r *memberRepository) SearchByName(ctx context.Context, term string, limit int) ([]*domain.Member, error) {
	var rows []models.Member
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("full_name LIKE ? OR member_code LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMembers(rows), nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	row := models.MemberFromDomain(member)
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", member.ID).
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

func (r *memberRepository) UpdateStatus(ctx context.Context, id uint, status domain.MemberStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&count).Error
	return count, err
}

func (r *memberRepository) CountByType(ctx context.Context) (map[domain.MemberType]int64, error) {
	type typeCount struct {
		MemberType string
		Count      int64
	}
	var counts []typeCount
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("member_type, COUNT(*) as count").
		Group("member_type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.MemberType]int64, len(counts))
	for _, c := range counts {
		result[domain.MemberType(c.MemberType)] = c.Count
	}
	return result, nil
}

func (r *memberRepository) CountByStatus(ctx context.Context, status domain.MemberStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func toDomainMembers(rows []models.Member) []*domain.Member {
	members := make([]*domain.Member, len(rows))
	for i := range rows {
		members[i] = rows[i].ToDomain()
	}
	return members
}
