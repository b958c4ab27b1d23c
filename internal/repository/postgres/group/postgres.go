package group

import (
	"context"
	"errors"
	"time"

	groupdomain "gold-day-go/internal/domain/group"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, group *groupdomain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) GetByShareCode(ctx context.Context, code string) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("share_code = ?", code).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) FindDefault(ctx context.Context) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]groupdomain.Summary, error) {
	type groupRow struct {
		ID              string    `gorm:"column:id"`
		Name            string    `gorm:"column:name"`
		ShareCode       *string   `gorm:"column:share_code"`
		IsDefault       bool      `gorm:"column:is_default"`
		RotationDrawn   bool      `gorm:"column:rotation_drawn"`
		CreatedAt       time.Time `gorm:"column:created_at"`
		UpdatedAt       time.Time `gorm:"column:updated_at"`
		MemberCount     int64     `gorm:"column:member_count"`
		AssignmentCount int64     `gorm:"column:assignment_count"`
	}

	var rows []groupRow
	if err := r.db.WithContext(ctx).
		Table("groups").
		Select(`groups.*,
			(SELECT COUNT(1) FROM members WHERE members.group_id = groups.id) AS member_count,
			(SELECT COUNT(1) FROM month_assignments WHERE month_assignments.group_id = groups.id) AS assignment_count`).
		Order("groups.is_default desc, groups.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]groupdomain.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, groupdomain.Summary{
			Group: groupdomain.Group{
				ID:            row.ID,
				Name:          row.Name,
				ShareCode:     row.ShareCode,
				IsDefault:     row.IsDefault,
				RotationDrawn: row.RotationDrawn,
				CreatedAt:     row.CreatedAt,
				UpdatedAt:     row.UpdatedAt,
			},
			MemberCount:     row.MemberCount,
			AssignmentCount: row.AssignmentCount,
		})
	}
	return summaries, nil
}

func (r *PostgresRepository) SetRotationDrawn(ctx context.Context, id string, drawn bool) error {
	return r.db.WithContext(ctx).Model(&groupdomain.Group{}).Where("id = ?", id).Update("rotation_drawn", drawn).Error
}

func (r *PostgresRepository) IsShareCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&groupdomain.Group{}).Where("share_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
