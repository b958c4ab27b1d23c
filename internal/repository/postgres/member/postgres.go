package member

import (
	"context"
	"errors"

	"github.com/google/uuid"

	memberdomain "gold-day-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(memberdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("groups").Where("id = ?", groupID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	var member memberdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) List(ctx context.Context, groupID string) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) IsNameTaken(ctx context.Context, groupID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("group_id = ? AND name = ?", groupID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.db.WithContext(ctx).Model(&memberdomain.Member{}).Where("id = ?", id).Update("name", name).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&memberdomain.Member{}, "id = ?", id).Error
}

func (r *PostgresRepository) ListAssignmentIDs(ctx context.Context, groupID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Table("month_assignments").
		Where("group_id = ?", groupID).
		Order("year asc, month asc").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) CreateUnpaidPayment(ctx context.Context, memberID, assignmentID string) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO payments (id, member_id, month_assignment_id, paid) VALUES (?, ?, ?, false)",
		uuid.NewString(), memberID, assignmentID,
	).Error
}

func (r *PostgresRepository) DeletePaymentsByMember(ctx context.Context, memberID string) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM payments WHERE member_id = ?", memberID).Error
}

func (r *PostgresRepository) ClearHostReferences(ctx context.Context, memberID string) error {
	return r.db.WithContext(ctx).Exec("UPDATE month_assignments SET host_member_id = NULL WHERE host_member_id = ?", memberID).Error
}
