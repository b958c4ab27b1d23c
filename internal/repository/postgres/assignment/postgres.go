package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	assignmentdomain "gold-day-go/internal/domain/assignment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(assignmentdomain.Repository) error) error {
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

func (r *PostgresRepository) ListRoster(ctx context.Context, groupID string) ([]assignmentdomain.RosterMember, error) {
	var roster []assignmentdomain.RosterMember
	if err := r.db.WithContext(ctx).
		Table("members").
		Select("id, name").
		Where("group_id = ?", groupID).
		Order("created_at asc").
		Scan(&roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *PostgresRepository) GetMemberGroup(ctx context.Context, memberID string) (string, error) {
	var groupIDs []string
	if err := r.db.WithContext(ctx).
		Table("members").
		Where("id = ?", memberID).
		Limit(1).
		Pluck("group_id", &groupIDs).Error; err != nil {
		return "", err
	}
	if len(groupIDs) == 0 {
		return "", assignmentdomain.ErrMemberNotFound
	}
	return groupIDs[0], nil
}

func (r *PostgresRepository) ListAssignments(ctx context.Context, groupID string) ([]assignmentdomain.MonthAssignment, error) {
	var assignments []assignmentdomain.MonthAssignment
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Payments").
		Order("year asc, month asc").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *PostgresRepository) GetAssignment(ctx context.Context, id string) (*assignmentdomain.MonthAssignment, error) {
	var a assignmentdomain.MonthAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmentdomain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) CreateAssignment(ctx context.Context, a *assignmentdomain.MonthAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *PostgresRepository) UpdateHost(ctx context.Context, id string, hostMemberID *string) error {
	return r.db.WithContext(ctx).Model(&assignmentdomain.MonthAssignment{}).
		Where("id = ?", id).
		Update("host_member_id", hostMemberID).Error
}

func (r *PostgresRepository) UpdateDeliveryDate(ctx context.Context, id string, date *time.Time) error {
	return r.db.WithContext(ctx).Model(&assignmentdomain.MonthAssignment{}).
		Where("id = ?", id).
		Update("preferred_delivery_date", date).Error
}

func (r *PostgresRepository) DeleteAssignment(ctx context.Context, id string) error {
	// Payments go with it via ON DELETE CASCADE.
	return r.db.WithContext(ctx).Delete(&assignmentdomain.MonthAssignment{}, "id = ?", id).Error
}

func (r *PostgresRepository) DeleteAssignmentsBefore(ctx context.Context, groupID string, year int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND year < ?", groupID, year).
		Delete(&assignmentdomain.MonthAssignment{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) CreatePayment(ctx context.Context, p *assignmentdomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresRepository) UpsertPayment(ctx context.Context, memberID, assignmentID string, paid bool, paidAt *time.Time) error {
	payment := assignmentdomain.Payment{
		ID:                uuid.NewString(),
		MemberID:          memberID,
		MonthAssignmentID: assignmentID,
		Paid:              paid,
		PaidAt:            paidAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "member_id"}, {Name: "month_assignment_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"paid":       paid,
			"paid_at":    paidAt,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&payment).Error
}

func (r *PostgresRepository) ResetPayments(ctx context.Context, groupID string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE payments SET paid = false, paid_at = NULL
		WHERE month_assignment_id IN (SELECT id FROM month_assignments WHERE group_id = ?)`, groupID).Error
}

func (r *PostgresRepository) SetRotationDrawn(ctx context.Context, groupID string) error {
	return r.db.WithContext(ctx).Exec("UPDATE groups SET rotation_drawn = true WHERE id = ?", groupID).Error
}
