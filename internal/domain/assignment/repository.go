package assignment

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GroupExists(ctx context.Context, groupID string) (bool, error)
	ListRoster(ctx context.Context, groupID string) ([]RosterMember, error)
	GetMemberGroup(ctx context.Context, memberID string) (string, error)

	ListAssignments(ctx context.Context, groupID string) ([]MonthAssignment, error)
	GetAssignment(ctx context.Context, id string) (*MonthAssignment, error)
	CreateAssignment(ctx context.Context, a *MonthAssignment) error
	UpdateHost(ctx context.Context, id string, hostMemberID *string) error
	UpdateDeliveryDate(ctx context.Context, id string, date *time.Time) error
	DeleteAssignment(ctx context.Context, id string) error
	DeleteAssignmentsBefore(ctx context.Context, groupID string, year int) (int64, error)

	CreatePayment(ctx context.Context, p *Payment) error
	UpsertPayment(ctx context.Context, memberID, assignmentID string, paid bool, paidAt *time.Time) error
	ResetPayments(ctx context.Context, groupID string) error

	SetRotationDrawn(ctx context.Context, groupID string) error
}
