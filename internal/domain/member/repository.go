package member

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GroupExists(ctx context.Context, groupID string) (bool, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, groupID string) ([]Member, error)
	IsNameTaken(ctx context.Context, groupID, name string) (bool, error)
	Create(ctx context.Context, member *Member) error
	UpdateName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error

	// Consistency hooks for the payment ledger and host references.
	ListAssignmentIDs(ctx context.Context, groupID string) ([]string, error)
	CreateUnpaidPayment(ctx context.Context, memberID, assignmentID string) error
	DeletePaymentsByMember(ctx context.Context, memberID string) error
	ClearHostReferences(ctx context.Context, memberID string) error
}
