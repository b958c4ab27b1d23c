package group

import "context"

type Repository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetByShareCode(ctx context.Context, code string) (*Group, error)
	FindDefault(ctx context.Context) (*Group, error)
	List(ctx context.Context) ([]Summary, error)
	SetRotationDrawn(ctx context.Context, id string, drawn bool) error
	IsShareCodeTaken(ctx context.Context, code string) (bool, error)
}
