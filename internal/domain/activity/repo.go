package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, error)
	Count(ctx context.Context) (int, error)
}
