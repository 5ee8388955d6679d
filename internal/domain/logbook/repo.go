package logbook

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	// List returns every entry, newest date first.
	List(ctx context.Context) ([]*Entry, error)
}
