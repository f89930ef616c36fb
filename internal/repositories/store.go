package repositories

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is wrapped when a write hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is wrapped when a write would break a foreign key.
	ErrReferenced = errors.New("record is referenced")
)

// Page is an offset/limit window over an ordered listing.
type Page struct {
	Offset int
	Limit  int
}

// Store hands out repositories bound to one connection scope.
type Store interface {
	Categories() CategoryRepository
	Products() ProductRepository
	// WithinTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise,
	// including when fn panics.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
