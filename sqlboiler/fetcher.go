package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	keyset "github.com/nrfta/keyset-go"
)

// QueryFunc executes a SQLBoiler query with the given mods and returns the
// matching rows. Bind it to a generated model's query method:
//
//	func(ctx context.Context, mods ...qm.QueryMod) ([]*models.User, error) {
//	    return models.Users(mods...).All(ctx, db)
//	}
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// Fetcher implements keyset.Executor over a SQLBoiler query function. Filters
// belong in the base mods passed to Paginate; the fetcher only forwards the
// assembled query.
type Fetcher[T any] struct {
	query QueryFunc[T]
}

// NewFetcher wraps a SQLBoiler query function as a keyset executor.
func NewFetcher[T any](query QueryFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{query: query}
}

// Execute runs the assembled query mods.
func (f *Fetcher[T]) Execute(ctx context.Context, query []qm.QueryMod) ([]T, error) {
	return f.query(ctx, query...)
}

var _ keyset.Executor[[]qm.QueryMod, struct{}] = (*Fetcher[struct{}])(nil)
