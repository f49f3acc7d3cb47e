package keyset

import (
	"context"

	"github.com/nrfta/keyset-go/codec"
)

// DialectAdapter adapts keyset pagination onto a database-specific query
// representation Q (SQLBoiler query mods, a GORM *DB, a raw SQL builder).
// Implementations are stateless configuration values, safe for concurrent
// use. Every method returns a new query value and must preserve all clauses
// applied before it.
type DialectAdapter[Q any] interface {
	// ApplySort adds the ORDER BY for the effective sort set. The rendered
	// null ordering must match the fixed policy: nulls first ascending,
	// nulls last descending.
	ApplySort(query Q, sorts SortSet) Q

	// ApplyLimit bounds the row count. The cursor kind is provided for
	// dialects whose limit syntax varies by paging mode.
	ApplyLimit(query Q, limit int, kind CursorKind) Q

	// ApplyOffset skips rows for offset-mode cursors.
	ApplyOffset(query Q, offset int) Q

	// ApplyCursor constrains the query to rows sorting strictly after the
	// cursor position (see BuildPredicate).
	ApplyCursor(query Q, sorts SortSet, payload Payload) (Q, error)
}

// Executor runs an assembled query and returns the fetched rows in query
// order. It is the only place a pagination call touches the database;
// cancellation and timeouts are its responsibility.
type Executor[Q, T any] interface {
	Execute(ctx context.Context, query Q) ([]T, error)
}

// CursorCodec serializes decoded cursor payloads into opaque tokens and back.
// The default is codec.Default(); compose codec.Secret or codec.StashCodec
// on top for tokens that must be unforgeable or stay server-side.
type CursorCodec = codec.Codec[any, string]

// RowValues extracts a fetched row's sort-key values, keyed by Sort.Key. The
// map must contain an entry for every key in the sort set (nil for NULL
// columns); outgoing cursors are derived from it.
type RowValues[T any] func(item T) map[string]any
