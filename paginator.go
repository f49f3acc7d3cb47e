// Package keyset implements cursor-based (keyset) pagination over ordered,
// multi-column SQL result sets.
//
// A pagination call takes a caller-built query, a SortSet describing the
// ordering, a page size, and an optional incoming Cursor (forward token,
// backward token, or raw offset). It fetches one row beyond the page size to
// detect further pages, and returns the page together with opaque,
// round-trip-stable tokens for the neighboring pages. Keyset comparison
// avoids the duplicate/skipped rows that offset paging exhibits under
// concurrent writes.
//
// The database is reached only through the DialectAdapter and Executor
// contracts; see the sqlboiler subpackage for a PostgreSQL implementation.
//
//	pager := keyset.New[[]qm.QueryMod, *User](dialect, fetcher, userValues)
//	sorts := keyset.SortSet{
//		{Column: "age", Key: "a", Desc: true, Nullable: true},
//		{Column: "id", Key: "i"},
//	}
//	page, err := pager.Paginate(ctx, nil, sorts, 10, nil)
//	next, err := pager.Paginate(ctx, nil, sorts, 10, keyset.NextCursor(*page.NextPage))
package keyset

import (
	"context"

	"github.com/friendsofgo/errors"
	"github.com/samber/lo"

	"github.com/nrfta/keyset-go/codec"
)

// Paginator orchestrates keyset pagination for one query shape. It holds
// only stateless configuration and is safe for concurrent use; each Paginate
// call is an independent request-response operation.
type Paginator[Q, T any] struct {
	dialect  DialectAdapter[Q]
	executor Executor[Q, T]
	values   RowValues[T]
	codec    CursorCodec
	maxLimit int
}

// Option configures a Paginator.
type Option func(*config)

type config struct {
	codec    CursorCodec
	maxLimit int
}

// WithCursorCodec replaces the default cursor codec (codec.Default()).
func WithCursorCodec(c CursorCodec) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.codec = c
		}
	}
}

// WithMaxLimit rejects page sizes above n with an INVALID_LIMIT error.
// Zero (the default) disables the cap.
func WithMaxLimit(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxLimit = n
		}
	}
}

// New builds a Paginator from a dialect adapter, a query executor, and a
// row-value extractor.
func New[Q, T any](
	dialect DialectAdapter[Q],
	executor Executor[Q, T],
	values RowValues[T],
	opts ...Option,
) *Paginator[Q, T] {
	cfg := config{codec: codec.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Paginator[Q, T]{
		dialect:  dialect,
		executor: executor,
		values:   values,
		codec:    cfg.codec,
		maxLimit: cfg.maxLimit,
	}
}

// Paginate fetches one page of results.
//
// query is the caller's base query (filters already applied); sorts defines
// the ordering; limit is the page size; cur selects the page, with nil
// meaning the first page. The call either returns a complete result or an
// error of one of the four recognized kinds, never a partial result.
func (p *Paginator[Q, T]) Paginate(
	ctx context.Context,
	query Q,
	sorts SortSet,
	limit int,
	cur *Cursor,
) (*Result[T], error) {
	pg, err := p.paginate(ctx, query, sorts, limit, cur)
	if err != nil {
		return nil, err
	}

	return &Result[T]{
		Items:       pg.items,
		HasNextPage: pg.nextPage != nil,
		HasPrevPage: pg.prevPage != nil,
		StartCursor: pg.startCursor,
		EndCursor:   pg.endCursor,
		NextPage:    pg.nextPage,
		PrevPage:    pg.prevPage,
	}, nil
}

// PaginateWithEdges runs the same algorithm as Paginate and additionally
// pairs every item with its own position cursor, so a client can resume from
// any row of the page.
func (p *Paginator[Q, T]) PaginateWithEdges(
	ctx context.Context,
	query Q,
	sorts SortSet,
	limit int,
	cur *Cursor,
) (*EdgeResult[T], error) {
	pg, err := p.paginate(ctx, query, sorts, limit, cur)
	if err != nil {
		return nil, err
	}

	edges := make([]Edge[T], 0, len(pg.items))
	for _, item := range pg.items {
		token, err := p.encodePosition(ctx, sorts, item)
		if err != nil {
			return nil, wrapUnexpected(err)
		}
		edges = append(edges, Edge[T]{Node: item, Cursor: token})
	}

	return &EdgeResult[T]{
		Edges:       edges,
		HasNextPage: pg.nextPage != nil,
		HasPrevPage: pg.prevPage != nil,
		StartCursor: pg.startCursor,
		EndCursor:   pg.endCursor,
		NextPage:    pg.nextPage,
		PrevPage:    pg.prevPage,
	}, nil
}

type page[T any] struct {
	items       []T
	startCursor *string
	endCursor   *string
	nextPage    *string
	prevPage    *string
}

func (p *Paginator[Q, T]) paginate(
	ctx context.Context,
	query Q,
	sorts SortSet,
	limit int,
	cur *Cursor,
) (*page[T], error) {
	if limit <= 0 {
		return nil, invalidLimitf("limit must be a positive integer, got %d", limit)
	}
	if p.maxLimit > 0 && limit > p.maxLimit {
		return nil, invalidLimitf("limit %d exceeds the maximum of %d", limit, p.maxLimit)
	}
	if err := sorts.Validate(); err != nil {
		return nil, err
	}

	dec, err := p.decodeCursor(ctx, cur)
	if err != nil {
		return nil, err
	}

	// Backward paging walks the inverted ordering; the fetched rows are
	// reversed below so the page reads in the originally requested order.
	effective := sorts
	if dec.kind == CursorPrev {
		effective = sorts.Inverted()
	}

	q := p.dialect.ApplySort(query, effective)

	// One extra row signals whether another page exists; it is trimmed
	// before the page is returned.
	q = p.dialect.ApplyLimit(q, limit+1, dec.kind)

	switch dec.kind {
	case CursorOffset:
		q = p.dialect.ApplyOffset(q, dec.offset)

	case CursorNext, CursorPrev:
		if dec.payload.Sig != sorts.Signature() {
			return nil, invalidTokenf("cursor was issued under a different sort order")
		}

		q, err = p.dialect.ApplyCursor(q, effective, dec.payload)
		if err != nil {
			return nil, wrapUnexpected(err)
		}
	}

	rows, err := p.executor.Execute(ctx, q)
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	overFetched := len(rows) > limit
	items := rows
	if overFetched {
		items = rows[:limit]
	}
	if dec.kind == CursorPrev {
		items = append([]T(nil), items...)
		lo.Reverse(items)
	}

	pg := &page[T]{items: items}
	if len(items) > 0 {
		start, err := p.encodePosition(ctx, sorts, items[0])
		if err != nil {
			return nil, wrapUnexpected(err)
		}
		end, err := p.encodePosition(ctx, sorts, items[len(items)-1])
		if err != nil {
			return nil, wrapUnexpected(err)
		}
		pg.startCursor, pg.endCursor = &start, &end
	}

	isFirst := dec.kind == CursorFirst || (dec.kind == CursorOffset && dec.offset == 0)
	inverted := dec.kind == CursorPrev

	// Walking backward means a following page is known to exist; walking
	// forward means a preceding one does, unless this is the first page.
	// Overfetch covers the remaining direction.
	if inverted || overFetched {
		pg.nextPage = pg.endCursor
	}
	if (!inverted || overFetched) && !isFirst {
		pg.prevPage = pg.startCursor
	}

	return pg, nil
}

type decodedCursor struct {
	kind    CursorKind
	payload Payload
	offset  int
}

func (p *Paginator[Q, T]) decodeCursor(ctx context.Context, cur *Cursor) (decodedCursor, error) {
	if cur == nil {
		return decodedCursor{kind: CursorFirst}, nil
	}

	set := 0
	for _, present := range []bool{cur.Next != nil, cur.Prev != nil, cur.Offset != nil} {
		if present {
			set++
		}
	}
	if set > 1 {
		return decodedCursor{}, invalidTokenf("cursor must set at most one of next, prev, offset")
	}

	switch {
	case cur.Next != nil:
		payload, err := p.decodeToken(ctx, *cur.Next)
		if err != nil {
			return decodedCursor{}, err
		}
		return decodedCursor{kind: CursorNext, payload: payload}, nil

	case cur.Prev != nil:
		payload, err := p.decodeToken(ctx, *cur.Prev)
		if err != nil {
			return decodedCursor{}, err
		}
		return decodedCursor{kind: CursorPrev, payload: payload}, nil

	case cur.Offset != nil:
		if *cur.Offset < 0 {
			return decodedCursor{}, invalidTokenf("offset must not be negative, got %d", *cur.Offset)
		}
		return decodedCursor{kind: CursorOffset, offset: *cur.Offset}, nil

	default:
		return decodedCursor{kind: CursorFirst}, nil
	}
}

func (p *Paginator[Q, T]) decodeToken(ctx context.Context, token string) (Payload, error) {
	raw, err := p.codec.Decode(ctx, token)
	if err != nil {
		return Payload{}, invalidToken(err, "cannot decode cursor token")
	}

	return payloadFrom(raw)
}

// encodePosition derives the cursor marking item's position under sorts.
func (p *Paginator[Q, T]) encodePosition(ctx context.Context, sorts SortSet, item T) (string, error) {
	values := p.values(item)

	keys := make(map[string]any, len(sorts))
	for _, s := range sorts {
		v, ok := values[s.Key]
		if !ok {
			return "", errors.Errorf("row values are missing sort key %q", s.Key)
		}
		keys[s.Key] = v
	}

	return p.codec.Encode(ctx, map[string]any{
		"s": sorts.Signature(),
		"k": keys,
	})
}
