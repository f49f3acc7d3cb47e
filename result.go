package keyset

import "github.com/friendsofgo/errors"

// Result is one page of paginated items plus the outgoing cursor surface.
//
// StartCursor and EndCursor mark the first and last row of this page and are
// valid Next/Prev tokens in their own right. NextPage and PrevPage are set
// only when the corresponding page is known to exist; HasNextPage and
// HasPrevPage mirror their presence.
type Result[T any] struct {
	Items       []T     `json:"items"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
	StartCursor *string `json:"startCursor,omitempty"`
	EndCursor   *string `json:"endCursor,omitempty"`
	NextPage    *string `json:"nextPage,omitempty"`
	PrevPage    *string `json:"prevPage,omitempty"`
}

// Edge pairs an item with the cursor referencing its own position, in the
// Relay connection style.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// EdgeResult is a Result whose items each carry their own position cursor.
type EdgeResult[T any] struct {
	Edges       []Edge[T] `json:"edges"`
	HasNextPage bool      `json:"hasNextPage"`
	HasPrevPage bool      `json:"hasPrevPage"`
	StartCursor *string   `json:"startCursor,omitempty"`
	EndCursor   *string   `json:"endCursor,omitempty"`
	NextPage    *string   `json:"nextPage,omitempty"`
	PrevPage    *string   `json:"prevPage,omitempty"`
}

// MapResult converts a page of database rows into a page of domain values,
// preserving all pagination metadata. It eliminates the per-endpoint loop of
// transforming items and copying cursor fields.
//
//	page, err := pager.Paginate(ctx, nil, sorts, 10, nil)
//	out, err := keyset.MapResult(page, toDomainUser)
func MapResult[T, U any](res *Result[T], transform func(T) (U, error)) (*Result[U], error) {
	items := make([]U, 0, len(res.Items))
	for i, item := range res.Items {
		mapped, err := transform(item)
		if err != nil {
			return nil, errors.Wrapf(err, "transform item at index %d", i)
		}
		items = append(items, mapped)
	}

	return &Result[U]{
		Items:       items,
		HasNextPage: res.HasNextPage,
		HasPrevPage: res.HasPrevPage,
		StartCursor: res.StartCursor,
		EndCursor:   res.EndCursor,
		NextPage:    res.NextPage,
		PrevPage:    res.PrevPage,
	}, nil
}

// MapEdges is MapResult for edge results; each edge keeps its cursor.
func MapEdges[T, U any](res *EdgeResult[T], transform func(T) (U, error)) (*EdgeResult[U], error) {
	edges := make([]Edge[U], 0, len(res.Edges))
	for i, edge := range res.Edges {
		mapped, err := transform(edge.Node)
		if err != nil {
			return nil, errors.Wrapf(err, "transform item at index %d", i)
		}
		edges = append(edges, Edge[U]{Node: mapped, Cursor: edge.Cursor})
	}

	return &EdgeResult[U]{
		Edges:       edges,
		HasNextPage: res.HasNextPage,
		HasPrevPage: res.HasPrevPage,
		StartCursor: res.StartCursor,
		EndCursor:   res.EndCursor,
		NextPage:    res.NextPage,
		PrevPage:    res.PrevPage,
	}, nil
}
