package keyset

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sort describes one sort column of a keyset query.
type Sort struct {
	// Column is the SQL column reference, optionally qualified: "posts.created_at".
	Column string

	// Key is the name under which this column's value appears in fetched rows
	// and in cursor payloads. Short keys keep tokens small and avoid leaking
	// column names: "c" instead of "created_at".
	Key string

	// Desc selects descending order. The zero value is ascending.
	Desc bool

	// Nullable declares that the column may hold NULL. Null placement is
	// fixed: nulls sort first under ascending order and last under descending
	// order, and the ORDER BY emitted by the dialect must match.
	Nullable bool
}

// SortSet is an ordered, non-empty list of sort columns. The final column is
// the tie breaker: it must be declared non-nullable and should be unique
// (typically the primary key), which makes the overall ordering total.
type SortSet []Sort

// Validate checks the structural invariants of the sort set.
func (s SortSet) Validate() error {
	if len(s) == 0 {
		return invalidSortf("sort set must not be empty")
	}

	seen := make(map[string]struct{}, len(s))
	for _, item := range s {
		if item.Column == "" {
			return invalidSortf("sort column reference must not be empty")
		}
		if item.Key == "" {
			return invalidSortf("sort key for column %q must not be empty", item.Column)
		}
		if _, dup := seen[item.Key]; dup {
			return invalidSortf("duplicate sort key %q", item.Key)
		}
		seen[item.Key] = struct{}{}
	}

	if s[len(s)-1].Nullable {
		return invalidSortf("last sort column %q must be non-nullable", s[len(s)-1].Column)
	}

	return nil
}

// Inverted returns a copy of the sort set with every direction flipped.
// Backward paging fetches rows in inverted order and reverses the page
// afterwards.
func (s SortSet) Inverted() SortSet {
	out := make(SortSet, len(s))
	for i, item := range s {
		item.Desc = !item.Desc
		out[i] = item
	}

	return out
}

// Signature returns an 8-hex-character fingerprint of the (key, direction)
// sequence. It is embedded in every issued cursor and recomputed on every
// request, so a cursor issued under a different sort configuration is
// rejected instead of silently producing a wrong page.
func (s SortSet) Signature() string {
	h := sha256.New()
	for _, item := range s {
		h.Write([]byte(item.Key))
		if item.Desc {
			h.Write([]byte("-"))
		} else {
			h.Write([]byte("+"))
		}
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))[:8]
}
