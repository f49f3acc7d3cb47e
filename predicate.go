package keyset

import "github.com/samber/lo"

// Op is a comparison operator in a keyset predicate.
type Op string

const (
	OpGt Op = ">"
	OpLt Op = "<"
	OpEq Op = "="
)

// Expr is a dialect-neutral boolean expression over row columns. Dialect
// adapters render it into their native WHERE representation.
type Expr interface {
	isExpr()
}

// Cmp compares a column against a literal value.
type Cmp struct {
	Column string
	Op     Op
	Value  any
}

// IsNull tests a column for NULL.
type IsNull struct {
	Column string
}

// NotNull tests a column for NOT NULL.
type NotNull struct {
	Column string
}

// And is the conjunction of its sub-expressions.
type And struct {
	Exprs []Expr
}

// Or is the disjunction of its sub-expressions.
type Or struct {
	Exprs []Expr
}

func (Cmp) isExpr()     {}
func (IsNull) isExpr()  {}
func (NotNull) isExpr() {}
func (And) isExpr()     {}
func (Or) isExpr()      {}

// BuildPredicate turns a decoded cursor payload plus a sort set into a single
// boolean expression meaning "this row sorts strictly after the cursor
// position under the given ordering". The sort set must already be inverted
// when paging backward.
//
// The expression is a lexicographic multi-column comparison, folded from the
// last sort column backward to the first so arbitrarily long sort sets never
// recurse:
//
//	col1 > v1 OR (col1 = v1 AND (col2 > v2 OR (col2 = v2 AND ...)))
//
// Null placement is fixed (nulls first under ASC, nulls last under DESC) and
// shows up in two places. A null cursor value under ASC is already below all
// non-null rows, so any non-null row qualifies and null rows tie-break on the
// next column; under DESC only other null rows can still follow. A non-null
// cursor value under DESC additionally lets every null row through, because
// nulls sort after all values there.
func BuildPredicate(sorts SortSet, payload Payload) (Expr, error) {
	if len(sorts) == 0 {
		return nil, invalidSortf("sort set must not be empty")
	}

	var acc Expr
	for idx := len(sorts) - 1; idx >= 0; idx-- {
		item := sorts[idx]

		value, ok := payload.Keys[item.Key]
		if !ok {
			return nil, invalidTokenf("cursor is missing a value for sort key %q", item.Key)
		}

		op := lo.Ternary(item.Desc, OpLt, OpGt)

		if idx == len(sorts)-1 {
			// Tie-breaking column: declared non-nullable, so a strict
			// comparison is the whole base case.
			if value == nil {
				return nil, invalidTokenf("cursor holds null for non-nullable sort key %q", item.Key)
			}
			acc = Cmp{Column: item.Column, Op: op, Value: value}
			continue
		}

		if value == nil {
			if item.Desc {
				acc = And{Exprs: []Expr{IsNull{Column: item.Column}, acc}}
			} else {
				acc = Or{Exprs: []Expr{
					And{Exprs: []Expr{IsNull{Column: item.Column}, acc}},
					NotNull{Column: item.Column},
				}}
			}
			continue
		}

		branches := []Expr{
			Cmp{Column: item.Column, Op: op, Value: value},
			And{Exprs: []Expr{Cmp{Column: item.Column, Op: OpEq, Value: value}, acc}},
		}
		if item.Desc {
			branches = append(branches, IsNull{Column: item.Column})
		}

		acc = Or{Exprs: branches}
	}

	return acc, nil
}
