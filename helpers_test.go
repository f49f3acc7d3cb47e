package keyset_test

import (
	"fmt"
	"strings"

	keyset "github.com/nrfta/keyset-go"
)

// evalRow evaluates a predicate expression against a row represented as a
// column→value map, using SQL three-valued logic for NULL comparisons.
func evalRow(expr keyset.Expr, row map[string]any) bool {
	switch t := expr.(type) {
	case keyset.Cmp:
		v, ok := row[t.Column]
		if !ok || v == nil {
			return false
		}

		c := compareValues(v, t.Value)
		switch t.Op {
		case keyset.OpGt:
			return c > 0
		case keyset.OpLt:
			return c < 0
		case keyset.OpEq:
			return c == 0
		default:
			panic(fmt.Sprintf("unknown operator %q", t.Op))
		}

	case keyset.IsNull:
		return row[t.Column] == nil

	case keyset.NotNull:
		return row[t.Column] != nil

	case keyset.And:
		for _, sub := range t.Exprs {
			if !evalRow(sub, row) {
				return false
			}
		}
		return true

	case keyset.Or:
		for _, sub := range t.Exprs {
			if evalRow(sub, row) {
				return true
			}
		}
		return false

	default:
		panic(fmt.Sprintf("unknown expression %T", expr))
	}
}

// compareValues orders nil before everything, matching ascending NULLS FIRST.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	switch av := a.(type) {
	case int64:
		bv := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		return strings.Compare(av, b.(string))
	default:
		panic(fmt.Sprintf("cannot compare values of type %T", a))
	}
}
