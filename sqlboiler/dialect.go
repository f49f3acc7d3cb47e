// Package sqlboiler adapts keyset pagination onto SQLBoiler query mods for
// PostgreSQL.
//
// The dialect renders the dialect-neutral predicate tree into an expanded
// WHERE clause (tuple comparisons confuse SQLBoiler's mod handling, and the
// expanded form also carries the NULL branches that tuples cannot express)
// and emits ORDER BY with explicit NULLS FIRST/NULLS LAST, because
// PostgreSQL's defaults are the opposite of the fixed null placement the
// predicate assumes.
//
//	fetcher := sqlboiler.NewFetcher(func(ctx context.Context, mods ...qm.QueryMod) ([]*models.User, error) {
//	    return models.Users(mods...).All(ctx, db)
//	})
//	pager := keyset.New[[]qm.QueryMod, *models.User](sqlboiler.Dialect{}, fetcher, userValues)
package sqlboiler

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"

	keyset "github.com/nrfta/keyset-go"
)

// Dialect implements keyset.DialectAdapter over a list of SQLBoiler query
// mods. It is stateless; the zero value is ready to use.
type Dialect struct{}

var _ keyset.DialectAdapter[[]qm.QueryMod] = Dialect{}

// ApplySort appends the ORDER BY clause for the effective sort set.
func (Dialect) ApplySort(query []qm.QueryMod, sorts keyset.SortSet) []qm.QueryMod {
	clauses := make([]string, 0, len(sorts))
	for _, s := range sorts {
		col := quoteColumn(s.Column)

		direction := "ASC"
		nulls := "NULLS FIRST"
		if s.Desc {
			direction = "DESC"
			nulls = "NULLS LAST"
		}

		if s.Nullable {
			clauses = append(clauses, fmt.Sprintf("%s %s %s", col, direction, nulls))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s %s", col, direction))
		}
	}

	return append(query, qm.OrderBy(strings.Join(clauses, ", ")))
}

// ApplyLimit appends the row bound. PostgreSQL uses the same LIMIT syntax for
// every cursor kind, so the kind is ignored here.
func (Dialect) ApplyLimit(query []qm.QueryMod, limit int, _ keyset.CursorKind) []qm.QueryMod {
	return append(query, qm.Limit(limit))
}

// ApplyOffset appends the row skip for offset-mode cursors.
func (Dialect) ApplyOffset(query []qm.QueryMod, offset int) []qm.QueryMod {
	return append(query, qm.Offset(offset))
}

// ApplyCursor builds the keyset predicate for the cursor position and injects
// it as a raw WHERE clause. qm.Where mangles multi-branch expressions, so the
// clause goes through queries.AppendWhere directly.
func (Dialect) ApplyCursor(
	query []qm.QueryMod,
	sorts keyset.SortSet,
	payload keyset.Payload,
) ([]qm.QueryMod, error) {
	expr, err := keyset.BuildPredicate(sorts, payload)
	if err != nil {
		return nil, err
	}

	clause, args, err := renderExpr(expr)
	if err != nil {
		return nil, err
	}

	mod := qm.QueryModFunc(func(q *queries.Query) {
		queries.AppendWhere(q, clause, args...)
	})

	return append(query, mod), nil
}

// renderExpr walks the predicate tree into SQL with ? placeholders; SQLBoiler
// rebinds them for the target database at build time.
func renderExpr(expr keyset.Expr) (string, []any, error) {
	var sb strings.Builder
	var args []any

	if err := render(expr, &sb, &args); err != nil {
		return "", nil, err
	}

	return sb.String(), args, nil
}

func render(expr keyset.Expr, sb *strings.Builder, args *[]any) error {
	switch t := expr.(type) {
	case keyset.Cmp:
		fmt.Fprintf(sb, "%s %s ?", quoteColumn(t.Column), t.Op)
		*args = append(*args, bindValue(t.Value))
		return nil

	case keyset.IsNull:
		fmt.Fprintf(sb, "%s IS NULL", quoteColumn(t.Column))
		return nil

	case keyset.NotNull:
		fmt.Fprintf(sb, "%s IS NOT NULL", quoteColumn(t.Column))
		return nil

	case keyset.And:
		return renderJoined(t.Exprs, " AND ", sb, args)

	case keyset.Or:
		return renderJoined(t.Exprs, " OR ", sb, args)

	default:
		return errors.Errorf("cannot render expression of type %T", expr)
	}
}

func renderJoined(exprs []keyset.Expr, sep string, sb *strings.Builder, args *[]any) error {
	sb.WriteString("(")
	for i, sub := range exprs {
		if i > 0 {
			sb.WriteString(sep)
		}
		if err := render(sub, sb, args); err != nil {
			return err
		}
	}
	sb.WriteString(")")

	return nil
}

// bindValue converts predicate values the driver cannot bind directly.
func bindValue(v any) any {
	switch t := v.(type) {
	case *big.Int:
		return t.String()
	default:
		return v
	}
}

func quoteColumn(column string) string {
	return strmangle.IdentQuote('"', '"', column)
}
