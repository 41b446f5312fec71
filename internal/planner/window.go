package planner

import (
	"fmt"
	"strings"

	"orderview/internal/colmap"
	"orderview/internal/sqlutil"

	sq "github.com/Masterminds/squirrel"
)

// PlanCount builds the COUNT query for a filter. It runs against the parent
// table alone, with no joins and no sort, so the total reflects parent
// cardinality and is never inflated by join fan-out.
func PlanCount(f Filter) (SQLQuery, error) {
	builder := sq.Select("COUNT(*)").
		From(sqlutil.QuoteIdentifier(TableOrders)).
		PlaceholderFormat(sq.Question)
	for _, cond := range f.conditions() {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanWindow builds the windowed SELECT over sorted, filtered parent rows.
// The filtered sorted select is wrapped in a ROW_NUMBER() subquery and the
// outer predicate keeps rows numbered in (offset, offset+limit]. Bounding
// the numbering from both sides reproduces a true window on stores whose
// native pagination primitive only caps an upper row count.
func PlanWindow(m *colmap.Mapping, f Filter, s Sort, offset, limit int) (SQLQuery, error) {
	if err := validateWindow(offset, limit); err != nil {
		return SQLQuery{}, err
	}

	orderClause, err := s.orderClause()
	if err != nil {
		return SQLQuery{}, err
	}

	innerSelect := strings.Join(m.SelectExprs(colmap.SlotOrder, TableOrders), ", ")
	aliases := m.Aliases(colmap.SlotOrder)
	quotedAliases := make([]string, len(aliases))
	for i, alias := range aliases {
		quotedAliases[i] = sqlutil.QuoteIdentifier(alias)
	}
	outerSelect := strings.Join(quotedAliases, ", ")

	whereSQL := ""
	var whereArgs []interface{}
	if conds := f.conditions(); len(conds) > 0 {
		condSQL, condArgs, err := sq.And(conds).ToSql()
		if err != nil {
			return SQLQuery{}, err
		}
		whereSQL = " WHERE " + condSQL
		whereArgs = condArgs
	}

	query := fmt.Sprintf(
		"SELECT %s FROM (SELECT %s, ROW_NUMBER() OVER (ORDER BY %s) AS __rn FROM %s%s) AS __page WHERE __rn > ? AND __rn <= ? ORDER BY __rn",
		outerSelect,
		innerSelect,
		orderClause,
		sqlutil.QuoteIdentifier(TableOrders),
		whereSQL,
	)

	args := append([]interface{}{}, whereArgs...)
	args = append(args, offset, offset+limit)
	return SQLQuery{SQL: query, Args: args}, nil
}

func validateWindow(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	return nil
}
