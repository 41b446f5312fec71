package planner

import (
	"fmt"

	"orderview/internal/colmap"
	"orderview/internal/sqlutil"

	sq "github.com/Masterminds/squirrel"
)

// PlanRelated builds the single query fetching all child rows for a
// resolved page of parent keys. The three child tables are left-joined to
// the parent so that an order without children still produces one row, with
// the child columns NULL. The store filter is re-applied; the search
// predicate is not, since the key set already fixes page membership.
// An empty key set yields an empty plan; callers must not execute it.
func PlanRelated(m *colmap.Mapping, parentKeys []string, f Filter) (SQLQuery, error) {
	if len(parentKeys) == 0 {
		return SQLQuery{}, nil
	}

	exprs := m.SelectExprs(colmap.SlotOrder, TableOrders)
	for _, child := range ChildTables() {
		exprs = append(exprs, m.SelectExprs(child.Slot, child.Table)...)
	}

	builder := sq.Select(exprs...).
		From(sqlutil.QuoteIdentifier(TableOrders)).
		PlaceholderFormat(sq.Question)

	quotedKey := sqlutil.QuoteIdentifier(ParentKeyColumn)
	for _, child := range ChildTables() {
		quotedChild := sqlutil.QuoteIdentifier(child.Table)
		builder = builder.LeftJoin(fmt.Sprintf(
			"%s ON %s.%s = %s.%s",
			quotedChild,
			quotedChild, quotedKey,
			sqlutil.QuoteIdentifier(TableOrders), quotedKey,
		))
	}

	builder = builder.Where(sq.Eq{orderColumn(ParentKeyColumn): parentKeys})
	for _, cond := range f.storeCondition() {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}
