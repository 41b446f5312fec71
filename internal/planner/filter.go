package planner

import (
	"fmt"
	"strings"

	"orderview/internal/sqlutil"

	sq "github.com/Masterminds/squirrel"
)

// Filter restricts the parent row set. Both predicates are optional and
// combine with AND. Values are always bound as placeholders, never
// interpolated into the query text.
type Filter struct {
	// StoreCode is an exact match on the order's store.
	StoreCode string
	// Search is a case-insensitive substring match over the order number
	// and customer name. LIKE metacharacters in the value match literally.
	Search string
}

// conditions returns the filter's predicates against the orders table.
func (f Filter) conditions() []sq.Sqlizer {
	var conds []sq.Sqlizer
	if f.StoreCode != "" {
		conds = append(conds, sq.Eq{orderColumn("store_code"): f.StoreCode})
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(sqlutil.EscapeLike(f.Search)) + "%"
		conds = append(conds, sq.Or{
			sq.Expr(fmt.Sprintf("LOWER(%s) LIKE ?", orderColumn("order_number")), pattern),
			sq.Expr(fmt.Sprintf("LOWER(%s) LIKE ?", orderColumn("customer_name")), pattern),
		})
	}
	return conds
}

// storeCondition returns only the store predicate, used when the parent key
// set has already been resolved and the search predicate is redundant.
func (f Filter) storeCondition() []sq.Sqlizer {
	if f.StoreCode == "" {
		return nil
	}
	return []sq.Sqlizer{sq.Eq{orderColumn("store_code"): f.StoreCode}}
}

func orderColumn(column string) string {
	return sqlutil.QuoteIdentifier(TableOrders) + "." + sqlutil.QuoteIdentifier(column)
}
