// Package planner converts order page requests into parameterized SQL
// statements. It owns the order schema declarations, the filter and sort
// predicates, and the windowing technique used to paginate parents on
// stores without a native OFFSET primitive.
package planner

// SQLQuery represents a planned SQL statement with bound args.
type SQLQuery struct {
	SQL  string
	Args []interface{}
}
