package planner

import (
	"fmt"
	"strings"
)

// SortField is one of the allowed parent sort columns.
type SortField int

const (
	SortRegisteredAt SortField = iota
	SortOrderNumber
	SortStore
)

var sortFieldColumns = map[SortField]string{
	SortRegisteredAt: "registered_at",
	SortOrderNumber:  "order_number",
	SortStore:        "store_code",
}

var sortFieldNames = map[string]SortField{
	"REGISTERED_AT": SortRegisteredAt,
	"ORDER_NUMBER":  SortOrderNumber,
	"STORE":         SortStore,
}

// ParseSortField resolves a request value against the sort allow-list.
// An unrecognized field is a caller error, not silently ignored.
func ParseSortField(s string) (SortField, error) {
	field, ok := sortFieldNames[strings.ToUpper(s)]
	if !ok {
		return 0, fmt.Errorf("sort field %q is not allowed", s)
	}
	return field, nil
}

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection resolves a request value to a direction. Empty input
// defaults to ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(s) {
	case "", "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	default:
		return "", fmt.Errorf("sort direction %q must be ASC or DESC", s)
	}
}

// Sort pairs an allowed field with a direction.
type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort lists newest orders first.
func DefaultSort() Sort {
	return Sort{Field: SortRegisteredAt, Direction: Desc}
}

// orderClause renders the ORDER BY expression for the parent query. The
// order number is appended as a tie-breaker so the row numbering, and with
// it every page boundary, is deterministic.
func (s Sort) orderClause() (string, error) {
	column, ok := sortFieldColumns[s.Field]
	if !ok {
		return "", fmt.Errorf("sort field %d is not allowed", int(s.Field))
	}
	direction := s.Direction
	if direction != Asc && direction != Desc {
		return "", fmt.Errorf("sort direction %q must be ASC or DESC", direction)
	}

	clause := fmt.Sprintf("%s %s", orderColumn(column), direction)
	if column != ParentKeyColumn {
		clause += fmt.Sprintf(", %s %s", orderColumn(ParentKeyColumn), direction)
	}
	return clause, nil
}
