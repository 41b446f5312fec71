package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
	}{
		{"REGISTERED_AT", SortRegisteredAt},
		{"ORDER_NUMBER", SortOrderNumber},
		{"STORE", SortStore},
		{"store", SortStore}, // case-insensitive
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, err := ParseSortField(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, field)
		})
	}
}

func TestParseSortFieldRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "CUSTOMER", "registered_at; DROP TABLE orders"} {
		_, err := ParseSortField(input)
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "not allowed")
	}
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, dir)

	dir, err = ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, dir)

	_, err = ParseDirection("sideways")
	require.Error(t, err)
}
