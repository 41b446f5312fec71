package colmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{Slot: SlotOrder, Field: "orderNumber", Column: "order_number"},
		{Slot: SlotOrder, Field: "storeCode", Column: "store_code"},
		{Slot: SlotLineItem, Field: "itemNumber", Column: "item_number"},
		{Slot: SlotInvoice, Field: "invoiceNumber", Column: "invoice_number"},
		{Slot: SlotInvoice, Field: "amount", Column: "amount"},
		{Slot: SlotTransaction, Field: "amount", Column: "amount"},
	}
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name: "duplicate field in slot",
			entries: []Entry{
				{Slot: SlotOrder, Field: "orderNumber", Column: "order_number"},
				{Slot: SlotOrder, Field: "orderNumber", Column: "other"},
			},
			wantErr: "duplicate field",
		},
		{
			name: "duplicate column in slot",
			entries: []Entry{
				{Slot: SlotInvoice, Field: "a", Column: "amount"},
				{Slot: SlotInvoice, Field: "b", Column: "amount"},
			},
			wantErr: "duplicate column",
		},
		{
			name:    "empty field name",
			entries: []Entry{{Slot: SlotOrder, Field: "", Column: "order_number"}},
			wantErr: "empty field or column",
		},
		{
			name:    "unknown slot",
			entries: []Entry{{Slot: Slot(99), Field: "x", Column: "x"}},
			wantErr: "unknown slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSameFieldAcrossSlots(t *testing.T) {
	// amount maps both to invoices and transactions; that is not a conflict.
	m, err := New(testEntries())
	require.NoError(t, err)

	invAlias, err := m.Alias(SlotInvoice, "amount")
	require.NoError(t, err)
	txAlias, err := m.Alias(SlotTransaction, "amount")
	require.NoError(t, err)
	assert.Equal(t, "invoice_amount", invAlias)
	assert.Equal(t, "transaction_amount", txAlias)
	assert.NotEqual(t, invAlias, txAlias)
}

func TestAlias(t *testing.T) {
	m, err := New(testEntries())
	require.NoError(t, err)

	alias, err := m.Alias(SlotOrder, "orderNumber")
	require.NoError(t, err)
	assert.Equal(t, "order_number", alias, "order fields keep their bare column name")

	alias, err = m.Alias(SlotLineItem, "itemNumber")
	require.NoError(t, err)
	assert.Equal(t, "line_item_item_number", alias)

	_, err = m.Alias(SlotOrder, "unmapped")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no mapping for field "unmapped"`)
}

func TestColumnsAndAliasesPreserveDeclarationOrder(t *testing.T) {
	m, err := New(testEntries())
	require.NoError(t, err)

	assert.Equal(t, []string{"order_number", "store_code"}, m.Columns(SlotOrder))
	assert.Equal(t, []string{"invoice_number", "amount"}, m.Columns(SlotInvoice))
	assert.Equal(t, []string{"invoice_invoice_number", "invoice_amount"}, m.Aliases(SlotInvoice))
}

func TestSelectExprs(t *testing.T) {
	m, err := New(testEntries())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"`invoices`.`invoice_number` AS `invoice_invoice_number`",
		"`invoices`.`amount` AS `invoice_amount`",
	}, m.SelectExprs(SlotInvoice, "invoices"))
}
