package orders

import (
	"testing"
	"time"

	"orderview/internal/colmap"
	"orderview/internal/dbexec"
	"orderview/internal/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registered = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func parentRow(number, store string) dbexec.Row {
	return dbexec.Row{
		"order_number":   number,
		"store_code":     store,
		"customer_name":  "Jan Kowalski",
		"customer_email": "jan@example.com",
		"currency":       "PLN",
		"net_amount":     "100.00",
		"tax_amount":     "23.00",
		"gross_amount":   "123.00",
		"status":         "COMPLETED",
		"registered_at":  registered,
	}
}

func itemCols(number int, sku string) dbexec.Row {
	return dbexec.Row{
		"line_item_item_number": int64(number),
		"line_item_sku":         sku,
		"line_item_description": "article " + sku,
		"line_item_quantity":    int64(1),
		"line_item_unit_price":  "10.00",
		"line_item_total_price": "10.00",
	}
}

func invoiceCols(number string) dbexec.Row {
	return dbexec.Row{
		"invoice_invoice_number": number,
		"invoice_issued_at":      registered,
		"invoice_amount":         "123.00",
	}
}

func transactionCols(approval string) dbexec.Row {
	return dbexec.Row{
		"transaction_approval_code": approval,
		"transaction_method":        "CARD",
		"transaction_amount":        "123.00",
		"transaction_approved_at":   registered,
	}
}

// joinedRow merges parent and child column sets into one flat row, with
// nils for child kinds not present, mirroring left-join output.
func joinedRow(parts ...dbexec.Row) dbexec.Row {
	row := dbexec.Row{
		"line_item_item_number":     nil,
		"line_item_sku":             nil,
		"line_item_description":     nil,
		"line_item_quantity":        nil,
		"line_item_unit_price":      nil,
		"line_item_total_price":     nil,
		"invoice_invoice_number":    nil,
		"invoice_issued_at":         nil,
		"invoice_amount":            nil,
		"transaction_approval_code": nil,
		"transaction_method":        nil,
		"transaction_amount":        nil,
		"transaction_approved_at":   nil,
	}
	for _, part := range parts {
		for k, v := range part {
			row[k] = v
		}
	}
	return row
}

func TestFoldDeduplicatesJoinFanOut(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	parent := parentRow("ORD-1", "PL08")

	// 3 line items x 2 transactions x 1 invoice join to 6 raw rows.
	items := []dbexec.Row{itemCols(10, "A"), itemCols(20, "B"), itemCols(30, "C")}
	txs := []dbexec.Row{transactionCols("APPR-1"), transactionCols("APPR-2")}
	inv := invoiceCols("INV-1")

	var related []dbexec.Row
	for _, item := range items {
		for _, tx := range txs {
			related = append(related, joinedRow(parent, item, inv, tx))
		}
	}
	require.Len(t, related, 6)

	result, err := folder.Fold([]dbexec.Row{parent}, related)
	require.NoError(t, err)
	require.Len(t, result, 1)

	order := result[0]
	assert.Len(t, order.LineItems, 3)
	assert.Len(t, order.Invoices, 1)
	assert.Len(t, order.Transactions, 2)

	assert.Equal(t, []int{10, 20, 30}, []int{
		order.LineItems[0].ItemNumber,
		order.LineItems[1].ItemNumber,
		order.LineItems[2].ItemNumber,
	})
	assert.Equal(t, "APPR-1", order.Transactions[0].ApprovalCode)
	assert.Equal(t, "APPR-2", order.Transactions[1].ApprovalCode)
}

func TestFoldParentFields(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	result, err := folder.Fold([]dbexec.Row{parentRow("ORD-1", "PL08")}, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)

	order := result[0]
	assert.Equal(t, "ORD-1", order.OrderNumber)
	assert.Equal(t, "PL08", order.StoreCode)
	assert.Equal(t, "Jan Kowalski", order.CustomerName)
	assert.Equal(t, "jan@example.com", order.CustomerEmail)
	assert.Equal(t, "PLN", order.Currency)
	assert.Equal(t, 100.0, order.NetAmount)
	assert.Equal(t, 23.0, order.TaxAmount)
	assert.Equal(t, 123.0, order.GrossAmount)
	assert.Equal(t, "COMPLETED", order.Status)
	assert.Equal(t, registered, order.RegisteredAt)
}

func TestFoldChildlessOrderHasEmptyCollections(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	parent := parentRow("ORD-1", "PL08")

	// A childless parent still yields one all-null joined row.
	result, err := folder.Fold([]dbexec.Row{parent}, []dbexec.Row{joinedRow(parent)})
	require.NoError(t, err)
	require.Len(t, result, 1)

	order := result[0]
	assert.NotNil(t, order.LineItems)
	assert.NotNil(t, order.Invoices)
	assert.NotNil(t, order.Transactions)
	assert.Empty(t, order.LineItems)
	assert.Empty(t, order.Invoices)
	assert.Empty(t, order.Transactions)
}

func TestFoldSkipsRowsFromOtherPages(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	parent := parentRow("ORD-1", "PL08")
	foreign := parentRow("ORD-9", "PL08")

	related := []dbexec.Row{
		joinedRow(parent, itemCols(10, "A")),
		joinedRow(foreign, itemCols(10, "Z")),
	}

	result, err := folder.Fold([]dbexec.Row{parent}, related)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ORD-1", result[0].OrderNumber)
	require.Len(t, result[0].LineItems, 1)
	assert.Equal(t, "A", result[0].LineItems[0].SKU)
}

func TestFoldPreservesSeedOrder(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	parents := []dbexec.Row{
		parentRow("ORD-3", "PL08"),
		parentRow("ORD-1", "PL08"),
		parentRow("ORD-2", "PL08"),
	}

	result, err := folder.Fold(parents, nil)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "ORD-3", result[0].OrderNumber)
	assert.Equal(t, "ORD-1", result[1].OrderNumber)
	assert.Equal(t, "ORD-2", result[2].OrderNumber)
}

func TestFoldJoinedSeedsLazilyInStreamOrder(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	first := parentRow("ORD-2", "PL08")
	second := parentRow("ORD-1", "PL08")

	rows := []dbexec.Row{
		joinedRow(first, itemCols(10, "A"), transactionCols("APPR-1")),
		joinedRow(first, itemCols(10, "A"), transactionCols("APPR-2")),
		joinedRow(second, invoiceCols("INV-7")),
	}

	result, err := folder.FoldJoined(rows)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "ORD-2", result[0].OrderNumber)
	assert.Len(t, result[0].LineItems, 1, "repeated item must fold to one")
	assert.Len(t, result[0].Transactions, 2)

	assert.Equal(t, "ORD-1", result[1].OrderNumber)
	assert.Len(t, result[1].Invoices, 1)
	assert.Empty(t, result[1].LineItems)
}

func TestFoldReadsIntegerColumnVariants(t *testing.T) {
	folder := NewFolder(planner.DefaultMapping())
	parent := parentRow("ORD-1", "PL08")

	variants := []any{int(10), int8(10), int16(10), int32(10), int64(10),
		uint(10), uint8(10), uint16(10), uint32(10), uint64(10), "10"}
	for _, v := range variants {
		item := itemCols(10, "A")
		item["line_item_item_number"] = v
		item["line_item_quantity"] = v

		result, err := folder.Fold([]dbexec.Row{parent}, []dbexec.Row{joinedRow(parent, item)})
		require.NoError(t, err)
		require.Len(t, result[0].LineItems, 1, "value %T", v)
		assert.Equal(t, 10, result[0].LineItems[0].ItemNumber, "value %T", v)
		assert.Equal(t, 10, result[0].LineItems[0].Quantity, "value %T", v)
	}
}

func TestFoldMissingMappingIsFatal(t *testing.T) {
	// A mapping that lacks parent fields the folder needs.
	partial, err := colmap.New([]colmap.Entry{
		{Slot: colmap.SlotOrder, Field: "orderNumber", Column: "order_number"},
	})
	require.NoError(t, err)

	folder := NewFolder(partial)
	_, err = folder.Fold([]dbexec.Row{parentRow("ORD-1", "PL08")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mapping")
}
