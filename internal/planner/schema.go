package planner

import "orderview/internal/colmap"

// Source tables of the order aggregate.
const (
	TableOrders       = "orders"
	TableLineItems    = "order_items"
	TableInvoices     = "invoices"
	TableTransactions = "payments"
)

// ParentKeyColumn is the business key joining every child table to its order.
const ParentKeyColumn = "order_number"

// ParentKeyField is the logical field carrying the parent key.
const ParentKeyField = "orderNumber"

// ChildTable describes one child collection of the order aggregate.
// NaturalKeyField doubles as the left-join discriminator: a NULL value in a
// joined row means the parent had no row in this table.
type ChildTable struct {
	Slot            colmap.Slot
	Table           string
	NaturalKeyField string
}

// ChildTables returns the three child collections in join order.
func ChildTables() []ChildTable {
	return []ChildTable{
		{Slot: colmap.SlotLineItem, Table: TableLineItems, NaturalKeyField: "itemNumber"},
		{Slot: colmap.SlotInvoice, Table: TableInvoices, NaturalKeyField: "invoiceNumber"},
		{Slot: colmap.SlotTransaction, Table: TableTransactions, NaturalKeyField: "approvalCode"},
	}
}

// DefaultMapping is the column mapping table for the order schema. It is
// immutable process-wide configuration; MustNew validates it at startup.
func DefaultMapping() *colmap.Mapping {
	return colmap.MustNew([]colmap.Entry{
		{Slot: colmap.SlotOrder, Field: "orderNumber", Column: "order_number"},
		{Slot: colmap.SlotOrder, Field: "storeCode", Column: "store_code"},
		{Slot: colmap.SlotOrder, Field: "customerName", Column: "customer_name"},
		{Slot: colmap.SlotOrder, Field: "customerEmail", Column: "customer_email"},
		{Slot: colmap.SlotOrder, Field: "currency", Column: "currency"},
		{Slot: colmap.SlotOrder, Field: "netAmount", Column: "net_amount"},
		{Slot: colmap.SlotOrder, Field: "taxAmount", Column: "tax_amount"},
		{Slot: colmap.SlotOrder, Field: "grossAmount", Column: "gross_amount"},
		{Slot: colmap.SlotOrder, Field: "status", Column: "status"},
		{Slot: colmap.SlotOrder, Field: "registeredAt", Column: "registered_at"},

		{Slot: colmap.SlotLineItem, Field: "itemNumber", Column: "item_number"},
		{Slot: colmap.SlotLineItem, Field: "sku", Column: "sku"},
		{Slot: colmap.SlotLineItem, Field: "description", Column: "description"},
		{Slot: colmap.SlotLineItem, Field: "quantity", Column: "quantity"},
		{Slot: colmap.SlotLineItem, Field: "unitPrice", Column: "unit_price"},
		{Slot: colmap.SlotLineItem, Field: "totalPrice", Column: "total_price"},

		{Slot: colmap.SlotInvoice, Field: "invoiceNumber", Column: "invoice_number"},
		{Slot: colmap.SlotInvoice, Field: "issuedAt", Column: "issued_at"},
		{Slot: colmap.SlotInvoice, Field: "amount", Column: "amount"},

		{Slot: colmap.SlotTransaction, Field: "approvalCode", Column: "approval_code"},
		{Slot: colmap.SlotTransaction, Field: "method", Column: "method"},
		{Slot: colmap.SlotTransaction, Field: "amount", Column: "amount"},
		{Slot: colmap.SlotTransaction, Field: "approvedAt", Column: "approved_at"},
	})
}
