// Package orders reconstructs order aggregates from flat join rows and
// serves paged, filtered, sorted views of them.
package orders

import (
	"time"

	"orderview/internal/pagination"
	"orderview/internal/planner"
)

// Order is the aggregate root: one order record with its three child
// collections. Children belong to exactly one order and are rebuilt from
// source rows on every request; there is no write path in this package.
type Order struct {
	OrderNumber   string    `json:"orderNumber"`
	StoreCode     string    `json:"storeCode"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Currency      string    `json:"currency"`
	NetAmount     float64   `json:"netAmount"`
	TaxAmount     float64   `json:"taxAmount"`
	GrossAmount   float64   `json:"grossAmount"`
	Status        string    `json:"status"`
	RegisteredAt  time.Time `json:"registeredAt"`

	LineItems    []LineItem    `json:"lineItems"`
	Invoices     []Invoice     `json:"invoices"`
	Transactions []Transaction `json:"transactions"`
}

// LineItem is one ordered article. ItemNumber is its natural key within
// the order.
type LineItem struct {
	ItemNumber  int     `json:"itemNumber"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Invoice is one billing document issued for the order.
type Invoice struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	IssuedAt      time.Time `json:"issuedAt"`
	Amount        float64   `json:"amount"`
}

// Transaction is one payment transaction. ApprovalCode is its natural key
// within the order.
type Transaction struct {
	ApprovalCode string    `json:"approvalCode"`
	Method       string    `json:"method"`
	Amount       float64   `json:"amount"`
	ApprovedAt   time.Time `json:"approvedAt"`
}

// Query is a request for one page of order aggregates.
type Query struct {
	Filter planner.Filter
	Sort   planner.Sort
	Page   int
	Limit  int
}

// Page is one page of aggregates plus its derived metadata.
type Page struct {
	Items []Order         `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}
