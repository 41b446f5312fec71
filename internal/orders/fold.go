package orders

import (
	"fmt"
	"strconv"
	"time"

	"orderview/internal/colmap"
	"orderview/internal/dbexec"
	"orderview/internal/planner"
)

// Folder folds flat join rows into order aggregates. Repeated child rows
// produced by multi-way join fan-out are deduplicated by natural key;
// collections keep the order in which their first representative row was
// encountered. A missing column mapping is a configuration error and fails
// the fold rather than dropping data.
type Folder struct {
	mapping *colmap.Mapping
}

// NewFolder creates a folder over a validated column mapping.
func NewFolder(m *colmap.Mapping) *Folder {
	return &Folder{mapping: m}
}

// Fold is the two-phase form: aggregates are seeded from parentRows in
// their sorted order, then child rows are streamed in. Related rows whose
// parent key was not seeded belong to a different page and are skipped.
func (f *Folder) Fold(parentRows, relatedRows []dbexec.Row) ([]Order, error) {
	state := f.newState()
	for _, row := range parentRows {
		if _, err := state.seed(row); err != nil {
			return nil, err
		}
	}
	for _, row := range relatedRows {
		if err := state.fold(row, false); err != nil {
			return nil, err
		}
	}
	return state.result(), nil
}

// FoldJoined is the one-pass form for a single query that already carries
// parent and child columns: each parent is seeded lazily on its first row,
// in stream order, then folded with the same logic as Fold.
func (f *Folder) FoldJoined(rows []dbexec.Row) ([]Order, error) {
	state := f.newState()
	for _, row := range rows {
		if err := state.fold(row, true); err != nil {
			return nil, err
		}
	}
	return state.result(), nil
}

type foldState struct {
	folder *Folder
	keys   []string
	byKey  map[string]*Order
	seen   map[string]map[colmap.Slot]map[string]struct{}
}

func (f *Folder) newState() *foldState {
	return &foldState{
		folder: f,
		byKey:  make(map[string]*Order),
		seen:   make(map[string]map[colmap.Slot]map[string]struct{}),
	}
}

func (s *foldState) parentKey(row dbexec.Row) (string, error) {
	alias, err := s.folder.mapping.Alias(colmap.SlotOrder, planner.ParentKeyField)
	if err != nil {
		return "", err
	}
	return asString(row[alias]), nil
}

func (s *foldState) seed(row dbexec.Row) (*Order, error) {
	key, err := s.parentKey(row)
	if err != nil {
		return nil, err
	}
	if existing, ok := s.byKey[key]; ok {
		return existing, nil
	}

	r := rowReader{mapping: s.folder.mapping, row: row, slot: colmap.SlotOrder}
	order := &Order{
		OrderNumber:   r.str("orderNumber"),
		StoreCode:     r.str("storeCode"),
		CustomerName:  r.str("customerName"),
		CustomerEmail: r.str("customerEmail"),
		Currency:      r.str("currency"),
		NetAmount:     r.float("netAmount"),
		TaxAmount:     r.float("taxAmount"),
		GrossAmount:   r.float("grossAmount"),
		Status:        r.str("status"),
		RegisteredAt:  r.time("registeredAt"),
		LineItems:     []LineItem{},
		Invoices:      []Invoice{},
		Transactions:  []Transaction{},
	}
	if r.err != nil {
		return nil, r.err
	}

	s.keys = append(s.keys, key)
	s.byKey[key] = order
	s.seen[key] = make(map[colmap.Slot]map[string]struct{})
	return order, nil
}

func (s *foldState) fold(row dbexec.Row, seedLazily bool) error {
	key, err := s.parentKey(row)
	if err != nil {
		return err
	}

	order, ok := s.byKey[key]
	if !ok {
		if !seedLazily {
			// Not part of the seeded page; never let it leak in.
			return nil
		}
		order, err = s.seed(row)
		if err != nil {
			return err
		}
	}

	for _, child := range planner.ChildTables() {
		if err := s.appendChild(order, key, child, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *foldState) appendChild(order *Order, key string, child planner.ChildTable, row dbexec.Row) error {
	keyAlias, err := s.folder.mapping.Alias(child.Slot, child.NaturalKeyField)
	if err != nil {
		return err
	}

	raw := row[keyAlias]
	if raw == nil {
		// NULL discriminator: the left join matched no row in this table.
		return nil
	}

	naturalKey := asString(raw)
	seenForSlot := s.seen[key][child.Slot]
	if seenForSlot == nil {
		seenForSlot = make(map[string]struct{})
		s.seen[key][child.Slot] = seenForSlot
	}
	if _, dup := seenForSlot[naturalKey]; dup {
		return nil
	}

	r := rowReader{mapping: s.folder.mapping, row: row, slot: child.Slot}
	switch child.Slot {
	case colmap.SlotLineItem:
		order.LineItems = append(order.LineItems, LineItem{
			ItemNumber:  r.intval("itemNumber"),
			SKU:         r.str("sku"),
			Description: r.str("description"),
			Quantity:    r.intval("quantity"),
			UnitPrice:   r.float("unitPrice"),
			TotalPrice:  r.float("totalPrice"),
		})
	case colmap.SlotInvoice:
		order.Invoices = append(order.Invoices, Invoice{
			InvoiceNumber: r.str("invoiceNumber"),
			IssuedAt:      r.time("issuedAt"),
			Amount:        r.float("amount"),
		})
	case colmap.SlotTransaction:
		order.Transactions = append(order.Transactions, Transaction{
			ApprovalCode: r.str("approvalCode"),
			Method:       r.str("method"),
			Amount:       r.float("amount"),
			ApprovedAt:   r.time("approvedAt"),
		})
	default:
		return fmt.Errorf("orders: unexpected child slot %s", child.Slot)
	}
	if r.err != nil {
		return r.err
	}

	seenForSlot[naturalKey] = struct{}{}
	return nil
}

func (s *foldState) result() []Order {
	out := make([]Order, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, *s.byKey[key])
	}
	return out
}

// rowReader reads mapped fields out of one row, carrying the first mapping
// error instead of forcing a check per field.
type rowReader struct {
	mapping *colmap.Mapping
	row     dbexec.Row
	slot    colmap.Slot
	err     error
}

func (r *rowReader) value(field string) any {
	if r.err != nil {
		return nil
	}
	alias, err := r.mapping.Alias(r.slot, field)
	if err != nil {
		r.err = err
		return nil
	}
	return r.row[alias]
}

func (r *rowReader) str(field string) string {
	return asString(r.value(field))
}

func (r *rowReader) intval(field string) int {
	return asInt(r.value(field))
}

func (r *rowReader) float(field string) float64 {
	return asFloat(r.value(field))
}

func (r *rowReader) time(field string) time.Time {
	return asTime(r.value(field))
}

func asString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func asInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	case []byte:
		n, _ := strconv.Atoi(string(v))
		return n
	default:
		return 0
	}
}

func asFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		// DECIMAL columns arrive as strings from the driver.
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	default:
		return 0
	}
}

func asTime(val any) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
