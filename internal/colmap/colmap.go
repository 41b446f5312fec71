// Package colmap declares the static mapping between logical aggregate
// fields and the source columns they are read from. The mapping is built
// once at startup, validated, and then treated as immutable configuration.
package colmap

import (
	"fmt"

	"orderview/internal/sqlutil"
)

// Slot identifies where a mapped field lands in the order aggregate:
// either on the order itself or in one of its child collections.
type Slot int

const (
	SlotOrder Slot = iota
	SlotLineItem
	SlotInvoice
	SlotTransaction
)

var slotNames = map[Slot]string{
	SlotOrder:       "order",
	SlotLineItem:    "line_item",
	SlotInvoice:     "invoice",
	SlotTransaction: "transaction",
}

// String returns the slot's name as used in row aliases and error messages.
func (s Slot) String() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// Entry maps one logical field to its source column within a slot.
type Entry struct {
	Slot   Slot
	Field  string
	Column string
}

type slotField struct {
	slot  Slot
	field string
}

// Mapping is the validated, immutable column mapping table.
type Mapping struct {
	entries []Entry
	byField map[slotField]Entry
}

// New validates the entries and builds a Mapping. Empty names, an unknown
// slot, a duplicate field within a slot, or a duplicate column within a
// slot are all configuration errors.
func New(entries []Entry) (*Mapping, error) {
	byField := make(map[slotField]Entry, len(entries))
	seenColumns := make(map[slotField]struct{}, len(entries))

	for _, e := range entries {
		if _, ok := slotNames[e.Slot]; !ok {
			return nil, fmt.Errorf("colmap: unknown slot %d for field %q", int(e.Slot), e.Field)
		}
		if e.Field == "" || e.Column == "" {
			return nil, fmt.Errorf("colmap: entry for slot %s has empty field or column", e.Slot)
		}
		fieldKey := slotField{e.Slot, e.Field}
		if _, ok := byField[fieldKey]; ok {
			return nil, fmt.Errorf("colmap: duplicate field %q in slot %s", e.Field, e.Slot)
		}
		columnKey := slotField{e.Slot, e.Column}
		if _, ok := seenColumns[columnKey]; ok {
			return nil, fmt.Errorf("colmap: duplicate column %q in slot %s", e.Column, e.Slot)
		}
		byField[fieldKey] = e
		seenColumns[columnKey] = struct{}{}
	}

	return &Mapping{
		entries: append([]Entry(nil), entries...),
		byField: byField,
	}, nil
}

// MustNew is New for package-level mapping declarations.
func MustNew(entries []Entry) *Mapping {
	m, err := New(entries)
	if err != nil {
		panic(err)
	}
	return m
}

// Alias returns the row key under which the field's value is scanned.
// Order fields keep their bare column name; child fields are prefixed with
// their slot name so that columns with the same name in different child
// tables never collide in a joined row.
func (m *Mapping) Alias(slot Slot, field string) (string, error) {
	e, ok := m.byField[slotField{slot, field}]
	if !ok {
		return "", fmt.Errorf("colmap: no mapping for field %q in slot %s", field, slot)
	}
	return e.alias(), nil
}

func (e Entry) alias() string {
	if e.Slot == SlotOrder {
		return e.Column
	}
	return e.Slot.String() + "_" + e.Column
}

// Columns returns the source column names of a slot in declaration order.
func (m *Mapping) Columns(slot Slot) []string {
	var cols []string
	for _, e := range m.entries {
		if e.Slot == slot {
			cols = append(cols, e.Column)
		}
	}
	return cols
}

// Aliases returns the row keys of a slot in declaration order.
func (m *Mapping) Aliases(slot Slot) []string {
	var aliases []string
	for _, e := range m.entries {
		if e.Slot == slot {
			aliases = append(aliases, e.alias())
		}
	}
	return aliases
}

// SelectExprs returns quoted `table.column AS alias` expressions for a slot,
// ready to be passed to a SELECT builder.
func (m *Mapping) SelectExprs(slot Slot, table string) []string {
	var exprs []string
	quotedTable := sqlutil.QuoteIdentifier(table)
	for _, e := range m.entries {
		if e.Slot != slot {
			continue
		}
		exprs = append(exprs, fmt.Sprintf(
			"%s.%s AS %s",
			quotedTable,
			sqlutil.QuoteIdentifier(e.Column),
			sqlutil.QuoteIdentifier(e.alias()),
		))
	}
	return exprs
}
