package orders

import (
	"context"
	"log/slog"
	"time"

	"orderview/internal/colmap"
	"orderview/internal/dbexec"
	"orderview/internal/logging"
	"orderview/internal/observability"
	"orderview/internal/pagination"
	"orderview/internal/planner"
)

// Repository serves paged order aggregates from the relational store.
// Each page request issues at most two sequential queries: a count plus
// windowed parent select, then one related-row fetch for the resolved keys.
// Consistency between the two queries is per-request, not transactional.
type Repository struct {
	exec         dbexec.QueryExecutor
	mapping      *colmap.Mapping
	folder       *Folder
	defaultLimit int
}

// NewRepository creates a repository over an executor and a validated
// column mapping. A non-positive defaultLimit falls back to
// pagination.DefaultLimit.
func NewRepository(exec dbexec.QueryExecutor, mapping *colmap.Mapping, defaultLimit int) *Repository {
	return &Repository{
		exec:         exec,
		mapping:      mapping,
		folder:       NewFolder(mapping),
		defaultLimit: defaultLimit,
	}
}

// FindPage returns one page of order aggregates plus paging metadata.
// Store errors propagate unchanged; an empty result is a valid empty page.
func (r *Repository) FindPage(ctx context.Context, q Query) (*Page, error) {
	logger := logging.FromContext(ctx)
	req := pagination.PlanWithDefault(q.Page, q.Limit, r.defaultLimit)

	total, err := r.count(ctx, q.Filter)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &Page{Items: []Order{}, Meta: pagination.NewMeta(0, req)}, nil
	}

	parentRows, err := r.fetchWindow(ctx, q.Filter, q.Sort, req)
	if err != nil {
		return nil, err
	}
	if len(parentRows) == 0 {
		// Page beyond the data; the total still reflects the filter.
		return &Page{Items: []Order{}, Meta: pagination.NewMeta(total, req)}, nil
	}

	keys, err := r.parentKeys(parentRows)
	if err != nil {
		return nil, err
	}

	relatedRows, err := r.fetchRelated(ctx, keys, q.Filter)
	if err != nil {
		return nil, err
	}

	items, err := r.folder.Fold(parentRows, relatedRows)
	if err != nil {
		return nil, err
	}

	logger.Debug("order page assembled",
		slog.Int("total_items", total),
		slog.Int("page", req.Page),
		slog.Int("parents", len(parentRows)),
		slog.Int("related_rows", len(relatedRows)),
	)
	observability.PagesServed.Inc()

	return &Page{Items: items, Meta: pagination.NewMeta(total, req)}, nil
}

func (r *Repository) count(ctx context.Context, f planner.Filter) (int, error) {
	plan, err := planner.PlanCount(f)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	rows, err := r.exec.QueryContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	observability.ObserveStoreQuery("count", time.Since(start))
	return count, nil
}

func (r *Repository) fetchWindow(ctx context.Context, f planner.Filter, s planner.Sort, req pagination.Request) ([]dbexec.Row, error) {
	plan, err := planner.PlanWindow(r.mapping, f, s, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := r.exec.QueryContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	scanned, err := dbexec.ScanRows(rows, r.mapping.Aliases(colmap.SlotOrder))
	if err != nil {
		return nil, err
	}
	observability.ObserveStoreQuery("window", time.Since(start))
	return scanned, nil
}

func (r *Repository) fetchRelated(ctx context.Context, keys []string, f planner.Filter) ([]dbexec.Row, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	plan, err := planner.PlanRelated(r.mapping, keys, f)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := r.exec.QueryContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	aliases := r.mapping.Aliases(colmap.SlotOrder)
	for _, child := range planner.ChildTables() {
		aliases = append(aliases, r.mapping.Aliases(child.Slot)...)
	}

	scanned, err := dbexec.ScanRows(rows, aliases)
	if err != nil {
		return nil, err
	}
	observability.ObserveStoreQuery("related", time.Since(start))
	return scanned, nil
}

// parentKeys extracts the distinct parent keys of a window in row order.
func (r *Repository) parentKeys(parentRows []dbexec.Row) ([]string, error) {
	alias, err := r.mapping.Alias(colmap.SlotOrder, planner.ParentKeyField)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(parentRows))
	keys := make([]string, 0, len(parentRows))
	for _, row := range parentRows {
		key := asString(row[alias])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}
