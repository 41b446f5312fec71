// Package httpapi exposes the order page service over a thin JSON API.
// Request validation that must be rejected (unknown sort fields and
// directions) happens here, before any query planning.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"orderview/internal/logging"
	"orderview/internal/orders"
	"orderview/internal/planner"
)

// PageFinder serves one page of order aggregates.
type PageFinder interface {
	FindPage(ctx context.Context, q orders.Query) (*orders.Page, error)
}

// Handler routes order page requests to a PageFinder.
type Handler struct {
	finder PageFinder
}

// NewHandler creates the API handler.
func NewHandler(finder PageFinder) *Handler {
	return &Handler{finder: finder}
}

// Register mounts the API routes on a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/orders", h.handleOrders)
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.finder.FindPage(r.Context(), query)
	if err != nil {
		logging.FromContext(r.Context()).Error("order page query failed",
			slog.String("error", err.Error()),
		)
		// The request ID lets an operator correlate the masked response
		// with the server-side error log.
		body := map[string]string{"error": "query failed"}
		if requestID := logging.GetRequestID(r.Context()); requestID != "" {
			body["requestId"] = requestID
		}
		writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// parseQuery maps request parameters onto a core query. Non-positive or
// unparsable page and limit values are left at zero for the pagination
// planner to default; sort inputs outside the allow-list are rejected.
func parseQuery(r *http.Request) (orders.Query, error) {
	params := r.URL.Query()

	sort := planner.DefaultSort()
	if sortBy := params.Get("sortBy"); sortBy != "" {
		field, err := planner.ParseSortField(sortBy)
		if err != nil {
			return orders.Query{}, err
		}
		sort.Field = field
		sort.Direction = planner.Asc
	}
	if sortOrder := params.Get("sortOrder"); sortOrder != "" {
		direction, err := planner.ParseDirection(sortOrder)
		if err != nil {
			return orders.Query{}, err
		}
		sort.Direction = direction
	}

	return orders.Query{
		Filter: planner.Filter{
			StoreCode: params.Get("store"),
			Search:    params.Get("search"),
		},
		Sort:  sort,
		Page:  intParam(params.Get("page")),
		Limit: intParam(params.Get("limit")),
	}, nil
}

func intParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
