// Package serverapp wires configuration, the database handle, the order
// repository, and the HTTP surface into a runnable server.
package serverapp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderview/internal/config"
	"orderview/internal/dbexec"
	"orderview/internal/httpapi"
	"orderview/internal/logging"
	"orderview/internal/middleware"
	"orderview/internal/observability"
	"orderview/internal/orders"
	"orderview/internal/planner"

	"github.com/XSAM/otelsql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// App is the assembled server.
type App struct {
	cfg       *config.Config
	logger    *logging.Logger
	db        *sql.DB
	server    *http.Server
	providers *observability.Providers
}

// New opens the database and builds the HTTP server. The column mapping is
// validated here, before the server accepts any traffic.
func New(cfg *config.Config, logger *logging.Logger, providers *observability.Providers) (*App, error) {
	db, err := otelsql.Open("mysql", cfg.Database.DSN(),
		otelsql.WithAttributes(semconv.DBSystemMySQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	mapping := planner.DefaultMapping()
	repo := orders.NewRepository(dbexec.NewStandardExecutor(db), mapping, cfg.Pagination.DefaultLimit)

	mux := http.NewServeMux()
	httpapi.NewHandler(repo).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthHandler(db))

	var handler http.Handler = mux
	handler = middleware.Logging(logger)(handler)
	handler = otelhttp.NewHandler(handler, "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	return &App{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		providers: providers,
		server: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Start runs the HTTP server and reports its terminal error on the
// returned channel.
func (a *App) Start() <-chan error {
	errs := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", a.cfg.Server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()
	return errs
}

// Shutdown stops the HTTP server, closes the database, and flushes
// telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := a.server.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.providers.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
