package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"docegestao.app/api/spec"
	"docegestao.app/internal/auth"
	"docegestao.app/internal/catalog"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/money"
	"docegestao.app/internal/obs"
	"docegestao.app/internal/sales"
	"docegestao.app/internal/stream"
)

// ReadyProbe checks the service is able to serve (for example, DB ping).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config carries the collaborators the HTTP layer is wired to.
type Config struct {
	Ready   ReadyProbe
	Version string
	Catalog catalog.Service
	Ledger  ledger.Service
	Sales   sales.Log
	Auth    *auth.Service
	Hub     *stream.Hub
	// Finalizer, when set, runs the whole sale sequence transactionally
	// instead of the step-by-step processor.
	Finalizer SaleFinalizer
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	catalog   catalog.Service
	ledger    ledger.Service
	saleLog   sales.Log
	processor *sales.Processor
	finalizer SaleFinalizer
	auth      *auth.Service
	hub       *stream.Hub
}

func New(cfg Config) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: cfg.Ready,
		version:    cfg.Version,
		catalog:    cfg.Catalog,
		ledger:     cfg.Ledger,
		saleLog:    cfg.Sales,
		processor:  sales.NewProcessor(cfg.Catalog, cfg.Ledger, cfg.Sales),
		finalizer:  cfg.Finalizer,
		auth:       cfg.Auth,
		hub:        cfg.Hub,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// OpenAPI YAML
	a.mux.HandleFunc("/openapi.yaml", a.OpenAPISpec)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// identity
	a.mux.HandleFunc("/v1/auth/register", a.handleRegister)
	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)

	// catalog
	a.mux.HandleFunc("/v1/products", a.handleProductsCollection)
	a.mux.HandleFunc("/v1/products/", a.handleProductResource)

	// customer ledger
	a.mux.HandleFunc("/v1/customers", a.handleCustomersCollection)
	a.mux.HandleFunc("/v1/customers/", a.handleCustomerResource)

	// sales
	a.mux.HandleFunc("/v1/sales", a.handleSales)

	// read side
	a.mux.HandleFunc("/v1/dashboard", a.handleDashboard)
	a.mux.HandleFunc("/v1/stream", a.Stream)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = RateLimit(h, 40, 20)
	h = MaxBodyBytes(h, 1<<20)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "docegestao-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "docegestao-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

func (a *API) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}

// publish pushes the fresh collection state to live subscribers. Best effort:
// a failed read simply skips the snapshot.
func (a *API) publish(ctx context.Context, owner string, coll stream.Collection) {
	if a.hub == nil {
		return
	}
	var (
		records any
		err     error
	)
	switch coll {
	case stream.Products:
		records, err = a.catalog.List(ctx, owner)
	case stream.Customers:
		records, err = a.ledger.List(ctx, owner)
	case stream.Sales:
		records, err = a.saleLog.List(ctx, owner)
	default:
		return
	}
	if err != nil {
		return
	}
	a.hub.Publish(owner, coll, records)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleDomainError maps service errors to HTTP status codes.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var saleErr *sales.SaleError
	if errors.As(err, &saleErr) {
		// Report the failed stage; the inner error decides the status.
		code := http.StatusInternalServerError
		switch {
		case errors.Is(saleErr.Err, sales.ErrEmptyCart):
			code = http.StatusBadRequest
		case errors.Is(saleErr.Err, catalog.ErrNotFound), errors.Is(saleErr.Err, ledger.ErrNotFound):
			code = http.StatusNotFound
		}
		writeError(w, r, code, saleErr.Error())
		return
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, ledger.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrInvalidName),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, sales.ErrEmptyCart),
		errors.Is(err, sales.ErrInvalidAmount):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
