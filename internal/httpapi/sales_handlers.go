package httpapi

import (
	"context"
	"net/http"

	"docegestao.app/internal/audit"
	"docegestao.app/internal/obs"
	"docegestao.app/internal/sales"
	"docegestao.app/internal/stream"
)

// SaleFinalizer is implemented by storage backends that can run the whole
// sale sequence in one transaction. When available it replaces the
// step-by-step processor.
type SaleFinalizer interface {
	FinalizeSale(ctx context.Context, owner string, cart *sales.Cart, customerID string) (sales.Record, error)
}

func (a *API) handleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listSales(w, r)
	case http.MethodPost:
		a.finalizeSale(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listSales(w http.ResponseWriter, r *http.Request) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	records, err := a.saleLog.List(r.Context(), acct)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sales": records})
}

func (a *API) finalizeSale(w http.ResponseWriter, r *http.Request) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	var req struct {
		CustomerID string `json:"customer_id"`
		Items      []struct {
			ProductID string `json:"product_id"`
			Qty       int    `json:"qty"`
		} `json:"items"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Build the cart from current catalog snapshots: the price charged is
	// the price at finalize-time.
	cart := &sales.Cart{}
	for _, item := range req.Items {
		product, err := a.catalog.Get(r.Context(), acct, item.ProductID)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		cart.Add(product.ID, product.Name, product.Price, item.Qty)
	}

	var (
		rec sales.Record
		err error
	)
	if a.finalizer != nil {
		rec, err = a.finalizer.FinalizeSale(r.Context(), acct, cart, req.CustomerID)
	} else {
		rec, err = a.processor.Finalize(r.Context(), acct, cart, req.CustomerID)
	}
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	cart.Clear()

	obs.CountSale()
	_ = audit.LogEvent(r.Context(), "sale.finalized", map[string]any{
		"sale_id":     rec.ID,
		"customer_id": rec.CustomerID,
		"total":       rec.Total.Cents(),
		"items":       len(rec.Items),
	})
	a.publish(r.Context(), acct, stream.Products)
	a.publish(r.Context(), acct, stream.Customers)
	a.publish(r.Context(), acct, stream.Sales)
	writeJSON(w, http.StatusCreated, rec)
}
