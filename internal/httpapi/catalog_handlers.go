package httpapi

import (
	"net/http"
	"strings"

	"docegestao.app/internal/audit"
	"docegestao.app/internal/money"
	"docegestao.app/internal/stream"
)

func (a *API) handleProductsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listProducts(w, r)
	case http.MethodPost:
		a.createProduct(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleProductResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/products/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		switch r.Method {
		case http.MethodGet:
			a.getProduct(w, r, parts[0])
		case http.MethodDelete:
			a.deleteProduct(w, r, parts[0])
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
		}
	case len(parts) == 2 && parts[1] == "stock":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.adjustStock(w, r, parts[0])
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	products, err := a.catalog.List(r.Context(), acct)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	var req struct {
		Name  string `json:"name"`
		Price string `json:"price"` // decimal string, "2.50" or "2,50"
		Stock int    `json:"stock"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	price, err := money.Parse(req.Price)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "price: "+err.Error())
		return
	}
	product, err := a.catalog.Create(r.Context(), acct, req.Name, price, req.Stock)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "product.created", map[string]any{
		"product_id": product.ID,
		"price":      product.Price.Cents(),
		"stock":      product.Stock,
	})
	a.publish(r.Context(), acct, stream.Products)
	writeJSON(w, http.StatusCreated, product)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	product, err := a.catalog.Get(r.Context(), acct, id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := a.catalog.Delete(r.Context(), acct, id); err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "product.deleted", map[string]any{
		"product_id": id,
	})
	a.publish(r.Context(), acct, stream.Products)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) adjustStock(w http.ResponseWriter, r *http.Request, id string) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	product, err := a.catalog.AdjustStock(r.Context(), acct, id, req.Delta)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "product.stock_adjusted", map[string]any{
		"product_id": id,
		"delta":      req.Delta,
		"stock":      product.Stock,
	})
	a.publish(r.Context(), acct, stream.Products)
	writeJSON(w, http.StatusOK, product)
}
