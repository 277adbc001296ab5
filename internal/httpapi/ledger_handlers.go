package httpapi

import (
	"net/http"
	"strings"

	"docegestao.app/internal/audit"
	"docegestao.app/internal/money"
	"docegestao.app/internal/obs"
	"docegestao.app/internal/stream"
)

func (a *API) handleCustomersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listCustomers(w, r)
	case http.MethodPost:
		a.createCustomer(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleCustomerResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/customers/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		switch r.Method {
		case http.MethodGet:
			a.getCustomer(w, r, parts[0])
		case http.MethodDelete:
			a.deleteCustomer(w, r, parts[0])
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
		}
	case len(parts) == 2 && parts[1] == "payments":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.recordPayment(w, r, parts[0])
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

func (a *API) listCustomers(w http.ResponseWriter, r *http.Request) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	customers, err := a.ledger.List(r.Context(), acct)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (a *API) createCustomer(w http.ResponseWriter, r *http.Request) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := a.ledger.Create(r.Context(), acct, req.Name)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "customer.created", map[string]any{
		"customer_id": customer.ID,
	})
	a.publish(r.Context(), acct, stream.Customers)
	writeJSON(w, http.StatusCreated, customer)
}

func (a *API) getCustomer(w http.ResponseWriter, r *http.Request, id string) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	customer, err := a.ledger.Get(r.Context(), acct, id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (a *API) deleteCustomer(w http.ResponseWriter, r *http.Request, id string) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := a.ledger.Delete(r.Context(), acct, id); err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "customer.deleted", map[string]any{
		"customer_id": id,
	})
	a.publish(r.Context(), acct, stream.Customers)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) recordPayment(w http.ResponseWriter, r *http.Request, id string) {
	acct, ok := owner(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	var req struct {
		Amount string `json:"amount"` // decimal string
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "amount: "+err.Error())
		return
	}
	customer, err := a.processor.Pay(r.Context(), acct, id, amount)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	obs.CountPayment()
	_ = audit.LogEvent(r.Context(), "payment.recorded", map[string]any{
		"customer_id": id,
		"amount":      amount.Cents(),
		"balance":     customer.Balance.Cents(),
	})
	a.publish(r.Context(), acct, stream.Customers)
	writeJSON(w, http.StatusOK, customer)
}
