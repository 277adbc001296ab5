package httpapi

import (
	"net/http"

	"docegestao.app/internal/dashboard"
)

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
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
	customers, err := a.ledger.List(r.Context(), acct)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	summary := dashboard.Compute(products, customers)
	writeJSON(w, http.StatusOK, map[string]any{
		"total_receivable":         summary.TotalReceivable,
		"total_receivable_display": summary.TotalReceivable.Format(),
		"total_stock_units":        summary.TotalStockUnits,
		"low_stock":                summary.LowStock,
	})
}
