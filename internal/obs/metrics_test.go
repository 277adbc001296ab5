package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                              "/",
		"/metrics":                      "/metrics",
		"/v1/products":                  "/v1/products",
		"/v1/products/01ABC":            "/v1/products/:id",
		"/v1/products/01ABC/stock":      "/v1/products/:id/stock",
		"/v1/customers/01ABC":           "/v1/customers/:id",
		"/v1/customers/01ABC/payments":  "/v1/customers/:id/payments",
		"/v1/sales":                     "/v1/sales",
		"/v1/dashboard":                 "/v1/dashboard",
		"/v1/stream?collection=sales":   "/v1/stream",
		"/v1/products/01ABC/stock/deep": "/v1/products/01ABC/stock/deep",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
