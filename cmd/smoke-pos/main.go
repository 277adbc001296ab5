// smoke-pos drives a full sale cycle against a running API instance:
// register, stock a product, open a tab, sell, take a payment and check the
// dashboard figures add up.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"
)

func main() {
	base := os.Getenv("DOCEGESTAO_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 5 * time.Second}
	c := &apiClient{base: base, client: client}

	email := fmt.Sprintf("smoke-%d@docegestao.app", rand.Int())
	var reg struct {
		Token string `json:"token"`
	}
	c.post("/v1/auth/register", map[string]any{
		"name": "Smoke", "email": email, "password": "smoke-secret",
	}, &reg)
	c.token = reg.Token

	var product struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}
	c.post("/v1/products", map[string]any{
		"name": "Brigadeiro", "price": "2,50", "stock": 10,
	}, &product)

	var customer struct {
		ID string `json:"id"`
	}
	c.post("/v1/customers", map[string]any{"name": "Ana"}, &customer)

	var sale struct {
		Total int64 `json:"total"`
	}
	c.post("/v1/sales", map[string]any{
		"customer_id": customer.ID,
		"items": []map[string]any{
			{"product_id": product.ID, "qty": 3},
		},
	}, &sale)
	if sale.Total != 750 {
		log.Fatalf("sale total = %d, want 750", sale.Total)
	}

	var paid struct {
		Balance int64 `json:"balance"`
	}
	c.post("/v1/customers/"+customer.ID+"/payments", map[string]any{
		"amount": "5.00",
	}, &paid)
	if paid.Balance != 250 {
		log.Fatalf("balance after payment = %d, want 250", paid.Balance)
	}

	var dash struct {
		TotalReceivable int64 `json:"total_receivable"`
		TotalStockUnits int   `json:"total_stock_units"`
	}
	c.get("/v1/dashboard", &dash)
	if dash.TotalReceivable != 250 {
		log.Fatalf("dashboard receivable = %d, want 250", dash.TotalReceivable)
	}
	if dash.TotalStockUnits != 7 {
		log.Fatalf("dashboard stock units = %d, want 7", dash.TotalStockUnits)
	}

	fmt.Println("✅ pos smoke test passed")
}

type apiClient struct {
	base   string
	token  string
	client *http.Client
}

func (c *apiClient) post(path string, body any, out any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("marshal %s: %v", path, err)
	}
	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("request %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.doJSON(req, path, out)
}

func (c *apiClient) get(path string, out any) {
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	if err != nil {
		log.Fatalf("request %s: %v", path, err)
	}
	c.doJSON(req, path, out)
}

func (c *apiClient) doJSON(req *http.Request, path string, out any) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Fatalf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("decode %s: %v", path, err)
		}
	}
}
