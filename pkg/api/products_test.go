package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

const deskJSON = `{"name":"Desk","description":"","price":120,"stock":0,"image_url":"","category":""}`

func TestProductsRoutes(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK, `{"id":4,"name":"Desk","price":120}`)
	c := New(srv.srv.URL, WithTokenStore(mapTokens{TokenKey: "tok"}))
	ctx := context.Background()
	desk := Product{Name: "Desk", Price: 120}

	cases := []struct {
		name   string
		call   func() error
		method string
		path   string
		body   string
	}{
		{"get", func() error { _, err := c.Products().GetByID(ctx, 4); return err }, http.MethodGet, "/products/4", ""},
		{"create", func() error { _, err := c.Products().Create(ctx, desk); return err }, http.MethodPost, "/products", deskJSON},
		{"update", func() error { _, err := c.Products().Update(ctx, 4, desk); return err }, http.MethodPut, "/products/4", deskJSON},
		{"delete", func() error { _, err := c.Products().Delete(ctx, 4); return err }, http.MethodDelete, "/products/4", ""},
	}
	for _, tc := range cases {
		if err := tc.call(); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		req := srv.last(t)
		if req.Method != tc.method || req.Path != tc.path {
			t.Fatalf("%s: request = %s %s", tc.name, req.Method, req.Path)
		}
		if req.Body != tc.body {
			t.Fatalf("%s: body = %q, want %q", tc.name, req.Body, tc.body)
		}
		if req.Header.Get("Authorization") != "Bearer tok" {
			t.Fatalf("%s: missing bearer token", tc.name)
		}
	}
}

func TestProductsGetAll(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK, `[{"id":1,"name":"A","price":1},{"id":2,"name":"B","price":2.5}]`)
	products, err := New(srv.srv.URL).Products().GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(products) != 2 || products[1].Name != "B" || products[1].Price != 2.5 {
		t.Fatalf("unexpected products %#v", products)
	}
	if req := srv.last(t); req.Method != http.MethodGet || req.Path != "/products" {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
}

func TestProductsUpdateSendsZeroStock(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK, `{"id":3,"name":"Lamp","price":2,"stock":0}`)
	c := New(srv.srv.URL)

	if _, err := c.Products().Update(context.Background(), 3, Product{Name: "Lamp", Price: 2}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	body := srv.last(t).Body
	if !strings.Contains(body, `"stock":0`) || !strings.Contains(body, `"description":""`) {
		t.Fatalf("zero-valued fields missing from body %s", body)
	}
}

func TestProductsGetThenUpdateKeepsUnknownFields(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK, `{"id":3,"name":"Lamp","price":2,"stock":4,"rating":4.5,"is_active":true}`)
	c := New(srv.srv.URL)
	ctx := context.Background()

	p, err := c.Products().GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	p.Stock = 0
	if _, err := c.Products().Update(ctx, 3, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(srv.last(t).Body), &sent); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if sent["rating"] != 4.5 || sent["is_active"] != true {
		t.Fatalf("unknown fields dropped: %v", sent)
	}
	if sent["stock"] != float64(0) || sent["name"] != "Lamp" || sent["id"] != float64(3) {
		t.Fatalf("modelled fields wrong: %v", sent)
	}
}
