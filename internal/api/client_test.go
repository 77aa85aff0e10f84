package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler, token string) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	source := TokenSource(nil)
	if token != "" {
		source = func() string { return token }
	}
	return New(srv.URL+"/api", 5*time.Second, source), srv
}

func TestTokenHeaderAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	c, srv := newTestClient(handler, "tok-1")
	defer srv.Close()

	if _, err := c.Products(context.Background(), ProductQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Token tok-1" {
		t.Fatalf("expected Token header, got %q", gotAuth)
	}
}

func TestNoTokenHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	c, srv := newTestClient(handler, "")
	defer srv.Close()

	if _, err := c.Products(context.Background(), ProductQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestProductQueryOmitsEmptyFields(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})
	c, srv := newTestClient(handler, "")
	defer srv.Close()

	_, err := c.Products(context.Background(), ProductQuery{Search: "mat", Ordering: "price"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "ordering=price&search=mat" {
		t.Fatalf("unexpected query string %q", gotQuery)
	}

	if _, err := c.Products(context.Background(), ProductQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected empty query for zero filter, got %q", gotQuery)
	}
}

func TestDetailErrorSurfacedVerbatim(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid token."})
	})
	c, srv := newTestClient(handler, "bad")
	defer srv.Close()

	_, err := c.CurrentUser(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid token." {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestErrorFieldSurfacedVerbatim(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})
	c, srv := newTestClient(handler, "")
	defer srv.Close()

	_, err := c.Login(context.Background(), "alice", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("expected server message verbatim, got %v", err)
	}
}

func TestGenericMessageForUnparsableErrorBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	})
	c, srv := newTestClient(handler, "")
	defer srv.Close()

	_, err := c.Products(context.Background(), ProductQuery{})
	if err == nil || err.Error() != "request failed with status 502" {
		t.Fatalf("expected generic message, got %v", err)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login/" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "alice" || body["password"] != "Secret123!" {
			t.Fatalf("unexpected payload: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	c, srv := newTestClient(handler, "")
	defer srv.Close()

	token, err := c.Login(context.Background(), "alice", "Secret123!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("expected tok-1, got %q", token)
	}
}

func TestPriceDecodedAsDecimalString(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"name":"Widget","price":"9.99","stock_quantity":3}`))
	})
	c, srv := newTestClient(handler, "")
	defer srv.Close()

	p, err := c.Product(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Price.StringFixed(2) != "9.99" {
		t.Fatalf("unexpected price %s", p.Price)
	}
	if !p.InStock() {
		t.Fatalf("expected product in stock")
	}
}

func TestCreateOrderUnwrapsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order":{"id":7,"status":"pending","total_amount":"23.98"},"message":"Order created successfully"}`))
	})
	c, srv := newTestClient(handler, "tok-1")
	defer srv.Close()

	order, err := c.CreateOrder(context.Background(), OrderInput{
		CustomerEmail: "alice@example.com",
		Items:         []OrderItemInput{{ProductID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 7 || order.Status != "pending" || order.TotalAmount.StringFixed(2) != "23.98" {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestDeleteProductSendsNoBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/products/3/" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	c, srv := newTestClient(handler, "tok-1")
	defer srv.Close()

	if err := c.DeleteProduct(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
