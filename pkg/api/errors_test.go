package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		status   int
		text     string
		fallback string
		want     string
	}{
		{"detail", `{"detail":"Product not found"}`, 404, "Not Found", defaultErrorMessage, "Product not found"},
		{"detail wins over message", `{"detail":"d","message":"m"}`, 400, "Bad Request", defaultErrorMessage, "d"},
		{"message", `{"message":"Out of stock"}`, 409, "Conflict", defaultErrorMessage, "Out of stock"},
		{"empty detail falls to message", `{"detail":"","message":"m"}`, 400, "Bad Request", defaultErrorMessage, "m"},
		{"json without fields", `{"error":"x"}`, 500, "Internal Server Error", defaultErrorMessage, defaultErrorMessage},
		{"login fallback", `{}`, 401, "Unauthorized", loginErrorMessage, loginErrorMessage},
		{"json array body", `[1,2]`, 500, "Internal Server Error", defaultErrorMessage, defaultErrorMessage},
		{"unparsable", `<html>bad gateway</html>`, 502, "Bad Gateway", defaultErrorMessage, "Bad Gateway"},
		{"empty body", ``, 503, "Service Unavailable", defaultErrorMessage, "Service Unavailable"},
		{"unparsable no status text", `oops`, 500, "", defaultErrorMessage, "HTTP 500"},
		{"validation list", `{"detail":[{"loc":["body","price"],"msg":"field required"},{"msg":"value is not a valid integer"}]}`, 422, "Unprocessable Entity", defaultErrorMessage, "field required; value is not a valid integer"},
		{"object detail", `{"detail":{"code":7}}`, 400, "Bad Request", defaultErrorMessage, `{"code":7}`},
	}
	for _, tc := range cases {
		got := errorMessage([]byte(tc.body), tc.status, tc.text, tc.fallback)
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNon2xxWithDetailYieldsAPIError(t *testing.T) {
	srv := newAPIServer(t, http.StatusNotFound, `{"detail":"Product not found"}`)
	log := &captureLogger{}

	_, err := New(srv.srv.URL, WithLogger(log)).Products().GetByID(context.Background(), 99)
	if err == nil || err.Error() != "Product not found" {
		t.Fatalf("unexpected error %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.StatusText != "Not Found" {
		t.Fatalf("unexpected status on error %#v", apiErr)
	}
	if StatusCode(fmt.Errorf("wrapped: %w", err)) != http.StatusNotFound {
		t.Fatalf("StatusCode should see through wrapping")
	}
	if len(log.errors) != 1 || log.errors[0]["status"] != http.StatusNotFound || log.errors[0]["url"] != srv.srv.URL+"/products/99" {
		t.Fatalf("expected contextual error log, got %#v", log.errors)
	}
}

func TestNon2xxUnparsableBodyUsesStatusText(t *testing.T) {
	stub := &stubHTTP{resp: stubResponse{status: 502, text: "Bad Gateway", body: []byte("<html/>")}}
	_, err := New("http://api", WithHTTPClient(stub)).Cart().GetCart(context.Background())
	if err == nil || err.Error() != "Bad Gateway" {
		t.Fatalf("unexpected error %v", err)
	}

	stub = &stubHTTP{resp: stubResponse{status: 500, body: []byte("boom")}}
	_, err = New("http://api", WithHTTPClient(stub)).Cart().GetCart(context.Background())
	if err == nil || err.Error() != "HTTP 500" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestStatusCodeOfForeignError(t *testing.T) {
	if StatusCode(errors.New("x")) != 0 {
		t.Fatalf("expected 0 for non-API errors")
	}
	if StatusCode(&NetworkError{Err: errors.New("dial")}) != 0 {
		t.Fatalf("expected 0 for network errors")
	}
}

func TestNetworkErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&NetworkError{URL: "http://api/cart", Err: cause})
	if !errors.Is(err, cause) || !errors.Is(err, ErrCannotConnect) {
		t.Fatalf("expected both the cause and ErrCannotConnect to match")
	}
}
